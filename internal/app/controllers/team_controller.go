package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/services"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/services/container"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/error/code"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/error/response"
)

// InterfaceTeamController 定义维修团队控制器接口
type InterfaceTeamController interface {
	GetTeams()
	GetTeamJob()
}

// TeamController 处理维修团队相关的请求
type TeamController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewTeamController 创建一个新的维修团队控制器
func NewTeamController(ctx *gin.Context, container *container.ServiceContainer) *TeamController {
	return &TeamController{
		Ctx:       ctx,
		Container: container,
	}
}

// TeamJobData 表示团队与其当前工单
type TeamJobData struct {
	Team     interface{} `json:"team"`
	Incident interface{} `json:"incident,omitempty"`
}

// HandleTeamFunc 返回一个处理维修团队请求的Gin处理函数
func HandleTeamFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewTeamController(ctx, container)

		switch method {
		case "getTeams":
			controller.GetTeams()
		case "getTeamJob":
			controller.GetTeamJob()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetTeams 获取维修团队编制
// @Summary      List Teams
// @Description  Fixed team roster with availability and current assignment
// @Tags         Team
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]models.Team}
// @Router       /teams [get]
func (c *TeamController) GetTeams() {
	triageService := c.Container.GetService("triage").(services.InterfaceTriageService)
	response.Success(c.Ctx, triageService.GetTeams())
}

// GetTeamJob 获取指定团队的当前工单
// @Summary      Team Current Job
// @Description  The team record and, when busy, the incident it is working on
// @Tags         Team
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Team ID"
// @Success      200  {object}  response.Response{data=TeamJobData}
// @Failure      404  {object}  ErrorResponse
// @Router       /teams/{id}/job [get]
func (c *TeamController) GetTeamJob() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的团队ID")
		return
	}

	triageService := c.Container.GetService("triage").(services.InterfaceTriageService)
	team, incident, err := triageService.TeamJob(id)
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	data := TeamJobData{Team: team}
	if incident != nil {
		data.Incident = incident
	}
	response.Success(c.Ctx, data)
}
