package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/models"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/services"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/services/container"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/error/code"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/error/response"
)

// InterfaceDashboardController 定义统计面板控制器接口
type InterfaceDashboardController interface {
	GetNotifications()
	GetWeeklySummary()
	GetPartsSummary()
	GetBuildingSummary()
}

// DashboardController 处理通知与统计类请求
type DashboardController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDashboardController 创建一个新的统计面板控制器
func NewDashboardController(ctx *gin.Context, container *container.ServiceContainer) *DashboardController {
	return &DashboardController{
		Ctx:       ctx,
		Container: container,
	}
}

// NotificationData 表示角标通知数据
type NotificationData struct {
	Count int `json:"count" example:"3"`
}

// HandleDashboardFunc 返回一个处理统计面板请求的Gin处理函数
func HandleDashboardFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDashboardController(ctx, container)

		switch method {
		case "getNotifications":
			controller.GetNotifications()
		case "getWeeklySummary":
			controller.GetWeeklySummary()
		case "getPartsSummary":
			controller.GetPartsSummary()
		case "getBuildingSummary":
			controller.GetBuildingSummary()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetNotifications 获取当前用户的角标通知数
// @Summary      Notification Count
// @Description  Admin sees pending incidents plus pending applications; a technician sees its team's in-progress jobs
// @Tags         Dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=NotificationData}
// @Router       /notifications [get]
func (c *DashboardController) GetNotifications() {
	user := sessionFromContext(c.Ctx)
	if user == nil {
		response.Unauthorized(c.Ctx)
		return
	}

	triageService := c.Container.GetService("triage").(services.InterfaceTriageService)
	count := triageService.NotificationCount(user)

	response.Success(c.Ctx, NotificationData{Count: count})
}

// GetWeeklySummary 获取近七天报修统计
// @Summary      Weekly Summary
// @Description  Trailing seven local calendar days with per-day totals
// @Tags         Dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]services.DaySummary}
// @Router       /summary/weekly [get]
func (c *DashboardController) GetWeeklySummary() {
	triageService := c.Container.GetService("triage").(services.InterfaceTriageService)
	response.Success(c.Ctx, triageService.WeeklySummary())
}

// GetPartsSummary 获取耗材用量统计
// @Summary      Parts Usage Summary
// @Description  Part quantities aggregated over completed incidents, descending
// @Tags         Dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]services.PartTotal}
// @Router       /summary/parts [get]
func (c *DashboardController) GetPartsSummary() {
	triageService := c.Container.GetService("triage").(services.InterfaceTriageService)
	response.Success(c.Ctx, triageService.PartsSummary())
}

// GetBuildingSummary 获取各建筑未结报修数
// @Summary      Building Summary
// @Tags         Dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]services.BuildingCount}
// @Router       /summary/buildings [get]
func (c *DashboardController) GetBuildingSummary() {
	triageService := c.Container.GetService("triage").(services.InterfaceTriageService)
	response.Success(c.Ctx, triageService.BuildingSummary())
}

// sessionFromContext 从令牌声明还原会话用户
func sessionFromContext(ctx *gin.Context) models.SessionUser {
	value, exists := ctx.Get("claims")
	if !exists {
		return nil
	}
	claims, ok := value.(*services.JWTClaims)
	if !ok {
		return nil
	}

	switch models.UserRole(claims.Role) {
	case models.RoleAdmin:
		return models.AdminSession{Username: claims.Username, Name: claims.Name}
	case models.RoleTechnician:
		teamID := 0
		if claims.TeamID != nil {
			teamID = *claims.TeamID
		}
		return models.TechnicianSession{Username: claims.Username, Name: claims.Name, TeamID: teamID}
	case models.RoleTeacher:
		return models.TeacherSession{
			Username:   claims.Username,
			Name:       claims.Name,
			GradeLevel: claims.GradeLevel,
		}
	default:
		return nil
	}
}
