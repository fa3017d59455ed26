package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/models"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/services"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/services/container"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/error/code"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/error/response"
)

// InterfaceIncidentController 定义报修单控制器接口
type InterfaceIncidentController interface {
	GetIncidents()
	GetIncident()
	CreateIncident()
	AssignIncident()
	CompleteIncident()
	RushIncident()
	DeleteIncident()
	UploadImage()
}

// IncidentController 处理报修单相关的请求
type IncidentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewIncidentController 创建一个新的报修单控制器
func NewIncidentController(ctx *gin.Context, container *container.ServiceContainer) *IncidentController {
	return &IncidentController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateIncidentRequest 表示创建报修单的请求
type CreateIncidentRequest struct {
	BuildingID   string `json:"buildingId" binding:"required" example:"B1"`
	RoomNumber   string `json:"roomNumber" binding:"required" example:"ห้อง 101"`
	Description  string `json:"description" binding:"required" example:"หลอดไฟเพดานกะพริบ"`
	ReporterName string `json:"reporterName" binding:"required" example:"ครูสมชาย"`
	Priority     string `json:"priority" example:"Medium"`
	ImageURL     string `json:"imageUrl,omitempty"`
}

// AssignIncidentRequest 表示派单请求
type AssignIncidentRequest struct {
	TeamID int `json:"teamId" binding:"required" example:"1"`
}

// CompleteIncidentRequest 表示完工请求
type CompleteIncidentRequest struct {
	Note      string            `json:"note" example:"เปลี่ยนหลอดไฟเรียบร้อย"`
	UsedParts []models.UsedPart `json:"usedParts"`
}

// UploadImageRequest 表示图片上传请求（data URL）
type UploadImageRequest struct {
	Image string `json:"image" binding:"required"`
}

// HandleIncidentFunc 返回一个处理报修单请求的Gin处理函数
func HandleIncidentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewIncidentController(ctx, container)

		switch method {
		case "getIncidents":
			controller.GetIncidents()
		case "getIncident":
			controller.GetIncident()
		case "createIncident":
			controller.CreateIncident()
		case "assignIncident":
			controller.AssignIncident()
		case "completeIncident":
			controller.CompleteIncident()
		case "rushIncident":
			controller.RushIncident()
		case "deleteIncident":
			controller.DeleteIncident()
		case "uploadImage":
			controller.UploadImage()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetIncidents 获取报修单列表（支持筛选与排序）
// @Summary      List Incidents
// @Description  Triage-ordered incident list, filterable by status, priority and keyword
// @Tags         Incident
// @Produce      json
// @Security     BearerAuth
// @Param        status    query  string  false  "Status filter (All/Pending/In Progress/Done)"
// @Param        priority  query  string  false  "Priority filter (All/Low/Medium/High/Critical)"
// @Param        search    query  string  false  "Keyword over description, building, room and reporter"
// @Success      200  {object}  response.Response{data=[]models.Incident}
// @Router       /incidents [get]
func (c *IncidentController) GetIncidents() {
	triageService := c.Container.GetService("triage").(services.InterfaceTriageService)

	incidents := triageService.Query(services.TriageQuery{
		Status:   c.Ctx.DefaultQuery("status", "All"),
		Priority: c.Ctx.DefaultQuery("priority", "All"),
		Search:   c.Ctx.Query("search"),
	})

	response.Success(c.Ctx, incidents)
}

// GetIncident 获取单个报修单
// @Summary      Get Incident
// @Tags         Incident
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Incident ID"
// @Success      200  {object}  response.Response{data=models.Incident}
// @Failure      404  {object}  ErrorResponse
// @Router       /incidents/{id} [get]
func (c *IncidentController) GetIncident() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的报修单ID")
		return
	}

	incidentService := c.Container.GetService("incident").(services.InterfaceIncidentService)
	incident, err := incidentService.GetByID(id)
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, incident)
}

// CreateIncident 创建报修单
// @Summary      Report Incident
// @Description  Create a pending incident; the reporter name defaults to the authenticated user
// @Tags         Incident
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateIncidentRequest true "Report parameters"
// @Success      200  {object}  response.Response{data=models.Incident}
// @Failure      400  {object}  ErrorResponse
// @Router       /incidents [post]
func (c *IncidentController) CreateIncident() {
	var req CreateIncidentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "请求参数绑定错误: "+err.Error(), nil)
		return
	}

	priority := models.Priority(req.Priority)
	if req.Priority == "" {
		priority = models.PriorityMedium
	}

	// 附件先过压缩管线，坏图直接拒绝而不是静默入账
	imageURL := req.ImageURL
	if imageURL != "" {
		imageService := c.Container.GetService("image").(services.InterfaceImageService)
		prepared, err := imageService.Prepare(imageURL)
		if err != nil {
			failWithServiceError(c.Ctx, err)
			return
		}
		imageURL = prepared
	}

	incidentService := c.Container.GetService("incident").(services.InterfaceIncidentService)
	incident, err := incidentService.Report(services.ReportInput{
		BuildingID:   req.BuildingID,
		RoomNumber:   req.RoomNumber,
		Description:  req.Description,
		ReporterName: req.ReporterName,
		Priority:     priority,
		ImageURL:     imageURL,
	})
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.SuccessWithMessage(c.Ctx, "แจ้งซ่อมเรียบร้อยแล้ว", incident)
}

// AssignIncident 派单给维修团队
// @Summary      Assign Incident
// @Description  Dispatch a pending incident to an available team; both records change together
// @Tags         Incident
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                    true  "Incident ID"
// @Param        request  body  AssignIncidentRequest  true  "Target team"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse  "Incident not pending or team busy"
// @Failure      404  {object}  ErrorResponse
// @Router       /incidents/{id}/assign [post]
func (c *IncidentController) AssignIncident() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的报修单ID")
		return
	}

	var req AssignIncidentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "请求参数绑定错误: "+err.Error(), nil)
		return
	}

	incidentService := c.Container.GetService("incident").(services.InterfaceIncidentService)
	if err := incidentService.Assign(id, req.TeamID); err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.SuccessWithMessage(c.Ctx, "มอบหมายงานเรียบร้อย", nil)
}

// CompleteIncident 完工报修单
// @Summary      Complete Incident
// @Description  Mark an incident done with a completion note and used parts; frees the assigned team
// @Tags         Incident
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                      true  "Incident ID"
// @Param        request  body  CompleteIncidentRequest  true  "Completion record"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  ErrorResponse  "Technician completing another team's job"
// @Failure      404  {object}  ErrorResponse
// @Router       /incidents/{id}/complete [post]
func (c *IncidentController) CompleteIncident() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的报修单ID")
		return
	}

	var req CompleteIncidentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "请求参数绑定错误: "+err.Error(), nil)
		return
	}

	incidentService := c.Container.GetService("incident").(services.InterfaceIncidentService)

	// 技工只能完工派给本团队的报修单，管理员不受限
	if c.Ctx.GetString("role") == string(models.RoleTechnician) {
		incident, err := incidentService.GetByID(id)
		if err != nil {
			failWithServiceError(c.Ctx, err)
			return
		}
		teamID := c.Ctx.GetInt("teamId")
		if incident.AssignedTeamID == nil || *incident.AssignedTeamID != teamID {
			response.FailWithMessage(c.Ctx, code.ErrForbidden, "只能完工本团队的报修单", nil)
			return
		}
	}

	if err := incidentService.Complete(id, req.Note, req.UsedParts); err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.SuccessWithMessage(c.Ctx, "ปิดงานเรียบร้อย", nil)
}

// RushIncident 标记加急
// @Summary      Rush Incident
// @Description  Flag an in-progress incident as rushed; repeated calls are no-ops
// @Tags         Incident
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Incident ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse  "Incident not in progress"
// @Router       /incidents/{id}/rush [post]
func (c *IncidentController) RushIncident() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的报修单ID")
		return
	}

	incidentService := c.Container.GetService("incident").(services.InterfaceIncidentService)
	if err := incidentService.Rush(id); err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.SuccessWithMessage(c.Ctx, "เร่งงานเรียบร้อย", nil)
}

// DeleteIncident 删除报修单
// @Summary      Delete Incident
// @Description  Remove an incident; the assigned team, if any, is freed first
// @Tags         Incident
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Incident ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /incidents/{id} [delete]
func (c *IncidentController) DeleteIncident() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的报修单ID")
		return
	}

	incidentService := c.Container.GetService("incident").(services.InterfaceIncidentService)
	if err := incidentService.Delete(id); err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.SuccessWithMessage(c.Ctx, "ลบรายการแจ้งซ่อมแล้ว", nil)
}

// UploadImage 预处理报修图片（等比缩放并压缩为JPEG）
// @Summary      Upload Image
// @Description  Normalize a data-URL image attachment before it is stored on a report
// @Tags         Incident
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UploadImageRequest true "Data-URL encoded image"
// @Success      200  {object}  response.Response{data=string}
// @Failure      400  {object}  ErrorResponse  "Not a decodable image"
// @Router       /uploads/image [post]
func (c *IncidentController) UploadImage() {
	var req UploadImageRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "请求参数绑定错误: "+err.Error(), nil)
		return
	}

	imageService := c.Container.GetService("image").(services.InterfaceImageService)
	prepared, err := imageService.Prepare(req.Image)
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, prepared)
}
