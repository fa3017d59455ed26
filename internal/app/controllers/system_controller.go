package controllers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/services"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/services/container"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/error/code"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/error/response"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/pkg/logger"
)

// InterfaceSystemController 定义系统运维控制器接口
type InterfaceSystemController interface {
	ExportData()
	ImportData()
	ResetSystem()
}

// SystemController 处理备份、恢复与重置请求
type SystemController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewSystemController 创建一个新的系统运维控制器
func NewSystemController(ctx *gin.Context, container *container.ServiceContainer) *SystemController {
	return &SystemController{
		Ctx:       ctx,
		Container: container,
	}
}

// ResetRequest 表示重置系统请求
type ResetRequest struct {
	Confirm string `json:"confirm" binding:"required" example:"RESET"`
}

// HandleSystemFunc 返回一个处理系统运维请求的Gin处理函数
func HandleSystemFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewSystemController(ctx, container)

		switch method {
		case "exportData":
			controller.ExportData()
		case "importData":
			controller.ImportData()
		case "resetSystem":
			controller.ResetSystem()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// ExportData 导出全量备份文件
// @Summary      Export Backup
// @Description  Download a dated JSON snapshot of incidents, teams and registered users
// @Tags         System
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.Snapshot
// @Router       /system/export [get]
func (c *SystemController) ExportData() {
	snapshotService := c.Container.GetService("snapshot").(services.InterfaceSnapshotService)
	snapshot := snapshotService.Export()

	filename := fmt.Sprintf("school_ops_backup_%s.json", time.Now().Format("2006-01-02"))
	c.Ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Ctx.JSON(http.StatusOK, snapshot)
}

// ImportData 导入备份文件并整体替换状态
// @Summary      Import Backup
// @Description  Replace current state with an uploaded snapshot; a corrupt file changes nothing
// @Tags         System
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse  "Corrupt snapshot"
// @Router       /system/import [post]
func (c *SystemController) ImportData() {
	raw, err := io.ReadAll(c.Ctx.Request.Body)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "读取备份文件失败: "+err.Error(), nil)
		return
	}

	snapshotService := c.Container.GetService("snapshot").(services.InterfaceSnapshotService)
	if err := snapshotService.Import(raw); err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	logger.Info("备份导入成功，共 %d 字节", len(raw))
	response.SuccessWithMessage(c.Ctx, "นำเข้าข้อมูลสำรองเรียบร้อย", nil)
}

// ResetSystem 把系统重置到出厂状态
// @Summary      Reset System
// @Description  Clear the incident ledger and registered users, reseed the team roster; requires the confirmation phrase
// @Tags         System
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ResetRequest true "Confirmation phrase"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse  "Confirmation phrase mismatch"
// @Router       /system/reset [post]
func (c *SystemController) ResetSystem() {
	var req ResetRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "请求参数绑定错误: "+err.Error(), nil)
		return
	}

	cfg := c.Container.GetConfig()
	if req.Confirm != cfg.ResetConfirmPhrase {
		response.FailWithMessage(c.Ctx, code.ErrResetNotConfirmed, "确认短语不匹配，重置已取消", nil)
		return
	}

	incidentService := c.Container.GetService("incident").(services.InterfaceIncidentService)
	if err := incidentService.Reset(); err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	logger.Warning("系统已由管理员 %s 重置", c.Ctx.GetString("username"))
	response.SuccessWithMessage(c.Ctx, "รีเซ็ตระบบเรียบร้อยแล้ว", nil)
}
