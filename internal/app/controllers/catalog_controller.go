package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/models"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/services/container"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/error/code"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/error/response"
)

// InterfaceCatalogController 定义基础目录控制器接口
type InterfaceCatalogController interface {
	GetBuildings()
	GetParts()
	GetGradeLevels()
}

// CatalogController 提供建筑、耗材、年级组等固定目录
type CatalogController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewCatalogController 创建一个新的目录控制器
func NewCatalogController(ctx *gin.Context, container *container.ServiceContainer) *CatalogController {
	return &CatalogController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleCatalogFunc 返回一个处理目录请求的Gin处理函数
func HandleCatalogFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewCatalogController(ctx, container)

		switch method {
		case "getBuildings":
			controller.GetBuildings()
		case "getParts":
			controller.GetParts()
		case "getGradeLevels":
			controller.GetGradeLevels()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetBuildings 获取校园建筑目录
// @Summary      Building Catalog
// @Tags         Catalog
// @Produce      json
// @Success      200  {object}  response.Response{data=[]models.Building}
// @Router       /buildings [get]
func (c *CatalogController) GetBuildings() {
	response.Success(c.Ctx, models.Buildings)
}

// GetParts 获取维修耗材目录
// @Summary      Part Catalog
// @Tags         Catalog
// @Produce      json
// @Success      200  {object}  response.Response{data=[]models.PartOption}
// @Router       /parts [get]
func (c *CatalogController) GetParts() {
	response.Success(c.Ctx, models.AvailableParts)
}

// GetGradeLevels 获取教师年级组目录
// @Summary      Grade Level Catalog
// @Tags         Catalog
// @Produce      json
// @Success      200  {object}  response.Response{data=[]string}
// @Router       /grade-levels [get]
func (c *CatalogController) GetGradeLevels() {
	response.Success(c.Ctx, models.TeacherGradeLevels)
}
