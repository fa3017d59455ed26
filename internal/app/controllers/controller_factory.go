package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/services"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/services/container"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/error/code"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/error/response"
)

// BaseController 是所有控制器的基础接口
type BaseController interface {
	// 获取服务容器
	GetContainer() *container.ServiceContainer
	// 获取Gin上下文
	GetContext() *gin.Context
}

// BaseControllerImpl 是控制器的基础实现
type BaseControllerImpl struct {
	Container *container.ServiceContainer
	Context   *gin.Context
}

// GetContainer 实现 BaseController 接口
func (c *BaseControllerImpl) GetContainer() *container.ServiceContainer {
	return c.Container
}

// GetContext 实现 BaseController 接口
func (c *BaseControllerImpl) GetContext() *gin.Context {
	return c.Context
}

// ErrorResponse 表示错误响应（swagger文档用）
type ErrorResponse struct {
	Code    int         `json:"code" example:"102000"`
	Message string      `json:"message" example:"报修单不存在"`
	Data    interface{} `json:"data"`
}

// 服务错误到错误码的映射表
var serviceErrorCodes = []struct {
	err  error
	code int
}{
	{services.ErrIncidentNotFound, code.ErrIncidentNotFound},
	{services.ErrTeamNotFound, code.ErrTeamNotFound},
	{services.ErrIncidentNotPending, code.ErrInvalidAssignment},
	{services.ErrTeamBusy, code.ErrTeamBusy},
	{services.ErrIncidentNotInProgress, code.ErrIncidentNotInProgress},
	{services.ErrInvalidReport, code.ErrValidation},
	{services.ErrUsernameTaken, code.ErrUserAlreadyExist},
	{services.ErrUserNotFound, code.ErrUserNotFound},
	{services.ErrBadCredential, code.ErrUserPasswordIncorrect},
	{services.ErrAccountPending, code.ErrUserPending},
	{services.ErrAccountRejected, code.ErrUserRejected},
	{services.ErrInvalidRegistration, code.ErrValidation},
	{services.ErrGuestNameRequired, code.ErrValidation},
	{services.ErrCorruptSnapshot, code.ErrCorruptSnapshot},
	{services.ErrInvalidImage, code.ErrInvalidImage},
}

// failWithServiceError 把服务层错误映射为错误码并返回统一响应，
// 消息沿用服务层给出的原因文本
func failWithServiceError(ctx *gin.Context, err error) {
	for _, entry := range serviceErrorCodes {
		if errors.Is(err, entry.err) {
			response.FailWithMessage(ctx, entry.code, err.Error(), nil)
			return
		}
	}
	response.FailWithMessage(ctx, code.ErrUnknown, err.Error(), nil)
}
