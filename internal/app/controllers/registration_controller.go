package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/models"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/services"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/services/container"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/error/code"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/error/response"
)

// InterfaceRegistrationController 定义注册审批控制器接口
type InterfaceRegistrationController interface {
	Register()
	GetUsers()
	ApproveUser()
	RejectUser()
}

// RegistrationController 处理教师注册与审批请求
type RegistrationController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewRegistrationController 创建一个新的注册审批控制器
func NewRegistrationController(ctx *gin.Context, container *container.ServiceContainer) *RegistrationController {
	return &RegistrationController{
		Ctx:       ctx,
		Container: container,
	}
}

// RegisterRequest 表示教师注册请求
type RegisterRequest struct {
	Username    string `json:"username" binding:"required" example:"kru_somsri"`
	Password    string `json:"password" binding:"required" example:"secret123"`
	Name        string `json:"name" binding:"required" example:"ครูสมศรี ใจดี"`
	Email       string `json:"email" example:"somsri@school.ac.th"`
	PhoneNumber string `json:"phoneNumber" example:"0812345678"`
	GradeLevel  string `json:"gradeLevel" example:"มัธยมศึกษาปีที่ 1"`
}

// HandleRegistrationFunc 返回一个处理注册审批请求的Gin处理函数
func HandleRegistrationFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewRegistrationController(ctx, container)

		switch method {
		case "register":
			controller.Register()
		case "getUsers":
			controller.GetUsers()
		case "approveUser":
			controller.ApproveUser()
		case "rejectUser":
			controller.RejectUser()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// Register 提交教师注册申请
// @Summary      Teacher Registration
// @Description  Submit a teacher account application; it stays pending until an admin approves it
// @Tags         Registration
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration parameters"
// @Success      200  {object}  response.Response{data=models.RegisteredUser}
// @Failure      400  {object}  ErrorResponse  "Username already used"
// @Router       /register [post]
func (c *RegistrationController) Register() {
	var req RegisterRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "请求参数绑定错误: "+err.Error(), nil)
		return
	}

	registrationService := c.Container.GetService("registration").(services.InterfaceRegistrationService)
	user, err := registrationService.Register(services.RegisterInput{
		Username:    req.Username,
		Password:    req.Password,
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		GradeLevel:  req.GradeLevel,
	})
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.SuccessWithMessage(c.Ctx, "ส่งคำขอลงทะเบียนแล้ว กรุณารอผู้ดูแลระบบอนุมัติ", sanitizeUser(*user))
}

// GetUsers 获取注册用户列表（审批队列）
// @Summary      List Registered Users
// @Description  Full application ledger with pending, approved and rejected accounts
// @Tags         Registration
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]models.RegisteredUser}
// @Router       /users [get]
func (c *RegistrationController) GetUsers() {
	registrationService := c.Container.GetService("registration").(services.InterfaceRegistrationService)

	users := registrationService.ListUsers()
	sanitized := make([]models.RegisteredUser, 0, len(users))
	for _, u := range users {
		sanitized = append(sanitized, sanitizeUser(u))
	}

	response.Success(c.Ctx, sanitized)
}

// ApproveUser 批准注册申请
// @Summary      Approve User
// @Description  Mark an application approved; a notification email is sent when SMTP is configured
// @Tags         Registration
// @Produce      json
// @Security     BearerAuth
// @Param        username  path  string  true  "Applicant username"
// @Success      200  {object}  response.Response{data=models.RegisteredUser}
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{username}/approve [post]
func (c *RegistrationController) ApproveUser() {
	username := c.Ctx.Param("username")

	registrationService := c.Container.GetService("registration").(services.InterfaceRegistrationService)
	user, err := registrationService.Approve(username)
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.SuccessWithMessage(c.Ctx, "อนุมัติบัญชีแล้ว", sanitizeUser(*user))
}

// RejectUser 驳回注册申请
// @Summary      Reject User
// @Tags         Registration
// @Produce      json
// @Security     BearerAuth
// @Param        username  path  string  true  "Applicant username"
// @Success      200  {object}  response.Response{data=models.RegisteredUser}
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{username}/reject [post]
func (c *RegistrationController) RejectUser() {
	username := c.Ctx.Param("username")

	registrationService := c.Container.GetService("registration").(services.InterfaceRegistrationService)
	user, err := registrationService.Reject(username)
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.SuccessWithMessage(c.Ctx, "ปฏิเสธบัญชีแล้ว", sanitizeUser(*user))
}

// sanitizeUser 去掉响应中的口令散列
func sanitizeUser(user models.RegisteredUser) models.RegisteredUser {
	user.Password = ""
	return user
}
