package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/models"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/services"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/services/container"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/error/code"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/error/response"
)

// InterfaceAuthController 定义认证控制器接口
type InterfaceAuthController interface {
	Login()
	GuestLogin()
	Logout()
}

// AuthController 处理登录登出请求
type AuthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAuthController 创建一个新的认证控制器
func NewAuthController(ctx *gin.Context, container *container.ServiceContainer) *AuthController {
	return &AuthController{
		Ctx:       ctx,
		Container: container,
	}
}

// LoginRequest 表示登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin_mab"`
	Password string `json:"password" binding:"required" example:"mab_admin2024"`
	Role     string `json:"role" example:"admin"` // admin, technician, teacher
}

// GuestLoginRequest 表示快速报修登录请求
type GuestLoginRequest struct {
	Name string `json:"name" binding:"required" example:"ครูสมศรี"`
}

// LoginData 表示登录成功后返回的数据
type LoginData struct {
	Token string      `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User  interface{} `json:"user"`
}

// HandleAuthFunc 返回一个处理认证请求的Gin处理函数
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAuthController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		case "guestLogin":
			controller.GuestLogin()
		case "logout":
			controller.Logout()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// Login 处理用户登录
// @Summary      User Login
// @Description  Dispatch login by role: fixed admin pair, fixed technician table, or registered teacher account
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login request parameters"
// @Success      200  {object}  response.Response{data=LoginData}  "Success response with token"
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      403  {object}  ErrorResponse  "Account pending or rejected"
// @Router       /auth/login [post]
func (c *AuthController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "请求参数绑定错误: "+err.Error(), nil)
		return
	}

	authService := c.Container.GetService("auth").(services.InterfaceAuthService)
	user, token, err := authService.Login(services.LoginInput{
		Username: req.Username,
		Password: req.Password,
		Role:     models.UserRole(req.Role),
	})
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.SuccessWithMessage(c.Ctx, "ยินดีต้อนรับ "+user.DisplayName(), LoginData{
		Token: token,
		User:  sessionPayload(user),
	})
}

// GuestLogin 处理快速报修登录（免注册通道）
// @Summary      Guest Login
// @Description  Quick-access login with only a display name, for urgent reports
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body GuestLoginRequest true "Guest name"
// @Success      200  {object}  response.Response{data=LoginData}
// @Failure      400  {object}  ErrorResponse
// @Router       /auth/guest [post]
func (c *AuthController) GuestLogin() {
	var req GuestLoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "请求参数绑定错误: "+err.Error(), nil)
		return
	}

	authService := c.Container.GetService("auth").(services.InterfaceAuthService)
	user, token, err := authService.GuestLogin(req.Name)
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.SuccessWithMessage(c.Ctx, "เข้าสู่ระบบแบบเร่งด่วนสำเร็จ", LoginData{
		Token: token,
		User:  sessionPayload(user),
	})
}

// Logout 处理登出
// @Summary      Logout
// @Description  Clear the server-side session record for the current user
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Router       /auth/logout [post]
func (c *AuthController) Logout() {
	username := c.Ctx.GetString("username")

	authService := c.Container.GetService("auth").(services.InterfaceAuthService)
	if err := authService.Logout(username); err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.SuccessWithMessage(c.Ctx, "ออกจากระบบแล้ว", nil)
}

// sessionPayload 把会话用户转成带角色标记的响应数据
func sessionPayload(user models.SessionUser) gin.H {
	payload := gin.H{
		"username": user.SessionUsername(),
		"name":     user.DisplayName(),
		"role":     user.SessionRole(),
	}
	switch u := user.(type) {
	case models.TechnicianSession:
		payload["teamId"] = u.TeamID
	case models.TeacherSession:
		if u.GradeLevel != "" {
			payload["gradeLevel"] = u.GradeLevel
		}
		if u.Email != "" {
			payload["email"] = u.Email
		}
		if u.Guest {
			payload["guest"] = true
		}
	}
	return payload
}
