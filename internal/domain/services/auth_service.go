package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/models"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/infrastructure/config"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/pkg/logger"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/utils"
)

// ErrGuestNameRequired 快速报修必须填写称呼
var ErrGuestNameRequired = errors.New("请填写您的称呼")

// LoginInput 登录请求的显式输入
type LoginInput struct {
	Username string
	Password string
	Role     models.UserRole
}

// InterfaceAuthService 定义登录分发服务接口
//
// 状态机：匿名 → 已认证(角色)。切换角色必须先登出；
// 登出同时清除会话记录与管理员的巡检子模式。
type InterfaceAuthService interface {
	Login(input LoginInput) (models.SessionUser, string, error)
	GuestLogin(name string) (models.SessionUser, string, error)
	Logout(username string) error
}

// AuthService 按角色分发登录请求
type AuthService struct {
	Config       *config.Config
	JWT          InterfaceJWTService
	Registration InterfaceRegistrationService
	Sessions     InterfaceRedisService
}

// NewAuthService 创建一个新的登录分发服务
func NewAuthService(cfg *config.Config, jwtService InterfaceJWTService, registration InterfaceRegistrationService, sessions InterfaceRedisService) InterfaceAuthService {
	return &AuthService{
		Config:       cfg,
		JWT:          jwtService,
		Registration: registration,
		Sessions:     sessions,
	}
}

// Login 按角色分发登录：
// admin对照固定管理员账号，technician对照固定技工账号表，
// teacher经由注册审批流校验。
func (s *AuthService) Login(input LoginInput) (models.SessionUser, string, error) {
	switch input.Role {
	case models.RoleAdmin:
		if input.Username != s.Config.AdminUsername || input.Password != s.Config.AdminPassword {
			return nil, "", ErrBadCredential
		}
		user := models.AdminSession{Username: input.Username, Name: "ผู้ดูแลระบบ"}
		return s.establishSession(user)

	case models.RoleTechnician:
		account, ok := models.FindTechnician(input.Username)
		if !ok || account.Password != input.Password {
			return nil, "", ErrBadCredential
		}
		user := models.TechnicianSession{
			Username: account.Username,
			Name:     account.Name,
			TeamID:   account.TeamID,
		}
		return s.establishSession(user)

	default:
		// 教师登录走注册审批流
		registered, err := s.Registration.AuthenticateTeacher(input.Username, input.Password)
		if err != nil {
			return nil, "", err
		}
		user := models.TeacherSession{
			Username:   registered.Username,
			Name:       registered.Name,
			GradeLevel: registered.GradeLevel,
			Email:      registered.Email,
		}
		return s.establishSession(user)
	}
}

// GuestLogin 快速报修通道：只需非空称呼，绕过账号目录，
// 合成临时教师会话（带时间戳用户名，不落盘）
func (s *AuthService) GuestLogin(name string) (models.SessionUser, string, error) {
	if strings.TrimSpace(name) == "" {
		return nil, "", ErrGuestNameRequired
	}

	user := models.TeacherSession{
		Username:   fmt.Sprintf("guest_%d", utils.NowMillis()),
		Name:       fmt.Sprintf("%s (Guest)", name),
		GradeLevel: models.GuestGradeLevel,
		Guest:      true,
	}
	return s.establishSession(user)
}

// Logout 登出：删除会话记录。会话清理尽力而为。
func (s *AuthService) Logout(username string) error {
	if s.Sessions == nil {
		return nil
	}
	if err := s.Sessions.DeleteSession(username); err != nil {
		logger.Warning("会话清理失败 (%s): %v", username, err)
	}
	return nil
}

// establishSession 签发令牌并写入会话记录
func (s *AuthService) establishSession(user models.SessionUser) (models.SessionUser, string, error) {
	token, err := s.JWT.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	// 会话记录写入失败不阻断登录
	if s.Sessions != nil {
		if err := s.Sessions.SaveSession(user.SessionUsername(), user); err != nil {
			logger.Warning("会话记录写入失败 (%s): %v", user.SessionUsername(), err)
		}
	}

	logger.Info("用户登录: %s (%s)", user.SessionUsername(), user.SessionRole())
	return user, token, nil
}
