package services

import (
	"errors"
	"strings"

	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/models"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/pkg/logger"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/utils"
)

// 注册审批流错误
var (
	ErrUsernameTaken       = errors.New("用户名已被使用")
	ErrUserNotFound        = errors.New("用户不存在")
	ErrBadCredential       = errors.New("用户名或密码错误")
	ErrAccountPending      = errors.New("账号正在等待管理员审批")
	ErrAccountRejected     = errors.New("账号未通过审批")
	ErrInvalidRegistration = errors.New("注册信息不完整")
)

// RegisterInput 教师注册的显式输入结构
type RegisterInput struct {
	Username    string
	Password    string
	Name        string
	Email       string
	PhoneNumber string
	GradeLevel  string
}

// InterfaceRegistrationService 定义注册审批流接口
type InterfaceRegistrationService interface {
	Register(input RegisterInput) (*models.RegisteredUser, error)
	Approve(username string) (*models.RegisteredUser, error)
	Reject(username string) (*models.RegisteredUser, error)
	AuthenticateTeacher(username, password string) (*models.RegisteredUser, error)
	ListUsers() []models.RegisteredUser
}

// RegistrationService 提供教师自助注册与审批服务
type RegistrationService struct {
	State  *AppState
	Mailer InterfaceEmailService
}

// NewRegistrationService 创建一个新的注册审批服务
func NewRegistrationService(state *AppState, mailer InterfaceEmailService) InterfaceRegistrationService {
	return &RegistrationService{
		State:  state,
		Mailer: mailer,
	}
}

// Register 受理注册申请：用户名全状态查重，密码入库前哈希，
// 新记录始终为待审批状态
func (s *RegistrationService) Register(input RegisterInput) (*models.RegisteredUser, error) {
	if strings.TrimSpace(input.Username) == "" ||
		strings.TrimSpace(input.Password) == "" ||
		strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidRegistration
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	s.State.Lock()
	defer s.State.Unlock()

	// 查重覆盖全部状态，被拒绝的用户名同样不可复用
	for i := range s.State.Users {
		if s.State.Users[i].Username == input.Username {
			return nil, ErrUsernameTaken
		}
	}

	user := models.RegisteredUser{
		Username:    input.Username,
		Name:        input.Name,
		Password:    hashed,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		GradeLevel:  input.GradeLevel,
		Role:        models.RoleTeacher,
		Status:      models.UserStatusPending,
		CreatedAt:   utils.NowMillis(),
	}
	s.State.Users = append(s.State.Users, user)
	s.State.PersistUsers()

	logger.Info("新注册申请: %s (%s)", user.Username, user.Name)
	return &user, nil
}

// Approve 审批通过，并异步发送通知邮件。
// 审批结果不依赖邮件是否送达：状态变更先行生效，
// 邮件失败只记录日志不回滚。
func (s *RegistrationService) Approve(username string) (*models.RegisteredUser, error) {
	s.State.Lock()
	var approved *models.RegisteredUser
	for i := range s.State.Users {
		if s.State.Users[i].Username == username {
			s.State.Users[i].Status = models.UserStatusApproved
			userCopy := s.State.Users[i]
			approved = &userCopy
			break
		}
	}
	if approved != nil {
		s.State.PersistUsers()
	}
	s.State.Unlock()

	if approved == nil {
		return nil, ErrUserNotFound
	}

	// 尽力而为的邮件通知
	if s.Mailer != nil && approved.Email != "" {
		email, name := approved.Email, approved.Name
		go func() {
			if err := s.Mailer.SendApprovalEmail(email, name); err != nil {
				logger.Warning("审批通知邮件发送失败 (%s): %v", email, err)
			} else {
				logger.Info("审批通知邮件已发送至 %s", email)
			}
		}()
	}

	return approved, nil
}

// Reject 审批拒绝。拒绝是终态，但记录保留用于审计，不发送通知。
func (s *RegistrationService) Reject(username string) (*models.RegisteredUser, error) {
	s.State.Lock()
	defer s.State.Unlock()

	for i := range s.State.Users {
		if s.State.Users[i].Username == username {
			s.State.Users[i].Status = models.UserStatusRejected
			s.State.PersistUsers()
			userCopy := s.State.Users[i]
			return &userCopy, nil
		}
	}
	return nil, ErrUserNotFound
}

// AuthenticateTeacher 校验教师登录
//
// 为了让前端区分提示：账号待审批、已拒绝、用户名或密码错误
// 分别返回不同的错误。
func (s *RegistrationService) AuthenticateTeacher(username, password string) (*models.RegisteredUser, error) {
	s.State.Lock()
	defer s.State.Unlock()

	for i := range s.State.Users {
		user := &s.State.Users[i]
		if user.Username != username || user.Role != models.RoleTeacher {
			continue
		}
		if !utils.CheckPasswordHash(password, user.Password) {
			return nil, ErrBadCredential
		}
		switch user.Status {
		case models.UserStatusPending:
			return nil, ErrAccountPending
		case models.UserStatusRejected:
			return nil, ErrAccountRejected
		}
		userCopy := *user
		return &userCopy, nil
	}
	return nil, ErrBadCredential
}

// ListUsers 返回全部注册记录的副本
func (s *RegistrationService) ListUsers() []models.RegisteredUser {
	s.State.Lock()
	defer s.State.Unlock()

	out := make([]models.RegisteredUser, len(s.State.Users))
	copy(out, s.State.Users)
	return out
}
