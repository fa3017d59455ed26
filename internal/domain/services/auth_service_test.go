package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/models"
)

func newTestAuthService(state *AppState) (InterfaceAuthService, InterfaceJWTService) {
	cfg := newTestConfig()
	jwtService := NewJWTService(cfg)
	registration := NewRegistrationService(state, nil)
	return NewAuthService(cfg, jwtService, registration, nil), jwtService
}

func TestAdminLogin(t *testing.T) {
	svc, jwtService := newTestAuthService(newTestState())

	user, token, err := svc.Login(LoginInput{Username: "admin_mab", Password: "mab_admin2024", Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("管理员登录失败: %v", err)
	}
	if user.SessionRole() != models.RoleAdmin {
		t.Errorf("会话角色应为管理员, 实际 %s", user.SessionRole())
	}

	claims, err := jwtService.ExtractClaims(token)
	if err != nil {
		t.Fatalf("令牌解析失败: %v", err)
	}
	if claims.Username != "admin_mab" || claims.Role != string(models.RoleAdmin) {
		t.Error("令牌声明应与会话一致")
	}

	if _, _, err := svc.Login(LoginInput{Username: "admin_mab", Password: "wrong", Role: models.RoleAdmin}); !errors.Is(err, ErrBadCredential) {
		t.Errorf("错误口令应返回 ErrBadCredential, 实际 %v", err)
	}
}

func TestTechnicianLoginCarriesTeam(t *testing.T) {
	svc, jwtService := newTestAuthService(newTestState())

	user, token, err := svc.Login(LoginInput{Username: "tech_elec", Password: "mab_tech1", Role: models.RoleTechnician})
	if err != nil {
		t.Fatalf("技工登录失败: %v", err)
	}
	session, ok := user.(models.TechnicianSession)
	if !ok {
		t.Fatalf("技工登录应产生技工会话, 实际 %T", user)
	}
	if session.TeamID != 1 {
		t.Errorf("tech_elec 应隶属团队1, 实际 %d", session.TeamID)
	}

	claims, err := jwtService.ExtractClaims(token)
	if err != nil {
		t.Fatalf("令牌解析失败: %v", err)
	}
	if claims.TeamID == nil || *claims.TeamID != 1 {
		t.Error("令牌应携带团队ID")
	}

	if _, _, err := svc.Login(LoginInput{Username: "tech_none", Password: "x", Role: models.RoleTechnician}); !errors.Is(err, ErrBadCredential) {
		t.Errorf("未知技工应返回 ErrBadCredential, 实际 %v", err)
	}
}

func TestTeacherLoginUsesRegistration(t *testing.T) {
	state := newTestState()
	svc, _ := newTestAuthService(state)
	registration := NewRegistrationService(state, nil)

	if _, err := registration.Register(validRegistration()); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	// 待审批阶段登录失败
	if _, _, err := svc.Login(LoginInput{Username: "kru_somsri", Password: "secret123", Role: models.RoleTeacher}); !errors.Is(err, ErrAccountPending) {
		t.Errorf("待审批教师登录应返回 ErrAccountPending, 实际 %v", err)
	}

	if _, err := registration.Approve("kru_somsri"); err != nil {
		t.Fatalf("审批失败: %v", err)
	}
	user, _, err := svc.Login(LoginInput{Username: "kru_somsri", Password: "secret123", Role: models.RoleTeacher})
	if err != nil {
		t.Fatalf("审批后登录失败: %v", err)
	}
	session, ok := user.(models.TeacherSession)
	if !ok {
		t.Fatalf("教师登录应产生教师会话, 实际 %T", user)
	}
	if session.GradeLevel != "มัธยมศึกษาปีที่ 1" {
		t.Error("教师会话应携带年级组")
	}
	if session.Guest {
		t.Error("注册教师不是访客")
	}
}

func TestGuestLogin(t *testing.T) {
	svc, _ := newTestAuthService(newTestState())

	user, token, err := svc.GuestLogin("สมศรี")
	if err != nil {
		t.Fatalf("快速报修登录失败: %v", err)
	}
	if token == "" {
		t.Error("访客同样应获得令牌")
	}

	session, ok := user.(models.TeacherSession)
	if !ok {
		t.Fatalf("访客应产生教师会话, 实际 %T", user)
	}
	if !session.Guest {
		t.Error("访客会话应带访客标记")
	}
	if !strings.HasPrefix(session.Username, "guest_") {
		t.Errorf("访客用户名应带 guest_ 前缀, 实际 %s", session.Username)
	}
	if !strings.HasSuffix(session.Name, "(Guest)") {
		t.Errorf("访客显示名应带 (Guest) 后缀, 实际 %s", session.Name)
	}
	if session.GradeLevel != models.GuestGradeLevel {
		t.Errorf("访客年级组应为快速报修通道, 实际 %s", session.GradeLevel)
	}

	if _, _, err := svc.GuestLogin("   "); !errors.Is(err, ErrGuestNameRequired) {
		t.Errorf("空称呼应返回 ErrGuestNameRequired, 实际 %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	jwtService := NewJWTService(newTestConfig())

	token, err := jwtService.GenerateToken(models.AdminSession{Username: "admin_mab", Name: "ผู้ดูแลระบบ"})
	if err != nil {
		t.Fatalf("签发令牌失败: %v", err)
	}
	parsed, err := jwtService.ValidateToken(token)
	if err != nil || !parsed.Valid {
		t.Fatalf("令牌校验失败: %v", err)
	}

	// 换一把密钥签发的令牌应被拒绝
	otherCfg := newTestConfig()
	otherCfg.JWTSecretKey = "another-secret"
	forged, err := NewJWTService(otherCfg).GenerateToken(models.AdminSession{Username: "admin_mab", Name: "ผู้ดูแลระบบ"})
	if err != nil {
		t.Fatalf("签发令牌失败: %v", err)
	}
	if _, err := jwtService.ValidateToken(forged); err == nil {
		t.Error("异钥令牌应被拒绝")
	}

	if _, err := jwtService.ExtractClaims("not.a.token"); err == nil {
		t.Error("畸形令牌应被拒绝")
	}
}
