package services

import (
	"errors"
	"testing"

	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/domain/models"
	"github.com/kannnkannn-debug/school-facility-maintenance-system/utils"
)

func newTestRegistrationService(state *AppState) InterfaceRegistrationService {
	return NewRegistrationService(state, nil)
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Username:   "kru_somsri",
		Password:   "secret123",
		Name:       "ครูสมศรี ใจดี",
		Email:      "somsri@school.ac.th",
		GradeLevel: "มัธยมศึกษาปีที่ 1",
	}
}

func TestRegisterCreatesPendingTeacher(t *testing.T) {
	state := newTestState()
	svc := newTestRegistrationService(state)

	user, err := svc.Register(validRegistration())
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if user.Status != models.UserStatusPending {
		t.Errorf("新注册账号应为待审批状态, 实际 %s", user.Status)
	}
	if user.Role != models.RoleTeacher {
		t.Errorf("注册账号角色应为教师, 实际 %s", user.Role)
	}
	if user.CreatedAt == 0 {
		t.Error("应记录注册时间")
	}
	// 口令只保存哈希
	if user.Password == "secret123" {
		t.Error("口令不应明文入库")
	}
	if !utils.CheckPasswordHash("secret123", user.Password) {
		t.Error("口令哈希应可校验")
	}
}

func TestRegisterRejectsIncompleteInput(t *testing.T) {
	state := newTestState()
	svc := newTestRegistrationService(state)

	cases := []RegisterInput{
		{Username: "", Password: "x", Name: "y"},
		{Username: "a", Password: " ", Name: "y"},
		{Username: "a", Password: "x", Name: ""},
	}
	for _, input := range cases {
		if _, err := svc.Register(input); !errors.Is(err, ErrInvalidRegistration) {
			t.Errorf("不完整的注册应被拒绝, 实际 %v", err)
		}
	}
}

func TestRegisterDuplicateUsernameAcrossStatuses(t *testing.T) {
	state := newTestState()
	svc := newTestRegistrationService(state)

	if _, err := svc.Register(validRegistration()); err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	// 被拒绝的用户名同样占用
	if _, err := svc.Reject("kru_somsri"); err != nil {
		t.Fatalf("驳回失败: %v", err)
	}
	if _, err := svc.Register(validRegistration()); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("重复用户名应被拒绝, 实际 %v", err)
	}
}

func TestApproveAndAuthenticate(t *testing.T) {
	state := newTestState()
	svc := newTestRegistrationService(state)

	if _, err := svc.Register(validRegistration()); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	// 待审批阶段不能登录
	if _, err := svc.AuthenticateTeacher("kru_somsri", "secret123"); !errors.Is(err, ErrAccountPending) {
		t.Errorf("待审批账号登录应返回 ErrAccountPending, 实际 %v", err)
	}

	approved, err := svc.Approve("kru_somsri")
	if err != nil {
		t.Fatalf("审批失败: %v", err)
	}
	if approved.Status != models.UserStatusApproved {
		t.Errorf("审批后状态应为已批准, 实际 %s", approved.Status)
	}

	user, err := svc.AuthenticateTeacher("kru_somsri", "secret123")
	if err != nil {
		t.Fatalf("审批后登录失败: %v", err)
	}
	if user.Username != "kru_somsri" {
		t.Error("登录结果应为本人记录")
	}

	// 错误口令依然被拒绝
	if _, err := svc.AuthenticateTeacher("kru_somsri", "wrong"); !errors.Is(err, ErrBadCredential) {
		t.Errorf("错误口令应返回 ErrBadCredential, 实际 %v", err)
	}
}

func TestRejectIsDistinguishableFromUnknown(t *testing.T) {
	state := newTestState()
	svc := newTestRegistrationService(state)

	if _, err := svc.Register(validRegistration()); err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if _, err := svc.Reject("kru_somsri"); err != nil {
		t.Fatalf("驳回失败: %v", err)
	}

	// 被拒绝的账号提示审批结果而不是"用户不存在"
	if _, err := svc.AuthenticateTeacher("kru_somsri", "secret123"); !errors.Is(err, ErrAccountRejected) {
		t.Errorf("被拒绝账号登录应返回 ErrAccountRejected, 实际 %v", err)
	}
	if _, err := svc.AuthenticateTeacher("no_such_user", "x"); !errors.Is(err, ErrBadCredential) {
		t.Errorf("未知用户登录应返回 ErrBadCredential, 实际 %v", err)
	}
}

func TestApproveOverturnsRejection(t *testing.T) {
	state := newTestState()
	svc := newTestRegistrationService(state)

	if _, err := svc.Register(validRegistration()); err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if _, err := svc.Reject("kru_somsri"); err != nil {
		t.Fatalf("驳回失败: %v", err)
	}
	// 管理员可以改判：拒绝后再批准
	approved, err := svc.Approve("kru_somsri")
	if err != nil {
		t.Fatalf("改判审批失败: %v", err)
	}
	if approved.Status != models.UserStatusApproved {
		t.Errorf("改判后状态应为已批准, 实际 %s", approved.Status)
	}
	if _, err := svc.AuthenticateTeacher("kru_somsri", "secret123"); err != nil {
		t.Errorf("改判后应可登录: %v", err)
	}
}

func TestApproveUnknownUser(t *testing.T) {
	state := newTestState()
	svc := newTestRegistrationService(state)

	if _, err := svc.Approve("no_such_user"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("审批未知用户应返回 ErrUserNotFound, 实际 %v", err)
	}
	if _, err := svc.Reject("no_such_user"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("驳回未知用户应返回 ErrUserNotFound, 实际 %v", err)
	}
}

func TestRegisterPersistsUsers(t *testing.T) {
	persister := &memoryPersister{}
	state := NewAppState(persister)
	svc := newTestRegistrationService(state)

	if _, err := svc.Register(validRegistration()); err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if persister.saveUserCalls != 1 {
		t.Errorf("注册应写入用户快照, 实际写入 %d 次", persister.saveUserCalls)
	}
	if _, err := svc.Approve("kru_somsri"); err != nil {
		t.Fatalf("审批失败: %v", err)
	}
	if persister.saveUserCalls != 2 {
		t.Errorf("审批应重写用户快照, 实际写入 %d 次", persister.saveUserCalls)
	}
	if persister.users == nil || (*persister.users)[0].Status != models.UserStatusApproved {
		t.Error("快照应反映审批后的状态")
	}
}
