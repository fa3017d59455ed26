package services

import (
	"errors"
	"fmt"
	"mime"
	"net/smtp"

	"github.com/kannnkannn-debug/school-facility-maintenance-system/internal/infrastructure/config"
)

// ErrMailerNotConfigured SMTP未配置
var ErrMailerNotConfigured = errors.New("SMTP未配置，跳过邮件发送")

// InterfaceEmailService 定义审批通知邮件服务接口
//
// 通知协作方：尽力而为的投递，调用方不依赖其成败。
type InterfaceEmailService interface {
	SendApprovalEmail(email, name string) error
}

// EmailService 通过SMTP中继发送审批通知邮件
type EmailService struct {
	Config *config.Config
}

// NewEmailService 创建一个新的邮件服务
func NewEmailService(cfg *config.Config) InterfaceEmailService {
	return &EmailService{Config: cfg}
}

// SendApprovalEmail 发送注册审批通过的通知邮件
func (s *EmailService) SendApprovalEmail(email, name string) error {
	if s.Config.SMTPHost == "" {
		return ErrMailerNotConfigured
	}

	msg := approvalMessage(s.Config.SMTPFrom, email, name)

	var auth smtp.Auth
	if s.Config.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.Config.SMTPUsername, s.Config.SMTPPassword, s.Config.SMTPHost)
	}

	return smtp.SendMail(s.Config.GetSMTPAddr(), auth, s.Config.SMTPFrom, []string{email}, msg)
}

// approvalMessage 组装审批通知邮件。主题含非ASCII字符，按RFC 2047做Q编码，
// 否则部分中继会把原始UTF-8头改写成乱码。
func approvalMessage(from, to, name string) []byte {
	subject := mime.QEncoding.Encode("UTF-8", "แจ้งผลการสมัครใช้งานระบบแจ้งซ่อม")
	body := fmt.Sprintf("เรียน %s\r\n\r\nบัญชีของท่านได้รับการอนุมัติแล้ว สามารถเข้าสู่ระบบแจ้งซ่อมได้ทันที\r\n", name)

	return []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		from, to, subject, body,
	))
}
