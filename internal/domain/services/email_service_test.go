package services

import (
	"mime"
	"strings"
	"testing"
)

// 主题含泰文，头部必须是RFC 2047编码后的纯ASCII
func TestApprovalMessageEncodesSubject(t *testing.T) {
	msg := string(approvalMessage("noreply@school.ac.th", "kru@school.ac.th", "ครูสมศรี ใจดี"))

	var subjectLine string
	for _, line := range strings.Split(msg, "\r\n") {
		if strings.HasPrefix(line, "Subject: ") {
			subjectLine = strings.TrimPrefix(line, "Subject: ")
			break
		}
	}
	if subjectLine == "" {
		t.Fatal("邮件缺少 Subject 头")
	}

	for _, r := range subjectLine {
		if r > 127 {
			t.Fatalf("Subject 头不应含原始非ASCII字符: %q", subjectLine)
		}
	}
	if !strings.HasPrefix(subjectLine, "=?UTF-8?q?") {
		t.Errorf("Subject 应为Q编码, 实际 %q", subjectLine)
	}

	decoded, err := new(mime.WordDecoder).DecodeHeader(subjectLine)
	if err != nil {
		t.Fatalf("Subject 解码失败: %v", err)
	}
	if decoded != "แจ้งผลการสมัครใช้งานระบบแจ้งซ่อม" {
		t.Errorf("Subject 解码结果 = %q", decoded)
	}

	if !strings.Contains(msg, "เรียน ครูสมศรี ใจดี") {
		t.Error("正文应包含收件人姓名")
	}
	if !strings.Contains(msg, "To: kru@school.ac.th") {
		t.Error("应写入收件人地址")
	}
}
