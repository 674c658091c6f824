package service

import (
	"fmt"
	"strings"

	"accountit/config"

	"gopkg.in/gomail.v2"
)

// EmailService 邮件服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendResetTokenEmail 发送密码重置令牌邮件
// 账号没有独立的邮箱字段，只有用户名本身是邮箱地址时才能投递
func (s *EmailService) SendResetTokenEmail(username, token string) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("邮件服务未启用，请配置 ACCOUNTIT_EMAIL_ENABLED=true")
	}
	if !strings.Contains(username, "@") {
		return fmt.Errorf("用户名 %s 不是邮箱地址，无法投递重置邮件", username)
	}

	subject := "【AccountIt】密码重置令牌"
	body := s.generateResetTokenEmailBody(username, token)

	return s.sendEmail(username, subject, body)
}

// generateResetTokenEmailBody 生成重置令牌邮件内容
func (s *EmailService) generateResetTokenEmailBody(username, token string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Microsoft YaHei', Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #2563eb, #1d4ed8); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 40px 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        .code-box { background: linear-gradient(135deg, #eff6ff, #dbeafe); border: 2px dashed #2563eb; border-radius: 12px; padding: 30px; text-align: center; margin: 30px 0; }
        .code { font-size: 16px; font-weight: bold; color: #1d4ed8; font-family: 'Courier New', monospace; word-break: break-all; }
        .warning { background: #fff3cd; border-left: 4px solid #ffc107; padding: 15px; margin: 20px 0; border-radius: 4px; }
        .warning p { margin: 0; color: #856404; font-size: 14px; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>💰 AccountIt</h1>
        </div>
        <div class="content">
            <p>尊敬的 <strong>%s</strong>，您好！</p>
            <p>我们收到了您的密码重置请求，请在客户端中输入以下重置令牌：</p>
            <div class="code-box">
                <span class="code">%s</span>
            </div>
            <div class="warning">
                <p>⚠️ 此令牌有效期为 <strong>30 分钟</strong>，且只能使用一次。</p>
                <p>⚠️ 如果您没有请求重置密码，请忽略此邮件。</p>
            </div>
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复</p>
            <p>© AccountIt - 您的个人财务管理助手</p>
        </div>
    </div>
</body>
</html>
`, username, token)
}

// sendEmail 发送邮件
func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	return nil
}

// SendTestEmail 发送测试邮件
func (s *EmailService) SendTestEmail(toEmail string) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("邮件服务未启用")
	}

	subject := "【AccountIt】邮件配置测试"
	body := `
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
    <h2>✅ 邮件配置成功</h2>
    <p>如果您收到这封邮件，说明邮件服务配置正确。</p>
    <p style="color: #666;">—— AccountIt</p>
</body>
</html>
`
	return s.sendEmail(toEmail, subject, body)
}
