package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"gamepulse-go/internal/config"
	"gamepulse-go/pkg/logger"

	"go.uber.org/zap"
)

// Mailer SMTP 邮件发送器
// SMTP 未配置时发送降级为 no-op，本地开发不需要邮件服务。
type Mailer struct {
	cfg *config.SMTPConfig
}

func NewMailer(cfg *config.SMTPConfig) *Mailer {
	if !cfg.Enabled() {
		logger.Warn("SMTP not configured, outgoing mail disabled")
	}
	return &Mailer{cfg: cfg}
}

// Send 发送一封 HTML 邮件
func (m *Mailer) Send(to []string, subject, htmlBody string) error {
	if !m.cfg.Enabled() {
		logger.Debug("Mail skipped, SMTP disabled", zap.Strings("to", to))
		return nil
	}

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	mime := "MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n"
	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: %s <%s>\r\n"+
		"Subject: %s\r\n"+
		"%s%s", strings.Join(to, ","), m.cfg.FromName, m.cfg.From, subject, mime, htmlBody))

	if err := smtp.SendMail(m.cfg.Addr(), auth, m.cfg.From, to, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	logger.Info("Mail sent", zap.Strings("to", to), zap.String("subject", subject))
	return nil
}
