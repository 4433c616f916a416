package smtp

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/frontdoor-labs/frontdoor-api/internal/config"
)

// Mailer sends emails.
type Mailer interface {
	SendEmail(to, subject, body string) error
	SendVerificationCode(to, code string) error
}

type mailer struct {
	host     string
	port     string
	from     string
	username string
	password string
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}
}

func (m *mailer) SendEmail(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}

// SendVerificationCode emails a one-time intake verification code.
func (m *mailer) SendVerificationCode(to, code string) error {
	addr := strings.ToLower(strings.TrimSpace(to))
	if addr == "" || !strings.Contains(addr, "@") {
		return fmt.Errorf("invalid email address %q", to)
	}
	body := fmt.Sprintf(
		"Your verification code is: %s\n\nThis code expires in 10 minutes. If you didn't request this, you can ignore this email.",
		code,
	)
	return m.SendEmail(addr, "Your verification code", body)
}
