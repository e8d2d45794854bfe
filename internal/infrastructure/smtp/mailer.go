package smtp

import (
	"fmt"
	"net/smtp"

	"github.com/storefront-api/internal/config"
)

// Mailer sends emails. The concrete mailer is constructed once at startup and
// shared process-wide; credentials are validated by config.Validate before the
// server starts accepting requests.
type Mailer interface {
	SendEmail(to, subject, body string) error
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
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		m.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}

// OtpEmail renders the verification-code message body.
func OtpEmail(code string, ttlMinutes int) (subject, body string) {
	subject = "Your verification code"
	body = fmt.Sprintf(
		`<div style="font-family:Arial,sans-serif"><p>Your verification code is:</p>`+
			`<div style="font-size:28px;font-weight:700;letter-spacing:4px">%s</div>`+
			`<p>This code expires in %d minutes. If you didn't request it, ignore this email.</p></div>`,
		code, ttlMinutes)
	return subject, body
}
