package smtp

import (
	"fmt"
	"net/smtp"

	"github.com/go-board-api/internal/config"
)

// Mailer dispatches account emails. Delivery failure is reported to the
// caller but is never fatal to the operation that requested the email.
type Mailer interface {
	SendVerificationEmail(to, username, token string) error
}

type mailer struct {
	host     string
	port     string
	from     string
	username string
	password string
	baseURL  string
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		baseURL:  cfg.AppBaseURL,
	}
}

func (m *mailer) SendVerificationEmail(to, username, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", m.baseURL, token)
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nConfirm your email address by opening the link below within one hour:\r\n\r\n%s\r\n\r\nIf you did not create an account, ignore this message.\r\n",
		username, link,
	)
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.from, to, "Confirm your email", body)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}
