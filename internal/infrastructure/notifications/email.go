package notifications

import (
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"
)

// SMTPMailer sends transactional email over SMTP.
type SMTPMailer struct {
	host      string
	port      int
	user      string
	password  string
	fromEmail string
	logger    *slog.Logger
}

// NewSMTPMailer creates a new SMTP mailer.
func NewSMTPMailer(host string, port int, user, password, fromEmail string, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{
		host:      host,
		port:      port,
		user:      user,
		password:  password,
		fromEmail: fromEmail,
		logger:    logger,
	}
}

// Send delivers one HTML email. Without SMTP configuration the mail is
// logged instead of sent.
func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	if m.host == "" || m.fromEmail == "" {
		m.logger.Info("email delivery skipped, smtp not configured",
			slog.String("to", to), slog.String("subject", subject))
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.fromEmail)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.host, m.port, m.user, m.password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
