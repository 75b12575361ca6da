package mailer

import (
	"fmt"
	"net/smtp"

	"timetracker/config"
	"timetracker/logger"
)

type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

// New builds a Mailer from the SMTP_* configuration. When SMTP_HOST is
// empty the mailer only logs the message, so invitation and reset flows
// work in environments without a relay.
func New(cfg *config.Config) Mailer {
	if cfg.SMTPHost == "" {
		return &logMailer{}
	}
	return &smtpMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
	}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	msg := []byte("From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, msg)
}

type logMailer struct{}

func (m *logMailer) Send(to, subject, body string) error {
	logger.Infof("mail not sent (SMTP not configured): to=%s subject=%q", to, subject)
	return nil
}
