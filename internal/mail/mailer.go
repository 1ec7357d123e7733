package mail

import (
	"fmt"
	"log"
	"net/smtp"
)

// Mailer sends transactional email. Delivery is fire-and-forget: callers log
// failures and never retry.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTPMailer creates a mailer backed by a plain-auth SMTP server
func NewSMTPMailer(host string, port int, username, password, from string) Mailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &smtpMailer{
		addr: fmt.Sprintf("%s:%d", host, port),
		auth: auth,
		from: from,
	}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.from, to, subject, body)
	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

type logMailer struct{}

// NewLogMailer creates a mailer that only logs, for running without an SMTP
// server configured.
func NewLogMailer() Mailer {
	return &logMailer{}
}

func (m *logMailer) Send(to, subject, body string) error {
	log.Printf("mail (not sent, no SMTP configured) to=%s subject=%q\n%s", to, subject, body)
	return nil
}
