package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer is the outbound email transport. Implementations are best-effort
// collaborators: callers log failures and move on.
type Mailer interface {
	SendJobStatusEmail(toEmail, jobTitle, message string) error
}

type smtpMailer struct {
	host     string
	port     int
	from     string
	password string
}

// NewSMTP returns a gomail-backed Mailer.
func NewSMTP(host string, port int, from, password string) Mailer {
	return &smtpMailer{host: host, port: port, from: from, password: password}
}

func (m *smtpMailer) SendJobStatusEmail(toEmail, jobTitle, message string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Update on your listing: %s", jobTitle))
	msg.SetBody("text/plain", message)

	d := gomail.NewDialer(m.host, m.port, m.from, m.password)
	return d.DialAndSend(msg)
}

// Noop is used when SMTP is not configured (development, tests).
type Noop struct{}

func (Noop) SendJobStatusEmail(string, string, string) error { return nil }
