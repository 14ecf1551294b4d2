package service

import (
	"fmt"
	"strings"

	gomail "gopkg.in/gomail.v2"
)

// SMTPConfig carries the per-request mail credentials together with the
// server settings from ENV. Credentials are never persisted.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
	UseTLS   bool
}

func (c SMTPConfig) Validate() error {
	if strings.TrimSpace(c.Username) == "" || c.Password == "" {
		return fmt.Errorf("email credentials required")
	}
	if strings.TrimSpace(c.Host) == "" || c.Port == 0 {
		return fmt.Errorf("mail server not configured")
	}
	return nil
}

// Sender delivers one rendered message. Split out so dispatch can be tested
// without a live SMTP server.
type Sender interface {
	Send(to string, bcc []string, subject, htmlBody string) error
}

// Mailer sends over SMTP with a fresh dialer per message, so concurrent
// dispatches never share connection state.
type Mailer struct {
	cfg SMTPConfig
}

func NewMailer(cfg SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) dialer() *gomail.Dialer {
	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if m.cfg.Port == 465 {
		d.SSL = true
	}
	return d
}

func (m *Mailer) Send(to string, bcc []string, subject, htmlBody string) error {
	from := m.cfg.Sender
	if strings.TrimSpace(from) == "" {
		from = m.cfg.Username
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	if len(bcc) > 0 {
		msg.SetHeader("Bcc", bcc...)
	}
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	return m.dialer().DialAndSend(msg)
}

// Verify opens and closes an authenticated connection without sending
// anything. Used by the config test endpoint.
func (m *Mailer) Verify() error {
	closer, err := m.dialer().Dial()
	if err != nil {
		return err
	}
	return closer.Close()
}
