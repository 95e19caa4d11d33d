// Package mailer sends transactional email (account verification) over SMTP.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/stevegmedia/voxceleris/internal/server/config"
)

// Sender dispatches a single email. body is HTML, altBody the plain-text
// alternative.
type Sender interface {
	Send(to, subject, body, altBody string) error
}

// Mailer is the SMTP-backed Sender.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	name   string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.EmailFrom,
		name:   cfg.SiteName,
	}
}

func (m *Mailer) Send(to, subject, body, altBody string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.name)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	if altBody != "" {
		msg.AddAlternative("text/plain", altBody)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	return nil
}
