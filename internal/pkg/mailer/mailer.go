package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"solarops/internal/config"
)

// Mailer sends HTML mail over SMTP. Delivery is best effort: callers
// log failures but never roll back state on them.
type Mailer struct {
	host string
	port string
	from string
	auth smtp.Auth
}

func New(cfg config.SMTP) *Mailer {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &Mailer{
		host: cfg.Host,
		port: cfg.Port,
		from: cfg.From,
		auth: auth,
	}
}

func (m *Mailer) Send(recipients []string, subject, htmlBody string) error {
	if m.host == "" {
		return fmt.Errorf("smtp host is not configured")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(recipients, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)

	addr := m.host + ":" + m.port
	return smtp.SendMail(addr, m.auth, m.from, recipients, []byte(b.String()))
}
