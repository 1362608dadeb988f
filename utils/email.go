package utils

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/pedrosilva76986974-afk/Back-birthday-fund/config"
	"go.uber.org/zap"
)

// Mailer sends plain-text mail over SMTP with STARTTLS.
// An unconfigured Mailer logs and skips delivery.
type Mailer struct {
	host      string
	port      string
	username  string
	password  string
	fromName  string
	fromEmail string
}

func NewMailer(cfg *config.Config) *Mailer {
	from := cfg.SMTPFromEmail
	if from == "" {
		from = cfg.SMTPUsername
	}
	return &Mailer{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromName:  cfg.SMTPFromName,
		fromEmail: from,
	}
}

func (m *Mailer) Configured() bool {
	return m.host != "" && m.username != "" && m.password != ""
}

func (m *Mailer) Send(to, subject, body string) error {
	if !m.Configured() {
		Log.Warn("⚠️ SMTP not configured, email not sent", zap.String("to", to), zap.String("subject", subject))
		return nil
	}

	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	defer client.Close()

	if err = client.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}
	if err = client.Auth(smtp.PlainAuth("", m.username, m.password, m.host)); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	if err = client.Mail(m.fromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(m.message(to, subject, body)); err != nil {
		w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}
	if err := client.Quit(); err != nil {
		Log.Debug("smtp quit", zap.Error(err))
	}

	Log.Info("📧 Email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

func (m *Mailer) message(to, subject, body string) []byte {
	from := m.fromEmail
	if m.fromName != "" {
		from = fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail)
	}

	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n" + body)
	return []byte(b.String())
}
