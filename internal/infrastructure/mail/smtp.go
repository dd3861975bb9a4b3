package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/onoja123/Modi-backend/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

// SMTPMailer sends templated HTML email over plain SMTP.
type SMTPMailer struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

func NewSMTPMailer(cfg config.SMTPConfig) (*SMTPMailer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing mail templates: %w", err)
	}
	return &SMTPMailer{cfg: cfg, templates: tmpl}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message, templateName string, vars map[string]string) error {
	var body bytes.Buffer
	if err := m.templates.ExecuteTemplate(&body, templateName+".html", vars); err != nil {
		return fmt.Errorf("rendering template %s: %w", templateName, err)
	}

	var payload bytes.Buffer
	fmt.Fprintf(&payload, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&payload, "To: %s\r\n", msg.To)
	fmt.Fprintf(&payload, "Subject: %s\r\n", msg.Subject)
	payload.WriteString("MIME-Version: 1.0\r\n")
	payload.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	payload.WriteString("\r\n")
	payload.Write(body.Bytes())

	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{msg.To}, payload.Bytes()); err != nil {
		return fmt.Errorf("sending mail to %s: %w", msg.To, err)
	}
	return nil
}
