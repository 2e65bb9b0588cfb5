package sender

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	texttemplate "text/template"

	"storefront/config"
	"storefront/internal/model"

	gopkgmail "gopkg.in/gomail.v2"
)

type dialer interface {
	DialAndSend(m ...*gopkgmail.Message) error
}

type EmailSender struct {
	cfg    *config.NotifierConfig
	dialer dialer
}

func NewEmailSender(cfg *config.NotifierConfig) *EmailSender {
	d := gopkgmail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	d.SSL = cfg.SMTPSSL
	return &EmailSender{cfg: cfg, dialer: d}
}

func (s *EmailSender) SendEmail(n model.EmailNotification) error {
	m, err := s.Build(n)
	if err != nil {
		return err
	}
	return s.dialer.DialAndSend(m)
}

// Build собирает письмо из пары шаблонов <name>.html и <name>.txt.
func (s *EmailSender) Build(n model.EmailNotification) (*gopkgmail.Message, error) {
	htmlBody, err := s.renderHTML(n.Template+".html", n.Data)
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	plainBody, err := s.renderText(n.Template+".txt", n.Data)
	if err != nil {
		return nil, fmt.Errorf("render plain: %w", err)
	}

	m := gopkgmail.NewMessage()
	m.SetHeader("From", s.cfg.SMTPFrom)
	m.SetHeader("To", n.To)
	m.SetHeader("Subject", n.Subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if strings.Contains(htmlBody, "cid:logo") {
		iconPath := filepath.Join(s.cfg.TMPLDir, "icon.png")
		if _, errStat := os.Stat(iconPath); errStat == nil {
			m.Embed(iconPath, gopkgmail.SetHeader(map[string][]string{"Content-ID": {"<logo>"}}))
		}
	}
	return m, nil
}

type executor interface {
	Execute(w io.Writer, data any) error
}

func (s *EmailSender) renderHTML(file string, data map[string]any) (string, error) {
	content, err := os.ReadFile(filepath.Join(s.cfg.TMPLDir, file))
	if err != nil {
		return "", err
	}
	tmpl, err := htmltemplate.New(file).Parse(string(content))
	if err != nil {
		return "", err
	}
	return execute(tmpl, data)
}

// renderText: текстовая часть письма не экранируется.
func (s *EmailSender) renderText(file string, data map[string]any) (string, error) {
	content, err := os.ReadFile(filepath.Join(s.cfg.TMPLDir, file))
	if err != nil {
		return "", err
	}
	tmpl, err := texttemplate.New(file).Parse(string(content))
	if err != nil {
		return "", err
	}
	return execute(tmpl, data)
}

func execute(tmpl executor, data map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
