package mail

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"text/template"

	"github.com/hrms-project/hrms-portal/internal/domain"
)

//go:embed tpl_files/*
var TemplateFiles embed.FS

// TemplateHandler holds the parsed mail templates.
type TemplateHandler struct {
	portalUrl     string
	textTemplates *template.Template
}

func newTemplateHandler(portalUrl string) (*TemplateHandler, error) {
	txtTemplateCache, err := template.New("Txt").ParseFS(TemplateFiles, "tpl_files/*.gotpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text template files: %w", err)
	}

	handler := &TemplateHandler{
		portalUrl:     portalUrl,
		textTemplates: txtTemplateCache,
	}

	return handler, nil
}

// GetWelcomeMail returns the text body for the mail that is sent to freshly
// created accounts.
func (c TemplateHandler) GetWelcomeMail(user *domain.User) (io.Reader, error) {
	var tplBuff bytes.Buffer

	err := c.textTemplates.ExecuteTemplate(&tplBuff, "welcome_mail.gotpl", map[string]any{
		"User":      user,
		"PortalUrl": c.portalUrl,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute template welcome_mail.gotpl: %w", err)
	}

	return &tplBuff, nil
}
