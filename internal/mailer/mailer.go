package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

const (
	FromName            = "Vendorly"
	maxRetries          = 3
	UserWelcomeTemplate = "user_welcome.tmpl"
	ReviewModeratedTmpl = "review_moderated.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, username, email string, data any) (int, error)
}

// render executes the "subject" and "body" blocks of a template in FS.
func render(templateFile string, data any) (subject, body string, err error) {
	tmpl, err := template.ParseFS(FS, "templates/"+templateFile)
	if err != nil {
		return "", "", fmt.Errorf("parse template %s: %w", templateFile, err)
	}

	var s, b bytes.Buffer
	if err := tmpl.ExecuteTemplate(&s, "subject", data); err != nil {
		return "", "", err
	}
	if err := tmpl.ExecuteTemplate(&b, "body", data); err != nil {
		return "", "", err
	}
	return s.String(), b.String(), nil
}

// Noop satisfies Client when no SMTP server is configured.
type Noop struct{}

func (Noop) Send(string, string, string, any) (int, error) { return 0, nil }
