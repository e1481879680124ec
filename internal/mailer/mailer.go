package mailer

import (
	"bytes"
	"context"
	"embed"
	"html/template"
)

const (
	FromName             = "CoCraft Redesign"
	maxRetries           = 3
	ResultsReadyTemplate = "results_ready.tmpl"
)

// FS embed files in 'templates' folder
//
//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(ctx context.Context, templateFile, email string, data any) (int, error)
}

type message struct {
	subject   string
	plainBody string
	htmlBody  string
}

// render executes the subject, plainBody and htmlBody blocks of templateFile.
func render(templateFile string, data any) (*message, error) {
	tmpl, err := template.ParseFS(FS, "templates/"+templateFile)
	if err != nil {
		return nil, err
	}

	var subject, plainBody, htmlBody bytes.Buffer
	if err := tmpl.ExecuteTemplate(&subject, "subject", data); err != nil {
		return nil, err
	}
	if err := tmpl.ExecuteTemplate(&plainBody, "plainBody", data); err != nil {
		return nil, err
	}
	if err := tmpl.ExecuteTemplate(&htmlBody, "htmlBody", data); err != nil {
		return nil, err
	}

	return &message{
		subject:   subject.String(),
		plainBody: plainBody.String(),
		htmlBody:  htmlBody.String(),
	}, nil
}
