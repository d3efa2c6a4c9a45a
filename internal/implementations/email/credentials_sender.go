package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"secureauth/internal/core/domain/account"
	e "secureauth/internal/core/domain/errors"

	"github.com/golang-module/carbon/v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

type credentialsTemplate struct {
	subject string
	title   string
	tagline string
	html    *template.Template
}

type credentialsTemplateParams struct {
	Title    string
	Tagline  string
	ID       string
	Email    string
	Password string
	IssuedAt string
}

// CredentialsSender renders credential emails and hands them to a Transport.
type CredentialsSender struct {
	transport Transport
	templates map[account.CredentialsKind]credentialsTemplate
}

func NewCredentialsSender(transport Transport) *CredentialsSender {
	if transport == nil {
		panic(e.NewNilArgumentError("transport"))
	}
	return &CredentialsSender{
		transport: transport,
		templates: map[account.CredentialsKind]credentialsTemplate{
			account.CredentialsIssued: {
				subject: "Welcome to SecureAuth - Your Account Credentials",
				title:   "Welcome to SecureAuth",
				tagline: "Your account is ready!",
				html:    mustParse("welcome.html"),
			},
			account.CredentialsReset: {
				subject: "SecureAuth - Your Password Has Been Reset",
				title:   "Password Reset - SecureAuth",
				tagline: "Password Reset Request",
				html:    mustParse("reset.html"),
			},
		},
	}
}

func mustParse(name string) *template.Template {
	return template.Must(
		template.New(name).ParseFS(templatesFS, "templates/layout.html", "templates/"+name),
	)
}

func (s *CredentialsSender) SendCredentials(
	ctx context.Context,
	kind account.CredentialsKind,
	credentials account.Credentials,
) error {
	tmpl, ok := s.templates[kind]
	if !ok {
		return newSendError(ReasonInvalidMessage, fmt.Errorf("no template for %v credentials", kind))
	}

	var body bytes.Buffer
	err := tmpl.html.ExecuteTemplate(&body, "layout", credentialsTemplateParams{
		Title:    tmpl.title,
		Tagline:  tmpl.tagline,
		ID:       string(credentials.ID),
		Email:    string(credentials.Email),
		Password: string(credentials.Password),
		IssuedAt: carbon.Time2Carbon(credentials.IssuedAt.UTC()).ToDateTimeString() + " UTC",
	})
	if err != nil {
		return newSendError(ReasonInvalidMessage, err)
	}

	return s.transport.Send(ctx, Message{
		To:      string(credentials.Email),
		Subject: tmpl.subject,
		Body:    body.String(),
		IsHTML:  true,
	})
}
