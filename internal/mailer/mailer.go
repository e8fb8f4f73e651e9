package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/jkmondal/shopline-backend/pkg/config"
	pkgerrors "github.com/jkmondal/shopline-backend/pkg/errors"
)

// Mailer sends transactional email. Delivery failures never block the
// flows that trigger them; callers log and move on.
type Mailer interface {
	SendWelcome(ctx context.Context, toEmail, toName string) error
}

type sendgridMailer struct {
	client *sendgrid.Client
	from   *mail.Email
}

// NewSendgrid builds a sendgrid-backed mailer.
func NewSendgrid(cfg config.SendgridConfig) (Mailer, error) {
	if cfg.APIKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sendgrid api key is required")
	}
	if cfg.DefaultFrom == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sendgrid from address is required")
	}
	return &sendgridMailer{
		client: sendgrid.NewSendClient(cfg.APIKey),
		from:   mail.NewEmail("Shopline", cfg.DefaultFrom),
	}, nil
}

func (m *sendgridMailer) SendWelcome(ctx context.Context, toEmail, toName string) error {
	to := mail.NewEmail(toName, toEmail)
	subject := "Signing up succeeded!"
	plain := fmt.Sprintf("Hello %s, you successfully signed up!", toName)
	html := fmt.Sprintf("<h1>Hello %s, you successfully signed up!</h1>", toName)

	message := mail.NewSingleEmail(m.from, subject, to, plain, html)
	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send welcome mail")
	}
	if resp.StatusCode >= 400 {
		return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("sendgrid returned status %d", resp.StatusCode))
	}
	return nil
}

type noopMailer struct{}

// NewNoop returns a mailer that silently drops everything. Used in dev
// environments without sendgrid credentials.
func NewNoop() Mailer {
	return noopMailer{}
}

func (noopMailer) SendWelcome(context.Context, string, string) error {
	return nil
}
