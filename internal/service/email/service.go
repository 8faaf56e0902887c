package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"talentboard/internal/config"
)

// Service is a best-effort side channel next to the durable notification
// rows. Callers fire it on a goroutine and drop the error; a failed email
// never fails the triggering operation.
type Service interface {
	SendEmployerApprovedEmail(ctx context.Context, toEmail, fullName string) error
	SendEmployerRejectedEmail(ctx context.Context, toEmail, fullName, reason string) error
	SendAnnouncementEmail(ctx context.Context, toEmail, fullName, title, message string) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
	}
}

var bodyTemplate = template.Must(template.New("email").Parse(`
<html>
  <body style="font-family: sans-serif; color: #1f2937;">
    <h2>{{.Title}}</h2>
    <p>Hi {{.Name}},</p>
    <p>{{.Body}}</p>
    <p style="color: #6b7280; font-size: 12px;">{{.AppName}}</p>
  </body>
</html>`))

func (s *service) sendEmail(toEmail, subject, title, name, body string) error {
	data := struct {
		Title   string
		Name    string
		Body    string
		AppName string
	}{
		Title:   title,
		Name:    name,
		Body:    body,
		AppName: s.config.AppName,
	}

	var html bytes.Buffer
	if err := bodyTemplate.Execute(&html, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.AppName, s.config.FromEmail),
		To:      []string{toEmail},
		Html:    html.String(),
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

func (s *service) SendEmployerApprovedEmail(ctx context.Context, toEmail, fullName string) error {
	return s.sendEmail(toEmail,
		"Your employer account has been approved",
		"Employer Account Approved",
		fullName,
		"Your employer account has been approved. You can now sign in and start posting jobs.")
}

func (s *service) SendEmployerRejectedEmail(ctx context.Context, toEmail, fullName, reason string) error {
	body := "Your employer account application was not approved."
	if reason != "" {
		body = fmt.Sprintf("%s Reason: %s", body, reason)
	}
	return s.sendEmail(toEmail,
		"Your employer account was not approved",
		"Employer Account Rejected",
		fullName,
		body)
}

func (s *service) SendAnnouncementEmail(ctx context.Context, toEmail, fullName, title, message string) error {
	return s.sendEmail(toEmail, title, title, fullName, message)
}
