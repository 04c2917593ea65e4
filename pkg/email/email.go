package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/domain"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService sends candidate notifications over SMTP
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	send      sendFunc
}

func NewEmailService(cfg *config.Config) *EmailService {
	from := cfg.SMTPFromEmail
	if from == "" {
		from = cfg.SMTPUsername
	}
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: from,
		send:      smtp.SendMail,
	}
}

var subjects = map[domain.EventKind]string{
	domain.EventApplicationReceived:  "We received your application for %s",
	domain.EventStatusChanged:        "Update on your application for %s",
	domain.EventInterviewScheduled:   "Interview scheduled: %s",
	domain.EventInterviewCancelled:   "Interview cancelled: %s",
	domain.EventInterviewRescheduled: "Interview rescheduled: %s",
}

const eventTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .label { font-weight: bold; color: #555; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>{{.Subject}}</h1></div>
        <div class="content">
            <p>Hi {{.Name}},</p>
            {{- if eq .Kind "application_received"}}
            <p>Thanks for applying to <strong>{{.JobTitle}}</strong>. The hiring team will review it soon.</p>
            {{- else if eq .Kind "status_changed"}}
            <p>Your application for <strong>{{.JobTitle}}</strong> is now <strong>{{.Status}}</strong>.</p>
            {{- if .Reason}}<p><span class="label">Note:</span> {{.Reason}}</p>{{end}}
            {{- else if eq .Kind "interview_cancelled"}}
            <p>Your interview for <strong>{{.JobTitle}}</strong> has been cancelled.</p>
            {{- if .Reason}}<p><span class="label">Reason:</span> {{.Reason}}</p>{{end}}
            {{- else}}
            <p>Your interview for <strong>{{.JobTitle}}</strong> is on <strong>{{.When}}</strong> ({{.Duration}} minutes, {{.Type}}).</p>
            {{- if .Link}}<p><span class="label">Meeting link:</span> <a href="{{.Link}}">{{.Link}}</a></p>{{end}}
            {{- if .Location}}<p><span class="label">Location:</span> {{.Location}}</p>{{end}}
            {{- end}}
        </div>
    </div>
</body>
</html>`

var tmpl = template.Must(template.New("event").Parse(eventTemplate))

type eventView struct {
	Subject  string
	Kind     string
	Name     string
	JobTitle string
	Status   string
	Reason   string
	When     string
	Duration int
	Type     string
	Link     string
	Location string
}

// Render builds the subject and HTML body for event
func Render(event domain.NotificationEvent) (string, string, error) {
	format, ok := subjects[event.Kind]
	if !ok {
		return "", "", fmt.Errorf("email: no template for event %q", event.Kind)
	}
	view := eventView{
		Subject:  fmt.Sprintf(format, event.JobTitle),
		Kind:     string(event.Kind),
		Name:     event.CandidateName,
		JobTitle: event.JobTitle,
		Status:   string(event.Status),
		Reason:   event.Reason,
	}
	if view.Name == "" {
		view.Name = "there"
	}
	if iv := event.Interview; iv != nil {
		view.When = iv.ScheduledAt.UTC().Format(time.RFC1123)
		view.Duration = iv.DurationMinutes
		view.Type = string(iv.Type)
		if iv.MeetingLink != nil {
			view.Link = *iv.MeetingLink
		}
		if iv.Location != nil {
			view.Location = *iv.Location
		}
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, view); err != nil {
		return "", "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return view.Subject, body.String(), nil
}

// Notify implements domain.Notifier
func (s *EmailService) Notify(ctx context.Context, event domain.NotificationEvent) error {
	if event.CandidateEmail == "" {
		return errors.New("email: event has no recipient")
	}
	if !s.IsConfigured() {
		return errors.New("email: SMTP is not configured")
	}
	subject, body, err := Render(event)
	if err != nil {
		return err
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		event.CandidateEmail,
		subject,
		body,
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := s.send(addr, auth, s.fromEmail, []string{event.CandidateEmail}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
