package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/thebar-catering/thebar-site/internal/submissions"
	"github.com/thebar-catering/thebar-site/pkg/logging"
)

const dateLayout = "02.01.2006 15:04"

// Service emails the operator about every new submission.
type Service struct {
	email    EmailSender
	to       string
	location *time.Location
	logger   *logging.Logger
}

// Config configures the operator notification.
type Config struct {
	To string
	// Location the submission time is shown in. Defaults to UTC.
	Location *time.Location
}

// NewService creates a notification service. It returns nil when no sender or
// recipient is configured.
func NewService(email EmailSender, cfg Config, logger *logging.Logger) *Service {
	if email == nil || strings.TrimSpace(cfg.To) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Service{email: email, to: strings.TrimSpace(cfg.To), location: loc, logger: logger}
}

// Name identifies the channel in logs and metrics.
func (s *Service) Name() string { return "email" }

// NotifySubmission sends the new-contact email.
func (s *Service) NotifySubmission(ctx context.Context, sub *submissions.Submission) error {
	if sub == nil {
		return errors.New("notify: nil submission")
	}
	msg, err := s.buildMessage(sub)
	if err != nil {
		return err
	}
	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: send submission email: %w", err)
	}
	s.logger.Info("submission email sent", "submission_id", sub.ID)
	return nil
}

type emailRow struct {
	Label string
	Value string
}

type emailView struct {
	Rows      []emailRow
	Message   string
	Submitted string
}

var submissionHTML = template.Must(template.New("submission").Parse(`<html>
<body>
<h2>🎯 Nový kontakt z webu THE BAR.</h2>
<div style="background-color: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">
{{range .Rows}}<p><strong>{{.Label}}:</strong> {{.Value}}</p>
{{end}}{{if .Message}}<p><strong>💬 Zpráva:</strong></p>
<div style="background-color: white; padding: 15px; border-left: 4px solid #d4af37;">{{.Message}}</div>
{{end}}<p><strong>🕒 Datum odeslání:</strong> {{.Submitted}}</p>
</div>
<p style="color: #666; font-size: 12px;">Tato zpráva byla automaticky odeslána z formuláře na webu THE BAR.</p>
</body>
</html>`))

func (s *Service) buildMessage(sub *submissions.Submission) (EmailMessage, error) {
	view := emailView{
		Message:   sub.Message,
		Submitted: sub.SubmissionDate.In(s.location).Format(dateLayout),
	}
	add := func(label, value string) {
		if value != "" {
			view.Rows = append(view.Rows, emailRow{Label: label, Value: value})
		}
	}
	add("📝 Jméno", sub.Name)
	add("📧 Email", sub.Email)
	add("📱 Telefon", sub.Phone)
	add("🎪 Služba", sub.Offering())
	add("📅 Datum akce", sub.EventDate)
	add("🗂 Formulář", string(sub.Form))
	add("🌐 Jazyk", sub.Locale)

	var html bytes.Buffer
	if err := submissionHTML.Execute(&html, view); err != nil {
		return EmailMessage{}, fmt.Errorf("notify: render email: %w", err)
	}

	var text strings.Builder
	text.WriteString("Nový kontakt z webu THE BAR.\n\n")
	for _, row := range view.Rows {
		fmt.Fprintf(&text, "%s: %s\n", row.Label, row.Value)
	}
	if view.Message != "" {
		fmt.Fprintf(&text, "\n%s\n", view.Message)
	}
	fmt.Fprintf(&text, "\nOdesláno: %s\n", view.Submitted)

	return EmailMessage{
		To:      s.to,
		ReplyTo: sub.Email,
		Subject: Subject(sub),
		Body:    text.String(),
		HTML:    html.String(),
	}, nil
}

// Subject is the operator email subject line.
func Subject(sub *submissions.Submission) string {
	subject := "🍸 Nový kontakt: " + sub.Name
	if offering := sub.Offering(); offering != "" {
		subject += " - " + offering
	}
	return subject
}
