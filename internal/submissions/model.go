package submissions

import (
	"strings"
	"time"

	"github.com/thebar-catering/thebar-site/internal/validation"
)

// FormKind identifies which public form produced a submission.
type FormKind string

const (
	// FormPopup is the lead-capture popup: name, phone, email, date, service.
	FormPopup FormKind = "popup"
	// FormContact is the footer contact form: name, email, phone, event type, message.
	FormContact FormKind = "contact"
)

// Draft field names as the forms name their inputs.
const (
	FieldName      = "name"
	FieldEmail     = validation.FieldEmail
	FieldPhone     = validation.FieldPhone
	FieldService   = "service"
	FieldEventType = "eventType"
	FieldMessage   = "message"
	FieldDate      = "date"
)

var requiredFields = map[FormKind][]string{
	FormPopup:   {FieldName, FieldPhone, FieldEmail, FieldDate, FieldService},
	FormContact: {FieldName, FieldEmail, FieldPhone, FieldEventType, FieldMessage},
}

// Valid reports whether k is a known form.
func (k FormKind) Valid() bool {
	_, ok := requiredFields[k]
	return ok
}

// RequiredFields returns a copy of the required field set for the form.
func RequiredFields(kind FormKind) []string {
	fields := requiredFields[kind]
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}

// Submission is a persisted form submission. It is never updated after creation.
type Submission struct {
	ID             string    `json:"id"`
	Form           FormKind  `json:"form"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Service        string    `json:"service,omitempty"`
	EventType      string    `json:"event_type,omitempty"`
	EventDate      string    `json:"event_date,omitempty"`
	Message        string    `json:"message,omitempty"`
	Locale         string    `json:"locale,omitempty"`
	SubmissionDate time.Time `json:"submission_date"`
}

// Offering returns whichever of service or event type the form carried.
func (s *Submission) Offering() string {
	if s.Service != "" {
		return s.Service
	}
	return s.EventType
}

// CreateSubmissionRequest is the public payload: a Submission without id and
// submission_date.
type CreateSubmissionRequest struct {
	Form      FormKind `json:"form"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Service   string   `json:"service,omitempty"`
	EventType string   `json:"event_type,omitempty"`
	EventDate string   `json:"event_date,omitempty"`
	Message   string   `json:"message,omitempty"`
	Locale    string   `json:"locale,omitempty"`
}

// RequestFromValues builds a request from a form draft keyed by field name.
func RequestFromValues(kind FormKind, values map[string]string, locale string) CreateSubmissionRequest {
	return CreateSubmissionRequest{
		Form:      kind,
		Name:      values[FieldName],
		Email:     values[FieldEmail],
		Phone:     values[FieldPhone],
		Service:   values[FieldService],
		EventType: values[FieldEventType],
		EventDate: values[FieldDate],
		Message:   values[FieldMessage],
		Locale:    locale,
	}
}

// Values returns the request keyed by draft field name.
func (r *CreateSubmissionRequest) Values() map[string]string {
	return map[string]string{
		FieldName:      r.Name,
		FieldEmail:     r.Email,
		FieldPhone:     r.Phone,
		FieldService:   r.Service,
		FieldEventType: r.EventType,
		FieldDate:      r.EventDate,
		FieldMessage:   r.Message,
	}
}

// Normalize trims every field and fills in the form kind for payloads that
// predate it: those came from the contact form, whose event type selector was
// sent as "service".
func (r *CreateSubmissionRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Service = strings.TrimSpace(r.Service)
	r.EventType = strings.TrimSpace(r.EventType)
	r.EventDate = strings.TrimSpace(r.EventDate)
	r.Message = strings.TrimSpace(r.Message)
	r.Locale = strings.ToLower(strings.TrimSpace(r.Locale))

	if r.Form == "" {
		if r.EventDate != "" {
			r.Form = FormPopup
		} else {
			r.Form = FormContact
		}
	}
	if r.Form == FormContact && r.EventType == "" && r.Service != "" {
		r.EventType = r.Service
		r.Service = ""
	}
}

// Validate applies the form's required-field rules.
func (r *CreateSubmissionRequest) Validate() error {
	if !r.Form.Valid() {
		return ErrUnknownForm
	}
	if failed := validation.CheckAll(requiredFields[r.Form], r.Values()); failed != nil {
		return &ValidationError{Fields: failed}
	}
	return nil
}
