package forms

import (
	"time"

	"github.com/thebar-catering/thebar-site/internal/submissions"
)

// ScrollDelay is how long the contact form waits before scrolling back up, so
// the success notice is visible first.
const ScrollDelay = 300 * time.Millisecond

// DateLayout is the layout of the popup form's date input.
const DateLayout = "2006-01-02"

// Effect runs after a successful submission.
type Effect func(ui UI)

// Config describes one form: which fields it requires, what a fresh draft
// looks like and what happens after it is sent.
type Config struct {
	Kind         submissions.FormKind
	Required     []string
	Defaults     func(now time.Time) map[string]string
	AfterSuccess Effect
}

// PopupForm is the lead-capture popup. Its date defaults to today.
func PopupForm() Config {
	return Config{
		Kind:     submissions.FormPopup,
		Required: submissions.RequiredFields(submissions.FormPopup),
		Defaults: func(now time.Time) map[string]string {
			return map[string]string{submissions.FieldDate: now.Format(DateLayout)}
		},
		AfterSuccess: func(ui UI) { ui.ClosePopup() },
	}
}

// ContactForm is the footer contact form.
func ContactForm() Config {
	return Config{
		Kind:         submissions.FormContact,
		Required:     submissions.RequiredFields(submissions.FormContact),
		AfterSuccess: func(ui UI) { ui.ScrollToTop(ScrollDelay) },
	}
}

// ForKind returns the config for a form kind.
func ForKind(kind submissions.FormKind) (Config, bool) {
	switch kind {
	case submissions.FormPopup:
		return PopupForm(), true
	case submissions.FormContact:
		return ContactForm(), true
	}
	return Config{}, false
}

// initial builds a fresh draft: every required field present, empty unless
// the form supplies a default.
func (c Config) initial(now time.Time) map[string]string {
	values := make(map[string]string, len(c.Required))
	for _, field := range c.Required {
		values[field] = ""
	}
	if c.Defaults != nil {
		for field, v := range c.Defaults(now) {
			values[field] = v
		}
	}
	return values
}
