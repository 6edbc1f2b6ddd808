// Package forms drives the public lead forms: draft state, validation before
// send, one request in flight, and what the visitor sees afterwards.
package forms

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/thebar-catering/thebar-site/internal/apiclient"
	"github.com/thebar-catering/thebar-site/internal/i18n"
	"github.com/thebar-catering/thebar-site/internal/submissions"
	"github.com/thebar-catering/thebar-site/internal/validation"
	"github.com/thebar-catering/thebar-site/pkg/logging"
)

var (
	// ErrSubmitInFlight is returned by Submit while a previous Submit is still
	// waiting on the backend.
	ErrSubmitInFlight = errors.New("forms: submission already in flight")
	// ErrInvalid is returned when the draft fails validation; Errors() holds
	// the failing fields.
	ErrInvalid = errors.New("forms: draft has invalid fields")
)

// State is where a form is in its submit cycle.
type State int

const (
	StateEditing State = iota
	StateValidating
	StateSubmitting
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// NoticeLevel is the tone of a notice.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is a dismissible message shown to the visitor.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// UI is what the controller needs from the page it runs in.
type UI interface {
	Notify(Notice)
	ClosePopup()
	ScrollToTop(delay time.Duration)
}

// Submitter sends a validated submission and returns its id.
type Submitter interface {
	CreateSubmission(ctx context.Context, req submissions.CreateSubmissionRequest) (string, error)
}

// Result describes a successful submit.
type Result struct {
	ID string
}

// Controller holds one form's draft and error state.
type Controller struct {
	cfg       Config
	submitter Submitter
	ui        UI
	logger    *logging.Logger
	now       func() time.Time

	mu        sync.Mutex
	locale    i18n.Locale
	validator *validation.Validator
	values    map[string]string
	errors    map[string]string
	state     State
	lastErr   error
}

// NewController creates a controller with a fresh draft.
func NewController(cfg Config, submitter Submitter, ui UI, locale i18n.Locale, logger *logging.Logger) *Controller {
	if logger == nil {
		logger = logging.Default()
	}
	if ui == nil {
		ui = NopUI{}
	}
	validator := validation.New(locale)
	c := &Controller{
		cfg:       cfg,
		submitter: submitter,
		ui:        ui,
		logger:    logger.With("form", string(cfg.Kind)),
		now:       time.Now,
		locale:    validator.Locale(),
		validator: validator,
		errors:    map[string]string{},
	}
	c.values = cfg.initial(c.now())
	return c
}

// SetLocale switches the language of subsequent messages.
func (c *Controller) SetLocale(locale i18n.Locale) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.validator = validation.New(locale)
	c.locale = c.validator.Locale()
}

// OnFieldChange updates the draft. An error already shown for the field is
// cleared; errors are only recomputed on submit.
func (c *Controller) OnFieldChange(field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[field] = value
	delete(c.errors, field)
	if c.state == StateFailed {
		c.state = StateEditing
	}
}

// Submit validates the draft and, if it passes, sends it. On success the draft
// is reset and the form's after-success effect runs. On failure the draft is
// kept, the visitor is told what went wrong and the form stays in StateFailed
// until the next edit or submit.
func (c *Controller) Submit(ctx context.Context) (Result, error) {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return Result{}, ErrSubmitInFlight
	}

	c.state = StateValidating
	if failed := c.validator.ValidateAll(c.cfg.Required, c.values); failed != nil {
		c.errors = failed
		c.state = StateEditing
		c.mu.Unlock()
		return Result{}, ErrInvalid
	}

	c.errors = map[string]string{}
	c.state = StateSubmitting
	req := submissions.RequestFromValues(c.cfg.Kind, c.values, string(c.locale))
	locale := c.locale
	c.mu.Unlock()

	id, err := c.submitter.CreateSubmission(ctx, req)
	if err != nil {
		c.fail(err, locale)
		return Result{}, err
	}

	c.mu.Lock()
	c.values = c.cfg.initial(c.now())
	c.errors = map[string]string{}
	c.lastErr = nil
	c.state = StateEditing
	c.mu.Unlock()

	c.logger.Info("form submitted", "id", id)
	c.ui.Notify(Notice{Level: NoticeSuccess, Message: i18n.T(locale, i18n.SubmitSuccess)})
	if c.cfg.AfterSuccess != nil {
		c.cfg.AfterSuccess(c.ui)
	}
	return Result{ID: id}, nil
}

func (c *Controller) fail(err error, locale i18n.Locale) {
	kind := apiclient.Kind(err)

	c.mu.Lock()
	c.state = StateFailed
	c.lastErr = err
	if kind == apiclient.KindValidation {
		for field, code := range apiclient.FieldErrors(err) {
			if key := code.MessageKey(); key != "" {
				c.errors[field] = i18n.T(locale, key)
			}
		}
	}
	c.mu.Unlock()

	c.logger.Warn("form submission failed", "kind", kind.String(), "error", err)
	c.ui.Notify(Notice{Level: NoticeError, Message: i18n.T(locale, failureMessage(kind))})
}

func failureMessage(kind apiclient.ErrorKind) i18n.Key {
	switch kind {
	case apiclient.KindNetwork:
		return i18n.SubmitNetwork
	case apiclient.KindValidation:
		return i18n.SubmitRejected
	case apiclient.KindDuplicate:
		return i18n.SubmitDuplicate
	default:
		return i18n.SubmitServer
	}
}

// Values returns a copy of the draft.
func (c *Controller) Values() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyMap(c.values)
}

// Errors returns a copy of the current per-field errors.
func (c *Controller) Errors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyMap(c.errors)
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastError returns the error of the most recent failed submit, if the draft
// has not been sent successfully since.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Kind returns the form kind.
func (c *Controller) Kind() submissions.FormKind {
	return c.cfg.Kind
}

// Locale returns the locale messages are rendered in.
func (c *Controller) Locale() i18n.Locale {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locale
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// NopUI ignores every UI effect. Used when a form runs without a page, such as
// a server-side post.
type NopUI struct{}

func (NopUI) Notify(Notice)             {}
func (NopUI) ClosePopup()               {}
func (NopUI) ScrollToTop(time.Duration) {}
