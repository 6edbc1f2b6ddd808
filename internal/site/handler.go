// Package site serves the public landing page and accepts its forms without
// JavaScript.
package site

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/thebar-catering/thebar-site/internal/forms"
	"github.com/thebar-catering/thebar-site/internal/i18n"
	"github.com/thebar-catering/thebar-site/internal/submissions"
	"github.com/thebar-catering/thebar-site/pkg/logging"
)

// ServiceSubmitter hands form drafts straight to the submissions service.
type ServiceSubmitter struct {
	Service *submissions.Service
}

func (s ServiceSubmitter) CreateSubmission(ctx context.Context, req submissions.CreateSubmissionRequest) (string, error) {
	sub, err := s.Service.Create(ctx, &req)
	if err != nil {
		return "", err
	}
	return sub.ID, nil
}

// Handler renders the landing page.
type Handler struct {
	submitter forms.Submitter
	logger    *logging.Logger
	fallback  i18n.Locale
	now       func() time.Time
}

// NewHandler creates a site handler.
func NewHandler(submitter forms.Submitter, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{submitter: submitter, logger: logger, fallback: i18n.Fallback, now: time.Now}
}

// SetDefaultLocale sets the language for visitors who send no preference.
func (h *Handler) SetDefaultLocale(locale i18n.Locale) {
	if locale.Supported() {
		h.fallback = locale
	}
}

// Index handles GET /.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	locale := h.requestLocale(r)
	view := PageView{
		Content: ContentFor(locale),
		Popup:   h.freshForm(forms.PopupForm()),
		Contact: h.freshForm(forms.ContactForm()),
	}
	render(w, r, http.StatusOK, Page(view))
}

// SubmitForm handles POST /forms/{kind}: the same flow the scripted forms run,
// driven server side.
func (h *Handler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	kind := submissions.FormKind(chi.URLParam(r, "kind"))
	cfg, ok := forms.ForKind(kind)
	if !ok {
		http.NotFound(w, r)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	locale := h.requestLocale(r)
	ui := &noticeUI{}
	ctrl := forms.NewController(cfg, h.submitter, ui, locale, h.logger)
	for _, field := range cfg.Required {
		ctrl.OnFieldChange(field, r.PostForm.Get(field))
	}

	status := http.StatusOK
	if _, err := ctrl.Submit(r.Context()); err != nil {
		status = submitStatus(err)
	}

	submitted := FormView{Kind: kind, Values: ctrl.Values(), Errors: ctrl.Errors(), Notice: ui.last}
	view := PageView{Content: ContentFor(locale)}
	if kind == submissions.FormPopup {
		view.Popup = submitted
		view.Contact = h.freshForm(forms.ContactForm())
	} else {
		view.Popup = h.freshForm(forms.PopupForm())
		view.Contact = submitted
	}
	render(w, r, status, Page(view))
}

func (h *Handler) freshForm(cfg forms.Config) FormView {
	values := map[string]string{}
	if cfg.Defaults != nil {
		values = cfg.Defaults(h.now())
	}
	return FormView{Kind: cfg.Kind, Values: values}
}

func submitStatus(err error) int {
	var verr *submissions.ValidationError
	switch {
	case errors.Is(err, forms.ErrInvalid), errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, submissions.ErrDuplicateSubmission):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) requestLocale(r *http.Request) i18n.Locale {
	if l, ok := i18n.Parse(r.URL.Query().Get("lang")); ok {
		return l
	}
	header := r.Header.Get("Accept-Language")
	if header == "" {
		return h.fallback
	}
	return i18n.Match(header)
}

type noticeUI struct {
	last *forms.Notice
}

func (u *noticeUI) Notify(n forms.Notice)     { u.last = &n }
func (u *noticeUI) ClosePopup()               {}
func (u *noticeUI) ScrollToTop(time.Duration) {}

func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
