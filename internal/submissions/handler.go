package submissions

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thebar-catering/thebar-site/internal/i18n"
	"github.com/thebar-catering/thebar-site/internal/validation"
	"github.com/thebar-catering/thebar-site/pkg/logging"
)

const maxBodyBytes = 64 << 10

// Handler handles HTTP requests for submissions
type Handler struct {
	svc    *Service
	logger *logging.Logger
}

// NewHandler creates a new submissions handler
func NewHandler(svc *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		svc:    svc,
		logger: logger,
	}
}

// ErrorResponse is the JSON body of every non-2xx API response.
type ErrorResponse struct {
	Error    string                     `json:"error"`
	Fields   map[string]validation.Code `json:"fields,omitempty"`
	Messages map[string]string          `json:"messages,omitempty"`
}

// Create handles POST /api/contact-submissions requests
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSubmissionRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode submission", "error", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.Locale == "" {
		req.Locale = string(i18n.Match(r.Header.Get("Accept-Language")))
	}

	sub, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, validationResponse(verr, i18n.Match(req.Locale)))
		case errors.Is(err, ErrUnknownForm):
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "unknown form"})
		case errors.Is(err, ErrDuplicateSubmission):
			writeJSON(w, http.StatusConflict, ErrorResponse{Error: "duplicate submission"})
		default:
			h.logger.Error("failed to create submission", "error", err)
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to process form submission"})
		}
		return
	}

	writeJSON(w, http.StatusCreated, sub)
}

func validationResponse(verr *ValidationError, locale i18n.Locale) ErrorResponse {
	messages := make(map[string]string, len(verr.Fields))
	for field, code := range verr.Fields {
		messages[field] = i18n.T(locale, code.MessageKey())
	}
	return ErrorResponse{Error: "validation failed", Fields: verr.Fields, Messages: messages}
}

// List handles GET /api/contact-submissions requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list submissions", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch submissions"})
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

// Get handles GET /api/contact-submissions/{id} requests
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sub, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrSubmissionNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "submission not found"})
			return
		}
		h.logger.Error("failed to get submission", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch submission"})
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// ExportCSV handles GET /api/export-submissions-csv requests
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	rows, err := h.svc.ExportCSV(r.Context(), &buf)
	if err != nil {
		h.logger.Error("failed to export submissions", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to export submissions"})
		return
	}

	h.logger.Info("submissions exported", "rows", rows)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+ExportFilename)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
