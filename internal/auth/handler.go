package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	httpmiddleware "github.com/thebar-catering/thebar-site/internal/http/middleware"
	"github.com/thebar-catering/thebar-site/internal/observability/metrics"
	"github.com/thebar-catering/thebar-site/pkg/logging"
)

// Handler serves the admin credential exchange and token check.
type Handler struct {
	issuer       *Issuer
	username     string
	passwordHash []byte
	metrics      *metrics.SubmissionMetrics
	logger       *logging.Logger
}

// NewHandler creates the handler. With no password hash, login is disabled.
func NewHandler(issuer *Issuer, username, passwordHash string, m *metrics.SubmissionMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		issuer:       issuer,
		username:     username,
		passwordHash: []byte(strings.TrimSpace(passwordHash)),
		metrics:      m,
		logger:       logger,
	}
}

// LoginRequest is the POST /api/admin/login body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login handles POST /api/admin/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if h.issuer == nil || len(h.passwordHash) == 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "admin login disabled"})
		return
	}

	var req LoginRequest
	r.Body = http.MaxBytesReader(w, r.Body, 4<<10)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if !h.checkCredentials(req.Username, req.Password) {
		h.metrics.ObserveLogin(metrics.OutcomeDenied)
		h.logger.Warn("admin login rejected", "username", req.Username, "remote_ip", r.RemoteAddr)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	token, expires, err := h.issuer.Issue(h.username)
	if err != nil {
		h.metrics.ObserveLogin(metrics.OutcomeError)
		h.logger.Error("failed to issue admin token", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to issue token"})
		return
	}
	h.metrics.ObserveLogin(metrics.OutcomeSuccess)
	h.logger.Info("admin logged in", "username", h.username)
	writeJSON(w, http.StatusOK, LoginResponse{Token: token, ExpiresAt: expires})
}

func (h *Handler) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(password)) == nil
	return userOK && passOK
}

// Verify handles GET /api/admin/verify. It must sit behind AdminJWT.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	claims, ok := httpmiddleware.AdminClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"username":   claims.Subject,
		"expires_at": claims.ExpiresAt.Time.UTC(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
