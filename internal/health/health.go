// Package health serves the liveness and readiness probes.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/thebar-catering/thebar-site/pkg/logging"
)

// Pinger is satisfied by *sql.DB and by pgxpool.Pool through an adapter.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler serves /health and /ready.
type Handler struct {
	checks  map[string]Pinger
	timeout time.Duration
	logger  *logging.Logger
}

// NewHandler creates a handler. Nil checks are skipped.
func NewHandler(checks map[string]Pinger, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	active := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			active[name] = p
		}
	}
	return &Handler{checks: active, timeout: 2 * time.Second, logger: logger}
}

// Health returns a simple liveness response.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready pings every dependency and reports 503 if any fails.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, p := range h.checks {
		if err := p.PingContext(ctx); err != nil {
			h.logger.Warn("readiness check failed", "check", name, "error", err)
			results[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	body := map[string]any{"status": "ok", "checks": results}
	if status != http.StatusOK {
		body["status"] = "unavailable"
	}
	writeJSON(w, status, body)
}

// PingFunc adapts a ping function, such as redis.Client.Ping(ctx).Err.
type PingFunc func(ctx context.Context) error

func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
