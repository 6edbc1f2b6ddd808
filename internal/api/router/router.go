package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/thebar-catering/thebar-site/internal/auth"
	"github.com/thebar-catering/thebar-site/internal/health"
	httpmiddleware "github.com/thebar-catering/thebar-site/internal/http/middleware"
	"github.com/thebar-catering/thebar-site/internal/site"
	"github.com/thebar-catering/thebar-site/internal/submissions"
	"github.com/thebar-catering/thebar-site/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	SubmissionsHandler *submissions.Handler
	AuthHandler        *auth.Handler
	Issuer             *auth.Issuer
	HealthHandler      *health.Handler
	SiteHandler        *site.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// SubmitLimiter throttles the public submit endpoints (optional).
	SubmitLimiter *httpmiddleware.RateLimiter
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		if cfg.HealthHandler != nil {
			public.Get("/health", cfg.HealthHandler.Health)
			public.Get("/ready", cfg.HealthHandler.Ready)
		}
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		if cfg.SiteHandler != nil {
			public.Get("/", cfg.SiteHandler.Index)
			public.With(rateLimit(cfg.SubmitLimiter)...).Post("/forms/{kind}", cfg.SiteHandler.SubmitForm)
		}
		if cfg.SubmissionsHandler != nil {
			submit := public.With(rateLimit(cfg.SubmitLimiter)...)
			submit.Post("/api/contact-submissions", cfg.SubmissionsHandler.Create)
			submit.Post("/api/contact-form", cfg.SubmissionsHandler.Create)
		}
		if cfg.AuthHandler != nil {
			public.Post("/api/admin/login", cfg.AuthHandler.Login)
		}
	})

	// Admin routes (protected by JWT)
	r.Group(func(admin chi.Router) {
		var validator httpmiddleware.TokenValidator
		if cfg.Issuer != nil {
			validator = cfg.Issuer
		}
		admin.Use(httpmiddleware.AdminJWT(validator))
		if cfg.AuthHandler != nil {
			admin.Get("/api/admin/verify", cfg.AuthHandler.Verify)
		}
		if cfg.SubmissionsHandler != nil {
			admin.Get("/api/contact-submissions", cfg.SubmissionsHandler.List)
			admin.Get("/api/contact-submissions/{id}", cfg.SubmissionsHandler.Get)
			admin.Get("/api/export-submissions-csv", cfg.SubmissionsHandler.ExportCSV)
		}
	})

	return r
}

func rateLimit(limiter *httpmiddleware.RateLimiter) []func(http.Handler) http.Handler {
	if limiter == nil {
		return nil
	}
	return []func(http.Handler) http.Handler{httpmiddleware.RateLimit(limiter)}
}
