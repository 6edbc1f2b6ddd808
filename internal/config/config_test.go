package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("NOTIFY_EMAIL", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.DefaultLocale != "cs" {
		t.Fatalf("expected czech default locale, got %s", cfg.DefaultLocale)
	}
	if cfg.AdminTokenTTL != 12*time.Hour {
		t.Fatalf("expected default token ttl, got %s", cfg.AdminTokenTTL)
	}
	if cfg.DuplicateWindow != 30*time.Second {
		t.Fatalf("expected default duplicate window, got %s", cfg.DuplicateWindow)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("expected wildcard CORS default, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.NotifyEmail != "thebar.event@gmail.com" {
		t.Fatalf("unexpected notify email default %s", cfg.NotifyEmail)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_URL", "postgres://user@host/db")
	t.Setenv("MIGRATE_ON_START", "true")
	t.Setenv("ADMIN_TOKEN_TTL", "2h")
	t.Setenv("SUBMIT_RATE_LIMIT_RPS", "1.5")
	t.Setenv("SUBMIT_RATE_LIMIT_BURST", "10")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://thebar.cz, ,https://www.thebar.cz")
	t.Setenv("EMAIL_PROVIDER", " SES ")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected env override, got %s", cfg.Env)
	}
	if cfg.DatabaseURL != "postgres://user@host/db" {
		t.Fatalf("expected database url override, got %s", cfg.DatabaseURL)
	}
	if !cfg.MigrateOnStart {
		t.Fatalf("expected migrate on start")
	}
	if cfg.AdminTokenTTL != 2*time.Hour {
		t.Fatalf("expected ttl override, got %s", cfg.AdminTokenTTL)
	}
	if cfg.SubmitRateLimitRPS != 1.5 || cfg.SubmitRateLimitBurst != 10 {
		t.Fatalf("unexpected rate limit %v/%d", cfg.SubmitRateLimitRPS, cfg.SubmitRateLimitBurst)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://www.thebar.cz" {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.EmailProvider != "ses" {
		t.Fatalf("expected normalized provider, got %q", cfg.EmailProvider)
	}
	if !cfg.UsesAWS() {
		t.Fatalf("expected ses provider to require AWS")
	}
}

func TestInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("SUBMIT_RATE_LIMIT_BURST", "many")
	t.Setenv("NOTIFY_TIMEOUT", "soon")
	cfg := Load()
	if cfg.SubmitRateLimitBurst != 5 {
		t.Fatalf("expected burst fallback, got %d", cfg.SubmitRateLimitBurst)
	}
	if cfg.NotifyTimeout != 10*time.Second {
		t.Fatalf("expected timeout fallback, got %s", cfg.NotifyTimeout)
	}
}
