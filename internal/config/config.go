package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	DefaultLocale      string
	Timezone           string
	DatabaseURL        string
	MigrateOnStart     bool
	CORSAllowedOrigins []string

	// Admin access
	AdminJWTSecret     string
	AdminUsername      string
	AdminPasswordHash  string
	AdminTokenTTL      time.Duration
	AdminTokenFile     string
	AdminAPIBaseURL    string
	AdminDownloadDir   string
	AdminClientTimeout time.Duration

	// Public intake protection
	SubmitRateLimitRPS   float64
	SubmitRateLimitBurst int
	DuplicateWindow      time.Duration
	RedisAddr            string
	RedisPassword        string
	RedisTLS             bool

	// Operator notifications
	NotifyEmail       string
	NotifyTimeout     time.Duration
	EmailProvider     string
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	SESFromEmail      string
	SESFromName       string

	// Google Sheets mirror of every submission
	GoogleCredentialsPath string
	GoogleSheetID         string
	GoogleSheetRange      string

	// AWS
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string
	ExportArchiveBucket string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DefaultLocale:      strings.ToLower(getEnv("DEFAULT_LOCALE", "cs")),
		Timezone:           getEnv("TIMEZONE", "Europe/Prague"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		MigrateOnStart:     getEnvAsBool("MIGRATE_ON_START", false),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		AdminJWTSecret:     getEnv("ADMIN_JWT_SECRET", ""),
		AdminUsername:      getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash:  getEnv("ADMIN_PASSWORD_HASH", ""),
		AdminTokenTTL:      getEnvAsDuration("ADMIN_TOKEN_TTL", 12*time.Hour),
		AdminTokenFile:     getEnv("ADMIN_TOKEN_FILE", ""),
		AdminAPIBaseURL:    getEnv("ADMIN_API_BASE_URL", "http://localhost:8080"),
		AdminDownloadDir:   getEnv("ADMIN_DOWNLOAD_DIR", "."),
		AdminClientTimeout: getEnvAsDuration("ADMIN_CLIENT_TIMEOUT", 15*time.Second),

		SubmitRateLimitRPS:   getEnvAsFloat("SUBMIT_RATE_LIMIT_RPS", 0.2),
		SubmitRateLimitBurst: getEnvAsInt("SUBMIT_RATE_LIMIT_BURST", 5),
		DuplicateWindow:      getEnvAsDuration("DUPLICATE_WINDOW", 30*time.Second),
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		RedisTLS:             getEnvAsBool("REDIS_TLS", false),

		NotifyEmail:       getEnv("NOTIFY_EMAIL", "thebar.event@gmail.com"),
		NotifyTimeout:     getEnvAsDuration("NOTIFY_TIMEOUT", 10*time.Second),
		EmailProvider:     strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "auto"))),
		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "THE BAR."),
		SESFromEmail:      getEnv("SES_FROM_EMAIL", ""),
		SESFromName:       getEnv("SES_FROM_NAME", "THE BAR."),

		GoogleCredentialsPath: getEnv("GOOGLE_CREDENTIALS_PATH", ""),
		GoogleSheetID:         getEnv("GOOGLE_SHEET_ID", ""),
		GoogleSheetRange:      getEnv("GOOGLE_SHEET_RANGE", "Sheet1!A1"),

		AWSRegion:           getEnv("AWS_REGION", "eu-central-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),
		ExportArchiveBucket: getEnv("EXPORT_ARCHIVE_BUCKET", ""),
	}
}

// UsesAWS reports whether any AWS-backed integration is configured.
func (c *Config) UsesAWS() bool {
	return c.ExportArchiveBucket != "" || c.EmailProvider == "ses"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated variable, dropping blanks.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
