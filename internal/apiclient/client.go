// Package apiclient talks to the submissions API: the public create call used
// by the forms and the bearer-token admin calls used by the operator tools.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/thebar-catering/thebar-site/internal/submissions"
	"github.com/thebar-catering/thebar-site/pkg/logging"
)

const (
	defaultUserAgent = "thebar-apiclient/1.0"
	maxResponseBytes = 16 << 20
)

var tracer = otel.Tracer("thebar.internal.apiclient")

// Config controls how the client behaves.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logging.Logger
	UserAgent  string
}

// Client calls the submissions API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
	userAgent  string
}

// New creates a configured Client.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("apiclient: base URL is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
		userAgent:  userAgent,
	}, nil
}

// CreateSubmission posts a public form submission and returns the id the
// backend assigned.
func (c *Client) CreateSubmission(ctx context.Context, req submissions.CreateSubmissionRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("apiclient: marshal submission: %w", err)
	}
	data, err := c.invoke(ctx, "create_submission", http.MethodPost, "/api/contact-submissions", "", body)
	if err != nil {
		return "", err
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &created); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if strings.TrimSpace(created.ID) == "" {
		return "", fmt.Errorf("%w: missing id", ErrMalformedResponse)
	}
	return created.ID, nil
}

// LoginResponse is the credential exchange result.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login exchanges admin credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return nil, fmt.Errorf("apiclient: marshal login: %w", err)
	}
	data, err := c.invoke(ctx, "login", http.MethodPost, "/api/admin/login", "", body)
	if err != nil {
		return nil, err
	}
	var resp LoginResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("%w: missing token", ErrMalformedResponse)
	}
	return &resp, nil
}

// Verify checks that token is still accepted.
func (c *Client) Verify(ctx context.Context, token string) error {
	_, err := c.invoke(ctx, "verify", http.MethodGet, "/api/admin/verify", token, nil)
	return err
}

// ListSubmissions returns every submission in backend order.
func (c *Client) ListSubmissions(ctx context.Context, token string) ([]submissions.Submission, error) {
	data, err := c.invoke(ctx, "list_submissions", http.MethodGet, "/api/contact-submissions", token, nil)
	if err != nil {
		return nil, err
	}
	var subs []submissions.Submission
	if err := json.Unmarshal(data, &subs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if subs == nil {
		subs = []submissions.Submission{}
	}
	return subs, nil
}

// ExportCSV downloads the CSV export.
func (c *Client) ExportCSV(ctx context.Context, token string) ([]byte, error) {
	return c.invoke(ctx, "export_csv", http.MethodGet, "/api/export-submissions-csv", token, nil)
}

func (c *Client) invoke(ctx context.Context, op, method, path, token string, body []byte) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "apiclient."+op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", path),
	)

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("apiclient: build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		c.logger.Warn("api request failed", "op", op, "error", err)
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		span.RecordError(err)
		return nil, &NetworkError{Op: op, Err: err}
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := decodeStatusError(resp.StatusCode, data)
		span.SetStatus(codes.Error, statusErr.Error())
		c.logger.Warn("api request rejected", "op", op, "status", resp.StatusCode)
		return nil, statusErr
	}
	return data, nil
}

const maxErrorMessageRunes = 200

func decodeStatusError(status int, data []byte) *StatusError {
	statusErr := &StatusError{StatusCode: status}
	var body submissions.ErrorResponse
	if err := json.Unmarshal(data, &body); err == nil {
		statusErr.Message = body.Error
		statusErr.Fields = body.Fields
		return statusErr
	}
	statusErr.Message = strings.TrimSpace(string(data))
	if r := []rune(statusErr.Message); len(r) > maxErrorMessageRunes {
		statusErr.Message = string(r[:maxErrorMessageRunes])
	}
	return statusErr
}
