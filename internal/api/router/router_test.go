package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/thebar-catering/thebar-site/internal/auth"
	"github.com/thebar-catering/thebar-site/internal/health"
	httpmiddleware "github.com/thebar-catering/thebar-site/internal/http/middleware"
	"github.com/thebar-catering/thebar-site/internal/site"
	"github.com/thebar-catering/thebar-site/internal/submissions"
	"github.com/thebar-catering/thebar-site/pkg/logging"
)

const (
	testUser     = "operator"
	testPassword = "s3cret-pass"
)

func newTestRouter(t *testing.T, limiter *httpmiddleware.RateLimiter) http.Handler {
	t.Helper()

	logger := logging.Discard()
	svc := submissions.NewService(submissions.ServiceConfig{
		Repo:   submissions.NewInMemoryRepository(),
		Logger: logger,
	})
	issuer, err := auth.NewIssuer("router-test-secret", 0)
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	return New(&Config{
		Logger:             logger,
		SubmissionsHandler: submissions.NewHandler(svc, logger),
		AuthHandler:        auth.NewHandler(issuer, testUser, string(hash), nil, logger),
		Issuer:             issuer,
		HealthHandler: health.NewHandler(map[string]health.Pinger{
			"database": health.PingFunc(func(context.Context) error { return nil }),
		}, logger),
		SiteHandler:   site.NewHandler(site.ServiceSubmitter{Service: svc}, logger),
		SubmitLimiter: limiter,
	})
}

func contactBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(submissions.CreateSubmissionRequest{
		Form:      submissions.FormContact,
		Name:      "Router Test",
		Email:     "router@example.com",
		Phone:     "+420775505805",
		EventType: "Wedding",
		Message:   "Router test message",
	})
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	return body
}

func login(t *testing.T, router http.Handler) string {
	t.Helper()
	body := `{"username":"` + testUser + `","password":"` + testPassword + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp auth.LoginResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return resp.Token
}

func TestRouterHealthEndpoints(t *testing.T) {
	router := newTestRouter(t, nil)

	for _, path := range []string{"/health", "/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected status %d, got %d", path, http.StatusOK, rr.Code)
		}
	}
}

func TestRouterSubmitAndAlias(t *testing.T) {
	router := newTestRouter(t, nil)

	for _, path := range []string{"/api/contact-submissions", "/api/contact-form"} {
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(contactBody(t)))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusCreated {
			t.Fatalf("%s: expected status %d, got %d", path, http.StatusCreated, rr.Code)
		}
		var created submissions.Submission
		if err := json.NewDecoder(rr.Body).Decode(&created); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if created.ID == "" || created.Email != "router@example.com" {
			t.Errorf("unexpected created record %+v", created)
		}
	}
}

func TestRouterAdminRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t, nil)

	for _, path := range []string{
		"/api/contact-submissions",
		"/api/export-submissions-csv",
		"/api/admin/verify",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401 without token, got %d", path, rr.Code)
		}
	}
}

func TestRouterAdminFlow(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/contact-submissions", bytes.NewReader(contactBody(t)))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("submit: expected 201, got %d", rr.Code)
	}

	token := login(t, router)

	req = httptest.NewRequest(http.MethodGet, "/api/admin/verify", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("verify: expected 200, got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/contact-submissions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rr.Code)
	}
	var list []submissions.Submission
	if err := json.NewDecoder(rr.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 submission, got %d", len(list))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/contact-submissions/"+list[0].ID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/export-submissions-csv", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("export: expected 200, got %d", rr.Code)
	}
	if cd := rr.Header().Get("Content-Disposition"); cd != "attachment; filename=contact_submissions.csv" {
		t.Errorf("unexpected Content-Disposition %q", cd)
	}
	if !strings.Contains(rr.Body.String(), "Router Test,router@example.com") {
		t.Errorf("export missing row: %s", rr.Body.String())
	}
}

func TestRouterRateLimitsSubmissions(t *testing.T) {
	limiter := httpmiddleware.NewRateLimiter(0.01, 1)
	defer limiter.Close()
	router := newTestRouter(t, limiter)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/contact-submissions", bytes.NewReader(contactBody(t)))
		req.RemoteAddr = "198.51.100.4:40000"
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	if codes[0] != http.StatusCreated || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("expected [201 429], got %v", codes)
	}
}

func TestRouterLandingPage(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `action="/forms/contact?lang=en"`) {
		t.Errorf("landing page missing contact form")
	}
}
