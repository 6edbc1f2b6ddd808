package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thebar-catering/thebar-site/internal/i18n"
	"github.com/thebar-catering/thebar-site/internal/submissions"
	"github.com/thebar-catering/thebar-site/pkg/logging"
)

func newTestSite(t *testing.T) (http.Handler, *submissions.InMemoryRepository) {
	t.Helper()
	repo := submissions.NewInMemoryRepository()
	svc := submissions.NewService(submissions.ServiceConfig{Repo: repo, Logger: logging.Discard()})
	h := NewHandler(ServiceSubmitter{Service: svc}, logging.Discard())
	h.now = func() time.Time { return time.Date(2026, 5, 14, 10, 0, 0, 0, time.UTC) }

	r := chi.NewRouter()
	r.Get("/", h.Index)
	r.Post("/forms/{kind}", h.SubmitForm)
	return r, repo
}

func postForm(router http.Handler, path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestIndex_LocaleFromQueryAndHeader(t *testing.T) {
	router, _ := newTestSite(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-GB,en;q=0.9")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `<html lang="en">`)
	assert.Contains(t, rec.Body.String(), "A cocktail bar for your event")

	req = httptest.NewRequest(http.MethodGet, "/?lang=cs", nil)
	req.Header.Set("Accept-Language", "en")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), `<html lang="cs">`)
}

func TestIndex_PopupDateDefaultsToToday(t *testing.T) {
	router, _ := newTestSite(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?lang=en", nil))
	assert.Contains(t, rec.Body.String(), `<input type="date" name="date" value="2026-05-14">`)
}

func TestSubmitForm_ContactSuccess(t *testing.T) {
	router, repo := newTestSite(t)
	rec := postForm(router, "/forms/contact?lang=en", url.Values{
		"name":      {"Jana Novak"},
		"email":     {"jana@example.com"},
		"phone":     {"+420775505805"},
		"eventType": {"Wedding"},
		"message":   {"June wedding for 80 guests"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), i18n.T(i18n.English, i18n.SubmitSuccess))
	// the draft is reset
	assert.NotContains(t, rec.Body.String(), "jana@example.com")

	stored, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, submissions.FormContact, stored[0].Form)
	assert.Equal(t, "Jana Novak", stored[0].Name)
	assert.Equal(t, "en", stored[0].Locale)
}

func TestSubmitForm_ValidationErrorsKeepDraft(t *testing.T) {
	router, repo := newTestSite(t)
	rec := postForm(router, "/forms/popup?lang=en", url.Values{
		"name":  {"<Petr>"},
		"email": {"not-an-email"},
	})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, i18n.T(i18n.English, i18n.FieldRequired))
	assert.Contains(t, body, i18n.T(i18n.English, i18n.InvalidEmail))
	assert.Contains(t, body, `value="&lt;Petr&gt;"`)
	assert.NotContains(t, body, "<Petr>")

	stored, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSubmitForm_UnknownKind(t *testing.T) {
	router, _ := newTestSite(t)
	rec := postForm(router, "/forms/newsletter", url.Values{"name": {"x"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContentFor(t *testing.T) {
	assert.Equal(t, i18n.Czech, ContentFor(i18n.Czech).Locale)

	ru := ContentFor(i18n.Russian)
	assert.Equal(t, i18n.Russian, ru.Locale)
	assert.Equal(t, ContentFor(i18n.English).Hero, ru.Hero)

	assert.Equal(t, i18n.Czech, ContentFor(i18n.Locale("de")).Locale)
}

func TestIndex_DefaultLocaleWithoutPreference(t *testing.T) {
	h := NewHandler(nil, logging.Discard())
	h.SetDefaultLocale(i18n.English)
	h.SetDefaultLocale(i18n.Locale("de"))

	rec := httptest.NewRecorder()
	h.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, rec.Body.String(), `<html lang="en">`)
}
