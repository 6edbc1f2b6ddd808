// Package i18n holds the user-facing strings the intake flow needs in every
// language the site is published in.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is a two-letter base language code.
type Locale string

const (
	Czech     Locale = "cs"
	English   Locale = "en"
	Russian   Locale = "ru"
	Ukrainian Locale = "uk"

	// Fallback is used when nothing in the request matches.
	Fallback = Czech
)

// Key identifies a message in the catalog.
type Key string

const (
	FieldRequired    Key = "field_required"
	InvalidEmail     Key = "invalid_email"
	InvalidPhone     Key = "invalid_phone"
	SubmitSuccess    Key = "submit_success"
	SubmitNetwork    Key = "submit_network"
	SubmitServer     Key = "submit_server"
	SubmitRejected   Key = "submit_rejected"
	SubmitDuplicate  Key = "submit_duplicate"
	ExportFailed     Key = "export_failed"
	NoSubmissions    Key = "no_submissions"
	TotalSubmissions Key = "total_submissions"
	SessionExpired   Key = "session_expired"
)

// The first tag is the matcher's default, so Czech must stay first.
var supported = []language.Tag{
	language.Czech,
	language.English,
	language.Russian,
	language.Ukrainian,
}

var matcher = language.NewMatcher(supported)

// Match picks the best supported locale for the given preferences. Each
// preference may be a bare tag ("en-GB") or a full Accept-Language header.
func Match(prefs ...string) Locale {
	tag, _ := language.MatchStrings(matcher, prefs...)
	base, _ := tag.Base()
	if loc := Locale(base.String()); loc.Supported() {
		return loc
	}
	return Fallback
}

// Parse returns the locale for an explicit code, or false if unsupported.
func Parse(code string) (Locale, bool) {
	loc := Locale(strings.ToLower(strings.TrimSpace(code)))
	return loc, loc.Supported()
}

// Supported reports whether the catalog carries this locale.
func (l Locale) Supported() bool {
	_, ok := catalog[l]
	return ok
}

// T translates key into the locale, falling back to Czech and then to the key.
func T(l Locale, key Key) string {
	if msg, ok := catalog[l][key]; ok {
		return msg
	}
	if msg, ok := catalog[Fallback][key]; ok {
		return msg
	}
	return string(key)
}

// Locales lists every supported locale in menu order.
func Locales() []Locale {
	return []Locale{Czech, English, Russian, Ukrainian}
}
