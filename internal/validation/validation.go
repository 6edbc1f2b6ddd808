// Package validation implements the field rules shared by the public forms and
// the submissions API. Rules are pure; only message lookup depends on locale.
package validation

import (
	"regexp"
	"strings"

	"github.com/thebar-catering/thebar-site/internal/i18n"
)

// Code is the machine-readable outcome of a field check.
type Code string

const (
	CodeNone         Code = ""
	CodeRequired     Code = "required"
	CodeInvalidEmail Code = "invalid_email"
	CodeInvalidPhone Code = "invalid_phone"
)

// Field names with a format rule. Every other field only gets a presence check.
const (
	FieldEmail = "email"
	FieldPhone = "phone"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[+]?[0-9 \-()]{9,}$`)
)

// Check validates a single required field.
func Check(field, raw string) Code {
	if strings.TrimSpace(raw) == "" {
		return CodeRequired
	}
	switch field {
	case FieldEmail:
		if !emailPattern.MatchString(raw) {
			return CodeInvalidEmail
		}
	case FieldPhone:
		if !phonePattern.MatchString(raw) {
			return CodeInvalidPhone
		}
	}
	return CodeNone
}

// MessageKey maps a code to its catalog entry.
func (c Code) MessageKey() i18n.Key {
	switch c {
	case CodeRequired:
		return i18n.FieldRequired
	case CodeInvalidEmail:
		return i18n.InvalidEmail
	case CodeInvalidPhone:
		return i18n.InvalidPhone
	default:
		return ""
	}
}

// Validator renders check results in one locale.
type Validator struct {
	locale i18n.Locale
}

// New returns a validator for the locale, falling back to Czech.
func New(locale i18n.Locale) *Validator {
	if !locale.Supported() {
		locale = i18n.Fallback
	}
	return &Validator{locale: locale}
}

// Locale returns the locale messages are rendered in.
func (v *Validator) Locale() i18n.Locale {
	return v.locale
}

// Validate returns the localized error for field, or "" when the value passes.
func (v *Validator) Validate(field, raw string) string {
	code := Check(field, raw)
	if code == CodeNone {
		return ""
	}
	return i18n.T(v.locale, code.MessageKey())
}

// ValidateAll checks every required field against values and returns exactly
// the failing fields. A nil map means everything passed.
func (v *Validator) ValidateAll(required []string, values map[string]string) map[string]string {
	var failed map[string]string
	for _, field := range required {
		msg := v.Validate(field, values[field])
		if msg == "" {
			continue
		}
		if failed == nil {
			failed = make(map[string]string)
		}
		failed[field] = msg
	}
	return failed
}

// CheckAll is the locale-free variant of ValidateAll used by the API.
func CheckAll(required []string, values map[string]string) map[string]Code {
	var failed map[string]Code
	for _, field := range required {
		if code := Check(field, values[field]); code != CodeNone {
			if failed == nil {
				failed = make(map[string]Code)
			}
			failed[field] = code
		}
	}
	return failed
}
