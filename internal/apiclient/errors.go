package apiclient

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/thebar-catering/thebar-site/internal/submissions"
	"github.com/thebar-catering/thebar-site/internal/validation"
)

// ErrMalformedResponse is returned for a 2xx response the client cannot use.
var ErrMalformedResponse = errors.New("apiclient: malformed response")

// NetworkError wraps a transport failure: nothing usable came back.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("apiclient: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StatusError is a non-2xx response.
type StatusError struct {
	StatusCode int
	Message    string
	Fields     map[string]validation.Code
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("apiclient: %s (status=%d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("apiclient: http status %d", e.StatusCode)
}

// IsAuth reports a rejected or missing admin token.
func (e *StatusError) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsServer reports a 5xx response.
func (e *StatusError) IsServer() bool {
	return e.StatusCode >= 500
}

// IsDuplicate reports the backend refusing a repeated submission.
func (e *StatusError) IsDuplicate() bool {
	return e.StatusCode == http.StatusConflict
}

// IsValidation reports any other 4xx response.
func (e *StatusError) IsValidation() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500 && !e.IsAuth() && !e.IsDuplicate()
}

// ErrorKind groups failures by how a caller should react to them.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindNetwork
	KindAuth
	KindServer
	KindValidation
	KindDuplicate
	KindMalformed
	KindUnknown
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindServer:
		return "server"
	case KindValidation:
		return "validation"
	case KindDuplicate:
		return "duplicate"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Kind classifies err. Errors returned by an in-process submissions.Service
// classify the same way as their HTTP counterparts.
func Kind(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var (
		netErr    *NetworkError
		statusErr *StatusError
		verr      *submissions.ValidationError
	)
	switch {
	case errors.As(err, &netErr):
		return KindNetwork
	case errors.As(err, &statusErr):
		switch {
		case statusErr.IsAuth():
			return KindAuth
		case statusErr.IsServer():
			return KindServer
		case statusErr.IsDuplicate():
			return KindDuplicate
		case statusErr.IsValidation():
			return KindValidation
		}
		return KindUnknown
	case errors.Is(err, ErrMalformedResponse):
		return KindMalformed
	case errors.As(err, &verr), errors.Is(err, submissions.ErrUnknownForm):
		return KindValidation
	case errors.Is(err, submissions.ErrDuplicateSubmission):
		return KindDuplicate
	}
	return KindUnknown
}

// FieldErrors returns the per-field codes carried by a validation failure.
func FieldErrors(err error) map[string]validation.Code {
	var (
		statusErr *StatusError
		verr      *submissions.ValidationError
	)
	switch {
	case errors.As(err, &statusErr):
		return statusErr.Fields
	case errors.As(err, &verr):
		return verr.Fields
	}
	return nil
}

// IsAuth reports whether err is a 401/403 response.
func IsAuth(err error) bool {
	return Kind(err) == KindAuth
}
