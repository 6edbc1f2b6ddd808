package submissions

import (
	"errors"
	"sort"
	"strings"

	"github.com/thebar-catering/thebar-site/internal/validation"
)

var (
	// ErrUnknownForm is returned when the form kind is not popup or contact
	ErrUnknownForm = errors.New("submissions: unknown form")

	// ErrSubmissionNotFound is returned when a submission is not found
	ErrSubmissionNotFound = errors.New("submission not found")

	// ErrDuplicateSubmission is returned when the same payload arrives again
	// inside the duplicate window
	ErrDuplicateSubmission = errors.New("submissions: duplicate submission")
)

// ValidationError lists every failing field with its rule code.
type ValidationError struct {
	Fields map[string]validation.Code
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "submissions: invalid fields: " + strings.Join(names, ", ")
}
