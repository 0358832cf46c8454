package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrDataUnavailable means the availability or catalog source could not
	// be reached. No booking flow is possible until a reload succeeds; the
	// store must never be presented as empty-and-all-free instead.
	ErrDataUnavailable = errors.New("availability data unavailable")

	// ErrConflict means the requested range became unavailable after
	// client-side validation but before server commit.
	ErrConflict = errors.New("requested range is no longer available")

	ErrCapacityExceeded   = errors.New("guest count exceeds property capacity")
	ErrPropertyNotFound   = errors.New("property not found")
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
)

// FieldErrors carries field-level validation detail, keyed by the JSON field
// name. Recoverable in place by correcting the named fields.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func IsValidationError(err error) bool {
	var fe FieldErrors
	return errors.As(err, &fe)
}
