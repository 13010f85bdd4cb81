package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// NonFieldErrors keys validation messages that are not tied to one field.
const NonFieldErrors = "non_field_errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("permission denied")
)

// ValidationError carries field-scoped messages for a rejected write.
// Conflict marks violations of a uniqueness invariant; the API layer still
// renders those as a 400 body, matching the source system.
type ValidationError struct {
	Fields   map[string][]string
	Conflict bool
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}

func NewConflictError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {message}}, Conflict: true}
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Fields[field], "; ")))
	}
	return strings.Join(parts, "; ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
