package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// ValidationErrors unwraps to it.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// ValidationErrors collects field level violation messages, keeping the
// order in which fields were first reported.
type ValidationErrors struct {
	order    []string
	messages map[string][]string
}

// NewValidationErrors returns an empty collection.
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{messages: make(map[string][]string)}
}

// NewFieldError is a shorthand for a single violation.
func NewFieldError(field, message string) *ValidationErrors {
	v := NewValidationErrors()
	v.Add(field, message)
	return v
}

// Add records a violation for field.
func (v *ValidationErrors) Add(field, message string) {
	if v.messages == nil {
		v.messages = make(map[string][]string)
	}
	if _, seen := v.messages[field]; !seen {
		v.order = append(v.order, field)
	}
	v.messages[field] = append(v.messages[field], message)
}

// Merge appends every violation of other.
func (v *ValidationErrors) Merge(other *ValidationErrors) {
	if other == nil {
		return
	}
	for _, field := range other.order {
		for _, msg := range other.messages[field] {
			v.Add(field, msg)
		}
	}
}

// Len returns the total number of messages.
func (v *ValidationErrors) Len() int {
	if v == nil {
		return 0
	}
	n := 0
	for _, msgs := range v.messages {
		n += len(msgs)
	}
	return n
}

// Fields returns the field to messages mapping.
func (v *ValidationErrors) Fields() map[string][]string {
	out := make(map[string][]string, len(v.messages))
	for field, msgs := range v.messages {
		out[field] = append([]string(nil), msgs...)
	}
	return out
}

// Has reports whether field has at least one violation.
func (v *ValidationErrors) Has(field string) bool {
	return len(v.messages[field]) > 0
}

// First returns the first message of the first reported field.
func (v *ValidationErrors) First() string {
	if v == nil || len(v.order) == 0 {
		return ""
	}
	return v.messages[v.order[0]][0]
}

// Summary is the first message followed by a count of the remaining ones,
// e.g. "The task title is required. (and 1 more error)".
func (v *ValidationErrors) Summary() string {
	rest := v.Len() - 1
	switch {
	case rest < 0:
		return ErrValidation.Error()
	case rest == 0:
		return v.First()
	case rest == 1:
		return v.First() + " (and 1 more error)"
	default:
		return fmt.Sprintf("%s (and %d more errors)", v.First(), rest)
	}
}

// Err returns v as an error, or nil when no violation was recorded.
func (v *ValidationErrors) Err() error {
	if v.Len() == 0 {
		return nil
	}
	return v
}

func (v *ValidationErrors) Error() string {
	parts := make([]string, 0, len(v.order))
	for _, field := range v.order {
		parts = append(parts, field+": "+strings.Join(v.messages[field], "; "))
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, ", "))
}

// Unwrap allows errors.Is(err, ErrValidation).
func (v *ValidationErrors) Unwrap() error {
	return ErrValidation
}
