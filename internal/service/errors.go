package service

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError aggregates per-field violations so a response can report
// every failed field at once instead of stopping at the first.
type ValidationError struct {
	Fields map[string][]string // Field name -> violation messages
}

// NewValidationError returns an empty ValidationError ready to collect fields.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

// Add records one violation for a field.
func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = append(e.Fields[field], msg)
}

// HasErrors reports whether any field failed.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// ErrOrNil returns the error when at least one field failed, otherwise nil.
func (e *ValidationError) ErrOrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// AuthenticationError covers missing/invalid tokens and bad credentials.
// Credential failures carry a deliberately generic message.
type AuthenticationError struct {
	Msg string
}

func (e *AuthenticationError) Error() string { return e.Msg }

// NotFoundError is returned when a row lookup by id comes up empty.
type NotFoundError struct {
	Resource string // "user", "category", "transaction"
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// ConflictError blocks a delete that would orphan dependent rows.
// Code is the HTTP status the API maps it to.
type ConflictError struct {
	Code int
	Msg  string
}

func (e *ConflictError) Error() string { return e.Msg }
