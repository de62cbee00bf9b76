package errs

import (
	"fmt"
	"strings"
)

// Violation is a single field-level rule failure.
type Violation struct {
	Field   string
	Message string
}

// ValidationError carries the structured list of rule failures for one entity.
// Nothing is persisted when a command returns it.
type ValidationError struct {
	Entity     string
	Violations []Violation
}

func NewValidationError(entity, field, message string) *ValidationError {
	return &ValidationError{
		Entity:     entity,
		Violations: []Violation{{Field: field, Message: message}},
	}
}

// Add appends another violation and returns the receiver for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Violations = append(e.Violations, Violation{Field: field, Message: message})
	return e
}

// Messages groups violation messages by field.
func (e *ValidationError) Messages() map[string][]string {
	out := make(map[string][]string, len(e.Violations))
	for _, v := range e.Violations {
		out[v.Field] = append(out[v.Field], v.Message)
	}
	return out
}

// Has reports whether the error contains the given field/message pair.
func (e *ValidationError) Has(field, message string) bool {
	for _, v := range e.Violations {
		if v.Field == field && v.Message == message {
			return true
		}
	}
	return false
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s %s", v.Field, v.Message))
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidationFailed, e.Entity, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// ExternalSyncError is returned when a committed change could not be mirrored to an
// external system. The local write stays in place.
type ExternalSyncError struct {
	System    string
	Operation string
	Cause     error
}

func NewExternalSyncError(system, operation string, cause error) *ExternalSyncError {
	return &ExternalSyncError{System: system, Operation: operation, Cause: cause}
}

func (e *ExternalSyncError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s %s (cause: %v)", ErrExternalSyncFailed, e.System, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s %s", ErrExternalSyncFailed, e.System, e.Operation)
}

// Unwrap exposes both the sentinel and the underlying cause to errors.Is/As.
func (e *ExternalSyncError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrExternalSyncFailed}
	}
	return []error{ErrExternalSyncFailed, e.Cause}
}
