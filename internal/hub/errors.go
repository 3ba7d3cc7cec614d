package hub

import (
	"errors"
	"fmt"
)

// Kind classifies a failure raised by the hub services. The set is closed;
// the problem-detail translator has exactly one entry per kind.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindUnauthorized
	KindForbidden
	KindProvider
)

// Violation describes a single field-level validation failure.
type Violation struct {
	Field         string `json:"field"`
	Message       string `json:"message"`
	RejectedValue any    `json:"rejectedValue"`
}

// Error is the failure type shared by all hub services.
type Error struct {
	Kind       Kind
	Detail     string
	Violations []Violation
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Detail, e.Err)
	}
	return e.Detail
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports that the named resource does not exist.
func NotFound(resource, id string) *Error {
	return &Error{
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// Validation reports malformed input with field-level violations.
func Validation(violations ...Violation) *Error {
	return &Error{
		Kind:       KindValidation,
		Detail:     "Validation failed",
		Violations: violations,
	}
}

// Unauthorized reports a missing or invalid credential.
func Unauthorized() *Error {
	return &Error{Kind: KindUnauthorized, Detail: "Authentication required"}
}

// Forbidden reports that the caller lacks access to the resource.
func Forbidden() *Error {
	return &Error{Kind: KindForbidden, Detail: "Access denied"}
}

// ProviderFailure wraps an upstream provider error. The upstream message is
// carried in the detail; the cause is retained for logging only.
func ProviderFailure(err error) *Error {
	return &Error{
		Kind:   KindProvider,
		Detail: fmt.Sprintf("External provider error: %v", err),
		Err:    err,
	}
}

// AsError extracts a *Error from err, or nil if err is not one.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// IsNotFound reports whether err is a NotFound failure.
func IsNotFound(err error) bool {
	e := AsError(err)
	return e != nil && e.Kind == KindNotFound
}
