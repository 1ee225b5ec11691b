// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Database errors.
	ErrNotFound = errors.New("not found")

	// Export errors.
	ErrSheetsRateLimit = errors.New("sheets rate limit exceeded")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ParseError reports an input table that could not be read at all.
type ParseError struct {
	Err  error
	Line int
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("unreadable input table at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("unreadable input table: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EmptyInputError reports an input table without usable data rows.
type EmptyInputError struct {
	Reason string
}

func (e *EmptyInputError) Error() string {
	if e.Reason == "" {
		return "input has no data rows"
	}
	return "input has no data rows: " + e.Reason
}

// ValidationError reports a missing or invalid caller parameter.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for the named parameter.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// PersistenceError reports a failed ingestion unit. Nothing from the
// attempt has been persisted when this error is returned.
type PersistenceError struct {
	Err error
	Op  string
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimit) ||
		errors.Is(err, ErrSheetsRateLimit) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
