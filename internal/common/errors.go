// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Inference errors.
	ErrRateLimit        = errors.New("rate limit exceeded")
	ErrMalformedPayload = errors.New("malformed extraction payload")

	// Market data errors.
	ErrNoQuote = errors.New("no quote data")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
)

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

// IsRetryable reports whether an error should trigger the fallback inference
// tier. Only capacity rejections are retryable; everything else short-circuits.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRateLimit)
}
