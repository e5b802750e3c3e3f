// Package domain defines the core domain models for memkv.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured error code.
type DomainError struct {
	Code    string // Error code (e.g., "MK-CMD-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true // Only check if it's a DomainError
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Protocol Errors (PROTO)
// ============================================================================

var (
	// ErrMalformedInput indicates a wire-level framing violation.
	ErrMalformedInput = NewDomainError("MK-PROTO-4000", "malformed input")
)

// ============================================================================
// Command Errors (CMD)
// ============================================================================

var (
	// ErrInvalidCommand indicates the decoded request is not a command array,
	// or its first element is not a string.
	ErrInvalidCommand = NewDomainError("MK-CMD-4000", "invalid command format")

	// ErrMissingArgument indicates a command-specific arity violation.
	ErrMissingArgument = NewDomainError("MK-CMD-4001", "missing required argument")

	// ErrInvalidArgument indicates an argument that cannot be interpreted.
	ErrInvalidArgument = NewDomainError("MK-CMD-4002", "invalid argument")

	// ErrUnknownCommand indicates the command name resolves to nothing.
	ErrUnknownCommand = NewDomainError("MK-CMD-4040", "unknown command")
)

// ============================================================================
// System Errors (SYS)
// ============================================================================

var (
	// ErrRateLimited indicates too many commands from one client.
	ErrRateLimited = NewDomainError("MK-SYS-4290", "too many requests")

	// ErrServerShutdown indicates the server is draining connections.
	ErrServerShutdown = NewDomainError("MK-SYS-5030", "server shutting down")
)
