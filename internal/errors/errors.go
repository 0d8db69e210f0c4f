// Package errors provides centralized error definitions and error handling
// utilities for heistboard. It defines the errors raised by entry feeds and
// snapshot decoding, along with classification helpers used to decide
// whether a failure should be retried or surfaced to the viewer.
//
// # Error Types
//
//   - FeedError: a feed could not be read (file, stdin, websocket)
//   - DecodeError: a snapshot payload was not valid leaderboard JSON
//   - ValidationError: invalid input or configuration
//
// # Usage
//
//	err := errors.NewFeedError("dial failed", cause).WithSource("websocket").WithTarget(url)
//	if errors.IsRetryable(err) {
//	    // reconnect after a delay
//	}
//
// The widget itself never fails: every error in this package belongs to the
// adapters that feed it.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

var (
	// ErrFeedClosed indicates the remote end of a feed went away.
	ErrFeedClosed = New("feed closed")
	// ErrEmptyPayload indicates a snapshot payload contained no JSON value.
	ErrEmptyPayload = New("empty payload")
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// HeistError is the base interface for all heistboard errors.
type HeistError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsRetryable returns true if the error is transient and the operation
	// may succeed on retry.
	IsRetryable() bool

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

type baseError struct {
	message    string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Unwrap() error {
	return e.cause
}

func (e *baseError) Severity() Severity {
	return e.severity
}

func (e *baseError) IsRetryable() bool {
	return e.retryable
}

func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// format renders "<kind> [k=v, ...]: message: cause".
func (e *baseError) format(kind string, parts []string) string {
	prefix := kind
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", kind, strings.Join(parts, ", "))
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// -----------------------------------------------------------------------------
// Feed Errors
// -----------------------------------------------------------------------------

// FeedError represents a failure reading entries from a feed.
//
// Example:
//
//	err := errors.NewFeedError("read failed", io.ErrUnexpectedEOF).WithSource("websocket")
//	fmt.Println(err) // "feed error [source=websocket]: read failed: unexpected EOF"
type FeedError struct {
	baseError
	Source string
	Target string
}

// NewFeedError creates a new FeedError. Feed errors are retryable by default.
func NewFeedError(message string, cause error) *FeedError {
	return &FeedError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			retryable:  true,
			userFacing: true,
		},
	}
}

// WithSource sets the feed kind ("file", "websocket", ...).
func (e *FeedError) WithSource(source string) *FeedError {
	e.Source = source
	return e
}

// WithTarget sets the path or URL the feed was reading.
func (e *FeedError) WithTarget(target string) *FeedError {
	e.Target = target
	return e
}

// WithRetryable sets whether the error is retryable.
func (e *FeedError) WithRetryable(r bool) *FeedError {
	e.retryable = r
	return e
}

// WithSeverity sets the error severity.
func (e *FeedError) WithSeverity(s Severity) *FeedError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *FeedError) Error() string {
	var parts []string
	if e.Source != "" {
		parts = append(parts, fmt.Sprintf("source=%s", e.Source))
	}
	if e.Target != "" {
		parts = append(parts, fmt.Sprintf("target=%s", e.Target))
	}
	return e.format("feed error", parts)
}

// Is checks if this error matches the target.
func (e *FeedError) Is(target error) bool {
	if _, ok := target.(*FeedError); ok {
		return true
	}
	return e.cause != nil && errors.Is(e.cause, target)
}

// -----------------------------------------------------------------------------
// Decode Errors
// -----------------------------------------------------------------------------

// DecodeError represents a payload that could not be decoded into entries.
// A bad payload will not improve by re-reading it, so decode errors are
// never retryable.
type DecodeError struct {
	baseError
	// Snippet holds the start of the offending payload for logs.
	Snippet string
}

// maxSnippet bounds the payload excerpt kept on a DecodeError.
const maxSnippet = 64

// NewDecodeError creates a new DecodeError for payload.
func NewDecodeError(message string, payload []byte, cause error) *DecodeError {
	snippet := string(payload)
	if len(snippet) > maxSnippet {
		snippet = snippet[:maxSnippet] + "..."
	}
	return &DecodeError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: false,
		},
		Snippet: snippet,
	}
}

// Error returns the formatted error message.
func (e *DecodeError) Error() string {
	return e.format("decode error", nil)
}

// Is checks if this error matches the target.
func (e *DecodeError) Is(target error) bool {
	if _, ok := target.(*DecodeError); ok {
		return true
	}
	return e.cause != nil && errors.Is(e.cause, target)
}

// -----------------------------------------------------------------------------
// Validation Errors
// -----------------------------------------------------------------------------

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("teams must be positive").WithField("teams").WithValue(0)
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}
	return e.format("validation error", parts)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if target == ErrInvalidInput {
		return true
	}
	return e.cause != nil && errors.Is(e.cause, target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsRetryable returns true if the error represents a transient condition
// that may succeed on retry.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var heistErr HeistError
	if As(err, &heistErr) {
		return heistErr.IsRetryable()
	}

	return Is(err, ErrFeedClosed)
}

// IsUserFacing returns true if the error message is safe to display to end
// users, e.g. in the TUI status line.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var heistErr HeistError
	if As(err, &heistErr) {
		return heistErr.IsUserFacing()
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement HeistError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var heistErr HeistError
	if As(err, &heistErr) {
		return heistErr.Severity()
	}
	return SeverityError
}

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
