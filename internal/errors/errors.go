// Package errors provides the error taxonomy for levdist. It defines sentinel
// errors, typed errors carrying call context, and classification helpers.
//
// # Error Types
//
//   - ArgumentError: a caller supplied an out-of-range argument (for example a
//     worker count of zero). Matches ErrInvalidArgument.
//   - PoolError: a worker pool could not be constructed. Carries the underlying
//     cause and matches ErrPoolConstruction.
//
// Distance computation itself never fails; only batch setup produces errors.
//
// # Usage
//
//	err := errors.NewArgumentError("workers", 0, 1)
//	if errors.Is(err, errors.ErrInvalidArgument) { ... }
//
//	var poolErr *errors.PoolError
//	if errors.As(err, &poolErr) {
//	    log.Warn("pool build failed", "workers", poolErr.Workers)
//	}
//
// # Error Classification
//
// Neither error kind is retryable: arguments do not fix themselves and pool
// construction failure reflects a persistent resource condition.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions so callers can import only this
// package for error handling.
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
	// SeverityWarning is for errors caused by caller input.
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
	// ErrInvalidArgument indicates that an argument failed validation.
	ErrInvalidArgument = New("invalid argument")
	// ErrPoolConstruction indicates that a worker pool could not be built.
	ErrPoolConstruction = New("worker pool construction failed")
	// ErrPoolClosed indicates work was submitted to a pool after Close.
	ErrPoolClosed = New("worker pool is closed")
	// ErrResourceLimit indicates a request exceeded a configured resource cap.
	ErrResourceLimit = New("resource limit exceeded")
)

// -----------------------------------------------------------------------------
// Base Error
// -----------------------------------------------------------------------------

// LevdistError is implemented by every typed error in this package.
type LevdistError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsRetryable reports whether the operation may succeed on retry.
	IsRetryable() bool

	// IsUserFacing reports whether the message is safe to show end users.
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

func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
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

// -----------------------------------------------------------------------------
// ArgumentError
// -----------------------------------------------------------------------------

// ArgumentError reports an argument below its minimum valid value.
//
// Example:
//
//	err := errors.NewArgumentError("workers", 0, 1)
//	fmt.Println(err) // "invalid argument [field=workers, value=0]: workers must be at least 1"
type ArgumentError struct {
	baseError
	Field string
	Value any
	Min   int
}

// NewArgumentError creates an ArgumentError for field whose value is below min.
func NewArgumentError(field string, value any, min int) *ArgumentError {
	return &ArgumentError{
		baseError: baseError{
			message:    fmt.Sprintf("%s must be at least %d", field, min),
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
		Field: field,
		Value: value,
		Min:   min,
	}
}

// WithMessage replaces the default message.
func (e *ArgumentError) WithMessage(msg string) *ArgumentError {
	e.message = msg
	return e
}

// WithCause adds a cause to the error.
func (e *ArgumentError) WithCause(cause error) *ArgumentError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ArgumentError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "invalid argument"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("invalid argument [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ArgumentError) Is(target error) bool {
	if _, ok := target.(*ArgumentError); ok {
		return true
	}
	if target == ErrInvalidArgument {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// PoolError
// -----------------------------------------------------------------------------

// PoolError reports a failed worker pool construction.
//
// Example:
//
//	err := errors.NewPoolError(64, cause)
//	fmt.Println(err) // "pool error [workers=64]: failed to create worker pool: <cause>"
type PoolError struct {
	baseError
	Workers int
}

// NewPoolError creates a PoolError for a pool of the given size.
func NewPoolError(workers int, cause error) *PoolError {
	return &PoolError{
		baseError: baseError{
			message:    "failed to create worker pool",
			cause:      cause,
			severity:   SeverityError,
			retryable:  false,
			userFacing: true,
		},
		Workers: workers,
	}
}

// Error returns the formatted error message.
func (e *PoolError) Error() string {
	prefix := fmt.Sprintf("pool error [workers=%d]", e.Workers)
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *PoolError) Is(target error) bool {
	if _, ok := target.(*PoolError); ok {
		return true
	}
	if target == ErrPoolConstruction {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsRetryable returns true if the error represents a transient condition.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var levErr LevdistError
	if As(err, &levErr) {
		return levErr.IsRetryable()
	}
	return false
}

// IsUserFacing returns true if the error message is safe to display to end users.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var levErr LevdistError
	if As(err, &levErr) {
		return levErr.IsUserFacing()
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement LevdistError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var levErr LevdistError
	if As(err, &levErr) {
		return levErr.Severity()
	}
	return SeverityError
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

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
