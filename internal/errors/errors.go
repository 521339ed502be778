package apperrors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess          = 0   // Indicates successful execution.
	ExitErrorGeneric     = 1   // Indicates a generic error.
	ExitErrorTimeout     = 2   // Indicates the operation timed out.
	ExitErrorDegenerate  = 3   // Indicates unusable totals or weights.
	ExitErrorConfig      = 4   // Indicates a configuration error.
	ExitErrorConvergence = 5   // Indicates a divisor search did not converge.
	ExitErrorData        = 6   // Indicates the input tables could not be loaded.
	ExitErrorCanceled    = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError encapsulates a failure of one pipeline stage while
// preserving the original cause.
type CalculationError struct {
	// Stage is the name of the pipeline stage that failed.
	Stage string
	// Cause is the underlying error that triggered this calculation error.
	Cause error
}

// Error returns the stage name followed by the underlying cause.
func (e CalculationError) Error() string {
	if e.Stage == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Cause)
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e CalculationError) Unwrap() error { return e.Cause }

// DegenerateInputError signals that an apportionment call received totals
// from which no allocation is possible: a non-positive target at pipeline
// level, a negative target, all-zero weights with a positive target, or
// floors that already exceed the target.
type DegenerateInputError struct {
	// Operation names the apportionment call that rejected its input.
	Operation string
	// Reason describes what made the input unusable.
	Reason string
}

// Error returns a formatted message describing the degenerate input.
func (e DegenerateInputError) Error() string {
	return fmt.Sprintf("degenerate input for %s: %s", e.Operation, e.Reason)
}

// ConvergenceError reports a divisor search that exhausted its iteration
// budget without reaching its goal. With a monotone rounding rule this only
// happens on exact ties or on inputs that break monotonicity.
type ConvergenceError struct {
	// Operation names the search that failed.
	Operation string
	// Iterations is the number of divisor adjustments performed.
	Iterations int
	// Target is the seat sum the search was aiming for.
	Target int
	// Reached is the seat sum at the last trial divisor.
	Reached int
}

// Error returns a formatted message describing the non-convergence.
func (e ConvergenceError) Error() string {
	return fmt.Sprintf("%s did not converge after %d iterations (target %d, reached %d)",
		e.Operation, e.Iterations, e.Target, e.Reached)
}

// TieError reports a constituency in which two or more parties share the
// highest first-vote count and the configured policy refuses to break it.
type TieError struct {
	// Constituency is the identifier of the tied constituency.
	Constituency string
	// Parties lists the tied parties.
	Parties []string
}

// Error returns a formatted message naming the tied parties.
func (e TieError) Error() string {
	return fmt.Sprintf("plurality tie in constituency %q between %s",
		e.Constituency, strings.Join(e.Parties, ", "))
}

// TimeoutError represents a run timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// DataError wraps a failure to read or decode one of the input tables.
type DataError struct {
	// Source identifies the file, database or scenario being read.
	Source string
	// Cause is the underlying decoding or I/O error.
	Cause error
}

// Error returns the source followed by the underlying cause.
func (e DataError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Source, e.Cause)
}

// Unwrap returns the underlying cause.
func (e DataError) Unwrap() error { return e.Cause }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error returned by the application to its exit code.
// A nil error maps to ExitSuccess.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var (
		configErr      ConfigError
		validationErr  ValidationError
		degenerateErr  DegenerateInputError
		convergenceErr ConvergenceError
		dataErr        DataError
		timeoutErr     TimeoutError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &timeoutErr):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &configErr):
		return ExitErrorConfig
	case errors.As(err, &dataErr), errors.As(err, &validationErr):
		return ExitErrorData
	case errors.As(err, &degenerateErr):
		return ExitErrorDegenerate
	case errors.As(err, &convergenceErr):
		return ExitErrorConvergence
	default:
		return ExitErrorGeneric
	}
}
