// Package apperrors provides tests for application error types.
package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         error
		expected    string
		checkTypeAs bool
	}{
		{
			name:     "Error returns message",
			err:      ConfigError{Message: "invalid flag value"},
			expected: "invalid flag value",
		},
		{
			name:     "NewConfigError creates formatted error",
			err:      NewConfigError("invalid value %d for flag %s", -1, "--seats"),
			expected: "invalid value -1 for flag --seats",
		},
		{
			name:        "ConfigError type assertion",
			err:         NewConfigError("test error"),
			expected:    "test error",
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			if tt.checkTypeAs {
				var configErr ConfigError
				if !errors.As(tt.err, &configErr) {
					t.Error("expected error to be ConfigError type")
				}
			}
		})
	}
}

func TestCalculationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		stage       string
		cause       error
		expectedMsg string
		checkIs     error
	}{
		{
			name:        "Error without stage returns cause message",
			cause:       errors.New("division by zero"),
			expectedMsg: "division by zero",
		},
		{
			name:        "Error with stage prefixes the stage",
			stage:       "region-baseline",
			cause:       errors.New("no regions"),
			expectedMsg: "region-baseline: no regions",
		},
		{
			name:        "errors.Is works with wrapped error",
			stage:       "final-distribution",
			cause:       context.Canceled,
			expectedMsg: "final-distribution: context canceled",
			checkIs:     context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := CalculationError{Stage: tt.stage, Cause: tt.cause}
			if err.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, err.Error())
			}
			if err.Unwrap() != tt.cause {
				t.Error("Unwrap should return the original cause")
			}
			if tt.checkIs != nil && !errors.Is(err, tt.checkIs) {
				t.Errorf("errors.Is should find %v", tt.checkIs)
			}
		})
	}
}

func TestDegenerateInputError(t *testing.T) {
	t.Parallel()
	err := DegenerateInputError{Operation: "region-baseline", Reason: "all weights are zero"}
	want := "degenerate input for region-baseline: all weights are zero"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestConvergenceError(t *testing.T) {
	t.Parallel()
	err := ConvergenceError{Operation: "apportion", Iterations: 5000, Target: 10, Reached: 11}
	want := "apportion did not converge after 5000 iterations (target 10, reached 11)"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestTieError(t *testing.T) {
	t.Parallel()
	err := TieError{Constituency: "WK-1", Parties: []string{"A", "B"}}
	want := `plurality tie in constituency "WK-1" between A, B`
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()
	err := TimeoutError{Operation: "allocation", Limit: 30 * time.Second}
	want := `operation "allocation" timed out after 30s`
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	err := ValidationError{Field: "population", Message: "must not be negative"}
	want := `validation error for "population": must not be negative`
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestDataError(t *testing.T) {
	t.Parallel()
	cause := errors.New("unexpected EOF")
	err := DataError{Source: "votes.csv", Cause: cause}
	if err.Error() != "loading votes.csv: unexpected EOF" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause through DataError")
	}
}

func TestNewErrorTypes_ErrorsAsWithWrapping(t *testing.T) {
	t.Parallel()

	t.Run("ConvergenceError wrapped in CalculationError", func(t *testing.T) {
		t.Parallel()
		inner := ConvergenceError{Operation: "apportion", Iterations: 10, Target: 4, Reached: 5}
		err := CalculationError{Stage: "region-list", Cause: inner}

		var convErr ConvergenceError
		if !errors.As(err, &convErr) {
			t.Error("errors.As should find ConvergenceError through CalculationError")
		}
	})

	t.Run("ValidationError wrapped with WrapError", func(t *testing.T) {
		t.Parallel()
		inner := ValidationError{Field: "seats", Message: "too large"}
		err := WrapError(inner, "config check failed")

		var validationErr ValidationError
		if !errors.As(err, &validationErr) {
			t.Error("errors.As should find ValidationError through WrapError")
		}
	})
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		original    error
		format      string
		args        []any
		expectedMsg string
		expectNil   bool
		checkIs     error
	}{
		{
			name:        "wraps error with context",
			original:    errors.New("file not found"),
			format:      "failed to load config",
			expectedMsg: "failed to load config: file not found",
		},
		{
			name:        "preserves error chain",
			original:    context.DeadlineExceeded,
			format:      "operation timed out",
			expectedMsg: "operation timed out: context deadline exceeded",
			checkIs:     context.DeadlineExceeded,
		},
		{
			name:      "returns nil for nil error",
			original:  nil,
			format:    "some context",
			expectNil: true,
		},
		{
			name:        "supports format arguments",
			original:    errors.New("no such table"),
			format:      "failed to query %s in %s",
			args:        []any{"votes", "results.db"},
			expectedMsg: "failed to query votes in results.db: no such table",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			wrapped := WrapError(tt.original, tt.format, tt.args...)

			if tt.expectNil {
				if wrapped != nil {
					t.Error("WrapError(nil, ...) should return nil")
				}
				return
			}

			if wrapped == nil {
				t.Fatal("wrapped error should not be nil")
			}

			if wrapped.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, wrapped.Error())
			}

			if tt.checkIs != nil && !errors.Is(wrapped, tt.checkIs) {
				t.Errorf("wrapped error should preserve %v in the chain", tt.checkIs)
			}
		})
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"context.Canceled", context.Canceled, true},
		{"context.DeadlineExceeded", context.DeadlineExceeded, true},
		{"wrapped context.Canceled", WrapError(context.Canceled, "operation canceled"), true},
		{"regular error", errors.New("some error"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := IsContextError(tt.err)
			if result != tt.expected {
				t.Errorf("IsContextError(%v) = %v, expected %v", tt.err, result, tt.expected)
			}
		})
	}
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"generic", errors.New("boom"), ExitErrorGeneric},
		{"config", NewConfigError("bad"), ExitErrorConfig},
		{"deadline", CalculationError{Stage: "x", Cause: context.DeadlineExceeded}, ExitErrorTimeout},
		{"canceled", fmt.Errorf("run: %w", context.Canceled), ExitErrorCanceled},
		{"degenerate", CalculationError{Stage: "x", Cause: DegenerateInputError{Operation: "a", Reason: "b"}}, ExitErrorDegenerate},
		{"convergence", CalculationError{Stage: "x", Cause: ConvergenceError{}}, ExitErrorConvergence},
		{"data", DataError{Source: "f", Cause: errors.New("eof")}, ExitErrorData},
		{"validation", ValidationError{Field: "f", Message: "m"}, ExitErrorData},
		{"tie", TieError{Constituency: "c"}, ExitErrorGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes(t *testing.T) {
	t.Parallel()
	// Verify exit codes are distinct and match expected values
	codes := map[string]int{
		"ExitSuccess":          ExitSuccess,
		"ExitErrorGeneric":     ExitErrorGeneric,
		"ExitErrorTimeout":     ExitErrorTimeout,
		"ExitErrorDegenerate":  ExitErrorDegenerate,
		"ExitErrorConfig":      ExitErrorConfig,
		"ExitErrorConvergence": ExitErrorConvergence,
		"ExitErrorData":        ExitErrorData,
		"ExitErrorCanceled":    ExitErrorCanceled,
	}

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess should be 0, got %d", ExitSuccess)
	}
	if ExitErrorCanceled != 130 {
		t.Errorf("ExitErrorCanceled should be 130 (SIGINT convention), got %d", ExitErrorCanceled)
	}

	seen := make(map[int]string)
	for name, code := range codes {
		if existing, ok := seen[code]; ok {
			t.Errorf("duplicate exit code %d: %s and %s", code, existing, name)
		}
		seen[code] = name
	}
}
