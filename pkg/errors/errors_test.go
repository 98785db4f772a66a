package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "run not found")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "run not found" {
		t.Errorf("expected message 'run not found', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, "operation failed", cause)

	if err.Code != ErrCodeInternal {
		t.Errorf("expected code %s, got %s", ErrCodeInternal, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("exit status 1")
	ctx := map[string]interface{}{
		"plan":     "01",
		"executor": "local",
	}

	err := WrapWithContext(ErrCodeExecutionFailed, "plan run failed", cause, ctx)

	if err.Code != ErrCodeExecutionFailed {
		t.Errorf("expected code %s, got %s", ErrCodeExecutionFailed, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["plan"] != "01" {
		t.Errorf("expected plan to be 01")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeNotFound, "not found"),
			expected: "[NOT_FOUND] not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
		{
			name:     "execution failure",
			err:      Wrap(ErrCodeExecutionFailed, "plan 01", errors.New("exit status 2")),
			expected: "[EXECUTION_FAILED] plan 01: exit status 2",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root")
	err := Wrap(ErrCodeTimeout, "wrapped", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}

	var se *StructuredError
	if !errors.As(error(err), &se) {
		t.Error("errors.As should find StructuredError")
	}
}
