package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ModeMismatch, "operands are in different modes")
	if !strings.Contains(err.Error(), "MODE_MISMATCH") {
		t.Errorf("Expected code in message, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "different modes") {
		t.Errorf("Expected message text, got %q", err.Error())
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(StoreUnavailable, "cannot persist annotation", cause)

	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Expected cause in message, got %q", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("Expected errors.Is to find the cause")
	}
}

func TestIsCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code ErrorCode
		want bool
	}{
		{"direct match", New(UnsupportedInput, "x"), UnsupportedInput, true},
		{"different code", New(UnsupportedInput, "x"), ModeMismatch, false},
		{"wrapped match", fmt.Errorf("outer: %w", New(NodeNotFound, "missing")), NodeNotFound, true},
		{"foreign error", fmt.Errorf("plain"), InternalError, false},
		{"nil", nil, InternalError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCode(tt.err, tt.code); got != tt.want {
				t.Errorf("IsCode(%v, %s) = %v, want %v", tt.err, tt.code, got, tt.want)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(New(TableNotFound, "orders")); got != TableNotFound {
		t.Errorf("Expected TableNotFound, got %s", got)
	}
	if got := CodeOf(fmt.Errorf("plain")); got != InternalError {
		t.Errorf("Expected InternalError for foreign error, got %s", got)
	}
}

func TestWithDetails(t *testing.T) {
	err := Newf(UnsupportedMode, "traverse on %s mode", "TABLE").WithDetails(map[string]int{"hits": 3})
	if err.Details == nil {
		t.Error("Expected details to be set")
	}
}
