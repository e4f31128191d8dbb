package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidField, "scrap rate %s out of range", "120")

	if err.Code != ErrCodeInvalidField {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidField)
	}

	if err.Message != "scrap rate 120 out of range" {
		t.Errorf("Message = %v, want %v", err.Message, "scrap rate 120 out of range")
	}

	expected := "INVALID_FIELD: scrap rate 120 out of range"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeStructuralCycle, cause, "building BOM")

	if err.Code != ErrCodeStructuralCycle {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeStructuralCycle)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeVersionConflict, "test"),
			code:     ErrCodeVersionConflict,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeVersionConflict, "test"),
			code:     ErrCodeStructuralCycle,
			expected: false,
		},
		{
			name:     "wrapped structured error",
			err:      fmt.Errorf("outer: %w", New(ErrCodeBudgetExceeded, "test")),
			code:     ErrCodeBudgetExceeded,
			expected: true,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			code:     ErrCodeInternal,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeOrphanReference, "test")); got != ErrCodeOrphanReference {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeOrphanReference)
	}

	if got := GetCode(errors.New("plain")); got != Code("") {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "bad input")); got != "bad input" {
		t.Errorf("UserMessage() = %v, want %v", got, "bad input")
	}

	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %v, want %v", got, "plain")
	}
}
