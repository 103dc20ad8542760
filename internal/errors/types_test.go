package errors

import (
	"errors"
	"testing"
)

func TestErrorTypeString(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		want      string
	}{
		{ErrorTypeValidation, "validation"},
		{ErrorTypeNotFound, "not_found"},
		{ErrorTypeGateway, "gateway"},
		{ErrorTypeInvalidInput, "invalid_input"},
		{ErrorTypeUnauthorized, "unauthorized"},
		{ErrorTypePermission, "permission"},
		{ErrorType(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.errorType.String(); got != tt.want {
			t.Errorf("ErrorType(%d).String() = %q, want %q", tt.errorType, got, tt.want)
		}
	}
}

func TestAppErrorError(t *testing.T) {
	withCause := &AppError{
		Type:    ErrorTypeGateway,
		Message: "insert failed",
		Cause:   errors.New("disk full"),
	}
	want := "gateway: insert failed (caused by: disk full)"
	if got := withCause.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	withoutCause := &AppError{
		Type:    ErrorTypeValidation,
		Message: "title is required",
	}
	want = "validation: title is required"
	if got := withoutCause.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestAppErrorWithContext(t *testing.T) {
	err := &AppError{Type: ErrorTypeNotFound, Message: "missing"}
	err.WithContext("table", "tasks")

	value, ok := err.GetContext("table")
	if !ok || value != "tasks" {
		t.Errorf("WithContext should store the value")
	}

	if _, ok := err.GetContext("absent"); ok {
		t.Errorf("GetContext should miss unknown keys")
	}
}

func TestAppErrorIs(t *testing.T) {
	a := NewGatewayError("update tasks", nil)
	b := NewGatewayError("delete tasks", nil)

	if !errors.Is(a, b) {
		t.Errorf("errors with the same type and code should match")
	}

	c := NewValidationError("bad input", nil)
	if errors.Is(a, c) {
		t.Errorf("errors with different types should not match")
	}
}
