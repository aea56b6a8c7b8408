package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestWrapKeepsSentinelFields(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(ErrInternalServer, cause)

	if err.Code != ErrInternalServer.Code {
		t.Errorf("expected code %q, got %q", ErrInternalServer.Code, err.Code)
	}
	if err.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", err.StatusCode)
	}
	if err.Unwrap() != cause {
		t.Error("expected Unwrap to return the internal error")
	}
}

func TestWithMessage(t *testing.T) {
	err := WithMessage(ErrInvalidInput, "description is too long")
	if err.Message != "description is too long" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.Code != "INVALID_INPUT" {
		t.Errorf("unexpected code %q", err.Code)
	}
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		validation bool
		notFound   bool
		forbidden  bool
	}{
		{name: "members_required", err: ErrMembersRequired, validation: true},
		{name: "invalid_period", err: WithMessage(ErrInvalidPeriod, "month 13"), validation: true},
		{name: "invalid_amount", err: ErrInvalidAmount, validation: true},
		{name: "transaction_not_found", err: ErrTransactionNotFound, notFound: true},
		{name: "forbidden", err: ErrForbidden, forbidden: true},
		{name: "wrapped_forbidden", err: fmt.Errorf("update: %w", ErrForbidden), forbidden: true},
		{name: "login_failed", err: ErrLoginFailed},
		{name: "plain_error", err: fmt.Errorf("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidation(tt.err); got != tt.validation {
				t.Errorf("IsValidation = %v, want %v", got, tt.validation)
			}
			if got := IsNotFound(tt.err); got != tt.notFound {
				t.Errorf("IsNotFound = %v, want %v", got, tt.notFound)
			}
			if got := IsForbidden(tt.err); got != tt.forbidden {
				t.Errorf("IsForbidden = %v, want %v", got, tt.forbidden)
			}
		})
	}
}
