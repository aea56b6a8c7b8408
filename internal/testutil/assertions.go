package testutil

import (
	"errors"
	"testing"

	apperrors "butce/internal/errors"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertCount fails the test unless the table holds exactly want rows.
func AssertCount(t *testing.T, count func() (int64, error), want int64, what string) {
	t.Helper()

	got, err := count()
	if err != nil {
		t.Fatalf("failed to count %s: %v", what, err)
	}
	if got != want {
		t.Errorf("expected %d %s, got %d", want, what, got)
	}
}
