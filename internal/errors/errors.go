// Package errors provides custom error types for the butce API.
// All service-layer errors should use AppError so that responses stay
// consistent and never leak internal details to clients.
package errors

import (
	stderrors "errors"
	"net/http"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	// ErrLoginFailed is returned for both unknown usernames and wrong passwords.
	ErrLoginFailed = &AppError{Code: "LOGIN_FAILED", Message: "Login failed. Username or password is incorrect", StatusCode: http.StatusUnauthorized}
	ErrForbidden   = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound      = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateUsername = &AppError{Code: "DUPLICATE_USERNAME", Message: "A user with this username already exists", StatusCode: http.StatusConflict}
)

// Member errors.
var (
	ErrMemberNotFound  = &AppError{Code: "MEMBER_NOT_FOUND", Message: "Member not found", StatusCode: http.StatusBadRequest}
	ErrMembersRequired = &AppError{Code: "MEMBERS_REQUIRED", Message: "Select at least one member for the transaction", StatusCode: http.StatusBadRequest}
	ErrDuplicateMember = &AppError{Code: "DUPLICATE_MEMBER", Message: "A member with this name already exists", StatusCode: http.StatusConflict}
)

// Transaction errors.
var (
	ErrTransactionNotFound    = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInvalidTransactionType = &AppError{Code: "INVALID_TRANSACTION_TYPE", Message: "Transaction type must be income or expense", StatusCode: http.StatusBadRequest}
	ErrInvalidAmount          = &AppError{Code: "INVALID_AMOUNT", Message: "Amount must be a non-negative number", StatusCode: http.StatusBadRequest}
	ErrInvalidDate            = &AppError{Code: "INVALID_DATE", Message: "Date must use the YYYY-MM-DD format", StatusCode: http.StatusBadRequest}
)

// Period errors.
var (
	ErrInvalidPeriod = &AppError{Code: "INVALID_PERIOD", Message: "Month must be between 1 and 12", StatusCode: http.StatusBadRequest}
)

// validationCodes lists the codes that belong to the validation taxonomy.
var validationCodes = map[string]bool{
	ErrInvalidInput.Code:           true,
	ErrMemberNotFound.Code:         true,
	ErrMembersRequired.Code:        true,
	ErrInvalidTransactionType.Code: true,
	ErrInvalidAmount.Code:          true,
	ErrInvalidDate.Code:            true,
	ErrInvalidPeriod.Code:          true,
}

// IsValidation reports whether err is a validation failure: malformed or
// missing input, no member selected, or an out-of-range period.
func IsValidation(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr) && validationCodes[appErr.Code]
}

// IsNotFound reports whether err signals an absent resource.
func IsNotFound(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr) && appErr.StatusCode == http.StatusNotFound
}

// IsForbidden reports whether err signals an ownership violation.
func IsForbidden(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr) && appErr.Code == ErrForbidden.Code
}
