package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "butce/internal/errors"
	"butce/internal/logger"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (uint, error) {
	userID, exists := c.Get("userID")
	if !exists {
		return 0, apperrors.ErrUnauthorized
	}
	id, ok := userID.(uint)
	if !ok || id == 0 {
		return 0, apperrors.ErrUnauthorized
	}
	return id, nil
}

// parsePathID parses a uint path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
//
//nolint:unparam // param is intentionally generic for reuse across handlers with different path params
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// parsePeriod reads the year and month query parameters. Missing values
// default to the current year and month.
func parsePeriod(c *gin.Context, now time.Time) (year, month int, err error) {
	year, month = now.Year(), int(now.Month())

	if v := c.Query("year"); v != "" {
		if year, err = strconv.Atoi(v); err != nil {
			return 0, 0, apperrors.WithMessage(apperrors.ErrInvalidPeriod, "year must be a number")
		}
	}
	if v := c.Query("month"); v != "" {
		if month, err = strconv.Atoi(v); err != nil {
			return 0, 0, apperrors.WithMessage(apperrors.ErrInvalidPeriod, "month must be a number")
		}
	}
	return year, month, nil
}

// bindingFieldErrors maps request fields to the error reported when their
// binding tag fails.
var bindingFieldErrors = map[string]*apperrors.AppError{
	"Type":      apperrors.ErrInvalidTransactionType,
	"Amount":    apperrors.ErrInvalidAmount,
	"Date":      apperrors.ErrInvalidDate,
	"MemberIDs": apperrors.ErrMembersRequired,
}

// bindingError converts a ShouldBind failure into an AppError, naming the
// first failing field when possible.
func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if appErr, ok := bindingFieldErrors[verrs[0].Field()]; ok {
			return appErr
		}
		return apperrors.WithMessage(apperrors.ErrInvalidInput, verrs[0].Error())
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	respondWithErrorAndForm(c, err, nil)
}

// respondWithErrorAndForm is respondWithError for form submissions: a
// validation failure echoes the submitted values so the client can redisplay
// the form.
func respondWithErrorAndForm(c *gin.Context, err error, form interface{}) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		appErr = apperrors.ErrInternalServer
	} else if appErr.Internal != nil {
		logger.Get().Errorw("app error",
			"code", appErr.Code,
			"internal", appErr.Internal.Error(),
			"path", c.Request.URL.Path,
		)
	}

	body := gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	}
	if form != nil && apperrors.IsValidation(appErr) {
		body["form"] = form
	}
	c.JSON(appErr.StatusCode, body)
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}
