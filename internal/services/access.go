package services

import (
	apperrors "butce/internal/errors"
	"butce/internal/models"
)

// Authorize succeeds only when requesterID owns t. The error carries no
// detail about the actual owner.
func Authorize(requesterID uint, t *models.Transaction) error {
	if t == nil || requesterID == 0 || t.UserID != requesterID {
		return apperrors.ErrForbidden
	}
	return nil
}
