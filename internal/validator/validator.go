// Package validator registers the custom binding tags used by request
// payloads with Gin's validator engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"butce/internal/models"
	"butce/internal/money"
	"butce/internal/period"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("amount", validateAmount)
		_ = v.RegisterValidation("iso_date", validateISODate)
	}
}

func validateTransactionType(fl validator.FieldLevel) bool {
	_, ok := models.ParseTransactionType(fl.Field().String())
	return ok
}

func validateAmount(fl validator.FieldLevel) bool {
	_, err := money.Parse(fl.Field().String())
	return err == nil
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := period.ParseDate(fl.Field().String())
	return err == nil
}
