// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"paisa/internal/month"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("month_token", validateMonthToken)
		_ = v.RegisterValidation("instrument_bucket", validateInstrumentBucket)
		_ = v.RegisterValidation("export_type", validateExportType)
	}
}

func validateMonthToken(fl validator.FieldLevel) bool {
	return month.IsValid(fl.Field().String())
}

func validateInstrumentBucket(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "fd_rd", "nps_ppf", "stocks_etfs", "mf":
		return true
	}
	return false
}

func validateExportType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expenses", "savings", "summary":
		return true
	}
	return false
}
