package services

import (
	"github.com/shopspring/decimal"

	apperrors "paisa/internal/errors"
	"paisa/internal/month"
)

// maxEntryAmount bounds a single ledger entry. Anything larger is almost
// certainly an input mistake at household scale.
var maxEntryAmount = decimal.NewFromInt(1_000_000_000)

// validateEntryInput checks the month token and amount shared by all three
// ledgers. Amounts must be strictly positive and bounded; they are stored
// exactly as given, with no rounding.
func validateEntryInput(monthToken string, amount decimal.Decimal) error {
	if !month.IsValid(monthToken) {
		return apperrors.ErrInvalidMonth
	}
	if !amount.IsPositive() {
		return apperrors.ErrInvalidAmount
	}
	if amount.GreaterThan(maxEntryAmount) {
		return apperrors.WithMessage(apperrors.ErrInvalidAmount, "Amount exceeds the maximum allowed value")
	}
	return nil
}
