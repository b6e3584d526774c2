package models

import "github.com/shopspring/decimal"

// SavingsEntry is a single savings/investment amount recorded against a
// shared instrument for a month.
type SavingsEntry struct {
	Base
	UserID       string          `gorm:"type:uuid;not null;index" json:"user_id"`
	InstrumentID string          `gorm:"type:uuid;not null" json:"instrument_id"`
	Month        string          `gorm:"size:7;not null;index" json:"month"`
	Amount       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Note         string          `json:"note"`

	Instrument SavingsInstrument `gorm:"foreignKey:InstrumentID" json:"instrument"`
}
