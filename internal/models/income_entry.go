package models

import "github.com/shopspring/decimal"

// IncomeEntry is a single income amount recorded against a source for a month.
type IncomeEntry struct {
	Base
	UserID   string          `gorm:"type:uuid;not null;index" json:"user_id"`
	SourceID string          `gorm:"type:uuid;not null" json:"source_id"`
	Month    string          `gorm:"size:7;not null;index" json:"month"`
	Amount   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Note     string          `json:"note"`

	Source IncomeSource `gorm:"foreignKey:SourceID" json:"source"`
}
