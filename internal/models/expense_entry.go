package models

import "github.com/shopspring/decimal"

// ExpenseEntry is a single expense amount recorded against a vertical for a month.
type ExpenseEntry struct {
	Base
	UserID     string          `gorm:"type:uuid;not null;index" json:"user_id"`
	VerticalID string          `gorm:"type:uuid;not null" json:"vertical_id"`
	Month      string          `gorm:"size:7;not null;index" json:"month"`
	Amount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Note       string          `json:"note"`

	Vertical ExpenseVertical `gorm:"foreignKey:VerticalID" json:"vertical"`
}
