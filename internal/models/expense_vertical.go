package models

// ExpenseVertical is a user-owned category for expense entries.
// Names are unique per user.
type ExpenseVertical struct {
	Base
	UserID    string `gorm:"type:uuid;not null;uniqueIndex:uq_expense_verticals_user_name" json:"user_id"`
	Name      string `gorm:"not null;uniqueIndex:uq_expense_verticals_user_name,where:deleted_at IS NULL" json:"name"`
	IsDefault bool   `gorm:"default:false" json:"is_default"`

	Entries []ExpenseEntry `gorm:"foreignKey:VerticalID" json:"entries,omitempty"`
}
