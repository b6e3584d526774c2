package models

// IncomeSource is a user-owned category for income entries.
// Names are unique per user.
type IncomeSource struct {
	Base
	UserID    string `gorm:"type:uuid;not null;uniqueIndex:uq_income_sources_user_name" json:"user_id"`
	Name      string `gorm:"not null;uniqueIndex:uq_income_sources_user_name,where:deleted_at IS NULL" json:"name"`
	IsDefault bool   `gorm:"default:false" json:"is_default"`

	Entries []IncomeEntry `gorm:"foreignKey:SourceID" json:"entries,omitempty"`
}
