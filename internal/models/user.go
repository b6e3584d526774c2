package models

import "time"

// User represents the user model in the database
type User struct {
	Base
	Email               string     `gorm:"uniqueIndex;not null" json:"email"`
	Password            string     `gorm:"not null" json:"-"`
	DisplayName         string     `json:"display_name"`
	SecurityQuestion    string     `json:"-"`
	SecurityAnswerHash  string     `json:"-"`
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time `json:"-"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty"`
	LastLoginIP         string     `json:"-"`

	IncomeSources    []IncomeSource    `gorm:"foreignKey:UserID" json:"income_sources,omitempty"`
	ExpenseVerticals []ExpenseVertical `gorm:"foreignKey:UserID" json:"expense_verticals,omitempty"`
	IncomeEntries    []IncomeEntry     `gorm:"foreignKey:UserID" json:"income_entries,omitempty"`
	ExpenseEntries   []ExpenseEntry    `gorm:"foreignKey:UserID" json:"expense_entries,omitempty"`
	SavingsEntries   []SavingsEntry    `gorm:"foreignKey:UserID" json:"savings_entries,omitempty"`
}

// IsLocked reports whether the account is currently locked out.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}
