package models

import "time"

// EmailVerification stores a one-time registration code for an email address.
// A new row is created for every send; only the bcrypt hash of the code is
// kept. Rows are deleted once registration consumes the verification.
type EmailVerification struct {
	Base
	Email     string    `gorm:"not null;index" json:"email"`
	CodeHash  string    `gorm:"not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Verified  bool      `gorm:"default:false" json:"verified"`
	Attempts  int       `gorm:"default:0" json:"attempts"`
}
