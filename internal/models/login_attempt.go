package models

// Login attempt reason codes recorded in the audit trail.
const (
	LoginReasonSuccess         = "success"
	LoginReasonInvalidEmail    = "invalid_email"
	LoginReasonInvalidPassword = "invalid_password"
	LoginReasonAccountLocked   = "account_locked"
)

// LoginAttempt is an append-only audit record of an authentication attempt.
// Rows are never updated or deleted by the application.
type LoginAttempt struct {
	Base
	Email     string  `gorm:"not null;index" json:"email"`
	UserID    *string `gorm:"type:uuid" json:"user_id,omitempty"`
	Success   bool    `gorm:"not null" json:"success"`
	Reason    string  `gorm:"not null" json:"reason"`
	IPAddress string  `json:"ip_address"`
}
