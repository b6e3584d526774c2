package services

import (
	"gorm.io/gorm"

	"paisa/internal/logger"
	"paisa/internal/models"
)

// loginAuditService appends authentication attempts to the audit log.
type loginAuditService struct {
	db *gorm.DB
}

// NewLoginAuditService creates a new LoginAuditServicer.
func NewLoginAuditService(db *gorm.DB) LoginAuditServicer {
	return &loginAuditService{db: db}
}

// Record appends a login attempt. Errors are logged but never propagate
// to avoid disrupting the authentication flow itself.
func (s *loginAuditService) Record(email string, userID *string, success bool, reason, ipAddress string) {
	attempt := &models.LoginAttempt{
		Email:     email,
		UserID:    userID,
		Success:   success,
		Reason:    reason,
		IPAddress: ipAddress,
	}

	if err := s.db.Create(attempt).Error; err != nil {
		logger.Get().Errorw("failed to record login attempt",
			"error", err,
			"email", email,
			"reason", reason,
		)
	}
}
