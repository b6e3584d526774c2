package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "paisa/internal/errors"
	"paisa/internal/models"
)

const (
	otpExpiry      = 10 * time.Minute
	otpMaxAttempts = 5
	otpSendWindow  = time.Hour
	otpMaxSends    = 3
	otpCodeModulus = 1000000
)

// otpService issues and verifies registration email codes.
type otpService struct {
	db     *gorm.DB
	mailer Mailer
}

// NewOTPService creates a new OTPServicer.
func NewOTPService(db *gorm.DB, mailer Mailer) OTPServicer {
	return &otpService{db: db, mailer: mailer}
}

// generateCode returns a random six-digit numeric code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpCodeModulus))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Send issues a fresh code for the email, subject to the per-hour send cap.
// Each send creates its own row; only the bcrypt hash of the code is stored.
func (s *otpService) Send(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "email is required")
	}

	var recentSends int64
	windowStart := time.Now().Add(-otpSendWindow)
	if err := s.db.Model(&models.EmailVerification{}).
		Where("email = ? AND created_at > ?", email, windowStart).
		Count(&recentSends).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if recentSends >= otpMaxSends {
		return apperrors.ErrOTPSendLimit
	}

	code, err := generateCode()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	verification := &models.EmailVerification{
		Email:     email,
		CodeHash:  string(hash),
		ExpiresAt: time.Now().Add(otpExpiry),
	}
	if err := s.db.Create(verification).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.mailer.SendOTP(email, code); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Verify checks the code against the most recent pending verification.
// Wrong codes consume an attempt; after otpMaxAttempts wrong attempts or
// expiry the code is dead and a fresh send is required.
func (s *otpService) Verify(email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var verification models.EmailVerification
	err := s.db.Where("email = ? AND verified = ?", email, false).
		Order("created_at DESC").
		First(&verification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrOTPNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if time.Now().After(verification.ExpiresAt) {
		return apperrors.ErrOTPExpired
	}
	if verification.Attempts >= otpMaxAttempts {
		return apperrors.ErrOTPExhausted
	}

	if bcrypt.CompareHashAndPassword([]byte(verification.CodeHash), []byte(code)) != nil {
		verification.Attempts++
		if err := s.db.Model(&verification).Update("attempts", verification.Attempts).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if verification.Attempts >= otpMaxAttempts {
			return apperrors.ErrOTPExhausted
		}
		return apperrors.ErrOTPInvalid
	}

	if err := s.db.Model(&verification).Update("verified", true).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ConsumeVerified checks that the email has a verified code and removes all
// verification rows for it. Registration calls this exactly once.
func (s *otpService) ConsumeVerified(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var count int64
	if err := s.db.Model(&models.EmailVerification{}).
		Where("email = ? AND verified = ?", email, true).
		Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrEmailNotVerified
	}

	if err := s.db.Unscoped().
		Where("email = ?", email).
		Delete(&models.EmailVerification{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
