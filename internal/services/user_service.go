package services

import (
	"errors"
	"strings"
	"time"

	zxcvbn "github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"paisa/internal/config"
	apperrors "paisa/internal/errors"
	"paisa/internal/models"
)

const minPasswordScore = 2

// userService handles user and authentication business logic.
type userService struct {
	db        *gorm.DB
	otp       OTPServicer
	audit     LoginAuditServicer
	sources   IncomeSourceServicer
	verticals ExpenseVerticalServicer
}

// NewUserService creates a new UserServicer. The category services are used
// to seed defaults for new accounts.
func NewUserService(db *gorm.DB, otp OTPServicer, audit LoginAuditServicer, sources IncomeSourceServicer, verticals ExpenseVerticalServicer) UserServicer {
	return &userService{db: db, otp: otp, audit: audit, sources: sources, verticals: verticals}
}

// checkPasswordStrength rejects passwords below the minimum zxcvbn score.
func checkPasswordStrength(password string, userInputs ...string) error {
	result := zxcvbn.PasswordStrength(password, userInputs)
	if result.Score < minPasswordScore {
		return apperrors.ErrWeakPassword
	}
	return nil
}

// Register creates a new user. The email must have completed OTP verification,
// which is consumed here. Default income sources and expense verticals are
// seeded for the new account.
func (s *userService) Register(email, password, displayName, securityQuestion, securityAnswer string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email and password are required")
	}
	if (securityQuestion == "") != (securityAnswer == "") {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "security question and answer must be provided together")
	}
	if err := checkPasswordStrength(password, email, displayName); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	if err := s.otp.ConsumeVerified(email); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Email:       email,
		Password:    string(hashedPassword),
		DisplayName: displayName,
	}
	if securityQuestion != "" {
		answerHash, err := bcrypt.GenerateFromPassword([]byte(normalizeAnswer(securityAnswer)), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		user.SecurityQuestion = securityQuestion
		user.SecurityAnswerHash = string(answerHash)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Seeding is idempotent, so a retry after a partial failure fills in
	// whatever is missing.
	if err := s.sources.SeedDefaults(user.ID); err != nil {
		return nil, err
	}
	if err := s.verticals.SeedDefaults(user.ID); err != nil {
		return nil, err
	}

	return user, nil
}

// AttemptLogin authenticates a user and drives the lockout state machine.
// Every attempt, successful or not, is appended to the login audit log.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *userService) AttemptLogin(email, password, ipAddress string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	now := time.Now()

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.audit.Record(email, nil, false, models.LoginReasonInvalidEmail, ipAddress)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if user.IsLocked(now) {
		s.audit.Record(email, &user.ID, false, models.LoginReasonAccountLocked, ipAddress)
		return nil, apperrors.ErrAccountLocked
	}

	// An elapsed lockout starts a fresh failure window.
	if user.LockedUntil != nil {
		user.FailedLoginAttempts = 0
		user.LockedUntil = nil
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		cfg := config.Get()
		user.FailedLoginAttempts++
		updates := map[string]interface{}{
			"failed_login_attempts": user.FailedLoginAttempts,
			"locked_until":          user.LockedUntil,
		}
		if user.FailedLoginAttempts >= cfg.MaxFailedLogins {
			lockedUntil := now.Add(cfg.LockoutDur)
			updates["locked_until"] = &lockedUntil
		}
		// Not transactional with the read above: concurrent failures can
		// under-count. Accepted for a single-user-per-account system.
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		s.audit.Record(email, &user.ID, false, models.LoginReasonInvalidPassword, ipAddress)
		return nil, apperrors.ErrInvalidCredentials
	}

	updates := map[string]interface{}{
		"failed_login_attempts": 0,
		"locked_until":          nil,
		"last_login_at":         now,
		"last_login_ip":         ipAddress,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.audit.Record(email, &user.ID, true, models.LoginReasonSuccess, ipAddress)

	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	user.LastLoginAt = &now
	user.LastLoginIP = ipAddress
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetSecurityQuestion returns the stored security question for an email.
// Accounts without a question get the same error as unknown emails.
func (s *userService) GetSecurityQuestion(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrNoSecurityQuestion
		}
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if user.SecurityQuestion == "" {
		return "", apperrors.ErrNoSecurityQuestion
	}
	return user.SecurityQuestion, nil
}

// ResetPasswordWithAnswer sets a new password after verifying the security
// answer. A successful reset also clears any lockout state.
func (s *userService) ResetPasswordWithAnswer(email, answer, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNoSecurityQuestion
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if user.SecurityAnswerHash == "" {
		return apperrors.ErrNoSecurityQuestion
	}

	if bcrypt.CompareHashAndPassword([]byte(user.SecurityAnswerHash), []byte(normalizeAnswer(answer))) != nil {
		return apperrors.ErrWrongSecurityAnswer
	}

	if err := checkPasswordStrength(newPassword, email, user.DisplayName); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := map[string]interface{}{
		"password":              string(hashedPassword),
		"failed_login_attempts": 0,
		"locked_until":          nil,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// DeleteAccount verifies the password and hard-deletes the user with all
// owned entries and categories. Shared savings instruments and the login
// audit trail are untouched.
func (s *userService) DeleteAccount(userID, password string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return apperrors.ErrInvalidCredentials
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.IncomeEntry{},
			&models.ExpenseEntry{},
			&models.SavingsEntry{},
			&models.IncomeSource{},
			&models.ExpenseVertical{},
		} {
			if err := tx.Unscoped().Where("user_id = ?", userID).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Unscoped().Delete(&models.User{}, "id = ?", userID).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// normalizeAnswer canonicalizes a security answer before hashing/comparison.
func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}
