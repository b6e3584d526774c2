package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "paisa/internal/errors"
	"paisa/internal/models"
)

// defaultIncomeSources are seeded for every new account.
var defaultIncomeSources = []string{"Salary", "Interest", "Other"}

// incomeSourceService handles income source category business logic.
type incomeSourceService struct {
	db *gorm.DB
}

// NewIncomeSourceService creates a new IncomeSourceServicer.
func NewIncomeSourceService(db *gorm.DB) IncomeSourceServicer {
	return &incomeSourceService{db: db}
}

// Create adds a new income source for the user. Names are unique per user.
func (s *incomeSourceService) Create(userID, name string) (*models.IncomeSource, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "source name is required")
	}

	var count int64
	if err := s.db.Model(&models.IncomeSource{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	source := &models.IncomeSource{UserID: userID, Name: name}
	if err := s.db.Create(source).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return source, nil
}

// List retrieves all income sources for a user ordered by name.
func (s *incomeSourceService) List(userID string) ([]models.IncomeSource, error) {
	var sources []models.IncomeSource
	if err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&sources).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return sources, nil
}

// GetByID retrieves an income source scoped to its owner. Another user's
// source is reported as not found.
func (s *incomeSourceService) GetByID(userID, sourceID string) (*models.IncomeSource, error) {
	var source models.IncomeSource
	if err := s.db.Where("id = ? AND user_id = ?", sourceID, userID).First(&source).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &source, nil
}

// Update renames an income source.
func (s *incomeSourceService) Update(userID, sourceID, name string) (*models.IncomeSource, error) {
	source, err := s.GetByID(userID, sourceID)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "source name is required")
	}

	var count int64
	if err := s.db.Model(&models.IncomeSource{}).
		Where("user_id = ? AND name = ? AND id <> ?", userID, name, sourceID).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	if err := s.db.Model(source).Update("name", name).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return source, nil
}

// Delete removes an income source. Deletion is blocked while entries
// reference it; the error carries the reference count.
func (s *incomeSourceService) Delete(userID, sourceID string) error {
	source, err := s.GetByID(userID, sourceID)
	if err != nil {
		return err
	}

	var refs int64
	if err := s.db.Model(&models.IncomeEntry{}).
		Where("source_id = ?", sourceID).
		Count(&refs).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if refs > 0 {
		return apperrors.WithMessage(apperrors.ErrCategoryInUse,
			fmt.Sprintf("Source is referenced by %d income entries", refs))
	}

	if err := s.db.Delete(source).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// SeedDefaults creates the default income sources for a new user, skipping
// names that already exist.
func (s *incomeSourceService) SeedDefaults(userID string) error {
	for _, name := range defaultIncomeSources {
		var count int64
		if err := s.db.Model(&models.IncomeSource{}).
			Where("user_id = ? AND name = ?", userID, name).
			Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			continue
		}
		source := &models.IncomeSource{UserID: userID, Name: name, IsDefault: true}
		if err := s.db.Create(source).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}
