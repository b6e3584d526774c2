package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "paisa/internal/errors"
	"paisa/internal/models"
)

// defaultExpenseVerticals are seeded for every new account.
var defaultExpenseVerticals = []string{"Rent", "Groceries", "Utilities", "Transport", "Other"}

// expenseVerticalService handles expense vertical category business logic.
type expenseVerticalService struct {
	db *gorm.DB
}

// NewExpenseVerticalService creates a new ExpenseVerticalServicer.
func NewExpenseVerticalService(db *gorm.DB) ExpenseVerticalServicer {
	return &expenseVerticalService{db: db}
}

// Create adds a new expense vertical for the user. Names are unique per user.
func (s *expenseVerticalService) Create(userID, name string) (*models.ExpenseVertical, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "vertical name is required")
	}

	var count int64
	if err := s.db.Model(&models.ExpenseVertical{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	vertical := &models.ExpenseVertical{UserID: userID, Name: name}
	if err := s.db.Create(vertical).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return vertical, nil
}

// List retrieves all expense verticals for a user ordered by name.
func (s *expenseVerticalService) List(userID string) ([]models.ExpenseVertical, error) {
	var verticals []models.ExpenseVertical
	if err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&verticals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return verticals, nil
}

// GetByID retrieves an expense vertical scoped to its owner.
func (s *expenseVerticalService) GetByID(userID, verticalID string) (*models.ExpenseVertical, error) {
	var vertical models.ExpenseVertical
	if err := s.db.Where("id = ? AND user_id = ?", verticalID, userID).First(&vertical).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &vertical, nil
}

// Update renames an expense vertical.
func (s *expenseVerticalService) Update(userID, verticalID, name string) (*models.ExpenseVertical, error) {
	vertical, err := s.GetByID(userID, verticalID)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "vertical name is required")
	}

	var count int64
	if err := s.db.Model(&models.ExpenseVertical{}).
		Where("user_id = ? AND name = ? AND id <> ?", userID, name, verticalID).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	if err := s.db.Model(vertical).Update("name", name).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return vertical, nil
}

// Delete removes an expense vertical unless entries still reference it.
func (s *expenseVerticalService) Delete(userID, verticalID string) error {
	vertical, err := s.GetByID(userID, verticalID)
	if err != nil {
		return err
	}

	var refs int64
	if err := s.db.Model(&models.ExpenseEntry{}).
		Where("vertical_id = ?", verticalID).
		Count(&refs).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if refs > 0 {
		return apperrors.WithMessage(apperrors.ErrCategoryInUse,
			fmt.Sprintf("Vertical is referenced by %d expense entries", refs))
	}

	if err := s.db.Delete(vertical).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// SeedDefaults creates the default expense verticals for a new user, skipping
// names that already exist.
func (s *expenseVerticalService) SeedDefaults(userID string) error {
	for _, name := range defaultExpenseVerticals {
		var count int64
		if err := s.db.Model(&models.ExpenseVertical{}).
			Where("user_id = ? AND name = ?", userID, name).
			Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			continue
		}
		vertical := &models.ExpenseVertical{UserID: userID, Name: name, IsDefault: true}
		if err := s.db.Create(vertical).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}
