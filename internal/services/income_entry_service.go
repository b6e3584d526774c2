package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "paisa/internal/errors"
	"paisa/internal/models"
	"paisa/internal/pagination"
)

// incomeEntryService handles the income ledger.
type incomeEntryService struct {
	db      *gorm.DB
	sources IncomeSourceServicer
}

// NewIncomeEntryService creates a new IncomeEntryServicer.
func NewIncomeEntryService(db *gorm.DB, sources IncomeSourceServicer) IncomeEntryServicer {
	return &incomeEntryService{db: db, sources: sources}
}

// Create validates the payload and verifies the caller owns the referenced
// source before inserting. Any failure leaves no side effects.
func (s *incomeEntryService) Create(userID, sourceID, monthToken string, amount decimal.Decimal, note string) (*models.IncomeEntry, error) {
	if err := validateEntryInput(monthToken, amount); err != nil {
		return nil, err
	}
	if _, err := s.sources.GetByID(userID, sourceID); err != nil {
		return nil, err
	}

	entry := &models.IncomeEntry{
		UserID:   userID,
		SourceID: sourceID,
		Month:    monthToken,
		Amount:   amount,
		Note:     note,
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Preload("Source").First(entry, "id = ?", entry.ID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entry, nil
}

// List retrieves the user's income entries, optionally filtered to one month,
// ordered by month descending then creation time descending.
func (s *incomeEntryService) List(userID string, monthToken *string, page pagination.PageRequest) (*pagination.PageResponse[models.IncomeEntry], error) {
	page.Defaults()

	base := s.db.Model(&models.IncomeEntry{}).Where("user_id = ?", userID)
	if monthToken != nil {
		base = base.Where("month = ?", *monthToken)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.IncomeEntry
	if err := base.Preload("Source").
		Order("month DESC, created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetByID retrieves an income entry scoped to its owner. Another user's
// entry is reported as not found.
func (s *incomeEntryService) GetByID(userID, entryID string) (*models.IncomeEntry, error) {
	var entry models.IncomeEntry
	if err := s.db.Preload("Source").
		Where("id = ? AND user_id = ?", entryID, userID).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &entry, nil
}

// Update applies the non-nil fields of the update. A changed source is
// re-checked for ownership.
func (s *incomeEntryService) Update(userID, entryID string, update EntryUpdate) (*models.IncomeEntry, error) {
	entry, err := s.GetByID(userID, entryID)
	if err != nil {
		return nil, err
	}

	monthToken := entry.Month
	if update.Month != nil {
		monthToken = *update.Month
	}
	amount := entry.Amount
	if update.Amount != nil {
		amount = *update.Amount
	}
	if err := validateEntryInput(monthToken, amount); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"month":  monthToken,
		"amount": amount,
	}
	if update.CategoryID != nil {
		if _, err := s.sources.GetByID(userID, *update.CategoryID); err != nil {
			return nil, err
		}
		updates["source_id"] = *update.CategoryID
	}
	if update.Note != nil {
		updates["note"] = *update.Note
	}

	if err := s.db.Model(entry).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetByID(userID, entryID)
}

// Delete removes an income entry scoped to its owner.
func (s *incomeEntryService) Delete(userID, entryID string) error {
	entry, err := s.GetByID(userID, entryID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(entry).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
