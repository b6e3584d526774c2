package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "paisa/internal/errors"
	"paisa/internal/models"
	"paisa/internal/pagination"
)

// savingsEntryService handles the savings ledger. Instruments are shared
// across users, so the category check is existence only, not ownership.
type savingsEntryService struct {
	db          *gorm.DB
	instruments SavingsInstrumentServicer
}

// NewSavingsEntryService creates a new SavingsEntryServicer.
func NewSavingsEntryService(db *gorm.DB, instruments SavingsInstrumentServicer) SavingsEntryServicer {
	return &savingsEntryService{db: db, instruments: instruments}
}

// Create validates the payload and verifies the referenced instrument exists
// before inserting.
func (s *savingsEntryService) Create(userID, instrumentID, monthToken string, amount decimal.Decimal, note string) (*models.SavingsEntry, error) {
	if err := validateEntryInput(monthToken, amount); err != nil {
		return nil, err
	}
	if _, err := s.instruments.GetByID(instrumentID); err != nil {
		return nil, err
	}

	entry := &models.SavingsEntry{
		UserID:       userID,
		InstrumentID: instrumentID,
		Month:        monthToken,
		Amount:       amount,
		Note:         note,
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Preload("Instrument").First(entry, "id = ?", entry.ID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entry, nil
}

// List retrieves the user's savings entries, optionally filtered to one month,
// ordered by month descending then creation time descending.
func (s *savingsEntryService) List(userID string, monthToken *string, page pagination.PageRequest) (*pagination.PageResponse[models.SavingsEntry], error) {
	page.Defaults()

	base := s.db.Model(&models.SavingsEntry{}).Where("user_id = ?", userID)
	if monthToken != nil {
		base = base.Where("month = ?", *monthToken)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.SavingsEntry
	if err := base.Preload("Instrument").
		Order("month DESC, created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetByID retrieves a savings entry scoped to its owner.
func (s *savingsEntryService) GetByID(userID, entryID string) (*models.SavingsEntry, error) {
	var entry models.SavingsEntry
	if err := s.db.Preload("Instrument").
		Where("id = ? AND user_id = ?", entryID, userID).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &entry, nil
}

// Update applies the non-nil fields of the update. A changed instrument is
// re-checked for existence.
func (s *savingsEntryService) Update(userID, entryID string, update EntryUpdate) (*models.SavingsEntry, error) {
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
		if _, err := s.instruments.GetByID(*update.CategoryID); err != nil {
			return nil, err
		}
		updates["instrument_id"] = *update.CategoryID
	}
	if update.Note != nil {
		updates["note"] = *update.Note
	}

	if err := s.db.Model(entry).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetByID(userID, entryID)
}

// Delete removes a savings entry scoped to its owner.
func (s *savingsEntryService) Delete(userID, entryID string) error {
	entry, err := s.GetByID(userID, entryID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(entry).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
