package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "paisa/internal/errors"
	"paisa/internal/models"
	"paisa/internal/pagination"
)

// expenseEntryService handles the expense ledger.
type expenseEntryService struct {
	db        *gorm.DB
	verticals ExpenseVerticalServicer
}

// NewExpenseEntryService creates a new ExpenseEntryServicer.
func NewExpenseEntryService(db *gorm.DB, verticals ExpenseVerticalServicer) ExpenseEntryServicer {
	return &expenseEntryService{db: db, verticals: verticals}
}

// Create validates the payload and verifies the caller owns the referenced
// vertical before inserting.
func (s *expenseEntryService) Create(userID, verticalID, monthToken string, amount decimal.Decimal, note string) (*models.ExpenseEntry, error) {
	if err := validateEntryInput(monthToken, amount); err != nil {
		return nil, err
	}
	if _, err := s.verticals.GetByID(userID, verticalID); err != nil {
		return nil, err
	}

	entry := &models.ExpenseEntry{
		UserID:     userID,
		VerticalID: verticalID,
		Month:      monthToken,
		Amount:     amount,
		Note:       note,
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Preload("Vertical").First(entry, "id = ?", entry.ID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entry, nil
}

// List retrieves the user's expense entries, optionally filtered to one month,
// ordered by month descending then creation time descending.
func (s *expenseEntryService) List(userID string, monthToken *string, page pagination.PageRequest) (*pagination.PageResponse[models.ExpenseEntry], error) {
	page.Defaults()

	base := s.db.Model(&models.ExpenseEntry{}).Where("user_id = ?", userID)
	if monthToken != nil {
		base = base.Where("month = ?", *monthToken)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.ExpenseEntry
	if err := base.Preload("Vertical").
		Order("month DESC, created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetByID retrieves an expense entry scoped to its owner.
func (s *expenseEntryService) GetByID(userID, entryID string) (*models.ExpenseEntry, error) {
	var entry models.ExpenseEntry
	if err := s.db.Preload("Vertical").
		Where("id = ? AND user_id = ?", entryID, userID).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &entry, nil
}

// Update applies the non-nil fields of the update. A changed vertical is
// re-checked for ownership.
func (s *expenseEntryService) Update(userID, entryID string, update EntryUpdate) (*models.ExpenseEntry, error) {
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
		if _, err := s.verticals.GetByID(userID, *update.CategoryID); err != nil {
			return nil, err
		}
		updates["vertical_id"] = *update.CategoryID
	}
	if update.Note != nil {
		updates["note"] = *update.Note
	}

	if err := s.db.Model(entry).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetByID(userID, entryID)
}

// Delete removes an expense entry scoped to its owner.
func (s *expenseEntryService) Delete(userID, entryID string) error {
	entry, err := s.GetByID(userID, entryID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(entry).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
