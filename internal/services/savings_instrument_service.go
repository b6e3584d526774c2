package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "paisa/internal/errors"
	"paisa/internal/models"
)

// savingsInstrumentService handles the globally shared instrument table.
// There is no per-user isolation here; the only write contention control is
// the (name, bucket) uniqueness check.
type savingsInstrumentService struct {
	db *gorm.DB
}

// NewSavingsInstrumentService creates a new SavingsInstrumentServicer.
func NewSavingsInstrumentService(db *gorm.DB) SavingsInstrumentServicer {
	return &savingsInstrumentService{db: db}
}

// Create adds a shared instrument. Names are unique per (name, bucket).
func (s *savingsInstrumentService) Create(name string, bucket models.InstrumentBucket) (*models.SavingsInstrument, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "instrument name is required")
	}

	var count int64
	if err := s.db.Model(&models.SavingsInstrument{}).
		Where("name = ? AND bucket = ?", name, bucket).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	instrument := &models.SavingsInstrument{Name: name, Bucket: bucket}
	if err := s.db.Create(instrument).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return instrument, nil
}

// List retrieves instruments, optionally filtered by bucket, ordered by
// bucket then name.
func (s *savingsInstrumentService) List(bucket *models.InstrumentBucket) ([]models.SavingsInstrument, error) {
	query := s.db.Order("bucket ASC, name ASC")
	if bucket != nil {
		query = query.Where("bucket = ?", *bucket)
	}

	var instruments []models.SavingsInstrument
	if err := query.Find(&instruments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return instruments, nil
}

// GetByID retrieves a shared instrument by ID.
func (s *savingsInstrumentService) GetByID(instrumentID string) (*models.SavingsInstrument, error) {
	var instrument models.SavingsInstrument
	if err := s.db.Where("id = ?", instrumentID).First(&instrument).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &instrument, nil
}

// Update renames an instrument within its bucket.
func (s *savingsInstrumentService) Update(instrumentID, name string) (*models.SavingsInstrument, error) {
	instrument, err := s.GetByID(instrumentID)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "instrument name is required")
	}

	var count int64
	if err := s.db.Model(&models.SavingsInstrument{}).
		Where("name = ? AND bucket = ? AND id <> ?", name, instrument.Bucket, instrumentID).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	if err := s.db.Model(instrument).Update("name", name).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return instrument, nil
}

// Delete removes an instrument unless any user's entries reference it.
func (s *savingsInstrumentService) Delete(instrumentID string) error {
	instrument, err := s.GetByID(instrumentID)
	if err != nil {
		return err
	}

	var refs int64
	if err := s.db.Model(&models.SavingsEntry{}).
		Where("instrument_id = ?", instrumentID).
		Count(&refs).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if refs > 0 {
		return apperrors.WithMessage(apperrors.ErrCategoryInUse,
			fmt.Sprintf("Instrument is referenced by %d savings entries", refs))
	}

	if err := s.db.Delete(instrument).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
