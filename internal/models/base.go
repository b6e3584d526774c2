package models

import (
	"time"

	"paisa/internal/uuid"

	"gorm.io/gorm"
)

// Base is embedded by every persisted record: users, categories and
// ledger entries all share the UUID key, timestamps and soft delete.
type Base struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// BeforeCreate assigns a UUIDv7 so ledger rows sort by insertion time
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}
