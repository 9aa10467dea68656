package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is embedded by every top-level entity.
// Rows are hard deleted so that child rows cascade with their parent.
type Base struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// Child is embedded by rows owned by a parent collection. Position keeps the
// submitted order of the collection.
type Child struct {
	ID       string `json:"id" gorm:"type:char(36);primaryKey"`
	Position int    `json:"-"  gorm:"not null;default:0"`
}

func (c *Child) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// SingletonSlot is the only value the slot column of a singleton table may hold.
const SingletonSlot = "main"
