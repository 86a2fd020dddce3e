package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockItem caches the current fine weight held per item name. It must equal
// the signed sum of all StockEntry rows for that item at all times; every
// entry insert patches the cache in the same transaction.
type StockItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ItemName      string    `gorm:"uniqueIndex;not null" json:"item_name"`
	CurrentWeight float64   `gorm:"default:0" json:"current_weight"`
	Description   string    `gorm:"type:text" json:"description"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (s *StockItem) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// StockEntry is one row of the append-only stock movement ledger.
type StockEntry struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ItemName        string    `gorm:"not null;index" json:"item_name"`
	Amount          float64   `gorm:"not null" json:"amount"`
	TransactionType string    `gorm:"type:varchar(10);not null" json:"transaction_type"` // add/deduct
	Description     string    `gorm:"type:text" json:"description"`
	CreatedAt       time.Time `json:"created_at"`
}

func (s *StockEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

const (
	StockAdd    = "add"
	StockDeduct = "deduct"
)
