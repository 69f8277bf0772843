package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a single signed ledger entry against a user's balance.
// Rows are written by direct user action, by recurring-rule materialization,
// or by receipt ingestion; they are never updated in place, only deleted.
type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"tid"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index" json:"category_id,omitempty"`
	ReceiptID   *uuid.UUID      `gorm:"type:uuid;index" json:"rid,omitempty"`
	Value       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"value"`
	Description string          `gorm:"type:text" json:"description"`
	CreatedAt   time.Time       `gorm:"not null;index" json:"created_at"`

	// Populated for receipt-backed transactions when listing
	Items []Item `gorm:"-" json:"items"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	return nil
}
