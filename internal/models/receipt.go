package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Receipt is a scanned store receipt persisted by the ingestion pipeline.
// It owns its items; receipt and items are created as a unit but remain
// individually editable and deletable afterwards.
type Receipt struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Date      string          `gorm:"type:varchar(10)" json:"date"`
	Store     string          `gorm:"type:varchar(255)" json:"store"`
	Total     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total"`
	Category  string          `gorm:"type:varchar(100)" json:"category"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`

	Items []Item `gorm:"foreignKey:ReceiptID;constraint:OnDelete:CASCADE" json:"items"`
}

// Item is a single line on a receipt
type Item struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"receipt_id"`
	Name       string          `gorm:"type:varchar(255);not null" json:"name"`
	Quantity   decimal.Decimal `gorm:"type:decimal(15,3);not null;default:1" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(15,2)" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(15,2)" json:"total_price"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	now := time.Now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = now
	}
	return nil
}

// BeforeCreate hook for Item
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	now := time.Now()
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
	if i.UpdatedAt.IsZero() {
		i.UpdatedAt = now
	}
	return nil
}
