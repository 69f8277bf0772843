package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Recurring rule frequencies. Period lengths are fixed day counts, not
// calendar-aware: a month is approximated as 30 days.
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

var ErrInvalidFrequency = errors.New("frequency must be one of: daily, weekly, monthly")

// PeriodDays maps a frequency to its fixed period length in days.
// Returns 0 and false for unrecognized frequencies.
func PeriodDays(frequency string) (int, bool) {
	switch frequency {
	case FrequencyDaily:
		return 1, true
	case FrequencyWeekly:
		return 7, true
	case FrequencyMonthly:
		return 30, true
	default:
		return 0, false
	}
}

// RecurringRule is a template that periodically materializes a transaction.
// LastRun is the watermark through which periods have been materialized; it
// only ever moves forward, in whole-period increments.
type RecurringRule struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"recurring_id"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Frequency string          `gorm:"type:varchar(20);not null" json:"frequency"`
	LastRun   time.Time       `gorm:"not null" json:"last_run"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for RecurringRule
func (r *RecurringRule) BeforeCreate(tx *gorm.DB) error {
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
	if r.LastRun.IsZero() {
		r.LastRun = now
	}

	return r.Validate()
}

// Validate rejects rules created with an unknown frequency. Rules already in
// the store with a frequency the engine no longer recognizes are skipped by
// the batch, not failed.
func (r *RecurringRule) Validate() error {
	if _, ok := PeriodDays(r.Frequency); !ok {
		return ErrInvalidFrequency
	}
	return nil
}
