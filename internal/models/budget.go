package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrInvalidBudgetPeriod = errors.New("budget period end must not precede period start")

// Budget is the single spending allowance for a (user, category) pair.
// RealAmount tracks consumption against BudgetAmount over the validity window.
type Budget struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_user_category" json:"user_id"`
	CategoryID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_user_category" json:"category_id"`
	BudgetAmount decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"budget_amount"`
	RealAmount   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"real_amount"`
	PeriodStart  time.Time       `gorm:"not null" json:"period_start"`
	PeriodEnd    time.Time       `gorm:"not null" json:"period_end"`
	Description  string          `gorm:"type:text" json:"description"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updated_at"`
}

// BudgetConsumption is the read model for the consumption endpoint
type BudgetConsumption struct {
	RealAmount   decimal.Decimal `json:"real_amount"`
	BudgetAmount decimal.Decimal `json:"budget_amount"`
}

// OverBudget reports whether consumption strictly exceeds the allowance.
// Consumption exactly equal to the allowance is not over.
func (bc BudgetConsumption) OverBudget() bool {
	return bc.RealAmount.GreaterThan(bc.BudgetAmount)
}

// BudgetStatus combines the budget row with its consumption evaluation
type BudgetStatus struct {
	Budget      *Budget         `json:"budget"`
	Consumption decimal.Decimal `json:"consumption"`
	OverBudget  bool            `json:"over_budget"`
}

// BeforeCreate hook for Budget
func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = now
	}

	return b.Validate()
}

// Validate checks the validity window ordering
func (b *Budget) Validate() error {
	if !b.PeriodEnd.IsZero() && b.PeriodEnd.Before(b.PeriodStart) {
		return ErrInvalidBudgetPeriod
	}
	return nil
}
