package dto

import "time"

// UpsertBudgetRequest represents the request payload for creating or
// replacing the budget of a (user, category) pair
type UpsertBudgetRequest struct {
	BudgetAmount string     `json:"budget_amount" validate:"required,money_amount"`
	RealAmount   string     `json:"real_amount" validate:"omitempty,money_amount"`
	PeriodStart  *time.Time `json:"period_start"`
	PeriodEnd    *time.Time `json:"period_end"`
	Description  string     `json:"description" validate:"max=255"`
}

// PatchBudgetRequest represents a partial budget update. Only the provided
// fields are applied.
type PatchBudgetRequest struct {
	BudgetAmount *string    `json:"budget_amount"`
	RealAmount   *string    `json:"real_amount"`
	PeriodStart  *time.Time `json:"period_start"`
	PeriodEnd    *time.Time `json:"period_end"`
	Description  *string    `json:"description"`
}
