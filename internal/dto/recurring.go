package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateRecurringRuleRequest represents the request payload for creating a
// recurring transaction rule
type CreateRecurringRuleRequest struct {
	Amount    string     `json:"amount" validate:"required,money_amount"`
	Frequency string     `json:"frequency" validate:"required,frequency"`
	LastRun   *time.Time `json:"last_run"`
}

// ProcessedRule reports one rule materialized by a processing batch
type ProcessedRule struct {
	RecurringID uuid.UUID `json:"recurring_id"`
	Periods     int64     `json:"periods"`
	NewLastRun  time.Time `json:"new_last_run"`
}

// SkippedRule reports one rule a processing batch did not materialize
type SkippedRule struct {
	RecurringID uuid.UUID `json:"recurring_id"`
	Reason      string    `json:"reason"`
}

// ProcessRecurringResult summarizes a recurring processing batch
type ProcessRecurringResult struct {
	Processed []ProcessedRule `json:"processed"`
	Skipped   []SkippedRule   `json:"skipped"`
}
