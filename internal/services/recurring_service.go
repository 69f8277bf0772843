package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"billbox/internal/dto"
	"billbox/internal/models"
	"billbox/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount = errors.New("invalid decimal amount")
)

const hoursPerDay = 24

type recurringService struct {
	recurringRepo repositories.RecurringRuleRepositoryInterface
	ledger        LedgerServiceInterface
	metrics       MetricsRecorderInterface
	logger        *slog.Logger
	now           func() time.Time
}

// NewRecurringService creates a new RecurringServiceInterface instance
func NewRecurringService(
	recurringRepo repositories.RecurringRuleRepositoryInterface,
	ledger LedgerServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) RecurringServiceInterface {
	return &recurringService{
		recurringRepo: recurringRepo,
		ledger:        ledger,
		metrics:       metrics,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// CreateRule creates a recurring transaction rule for the user
func (s *recurringService) CreateRule(userID uuid.UUID, req *dto.CreateRecurringRuleRequest) (*models.RecurringRule, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, ErrInvalidAmount
	}

	rule := &models.RecurringRule{
		UserID:    userID,
		Amount:    amount,
		Frequency: req.Frequency,
	}
	if req.LastRun != nil {
		rule.LastRun = req.LastRun.UTC()
	}

	if err := s.recurringRepo.Create(rule); err != nil {
		return nil, err
	}

	s.logger.Info("recurring rule created",
		"recurring_id", rule.ID,
		"user_id", userID,
		"frequency", rule.Frequency)
	return rule, nil
}

// GetAllRules returns every recurring rule
func (s *recurringService) GetAllRules() ([]models.RecurringRule, error) {
	return s.recurringRepo.GetAll()
}

// GetUserRules returns the user's recurring rules
func (s *recurringService) GetUserRules(userID uuid.UUID) ([]models.RecurringRule, error) {
	return s.recurringRepo.GetByUserID(userID)
}

// DeleteRule removes a recurring rule
func (s *recurringService) DeleteRule(id uuid.UUID) error {
	return s.recurringRepo.Delete(id)
}

// ProcessDueRules materializes elapsed periods for every rule. Period lengths
// are fixed day counts (daily=1, weekly=7, monthly=30); only whole elapsed
// periods are billed, as a single transaction of amount*periods. The watermark
// advances by exactly periods*periodDays days, never to "now", so partial
// periods carry over to the next run. A failing rule is logged and skipped
// without aborting the batch.
func (s *recurringService) ProcessDueRules() (*dto.ProcessRecurringResult, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordProcessingTime("recurring_batch", time.Since(start))
	}()

	rules, err := s.recurringRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load recurring rules: %w", err)
	}

	result := &dto.ProcessRecurringResult{
		Processed: []dto.ProcessedRule{},
		Skipped:   []dto.SkippedRule{},
	}
	now := s.now()

	for _, rule := range rules {
		periodDays, ok := models.PeriodDays(rule.Frequency)
		if !ok {
			s.logger.Warn("skipping rule with unknown frequency",
				"recurring_id", rule.ID,
				"frequency", rule.Frequency)
			s.metrics.IncrementCounter("recurring_rules_processed", map[string]string{"outcome": "unknown_frequency"})
			result.Skipped = append(result.Skipped, dto.SkippedRule{
				RecurringID: rule.ID,
				Reason:      "unknown frequency: " + rule.Frequency,
			})
			continue
		}

		elapsedDays := now.Sub(rule.LastRun).Hours() / hoursPerDay
		periods := int64(elapsedDays / float64(periodDays))
		if periods < 1 {
			s.metrics.IncrementCounter("recurring_rules_processed", map[string]string{"outcome": "not_due"})
			result.Skipped = append(result.Skipped, dto.SkippedRule{
				RecurringID: rule.ID,
				Reason:      "no whole period elapsed",
			})
			continue
		}

		value := rule.Amount.Mul(decimal.NewFromInt(periods))
		description := fmt.Sprintf("Recurring transaction processed for %d period(s)", periods)

		// Insert before advancing the watermark: a crash between the two
		// leaves the rule due again (at-least-once), never silently unbilled.
		if _, err := s.ledger.CreateTransaction(rule.UserID, nil, value, description); err != nil {
			s.logger.Error("failed to materialize recurring rule",
				"recurring_id", rule.ID,
				"user_id", rule.UserID,
				"error", err)
			s.metrics.IncrementCounter("recurring_rules_processed", map[string]string{"outcome": "error"})
			result.Skipped = append(result.Skipped, dto.SkippedRule{
				RecurringID: rule.ID,
				Reason:      "transaction insert failed",
			})
			continue
		}

		newLastRun := rule.LastRun.AddDate(0, 0, int(periods)*periodDays)
		if err := s.recurringRepo.AdvanceLastRun(rule.ID, rule.LastRun, newLastRun); err != nil {
			// The transaction is already in; a conflict means an overlapping
			// batch advanced the watermark and this rule may be double-billed.
			s.logger.Error("failed to advance recurring rule watermark",
				"recurring_id", rule.ID,
				"last_run", rule.LastRun,
				"error", err)
			s.metrics.IncrementCounter("recurring_rules_processed", map[string]string{"outcome": "watermark_error"})
			result.Skipped = append(result.Skipped, dto.SkippedRule{
				RecurringID: rule.ID,
				Reason:      "watermark advance failed",
			})
			continue
		}

		s.metrics.IncrementCounter("recurring_rules_processed", map[string]string{"outcome": "processed"})
		result.Processed = append(result.Processed, dto.ProcessedRule{
			RecurringID: rule.ID,
			Periods:     periods,
			NewLastRun:  newLastRun,
		})
	}

	s.logger.Info("recurring batch completed",
		"processed", len(result.Processed),
		"skipped", len(result.Skipped))
	return result, nil
}
