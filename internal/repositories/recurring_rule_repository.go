package repositories

import (
	"errors"
	"fmt"
	"time"

	"billbox/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrRecurringRuleNotFound = errors.New("recurring rule not found")
	ErrWatermarkConflict     = errors.New("recurring rule watermark changed concurrently")
)

// recurringRuleRepository implements RecurringRuleRepositoryInterface
type recurringRuleRepository struct {
	db *gorm.DB
}

// NewRecurringRuleRepository creates a new recurring rule repository
func NewRecurringRuleRepository(db *gorm.DB) RecurringRuleRepositoryInterface {
	return &recurringRuleRepository{
		db: db,
	}
}

// Create creates a new recurring rule
func (r *recurringRuleRepository) Create(rule *models.RecurringRule) error {
	if err := r.db.Create(rule).Error; err != nil {
		return fmt.Errorf("failed to create recurring rule: %w", err)
	}
	return nil
}

// GetAll retrieves every recurring rule, oldest first
func (r *recurringRuleRepository) GetAll() ([]models.RecurringRule, error) {
	var rules []models.RecurringRule
	if err := r.db.Order("created_at ASC").Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to get recurring rules: %w", err)
	}
	return rules, nil
}

// GetByUserID retrieves all recurring rules for a user
func (r *recurringRuleRepository) GetByUserID(userID uuid.UUID) ([]models.RecurringRule, error) {
	var rules []models.RecurringRule
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to get recurring rules for user: %w", err)
	}
	return rules, nil
}

// Delete removes a recurring rule by ID
func (r *recurringRuleRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.RecurringRule{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete recurring rule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecurringRuleNotFound
	}
	return nil
}

// AdvanceLastRun updates the rule's watermark only if it still holds the value
// observed when the batch read it. A zero-row update means another run already
// advanced it.
func (r *recurringRuleRepository) AdvanceLastRun(id uuid.UUID, from, to time.Time) error {
	result := r.db.Model(&models.RecurringRule{}).
		Where("id = ? AND last_run = ?", id, from).
		Updates(map[string]interface{}{
			"last_run":   to,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to advance recurring rule watermark: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrWatermarkConflict
	}
	return nil
}
