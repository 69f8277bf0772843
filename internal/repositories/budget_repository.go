package repositories

import (
	"errors"
	"fmt"

	"billbox/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrBudgetNotFound = errors.New("budget not found")
)

// budgetRepository implements BudgetRepositoryInterface
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository
func NewBudgetRepository(db *gorm.DB) BudgetRepositoryInterface {
	return &budgetRepository{
		db: db,
	}
}

// GetByUserAndCategory retrieves the budget for a (user, category) pair
func (r *budgetRepository) GetByUserAndCategory(userID, categoryID uuid.UUID) (*models.Budget, error) {
	var budget models.Budget
	if err := r.db.Where("user_id = ? AND category_id = ?", userID, categoryID).
		First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return &budget, nil
}

// Upsert inserts the budget, or replaces the existing row for the same
// (user, category) pair. The unique index on the pair makes the conflict
// target unambiguous.
func (r *budgetRepository) Upsert(budget *models.Budget) (*models.Budget, error) {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "category_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"budget_amount", "real_amount", "period_start", "period_end", "description", "updated_at",
		}),
	}).Create(budget).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert budget: %w", err)
	}

	return r.GetByUserAndCategory(budget.UserID, budget.CategoryID)
}

// UpdateFields applies a partial update to the budget for a (user, category)
// pair and returns the refreshed row.
func (r *budgetRepository) UpdateFields(userID, categoryID uuid.UUID, fields map[string]interface{}) (*models.Budget, error) {
	result := r.db.Model(&models.Budget{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Updates(fields)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update budget: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrBudgetNotFound
	}

	return r.GetByUserAndCategory(userID, categoryID)
}

// Delete removes the budget for a (user, category) pair. Deleting a budget
// that does not exist is not an error.
func (r *budgetRepository) Delete(userID, categoryID uuid.UUID) error {
	if err := r.db.Where("user_id = ? AND category_id = ?", userID, categoryID).
		Delete(&models.Budget{}).Error; err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return nil
}
