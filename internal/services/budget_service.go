package services

import (
	"log/slog"

	"billbox/internal/dto"
	"billbox/internal/models"
	"billbox/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type budgetService struct {
	budgetRepo repositories.BudgetRepositoryInterface
	logger     *slog.Logger
}

// NewBudgetService creates a new BudgetServiceInterface instance
func NewBudgetService(
	budgetRepo repositories.BudgetRepositoryInterface,
	logger *slog.Logger,
) BudgetServiceInterface {
	return &budgetService{
		budgetRepo: budgetRepo,
		logger:     logger,
	}
}

// Upsert creates or replaces the budget for a (user, category) pair
func (s *budgetService) Upsert(userID, categoryID uuid.UUID, req *dto.UpsertBudgetRequest) (*models.Budget, error) {
	budgetAmount, err := decimal.NewFromString(req.BudgetAmount)
	if err != nil {
		return nil, ErrInvalidAmount
	}

	realAmount := decimal.Zero
	if req.RealAmount != "" {
		realAmount, err = decimal.NewFromString(req.RealAmount)
		if err != nil {
			return nil, ErrInvalidAmount
		}
	}

	budget := &models.Budget{
		UserID:       userID,
		CategoryID:   categoryID,
		BudgetAmount: budgetAmount,
		RealAmount:   realAmount,
		Description:  req.Description,
	}
	if req.PeriodStart != nil {
		budget.PeriodStart = req.PeriodStart.UTC()
	}
	if req.PeriodEnd != nil {
		budget.PeriodEnd = req.PeriodEnd.UTC()
	}
	if err := budget.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.budgetRepo.Upsert(budget)
	if err != nil {
		return nil, err
	}

	s.logger.Info("budget upserted",
		"user_id", userID,
		"category_id", categoryID,
		"budget_amount", budgetAmount.String())
	return saved, nil
}

// Patch applies only the provided fields to an existing budget
func (s *budgetService) Patch(userID, categoryID uuid.UUID, req *dto.PatchBudgetRequest) (*models.Budget, error) {
	fields := make(map[string]interface{})

	if req.BudgetAmount != nil {
		amount, err := decimal.NewFromString(*req.BudgetAmount)
		if err != nil {
			return nil, ErrInvalidAmount
		}
		fields["budget_amount"] = amount
	}
	if req.RealAmount != nil {
		amount, err := decimal.NewFromString(*req.RealAmount)
		if err != nil {
			return nil, ErrInvalidAmount
		}
		fields["real_amount"] = amount
	}
	if req.PeriodStart != nil {
		fields["period_start"] = req.PeriodStart.UTC()
	}
	if req.PeriodEnd != nil {
		fields["period_end"] = req.PeriodEnd.UTC()
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}

	return s.budgetRepo.UpdateFields(userID, categoryID, fields)
}

// GetWithStatus returns the budget together with its consumption evaluation
func (s *budgetService) GetWithStatus(userID, categoryID uuid.UUID) (*models.BudgetStatus, error) {
	budget, err := s.budgetRepo.GetByUserAndCategory(userID, categoryID)
	if err != nil {
		return nil, err
	}

	consumption := models.BudgetConsumption{
		RealAmount:   budget.RealAmount,
		BudgetAmount: budget.BudgetAmount,
	}
	return &models.BudgetStatus{
		Budget:      budget,
		Consumption: budget.RealAmount,
		OverBudget:  consumption.OverBudget(),
	}, nil
}

// GetConsumption returns just the consumption figures for the pair
func (s *budgetService) GetConsumption(userID, categoryID uuid.UUID) (*models.BudgetConsumption, error) {
	budget, err := s.budgetRepo.GetByUserAndCategory(userID, categoryID)
	if err != nil {
		return nil, err
	}

	return &models.BudgetConsumption{
		RealAmount:   budget.RealAmount,
		BudgetAmount: budget.BudgetAmount,
	}, nil
}

// Delete removes the budget for the pair; deleting a missing budget is a no-op
func (s *budgetService) Delete(userID, categoryID uuid.UUID) error {
	return s.budgetRepo.Delete(userID, categoryID)
}
