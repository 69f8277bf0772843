package handlers

import (
	"net/http"

	"billbox/internal/dto"
	"billbox/internal/errors"
	"billbox/internal/repositories"
	"billbox/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BudgetHandler handles budget-related HTTP requests
type BudgetHandler struct {
	budgetService services.BudgetServiceInterface
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(budgetService services.BudgetServiceInterface) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

func (h *BudgetHandler) budgetKey(c echo.Context) (uuid.UUID, uuid.UUID, error) {
	userID, err := parseUUIDParam(c, "userId")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	categoryID, err := parseUUIDParam(c, "categoryId")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	return userID, categoryID, nil
}

// GetBudget returns a budget with its over-budget status
// @Summary Get budget
// @Description Returns the budget for the (user, category) pair including the over_budget flag
// @Tags Budgets
// @Produce json
// @Param userId path string true "User UUID"
// @Param categoryId path string true "Category UUID"
// @Success 200 {object} models.BudgetStatus "Budget with status"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid identifiers"
// @Failure 404 {object} errors.ErrorResponse "BUDGET_001 - Budget not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /budget/{userId}/{categoryId} [get]
func (h *BudgetHandler) GetBudget(c echo.Context) error {
	userID, categoryID, err := h.budgetKey(c)
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid user or category ID"))
	}

	status, err := h.budgetService.GetWithStatus(userID, categoryID)
	if err != nil {
		if err == repositories.ErrBudgetNotFound {
			return SendError(c, errors.BudgetNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, status)
}

// GetConsumption returns only the consumption figures for a budget
// @Summary Get budget consumption
// @Tags Budgets
// @Produce json
// @Param userId path string true "User UUID"
// @Param categoryId path string true "Category UUID"
// @Success 200 {object} models.BudgetConsumption "Consumption against allowance"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid identifiers"
// @Failure 404 {object} errors.ErrorResponse "BUDGET_001 - Budget not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /budget/{userId}/{categoryId}/consumption [get]
func (h *BudgetHandler) GetConsumption(c echo.Context) error {
	userID, categoryID, err := h.budgetKey(c)
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid user or category ID"))
	}

	consumption, err := h.budgetService.GetConsumption(userID, categoryID)
	if err != nil {
		if err == repositories.ErrBudgetNotFound {
			return SendError(c, errors.BudgetNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, consumption)
}

// UpsertBudget creates or replaces the budget for a (user, category) pair
// @Summary Upsert budget
// @Description Creates the budget or replaces the existing one for the pair
// @Tags Budgets
// @Accept json
// @Produce json
// @Param userId path string true "User UUID"
// @Param categoryId path string true "Category UUID"
// @Param request body dto.UpsertBudgetRequest true "Budget data"
// @Success 200 {object} models.Budget "Stored budget"
// @Failure 400 {object} errors.ErrorResponse "TRANSACTION_002 - Invalid amount, BUDGET_002 - Invalid period"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /budget/{userId}/{categoryId} [post]
func (h *BudgetHandler) UpsertBudget(c echo.Context) error {
	userID, categoryID, err := h.budgetKey(c)
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid user or category ID"))
	}

	var req dto.UpsertBudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	budget, err := h.budgetService.Upsert(userID, categoryID, &req)
	if err != nil {
		switch err {
		case services.ErrInvalidAmount:
			return SendError(c, errors.TransactionInvalidAmount)
		case repositories.ErrUserNotFound:
			return SendError(c, errors.UserNotFound)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusOK, budget)
}

// PatchBudget updates only the provided fields of a budget
// @Summary Patch budget
// @Tags Budgets
// @Accept json
// @Produce json
// @Param userId path string true "User UUID"
// @Param categoryId path string true "Category UUID"
// @Param request body dto.PatchBudgetRequest true "Fields to update"
// @Success 200 {object} models.Budget "Updated budget"
// @Failure 400 {object} errors.ErrorResponse "TRANSACTION_002 - Invalid amount"
// @Failure 404 {object} errors.ErrorResponse "BUDGET_001 - Budget not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /budget/{userId}/{categoryId} [patch]
func (h *BudgetHandler) PatchBudget(c echo.Context) error {
	userID, categoryID, err := h.budgetKey(c)
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid user or category ID"))
	}

	var req dto.PatchBudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	budget, err := h.budgetService.Patch(userID, categoryID, &req)
	if err != nil {
		switch err {
		case repositories.ErrBudgetNotFound:
			return SendError(c, errors.BudgetNotFound)
		case services.ErrInvalidAmount:
			return SendError(c, errors.TransactionInvalidAmount)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusOK, budget)
}

// DeleteBudget removes the budget for a (user, category) pair
// @Summary Delete budget
// @Description Deleting an absent budget succeeds; the operation is idempotent
// @Tags Budgets
// @Produce json
// @Param userId path string true "User UUID"
// @Param categoryId path string true "Category UUID"
// @Success 200 {object} SuccessResponse "Budget deleted"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid identifiers"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /budget/{userId}/{categoryId} [delete]
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	userID, categoryID, err := h.budgetKey(c)
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid user or category ID"))
	}

	if err := h.budgetService.Delete(userID, categoryID); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Budget deleted"})
}
