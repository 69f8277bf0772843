package handlers

import (
	"net/http"

	"billbox/internal/dto"
	"billbox/internal/errors"
	"billbox/internal/repositories"
	"billbox/internal/services"

	"github.com/labstack/echo/v4"
)

// RecurringHandler handles recurring transaction rule HTTP requests
type RecurringHandler struct {
	recurringService services.RecurringServiceInterface
}

// NewRecurringHandler creates a new recurring rule handler
func NewRecurringHandler(recurringService services.RecurringServiceInterface) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService}
}

// GetAllRules lists every recurring rule
// @Summary List all recurring rules
// @Tags Recurring
// @Produce json
// @Success 200 {array} models.RecurringRule "Recurring rules"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /recTrans/all [get]
func (h *RecurringHandler) GetAllRules(c echo.Context) error {
	rules, err := h.recurringService.GetAllRules()
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, rules)
}

// GetUserRules lists a user's recurring rules
// @Summary List user recurring rules
// @Tags Recurring
// @Produce json
// @Param userId path string true "User UUID"
// @Success 200 {array} models.RecurringRule "Recurring rules"
// @Failure 400 {object} errors.ErrorResponse "USER_002 - Invalid user ID"
// @Failure 404 {object} errors.ErrorResponse "USER_001 - User not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /recTrans/user/{userId} [get]
func (h *RecurringHandler) GetUserRules(c echo.Context) error {
	userID, err := parseUUIDParam(c, "userId")
	if err != nil {
		return SendError(c, errors.UserInvalidID)
	}

	rules, err := h.recurringService.GetUserRules(userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return SendError(c, errors.UserNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, rules)
}

// CreateRule creates a recurring rule for a user
// @Summary Create recurring rule
// @Description Creates a rule; last_run defaults to now when omitted
// @Tags Recurring
// @Accept json
// @Produce json
// @Param userId path string true "User UUID"
// @Param request body dto.CreateRecurringRuleRequest true "Rule data"
// @Success 201 {object} models.RecurringRule "Created rule"
// @Failure 400 {object} errors.ErrorResponse "RECURRING_002 - Invalid frequency, TRANSACTION_002 - Invalid amount"
// @Failure 404 {object} errors.ErrorResponse "USER_001 - User not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /recTrans/{userId} [post]
func (h *RecurringHandler) CreateRule(c echo.Context) error {
	userID, err := parseUUIDParam(c, "userId")
	if err != nil {
		return SendError(c, errors.UserInvalidID)
	}

	var req dto.CreateRecurringRuleRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	rule, err := h.recurringService.CreateRule(userID, &req)
	if err != nil {
		switch err {
		case repositories.ErrUserNotFound:
			return SendError(c, errors.UserNotFound)
		case services.ErrInvalidAmount:
			return SendError(c, errors.TransactionInvalidAmount)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusCreated, rule)
}

// DeleteRule removes a recurring rule
// @Summary Delete recurring rule
// @Tags Recurring
// @Produce json
// @Param id path string true "Rule UUID"
// @Success 200 {object} SuccessResponse "Rule deleted"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid rule ID"
// @Failure 404 {object} errors.ErrorResponse "RECURRING_001 - Rule not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /recTrans/{id} [delete]
func (h *RecurringHandler) DeleteRule(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid rule ID"))
	}

	if err := h.recurringService.DeleteRule(id); err != nil {
		if err == repositories.ErrRecurringRuleNotFound {
			return SendError(c, errors.RecurringRuleNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Rule deleted"})
}

// ProcessRules runs the recurring transaction engine over all rules
// @Summary Process due recurring rules
// @Description Bills every elapsed whole period of every rule and advances watermarks. Problem rules are reported as skipped; the batch never aborts.
// @Tags Recurring
// @Produce json
// @Success 200 {object} dto.ProcessRecurringResult "Processed and skipped rules"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /recTrans/process [post]
func (h *RecurringHandler) ProcessRules(c echo.Context) error {
	result, err := h.recurringService.ProcessDueRules()
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}
