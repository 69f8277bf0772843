package handlers

import (
	"net/http"

	"billbox/internal/dto"
	"billbox/internal/errors"
	"billbox/internal/repositories"
	"billbox/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	ledgerService services.LedgerServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(ledgerService services.LedgerServiceInterface) *TransactionHandler {
	return &TransactionHandler{ledgerService: ledgerService}
}

// GetUserTransactions lists a user's transactions
// @Summary List user transactions
// @Description Returns all transactions for the user; receipt-backed rows carry their items
// @Tags Transactions
// @Produce json
// @Param userId path string true "User UUID"
// @Success 200 {array} models.Transaction "Transactions, newest first"
// @Failure 400 {object} errors.ErrorResponse "USER_002 - Invalid user ID"
// @Failure 404 {object} errors.ErrorResponse "USER_001 - User not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /users/transactions/{userId} [get]
func (h *TransactionHandler) GetUserTransactions(c echo.Context) error {
	userID, err := parseUUIDParam(c, "userId")
	if err != nil {
		return SendError(c, errors.UserInvalidID)
	}

	transactions, err := h.ledgerService.GetUserTransactions(userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return SendError(c, errors.UserNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, transactions)
}

// CreateTransaction records a transaction and adjusts the user's balance
// @Summary Create transaction
// @Description Inserts the row and applies the value to the user's balance atomically
// @Tags Transactions
// @Accept json
// @Produce json
// @Param request body dto.CreateTransactionRequest true "Transaction data"
// @Success 201 {object} models.Transaction "Created transaction"
// @Failure 400 {object} errors.ErrorResponse "TRANSACTION_002 - Invalid amount"
// @Failure 404 {object} errors.ErrorResponse "USER_001 - User not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /users/transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req dto.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return SendError(c, errors.UserInvalidID)
	}

	var categoryID *uuid.UUID
	if req.CategoryID != "" {
		parsed, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid category ID"))
		}
		categoryID = &parsed
	}

	value, err := decimal.NewFromString(req.Value)
	if err != nil {
		return SendError(c, errors.TransactionInvalidAmount)
	}

	transaction, err := h.ledgerService.CreateTransaction(userID, categoryID, value, req.Description)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return SendError(c, errors.UserNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, transaction)
}

// DeleteTransaction removes a transaction and reverses its balance effect
// @Summary Delete transaction
// @Description Removes the row and reverses its value on the user's balance atomically
// @Tags Transactions
// @Produce json
// @Param id path string true "Transaction UUID"
// @Success 200 {object} SuccessResponse "Transaction deleted"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid transaction ID"
// @Failure 404 {object} errors.ErrorResponse "TRANSACTION_001 - Transaction not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /users/transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid transaction ID"))
	}

	if err := h.ledgerService.DeleteTransaction(id); err != nil {
		if err == repositories.ErrTransactionNotFound {
			return SendError(c, errors.TransactionNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Transaction deleted"})
}
