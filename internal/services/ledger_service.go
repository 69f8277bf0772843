package services

import (
	"log/slog"

	"billbox/internal/models"
	"billbox/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ledgerService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewLedgerService creates a new LedgerServiceInterface instance
func NewLedgerService(
	transactionRepo repositories.TransactionRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) LedgerServiceInterface {
	return &ledgerService{
		transactionRepo: transactionRepo,
		metrics:         metrics,
		logger:          logger,
	}
}

// CreateTransaction records a signed ledger entry. The row insert and the
// user's balance adjustment are applied atomically by the repository.
func (s *ledgerService) CreateTransaction(userID uuid.UUID, categoryID *uuid.UUID, value decimal.Decimal, description string) (*models.Transaction, error) {
	transaction := &models.Transaction{
		UserID:      userID,
		CategoryID:  categoryID,
		Value:       value,
		Description: description,
	}

	if err := s.transactionRepo.CreateWithBalanceUpdate(transaction); err != nil {
		s.metrics.IncrementCounter("ledger_writes", map[string]string{"origin": "create", "status": "error"})
		return nil, err
	}

	s.metrics.IncrementCounter("ledger_writes", map[string]string{"origin": "create", "status": "ok"})
	s.logger.Info("transaction recorded",
		"transaction_id", transaction.ID,
		"user_id", userID,
		"value", value.String())
	return transaction, nil
}

// GetUserTransactions returns the user's ledger, receipt items attached
func (s *ledgerService) GetUserTransactions(userID uuid.UUID) ([]models.Transaction, error) {
	return s.transactionRepo.GetByUserID(userID)
}

// DeleteTransaction removes a ledger entry and reverses its balance effect
func (s *ledgerService) DeleteTransaction(id uuid.UUID) error {
	if err := s.transactionRepo.DeleteWithBalanceUpdate(id); err != nil {
		s.metrics.IncrementCounter("ledger_writes", map[string]string{"origin": "delete", "status": "error"})
		return err
	}

	s.metrics.IncrementCounter("ledger_writes", map[string]string{"origin": "delete", "status": "ok"})
	s.logger.Info("transaction deleted", "transaction_id", id)
	return nil
}
