package repositories

import (
	"errors"
	"fmt"

	"billbox/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// CreateWithBalanceUpdate inserts the transaction row and applies its value to
// the owning user's balance in the same database transaction. The balance
// change uses a relative SQL expression so concurrent writers cannot lose
// updates.
func (r *transactionRepository) CreateWithBalanceUpdate(transaction *models.Transaction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		result := tx.Model(&models.User{}).
			Where("id = ?", transaction.UserID).
			Update("money", gorm.Expr("money + ?", transaction.Value))
		if result.Error != nil {
			return fmt.Errorf("failed to update user balance: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		return nil
	})
}

// GetByID retrieves a transaction by ID
func (r *transactionRepository) GetByID(id uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.Where("id = ?", id).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

// GetByUserID retrieves all transactions for a user, newest first. Receipt
// items are attached to receipt-backed rows so a single call returns the full
// ledger view.
func (r *transactionRepository) GetByUserID(userID uuid.UUID) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions for user: %w", err)
	}

	receiptIDs := make([]uuid.UUID, 0, len(transactions))
	for _, txn := range transactions {
		if txn.ReceiptID != nil {
			receiptIDs = append(receiptIDs, *txn.ReceiptID)
		}
	}
	if len(receiptIDs) == 0 {
		return transactions, nil
	}

	var items []models.Item
	if err := r.db.Where("receipt_id IN ?", receiptIDs).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get receipt items: %w", err)
	}

	itemsByReceipt := make(map[uuid.UUID][]models.Item, len(receiptIDs))
	for _, item := range items {
		itemsByReceipt[item.ReceiptID] = append(itemsByReceipt[item.ReceiptID], item)
	}
	for i := range transactions {
		if transactions[i].ReceiptID != nil {
			transactions[i].Items = itemsByReceipt[*transactions[i].ReceiptID]
		}
	}

	return transactions, nil
}

// DeleteWithBalanceUpdate removes the transaction row and reverses its effect
// on the owning user's balance in the same database transaction.
func (r *transactionRepository) DeleteWithBalanceUpdate(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var transaction models.Transaction
		if err := tx.Where("id = ?", id).First(&transaction).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			return fmt.Errorf("failed to get transaction: %w", err)
		}

		if err := tx.Delete(&models.Transaction{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete transaction: %w", err)
		}

		result := tx.Model(&models.User{}).
			Where("id = ?", transaction.UserID).
			Update("money", gorm.Expr("money - ?", transaction.Value))
		if result.Error != nil {
			return fmt.Errorf("failed to reverse user balance: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		return nil
	})
}
