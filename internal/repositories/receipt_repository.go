package repositories

import (
	"errors"
	"fmt"

	"billbox/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrReceiptNotFound = errors.New("receipt not found")
	ErrItemNotFound    = errors.New("receipt item not found")
)

// receiptRepository implements ReceiptRepositoryInterface
type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) ReceiptRepositoryInterface {
	return &receiptRepository{
		db: db,
	}
}

// CreateWithItemsAndLedger writes the receipt, its line items and the ledger
// transaction in one database transaction. If any insert fails nothing is
// persisted, so a receipt can never exist without its items or its balance
// effect.
func (r *receiptRepository) CreateWithItemsAndLedger(receipt *models.Receipt, transaction *models.Transaction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(receipt).Error; err != nil {
			return fmt.Errorf("failed to create receipt: %w", err)
		}

		if transaction == nil {
			return nil
		}

		transaction.ReceiptID = &receipt.ID
		if err := tx.Create(transaction).Error; err != nil {
			return fmt.Errorf("failed to create ledger transaction: %w", err)
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

// GetByID retrieves a receipt with its items
func (r *receiptRepository) GetByID(id uuid.UUID) (*models.Receipt, error) {
	var receipt models.Receipt
	if err := r.db.Preload("Items").Where("id = ?", id).First(&receipt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReceiptNotFound
		}
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}
	return &receipt, nil
}

// GetAllWithItems retrieves every receipt with its items, newest first
func (r *receiptRepository) GetAllWithItems() ([]models.Receipt, error) {
	var receipts []models.Receipt
	if err := r.db.Preload("Items").
		Order("created_at DESC").
		Find(&receipts).Error; err != nil {
		return nil, fmt.Errorf("failed to get receipts: %w", err)
	}
	return receipts, nil
}

// GetByUserID retrieves all receipts for a user, newest first
func (r *receiptRepository) GetByUserID(userID uuid.UUID) ([]models.Receipt, error) {
	var receipts []models.Receipt
	if err := r.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&receipts).Error; err != nil {
		return nil, fmt.Errorf("failed to get receipts for user: %w", err)
	}
	return receipts, nil
}

// UpdateReceipt applies a partial update to a receipt and returns the
// refreshed row
func (r *receiptRepository) UpdateReceipt(id uuid.UUID, fields map[string]interface{}) (*models.Receipt, error) {
	result := r.db.Model(&models.Receipt{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update receipt: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrReceiptNotFound
	}
	return r.GetByID(id)
}

// Delete removes a receipt and its items
func (r *receiptRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("receipt_id = ?", id).Delete(&models.Item{}).Error; err != nil {
			return fmt.Errorf("failed to delete receipt items: %w", err)
		}

		result := tx.Delete(&models.Receipt{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete receipt: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrReceiptNotFound
		}
		return nil
	})
}

// GetItemsByReceiptID retrieves all line items for a receipt
func (r *receiptRepository) GetItemsByReceiptID(receiptID uuid.UUID) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.Where("receipt_id = ?", receiptID).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get receipt items: %w", err)
	}
	return items, nil
}

// UpdateItem applies a partial update to a line item and returns the
// refreshed row
func (r *receiptRepository) UpdateItem(id uuid.UUID, fields map[string]interface{}) (*models.Item, error) {
	result := r.db.Model(&models.Item{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update receipt item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrItemNotFound
	}

	var item models.Item
	if err := r.db.Where("id = ?", id).First(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to get receipt item: %w", err)
	}
	return &item, nil
}

// DeleteItem removes a single line item
func (r *receiptRepository) DeleteItem(id uuid.UUID) error {
	result := r.db.Delete(&models.Item{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete receipt item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}
