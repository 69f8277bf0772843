package repositories

import (
	"time"

	"billbox/internal/models"

	"github.com/google/uuid"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetAll() ([]models.User, error)
	Exists(id uuid.UUID) (bool, error)
	Delete(id uuid.UUID) error
}

// CategoryRepositoryInterface defines the contract for category repository operations
type CategoryRepositoryInterface interface {
	Create(category *models.Category) error
	GetByID(id uuid.UUID) (*models.Category, error)
	GetByUserID(userID uuid.UUID) ([]models.Category, error)
	ExistsByUserAndName(userID uuid.UUID, name string) (bool, error)
	Delete(id uuid.UUID) error
}

// TransactionRepositoryInterface defines the contract for transaction repository
// operations. Creation and deletion adjust the owning user's running balance
// inside the same database transaction as the row write.
type TransactionRepositoryInterface interface {
	CreateWithBalanceUpdate(transaction *models.Transaction) error
	GetByID(id uuid.UUID) (*models.Transaction, error)
	GetByUserID(userID uuid.UUID) ([]models.Transaction, error)
	DeleteWithBalanceUpdate(id uuid.UUID) error
}

// RecurringRuleRepositoryInterface defines the contract for recurring rule
// repository operations
type RecurringRuleRepositoryInterface interface {
	Create(rule *models.RecurringRule) error
	GetAll() ([]models.RecurringRule, error)
	GetByUserID(userID uuid.UUID) ([]models.RecurringRule, error)
	Delete(id uuid.UUID) error

	// AdvanceLastRun moves a rule's watermark from the previously observed
	// value to the new one. The update is conditional on the stored watermark
	// still matching `from`, so overlapping batch runs cannot both advance it.
	AdvanceLastRun(id uuid.UUID, from, to time.Time) error
}

// BudgetRepositoryInterface defines the contract for budget repository operations
type BudgetRepositoryInterface interface {
	GetByUserAndCategory(userID, categoryID uuid.UUID) (*models.Budget, error)
	Upsert(budget *models.Budget) (*models.Budget, error)
	UpdateFields(userID, categoryID uuid.UUID, fields map[string]interface{}) (*models.Budget, error)
	Delete(userID, categoryID uuid.UUID) error
}

// ReceiptRepositoryInterface defines the contract for receipt and item
// repository operations
type ReceiptRepositoryInterface interface {
	// CreateWithItemsAndLedger persists a receipt, its items and the
	// balance-affecting ledger transaction as a single atomic write.
	CreateWithItemsAndLedger(receipt *models.Receipt, transaction *models.Transaction) error
	GetByID(id uuid.UUID) (*models.Receipt, error)
	GetAllWithItems() ([]models.Receipt, error)
	GetByUserID(userID uuid.UUID) ([]models.Receipt, error)
	UpdateReceipt(id uuid.UUID, fields map[string]interface{}) (*models.Receipt, error)
	Delete(id uuid.UUID) error

	GetItemsByReceiptID(receiptID uuid.UUID) ([]models.Item, error)
	UpdateItem(id uuid.UUID, fields map[string]interface{}) (*models.Item, error)
	DeleteItem(id uuid.UUID) error
}
