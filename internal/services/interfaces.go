package services

import (
	"context"
	"time"

	"billbox/internal/dto"
	"billbox/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserServiceInterface defines user-facing business operations
type UserServiceInterface interface {
	GetAllUsers() ([]models.User, error)
	GetUserByID(id uuid.UUID) (*models.User, error)
	// DeleteUser removes the application row and the hosted auth provider's
	// account for the user.
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// CategoryServiceInterface defines category business operations
type CategoryServiceInterface interface {
	CreateCategory(userID uuid.UUID, name, color string) (*models.Category, error)
	GetUserCategories(userID uuid.UUID) ([]models.Category, error)
	DeleteCategory(id uuid.UUID) error
}

// LedgerServiceInterface owns the transaction/balance invariant: every
// balance-affecting write goes through here so the row and the user's running
// balance always move together.
type LedgerServiceInterface interface {
	CreateTransaction(userID uuid.UUID, categoryID *uuid.UUID, value decimal.Decimal, description string) (*models.Transaction, error)
	GetUserTransactions(userID uuid.UUID) ([]models.Transaction, error)
	DeleteTransaction(id uuid.UUID) error
}

// RecurringServiceInterface defines the recurring transaction engine
type RecurringServiceInterface interface {
	CreateRule(userID uuid.UUID, req *dto.CreateRecurringRuleRequest) (*models.RecurringRule, error)
	GetAllRules() ([]models.RecurringRule, error)
	GetUserRules(userID uuid.UUID) ([]models.RecurringRule, error)
	DeleteRule(id uuid.UUID) error
	// ProcessDueRules materializes every elapsed whole period of every rule
	// into a ledger transaction and advances each rule's watermark.
	ProcessDueRules() (*dto.ProcessRecurringResult, error)
}

// BudgetServiceInterface defines the budget evaluator
type BudgetServiceInterface interface {
	Upsert(userID, categoryID uuid.UUID, req *dto.UpsertBudgetRequest) (*models.Budget, error)
	Patch(userID, categoryID uuid.UUID, req *dto.PatchBudgetRequest) (*models.Budget, error)
	GetWithStatus(userID, categoryID uuid.UUID) (*models.BudgetStatus, error)
	GetConsumption(userID, categoryID uuid.UUID) (*models.BudgetConsumption, error)
	Delete(userID, categoryID uuid.UUID) error
}

// IngestionServiceInterface defines the receipt ingestion pipeline
type IngestionServiceInterface interface {
	// ExtractText runs OCR over the image bytes and returns the recognized
	// lines joined with newlines.
	ExtractText(ctx context.Context, image []byte) (string, error)
	// StructureText turns raw receipt text into a structured invoice via the
	// text generation service.
	StructureText(ctx context.Context, text string) (*models.StructuredInvoice, error)
	// IngestReceipt runs the full pipeline: extract, structure, persist. The
	// receipt, its items and the balance-affecting transaction are written
	// atomically.
	IngestReceipt(ctx context.Context, userID uuid.UUID, image []byte) (*models.StructuredInvoice, *models.Receipt, error)
}

// ReceiptServiceInterface defines post-ingestion receipt and item management
type ReceiptServiceInterface interface {
	GetAllReceipts() ([]models.Receipt, error)
	GetUserReceipts(userID uuid.UUID) ([]models.Receipt, error)
	UpdateReceipt(id uuid.UUID, req *dto.UpdateReceiptRequest) (*models.Receipt, error)
	DeleteReceipt(id uuid.UUID) error
	UpdateItem(id uuid.UUID, req *dto.UpdateItemRequest) (*models.Item, error)
	DeleteItem(id uuid.UUID) error
}

// DocumentTextExtractor is the OCR client used by the ingestion pipeline
type DocumentTextExtractor interface {
	ExtractDocumentText(ctx context.Context, image []byte) (string, error)
}

// TextGenerator is the text generation client used to structure receipt text
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AuthAdminInterface proxies administrative calls to the hosted auth provider
type AuthAdminInterface interface {
	DeleteAuthUser(ctx context.Context, userID uuid.UUID) error
}

// MetricsRecorderInterface abstracts metrics collection for testability
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

// CircuitBreakerInterface protects calls to flaky external services
type CircuitBreakerInterface interface {
	IsOpen() bool
	RecordSuccess()
	RecordFailure()
	GetState() CircuitState
	Reset()
	GetFailureCount() int
}

// SeederServiceInterface populates the database with demo data
type SeederServiceInterface interface {
	Seed(userCount int) (*dto.SeedResult, error)
}
