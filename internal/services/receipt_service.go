package services

import (
	"log/slog"

	"billbox/internal/dto"
	"billbox/internal/models"
	"billbox/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type receiptService struct {
	receiptRepo repositories.ReceiptRepositoryInterface
	logger      *slog.Logger
}

// NewReceiptService creates a new ReceiptServiceInterface instance
func NewReceiptService(
	receiptRepo repositories.ReceiptRepositoryInterface,
	logger *slog.Logger,
) ReceiptServiceInterface {
	return &receiptService{
		receiptRepo: receiptRepo,
		logger:      logger,
	}
}

// GetAllReceipts returns every receipt with items attached
func (s *receiptService) GetAllReceipts() ([]models.Receipt, error) {
	return s.receiptRepo.GetAllWithItems()
}

// GetUserReceipts returns the user's receipts with items attached
func (s *receiptService) GetUserReceipts(userID uuid.UUID) ([]models.Receipt, error) {
	return s.receiptRepo.GetByUserID(userID)
}

// UpdateReceipt applies the provided fields to a receipt
func (s *receiptService) UpdateReceipt(id uuid.UUID, req *dto.UpdateReceiptRequest) (*models.Receipt, error) {
	fields := make(map[string]interface{})
	if req.Date != nil {
		fields["date"] = *req.Date
	}
	if req.Store != nil {
		fields["store"] = *req.Store
	}
	if req.Total != nil {
		total, err := decimal.NewFromString(*req.Total)
		if err != nil {
			return nil, ErrInvalidAmount
		}
		fields["total"] = total
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}

	return s.receiptRepo.UpdateReceipt(id, fields)
}

// DeleteReceipt removes a receipt and its items
func (s *receiptService) DeleteReceipt(id uuid.UUID) error {
	return s.receiptRepo.Delete(id)
}

// UpdateItem applies the provided fields to a receipt line item
func (s *receiptService) UpdateItem(id uuid.UUID, req *dto.UpdateItemRequest) (*models.Item, error) {
	fields := make(map[string]interface{})
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Quantity != nil {
		quantity, err := decimal.NewFromString(*req.Quantity)
		if err != nil {
			return nil, ErrInvalidAmount
		}
		fields["quantity"] = quantity
	}
	if req.UnitPrice != nil {
		price, err := decimal.NewFromString(*req.UnitPrice)
		if err != nil {
			return nil, ErrInvalidAmount
		}
		fields["unit_price"] = price
	}
	if req.TotalPrice != nil {
		price, err := decimal.NewFromString(*req.TotalPrice)
		if err != nil {
			return nil, ErrInvalidAmount
		}
		fields["total_price"] = price
	}

	return s.receiptRepo.UpdateItem(id, fields)
}

// DeleteItem removes a single receipt line item
func (s *receiptService) DeleteItem(id uuid.UUID) error {
	return s.receiptRepo.DeleteItem(id)
}
