package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"billbox/internal/models"
	"billbox/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrEmptyDocument     = errors.New("no document content provided")
	ErrNoTextExtracted   = errors.New("no text could be extracted from the document")
	ErrEmptyGeneration   = errors.New("text generation returned no output")
	ErrUnparsableInvoice = errors.New("generated output is not a valid structured invoice")
)

// invoicePromptTemplate instructs the model to emit bare JSON. The extracted
// receipt text is substituted for the %s verb; the model's echo of the prompt
// is stripped from its output before parsing.
const invoicePromptTemplate = `Convert the following receipt into JSON format. Do not repeat the prompt or input.

Receipt:
%s

Output JSON:
{
  "date": "YYYY-MM-DD",
  "store": "Store Name",
  "total": Total Amount,
  "category": "Category Name",  // Automatically determine the category in German
  "items": [
    {
      "name": "Item Name",
      "quantity": Quantity,
      "unit_price": Unit Price,
      "total_price": Total Price
    }
  ]
}
`

type ingestionService struct {
	extractor   DocumentTextExtractor
	generator   TextGenerator
	receiptRepo repositories.ReceiptRepositoryInterface
	userRepo    repositories.UserRepositoryInterface
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
}

// NewIngestionService creates a new IngestionServiceInterface instance
func NewIngestionService(
	extractor DocumentTextExtractor,
	generator TextGenerator,
	receiptRepo repositories.ReceiptRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) IngestionServiceInterface {
	return &ingestionService{
		extractor:   extractor,
		generator:   generator,
		receiptRepo: receiptRepo,
		userRepo:    userRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// ExtractText runs OCR over the uploaded image bytes
func (s *ingestionService) ExtractText(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", ErrEmptyDocument
	}

	start := time.Now()
	text, err := s.extractor.ExtractDocumentText(ctx, image)
	s.metrics.RecordProcessingTime("ingestion_extract", time.Since(start))
	if err != nil {
		s.metrics.IncrementCounter("extraction_failures", map[string]string{"service": "ocr"})
		return "", fmt.Errorf("document text extraction failed: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrNoTextExtracted
	}

	return text, nil
}

// StructureText converts raw receipt text into a structured invoice. Blank
// input fails before any generation call is made.
func (s *ingestionService) StructureText(ctx context.Context, text string) (*models.StructuredInvoice, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoTextExtracted
	}

	prompt := fmt.Sprintf(invoicePromptTemplate, text)

	start := time.Now()
	raw, err := s.generator.Generate(ctx, prompt)
	s.metrics.RecordProcessingTime("ingestion_structure", time.Since(start))
	if err != nil {
		s.metrics.IncrementCounter("extraction_failures", map[string]string{"service": "generation"})
		return nil, fmt.Errorf("text generation failed: %w", err)
	}
	if raw == "" {
		return nil, ErrEmptyGeneration
	}

	// Instruction models echo the prompt ahead of their completion
	clean := strings.TrimSpace(strings.Replace(raw, prompt, "", 1))

	var invoice models.StructuredInvoice
	if err := json.Unmarshal([]byte(clean), &invoice); err != nil {
		s.logger.Warn("generated output failed to parse as invoice JSON",
			"error", err,
			"output_length", len(clean))
		return nil, ErrUnparsableInvoice
	}

	return &invoice, nil
}

// IngestReceipt runs the full pipeline: OCR, structuring and atomic
// persistence of receipt, items and the balance-affecting ledger entry.
func (s *ingestionService) IngestReceipt(ctx context.Context, userID uuid.UUID, image []byte) (*models.StructuredInvoice, *models.Receipt, error) {
	text, err := s.ExtractText(ctx, image)
	if err != nil {
		s.metrics.IncrementCounter("receipts_ingested", map[string]string{"status": "extract_failed"})
		return nil, nil, err
	}

	invoice, err := s.StructureText(ctx, text)
	if err != nil {
		s.metrics.IncrementCounter("receipts_ingested", map[string]string{"status": "structure_failed"})
		return nil, nil, err
	}

	exists, err := s.userRepo.Exists(userID)
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		return nil, nil, repositories.ErrUserNotFound
	}

	receipt := &models.Receipt{
		UserID:   userID,
		Date:     invoice.Date,
		Store:    invoice.Store,
		Total:    invoice.Total,
		Category: invoice.Category,
		Items:    make([]models.Item, 0, len(invoice.Items)),
	}
	for _, item := range invoice.Items {
		receipt.Items = append(receipt.Items, models.Item{
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		})
	}

	// A scanned receipt is spending: the ledger entry negates the total
	transaction := &models.Transaction{
		UserID:      userID,
		Value:       invoice.Total.Neg(),
		Description: fmt.Sprintf("Receipt from %s", invoice.Store),
	}

	start := time.Now()
	err = s.receiptRepo.CreateWithItemsAndLedger(receipt, transaction)
	s.metrics.RecordProcessingTime("ingestion_persist", time.Since(start))
	if err != nil {
		s.metrics.IncrementCounter("receipts_ingested", map[string]string{"status": "persist_failed"})
		return nil, nil, err
	}

	s.metrics.IncrementCounter("receipts_ingested", map[string]string{"status": "ok"})
	s.logger.Info("receipt ingested",
		"receipt_id", receipt.ID,
		"user_id", userID,
		"store", receipt.Store,
		"total", receipt.Total.String(),
		"items", len(receipt.Items))
	return invoice, receipt, nil
}
