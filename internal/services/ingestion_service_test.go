package services

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"billbox/internal/database"
	"billbox/internal/models"
	"billbox/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type fakeExtractor struct {
	text   string
	err    error
	called bool
}

func (f *fakeExtractor) ExtractDocumentText(ctx context.Context, image []byte) (string, error) {
	f.called = true
	return f.text, f.err
}

type fakeGenerator struct {
	output     string
	err        error
	called     bool
	lastPrompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.called = true
	f.lastPrompt = prompt
	return f.output, f.err
}

const sampleInvoiceJSON = `{
  "date": "2026-08-01",
  "store": "Corner Shop",
  "total": 12.50,
  "category": "Lebensmittel",
  "items": [
    {"name": "Milk", "quantity": 2, "unit_price": 1.50, "total_price": 3.00},
    {"name": "Bread", "quantity": 1, "unit_price": 9.50, "total_price": 9.50}
  ]
}`

// IngestionServiceSuite exercises the pipeline against an in-memory store so
// the all-or-nothing persistence behavior is observable.
type IngestionServiceSuite struct {
	suite.Suite
	db        *database.DB
	extractor *fakeExtractor
	generator *fakeGenerator
	service   IngestionServiceInterface
	testUser  *models.User
}

// SetupTest runs before each test in the suite
func (s *IngestionServiceSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.extractor = &fakeExtractor{}
	s.generator = &fakeGenerator{}
	s.service = NewIngestionService(
		s.extractor,
		s.generator,
		repositories.NewReceiptRepository(s.db.DB),
		repositories.NewUserRepository(s.db.DB),
		NewNoOpMetrics(),
		slog.Default(),
	)
	s.testUser = database.CreateTestUser(s.T(), s.db, "scanner@example.com")
}

// TearDownTest runs after each test in the suite
func (s *IngestionServiceSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestIngestionServiceSuite runs the test suite
func TestIngestionServiceSuite(t *testing.T) {
	suite.Run(t, new(IngestionServiceSuite))
}

func (s *IngestionServiceSuite) countRows() (receipts, items, transactions int64) {
	s.NoError(s.db.DB.Model(&models.Receipt{}).Count(&receipts).Error)
	s.NoError(s.db.DB.Model(&models.Item{}).Count(&items).Error)
	s.NoError(s.db.DB.Model(&models.Transaction{}).Count(&transactions).Error)
	return
}

func (s *IngestionServiceSuite) TestExtractText_EmptyUpload() {
	_, err := s.service.ExtractText(context.Background(), nil)
	s.ErrorIs(err, ErrEmptyDocument)
	s.False(s.extractor.called)
}

func (s *IngestionServiceSuite) TestExtractText_NoTextRecognized() {
	s.extractor.text = "   \n  "

	_, err := s.service.ExtractText(context.Background(), []byte{0x01})
	s.ErrorIs(err, ErrNoTextExtracted)
}

func (s *IngestionServiceSuite) TestStructureText_BlankInputFailsBeforeGeneration() {
	_, err := s.service.StructureText(context.Background(), "  \n ")
	s.ErrorIs(err, ErrNoTextExtracted)
	s.False(s.generator.called)
}

func (s *IngestionServiceSuite) TestStructureText_StripsPromptEcho() {
	text := "CORNER SHOP\nMILK 2x1.50\nBREAD 9.50\nTOTAL 12.50"
	prompt := fmt.Sprintf(invoicePromptTemplate, text)
	s.generator.output = prompt + sampleInvoiceJSON

	invoice, err := s.service.StructureText(context.Background(), text)
	s.NoError(err)
	s.Equal("Corner Shop", invoice.Store)
	s.True(invoice.Total.Equal(decimal.NewFromFloat(12.50)))
	s.Len(invoice.Items, 2)
	s.Contains(s.generator.lastPrompt, text)
}

func (s *IngestionServiceSuite) TestStructureText_UnparsableOutput() {
	s.generator.output = "Sorry, I cannot convert this receipt."

	_, err := s.service.StructureText(context.Background(), "some receipt text")
	s.ErrorIs(err, ErrUnparsableInvoice)
}

func (s *IngestionServiceSuite) TestIngestReceipt() {
	s.extractor.text = "CORNER SHOP\nTOTAL 12.50"
	s.generator.output = sampleInvoiceJSON

	invoice, receipt, err := s.service.IngestReceipt(context.Background(), s.testUser.ID, []byte{0x01})
	s.Require().NoError(err)
	s.Equal("Corner Shop", invoice.Store)
	s.NotEqual(uuid.Nil, receipt.ID)

	receipts, items, transactions := s.countRows()
	s.EqualValues(1, receipts)
	s.EqualValues(2, items)
	s.EqualValues(1, transactions)

	// The ledger entry negates the receipt total and points back at it
	var txn models.Transaction
	s.NoError(s.db.DB.First(&txn).Error)
	s.True(txn.Value.Equal(decimal.NewFromFloat(-12.50)))
	s.Require().NotNil(txn.ReceiptID)
	s.Equal(receipt.ID, *txn.ReceiptID)

	var user models.User
	s.NoError(s.db.DB.Where("id = ?", s.testUser.ID).First(&user).Error)
	s.True(user.Money.Equal(decimal.NewFromFloat(-12.50)))
}

func (s *IngestionServiceSuite) TestIngestReceipt_UnparsableOutputPersistsNothing() {
	s.extractor.text = "CORNER SHOP\nTOTAL 12.50"
	s.generator.output = "not json at all"

	_, _, err := s.service.IngestReceipt(context.Background(), s.testUser.ID, []byte{0x01})
	s.ErrorIs(err, ErrUnparsableInvoice)

	receipts, items, transactions := s.countRows()
	s.Zero(receipts)
	s.Zero(items)
	s.Zero(transactions)
}

func (s *IngestionServiceSuite) TestIngestReceipt_UnknownUser() {
	s.extractor.text = "CORNER SHOP\nTOTAL 12.50"
	s.generator.output = sampleInvoiceJSON

	_, _, err := s.service.IngestReceipt(context.Background(), uuid.New(), []byte{0x01})
	s.ErrorIs(err, repositories.ErrUserNotFound)

	receipts, items, transactions := s.countRows()
	s.Zero(receipts)
	s.Zero(items)
	s.Zero(transactions)
}

func (s *IngestionServiceSuite) TestIngestReceipt_ExtractionFailureStopsPipeline() {
	s.extractor.err = fmt.Errorf("service unavailable")

	_, _, err := s.service.IngestReceipt(context.Background(), s.testUser.ID, []byte{0x01})
	s.Error(err)
	s.False(s.generator.called)
}
