package repositories

import (
	"testing"

	"billbox/internal/database"
	"billbox/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// TransactionRepositorySuite defines the test suite for TransactionRepository
type TransactionRepositorySuite struct {
	suite.Suite
	db       *database.DB
	repo     TransactionRepositoryInterface
	testUser *models.User
}

// SetupTest runs before each test in the suite
func (s *TransactionRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewTransactionRepository(s.db.DB)
	s.testUser = database.CreateTestUser(s.T(), s.db, "ledger@example.com")
}

// TearDownTest runs after each test in the suite
func (s *TransactionRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestTransactionRepositorySuite runs the test suite
func TestTransactionRepositorySuite(t *testing.T) {
	suite.Run(t, new(TransactionRepositorySuite))
}

func (s *TransactionRepositorySuite) userBalance() decimal.Decimal {
	var user models.User
	s.NoError(s.db.DB.Where("id = ?", s.testUser.ID).First(&user).Error)
	return user.Money
}

func (s *TransactionRepositorySuite) TestCreateWithBalanceUpdate() {
	txn := &models.Transaction{
		UserID:      s.testUser.ID,
		Value:       decimal.NewFromFloat(-25.50),
		Description: "Lunch",
	}

	err := s.repo.CreateWithBalanceUpdate(txn)
	s.NoError(err)
	s.NotEqual(uuid.Nil, txn.ID)
	s.True(s.userBalance().Equal(decimal.NewFromFloat(-25.50)))
}

func (s *TransactionRepositorySuite) TestCreateWithBalanceUpdate_Accumulates() {
	s.NoError(s.repo.CreateWithBalanceUpdate(&models.Transaction{
		UserID: s.testUser.ID,
		Value:  decimal.NewFromFloat(100),
	}))
	s.NoError(s.repo.CreateWithBalanceUpdate(&models.Transaction{
		UserID: s.testUser.ID,
		Value:  decimal.NewFromFloat(-40.25),
	}))

	s.True(s.userBalance().Equal(decimal.NewFromFloat(59.75)))
}

func (s *TransactionRepositorySuite) TestCreateWithBalanceUpdate_UnknownUser() {
	txn := &models.Transaction{
		UserID: uuid.New(),
		Value:  decimal.NewFromFloat(10),
	}

	err := s.repo.CreateWithBalanceUpdate(txn)
	s.ErrorIs(err, ErrUserNotFound)

	// The row insert must have been rolled back with the failed balance update
	var count int64
	s.NoError(s.db.DB.Model(&models.Transaction{}).Count(&count).Error)
	s.Zero(count)
}

func (s *TransactionRepositorySuite) TestGetByUserID() {
	s.NoError(s.repo.CreateWithBalanceUpdate(&models.Transaction{
		UserID:      s.testUser.ID,
		Value:       decimal.NewFromFloat(-10),
		Description: "First",
	}))
	s.NoError(s.repo.CreateWithBalanceUpdate(&models.Transaction{
		UserID:      s.testUser.ID,
		Value:       decimal.NewFromFloat(-20),
		Description: "Second",
	}))

	transactions, err := s.repo.GetByUserID(s.testUser.ID)
	s.NoError(err)
	s.Len(transactions, 2)
}

func (s *TransactionRepositorySuite) TestGetByUserID_AttachesReceiptItems() {
	receipt := &models.Receipt{
		UserID: s.testUser.ID,
		Store:  "Corner Shop",
		Total:  decimal.NewFromFloat(12.00),
		Items: []models.Item{
			{Name: "Milk", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromFloat(1.50), TotalPrice: decimal.NewFromFloat(3.00)},
		},
	}
	s.NoError(s.db.DB.Create(receipt).Error)

	s.NoError(s.repo.CreateWithBalanceUpdate(&models.Transaction{
		UserID:    s.testUser.ID,
		ReceiptID: &receipt.ID,
		Value:     decimal.NewFromFloat(-12.00),
	}))

	transactions, err := s.repo.GetByUserID(s.testUser.ID)
	s.NoError(err)
	s.Require().Len(transactions, 1)
	s.Require().Len(transactions[0].Items, 1)
	s.Equal("Milk", transactions[0].Items[0].Name)
}

func (s *TransactionRepositorySuite) TestDeleteWithBalanceUpdate_ReversesBalance() {
	txn := &models.Transaction{
		UserID: s.testUser.ID,
		Value:  decimal.NewFromFloat(-30),
	}
	s.NoError(s.repo.CreateWithBalanceUpdate(txn))
	s.True(s.userBalance().Equal(decimal.NewFromFloat(-30)))

	s.NoError(s.repo.DeleteWithBalanceUpdate(txn.ID))
	s.True(s.userBalance().IsZero())

	_, err := s.repo.GetByID(txn.ID)
	s.ErrorIs(err, ErrTransactionNotFound)
}

func (s *TransactionRepositorySuite) TestDeleteWithBalanceUpdate_NotFound() {
	err := s.repo.DeleteWithBalanceUpdate(uuid.New())
	s.ErrorIs(err, ErrTransactionNotFound)
}
