package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"billbox/internal/models"
	"billbox/internal/repositories"
	"billbox/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionHandlerTestSuite struct {
	suite.Suite
	echo       *echo.Echo
	ctrl       *gomock.Controller
	mockLedger *service_mocks.MockLedgerServiceInterface
	handler    *TransactionHandler
	userID     uuid.UUID
}

func TestTransactionHandlerSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}

func (s *TransactionHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.ctrl = gomock.NewController(s.T())
	s.mockLedger = service_mocks.NewMockLedgerServiceInterface(s.ctrl)
	s.handler = NewTransactionHandler(s.mockLedger)
	s.userID = uuid.New()
}

func (s *TransactionHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *TransactionHandlerTestSuite) postJSON(body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/users/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return s.echo.NewContext(req, rec), rec
}

func (s *TransactionHandlerTestSuite) TestCreateTransaction() {
	s.mockLedger.EXPECT().
		CreateTransaction(s.userID, gomock.Nil(), gomock.Any(), "Lunch").
		DoAndReturn(func(userID uuid.UUID, categoryID *uuid.UUID, value decimal.Decimal, description string) (*models.Transaction, error) {
			s.True(value.Equal(decimal.NewFromFloat(-12.50)))
			return &models.Transaction{ID: uuid.New(), UserID: userID, Value: value, Description: description}, nil
		})

	c, rec := s.postJSON(`{"user_id":"` + s.userID.String() + `","value":"-12.50","description":"Lunch"}`)

	s.NoError(s.handler.CreateTransaction(c))
	s.Equal(http.StatusCreated, rec.Code)

	var txn models.Transaction
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &txn))
	s.Equal(s.userID, txn.UserID)
}

func (s *TransactionHandlerTestSuite) TestCreateTransaction_WithCategory() {
	categoryID := uuid.New()
	s.mockLedger.EXPECT().
		CreateTransaction(s.userID, gomock.Any(), gomock.Any(), "").
		DoAndReturn(func(userID uuid.UUID, gotCategoryID *uuid.UUID, value decimal.Decimal, description string) (*models.Transaction, error) {
			s.Require().NotNil(gotCategoryID)
			s.Equal(categoryID, *gotCategoryID)
			return &models.Transaction{ID: uuid.New(), UserID: userID, CategoryID: gotCategoryID, Value: value}, nil
		})

	c, rec := s.postJSON(`{"user_id":"` + s.userID.String() + `","category_id":"` + categoryID.String() + `","value":"100"}`)

	s.NoError(s.handler.CreateTransaction(c))
	s.Equal(http.StatusCreated, rec.Code)
}

func (s *TransactionHandlerTestSuite) TestCreateTransaction_NonNumericValueFailsValidation() {
	c, _ := s.postJSON(`{"user_id":"` + s.userID.String() + `","value":"a lot"}`)

	err := s.handler.CreateTransaction(c)
	s.Error(err)
}

func (s *TransactionHandlerTestSuite) TestCreateTransaction_UnknownUser() {
	s.mockLedger.EXPECT().
		CreateTransaction(s.userID, gomock.Nil(), gomock.Any(), "").
		Return(nil, repositories.ErrUserNotFound)

	c, rec := s.postJSON(`{"user_id":"` + s.userID.String() + `","value":"5"}`)

	s.NoError(s.handler.CreateTransaction(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "USER_001")
}

func (s *TransactionHandlerTestSuite) TestGetUserTransactions() {
	s.mockLedger.EXPECT().GetUserTransactions(s.userID).Return([]models.Transaction{
		{ID: uuid.New(), UserID: s.userID, Value: decimal.NewFromInt(-5)},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetParamNames("userId")
	c.SetParamValues(s.userID.String())

	s.NoError(s.handler.GetUserTransactions(c))
	s.Equal(http.StatusOK, rec.Code)

	var transactions []models.Transaction
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &transactions))
	s.Len(transactions, 1)
}

func (s *TransactionHandlerTestSuite) TestDeleteTransaction_NotFound() {
	transactionID := uuid.New()
	s.mockLedger.EXPECT().DeleteTransaction(transactionID).Return(repositories.ErrTransactionNotFound)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(transactionID.String())

	s.NoError(s.handler.DeleteTransaction(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "TRANSACTION_001")
}

func (s *TransactionHandlerTestSuite) TestDeleteTransaction() {
	transactionID := uuid.New()
	s.mockLedger.EXPECT().DeleteTransaction(transactionID).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(transactionID.String())

	s.NoError(s.handler.DeleteTransaction(c))
	s.Equal(http.StatusOK, rec.Code)
}
