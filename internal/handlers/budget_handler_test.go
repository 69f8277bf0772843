package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"billbox/internal/dto"
	"billbox/internal/models"
	"billbox/internal/repositories"
	"billbox/internal/services"
	"billbox/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BudgetHandlerTestSuite struct {
	suite.Suite
	echo        *echo.Echo
	ctrl        *gomock.Controller
	mockService *service_mocks.MockBudgetServiceInterface
	handler     *BudgetHandler
	userID      uuid.UUID
	categoryID  uuid.UUID
}

func TestBudgetHandlerSuite(t *testing.T) {
	suite.Run(t, new(BudgetHandlerTestSuite))
}

func (s *BudgetHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.ctrl = gomock.NewController(s.T())
	s.mockService = service_mocks.NewMockBudgetServiceInterface(s.ctrl)
	s.handler = NewBudgetHandler(s.mockService)
	s.userID = uuid.New()
	s.categoryID = uuid.New()
}

func (s *BudgetHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *BudgetHandlerTestSuite) newContext(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, "/", nil)
	}
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetParamNames("userId", "categoryId")
	c.SetParamValues(s.userID.String(), s.categoryID.String())
	return c, rec
}

func (s *BudgetHandlerTestSuite) TestGetBudget_OverBudget() {
	s.mockService.EXPECT().GetWithStatus(s.userID, s.categoryID).Return(&models.BudgetStatus{
		Budget: &models.Budget{
			UserID:       s.userID,
			CategoryID:   s.categoryID,
			BudgetAmount: decimal.RequireFromString("100"),
			RealAmount:   decimal.RequireFromString("100.01"),
		},
		Consumption: decimal.RequireFromString("100.01"),
		OverBudget:  true,
	}, nil)

	c, rec := s.newContext(http.MethodGet, "")

	s.NoError(s.handler.GetBudget(c))
	s.Equal(http.StatusOK, rec.Code)

	var status map[string]interface{}
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &status))
	s.Equal(true, status["over_budget"])
}

func (s *BudgetHandlerTestSuite) TestGetBudget_NotFound() {
	s.mockService.EXPECT().GetWithStatus(s.userID, s.categoryID).
		Return(nil, repositories.ErrBudgetNotFound)

	c, rec := s.newContext(http.MethodGet, "")

	s.NoError(s.handler.GetBudget(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "BUDGET_001")
}

func (s *BudgetHandlerTestSuite) TestUpsertBudget() {
	s.mockService.EXPECT().Upsert(s.userID, s.categoryID, gomock.Any()).
		DoAndReturn(func(userID, categoryID uuid.UUID, req *dto.UpsertBudgetRequest) (*models.Budget, error) {
			s.Equal("250", req.BudgetAmount)
			return &models.Budget{
				ID:           uuid.New(),
				UserID:       userID,
				CategoryID:   categoryID,
				BudgetAmount: decimal.RequireFromString(req.BudgetAmount),
			}, nil
		})

	c, rec := s.newContext(http.MethodPost, `{"budget_amount":"250"}`)

	s.NoError(s.handler.UpsertBudget(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *BudgetHandlerTestSuite) TestUpsertBudget_NonNumericAmountFailsValidation() {
	c, _ := s.newContext(http.MethodPost, `{"budget_amount":"lots"}`)

	err := s.handler.UpsertBudget(c)
	s.Error(err)
}

func (s *BudgetHandlerTestSuite) TestPatchBudget_NotFound() {
	s.mockService.EXPECT().Patch(s.userID, s.categoryID, gomock.Any()).
		Return(nil, repositories.ErrBudgetNotFound)

	c, rec := s.newContext(http.MethodPatch, `{"real_amount":"50"}`)

	s.NoError(s.handler.PatchBudget(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "BUDGET_001")
}

func (s *BudgetHandlerTestSuite) TestPatchBudget_InvalidAmount() {
	s.mockService.EXPECT().Patch(s.userID, s.categoryID, gomock.Any()).
		Return(nil, services.ErrInvalidAmount)

	c, rec := s.newContext(http.MethodPatch, `{"real_amount":"lots"}`)

	s.NoError(s.handler.PatchBudget(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "TRANSACTION_002")
}

func (s *BudgetHandlerTestSuite) TestGetConsumption() {
	s.mockService.EXPECT().GetConsumption(s.userID, s.categoryID).Return(&models.BudgetConsumption{
		RealAmount:   decimal.RequireFromString("42.50"),
		BudgetAmount: decimal.RequireFromString("300"),
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetParamNames("userId", "categoryId")
	c.SetParamValues(s.userID.String(), s.categoryID.String())

	s.NoError(s.handler.GetConsumption(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *BudgetHandlerTestSuite) TestDeleteBudget_Idempotent() {
	s.mockService.EXPECT().Delete(s.userID, s.categoryID).Return(nil)

	c, rec := s.newContext(http.MethodDelete, "")

	s.NoError(s.handler.DeleteBudget(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *BudgetHandlerTestSuite) TestGetBudget_InvalidIDs() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetParamNames("userId", "categoryId")
	c.SetParamValues("nope", "nope")

	s.NoError(s.handler.GetBudget(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "VALIDATION_001")
}
