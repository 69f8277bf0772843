package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

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

type ReceiptHandlerTestSuite struct {
	suite.Suite
	echo          *echo.Echo
	ctrl          *gomock.Controller
	mockIngestion *service_mocks.MockIngestionServiceInterface
	mockReceipts  *service_mocks.MockReceiptServiceInterface
	handler       *ReceiptHandler
	userID        uuid.UUID
}

func TestReceiptHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReceiptHandlerTestSuite))
}

func (s *ReceiptHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.ctrl = gomock.NewController(s.T())
	s.mockIngestion = service_mocks.NewMockIngestionServiceInterface(s.ctrl)
	s.mockReceipts = service_mocks.NewMockReceiptServiceInterface(s.ctrl)
	s.handler = NewReceiptHandler(s.mockIngestion, s.mockReceipts)
	s.userID = uuid.New()
}

func (s *ReceiptHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// multipartRequest builds a multipart request with a "file" field
func (s *ReceiptHandlerTestSuite) multipartRequest(path string, content []byte) *http.Request {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "receipt.jpg")
	s.Require().NoError(err)
	_, err = part.Write(content)
	s.Require().NoError(err)
	s.Require().NoError(writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req
}

func (s *ReceiptHandlerTestSuite) TestExtractText() {
	s.mockIngestion.EXPECT().ExtractText(gomock.Any(), []byte("fake image")).
		Return("CORNER SHOP\nTOTAL 12.50", nil)

	req := s.multipartRequest("/billbox/extract", []byte("fake image"))
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.NoError(s.handler.ExtractText(c))
	s.Equal(http.StatusOK, rec.Code)

	var body map[string]string
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Contains(body["text"], "CORNER SHOP")
}

func (s *ReceiptHandlerTestSuite) TestExtractText_MissingFile() {
	req := httptest.NewRequest(http.MethodPost, "/billbox/extract", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.NoError(s.handler.ExtractText(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "EXTRACTION_001")
}

func (s *ReceiptHandlerTestSuite) TestExtractText_ServiceFailure() {
	s.mockIngestion.EXPECT().ExtractText(gomock.Any(), gomock.Any()).
		Return("", services.ErrCircuitBreakerOpen)

	req := s.multipartRequest("/billbox/extract", []byte("fake image"))
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.NoError(s.handler.ExtractText(c))
	s.Equal(http.StatusServiceUnavailable, rec.Code)
}

func (s *ReceiptHandlerTestSuite) TestStructureText() {
	s.mockIngestion.EXPECT().StructureText(gomock.Any(), "CORNER SHOP TOTAL 12.50").
		Return(&models.StructuredInvoice{
			Store: "Corner Shop",
			Total: decimal.RequireFromString("12.50"),
		}, nil)

	req := httptest.NewRequest(http.MethodPost, "/billbox/logic",
		strings.NewReader(`{"text":"CORNER SHOP TOTAL 12.50"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.NoError(s.handler.StructureText(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Corner Shop")
}

func (s *ReceiptHandlerTestSuite) TestStructureText_UnparsableOutput() {
	s.mockIngestion.EXPECT().StructureText(gomock.Any(), gomock.Any()).
		Return(nil, services.ErrUnparsableInvoice)

	req := httptest.NewRequest(http.MethodPost, "/billbox/logic",
		strings.NewReader(`{"text":"gibberish"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.NoError(s.handler.StructureText(c))
	s.Equal(http.StatusBadGateway, rec.Code)
	s.Contains(rec.Body.String(), "RECEIPT_002")
}

func (s *ReceiptHandlerTestSuite) TestStructureText_MissingTextFailsValidation() {
	req := httptest.NewRequest(http.MethodPost, "/billbox/logic", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	err := s.handler.StructureText(c)
	s.Error(err)
}

func (s *ReceiptHandlerTestSuite) TestFullProcess() {
	receiptID := uuid.New()
	s.mockIngestion.EXPECT().IngestReceipt(gomock.Any(), s.userID, []byte("fake image")).
		Return(
			&models.StructuredInvoice{Store: "Corner Shop", Total: decimal.RequireFromString("12.50")},
			&models.Receipt{ID: receiptID, UserID: s.userID, Store: "Corner Shop"},
			nil,
		)

	req := s.multipartRequest("/billbox/full-process/"+s.userID.String(), []byte("fake image"))
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetParamNames("userId")
	c.SetParamValues(s.userID.String())

	s.NoError(s.handler.FullProcess(c))
	s.Equal(http.StatusCreated, rec.Code)
	s.Contains(rec.Body.String(), receiptID.String())
}

func (s *ReceiptHandlerTestSuite) TestFullProcess_UnknownUser() {
	s.mockIngestion.EXPECT().IngestReceipt(gomock.Any(), s.userID, gomock.Any()).
		Return(nil, nil, repositories.ErrUserNotFound)

	req := s.multipartRequest("/billbox/full-process/"+s.userID.String(), []byte("fake image"))
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetParamNames("userId")
	c.SetParamValues(s.userID.String())

	s.NoError(s.handler.FullProcess(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "USER_001")
}

func (s *ReceiptHandlerTestSuite) TestFullProcess_ParseFailure() {
	s.mockIngestion.EXPECT().IngestReceipt(gomock.Any(), s.userID, gomock.Any()).
		Return(nil, nil, services.ErrUnparsableInvoice)

	req := s.multipartRequest("/billbox/full-process/"+s.userID.String(), []byte("fake image"))
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetParamNames("userId")
	c.SetParamValues(s.userID.String())

	s.NoError(s.handler.FullProcess(c))
	s.Equal(http.StatusBadGateway, rec.Code)
}

func (s *ReceiptHandlerTestSuite) TestGetAllReceipts() {
	s.mockReceipts.EXPECT().GetAllReceipts().Return([]models.Receipt{
		{ID: uuid.New(), Store: "Corner Shop"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/billbox/data", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.NoError(s.handler.GetAllReceipts(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ReceiptHandlerTestSuite) TestUpdateReceipt_NotFound() {
	receiptID := uuid.New()
	s.mockReceipts.EXPECT().UpdateReceipt(receiptID, gomock.Any()).
		Return(nil, repositories.ErrReceiptNotFound)

	req := httptest.NewRequest(http.MethodPatch, "/",
		strings.NewReader(`{"store":"New Name"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetParamNames("receiptId")
	c.SetParamValues(receiptID.String())

	s.NoError(s.handler.UpdateReceipt(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "RECEIPT_001")
}

func (s *ReceiptHandlerTestSuite) TestDeleteItem_NotFound() {
	itemID := uuid.New()
	s.mockReceipts.EXPECT().DeleteItem(itemID).Return(repositories.ErrItemNotFound)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetParamNames("itemId")
	c.SetParamValues(itemID.String())

	s.NoError(s.handler.DeleteItem(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "RECEIPT_003")
}
