package handlers

import (
	"io"
	"net/http"

	"billbox/internal/dto"
	"billbox/internal/errors"
	"billbox/internal/repositories"
	"billbox/internal/services"

	"github.com/labstack/echo/v4"
)

// ReceiptHandler handles receipt ingestion and post-ingestion management
type ReceiptHandler struct {
	ingestionService services.IngestionServiceInterface
	receiptService   services.ReceiptServiceInterface
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(
	ingestionService services.IngestionServiceInterface,
	receiptService services.ReceiptServiceInterface,
) *ReceiptHandler {
	return &ReceiptHandler{
		ingestionService: ingestionService,
		receiptService:   receiptService,
	}
}

// readUploadedFile reads the multipart "file" field into memory
func readUploadedFile(c echo.Context) ([]byte, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

// sendIngestionError maps pipeline failures onto the error catalogue
func sendIngestionError(c echo.Context, err error) error {
	switch err {
	case services.ErrEmptyDocument:
		return SendError(c, errors.ExtractionNoFile)
	case services.ErrNoTextExtracted:
		return SendError(c, errors.ExtractionNoFile, errors.WithDetails("No text recognized in document"))
	case services.ErrUnparsableInvoice:
		return SendError(c, errors.ReceiptParseFailed)
	case services.ErrCircuitBreakerOpen, services.ErrEmptyGeneration:
		return SendError(c, errors.GenerationServiceFailed)
	case repositories.ErrUserNotFound:
		return SendError(c, errors.UserNotFound)
	default:
		return SendError(c, errors.ExtractionServiceFailed)
	}
}

// ExtractText runs OCR over an uploaded receipt image
// @Summary Extract receipt text
// @Description Runs document text detection over the uploaded image and returns the raw text
// @Tags Receipts
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Receipt image"
// @Success 200 {object} object{text=string} "Recognized text"
// @Failure 400 {object} errors.ErrorResponse "EXTRACTION_001 - No file or no text recognized"
// @Failure 503 {object} errors.ErrorResponse "EXTRACTION_002 - OCR service failed"
// @Router /billbox/extract [post]
func (h *ReceiptHandler) ExtractText(c echo.Context) error {
	image, err := readUploadedFile(c)
	if err != nil {
		return SendError(c, errors.ExtractionNoFile)
	}

	text, err := h.ingestionService.ExtractText(c.Request().Context(), image)
	if err != nil {
		return sendIngestionError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"text": text})
}

// StructureText converts pre-extracted receipt text into a structured invoice
// @Summary Structure receipt text
// @Description Sends the text through the generation service and parses the returned JSON
// @Tags Receipts
// @Accept json
// @Produce json
// @Param request body dto.StructureTextRequest true "Raw receipt text"
// @Success 200 {object} models.StructuredInvoice "Structured invoice"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Missing text"
// @Failure 502 {object} errors.ErrorResponse "RECEIPT_002 - Model output not parseable"
// @Failure 503 {object} errors.ErrorResponse "EXTRACTION_003 - Generation service failed"
// @Router /billbox/logic [post]
func (h *ReceiptHandler) StructureText(c echo.Context) error {
	var req dto.StructureTextRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	invoice, err := h.ingestionService.StructureText(c.Request().Context(), req.Text)
	if err != nil {
		if err == services.ErrNoTextExtracted {
			return SendError(c, errors.ValidationGeneral, errors.WithDetails("Text must not be blank"))
		}
		return sendIngestionError(c, err)
	}

	return c.JSON(http.StatusOK, invoice)
}

// FullProcess runs the complete ingestion pipeline for a user
// @Summary Ingest receipt
// @Description Extracts text, structures it, and persists the receipt, its items and the negated ledger transaction atomically
// @Tags Receipts
// @Accept multipart/form-data
// @Produce json
// @Param userId path string true "User UUID"
// @Param file formData file true "Receipt image"
// @Success 201 {object} object{invoice=models.StructuredInvoice,receipt=models.Receipt} "Ingested receipt"
// @Failure 400 {object} errors.ErrorResponse "EXTRACTION_001 - No file or no text recognized"
// @Failure 404 {object} errors.ErrorResponse "USER_001 - User not found"
// @Failure 502 {object} errors.ErrorResponse "RECEIPT_002 - Model output not parseable"
// @Failure 503 {object} errors.ErrorResponse "EXTRACTION_002/EXTRACTION_003 - Upstream service failed"
// @Router /billbox/full-process/{userId} [post]
func (h *ReceiptHandler) FullProcess(c echo.Context) error {
	userID, err := parseUUIDParam(c, "userId")
	if err != nil {
		return SendError(c, errors.UserInvalidID)
	}

	image, err := readUploadedFile(c)
	if err != nil {
		return SendError(c, errors.ExtractionNoFile)
	}

	invoice, receipt, err := h.ingestionService.IngestReceipt(c.Request().Context(), userID, image)
	if err != nil {
		return sendIngestionError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"invoice": invoice,
		"receipt": receipt,
	})
}

// GetAllReceipts lists every receipt with items
// @Summary List all receipts
// @Tags Receipts
// @Produce json
// @Success 200 {array} models.Receipt "Receipts with items"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /billbox/data [get]
func (h *ReceiptHandler) GetAllReceipts(c echo.Context) error {
	receipts, err := h.receiptService.GetAllReceipts()
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, receipts)
}

// GetUserReceipts lists a user's receipts with items
// @Summary List user receipts
// @Tags Receipts
// @Produce json
// @Param userId path string true "User UUID"
// @Success 200 {array} models.Receipt "Receipts with items"
// @Failure 400 {object} errors.ErrorResponse "USER_002 - Invalid user ID"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /billbox/receipts/user/{userId} [get]
func (h *ReceiptHandler) GetUserReceipts(c echo.Context) error {
	userID, err := parseUUIDParam(c, "userId")
	if err != nil {
		return SendError(c, errors.UserInvalidID)
	}

	receipts, err := h.receiptService.GetUserReceipts(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, receipts)
}

// UpdateReceipt updates the provided fields of a receipt
// @Summary Update receipt
// @Tags Receipts
// @Accept json
// @Produce json
// @Param receiptId path string true "Receipt UUID"
// @Param request body dto.UpdateReceiptRequest true "Fields to update"
// @Success 200 {object} models.Receipt "Updated receipt"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid receipt ID or amount"
// @Failure 404 {object} errors.ErrorResponse "RECEIPT_001 - Receipt not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /billbox/receipts/{receiptId} [patch]
func (h *ReceiptHandler) UpdateReceipt(c echo.Context) error {
	receiptID, err := parseUUIDParam(c, "receiptId")
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid receipt ID"))
	}

	var req dto.UpdateReceiptRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	receipt, err := h.receiptService.UpdateReceipt(receiptID, &req)
	if err != nil {
		switch err {
		case repositories.ErrReceiptNotFound:
			return SendError(c, errors.ReceiptNotFound)
		case services.ErrInvalidAmount:
			return SendError(c, errors.TransactionInvalidAmount)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusOK, receipt)
}

// DeleteReceipt removes a receipt and its items
// @Summary Delete receipt
// @Tags Receipts
// @Produce json
// @Param receiptId path string true "Receipt UUID"
// @Success 200 {object} SuccessResponse "Receipt deleted"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid receipt ID"
// @Failure 404 {object} errors.ErrorResponse "RECEIPT_001 - Receipt not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /billbox/receipts/{receiptId} [delete]
func (h *ReceiptHandler) DeleteReceipt(c echo.Context) error {
	receiptID, err := parseUUIDParam(c, "receiptId")
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid receipt ID"))
	}

	if err := h.receiptService.DeleteReceipt(receiptID); err != nil {
		if err == repositories.ErrReceiptNotFound {
			return SendError(c, errors.ReceiptNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Receipt deleted"})
}

// UpdateItem updates the provided fields of a receipt item
// @Summary Update receipt item
// @Tags Receipts
// @Accept json
// @Produce json
// @Param itemId path string true "Item UUID"
// @Param request body dto.UpdateItemRequest true "Fields to update"
// @Success 200 {object} models.Item "Updated item"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid item ID or amount"
// @Failure 404 {object} errors.ErrorResponse "RECEIPT_003 - Item not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /billbox/items/{itemId} [patch]
func (h *ReceiptHandler) UpdateItem(c echo.Context) error {
	itemID, err := parseUUIDParam(c, "itemId")
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid item ID"))
	}

	var req dto.UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	item, err := h.receiptService.UpdateItem(itemID, &req)
	if err != nil {
		switch err {
		case repositories.ErrItemNotFound:
			return SendError(c, errors.ReceiptItemNotFound)
		case services.ErrInvalidAmount:
			return SendError(c, errors.TransactionInvalidAmount)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusOK, item)
}

// DeleteItem removes a receipt item
// @Summary Delete receipt item
// @Tags Receipts
// @Produce json
// @Param itemId path string true "Item UUID"
// @Success 200 {object} SuccessResponse "Item deleted"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid item ID"
// @Failure 404 {object} errors.ErrorResponse "RECEIPT_003 - Item not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /billbox/items/{itemId} [delete]
func (h *ReceiptHandler) DeleteItem(c echo.Context) error {
	itemID, err := parseUUIDParam(c, "itemId")
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid item ID"))
	}

	if err := h.receiptService.DeleteItem(itemID); err != nil {
		if err == repositories.ErrItemNotFound {
			return SendError(c, errors.ReceiptItemNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Item deleted"})
}
