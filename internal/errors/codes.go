package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthMissingToken       ErrorCode = "AUTH_001"
	AuthExpiredToken       ErrorCode = "AUTH_002"
	AuthInvalidTokenFormat ErrorCode = "AUTH_003"
	AuthNotAdmin           ErrorCode = "AUTH_004"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationInvalidDate   ErrorCode = "VALIDATION_004"
)

// User error codes (USER_*)
const (
	UserNotFound     ErrorCode = "USER_001"
	UserInvalidID    ErrorCode = "USER_002"
	UserDeleteFailed ErrorCode = "USER_003"
)

// Category error codes (CATEGORY_*)
const (
	CategoryNotFound      ErrorCode = "CATEGORY_001"
	CategoryAlreadyExists ErrorCode = "CATEGORY_002"
	CategoryInvalidColor  ErrorCode = "CATEGORY_003"
	CategoryNameTooLong   ErrorCode = "CATEGORY_004"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionNotFound      ErrorCode = "TRANSACTION_001"
	TransactionInvalidAmount ErrorCode = "TRANSACTION_002"
)

// Recurring rule error codes (RECURRING_*)
const (
	RecurringRuleNotFound     ErrorCode = "RECURRING_001"
	RecurringInvalidFrequency ErrorCode = "RECURRING_002"
)

// Budget error codes (BUDGET_*)
const (
	BudgetNotFound      ErrorCode = "BUDGET_001"
	BudgetInvalidPeriod ErrorCode = "BUDGET_002"
)

// Receipt pipeline error codes (RECEIPT_*, EXTRACTION_*)
const (
	ReceiptNotFound     ErrorCode = "RECEIPT_001"
	ReceiptParseFailed  ErrorCode = "RECEIPT_002"
	ReceiptItemNotFound ErrorCode = "RECEIPT_003"

	ExtractionNoFile        ErrorCode = "EXTRACTION_001"
	ExtractionServiceFailed ErrorCode = "EXTRACTION_002"
	GenerationServiceFailed ErrorCode = "EXTRACTION_003"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	AuthMissingToken:       "Authorization token is required",
	AuthExpiredToken:       "Authorization token has expired",
	AuthInvalidTokenFormat: "Invalid authorization token",
	AuthNotAdmin:           "Administrator privileges are required",

	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationInvalidDate:   "Invalid date format or range",

	UserNotFound:     "User not found",
	UserInvalidID:    "Invalid user ID format",
	UserDeleteFailed: "Failed to delete user at the auth provider",

	CategoryNotFound:      "Category not found",
	CategoryAlreadyExists: "Category already exists for this user",
	CategoryInvalidColor:  "Color must be a valid hex color (#RGB or #RRGGBB)",
	CategoryNameTooLong:   "Category name must be at most 50 characters",

	TransactionNotFound:      "Transaction not found",
	TransactionInvalidAmount: "Invalid transaction value",

	RecurringRuleNotFound:     "Recurring rule not found",
	RecurringInvalidFrequency: "Frequency must be one of: daily, weekly, monthly",

	BudgetNotFound:      "No budget defined for this user and category",
	BudgetInvalidPeriod: "Budget period end must not precede period start",

	ReceiptNotFound:     "Receipt not found",
	ReceiptParseFailed:  "Model output could not be parsed as a structured receipt",
	ReceiptItemNotFound: "Receipt item not found",

	ExtractionNoFile:        "No file was supplied for text extraction",
	ExtractionServiceFailed: "Text extraction service failed",
	GenerationServiceFailed: "Text generation service failed",

	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
