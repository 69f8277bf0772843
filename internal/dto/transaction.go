package dto

// CreateTransactionRequest represents the request payload for recording a
// ledger transaction. Value is signed: negative for spending, positive for
// income.
type CreateTransactionRequest struct {
	UserID      string `json:"user_id" validate:"required,uuid"`
	CategoryID  string `json:"category_id" validate:"omitempty,uuid"`
	Value       string `json:"value" validate:"required,money_amount"`
	Description string `json:"description" validate:"max=255"`
}
