package dto

// StructureTextRequest represents the request payload for structuring
// pre-extracted receipt text
type StructureTextRequest struct {
	Text string `json:"text" validate:"required"`
}

// UpdateReceiptRequest represents a partial receipt update
type UpdateReceiptRequest struct {
	Date     *string `json:"date"`
	Store    *string `json:"store"`
	Total    *string `json:"total"`
	Category *string `json:"category"`
}

// UpdateItemRequest represents a partial receipt item update
type UpdateItemRequest struct {
	Name       *string `json:"name"`
	Quantity   *string `json:"quantity"`
	UnitPrice  *string `json:"unit_price"`
	TotalPrice *string `json:"total_price"`
}
