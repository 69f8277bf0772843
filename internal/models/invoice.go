package models

import "github.com/shopspring/decimal"

// StructuredInvoice is the shape the text-generation model must produce for a
// scanned receipt, after the prompt prefix is stripped from its output.
type StructuredInvoice struct {
	Date     string          `json:"date"`
	Store    string          `json:"store"`
	Total    decimal.Decimal `json:"total"`
	Category string          `json:"category"`
	Items    []InvoiceItem   `json:"items"`
}

// InvoiceItem is a single structured line item extracted from receipt text
type InvoiceItem struct {
	Name       string          `json:"name"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}
