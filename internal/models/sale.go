package models

import "time"

// Payment methods accepted at the till.
const (
	PaymentCash = "CASH"
	PaymentCard = "CARD"
)

// SaleItem is one line of a sale. UnitPrice is captured at sale time so
// later price changes do not rewrite history.
type SaleItem struct {
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// Sale is a completed till transaction.
type Sale struct {
	ID            int        `json:"id"`
	BusinessID    int        `json:"business_id"`
	CustomerID    int        `json:"customer_id,omitempty"`
	CashierID     int        `json:"cashier_id"`
	Items         []SaleItem `json:"items"`
	Subtotal      float64    `json:"subtotal"`
	TaxAmount     float64    `json:"tax_amount"`
	Total         float64    `json:"total"`
	PaymentMethod string     `json:"payment_method"` // CASH | CARD
	OccurredAt    time.Time  `json:"occurred_at"`
}
