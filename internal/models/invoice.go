package models

import "time"

// Invoice statuses.
const (
	InvoiceDraft  = "DRAFT"
	InvoiceIssued = "ISSUED"
	InvoicePaid   = "PAID"
)

// Invoice is a billable document, usually derived from a sale.
type Invoice struct {
	ID         int       `json:"id"`
	BusinessID int       `json:"business_id"`
	SaleID     int       `json:"sale_id,omitempty"`
	CustomerID int       `json:"customer_id,omitempty"`
	Number     string    `json:"number"` // e.g. "INV-2026-000042"
	Status     string    `json:"status"` // DRAFT | ISSUED | PAID
	Total      float64   `json:"total"`
	IssuedAt   time.Time `json:"issued_at"`
	DueAt      time.Time `json:"due_at,omitempty"`
}
