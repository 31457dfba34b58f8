package models

import "time"

// Business is a tenant. All catalog, customer and sales rows are scoped
// to exactly one business.
type Business struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Subdomain string    `json:"subdomain"` // e.g. "acme" for acme.example.com
	Currency  string    `json:"currency"`  // ISO 4217, e.g. "USD"
	TaxRate   float64   `json:"tax_rate"`  // fraction, e.g. 0.08
	LogoURL   string    `json:"logo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
