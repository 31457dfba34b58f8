package models

import "time"

// Category groups products inside one business.
type Category struct {
	ID         int    `json:"id"`
	BusinessID int    `json:"business_id"`
	Name       string `json:"name"`
}

// Product is a sellable item.
type Product struct {
	ID         int       `json:"id"`
	BusinessID int       `json:"business_id"`
	CategoryID int       `json:"category_id,omitempty"`
	Name       string    `json:"name"`
	SKU        string    `json:"sku,omitempty"`
	Barcode    string    `json:"barcode,omitempty"`
	Price      float64   `json:"price"`
	Stock      int       `json:"stock"`
	UpdatedAt  time.Time `json:"updated_at"`
}
