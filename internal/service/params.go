package service

import "time"

// SignUpParams carries a new account registration.
type SignUpParams struct {
	BusinessID int
	Username   string
	Password   string
	Role       string
}

// BusinessParams carries tenant creation/update fields.
type BusinessParams struct {
	Name      string
	Subdomain string
	Currency  string
	TaxRate   float64
	LogoURL   string
}

// ProductParams carries product create/update fields.
type ProductParams struct {
	CategoryID int
	Name       string
	SKU        string
	Barcode    string
	Price      float64
	Stock      int
}

// CustomerParams carries customer create/update fields.
type CustomerParams struct {
	Name  string
	Phone string
	Email string
}

// SaleItemParams is one requested line of a sale.
type SaleItemParams struct {
	ProductID int
	Quantity  int
}

// SaleParams is a till transaction request. Prices are looked up server
// side; clients only send product ids and quantities.
type SaleParams struct {
	CustomerID    int
	Items         []SaleItemParams
	PaymentMethod string
}

// SalesSummary is the aggregate returned by Reports.SalesSummary.
type SalesSummary struct {
	From         time.Time          `json:"from"`
	To           time.Time          `json:"to"`
	SaleCount    int                `json:"sale_count"`
	Revenue      float64            `json:"revenue"`
	TaxCollected float64            `json:"tax_collected"`
	ByPayment    map[string]float64 `json:"by_payment"`
	TopProducts  []ProductSales     `json:"top_products"`
}

// ProductSales is one row of the top-products ranking.
type ProductSales struct {
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}
