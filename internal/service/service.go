package service

import (
	"context"
	"time"

	"tillpoint/internal/models"
	"tillpoint/internal/repository"
)

// TokenClaims is what a parsed access token carries.
type TokenClaims struct {
	UserID     int
	BusinessID int
	Role       string
}

type Authorization interface {
	SignUp(ctx context.Context, p SignUpParams) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (TokenClaims, error)
}

// Businesses manages tenants and resolves them from subdomains.
type Businesses interface {
	Create(ctx context.Context, p BusinessParams) (int, error)
	Get(ctx context.Context, id int) (*models.Business, error)
	ResolveSubdomain(ctx context.Context, subdomain string) (*models.Business, error)
	Update(ctx context.Context, b models.Business) error
}

// Catalog manages products and categories for one business.
type Catalog interface {
	CreateCategory(ctx context.Context, businessID int, name string) (int, error)
	ListCategories(ctx context.Context, businessID int) ([]models.Category, error)
	DeleteCategory(ctx context.Context, businessID, id int) error

	CreateProduct(ctx context.Context, businessID int, p ProductParams) (int, error)
	GetProduct(ctx context.Context, businessID, id int) (*models.Product, error)
	ListProducts(ctx context.Context, businessID int) ([]models.Product, error)
	UpdateProduct(ctx context.Context, businessID, id int, p ProductParams) error
	DeleteProduct(ctx context.Context, businessID, id int) error
}

type Customers interface {
	Create(ctx context.Context, businessID int, p CustomerParams) (int, error)
	Get(ctx context.Context, businessID, id int) (*models.Customer, error)
	List(ctx context.Context, businessID int) ([]models.Customer, error)
	Update(ctx context.Context, businessID, id int, p CustomerParams) error
	Delete(ctx context.Context, businessID, id int) error
}

// Sales records till transactions and exposes history.
type Sales interface {
	Record(ctx context.Context, businessID, cashierID int, p SaleParams) (*models.Sale, error)
	Get(ctx context.Context, businessID, id int) (*models.Sale, error)
	List(ctx context.Context, businessID int, from, to time.Time) ([]models.Sale, error)
}

type Invoices interface {
	CreateFromSale(ctx context.Context, businessID, saleID int, dueAt time.Time) (*models.Invoice, error)
	Get(ctx context.Context, businessID, id int) (*models.Invoice, error)
	List(ctx context.Context, businessID int) ([]models.Invoice, error)
	MarkPaid(ctx context.Context, businessID, id int) error
}

// Reports aggregates sales over a date range.
type Reports interface {
	SalesSummary(ctx context.Context, businessID int, from, to time.Time) (SalesSummary, error)
}

// Receipts renders printable HTML payloads for the print queue.
type Receipts interface {
	RenderSale(ctx context.Context, businessID, saleID int) (string, error)
}

// Service aggregates all sub-services behind one wiring point.
type Service struct {
	Authorization
	Businesses
	Catalog
	Customers
	Sales
	Invoices
	Reports
	Receipts
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, signingKey string) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Auth, signingKey),
		Businesses:    NewBusinessService(repos.Businesses),
		Catalog:       NewCatalogService(repos.Catalog),
		Customers:     NewCustomerService(repos.Customers),
		Sales:         NewSalesService(repos.Sales, repos.Catalog, repos.Businesses),
		Invoices:      NewInvoiceService(repos.Invoices, repos.Sales),
		Reports:       NewReportsService(repos.Sales),
		Receipts:      NewReceiptService(repos.Sales, repos.Businesses),
	}
}
