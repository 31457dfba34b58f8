package repository

import (
	"context"
	"database/sql"
	"time"

	"tillpoint/internal/models"
	"tillpoint/internal/repository/db"
)

type Authorization interface {
	Create(ctx context.Context, businessID int, username, role, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type BusinessRepo interface {
	Create(ctx context.Context, b models.Business) (int, error)
	GetByID(ctx context.Context, id int) (*models.Business, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*models.Business, error)
	Update(ctx context.Context, b models.Business) error
}

type CatalogRepo interface {
	CreateCategory(ctx context.Context, c models.Category) (int, error)
	ListCategories(ctx context.Context, businessID int) ([]models.Category, error)
	DeleteCategory(ctx context.Context, businessID, id int) error

	CreateProduct(ctx context.Context, p models.Product) (int, error)
	GetProduct(ctx context.Context, businessID, id int) (*models.Product, error)
	ListProducts(ctx context.Context, businessID int) ([]models.Product, error)
	UpdateProduct(ctx context.Context, p models.Product) error
	DeleteProduct(ctx context.Context, businessID, id int) error
	AdjustStock(ctx context.Context, businessID, productID, delta int) error
}

type CustomerRepo interface {
	Create(ctx context.Context, c models.Customer) (int, error)
	GetByID(ctx context.Context, businessID, id int) (*models.Customer, error)
	List(ctx context.Context, businessID int) ([]models.Customer, error)
	Update(ctx context.Context, c models.Customer) error
	Delete(ctx context.Context, businessID, id int) error
}

type SaleRepo interface {
	Create(ctx context.Context, s models.Sale) (int, error)
	GetByID(ctx context.Context, businessID, id int) (*models.Sale, error)
	List(ctx context.Context, businessID int, from, to time.Time) ([]models.Sale, error)
}

type InvoiceRepo interface {
	Create(ctx context.Context, inv models.Invoice) (int, error)
	GetByID(ctx context.Context, businessID, id int) (*models.Invoice, error)
	List(ctx context.Context, businessID int) ([]models.Invoice, error)
	CountForYear(ctx context.Context, businessID, year int) (int, error)
	SetStatus(ctx context.Context, businessID, id int, status string) error
}

type Repository struct {
	Auth       Authorization
	Businesses BusinessRepo
	Catalog    CatalogRepo
	Customers  CustomerRepo
	Sales      SaleRepo
	Invoices   InvoiceRepo
}

func NewRepository(conn *sql.DB) *Repository {
	return &Repository{
		Auth:       NewUserRepository(conn),
		Businesses: NewBusinessSQLite(conn),
		Catalog:    NewCatalogSQLite(conn),
		Customers:  NewCustomerSQLite(conn),
		Sales:      NewSaleSQLite(conn),
		Invoices:   NewInvoiceSQLite(conn),
	}
}

// InitDB re-exports the connection bootstrap so main only imports this package.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
