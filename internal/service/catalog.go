package service

import (
	"context"
	"errors"
	"strings"

	"tillpoint/internal/models"
	"tillpoint/internal/repository"
)

var (
	errProductName   = errors.New("product name is required")
	errProductPrice  = errors.New("product price must be >= 0")
	errCategoryName  = errors.New("category name is required")
	ErrProductAbsent = errors.New("product not found")
)

type CatalogService struct {
	repo repository.CatalogRepo
}

func NewCatalogService(repo repository.CatalogRepo) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) CreateCategory(ctx context.Context, businessID int, name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errCategoryName
	}
	return s.repo.CreateCategory(ctx, models.Category{BusinessID: businessID, Name: name})
}

func (s *CatalogService) ListCategories(ctx context.Context, businessID int) ([]models.Category, error) {
	return s.repo.ListCategories(ctx, businessID)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, businessID, id int) error {
	return s.repo.DeleteCategory(ctx, businessID, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, businessID int, p ProductParams) (int, error) {
	if err := validateProduct(p); err != nil {
		return 0, err
	}
	return s.repo.CreateProduct(ctx, models.Product{
		BusinessID: businessID,
		CategoryID: p.CategoryID,
		Name:       strings.TrimSpace(p.Name),
		SKU:        strings.TrimSpace(p.SKU),
		Barcode:    strings.TrimSpace(p.Barcode),
		Price:      p.Price,
		Stock:      p.Stock,
	})
}

func (s *CatalogService) GetProduct(ctx context.Context, businessID, id int) (*models.Product, error) {
	return s.repo.GetProduct(ctx, businessID, id)
}

func (s *CatalogService) ListProducts(ctx context.Context, businessID int) ([]models.Product, error) {
	return s.repo.ListProducts(ctx, businessID)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, businessID, id int, p ProductParams) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	existing, err := s.repo.GetProduct(ctx, businessID, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrProductAbsent
	}
	return s.repo.UpdateProduct(ctx, models.Product{
		ID:         id,
		BusinessID: businessID,
		CategoryID: p.CategoryID,
		Name:       strings.TrimSpace(p.Name),
		SKU:        strings.TrimSpace(p.SKU),
		Barcode:    strings.TrimSpace(p.Barcode),
		Price:      p.Price,
		Stock:      p.Stock,
	})
}

func (s *CatalogService) DeleteProduct(ctx context.Context, businessID, id int) error {
	return s.repo.DeleteProduct(ctx, businessID, id)
}

func validateProduct(p ProductParams) error {
	if strings.TrimSpace(p.Name) == "" {
		return errProductName
	}
	if p.Price < 0 {
		return errProductPrice
	}
	return nil
}
