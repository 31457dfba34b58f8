package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"tillpoint/internal/models"
	"tillpoint/internal/repository"
)

var (
	errEmptySale         = errors.New("sale must contain at least one item")
	errBadQuantity       = errors.New("item quantity must be > 0")
	errBadPayment        = errors.New("payment method must be CASH or CARD")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type SalesService struct {
	saleRepo     repository.SaleRepo
	catalogRepo  repository.CatalogRepo
	businessRepo repository.BusinessRepo
}

func NewSalesService(saleRepo repository.SaleRepo, catalogRepo repository.CatalogRepo, businessRepo repository.BusinessRepo) *SalesService {
	return &SalesService{saleRepo: saleRepo, catalogRepo: catalogRepo, businessRepo: businessRepo}
}

// Record prices the requested items from the catalog, applies the business
// tax rate, decrements stock and persists the sale. Prices come from the
// server-side catalog; the client only names products and quantities.
func (s *SalesService) Record(ctx context.Context, businessID, cashierID int, p SaleParams) (*models.Sale, error) {
	if len(p.Items) == 0 {
		return nil, errEmptySale
	}
	payment := strings.ToUpper(strings.TrimSpace(p.PaymentMethod))
	if payment != models.PaymentCash && payment != models.PaymentCard {
		return nil, errBadPayment
	}

	biz, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if biz == nil {
		return nil, ErrUnknownBusiness
	}

	var (
		items    []models.SaleItem
		subtotal float64
	)
	for _, req := range p.Items {
		if req.Quantity <= 0 {
			return nil, errBadQuantity
		}
		prod, err := s.catalogRepo.GetProduct(ctx, businessID, req.ProductID)
		if err != nil {
			return nil, err
		}
		if prod == nil {
			return nil, fmt.Errorf("%w: product %d", ErrProductAbsent, req.ProductID)
		}
		if prod.Stock < req.Quantity {
			return nil, fmt.Errorf("%w: product %q has %d left", ErrInsufficientStock, prod.Name, prod.Stock)
		}
		items = append(items, models.SaleItem{
			ProductID:   prod.ID,
			ProductName: prod.Name,
			Quantity:    req.Quantity,
			UnitPrice:   prod.Price,
		})
		subtotal += prod.Price * float64(req.Quantity)
	}

	subtotal = roundMoney(subtotal)
	tax := roundMoney(subtotal * biz.TaxRate)
	sale := models.Sale{
		BusinessID:    businessID,
		CustomerID:    p.CustomerID,
		CashierID:     cashierID,
		Items:         items,
		Subtotal:      subtotal,
		TaxAmount:     tax,
		Total:         roundMoney(subtotal + tax),
		PaymentMethod: payment,
		OccurredAt:    time.Now().UTC(),
	}

	id, err := s.saleRepo.Create(ctx, sale)
	if err != nil {
		return nil, err
	}
	sale.ID = id

	for _, it := range items {
		if err := s.catalogRepo.AdjustStock(ctx, businessID, it.ProductID, -it.Quantity); err != nil {
			return nil, fmt.Errorf("sale %d recorded but stock adjust failed: %w", id, err)
		}
	}
	return &sale, nil
}

func (s *SalesService) Get(ctx context.Context, businessID, id int) (*models.Sale, error) {
	return s.saleRepo.GetByID(ctx, businessID, id)
}

func (s *SalesService) List(ctx context.Context, businessID int, from, to time.Time) ([]models.Sale, error) {
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, errors.New("invalid time range: from must be <= to")
	}
	return s.saleRepo.List(ctx, businessID, from, to)
}

// roundMoney rounds to cents to keep totals presentable.
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
