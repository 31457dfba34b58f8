package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tillpoint/internal/models"
	"tillpoint/internal/repository"
)

var (
	ErrSaleAbsent    = errors.New("sale not found")
	ErrInvoiceAbsent = errors.New("invoice not found")
)

type InvoiceService struct {
	invoiceRepo repository.InvoiceRepo
	saleRepo    repository.SaleRepo
}

func NewInvoiceService(invoiceRepo repository.InvoiceRepo, saleRepo repository.SaleRepo) *InvoiceService {
	return &InvoiceService{invoiceRepo: invoiceRepo, saleRepo: saleRepo}
}

// CreateFromSale issues an invoice for a recorded sale, numbering it
// sequentially per business and year ("INV-2026-000042").
func (s *InvoiceService) CreateFromSale(ctx context.Context, businessID, saleID int, dueAt time.Time) (*models.Invoice, error) {
	sale, err := s.saleRepo.GetByID(ctx, businessID, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, ErrSaleAbsent
	}

	now := time.Now().UTC()
	seq, err := s.invoiceRepo.CountForYear(ctx, businessID, now.Year())
	if err != nil {
		return nil, err
	}

	inv := models.Invoice{
		BusinessID: businessID,
		SaleID:     sale.ID,
		CustomerID: sale.CustomerID,
		Number:     fmt.Sprintf("INV-%04d-%06d", now.Year(), seq+1),
		Status:     models.InvoiceIssued,
		Total:      sale.Total,
		IssuedAt:   now,
		DueAt:      dueAt,
	}
	id, err := s.invoiceRepo.Create(ctx, inv)
	if err != nil {
		return nil, err
	}
	inv.ID = id
	return &inv, nil
}

func (s *InvoiceService) Get(ctx context.Context, businessID, id int) (*models.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, businessID, id)
}

func (s *InvoiceService) List(ctx context.Context, businessID int) ([]models.Invoice, error) {
	return s.invoiceRepo.List(ctx, businessID)
}

func (s *InvoiceService) MarkPaid(ctx context.Context, businessID, id int) error {
	inv, err := s.invoiceRepo.GetByID(ctx, businessID, id)
	if err != nil {
		return err
	}
	if inv == nil {
		return ErrInvoiceAbsent
	}
	return s.invoiceRepo.SetStatus(ctx, businessID, id, models.InvoicePaid)
}
