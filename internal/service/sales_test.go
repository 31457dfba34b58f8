package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"tillpoint/internal/models"
)

// ---- fake repos ----

type fakeBusinessRepo struct {
	businesses map[int]models.Business
}

func (f *fakeBusinessRepo) Create(ctx context.Context, b models.Business) (int, error) {
	id := len(f.businesses) + 1
	b.ID = id
	f.businesses[id] = b
	return id, nil
}

func (f *fakeBusinessRepo) GetByID(ctx context.Context, id int) (*models.Business, error) {
	b, ok := f.businesses[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (f *fakeBusinessRepo) GetBySubdomain(ctx context.Context, sub string) (*models.Business, error) {
	for _, b := range f.businesses {
		if b.Subdomain == sub {
			b := b
			return &b, nil
		}
	}
	return nil, nil
}

func (f *fakeBusinessRepo) Update(ctx context.Context, b models.Business) error {
	f.businesses[b.ID] = b
	return nil
}

type fakeCatalogRepo struct {
	products     map[int]models.Product
	stockAdjusts map[int]int
}

func (f *fakeCatalogRepo) CreateCategory(ctx context.Context, c models.Category) (int, error) {
	return 1, nil
}
func (f *fakeCatalogRepo) ListCategories(ctx context.Context, businessID int) ([]models.Category, error) {
	return nil, nil
}
func (f *fakeCatalogRepo) DeleteCategory(ctx context.Context, businessID, id int) error { return nil }
func (f *fakeCatalogRepo) CreateProduct(ctx context.Context, p models.Product) (int, error) {
	id := len(f.products) + 1
	p.ID = id
	f.products[id] = p
	return id, nil
}
func (f *fakeCatalogRepo) GetProduct(ctx context.Context, businessID, id int) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok || p.BusinessID != businessID {
		return nil, nil
	}
	return &p, nil
}
func (f *fakeCatalogRepo) ListProducts(ctx context.Context, businessID int) ([]models.Product, error) {
	return nil, nil
}
func (f *fakeCatalogRepo) UpdateProduct(ctx context.Context, p models.Product) error { return nil }
func (f *fakeCatalogRepo) DeleteProduct(ctx context.Context, businessID, id int) error {
	return nil
}
func (f *fakeCatalogRepo) AdjustStock(ctx context.Context, businessID, productID, delta int) error {
	if f.stockAdjusts == nil {
		f.stockAdjusts = make(map[int]int)
	}
	f.stockAdjusts[productID] += delta
	return nil
}

type fakeSaleRepo struct {
	sales   map[int]models.Sale
	nextID  int
	saveErr error
}

func (f *fakeSaleRepo) Create(ctx context.Context, s models.Sale) (int, error) {
	if f.saveErr != nil {
		return 0, f.saveErr
	}
	f.nextID++
	s.ID = f.nextID
	f.sales[f.nextID] = s
	return f.nextID, nil
}

func (f *fakeSaleRepo) GetByID(ctx context.Context, businessID, id int) (*models.Sale, error) {
	s, ok := f.sales[id]
	if !ok || s.BusinessID != businessID {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeSaleRepo) List(ctx context.Context, businessID int, from, to time.Time) ([]models.Sale, error) {
	out := make([]models.Sale, 0, len(f.sales))
	for _, s := range f.sales {
		if s.BusinessID == businessID {
			out = append(out, s)
		}
	}
	return out, nil
}

// ---- helpers ----

func newSalesFixture() (*SalesService, *fakeSaleRepo, *fakeCatalogRepo) {
	businesses := &fakeBusinessRepo{businesses: map[int]models.Business{
		7: {ID: 7, Name: "Acme Coffee", Subdomain: "acme", Currency: "USD", TaxRate: 0.08},
	}}
	catalog := &fakeCatalogRepo{products: map[int]models.Product{
		11: {ID: 11, BusinessID: 7, Name: "Americano", Price: 3.50, Stock: 10},
		12: {ID: 12, BusinessID: 7, Name: "Croissant", Price: 3.00, Stock: 2},
	}}
	sales := &fakeSaleRepo{sales: make(map[int]models.Sale)}
	return NewSalesService(sales, catalog, businesses), sales, catalog
}

func TestRecord_PricesFromCatalogAndAppliesTax(t *testing.T) {
	t.Parallel()

	svc, _, catalog := newSalesFixture()

	sale, err := svc.Record(context.Background(), 7, 2, SaleParams{
		PaymentMethod: "cash",
		Items: []SaleItemParams{
			{ProductID: 11, Quantity: 2},
			{ProductID: 12, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	if sale.Subtotal != 10.0 {
		t.Fatalf("subtotal = %v, want 10.00", sale.Subtotal)
	}
	if sale.TaxAmount != 0.8 {
		t.Fatalf("tax = %v, want 0.80", sale.TaxAmount)
	}
	if sale.Total != 10.8 {
		t.Fatalf("total = %v, want 10.80", sale.Total)
	}
	if sale.PaymentMethod != models.PaymentCash {
		t.Fatalf("payment = %q, want normalized CASH", sale.PaymentMethod)
	}
	if sale.Items[0].UnitPrice != 3.50 {
		t.Fatalf("unit price taken from client, not catalog: %v", sale.Items[0].UnitPrice)
	}
	if catalog.stockAdjusts[11] != -2 || catalog.stockAdjusts[12] != -1 {
		t.Fatalf("stock adjustments = %v", catalog.stockAdjusts)
	}
}

func TestRecord_Rejections(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		params  SaleParams
		wantErr error
	}{
		{
			name:    "no items",
			params:  SaleParams{PaymentMethod: "CASH"},
			wantErr: errEmptySale,
		},
		{
			name: "bad payment method",
			params: SaleParams{PaymentMethod: "IOU",
				Items: []SaleItemParams{{ProductID: 11, Quantity: 1}}},
			wantErr: errBadPayment,
		},
		{
			name: "zero quantity",
			params: SaleParams{PaymentMethod: "CASH",
				Items: []SaleItemParams{{ProductID: 11, Quantity: 0}}},
			wantErr: errBadQuantity,
		},
		{
			name: "unknown product",
			params: SaleParams{PaymentMethod: "CASH",
				Items: []SaleItemParams{{ProductID: 99, Quantity: 1}}},
			wantErr: ErrProductAbsent,
		},
		{
			name: "insufficient stock",
			params: SaleParams{PaymentMethod: "CASH",
				Items: []SaleItemParams{{ProductID: 12, Quantity: 5}}},
			wantErr: ErrInsufficientStock,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, _, _ := newSalesFixture()
			_, err := svc.Record(context.Background(), 7, 2, tc.params)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestRecord_UnknownBusiness(t *testing.T) {
	t.Parallel()

	svc, _, _ := newSalesFixture()
	_, err := svc.Record(context.Background(), 999, 2, SaleParams{
		PaymentMethod: "CASH",
		Items:         []SaleItemParams{{ProductID: 11, Quantity: 1}},
	})
	if !errors.Is(err, ErrUnknownBusiness) {
		t.Fatalf("err = %v, want ErrUnknownBusiness", err)
	}
}
