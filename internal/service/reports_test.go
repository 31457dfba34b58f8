package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"tillpoint/internal/models"
)

func TestSalesSummary_Aggregates(t *testing.T) {
	t.Parallel()

	sales := &fakeSaleRepo{sales: map[int]models.Sale{
		1: {ID: 1, BusinessID: 7, Total: 10.80, TaxAmount: 0.80, PaymentMethod: "CASH",
			Items: []models.SaleItem{
				{ProductID: 11, ProductName: "Americano", Quantity: 2, UnitPrice: 3.50},
				{ProductID: 12, ProductName: "Croissant", Quantity: 1, UnitPrice: 3.00},
			}},
		2: {ID: 2, BusinessID: 7, Total: 7.56, TaxAmount: 0.56, PaymentMethod: "CARD",
			Items: []models.SaleItem{
				{ProductID: 11, ProductName: "Americano", Quantity: 2, UnitPrice: 3.50},
			}},
	}}
	svc := NewReportsService(sales)

	sum, err := svc.SalesSummary(context.Background(), 7, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("SalesSummary: %v", err)
	}

	if sum.SaleCount != 2 {
		t.Fatalf("sale count = %d", sum.SaleCount)
	}
	if sum.Revenue != 18.36 {
		t.Fatalf("revenue = %v, want 18.36", sum.Revenue)
	}
	if sum.TaxCollected != 1.36 {
		t.Fatalf("tax = %v, want 1.36", sum.TaxCollected)
	}
	if sum.ByPayment["CASH"] != 10.80 || sum.ByPayment["CARD"] != 7.56 {
		t.Fatalf("by payment = %v", sum.ByPayment)
	}
	if len(sum.TopProducts) != 2 {
		t.Fatalf("top products = %+v", sum.TopProducts)
	}
	// Americano sold 4 units across both sales and must rank first.
	if sum.TopProducts[0].ProductID != 11 || sum.TopProducts[0].Quantity != 4 {
		t.Fatalf("top product = %+v", sum.TopProducts[0])
	}
	if sum.TopProducts[0].Revenue != 14.0 {
		t.Fatalf("top product revenue = %v, want 14.00", sum.TopProducts[0].Revenue)
	}
}

func TestRenderSale_ContainsLineItemsAndTotals(t *testing.T) {
	t.Parallel()

	businesses := &fakeBusinessRepo{businesses: map[int]models.Business{
		7: {ID: 7, Name: "Acme Coffee", Currency: "USD", TaxRate: 0.08},
	}}
	sales := &fakeSaleRepo{sales: map[int]models.Sale{
		5: {ID: 5, BusinessID: 7, Subtotal: 10.0, TaxAmount: 0.8, Total: 10.8,
			PaymentMethod: "CASH", OccurredAt: time.Date(2026, time.June, 1, 9, 30, 0, 0, time.UTC),
			Items: []models.SaleItem{
				{ProductID: 11, ProductName: "Americano", Quantity: 2, UnitPrice: 3.50},
			}},
	}}
	svc := NewReceiptService(sales, businesses)

	html, err := svc.RenderSale(context.Background(), 7, 5)
	if err != nil {
		t.Fatalf("RenderSale: %v", err)
	}

	for _, want := range []string{
		"Acme Coffee",
		"Receipt #5",
		"2 x Americano",
		"7.00",  // extended line total
		"10.80", // grand total
		"CASH",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("receipt missing %q:\n%s", want, html)
		}
	}
}

func TestRenderSale_UnknownSale(t *testing.T) {
	t.Parallel()

	businesses := &fakeBusinessRepo{businesses: map[int]models.Business{7: {ID: 7}}}
	sales := &fakeSaleRepo{sales: make(map[int]models.Sale)}
	svc := NewReceiptService(sales, businesses)

	if _, err := svc.RenderSale(context.Background(), 7, 404); err != ErrSaleAbsent {
		t.Fatalf("err = %v, want ErrSaleAbsent", err)
	}
}
