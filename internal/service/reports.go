package service

import (
	"context"
	"sort"
	"time"

	"tillpoint/internal/repository"
)

const topProductsLimit = 5

type ReportsService struct {
	saleRepo repository.SaleRepo
}

func NewReportsService(saleRepo repository.SaleRepo) *ReportsService {
	return &ReportsService{saleRepo: saleRepo}
}

// SalesSummary aggregates sales in [from, to]: count, revenue, tax,
// revenue per payment method and the top products by quantity sold.
func (s *ReportsService) SalesSummary(ctx context.Context, businessID int, from, to time.Time) (SalesSummary, error) {
	sales, err := s.saleRepo.List(ctx, businessID, from, to)
	if err != nil {
		return SalesSummary{}, err
	}

	sum := SalesSummary{
		From:      from,
		To:        to,
		ByPayment: make(map[string]float64),
	}
	perProduct := make(map[int]*ProductSales)

	for _, sale := range sales {
		sum.SaleCount++
		sum.Revenue = roundMoney(sum.Revenue + sale.Total)
		sum.TaxCollected = roundMoney(sum.TaxCollected + sale.TaxAmount)
		sum.ByPayment[sale.PaymentMethod] = roundMoney(sum.ByPayment[sale.PaymentMethod] + sale.Total)

		for _, it := range sale.Items {
			ps, ok := perProduct[it.ProductID]
			if !ok {
				ps = &ProductSales{ProductID: it.ProductID, ProductName: it.ProductName}
				perProduct[it.ProductID] = ps
			}
			ps.Quantity += it.Quantity
			ps.Revenue = roundMoney(ps.Revenue + it.UnitPrice*float64(it.Quantity))
		}
	}

	sum.TopProducts = make([]ProductSales, 0, len(perProduct))
	for _, ps := range perProduct {
		sum.TopProducts = append(sum.TopProducts, *ps)
	}
	sort.Slice(sum.TopProducts, func(i, j int) bool {
		if sum.TopProducts[i].Quantity != sum.TopProducts[j].Quantity {
			return sum.TopProducts[i].Quantity > sum.TopProducts[j].Quantity
		}
		return sum.TopProducts[i].ProductID < sum.TopProducts[j].ProductID
	})
	if len(sum.TopProducts) > topProductsLimit {
		sum.TopProducts = sum.TopProducts[:topProductsLimit]
	}
	return sum, nil
}
