package service

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"tillpoint/internal/models"
	"tillpoint/internal/repository"
)

// receiptTmpl is the 80mm thermal receipt layout. The output is handed to
// the print queue as-is.
var receiptTmpl = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><style>
body { font-family: monospace; width: 280px; margin: 0; }
table { width: 100%; border-collapse: collapse; }
td.num { text-align: right; }
hr { border: none; border-top: 1px dashed #000; }
</style></head><body>
<h3 style="text-align:center">{{.Business.Name}}</h3>
<p>Receipt #{{.Sale.ID}}<br>{{.Printed}}</p>
<hr>
<table>
{{range .Sale.Items}}<tr><td>{{.Quantity}} x {{.ProductName}}</td><td class="num">{{printf "%.2f" .LineTotal}}</td></tr>
{{end}}</table>
<hr>
<table>
<tr><td>Subtotal</td><td class="num">{{printf "%.2f" .Sale.Subtotal}}</td></tr>
<tr><td>Tax</td><td class="num">{{printf "%.2f" .Sale.TaxAmount}}</td></tr>
<tr><td><b>Total {{.Business.Currency}}</b></td><td class="num"><b>{{printf "%.2f" .Sale.Total}}</b></td></tr>
<tr><td>Paid by</td><td class="num">{{.Sale.PaymentMethod}}</td></tr>
</table>
<hr>
<p style="text-align:center">Thank you!</p>
</body></html>
`))

// receiptItem decorates a sale item with its extended line total.
type receiptItem struct {
	models.SaleItem
	LineTotal float64
}

type receiptSale struct {
	ID            int
	Items         []receiptItem
	Subtotal      float64
	TaxAmount     float64
	Total         float64
	PaymentMethod string
}

type ReceiptService struct {
	saleRepo     repository.SaleRepo
	businessRepo repository.BusinessRepo
}

func NewReceiptService(saleRepo repository.SaleRepo, businessRepo repository.BusinessRepo) *ReceiptService {
	return &ReceiptService{saleRepo: saleRepo, businessRepo: businessRepo}
}

// RenderSale produces the printable HTML receipt for a recorded sale.
func (s *ReceiptService) RenderSale(ctx context.Context, businessID, saleID int) (string, error) {
	sale, err := s.saleRepo.GetByID(ctx, businessID, saleID)
	if err != nil {
		return "", err
	}
	if sale == nil {
		return "", ErrSaleAbsent
	}
	biz, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return "", err
	}
	if biz == nil {
		return "", ErrUnknownBusiness
	}

	items := make([]receiptItem, 0, len(sale.Items))
	for _, it := range sale.Items {
		items = append(items, receiptItem{
			SaleItem:  it,
			LineTotal: roundMoney(it.UnitPrice * float64(it.Quantity)),
		})
	}

	var sb strings.Builder
	err = receiptTmpl.Execute(&sb, struct {
		Business *models.Business
		Sale     receiptSale
		Printed  string
	}{
		Business: biz,
		Sale: receiptSale{
			ID:            sale.ID,
			Items:         items,
			Subtotal:      sale.Subtotal,
			TaxAmount:     sale.TaxAmount,
			Total:         sale.Total,
			PaymentMethod: sale.PaymentMethod,
		},
		Printed: sale.OccurredAt.Format(time.DateTime),
	})
	if err != nil {
		return "", fmt.Errorf("render receipt for sale %d: %w", saleID, err)
	}
	return sb.String(), nil
}
