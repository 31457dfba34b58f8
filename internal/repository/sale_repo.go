package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"tillpoint/internal/models"
)

type SaleSQLite struct {
	db *sql.DB
}

func NewSaleSQLite(db *sql.DB) *SaleSQLite { return &SaleSQLite{db: db} }

var _ SaleRepo = (*SaleSQLite)(nil)

// Create inserts the sale and its line items in one transaction.
func (r *SaleSQLite) Create(ctx context.Context, s models.Sale) (int, error) {
	if s.OccurredAt.IsZero() {
		s.OccurredAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin sale transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO sales (business_id, customer_id, cashier_id, subtotal, tax_amount, total, payment_method, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, s.BusinessID, nullIfZero(s.CustomerID), s.CashierID, s.Subtotal, s.TaxAmount, s.Total,
		strings.ToUpper(s.PaymentMethod), s.OccurredAt)
	if err != nil {
		return 0, fmt.Errorf("insert sale: %w", err)
	}
	saleID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get sale id: %w", err)
	}

	for _, it := range s.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO sale_items (sale_id, product_id, product_name, quantity, unit_price)
			VALUES (?, ?, ?, ?, ?)
		`, saleID, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice); err != nil {
			return 0, fmt.Errorf("insert sale item %q: %w", it.ProductName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit sale: %w", err)
	}
	return int(saleID), nil
}

func (r *SaleSQLite) GetByID(ctx context.Context, businessID, id int) (*models.Sale, error) {
	var (
		s          models.Sale
		customerID sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, business_id, customer_id, cashier_id, subtotal, tax_amount, total, payment_method, occurred_at
		FROM sales WHERE business_id = ? AND id = ?
	`, businessID, id).Scan(&s.ID, &s.BusinessID, &customerID, &s.CashierID,
		&s.Subtotal, &s.TaxAmount, &s.Total, &s.PaymentMethod, &s.OccurredAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select sale %d: %w", id, err)
	}
	s.CustomerID = int(customerID.Int64)
	s.OccurredAt = s.OccurredAt.UTC()

	items, err := r.items(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return &s, nil
}

// List returns sales in [from, to] (either bound optional), newest first.
// Line items are loaded per sale; sale volume per business/day is modest.
func (r *SaleSQLite) List(ctx context.Context, businessID int, from, to time.Time) ([]models.Sale, error) {
	conds := []string{"business_id = ?"}
	args := []any{businessID}
	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC())
	}

	q := `SELECT id, business_id, customer_id, cashier_id, subtotal, tax_amount, total, payment_method, occurred_at
		FROM sales WHERE ` + strings.Join(conds, " AND ") + ` ORDER BY occurred_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	out := make([]models.Sale, 0, 64)
	for rows.Next() {
		var (
			s          models.Sale
			customerID sql.NullInt64
		)
		if err := rows.Scan(&s.ID, &s.BusinessID, &customerID, &s.CashierID,
			&s.Subtotal, &s.TaxAmount, &s.Total, &s.PaymentMethod, &s.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		s.CustomerID = int(customerID.Int64)
		s.OccurredAt = s.OccurredAt.UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		items, err := r.items(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (r *SaleSQLite) items(ctx context.Context, saleID int) ([]models.SaleItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, product_name, quantity, unit_price
		FROM sale_items WHERE sale_id = ? ORDER BY id ASC
	`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list items for sale %d: %w", saleID, err)
	}
	defer rows.Close()

	out := make([]models.SaleItem, 0, 8)
	for rows.Next() {
		var it models.SaleItem
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
