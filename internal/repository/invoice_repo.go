package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tillpoint/internal/models"
)

type InvoiceSQLite struct {
	db *sql.DB
}

func NewInvoiceSQLite(db *sql.DB) *InvoiceSQLite { return &InvoiceSQLite{db: db} }

var _ InvoiceRepo = (*InvoiceSQLite)(nil)

const invoiceColumns = `id, business_id, sale_id, customer_id, number, status, total, issued_at, due_at`

func (r *InvoiceSQLite) Create(ctx context.Context, inv models.Invoice) (int, error) {
	if inv.IssuedAt.IsZero() {
		inv.IssuedAt = time.Now().UTC()
	}
	var dueAt any
	if !inv.DueAt.IsZero() {
		dueAt = inv.DueAt.UTC()
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO invoices (business_id, sale_id, customer_id, number, status, total, issued_at, due_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, inv.BusinessID, nullIfZero(inv.SaleID), nullIfZero(inv.CustomerID),
		inv.Number, inv.Status, inv.Total, inv.IssuedAt, dueAt)
	if err != nil {
		return 0, fmt.Errorf("insert invoice %q: %w", inv.Number, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get invoice id: %w", err)
	}
	return int(id), nil
}

func (r *InvoiceSQLite) GetByID(ctx context.Context, businessID, id int) (*models.Invoice, error) {
	inv, err := scanInvoice(r.db.QueryRowContext(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE business_id = ? AND id = ?`, businessID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select invoice %d: %w", id, err)
	}
	return inv, nil
}

func (r *InvoiceSQLite) List(ctx context.Context, businessID int) ([]models.Invoice, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE business_id = ? ORDER BY issued_at DESC`, businessID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	out := make([]models.Invoice, 0, 32)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		out = append(out, *inv)
	}
	return out, rows.Err()
}

// CountForYear supports sequential invoice numbering per business and year.
func (r *InvoiceSQLite) CountForYear(ctx context.Context, businessID, year int) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM invoices
		WHERE business_id = ? AND strftime('%Y', issued_at) = ?
	`, businessID, fmt.Sprintf("%04d", year)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count invoices for %d: %w", year, err)
	}
	return n, nil
}

func (r *InvoiceSQLite) SetStatus(ctx context.Context, businessID, id int, status string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET status = ? WHERE business_id = ? AND id = ?`, status, businessID, id)
	if err != nil {
		return fmt.Errorf("set invoice %d status: %w", id, err)
	}
	return nil
}

func scanInvoice(row rowScanner) (*models.Invoice, error) {
	var (
		inv        models.Invoice
		saleID     sql.NullInt64
		customerID sql.NullInt64
		dueAt      sql.NullTime
	)
	if err := row.Scan(&inv.ID, &inv.BusinessID, &saleID, &customerID,
		&inv.Number, &inv.Status, &inv.Total, &inv.IssuedAt, &dueAt); err != nil {
		return nil, err
	}
	inv.SaleID = int(saleID.Int64)
	inv.CustomerID = int(customerID.Int64)
	inv.IssuedAt = inv.IssuedAt.UTC()
	if dueAt.Valid {
		inv.DueAt = dueAt.Time.UTC()
	}
	return &inv, nil
}
