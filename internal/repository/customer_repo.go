package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tillpoint/internal/models"
)

type CustomerSQLite struct {
	db *sql.DB
}

func NewCustomerSQLite(db *sql.DB) *CustomerSQLite { return &CustomerSQLite{db: db} }

var _ CustomerRepo = (*CustomerSQLite)(nil)

func (r *CustomerSQLite) Create(ctx context.Context, c models.Customer) (int, error) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (business_id, name, phone, email, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, c.BusinessID, c.Name, nullIfEmpty(c.Phone), nullIfEmpty(c.Email), c.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert customer %q: %w", c.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get customer id: %w", err)
	}
	return int(id), nil
}

func (r *CustomerSQLite) GetByID(ctx context.Context, businessID, id int) (*models.Customer, error) {
	var (
		c     models.Customer
		phone sql.NullString
		email sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, business_id, name, phone, email, created_at
		FROM customers WHERE business_id = ? AND id = ?
	`, businessID, id).Scan(&c.ID, &c.BusinessID, &c.Name, &phone, &email, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select customer %d: %w", id, err)
	}
	c.Phone = phone.String
	c.Email = email.String
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}

func (r *CustomerSQLite) List(ctx context.Context, businessID int) ([]models.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, business_id, name, phone, email, created_at
		FROM customers WHERE business_id = ? ORDER BY name ASC
	`, businessID)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	out := make([]models.Customer, 0, 32)
	for rows.Next() {
		var (
			c     models.Customer
			phone sql.NullString
			email sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.BusinessID, &c.Name, &phone, &email, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		c.Phone = phone.String
		c.Email = email.String
		c.CreatedAt = c.CreatedAt.UTC()
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CustomerSQLite) Update(ctx context.Context, c models.Customer) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE customers SET name = ?, phone = ?, email = ? WHERE business_id = ? AND id = ?
	`, c.Name, nullIfEmpty(c.Phone), nullIfEmpty(c.Email), c.BusinessID, c.ID)
	if err != nil {
		return fmt.Errorf("update customer %d: %w", c.ID, err)
	}
	return nil
}

func (r *CustomerSQLite) Delete(ctx context.Context, businessID, id int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM customers WHERE business_id = ? AND id = ?`, businessID, id)
	if err != nil {
		return fmt.Errorf("delete customer %d: %w", id, err)
	}
	return nil
}
