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

type BusinessSQLite struct {
	db *sql.DB
}

func NewBusinessSQLite(db *sql.DB) *BusinessSQLite { return &BusinessSQLite{db: db} }

var _ BusinessRepo = (*BusinessSQLite)(nil)

const businessColumns = `id, name, subdomain, currency, tax_rate, logo_url, created_at`

// Create inserts a business. Subdomain is stored lower-cased so lookups
// from the Host header are case-insensitive.
func (r *BusinessSQLite) Create(ctx context.Context, b models.Business) (int, error) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO businesses (name, subdomain, currency, tax_rate, logo_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, b.Name, strings.ToLower(b.Subdomain), b.Currency, b.TaxRate, nullIfEmpty(b.LogoURL), b.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert business %q: %w", b.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get business id: %w", err)
	}
	return int(id), nil
}

func (r *BusinessSQLite) GetByID(ctx context.Context, id int) (*models.Business, error) {
	return r.getOne(ctx, `SELECT `+businessColumns+` FROM businesses WHERE id = ?`, id)
}

func (r *BusinessSQLite) GetBySubdomain(ctx context.Context, subdomain string) (*models.Business, error) {
	return r.getOne(ctx, `SELECT `+businessColumns+` FROM businesses WHERE subdomain = ?`, strings.ToLower(subdomain))
}

func (r *BusinessSQLite) Update(ctx context.Context, b models.Business) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE businesses SET name = ?, currency = ?, tax_rate = ?, logo_url = ? WHERE id = ?
	`, b.Name, b.Currency, b.TaxRate, nullIfEmpty(b.LogoURL), b.ID)
	if err != nil {
		return fmt.Errorf("update business %d: %w", b.ID, err)
	}
	return nil
}

// getOne runs a single-row business query. Returns (nil, nil) if not found.
func (r *BusinessSQLite) getOne(ctx context.Context, query string, arg any) (*models.Business, error) {
	var (
		b       models.Business
		logoURL sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&b.ID, &b.Name, &b.Subdomain, &b.Currency, &b.TaxRate, &logoURL, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select business: %w", err)
	}
	b.LogoURL = logoURL.String
	b.CreatedAt = b.CreatedAt.UTC()
	return &b, nil
}

// nullIfEmpty maps "" to NULL for optional text columns.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
