package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tillpoint/internal/models"
)

type CatalogSQLite struct {
	db *sql.DB
}

func NewCatalogSQLite(db *sql.DB) *CatalogSQLite { return &CatalogSQLite{db: db} }

var _ CatalogRepo = (*CatalogSQLite)(nil)

const productColumns = `id, business_id, category_id, name, sku, barcode, price, stock, updated_at`

func (r *CatalogSQLite) CreateCategory(ctx context.Context, c models.Category) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (business_id, name) VALUES (?, ?)`, c.BusinessID, c.Name)
	if err != nil {
		return 0, fmt.Errorf("insert category %q: %w", c.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get category id: %w", err)
	}
	return int(id), nil
}

func (r *CatalogSQLite) ListCategories(ctx context.Context, businessID int) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, business_id, name FROM categories WHERE business_id = ? ORDER BY name ASC`, businessID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	out := make([]models.Category, 0, 16)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.BusinessID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CatalogSQLite) DeleteCategory(ctx context.Context, businessID, id int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM categories WHERE business_id = ? AND id = ?`, businessID, id)
	if err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	return nil
}

func (r *CatalogSQLite) CreateProduct(ctx context.Context, p models.Product) (int, error) {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO products (business_id, category_id, name, sku, barcode, price, stock, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, p.BusinessID, nullIfZero(p.CategoryID), p.Name, nullIfEmpty(p.SKU), nullIfEmpty(p.Barcode),
		p.Price, p.Stock, p.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert product %q: %w", p.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get product id: %w", err)
	}
	return int(id), nil
}

func (r *CatalogSQLite) GetProduct(ctx context.Context, businessID, id int) (*models.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE business_id = ? AND id = ?`, businessID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select product %d: %w", id, err)
	}
	return p, nil
}

func (r *CatalogSQLite) ListProducts(ctx context.Context, businessID int) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE business_id = ? ORDER BY name ASC`, businessID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := make([]models.Product, 0, 64)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *CatalogSQLite) UpdateProduct(ctx context.Context, p models.Product) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products SET category_id = ?, name = ?, sku = ?, barcode = ?, price = ?, stock = ?, updated_at = ?
		WHERE business_id = ? AND id = ?
	`, nullIfZero(p.CategoryID), p.Name, nullIfEmpty(p.SKU), nullIfEmpty(p.Barcode),
		p.Price, p.Stock, time.Now().UTC(), p.BusinessID, p.ID)
	if err != nil {
		return fmt.Errorf("update product %d: %w", p.ID, err)
	}
	return nil
}

func (r *CatalogSQLite) DeleteProduct(ctx context.Context, businessID, id int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM products WHERE business_id = ? AND id = ?`, businessID, id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

// AdjustStock applies a signed delta to a product's stock.
func (r *CatalogSQLite) AdjustStock(ctx context.Context, businessID, productID, delta int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products SET stock = stock + ?, updated_at = ? WHERE business_id = ? AND id = ?
	`, delta, time.Now().UTC(), businessID, productID)
	if err != nil {
		return fmt.Errorf("adjust stock for product %d: %w", productID, err)
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var (
		p          models.Product
		categoryID sql.NullInt64
		sku        sql.NullString
		barcode    sql.NullString
	)
	if err := row.Scan(&p.ID, &p.BusinessID, &categoryID, &p.Name, &sku, &barcode,
		&p.Price, &p.Stock, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.CategoryID = int(categoryID.Int64)
	p.SKU = sku.String
	p.Barcode = barcode.String
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

// nullIfZero maps 0 to NULL for optional FK columns.
func nullIfZero(n int) any {
	if n == 0 {
		return nil
	}
	return n
}
