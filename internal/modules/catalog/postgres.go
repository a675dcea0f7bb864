package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL products repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) GetAll(ctx context.Context) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, product_name, category, stock_quantity, supplier, price, min_stock_level
		FROM products ORDER BY product_id`)
	if err != nil {
		return nil, fmt.Errorf("catalog: fetch products: %w", err)
	}
	defer rows.Close()
	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, `
		SELECT product_id, product_name, category, stock_quantity, supplier, price, min_stock_level
		FROM products WHERE product_id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *postgresRepo) GetQuantity(ctx context.Context, id int64) (int, error) {
	var quantity int
	err := r.db.QueryRowContext(ctx,
		`SELECT stock_quantity FROM products WHERE product_id=$1`, id).Scan(&quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("catalog: fetch quantity: %w", err)
	}
	return quantity, nil
}

func (r *postgresRepo) Create(ctx context.Context, p *Product) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (product_name, category, stock_quantity, supplier, price, min_stock_level)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING product_id`,
		p.Name, p.Category, p.StockQuantity, p.Supplier, p.Price, p.MinStockLevel).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("catalog: insert product: %w", err)
	}
	return id, nil
}

func (r *postgresRepo) Update(ctx context.Context, p *Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET product_name=$1, category=$2, stock_quantity=$3, supplier=$4, price=$5, min_stock_level=$6
		WHERE product_id=$7`,
		p.Name, p.Category, p.StockQuantity, p.Supplier, p.Price, p.MinStockLevel, p.ID)
	if err != nil {
		return fmt.Errorf("catalog: update product: %w", err)
	}
	return requireRow(res)
}

func (r *postgresRepo) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE product_id=$1`, id)
	if err != nil {
		return fmt.Errorf("catalog: delete product: %w", err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ── scanner ───────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanProduct(row rowScanner) (*Product, error) {
	p := &Product{}
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.StockQuantity, &p.Supplier, &p.Price, &p.MinStockLevel)
	if err != nil {
		return nil, err
	}
	return p, nil
}
