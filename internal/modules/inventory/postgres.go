package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/reptitrack/reptitrack-backend/internal/modules/catalog"
)

// categoryTables is the closed dispatch table from category tag to subtype
// table. Table names only ever come from here, never from input.
var categoryTables = map[catalog.Category]string{
	catalog.CategoryAnimals:    "animals",
	catalog.CategoryEnclosures: "enclosures",
	catalog.CategoryFeeders:    "feeders",
	catalog.CategorySupplies:   "supplies",
}

func tableFor(category catalog.Category) (string, error) {
	table, ok := categoryTables[category]
	if !ok {
		_, err := catalog.ParseCategory(string(category))
		return "", err
	}
	return table, nil
}

type postgresStore struct{ db *sql.DB }

// NewPostgresStore creates a new PostgreSQL dual-table store.
func NewPostgresStore(db *sql.DB) Store { return &postgresStore{db: db} }

func (s *postgresStore) CreateLinked(ctx context.Context, p *catalog.Product) (int64, error) {
	table, err := tableFor(p.Category)
	if err != nil {
		return 0, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: begin: %v", ErrSyncFailed, err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO products (product_name, category, stock_quantity, supplier, price, min_stock_level)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING product_id`,
		p.Name, p.Category, p.StockQuantity, p.Supplier, p.Price, p.MinStockLevel).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: insert product: %v", ErrSyncFailed, err)
	}

	_, err = tx.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (product_id, product_name, stock_quantity, supplier, price, min_stock_level)
		VALUES ($1,$2,$3,$4,$5,$6)`, table),
		id, p.Name, p.StockQuantity, p.Supplier, p.Price, p.MinStockLevel)
	if err != nil {
		return 0, fmt.Errorf("%w: insert %s record: %v", ErrSyncFailed, table, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit: %v", ErrSyncFailed, err)
	}
	return id, nil
}

func (s *postgresStore) UpdateLinked(ctx context.Context, p *catalog.Product) error {
	table, err := tableFor(p.Category)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrSyncFailed, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE products
		SET product_name=$1, stock_quantity=$2, supplier=$3, price=$4, min_stock_level=$5
		WHERE product_id=$6`,
		p.Name, p.StockQuantity, p.Supplier, p.Price, p.MinStockLevel, p.ID)
	if err != nil {
		return fmt.Errorf("%w: update product: %v", ErrSyncFailed, err)
	}
	if err := requireRow(res); err != nil {
		return err
	}

	res, err = tx.ExecContext(ctx, fmt.Sprintf(`
		UPDATE %s
		SET product_name=$1, stock_quantity=$2, supplier=$3, price=$4, min_stock_level=$5
		WHERE product_id=$6`, table),
		p.Name, p.StockQuantity, p.Supplier, p.Price, p.MinStockLevel, p.ID)
	if err != nil {
		return fmt.Errorf("%w: update %s record: %v", ErrSyncFailed, table, err)
	}
	if err := requireRow(res); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrSyncFailed, err)
	}
	return nil
}

func (s *postgresStore) DeleteLinked(ctx context.Context, category catalog.Category, productID int64) error {
	table, err := tableFor(category)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrSyncFailed, err)
	}
	defer tx.Rollback()

	// Delete is idempotent: a side that is already gone is not an error.
	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE product_id=$1`, table), productID); err != nil {
		return fmt.Errorf("%w: delete %s record: %v", ErrSyncFailed, table, err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM products WHERE product_id=$1`, productID); err != nil {
		return fmt.Errorf("%w: delete product: %v", ErrSyncFailed, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrSyncFailed, err)
	}
	return nil
}

func (s *postgresStore) GetRecord(ctx context.Context, category catalog.Category, productID int64) (*CategoryRecord, error) {
	table, err := tableFor(category)
	if err != nil {
		return nil, err
	}
	rec, err := scanRecord(category, s.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT record_id, product_id, product_name, stock_quantity, supplier, price, min_stock_level
		FROM %s WHERE product_id=$1`, table), productID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

func (s *postgresStore) ListByCategory(ctx context.Context, category catalog.Category) ([]*CategoryRecord, error) {
	table, err := tableFor(category)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT c.record_id, c.product_id, c.product_name, c.stock_quantity, c.supplier, c.price, c.min_stock_level
		FROM %s c
		JOIN products p ON c.product_id = p.product_id
		ORDER BY c.product_id`, table))
	if err != nil {
		return nil, fmt.Errorf("inventory: fetch %s: %w", table, err)
	}
	defer rows.Close()
	var records []*CategoryRecord
	for rows.Next() {
		rec, err := scanRecord(category, rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *postgresStore) ApplyStockLevels(ctx context.Context, levels []StockLevel) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrSyncFailed, err)
	}
	defer tx.Rollback()

	for _, level := range levels {
		table, err := tableFor(level.Category)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			`UPDATE products SET stock_quantity=$1 WHERE product_id=$2`,
			level.Quantity, level.ProductID)
		if err != nil {
			return fmt.Errorf("%w: update product %d: %v", ErrSyncFailed, level.ProductID, err)
		}
		if err := requireRow(res); err != nil {
			return err
		}
		res, err = tx.ExecContext(ctx,
			fmt.Sprintf(`UPDATE %s SET stock_quantity=$1 WHERE product_id=$2`, table),
			level.Quantity, level.ProductID)
		if err != nil {
			return fmt.Errorf("%w: update %s record %d: %v", ErrSyncFailed, table, level.ProductID, err)
		}
		if err := requireRow(res); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrSyncFailed, err)
	}
	return nil
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

func scanRecord(category catalog.Category, row rowScanner) (*CategoryRecord, error) {
	rec := &CategoryRecord{Category: category}
	err := row.Scan(&rec.RecordID, &rec.ProductID, &rec.Name, &rec.StockQuantity,
		&rec.Supplier, &rec.Price, &rec.MinStockLevel)
	if err != nil {
		return nil, err
	}
	return rec, nil
}
