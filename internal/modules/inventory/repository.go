package inventory

import (
	"context"

	"github.com/reptitrack/reptitrack-backend/internal/modules/catalog"
)

// Store defines the dual-table persistence the synchronizer drives. Every
// mutation spans the products table and one category table and must be
// atomic: a failure partway leaves neither side changed.
type Store interface {
	// CreateLinked inserts the master product row first, then the category
	// row referencing its generated id, and returns that shared id.
	CreateLinked(ctx context.Context, p *catalog.Product) (int64, error)
	// UpdateLinked writes the mutable fields to both rows. ErrNotFound if
	// either side is missing.
	UpdateLinked(ctx context.Context, p *catalog.Product) error
	// DeleteLinked removes both rows. An already-missing side is tolerated;
	// only a store failure surfaces.
	DeleteLinked(ctx context.Context, category catalog.Category, productID int64) error
	GetRecord(ctx context.Context, category catalog.Category, productID int64) (*CategoryRecord, error)
	ListByCategory(ctx context.Context, category catalog.Category) ([]*CategoryRecord, error)
	// ApplyStockLevels writes the given absolute stock levels to both tables
	// for every entry in one atomic unit. Used by checkout commit, which
	// requires all-or-nothing across cart lines.
	ApplyStockLevels(ctx context.Context, levels []StockLevel) error
}
