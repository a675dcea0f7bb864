package inventory

import (
	"errors"

	"github.com/reptitrack/reptitrack-backend/internal/modules/catalog"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when a linked record is missing on either side
	// of a non-idempotent mutation.
	ErrNotFound = errors.New("inventory: product not found")
	// ErrSyncFailed wraps a dual-write that could not be applied atomically.
	// Callers never observe a half-applied state behind it.
	ErrSyncFailed = errors.New("inventory: synchronized write failed")
)

// CategoryRecord is the subtype row mirroring a master product. Its mutable
// fields equal the product's after every successful synchronized operation.
type CategoryRecord struct {
	RecordID      int64            `json:"record_id"`
	ProductID     int64            `json:"product_id"`
	Name          string           `json:"name"`
	Category      catalog.Category `json:"category"`
	StockQuantity int              `json:"stock_quantity"`
	Supplier      string           `json:"supplier"`
	Price         decimal.Decimal  `json:"price"`
	MinStockLevel int              `json:"min_stock_level"`
}

// StockLevel is one entry in a batch stock write: the absolute quantity a
// product should hold after a sale commits.
type StockLevel struct {
	ProductID int64
	Category  catalog.Category
	Quantity  int
}
