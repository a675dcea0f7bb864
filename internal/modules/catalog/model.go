package catalog

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when an operation targets a product id that does
// not exist in the master catalogue.
var ErrNotFound = errors.New("catalog: product not found")

// Category identifies which subtype table mirrors a product. The set is
// closed; anything else is rejected at the boundary.
type Category string

const (
	CategoryAnimals    Category = "Animals"
	CategoryEnclosures Category = "Enclosures"
	CategoryFeeders    Category = "Feeders"
	CategorySupplies   Category = "Supplies"
)

// Categories lists every valid category tag in display order.
func Categories() []Category {
	return []Category{CategoryAnimals, CategoryEnclosures, CategoryFeeders, CategorySupplies}
}

// ParseCategory maps free-form input onto a category tag. Unknown tags are
// a hard input error, never defaulted.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryAnimals, CategoryEnclosures, CategoryFeeders, CategorySupplies:
		return Category(s), nil
	}
	return "", &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q (allowed: Animals, Enclosures, Feeders, Supplies)", s)}
}

// Product is an entry in the master catalogue, the single source of truth
// for price, stock, supplier and minimum stock level.
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Category      Category        `json:"category"`
	StockQuantity int             `json:"stock_quantity"`
	Supplier      string          `json:"supplier"`
	Price         decimal.Decimal `json:"price"`
	MinStockLevel int             `json:"min_stock_level"`
}

// ValidationError reports a rejected input field. Invalid input is never
// coerced.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("catalog: invalid %s: %s", e.Field, e.Reason)
}
