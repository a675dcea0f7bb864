package inventory

import (
	"context"

	"github.com/reptitrack/reptitrack-backend/internal/modules/catalog"
)

// Synchronizer keeps the master catalogue and the per-category tables
// mutually consistent for every mutation.
type Synchronizer interface {
	AddProduct(ctx context.Context, req catalog.ProductRequest) (*catalog.Product, error)
	UpdateProduct(ctx context.Context, id int64, req catalog.ProductRequest) (*catalog.Product, error)
	DeleteProduct(ctx context.Context, category catalog.Category, id int64) error
	GetRecord(ctx context.Context, category catalog.Category, id int64) (*CategoryRecord, error)
	ListCategory(ctx context.Context, category catalog.Category) ([]*CategoryRecord, error)
	ApplyStockLevels(ctx context.Context, levels []StockLevel) error
}

type synchronizer struct{ store Store }

// NewSynchronizer creates a synchronizer over the given dual-table store.
func NewSynchronizer(store Store) Synchronizer { return &synchronizer{store: store} }

func (s *synchronizer) AddProduct(ctx context.Context, req catalog.ProductRequest) (*catalog.Product, error) {
	category, err := req.Validate()
	if err != nil {
		return nil, err
	}
	p := &catalog.Product{
		Name:          req.Name,
		Category:      category,
		StockQuantity: req.StockQuantity,
		Supplier:      req.Supplier,
		Price:         req.Price,
		MinStockLevel: req.MinStockLevel,
	}
	id, err := s.store.CreateLinked(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return p, nil
}

func (s *synchronizer) UpdateProduct(ctx context.Context, id int64, req catalog.ProductRequest) (*catalog.Product, error) {
	category, err := req.Validate()
	if err != nil {
		return nil, err
	}
	p := &catalog.Product{
		ID:            id,
		Name:          req.Name,
		Category:      category,
		StockQuantity: req.StockQuantity,
		Supplier:      req.Supplier,
		Price:         req.Price,
		MinStockLevel: req.MinStockLevel,
	}
	if err := s.store.UpdateLinked(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *synchronizer) DeleteProduct(ctx context.Context, category catalog.Category, id int64) error {
	return s.store.DeleteLinked(ctx, category, id)
}

func (s *synchronizer) GetRecord(ctx context.Context, category catalog.Category, id int64) (*CategoryRecord, error) {
	return s.store.GetRecord(ctx, category, id)
}

func (s *synchronizer) ListCategory(ctx context.Context, category catalog.Category) ([]*CategoryRecord, error) {
	return s.store.ListByCategory(ctx, category)
}

func (s *synchronizer) ApplyStockLevels(ctx context.Context, levels []StockLevel) error {
	if len(levels) == 0 {
		return nil
	}
	for _, level := range levels {
		if level.Quantity < 0 {
			return &catalog.ValidationError{Field: "stock_quantity", Reason: "must not be negative"}
		}
	}
	return s.store.ApplyStockLevels(ctx, levels)
}
