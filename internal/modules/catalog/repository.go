package catalog

import "context"

// Repository defines data access for the master products table.
type Repository interface {
	GetAll(ctx context.Context) ([]*Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	// GetQuantity reports the current stock for a product. A missing id
	// yields 0 with no error; that default is part of the contract, not a
	// found/not-found signal.
	GetQuantity(ctx context.Context, id int64) (int, error)
	// Create inserts the product and returns its generated id.
	Create(ctx context.Context, p *Product) (int64, error)
	Update(ctx context.Context, p *Product) error
	DeleteByID(ctx context.Context, id int64) error
}
