package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

// Service defines catalogue business logic.
type Service interface {
	ListProducts(ctx context.Context) ([]*Product, error)
	GetProduct(ctx context.Context, id int64) (*Product, error)
	Quantity(ctx context.Context, id int64) (int, error)
	CreateProduct(ctx context.Context, req ProductRequest) (*Product, error)
	UpdateProduct(ctx context.Context, id int64, req ProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	// LowStock lists every product whose stock has reached or fallen below
	// its configured minimum.
	LowStock(ctx context.Context) ([]*Product, error)
}

// ProductRequest holds the data for creating or updating a product.
type ProductRequest struct {
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	StockQuantity int             `json:"stock_quantity"`
	Supplier      string          `json:"supplier"`
	Price         decimal.Decimal `json:"price"`
	MinStockLevel int             `json:"min_stock_level"`
}

// Validate rejects incomplete or negative input before it reaches a store.
func (req ProductRequest) Validate() (Category, error) {
	if req.Name == "" {
		return "", &ValidationError{Field: "name", Reason: "is required"}
	}
	category, err := ParseCategory(req.Category)
	if err != nil {
		return "", err
	}
	if req.StockQuantity < 0 {
		return "", &ValidationError{Field: "stock_quantity", Reason: "must not be negative"}
	}
	if req.Price.IsNegative() {
		return "", &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if req.MinStockLevel < 0 {
		return "", &ValidationError{Field: "min_stock_level", Reason: "must not be negative"}
	}
	return category, nil
}

type service struct{ repo Repository }

// NewService creates a new catalogue service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) ListProducts(ctx context.Context) ([]*Product, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetProduct(ctx context.Context, id int64) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Quantity(ctx context.Context, id int64) (int, error) {
	return s.repo.GetQuantity(ctx, id)
}

func (s *service) CreateProduct(ctx context.Context, req ProductRequest) (*Product, error) {
	category, err := req.Validate()
	if err != nil {
		return nil, err
	}
	p := &Product{
		Name:          req.Name,
		Category:      category,
		StockQuantity: req.StockQuantity,
		Supplier:      req.Supplier,
		Price:         req.Price,
		MinStockLevel: req.MinStockLevel,
	}
	id, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return p, nil
}

func (s *service) UpdateProduct(ctx context.Context, id int64, req ProductRequest) (*Product, error) {
	category, err := req.Validate()
	if err != nil {
		return nil, err
	}
	p := &Product{
		ID:            id,
		Name:          req.Name,
		Category:      category,
		StockQuantity: req.StockQuantity,
		Supplier:      req.Supplier,
		Price:         req.Price,
		MinStockLevel: req.MinStockLevel,
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id int64) error {
	return s.repo.DeleteByID(ctx, id)
}

func (s *service) LowStock(ctx context.Context) ([]*Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	var low []*Product
	for _, p := range products {
		if p.StockQuantity <= p.MinStockLevel {
			low = append(low, p)
		}
	}
	return low, nil
}
