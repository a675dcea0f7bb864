package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/reptitrack/reptitrack-backend/internal/modules/catalog"
	"github.com/reptitrack/reptitrack-backend/internal/modules/inventory"
	"github.com/shopspring/decimal"
)

func newService() catalog.Service {
	return catalog.NewService(inventory.NewMemoryStore())
}

func validRequest() catalog.ProductRequest {
	return catalog.ProductRequest{
		Name:          "Heat Lamp",
		Category:      "Supplies",
		StockQuantity: 4,
		Supplier:      "ZooMed",
		Price:         decimal.RequireFromString("29.99"),
		MinStockLevel: 1,
	}
}

func TestCreateAssignsFreshID(t *testing.T) {
	t.Parallel()

	svc := newService()
	first, err := svc.CreateProduct(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	second, err := svc.CreateProduct(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("create second product: %v", err)
	}
	if first.ID == 0 || second.ID == 0 {
		t.Fatalf("ids = %d, %d, want non-zero", first.ID, second.ID)
	}
	if first.ID == second.ID {
		t.Fatalf("both products got id %d, want unique ids", first.ID)
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*catalog.ProductRequest)
	}{
		{"missing name", func(r *catalog.ProductRequest) { r.Name = "" }},
		{"unknown category", func(r *catalog.ProductRequest) { r.Category = "Reptiles" }},
		{"lowercase category", func(r *catalog.ProductRequest) { r.Category = "supplies" }},
		{"negative stock", func(r *catalog.ProductRequest) { r.StockQuantity = -1 }},
		{"negative price", func(r *catalog.ProductRequest) { r.Price = decimal.RequireFromString("-0.01") }},
		{"negative min stock", func(r *catalog.ProductRequest) { r.MinStockLevel = -5 }},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newService()
			req := validRequest()
			tt.mutate(&req)
			_, err := svc.CreateProduct(context.Background(), req)
			var verr *catalog.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error = %v, want *ValidationError", err)
			}
		})
	}
}

func TestUpdateMissingProductReturnsNotFound(t *testing.T) {
	t.Parallel()

	svc := newService()
	_, err := svc.UpdateProduct(context.Background(), 99, validRequest())
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("error = %v, want %v", err, catalog.ErrNotFound)
	}
}

func TestDeleteMissingProductReturnsNotFound(t *testing.T) {
	t.Parallel()

	svc := newService()
	err := svc.DeleteProduct(context.Background(), 99)
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("error = %v, want %v", err, catalog.ErrNotFound)
	}
}

func TestQuantityDefaultsToZeroWhenAbsent(t *testing.T) {
	t.Parallel()

	svc := newService()
	quantity, err := svc.Quantity(context.Background(), 42)
	if err != nil {
		t.Fatalf("quantity: %v", err)
	}
	if quantity != 0 {
		t.Fatalf("quantity = %d, want 0", quantity)
	}
}

func TestLowStockBoundary(t *testing.T) {
	t.Parallel()

	svc := newService()

	atMinimum := validRequest()
	atMinimum.Name = "Crickets"
	atMinimum.StockQuantity = 5
	atMinimum.MinStockLevel = 5
	low, err := svc.CreateProduct(context.Background(), atMinimum)
	if err != nil {
		t.Fatalf("create at-minimum product: %v", err)
	}

	aboveMinimum := validRequest()
	aboveMinimum.Name = "Mealworms"
	aboveMinimum.StockQuantity = 6
	aboveMinimum.MinStockLevel = 5
	if _, err := svc.CreateProduct(context.Background(), aboveMinimum); err != nil {
		t.Fatalf("create above-minimum product: %v", err)
	}

	got, err := svc.LowStock(context.Background())
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("low stock count = %d, want 1", len(got))
	}
	if got[0].ID != low.ID {
		t.Fatalf("low stock product = %d, want %d", got[0].ID, low.ID)
	}
}

func TestParseCategoryAcceptsClosedSetOnly(t *testing.T) {
	t.Parallel()

	for _, c := range catalog.Categories() {
		if _, err := catalog.ParseCategory(string(c)); err != nil {
			t.Fatalf("ParseCategory(%q) = %v, want nil", c, err)
		}
	}
	for _, bad := range []string{"", "animals", "Fish", "ANIMALS"} {
		if _, err := catalog.ParseCategory(bad); err == nil {
			t.Fatalf("ParseCategory(%q) = nil error, want rejection", bad)
		}
	}
}
