package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/reptitrack/reptitrack-backend/internal/modules/catalog"
	"github.com/shopspring/decimal"
)

func feederRequest(name string) catalog.ProductRequest {
	return catalog.ProductRequest{
		Name:          name,
		Category:      string(catalog.CategoryFeeders),
		StockQuantity: 10,
		Supplier:      "Bug Supply Co",
		Price:         decimal.RequireFromString("0.50"),
		MinStockLevel: 5,
	}
}

func TestAddProductKeepsStoresConsistent(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	sync := NewSynchronizer(store)

	p, err := sync.AddProduct(context.Background(), feederRequest("Crickets"))
	if err != nil {
		t.Fatalf("add product: %v", err)
	}

	master, err := store.GetByID(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("get master product: %v", err)
	}
	rec, err := sync.GetRecord(context.Background(), catalog.CategoryFeeders, p.ID)
	if err != nil {
		t.Fatalf("get category record: %v", err)
	}
	assertMirrored(t, master, rec)
}

func TestUpdateProductMirrorsBothSides(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	sync := NewSynchronizer(store)

	p, err := sync.AddProduct(context.Background(), feederRequest("Crickets"))
	if err != nil {
		t.Fatalf("add product: %v", err)
	}

	updated := feederRequest("Large Crickets")
	updated.StockQuantity = 25
	updated.Price = decimal.RequireFromString("0.75")
	if _, err := sync.UpdateProduct(context.Background(), p.ID, updated); err != nil {
		t.Fatalf("update product: %v", err)
	}

	master, err := store.GetByID(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("get master product: %v", err)
	}
	if master.Name != "Large Crickets" || master.StockQuantity != 25 {
		t.Fatalf("master = %q/%d, want Large Crickets/25", master.Name, master.StockQuantity)
	}
	rec, err := sync.GetRecord(context.Background(), catalog.CategoryFeeders, p.ID)
	if err != nil {
		t.Fatalf("get category record: %v", err)
	}
	assertMirrored(t, master, rec)
}

func TestUpdateMissingProductReturnsNotFound(t *testing.T) {
	t.Parallel()

	sync := NewSynchronizer(NewMemoryStore())
	_, err := sync.UpdateProduct(context.Background(), 404, feederRequest("Ghost"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteRemovesBothSidesAndIsIdempotent(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	sync := NewSynchronizer(store)

	p, err := sync.AddProduct(context.Background(), feederRequest("Crickets"))
	if err != nil {
		t.Fatalf("add product: %v", err)
	}

	if err := sync.DeleteProduct(context.Background(), catalog.CategoryFeeders, p.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}
	if _, err := store.GetByID(context.Background(), p.ID); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("master lookup after delete = %v, want %v", err, catalog.ErrNotFound)
	}
	if _, err := sync.GetRecord(context.Background(), catalog.CategoryFeeders, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("record lookup after delete = %v, want %v", err, ErrNotFound)
	}

	// Deleting again must not raise.
	if err := sync.DeleteProduct(context.Background(), catalog.CategoryFeeders, p.ID); err != nil {
		t.Fatalf("repeat delete = %v, want nil", err)
	}
}

func TestUnknownCategoryRejected(t *testing.T) {
	t.Parallel()

	sync := NewSynchronizer(NewMemoryStore())
	req := feederRequest("Crickets")
	req.Category = "Rodents"
	_, err := sync.AddProduct(context.Background(), req)
	var verr *catalog.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *catalog.ValidationError", err)
	}
}

func TestApplyStockLevelsAllOrNothing(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	sync := NewSynchronizer(store)

	p, err := sync.AddProduct(context.Background(), feederRequest("Crickets"))
	if err != nil {
		t.Fatalf("add product: %v", err)
	}

	err = sync.ApplyStockLevels(context.Background(), []StockLevel{
		{ProductID: p.ID, Category: catalog.CategoryFeeders, Quantity: 3},
		{ProductID: 404, Category: catalog.CategoryFeeders, Quantity: 1},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("batch error = %v, want %v", err, ErrNotFound)
	}

	// The valid entry must not have been applied.
	quantity, err := store.GetQuantity(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("get quantity: %v", err)
	}
	if quantity != 10 {
		t.Fatalf("quantity after failed batch = %d, want 10", quantity)
	}
}

func TestApplyStockLevelsRejectsNegativeQuantity(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	sync := NewSynchronizer(store)

	p, err := sync.AddProduct(context.Background(), feederRequest("Crickets"))
	if err != nil {
		t.Fatalf("add product: %v", err)
	}

	err = sync.ApplyStockLevels(context.Background(), []StockLevel{
		{ProductID: p.ID, Category: catalog.CategoryFeeders, Quantity: -1},
	})
	var verr *catalog.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *catalog.ValidationError", err)
	}
}

func TestListCategoryOnlyContainsItsCategory(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	sync := NewSynchronizer(store)

	if _, err := sync.AddProduct(context.Background(), feederRequest("Crickets")); err != nil {
		t.Fatalf("add feeder: %v", err)
	}
	animal := feederRequest("Leopard Gecko")
	animal.Category = string(catalog.CategoryAnimals)
	if _, err := sync.AddProduct(context.Background(), animal); err != nil {
		t.Fatalf("add animal: %v", err)
	}

	feeders, err := sync.ListCategory(context.Background(), catalog.CategoryFeeders)
	if err != nil {
		t.Fatalf("list feeders: %v", err)
	}
	if len(feeders) != 1 {
		t.Fatalf("feeders count = %d, want 1", len(feeders))
	}
	if feeders[0].Name != "Crickets" {
		t.Fatalf("feeder name = %q, want Crickets", feeders[0].Name)
	}
}

func assertMirrored(t *testing.T, p *catalog.Product, rec *CategoryRecord) {
	t.Helper()
	if rec.ProductID != p.ID {
		t.Fatalf("record product_id = %d, want %d", rec.ProductID, p.ID)
	}
	if rec.Name != p.Name {
		t.Fatalf("record name = %q, want %q", rec.Name, p.Name)
	}
	if rec.StockQuantity != p.StockQuantity {
		t.Fatalf("record stock = %d, want %d", rec.StockQuantity, p.StockQuantity)
	}
	if rec.Supplier != p.Supplier {
		t.Fatalf("record supplier = %q, want %q", rec.Supplier, p.Supplier)
	}
	if !rec.Price.Equal(p.Price) {
		t.Fatalf("record price = %s, want %s", rec.Price, p.Price)
	}
	if rec.MinStockLevel != p.MinStockLevel {
		t.Fatalf("record min stock = %d, want %d", rec.MinStockLevel, p.MinStockLevel)
	}
}
