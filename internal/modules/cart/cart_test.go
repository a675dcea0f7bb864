package cart_test

import (
	"testing"

	"github.com/reptitrack/reptitrack-backend/internal/modules/cart"
	"github.com/reptitrack/reptitrack-backend/internal/modules/catalog"
	"github.com/shopspring/decimal"
)

func heatLamp() *catalog.Product {
	return &catalog.Product{
		ID:            1,
		Name:          "Heat Lamp",
		Category:      catalog.CategorySupplies,
		StockQuantity: 8,
		Supplier:      "ZooMed",
		Price:         decimal.RequireFromString("29.99"),
		MinStockLevel: 1,
	}
}

func TestRepeatAddIncrementsQuantity(t *testing.T) {
	t.Parallel()

	c := cart.New()
	p := heatLamp()
	c.AddProduct(p)
	c.AddProduct(p)

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
	if lines[0].Quantity != 2 {
		t.Fatalf("quantity = %d, want 2", lines[0].Quantity)
	}
	want := p.Price.Mul(decimal.NewFromInt(2))
	if !c.Total().Equal(want) {
		t.Fatalf("total = %s, want %s", c.Total(), want)
	}
}

func TestLineSnapshotsProductAtAddTime(t *testing.T) {
	t.Parallel()

	c := cart.New()
	p := heatLamp()
	c.AddProduct(p)

	// Catalogue edits after the add must not reach the staged line.
	p.Price = decimal.RequireFromString("99.99")
	p.Name = "Mega Lamp"

	line := c.Lines()[0]
	if !line.UnitPrice.Equal(decimal.RequireFromString("29.99")) {
		t.Fatalf("unit price = %s, want 29.99", line.UnitPrice)
	}
	if line.Name != "Heat Lamp" {
		t.Fatalf("name = %q, want Heat Lamp", line.Name)
	}
}

func TestRemoveAbsentLineIsNoOp(t *testing.T) {
	t.Parallel()

	c := cart.New()
	c.AddProduct(heatLamp())
	c.Remove(42)

	if len(c.Lines()) != 1 {
		t.Fatalf("lines = %d, want 1", len(c.Lines()))
	}
}

func TestRemoveDropsLine(t *testing.T) {
	t.Parallel()

	c := cart.New()
	p := heatLamp()
	c.AddProduct(p)
	c.Remove(p.ID)

	if !c.IsEmpty() {
		t.Fatal("cart not empty after removing its only line")
	}
	if !c.Total().Equal(decimal.Zero) {
		t.Fatalf("total = %s, want 0", c.Total())
	}
}

func TestClearEmptiesCart(t *testing.T) {
	t.Parallel()

	c := cart.New()
	c.AddProduct(heatLamp())
	other := heatLamp()
	other.ID = 2
	other.Name = "Crickets"
	c.AddProduct(other)

	c.Clear()
	if !c.IsEmpty() {
		t.Fatal("cart not empty after clear")
	}
}

func TestLinesKeepInsertionOrder(t *testing.T) {
	t.Parallel()

	c := cart.New()
	first := heatLamp()
	second := heatLamp()
	second.ID = 2
	second.Name = "Crickets"
	c.AddProduct(first)
	c.AddProduct(second)
	c.AddProduct(first)

	lines := c.Lines()
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if lines[0].ProductID != first.ID || lines[1].ProductID != second.ID {
		t.Fatalf("order = [%d %d], want [%d %d]", lines[0].ProductID, lines[1].ProductID, first.ID, second.ID)
	}
}

func TestSessionsShareOneCartPerSession(t *testing.T) {
	t.Parallel()

	sessions := cart.NewSessions()
	a := sessions.Cart("till-1")
	a.AddProduct(heatLamp())

	// Same session resolves to the same cart from any view.
	if sessions.Cart("till-1").IsEmpty() {
		t.Fatal("second lookup of till-1 does not see the staged line")
	}
	// Another session gets its own cart.
	if !sessions.Cart("till-2").IsEmpty() {
		t.Fatal("till-2 sees till-1's lines")
	}
}
