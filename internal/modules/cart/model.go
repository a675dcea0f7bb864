package cart

import (
	"github.com/reptitrack/reptitrack-backend/internal/modules/catalog"
	"github.com/shopspring/decimal"
)

// Line is one staged cart entry. It snapshots the product's descriptive
// fields at add time; later catalogue edits do not reach it.
type Line struct {
	ProductID int64            `json:"product_id"`
	Name      string           `json:"name"`
	Category  catalog.Category `json:"category"`
	Supplier  string           `json:"supplier"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	Quantity  int              `json:"quantity"`
}

// Subtotal is the line's unit price times its quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds the single in-flight order for one session: an ordered set of
// lines keyed by product id. It is mutated only by the owning session's
// control flow.
type Cart struct {
	lines []*Line
	index map[int64]*Line
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{index: make(map[int64]*Line)}
}

// AddProduct stages one unit of the product. A repeat add bumps the
// existing line's quantity instead of duplicating it.
func (c *Cart) AddProduct(p *catalog.Product) {
	if line, ok := c.index[p.ID]; ok {
		line.Quantity++
		return
	}
	line := &Line{
		ProductID: p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Supplier:  p.Supplier,
		UnitPrice: p.Price,
		Quantity:  1,
	}
	c.lines = append(c.lines, line)
	c.index[p.ID] = line
}

// Remove drops the line for the product id; absent ids are a no-op.
func (c *Cart) Remove(productID int64) {
	if _, ok := c.index[productID]; !ok {
		return
	}
	delete(c.index, productID)
	for i, line := range c.lines {
		if line.ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
	c.index = make(map[int64]*Line)
}

// Total sums unit price times quantity over every line.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Lines returns a copy of the staged lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.lines))
	for _, line := range c.lines {
		out = append(out, *line)
	}
	return out
}
