package inventory

import (
	"context"
	"sort"
	"sync"

	"github.com/reptitrack/reptitrack-backend/internal/modules/catalog"
)

// MemoryStore is an in-memory implementation of both the dual-table Store
// and catalog.Repository, sharing one state so reads through either side
// observe the same stock. Used by tests and local development.
type MemoryStore struct {
	mu           sync.RWMutex
	products     map[int64]*catalog.Product
	records      map[catalog.Category]map[int64]*CategoryRecord
	nextID       int64
	nextRecordID int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	records := make(map[catalog.Category]map[int64]*CategoryRecord, 4)
	for _, c := range catalog.Categories() {
		records[c] = make(map[int64]*CategoryRecord)
	}
	return &MemoryStore{
		products: make(map[int64]*catalog.Product),
		records:  records,
	}
}

// ── Store ─────────────────────────────────────────────────────────────────────

func (m *MemoryStore) CreateLinked(ctx context.Context, p *catalog.Product) (int64, error) {
	_ = ctx
	records, ok := m.records[p.Category]
	if !ok {
		_, err := catalog.ParseCategory(string(p.Category))
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.nextRecordID++
	clone := *p
	clone.ID = m.nextID
	m.products[clone.ID] = &clone
	records[clone.ID] = recordOf(m.nextRecordID, &clone)
	return clone.ID, nil
}

func (m *MemoryStore) UpdateLinked(ctx context.Context, p *catalog.Product) error {
	_ = ctx
	records, ok := m.records[p.Category]
	if !ok {
		_, err := catalog.ParseCategory(string(p.Category))
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Validate both sides before touching either, so a failure never leaves
	// them diverged.
	if _, ok := m.products[p.ID]; !ok {
		return ErrNotFound
	}
	rec, ok := records[p.ID]
	if !ok {
		return ErrNotFound
	}

	clone := *p
	m.products[p.ID] = &clone
	records[p.ID] = recordOf(rec.RecordID, &clone)
	return nil
}

func (m *MemoryStore) DeleteLinked(ctx context.Context, category catalog.Category, productID int64) error {
	_ = ctx
	records, ok := m.records[category]
	if !ok {
		_, err := catalog.ParseCategory(string(category))
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(records, productID)
	delete(m.products, productID)
	return nil
}

func (m *MemoryStore) GetRecord(ctx context.Context, category catalog.Category, productID int64) (*CategoryRecord, error) {
	_ = ctx
	records, ok := m.records[category]
	if !ok {
		_, err := catalog.ParseCategory(string(category))
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := records[productID]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *rec
	return &clone, nil
}

func (m *MemoryStore) ListByCategory(ctx context.Context, category catalog.Category) ([]*CategoryRecord, error) {
	_ = ctx
	records, ok := m.records[category]
	if !ok {
		_, err := catalog.ParseCategory(string(category))
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*CategoryRecord, 0, len(records))
	for _, rec := range records {
		clone := *rec
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (m *MemoryStore) ApplyStockLevels(ctx context.Context, levels []StockLevel) error {
	_ = ctx

	m.mu.Lock()
	defer m.mu.Unlock()

	// Validate the whole batch first; apply only when every entry resolves.
	for _, level := range levels {
		records, ok := m.records[level.Category]
		if !ok {
			_, err := catalog.ParseCategory(string(level.Category))
			return err
		}
		if _, ok := m.products[level.ProductID]; !ok {
			return ErrNotFound
		}
		if _, ok := records[level.ProductID]; !ok {
			return ErrNotFound
		}
	}
	for _, level := range levels {
		m.products[level.ProductID].StockQuantity = level.Quantity
		m.records[level.Category][level.ProductID].StockQuantity = level.Quantity
	}
	return nil
}

// ── catalog.Repository ────────────────────────────────────────────────────────

func (m *MemoryStore) GetAll(ctx context.Context) ([]*catalog.Product, error) {
	_ = ctx

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*catalog.Product, 0, len(m.products))
	for _, p := range m.products {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id int64) (*catalog.Product, error) {
	_ = ctx

	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *MemoryStore) GetQuantity(ctx context.Context, id int64) (int, error) {
	_ = ctx

	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.products[id]
	if !ok {
		return 0, nil
	}
	return p.StockQuantity, nil
}

func (m *MemoryStore) Create(ctx context.Context, p *catalog.Product) (int64, error) {
	_ = ctx

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	clone := *p
	clone.ID = m.nextID
	m.products[clone.ID] = &clone
	return clone.ID, nil
}

func (m *MemoryStore) Update(ctx context.Context, p *catalog.Product) error {
	_ = ctx

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[p.ID]; !ok {
		return catalog.ErrNotFound
	}
	clone := *p
	m.products[p.ID] = &clone
	return nil
}

func (m *MemoryStore) DeleteByID(ctx context.Context, id int64) error {
	_ = ctx

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func recordOf(recordID int64, p *catalog.Product) *CategoryRecord {
	return &CategoryRecord{
		RecordID:      recordID,
		ProductID:     p.ID,
		Name:          p.Name,
		Category:      p.Category,
		StockQuantity: p.StockQuantity,
		Supplier:      p.Supplier,
		Price:         p.Price,
		MinStockLevel: p.MinStockLevel,
	}
}
