// Package memstore holds process-local implementations of the catalog
// and ledger ports, used in tests and single-node runs.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/example/inventory-order-service/internal/domain"
)

// Catalog keeps products in a mutex-guarded map. Stock mutations happen
// under the write lock, which is the per-product serialization the
// placement algorithm relies on: a conditional decrement either applies
// fully or fails without touching the record.
type Catalog struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	names    map[string]string // product name -> id
}

func NewCatalog() *Catalog {
	return &Catalog{
		products: make(map[string]domain.Product),
		names:    make(map[string]string),
	}
}

func (c *Catalog) Register(_ context.Context, p domain.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, taken := c.names[p.Name]; taken {
		return domain.ErrDuplicateName
	}
	c.products[p.ID] = p
	c.names[p.Name] = p.ID
	return nil
}

func (c *Catalog) Get(_ context.Context, id string) (domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[id]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	return p, nil
}

func (c *Catalog) List(_ context.Context) ([]domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (c *Catalog) Update(_ context.Context, id string, patch domain.ProductPatch) (domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	if patch.Name != nil && *patch.Name != p.Name {
		if _, taken := c.names[*patch.Name]; taken {
			return domain.Product{}, domain.ErrDuplicateName
		}
		delete(c.names, p.Name)
		p.Name = *patch.Name
		c.names[p.Name] = id
	}
	if patch.UnitPrice != nil {
		p.UnitPrice = *patch.UnitPrice
	}
	if patch.StockQuantity != nil {
		p.StockQuantity = *patch.StockQuantity
	}
	c.products[id] = p
	return p, nil
}

func (c *Catalog) Remove(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(c.names, p.Name)
	delete(c.products, id)
	// orders referencing the product stay as they are
	return nil
}

func (c *Catalog) DecrementStock(_ context.Context, id string, amount int) (int, error) {
	if amount <= 0 {
		return 0, domain.ErrValidation
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if p.StockQuantity < amount {
		return 0, &domain.InsufficientStockError{ProductID: id, Available: p.StockQuantity, Requested: amount}
	}
	p.StockQuantity -= amount
	c.products[id] = p
	return p.StockQuantity, nil
}

func (c *Catalog) AddStock(_ context.Context, id string, amount int) (int, error) {
	if amount <= 0 {
		return 0, domain.ErrValidation
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	p.StockQuantity += amount
	c.products[id] = p
	return p.StockQuantity, nil
}

var _ domain.ProductCatalog = (*Catalog)(nil)
