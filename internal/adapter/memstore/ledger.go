package memstore

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/example/inventory-order-service/internal/domain"
)

// Ledger keeps orders in a mutex-guarded map, scoped to their owning
// principal on every read.
type Ledger struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

func NewLedger() *Ledger {
	return &Ledger{orders: make(map[string]domain.Order)}
}

func (l *Ledger) Insert(_ context.Context, o domain.Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	o.LineItems = slices.Clone(o.LineItems)
	l.orders[o.ID] = o
	return nil
}

func (l *Ledger) ListByPrincipal(_ context.Context, principalID string) ([]domain.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.Order, 0)
	for _, o := range l.orders {
		if o.PrincipalID == principalID {
			o.LineItems = slices.Clone(o.LineItems)
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PlacedAt.Equal(out[j].PlacedAt) {
			return out[i].PlacedAt.Before(out[j].PlacedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (l *Ledger) Get(_ context.Context, principalID, orderID string) (domain.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	o, ok := l.orders[orderID]
	if !ok || o.PrincipalID != principalID {
		// a foreign order looks exactly like a missing one
		return domain.Order{}, domain.ErrNotFound
	}
	o.LineItems = slices.Clone(o.LineItems)
	return o, nil
}

func (l *Ledger) Delete(_ context.Context, principalID, orderID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	o, ok := l.orders[orderID]
	if !ok || o.PrincipalID != principalID {
		return domain.ErrNotFound
	}
	delete(l.orders, orderID)
	return nil
}

var _ domain.OrderLedger = (*Ledger)(nil)
