package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/example/inventory-order-service/internal/domain"
)

// ListOrders returns the caller's orders expanded against the current
// catalog. An empty result is a normal outcome, not an error.
type ListOrders struct {
	Ledger  domain.OrderLedger
	Catalog domain.ProductCatalog
}

func (uc ListOrders) Execute(ctx context.Context, principalID string) ([]domain.OrderView, error) {
	orders, err := uc.Ledger.ListByPrincipal(ctx, principalID)
	if err != nil {
		return nil, err
	}
	views := make([]domain.OrderView, 0, len(orders))
	for _, o := range orders {
		v, err := expandOrder(ctx, uc.Catalog, o)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// GetOrder fetches one order scoped to the caller. Orders owned by a
// different principal are reported as not found.
type GetOrder struct {
	Ledger  domain.OrderLedger
	Catalog domain.ProductCatalog
}

func (uc GetOrder) Execute(ctx context.Context, principalID, orderID string) (domain.OrderView, error) {
	o, err := uc.Ledger.Get(ctx, principalID, orderID)
	if err != nil {
		return domain.OrderView{}, err
	}
	return expandOrder(ctx, uc.Catalog, o)
}

// DeleteOrder removes one of the caller's orders. Like GetOrder it fails
// closed on foreign orders.
type DeleteOrder struct {
	Ledger domain.OrderLedger
}

func (uc DeleteOrder) Execute(ctx context.Context, principalID, orderID string) error {
	return uc.Ledger.Delete(ctx, principalID, orderID)
}

// expandOrder resolves each line item against the catalog. A deleted
// product does not fail the read: the item is marked unresolved and
// skipped from the total, which is then a lower bound.
func expandOrder(ctx context.Context, catalog domain.ProductCatalog, o domain.Order) (domain.OrderView, error) {
	v := domain.OrderView{
		ID:          o.ID,
		PrincipalID: o.PrincipalID,
		LineItems:   make([]domain.LineItemView, 0, len(o.LineItems)),
		PlacedAt:    o.PlacedAt,
		Total:       decimal.Zero,
	}
	for _, it := range o.LineItems {
		p, err := catalog.Get(ctx, it.ProductID)
		if errors.Is(err, domain.ErrNotFound) {
			v.LineItems = append(v.LineItems, domain.LineItemView{
				ProductID:  it.ProductID,
				Quantity:   it.Quantity,
				Unresolved: true,
			})
			continue
		}
		if err != nil {
			return domain.OrderView{}, err
		}
		v.LineItems = append(v.LineItems, domain.LineItemView{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Product:   &p,
		})
		v.Total = v.Total.Add(p.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return v, nil
}
