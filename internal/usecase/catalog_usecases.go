package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/example/inventory-order-service/internal/domain"
)

// RegisterProduct adds a product to the catalog. Names must be unique
// and the initial stock positive.
type RegisterProduct struct {
	Catalog domain.ProductCatalog
}

func (uc RegisterProduct) Execute(ctx context.Context, name string, unitPrice decimal.Decimal, stock int) (domain.Product, error) {
	if name == "" {
		return domain.Product{}, domain.ErrValidation
	}
	if unitPrice.IsNegative() {
		return domain.Product{}, domain.ErrValidation
	}
	if stock <= 0 {
		return domain.Product{}, domain.ErrInvalidStock
	}
	p := domain.Product{
		ID:            uuid.NewString(),
		Name:          name,
		UnitPrice:     unitPrice,
		StockQuantity: stock,
	}
	if err := uc.Catalog.Register(ctx, p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// GetProduct fetches a single product.
type GetProduct struct {
	Catalog domain.ProductCatalog
}

func (uc GetProduct) Execute(ctx context.Context, id string) (domain.Product, error) {
	return uc.Catalog.Get(ctx, id)
}

// ListProducts returns the whole catalog; empty is fine.
type ListProducts struct {
	Catalog domain.ProductCatalog
}

func (uc ListProducts) Execute(ctx context.Context) ([]domain.Product, error) {
	return uc.Catalog.List(ctx)
}

// UpdateProduct applies a partial edit; fields left nil keep their
// current values.
type UpdateProduct struct {
	Catalog domain.ProductCatalog
}

func (uc UpdateProduct) Execute(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, error) {
	if patch.Name != nil && *patch.Name == "" {
		return domain.Product{}, domain.ErrValidation
	}
	if patch.UnitPrice != nil && patch.UnitPrice.IsNegative() {
		return domain.Product{}, domain.ErrValidation
	}
	if patch.StockQuantity != nil && *patch.StockQuantity <= 0 {
		return domain.Product{}, domain.ErrInvalidStock
	}
	return uc.Catalog.Update(ctx, id, patch)
}

// RemoveProduct deletes a product. Orders that reference it keep their
// line items; readers see those as unresolved from now on.
type RemoveProduct struct {
	Catalog domain.ProductCatalog
}

func (uc RemoveProduct) Execute(ctx context.Context, id string) error {
	return uc.Catalog.Remove(ctx, id)
}
