package domain

import "context"

// ProductCatalog owns product records. DecrementStock is the only way
// order placement reduces stock; it must be atomic per product:
// decrement by amount only if the current quantity covers it, else fail
// without changing anything.
type ProductCatalog interface {
	Register(ctx context.Context, p Product) error
	Get(ctx context.Context, id string) (Product, error)
	List(ctx context.Context) ([]Product, error)
	// Update applies a partial edit; nil patch fields keep prior values.
	Update(ctx context.Context, id string, patch ProductPatch) (Product, error)
	// Remove deletes the product outright. Orders referencing it are
	// left untouched.
	Remove(ctx context.Context, id string) error
	// DecrementStock returns the remaining quantity, or
	// *InsufficientStockError / ErrNotFound without side effects.
	DecrementStock(ctx context.Context, id string, amount int) (int, error)
	// AddStock increases stock; used by the restock feed and by commit
	// rollback.
	AddStock(ctx context.Context, id string, amount int) (int, error)
}

// OrderLedger owns order records. Reads and deletes are scoped to the
// owning principal; an order owned by someone else is indistinguishable
// from a missing one.
type OrderLedger interface {
	Insert(ctx context.Context, o Order) error
	ListByPrincipal(ctx context.Context, principalID string) ([]Order, error)
	Get(ctx context.Context, principalID, orderID string) (Order, error)
	Delete(ctx context.Context, principalID, orderID string) error
}

// PrincipalResolver turns a raw bearer credential into a principal id.
// Failures are one of ErrCredentialMissing, ErrCredentialInvalid,
// ErrCredentialExpired; callers never inspect credential internals.
type PrincipalResolver interface {
	Resolve(ctx context.Context, credential string) (string, error)
}

// OrderEventPublisher announces committed orders to interested parties.
type OrderEventPublisher interface {
	OrderPlaced(ctx context.Context, o Order) error
}

// RestockSource delivers incoming stock-replenishment messages.
type RestockSource interface {
	// Subscribe registers the handler; ack/redelivery discipline is the
	// adapter's concern.
	Subscribe(ctx context.Context, handler func(ctx context.Context, raw []byte) error) error
}
