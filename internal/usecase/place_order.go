package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/example/inventory-order-service/internal/domain"
)

const defaultCommitTimeout = 3 * time.Second

// PlaceOrder validates a requested order against the catalog and commits
// it all-or-nothing: every line item's stock decrement succeeds and the
// order is recorded, or nothing changes.
type PlaceOrder struct {
	Catalog domain.ProductCatalog
	Ledger  domain.OrderLedger
	Events  domain.OrderEventPublisher
	Log     zerolog.Logger

	// CommitTimeout bounds the commit phase; zero means the default.
	CommitTimeout time.Duration
}

// Execute runs the two-phase placement. Validation failures are reported
// in a fixed order: empty request, then quantities, then product
// existence, then stock. Only after every item passes does any state
// change.
func (uc PlaceOrder) Execute(ctx context.Context, principalID string, items []domain.LineItem) (domain.Order, error) {
	if len(items) == 0 {
		return domain.Order{}, domain.ErrNoItems
	}
	for _, it := range items {
		if it.Quantity <= 0 {
			return domain.Order{}, &domain.InvalidQuantityError{ProductID: it.ProductID, Quantity: it.Quantity}
		}
	}

	products := make(map[string]domain.Product, len(items))
	for _, it := range items {
		p, err := uc.Catalog.Get(ctx, it.ProductID)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Order{}, &domain.ProductNotFoundError{ProductID: it.ProductID}
		}
		if err != nil {
			return domain.Order{}, err
		}
		products[it.ProductID] = p
	}
	for _, it := range items {
		if p := products[it.ProductID]; it.Quantity > p.StockQuantity {
			return domain.Order{}, &domain.InsufficientStockError{
				ProductID: it.ProductID,
				Available: p.StockQuantity,
				Requested: it.Quantity,
			}
		}
	}

	// Commit phase. Once it starts the order runs to completion even if
	// the caller goes away; abandoning it after a decrement was applied
	// would leave stock out of step with the ledger.
	timeout := uc.CommitTimeout
	if timeout <= 0 {
		timeout = defaultCommitTimeout
	}
	commitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	applied := make([]domain.LineItem, 0, len(items))
	for _, it := range items {
		if _, err := uc.Catalog.DecrementStock(commitCtx, it.ProductID, it.Quantity); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				err = &domain.ProductNotFoundError{ProductID: it.ProductID}
			}
			return domain.Order{}, uc.rollback(commitCtx, applied, err)
		}
		applied = append(applied, it)
	}

	o := domain.Order{
		ID:          uuid.NewString(),
		PrincipalID: principalID,
		LineItems:   items,
		PlacedAt:    time.Now().UTC(),
	}
	if err := uc.Ledger.Insert(commitCtx, o); err != nil {
		return domain.Order{}, uc.rollback(commitCtx, applied, err)
	}

	if uc.Events != nil {
		if err := uc.Events.OrderPlaced(commitCtx, o); err != nil {
			// best effort: the order is committed, the event is not worth
			// failing it over
			uc.Log.Warn().Err(err).Str("order_id", o.ID).Msg("order placed event not published")
		}
	}
	return o, nil
}

// rollback restores stock for decrements applied before cause stopped
// the commit. If restoring fails too, the failure is escalated: the
// returned error reports the product whose figure now needs out-of-band
// reconciliation.
func (uc PlaceOrder) rollback(ctx context.Context, applied []domain.LineItem, cause error) error {
	for _, it := range applied {
		if _, err := uc.Catalog.AddStock(ctx, it.ProductID, it.Quantity); err != nil {
			inc := &domain.StockInconsistencyError{ProductID: it.ProductID, Amount: it.Quantity, Cause: err}
			uc.Log.Error().Err(inc).Str("product_id", it.ProductID).Int("amount", it.Quantity).
				Msg("commit rollback failed, stock needs reconciliation")
			return inc
		}
	}
	return cause
}
