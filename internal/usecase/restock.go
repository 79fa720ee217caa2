package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"

	"github.com/example/inventory-order-service/internal/domain"
)

// RestockMessage is the wire shape of a stock-replenishment message.
type RestockMessage struct {
	ProductID string `json:"product_id"`
	Amount    int    `json:"amount"`
}

// ApplyRestock consumes replenishment messages and raises catalog stock.
// Malformed or stale messages are dropped with a log entry so the broker
// does not redeliver them forever; only transient store failures
// propagate and trigger redelivery.
type ApplyRestock struct {
	Catalog domain.ProductCatalog
	Log     zerolog.Logger
}

func (uc ApplyRestock) Execute(ctx context.Context, raw []byte) error {
	var msg RestockMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		uc.Log.Warn().Err(err).Msg("restock message dropped: invalid json")
		return nil
	}
	if msg.ProductID == "" || msg.Amount <= 0 {
		uc.Log.Warn().Str("product_id", msg.ProductID).Int("amount", msg.Amount).
			Msg("restock message dropped: invalid payload")
		return nil
	}
	remaining, err := uc.Catalog.AddStock(ctx, msg.ProductID, msg.Amount)
	if errors.Is(err, domain.ErrNotFound) {
		uc.Log.Warn().Str("product_id", msg.ProductID).Msg("restock message dropped: unknown product")
		return nil
	}
	if err != nil {
		return err
	}
	uc.Log.Info().Str("product_id", msg.ProductID).Int("amount", msg.Amount).
		Int("stock_quantity", remaining).Msg("stock replenished")
	return nil
}
