package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/inventory-order-service/internal/adapter/memstore"
	"github.com/example/inventory-order-service/internal/domain"
)

func TestApplyRestockIncreasesStock(t *testing.T) {
	ctx := context.Background()
	catalog := memstore.NewCatalog()
	seedProduct(t, catalog, "p1", "bolt", "0.50", 5)

	uc := ApplyRestock{Catalog: catalog}
	require.NoError(t, uc.Execute(ctx, []byte(`{"product_id":"p1","amount":20}`)))

	p, err := catalog.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 25, p.StockQuantity)
}

func TestApplyRestockDropsBadMessages(t *testing.T) {
	ctx := context.Background()
	catalog := memstore.NewCatalog()
	seedProduct(t, catalog, "p1", "bolt", "0.50", 5)
	uc := ApplyRestock{Catalog: catalog}

	// none of these should error: an error would make the broker
	// redeliver a message that can never succeed
	tests := []struct {
		name string
		raw  string
	}{
		{"invalid json", `{"product_id":`},
		{"missing product id", `{"amount":10}`},
		{"non-positive amount", `{"product_id":"p1","amount":0}`},
		{"unknown product", `{"product_id":"ghost","amount":10}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, uc.Execute(ctx, []byte(tt.raw)))
		})
	}

	p, err := catalog.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.StockQuantity)
}

type failingCatalog struct {
	domain.ProductCatalog
	err error
}

func (c *failingCatalog) AddStock(context.Context, string, int) (int, error) {
	return 0, c.err
}

func TestApplyRestockPropagatesTransientFailures(t *testing.T) {
	transient := errors.New("connection reset")
	uc := ApplyRestock{Catalog: &failingCatalog{ProductCatalog: memstore.NewCatalog(), err: transient}}
	err := uc.Execute(context.Background(), []byte(`{"product_id":"p1","amount":10}`))
	assert.ErrorIs(t, err, transient, "transient failures must trigger redelivery")
}
