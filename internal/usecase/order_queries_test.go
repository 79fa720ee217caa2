package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/inventory-order-service/internal/adapter/memstore"
	"github.com/example/inventory-order-service/internal/domain"
)

func TestListOrdersEmptyIsNotAnError(t *testing.T) {
	uc := ListOrders{Ledger: memstore.NewLedger(), Catalog: memstore.NewCatalog()}
	views, err := uc.Execute(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestGetOrderFailsClosedOnForeignOrders(t *testing.T) {
	ctx := context.Background()
	catalog := memstore.NewCatalog()
	ledger := memstore.NewLedger()
	seedProduct(t, catalog, "p1", "bolt", "0.50", 5)

	place := PlaceOrder{Catalog: catalog, Ledger: ledger}
	o, err := place.Execute(ctx, "alice", []domain.LineItem{{ProductID: "p1", Quantity: 1}})
	require.NoError(t, err)

	get := GetOrder{Ledger: ledger, Catalog: catalog}
	_, err = get.Execute(ctx, "bob", o.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "foreign order must look missing")

	del := DeleteOrder{Ledger: ledger}
	assert.ErrorIs(t, del.Execute(ctx, "bob", o.ID), domain.ErrNotFound)

	// still there for the owner
	v, err := get.Execute(ctx, "alice", o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, v.ID)
}

func TestGetOrderIsIdempotent(t *testing.T) {
	ctx := context.Background()
	catalog := memstore.NewCatalog()
	ledger := memstore.NewLedger()
	seedProduct(t, catalog, "p1", "bolt", "0.50", 5)

	place := PlaceOrder{Catalog: catalog, Ledger: ledger}
	o, err := place.Execute(ctx, "alice", []domain.LineItem{{ProductID: "p1", Quantity: 2}})
	require.NoError(t, err)

	get := GetOrder{Ledger: ledger, Catalog: catalog}
	first, err := get.Execute(ctx, "alice", o.ID)
	require.NoError(t, err)
	second, err := get.Execute(ctx, "alice", o.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDeletedProductSurfacesAsUnresolved(t *testing.T) {
	ctx := context.Background()
	catalog := memstore.NewCatalog()
	ledger := memstore.NewLedger()
	seedProduct(t, catalog, "p1", "bolt", "0.50", 5)
	seedProduct(t, catalog, "p2", "nut", "0.25", 5)

	place := PlaceOrder{Catalog: catalog, Ledger: ledger}
	o, err := place.Execute(ctx, "alice", []domain.LineItem{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 4},
	})
	require.NoError(t, err)

	require.NoError(t, catalog.Remove(ctx, "p1"))

	get := GetOrder{Ledger: ledger, Catalog: catalog}
	v, err := get.Execute(ctx, "alice", o.ID)
	require.NoError(t, err, "dangling reference must not fail the read")
	require.Len(t, v.LineItems, 2)

	assert.True(t, v.LineItems[0].Unresolved)
	assert.Nil(t, v.LineItems[0].Product)
	assert.Equal(t, "p1", v.LineItems[0].ProductID)

	assert.False(t, v.LineItems[1].Unresolved)
	require.NotNil(t, v.LineItems[1].Product)
	assert.Equal(t, "nut", v.LineItems[1].Product.Name)

	// total skips the unresolved item: 4 * 0.25
	assert.True(t, v.Total.Equal(decimal.RequireFromString("1.00")), "total = %s", v.Total)

	// the same marker shows up in the list projection
	list := ListOrders{Ledger: ledger, Catalog: catalog}
	views, err := list.Execute(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, v, views[0])
}

func TestDeleteOrderRemovesOnlyThatOrder(t *testing.T) {
	ctx := context.Background()
	catalog := memstore.NewCatalog()
	ledger := memstore.NewLedger()
	seedProduct(t, catalog, "p1", "bolt", "0.50", 10)

	place := PlaceOrder{Catalog: catalog, Ledger: ledger}
	first, err := place.Execute(ctx, "alice", []domain.LineItem{{ProductID: "p1", Quantity: 1}})
	require.NoError(t, err)
	second, err := place.Execute(ctx, "alice", []domain.LineItem{{ProductID: "p1", Quantity: 1}})
	require.NoError(t, err)

	del := DeleteOrder{Ledger: ledger}
	require.NoError(t, del.Execute(ctx, "alice", first.ID))

	list := ListOrders{Ledger: ledger, Catalog: catalog}
	views, err := list.Execute(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, second.ID, views[0].ID)
}
