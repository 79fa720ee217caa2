package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/example/inventory-order-service/internal/adapter/httpapi"
	"github.com/example/inventory-order-service/internal/adapter/memstore"
	"github.com/example/inventory-order-service/internal/domain"
)

type anyResolver struct{}

func (anyResolver) Resolve(_ context.Context, credential string) (string, error) {
	if credential == "" {
		return "", domain.ErrCredentialMissing
	}
	return "bench-user", nil
}

func BenchmarkHandleGetProduct(b *testing.B) {
	ctx := context.Background()
	catalog := memstore.NewCatalog()
	ledger := memstore.NewLedger()
	for i := 0; i < 1000; i++ {
		_ = catalog.Register(ctx, domain.Product{
			ID:            fmt.Sprintf("product-%d", i),
			Name:          fmt.Sprintf("product %d", i),
			UnitPrice:     decimal.NewFromInt(1),
			StockQuantity: 100,
		})
	}
	router := httpapi.NewServer(anyResolver{}, catalog, ledger, nil, zerolog.Nop()).Router

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/products/product-%d", i%1000), nil)
			req.Header.Set("Authorization", "Bearer bench-token")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			i++
		}
	})
}

func BenchmarkStockDecrement(b *testing.B) {
	ctx := context.Background()
	catalog := memstore.NewCatalog()
	_ = catalog.Register(ctx, domain.Product{
		ID:            "product-0",
		Name:          "product 0",
		UnitPrice:     decimal.NewFromInt(1),
		StockQuantity: 1,
	})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// paired so stock stays constant across iterations
		_, _ = catalog.AddStock(ctx, "product-0", 1)
		_, _ = catalog.DecrementStock(ctx, "product-0", 1)
	}
}
