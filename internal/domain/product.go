package domain

import "github.com/shopspring/decimal"

// Product is a catalog entry. StockQuantity is the only field mutated
// outside of catalog edits: order placement decrements it, restock
// messages increase it.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity int             `json:"stock_quantity"`
}

// ProductPatch carries a partial catalog update. Nil fields keep their
// current values.
type ProductPatch struct {
	Name          *string
	UnitPrice     *decimal.Decimal
	StockQuantity *int
}
