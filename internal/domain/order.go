package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is an immutable record of a committed purchase. PrincipalID is
// always taken from the resolved credential, never from client input.
type Order struct {
	ID          string     `json:"id"`
	PrincipalID string     `json:"principal_id"`
	LineItems   []LineItem `json:"line_items"`
	PlacedAt    time.Time  `json:"placed_at"`
}

// LineItem references a product by id. The product may be deleted later;
// the reference is kept as-is and resolved at read time.
type LineItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderView is an order expanded against the current catalog. Total sums
// only resolved line items, so with unresolved items present it is a
// lower bound on what was ordered.
type OrderView struct {
	ID          string          `json:"id"`
	PrincipalID string          `json:"principal_id"`
	LineItems   []LineItemView  `json:"line_items"`
	PlacedAt    time.Time       `json:"placed_at"`
	Total       decimal.Decimal `json:"total"`
}

// LineItemView is a line item with its product reference resolved.
// Unresolved marks a dangling reference (product deleted after the order
// was placed); Product is nil in that case.
type LineItemView struct {
	ProductID  string   `json:"product_id"`
	Quantity   int      `json:"quantity"`
	Product    *Product `json:"product,omitempty"`
	Unresolved bool     `json:"unresolved,omitempty"`
}
