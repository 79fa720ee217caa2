package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/inventory-order-service/internal/domain"
)

const uniqueViolation = "23505"

// PostgresCatalog implements the product catalog on Postgres. The stock
// decrement is a single conditional UPDATE, so concurrent orders against
// the same product serialize on the row and stock can never go negative.
type PostgresCatalog struct {
	Pool *pgxpool.Pool
}

func NewPostgresCatalog(pool *pgxpool.Pool) *PostgresCatalog {
	return &PostgresCatalog{Pool: pool}
}

func (r *PostgresCatalog) Register(ctx context.Context, p domain.Product) error {
	_, err := r.Pool.Exec(ctx, `INSERT INTO products(id, name, unit_price, stock_quantity)
        VALUES($1, $2, $3, $4)`, p.ID, p.Name, p.UnitPrice, p.StockQuantity)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateName
	}
	return err
}

func (r *PostgresCatalog) Get(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	err := r.Pool.QueryRow(ctx, `SELECT id, name, unit_price, stock_quantity
        FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.UnitPrice, &p.StockQuantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, domain.ErrNotFound
	}
	return p, err
}

func (r *PostgresCatalog) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.Pool.Query(ctx, `SELECT id, name, unit_price, stock_quantity
        FROM products ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.UnitPrice, &p.StockQuantity); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresCatalog) Update(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, error) {
	var p domain.Product
	err := r.Pool.QueryRow(ctx, `UPDATE products SET
            name = COALESCE($2::text, name),
            unit_price = COALESCE($3::numeric, unit_price),
            stock_quantity = COALESCE($4::integer, stock_quantity)
        WHERE id = $1
        RETURNING id, name, unit_price, stock_quantity`,
		id, patch.Name, patch.UnitPrice, patch.StockQuantity).
		Scan(&p.ID, &p.Name, &p.UnitPrice, &p.StockQuantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, domain.ErrNotFound
	}
	if isUniqueViolation(err) {
		return domain.Product{}, domain.ErrDuplicateName
	}
	return p, err
}

func (r *PostgresCatalog) Remove(ctx context.Context, id string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	// orders referencing the product are deliberately left alone
	return nil
}

// DecrementStock applies "decrement by amount only if enough is left" as
// one statement. A missed update is disambiguated with a follow-up read:
// the product is either gone or short on stock.
func (r *PostgresCatalog) DecrementStock(ctx context.Context, id string, amount int) (int, error) {
	if amount <= 0 {
		return 0, domain.ErrValidation
	}
	var remaining int
	err := r.Pool.QueryRow(ctx, `UPDATE products SET stock_quantity = stock_quantity - $2
        WHERE id = $1 AND stock_quantity >= $2
        RETURNING stock_quantity`, id, amount).Scan(&remaining)
	if err == nil {
		return remaining, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}
	var available int
	err = r.Pool.QueryRow(ctx, `SELECT stock_quantity FROM products WHERE id = $1`, id).Scan(&available)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return 0, &domain.InsufficientStockError{ProductID: id, Available: available, Requested: amount}
}

func (r *PostgresCatalog) AddStock(ctx context.Context, id string, amount int) (int, error) {
	if amount <= 0 {
		return 0, domain.ErrValidation
	}
	var remaining int
	err := r.Pool.QueryRow(ctx, `UPDATE products SET stock_quantity = stock_quantity + $2
        WHERE id = $1 RETURNING stock_quantity`, id, amount).Scan(&remaining)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	return remaining, err
}

var _ domain.ProductCatalog = (*PostgresCatalog)(nil)

// PostgresLedger implements the order ledger on Postgres. Line items are
// stored as a jsonb payload next to the owning principal.
type PostgresLedger struct {
	Pool *pgxpool.Pool
}

func NewPostgresLedger(pool *pgxpool.Pool) *PostgresLedger {
	return &PostgresLedger{Pool: pool}
}

func (r *PostgresLedger) Insert(ctx context.Context, o domain.Order) error {
	items, err := json.Marshal(o.LineItems)
	if err != nil {
		return fmt.Errorf("encode line items: %w", err)
	}
	_, err = r.Pool.Exec(ctx, `INSERT INTO orders(id, principal_id, line_items, placed_at)
        VALUES($1, $2, $3, $4)`, o.ID, o.PrincipalID, items, o.PlacedAt)
	return err
}

func (r *PostgresLedger) ListByPrincipal(ctx context.Context, principalID string) ([]domain.Order, error) {
	rows, err := r.Pool.Query(ctx, `SELECT id, principal_id, line_items, placed_at
        FROM orders WHERE principal_id = $1 ORDER BY placed_at, id`, principalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *PostgresLedger) Get(ctx context.Context, principalID, orderID string) (domain.Order, error) {
	row := r.Pool.QueryRow(ctx, `SELECT id, principal_id, line_items, placed_at
        FROM orders WHERE id = $1 AND principal_id = $2`, orderID, principalID)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, domain.ErrNotFound
	}
	return o, err
}

func (r *PostgresLedger) Delete(ctx context.Context, principalID, orderID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM orders WHERE id = $1 AND principal_id = $2`,
		orderID, principalID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ domain.OrderLedger = (*PostgresLedger)(nil)

func scanOrder(row pgx.Row) (domain.Order, error) {
	var o domain.Order
	var items []byte
	if err := row.Scan(&o.ID, &o.PrincipalID, &items, &o.PlacedAt); err != nil {
		return domain.Order{}, err
	}
	if err := json.Unmarshal(items, &o.LineItems); err != nil {
		return domain.Order{}, fmt.Errorf("decode line items: %w", err)
	}
	return o, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// EnsureSchema creates the tables if they are missing. The non-negative
// stock check backs up the conditional decrement at the storage level.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS products (
  id             text PRIMARY KEY,
  name           text NOT NULL UNIQUE,
  unit_price     numeric NOT NULL CHECK (unit_price >= 0),
  stock_quantity integer NOT NULL CHECK (stock_quantity >= 0)
);
CREATE TABLE IF NOT EXISTS orders (
  id           text PRIMARY KEY,
  principal_id text NOT NULL,
  line_items   jsonb NOT NULL,
  placed_at    timestamptz NOT NULL
);
CREATE INDEX IF NOT EXISTS orders_principal_idx ON orders(principal_id);
`)
	return err
}
