package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pixelmart/storefront/internal/order/domain"
	"github.com/pixelmart/storefront/pkg/apperror"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			payment_method TEXT NOT NULL,
			shipping_address JSONB NOT NULL,
			subtotal DOUBLE PRECISION NOT NULL,
			tax DOUBLE PRECISION NOT NULL,
			shipping_fee DOUBLE PRECISION NOT NULL,
			total DOUBLE PRECISION NOT NULL,
			status TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS orders_user_id_idx ON orders (user_id)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			order_id TEXT NOT NULL REFERENCES orders(id),
			product_id TEXT NOT NULL,
			title TEXT NOT NULL,
			unit_price DOUBLE PRECISION NOT NULL,
			quantity INT NOT NULL CHECK (quantity > 0),
			PRIMARY KEY (order_id, product_id)
		)`,
		`CREATE TABLE IF NOT EXISTS outbox (
			id BIGSERIAL PRIMARY KEY,
			aggregate_type TEXT NOT NULL,
			aggregate_id TEXT NOT NULL,
			type TEXT NOT NULL,
			payload JSONB NOT NULL,
			traceparent TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			relay_id TEXT,
			lease_until TIMESTAMPTZ,
			retry_count INT NOT NULL DEFAULT 0,
			last_error TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
	for _, stmt := range stmts {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// CreateWithCartClear writes the order snapshot, its line items, the
// OrderCreated outbox row and the cart-items delete in one transaction. The
// carts row itself stays, so the cart is cleared, not deleted.
func (r *Repository) CreateWithCartClear(ctx context.Context, o domain.Order, payload []byte, traceparent string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	addr, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `INSERT INTO orders
		(id, user_id, payment_method, shipping_address, subtotal, tax, shipping_fee, total, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		o.ID, o.UserID, o.PaymentMethod, addr, o.Subtotal, o.Tax, o.ShippingFee, o.Total, o.Status, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, item := range o.Items {
		batch.Queue(`INSERT INTO order_items (order_id, product_id, title, unit_price, quantity)
			VALUES ($1,$2,$3,$4,$5)`,
			o.ID, item.ProductID, item.Title, item.UnitPrice, item.Quantity)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `INSERT INTO outbox (aggregate_type, aggregate_id, type, payload, traceparent)
		VALUES ('order',$1,$2,$3,$4)`,
		o.ID, domain.EventOrderCreated, payload, traceparent)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id=$1`, o.UserID)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

const orderColumns = `id, user_id, payment_method, shipping_address, subtotal, tax, shipping_fee, total, status, created_at, updated_at`

func scanOrder(row pgx.Row) (domain.Order, error) {
	var o domain.Order
	var addr []byte
	err := row.Scan(&o.ID, &o.UserID, &o.PaymentMethod, &addr, &o.Subtotal, &o.Tax,
		&o.ShippingFee, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return domain.Order{}, err
	}
	if err := json.Unmarshal(addr, &o.ShippingAddress); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func (r *Repository) Get(ctx context.Context, id string) (domain.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, apperror.New(apperror.CodeNotFound, "order not found")
	}
	if err != nil {
		return domain.Order{}, err
	}

	rows, err := r.pool.Query(ctx, `SELECT product_id, title, unit_price, quantity FROM order_items WHERE order_id=$1`, id)
	if err != nil {
		return domain.Order{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Title, &item.UnitPrice, &item.Quantity); err != nil {
			return domain.Order{}, err
		}
		o.Items = append(o.Items, item)
	}
	return o, rows.Err()
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`, userID)
}

func (r *Repository) ListAll(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	index := map[string]int{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	itemRows, err := r.pool.Query(ctx,
		`SELECT order_id, product_id, title, unit_price, quantity FROM order_items WHERE order_id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var orderID string
		var item domain.OrderItem
		if err := itemRows.Scan(&orderID, &item.ProductID, &item.Title, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, err
		}
		i := index[orderID]
		orders[i].Items = append(orders[i].Items, item)
	}
	return orders, itemRows.Err()
}

func (r *Repository) UpdateStatusWithOutbox(ctx context.Context, id string, status domain.OrderStatus, traceparent string) (domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.Order{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var prev domain.OrderStatus
	err = tx.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1 FOR UPDATE`, id).Scan(&prev)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, apperror.New(apperror.CodeNotFound, "order not found")
	}
	if err != nil {
		return domain.Order{}, err
	}

	_, err = tx.Exec(ctx, `UPDATE orders SET status=$2, updated_at=now() WHERE id=$1`, id, status)
	if err != nil {
		return domain.Order{}, err
	}

	payload, err := json.Marshal(domain.OrderStatusChanged{OrderID: id, From: prev, To: status})
	if err != nil {
		return domain.Order{}, err
	}
	_, err = tx.Exec(ctx, `INSERT INTO outbox (aggregate_type, aggregate_id, type, payload, traceparent)
		VALUES ('order',$1,$2,$3,$4)`,
		id, domain.EventOrderStatusChanged, payload, traceparent)
	if err != nil {
		return domain.Order{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Order{}, err
	}
	return r.Get(ctx, id)
}
