package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pixelmart/storefront/internal/cart/domain"
	"github.com/pixelmart/storefront/pkg/apperror"
)

// Repository persists one cart document per user: a carts row marking that
// the document exists, and one cart_items row per product. Save rewrites the
// whole item set in a transaction, which gives whole-document last-write-wins
// semantics between concurrent mutations from the same user.
type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS carts (
		user_id TEXT PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS cart_items (
		user_id TEXT NOT NULL REFERENCES carts(user_id) ON DELETE CASCADE,
		product_id TEXT NOT NULL,
		quantity INT NOT NULL CHECK (quantity > 0),
		PRIMARY KEY (user_id, product_id)
	)`)
	return err
}

func (r *Repository) Get(ctx context.Context, userID string) (domain.Cart, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM carts WHERE user_id=$1)`, userID).Scan(&exists)
	if err != nil {
		return domain.Cart{}, err
	}
	if !exists {
		return domain.Cart{}, apperror.New(apperror.CodeNotFound, "cart not found")
	}

	rows, err := r.pool.Query(ctx, `SELECT product_id, quantity FROM cart_items WHERE user_id=$1`, userID)
	if err != nil {
		return domain.Cart{}, err
	}
	defer rows.Close()

	cart := domain.New(userID)
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ProductID, &item.Quantity); err != nil {
			return domain.Cart{}, err
		}
		cart.Items = append(cart.Items, item)
	}
	return cart, rows.Err()
}

func (r *Repository) Save(ctx context.Context, cart domain.Cart) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	now := time.Now().UTC()
	_, err = tx.Exec(ctx, `INSERT INTO carts (user_id, created_at, updated_at) VALUES ($1,$2,$2)
		ON CONFLICT (user_id) DO UPDATE SET updated_at=$2`, cart.UserID, now)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id=$1`, cart.UserID)
	if err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, item := range cart.Items {
		batch.Queue(`INSERT INTO cart_items (user_id, product_id, quantity) VALUES ($1,$2,$3)`,
			cart.UserID, item.ProductID, item.Quantity)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
