package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pixelmart/storefront/internal/catalog/domain"
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
	_, err := r.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price DOUBLE PRECISION NOT NULL CHECK (price >= 0),
		stock INT NOT NULL DEFAULT 0 CHECK (stock >= 0),
		category TEXT NOT NULL DEFAULT '',
		platforms TEXT[] NOT NULL DEFAULT '{}',
		rating DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`)
	return err
}

const productColumns = `id, title, description, price, stock, category, platforms, rating, created_at, updated_at`

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Stock,
		&p.Category, &p.Platforms, &p.Rating, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *Repository) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id string) (domain.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, apperror.New(apperror.CodeNotFound, "product not found")
	}
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (r *Repository) GetMany(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make(map[string]domain.Product, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products[p.ID] = p
	}
	return products, rows.Err()
}

func (r *Repository) Create(ctx context.Context, p domain.Product) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO products (`+productColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		p.ID, p.Title, p.Description, p.Price, p.Stock, p.Category, p.Platforms, p.Rating, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *Repository) Update(ctx context.Context, p domain.Product) error {
	ct, err := r.pool.Exec(ctx, `UPDATE products
		SET title=$2, description=$3, price=$4, stock=$5, category=$6, platforms=$7, rating=$8, updated_at=$9
		WHERE id=$1`,
		p.ID, p.Title, p.Description, p.Price, p.Stock, p.Category, p.Platforms, p.Rating, p.UpdatedAt)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return apperror.New(apperror.CodeNotFound, "product not found")
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return apperror.New(apperror.CodeNotFound, "product not found")
	}
	return nil
}
