package postgres

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pixelmart/storefront/internal/admin/application"
	orderdomain "github.com/pixelmart/storefront/internal/order/domain"
	orderpg "github.com/pixelmart/storefront/internal/order/infrastructure/postgres"
)

// Repository answers the analytics queries straight from the order, product
// and user tables; no separate rollup tables are kept.
type Repository struct {
	log    *slog.Logger
	pool   *pgxpool.Pool
	orders *orderpg.Repository
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool, orders *orderpg.Repository) *Repository {
	return &Repository{log: log, pool: pool, orders: orders}
}

func (r *Repository) Counts(ctx context.Context) (application.Counts, error) {
	var c application.Counts
	err := r.pool.QueryRow(ctx, `SELECT
		(SELECT count(*) FROM users),
		(SELECT count(*) FROM products),
		(SELECT count(*) FROM orders)`).Scan(&c.Users, &c.Products, &c.Orders)
	return c, err
}

func (r *Repository) Revenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(sum(total), 0) FROM orders WHERE status=$1`, orderdomain.StatusDelivered).Scan(&revenue)
	return revenue, err
}

func (r *Repository) RecentOrders(ctx context.Context, limit int) ([]orderdomain.Order, error) {
	all, err := r.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *Repository) TopProducts(ctx context.Context, limit int) ([]application.TopProduct, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT product_id, max(title), sum(quantity)::int, sum(quantity * unit_price)
		FROM order_items
		GROUP BY product_id
		ORDER BY sum(quantity) DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	top := []application.TopProduct{}
	for rows.Next() {
		var t application.TopProduct
		if err := rows.Scan(&t.ProductID, &t.Title, &t.TotalSold, &t.Revenue); err != nil {
			return nil, err
		}
		top = append(top, t)
	}
	return top, rows.Err()
}

func (r *Repository) SalesByMonth(ctx context.Context, months int) ([]application.MonthlySales, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT to_char(date_trunc('month', created_at), 'Mon YYYY'), sum(total), count(*)::int
		FROM orders
		WHERE created_at >= date_trunc('month', now()) - ($1 || ' months')::interval
		  AND status = $2
		GROUP BY date_trunc('month', created_at)
		ORDER BY date_trunc('month', created_at)`, months, orderdomain.StatusDelivered)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := []application.MonthlySales{}
	for rows.Next() {
		var m application.MonthlySales
		if err := rows.Scan(&m.Month, &m.Sales, &m.OrderCount); err != nil {
			return nil, err
		}
		sales = append(sales, m)
	}
	return sales, rows.Err()
}
