package application

import (
	"context"

	orderdomain "github.com/pixelmart/storefront/internal/order/domain"
	userdomain "github.com/pixelmart/storefront/internal/user/domain"
)

type UserDirectory interface {
	List(ctx context.Context) ([]userdomain.User, error)
	Delete(ctx context.Context, id string) error
}

// StatsRepository answers the dashboard and analytics queries.
type StatsRepository interface {
	Counts(ctx context.Context) (Counts, error)
	// Revenue sums the totals of delivered orders.
	Revenue(ctx context.Context) (float64, error)
	RecentOrders(ctx context.Context, limit int) ([]orderdomain.Order, error)
	TopProducts(ctx context.Context, limit int) ([]TopProduct, error)
	SalesByMonth(ctx context.Context, months int) ([]MonthlySales, error)
}

type Counts struct {
	Users    int `json:"totalUsers"`
	Products int `json:"totalProducts"`
	Orders   int `json:"totalOrders"`
}

type TopProduct struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	TotalSold int     `json:"totalSold"`
	Revenue   float64 `json:"revenue"`
}

type MonthlySales struct {
	Month      string  `json:"month"`
	Sales      float64 `json:"sales"`
	OrderCount int     `json:"orderCount"`
}
