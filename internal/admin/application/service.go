package application

import (
	"context"
	"log/slog"

	orderdomain "github.com/pixelmart/storefront/internal/order/domain"
	userdomain "github.com/pixelmart/storefront/internal/user/domain"
	"github.com/pixelmart/storefront/pkg/apperror"
)

type Service struct {
	log   *slog.Logger
	users UserDirectory
	stats StatsRepository
}

func NewService(log *slog.Logger, users UserDirectory, stats StatsRepository) *Service {
	return &Service{log: log, users: users, stats: stats}
}

func (s *Service) ListUsers(ctx context.Context) ([]userdomain.User, error) {
	return s.users.List(ctx)
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (s *Service) DeleteUser(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return apperror.New(apperror.CodeInvalid, "cannot delete your own account")
	}
	if err := s.users.Delete(ctx, targetID); err != nil {
		return err
	}
	s.log.Info("user deleted", "user_id", targetID, "by", actorID)
	return nil
}

type Analytics struct {
	Counts
	TotalRevenue float64             `json:"totalRevenue"`
	RecentOrders []orderdomain.Order `json:"recentOrders"`
	TopProducts  []TopProduct        `json:"topProducts"`
	SalesByMonth []MonthlySales      `json:"salesByMonth"`
}

func (s *Service) Analytics(ctx context.Context) (Analytics, error) {
	counts, err := s.stats.Counts(ctx)
	if err != nil {
		return Analytics{}, err
	}
	revenue, err := s.stats.Revenue(ctx)
	if err != nil {
		return Analytics{}, err
	}
	recent, err := s.stats.RecentOrders(ctx, 10)
	if err != nil {
		return Analytics{}, err
	}
	top, err := s.stats.TopProducts(ctx, 5)
	if err != nil {
		return Analytics{}, err
	}
	monthly, err := s.stats.SalesByMonth(ctx, 6)
	if err != nil {
		return Analytics{}, err
	}
	return Analytics{
		Counts:       counts,
		TotalRevenue: revenue,
		RecentOrders: recent,
		TopProducts:  top,
		SalesByMonth: monthly,
	}, nil
}

type DashboardStats struct {
	Counts
	TotalRevenue float64 `json:"totalRevenue"`
}

func (s *Service) Dashboard(ctx context.Context) (DashboardStats, error) {
	counts, err := s.stats.Counts(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	revenue, err := s.stats.Revenue(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	return DashboardStats{Counts: counts, TotalRevenue: revenue}, nil
}
