package application

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderdomain "github.com/pixelmart/storefront/internal/order/domain"
	userdomain "github.com/pixelmart/storefront/internal/user/domain"
	"github.com/pixelmart/storefront/pkg/apperror"
)

type fakeDirectory struct {
	users   []userdomain.User
	deleted []string
}

func (f *fakeDirectory) List(ctx context.Context) ([]userdomain.User, error) {
	return f.users, nil
}

func (f *fakeDirectory) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeStats struct {
	counts  Counts
	revenue float64
	recent  []orderdomain.Order
	top     []TopProduct
	monthly []MonthlySales

	recentLimit int
	topLimit    int
	months      int
}

func (f *fakeStats) Counts(ctx context.Context) (Counts, error)    { return f.counts, nil }
func (f *fakeStats) Revenue(ctx context.Context) (float64, error) { return f.revenue, nil }

func (f *fakeStats) RecentOrders(ctx context.Context, limit int) ([]orderdomain.Order, error) {
	f.recentLimit = limit
	return f.recent, nil
}

func (f *fakeStats) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	f.topLimit = limit
	return f.top, nil
}

func (f *fakeStats) SalesByMonth(ctx context.Context, months int) ([]MonthlySales, error) {
	f.months = months
	return f.monthly, nil
}

func newTestService(dir *fakeDirectory, stats *fakeStats) *Service {
	return NewService(slog.Default(), dir, stats)
}

func TestDeleteUser_RefusesSelfDeletion(t *testing.T) {
	dir := &fakeDirectory{}
	svc := newTestService(dir, &fakeStats{})

	err := svc.DeleteUser(context.Background(), "admin-1", "admin-1")
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInvalid, apperror.Code(err))
	assert.Empty(t, dir.deleted)
}

func TestDeleteUser_RemovesOtherAccounts(t *testing.T) {
	dir := &fakeDirectory{}
	svc := newTestService(dir, &fakeStats{})

	require.NoError(t, svc.DeleteUser(context.Background(), "admin-1", "user-2"))
	assert.Equal(t, []string{"user-2"}, dir.deleted)
}

func TestAnalytics_ComposesAllSections(t *testing.T) {
	stats := &fakeStats{
		counts:  Counts{Users: 3, Products: 12, Orders: 7},
		revenue: 431.50,
		top:     []TopProduct{{ProductID: "p1", Title: "Star Raider", TotalSold: 9, Revenue: 269.91}},
		monthly: []MonthlySales{{Month: "Aug 2026", Sales: 120, OrderCount: 4}},
	}
	svc := newTestService(&fakeDirectory{}, stats)

	got, err := svc.Analytics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, stats.counts, got.Counts)
	assert.Equal(t, 431.50, got.TotalRevenue)
	assert.Equal(t, stats.top, got.TopProducts)
	assert.Equal(t, stats.monthly, got.SalesByMonth)
	assert.Equal(t, 10, stats.recentLimit)
	assert.Equal(t, 5, stats.topLimit)
	assert.Equal(t, 6, stats.months)
}

func TestDashboard_CountsAndRevenueOnly(t *testing.T) {
	stats := &fakeStats{counts: Counts{Users: 1, Products: 2, Orders: 3}, revenue: 99.90}
	svc := newTestService(&fakeDirectory{}, stats)

	got, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stats.counts, got.Counts)
	assert.Equal(t, 99.90, got.TotalRevenue)
}
