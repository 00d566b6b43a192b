package application

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelmart/storefront/internal/cart/domain"
	catalog "github.com/pixelmart/storefront/internal/catalog/domain"
	"github.com/pixelmart/storefront/pkg/apperror"
)

type fakeCarts struct {
	carts map[string]domain.Cart
}

func newFakeCarts() *fakeCarts {
	return &fakeCarts{carts: map[string]domain.Cart{}}
}

func (f *fakeCarts) Get(ctx context.Context, userID string) (domain.Cart, error) {
	cart, ok := f.carts[userID]
	if !ok {
		return domain.Cart{}, apperror.New(apperror.CodeNotFound, "cart not found")
	}
	return cart, nil
}

func (f *fakeCarts) Save(ctx context.Context, cart domain.Cart) error {
	f.carts[cart.UserID] = cart
	return nil
}

type fakeProducts struct {
	products map[string]catalog.Product
}

func (f *fakeProducts) Get(ctx context.Context, id string) (catalog.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return catalog.Product{}, apperror.New(apperror.CodeNotFound, "product not found")
	}
	return p, nil
}

func (f *fakeProducts) GetMany(ctx context.Context, ids []string) (map[string]catalog.Product, error) {
	out := map[string]catalog.Product{}
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func newTestService() (*Service, *fakeCarts) {
	carts := newFakeCarts()
	products := &fakeProducts{products: map[string]catalog.Product{
		"p1": {ID: "p1", Title: "Starfall", Price: 10, Stock: 5},
		"p2": {ID: "p2", Title: "Neon Drift", Price: 35, Stock: 2},
	}}
	return NewService(slog.Default(), carts, products), carts
}

func TestAddItem_AccumulatesSameProduct(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", "p1", 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "u1", "p1", 2)
	require.NoError(t, err)
	view, err := svc.AddItem(ctx, "u1", "p1", 3)
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, 6, view.Items[0].Quantity)
	assert.Equal(t, "Starfall", view.Items[0].Product.Title)
}

func TestAddItem_DefaultsQuantityToOne(t *testing.T) {
	svc, _ := newTestService()

	view, err := svc.AddItem(context.Background(), "u1", "p1", 0)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Quantity)
}

func TestAddItem_UnknownProduct(t *testing.T) {
	svc, carts := newTestService()

	_, err := svc.AddItem(context.Background(), "u1", "ghost", 1)
	assert.Equal(t, apperror.CodeNotFound, apperror.Code(err))
	assert.NotContains(t, carts.carts, "u1", "no cart is created for a failed add")
}

func TestAddItem_IgnoresStock(t *testing.T) {
	// Stock is not enforced at add time. This pins the current behavior so a
	// future stock check is a deliberate, visible change.
	svc, _ := newTestService()

	view, err := svc.AddItem(context.Background(), "u1", "p2", 999)
	require.NoError(t, err)
	assert.Equal(t, 999, view.Items[0].Quantity)
	assert.Equal(t, 2, view.Items[0].Product.Stock)
}

func TestSetQuantity_ZeroRemovesEntry(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", "p1", 3)
	require.NoError(t, err)
	view, err := svc.SetQuantity(ctx, "u1", "p1", 0)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	view, err = svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestSetQuantity_InsertsWhenAbsent(t *testing.T) {
	svc, _ := newTestService()

	view, err := svc.SetQuantity(context.Background(), "u1", "p2", 4)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 4, view.Items[0].Quantity)
}

func TestSetQuantity_UnknownProduct(t *testing.T) {
	// Both mutation paths resolve the product, so a dangling reference can
	// never be written through set any more than through add.
	svc, carts := newTestService()

	_, err := svc.SetQuantity(context.Background(), "u1", "ghost", 2)
	assert.Equal(t, apperror.CodeNotFound, apperror.Code(err))
	assert.NotContains(t, carts.carts, "u1")
}

func TestRemoveItem_IdempotentForAbsentProduct(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", "p1", 1)
	require.NoError(t, err)

	view, err := svc.RemoveItem(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	// Second removal of an already-absent product is not an error.
	view, err = svc.RemoveItem(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestRemoveItem_NoCartAtAll(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.RemoveItem(context.Background(), "never-shopped", "p1")
	assert.Equal(t, apperror.CodeNotFound, apperror.Code(err))
}

func TestGet_EmptyShapeForNewUser(t *testing.T) {
	svc, _ := newTestService()

	view, err := svc.Get(context.Background(), "brand-new")
	require.NoError(t, err)
	assert.NotNil(t, view.Items)
	assert.Empty(t, view.Items)
}

func TestGet_JoinsLiveProductData(t *testing.T) {
	svc, carts := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", "p1", 2)
	require.NoError(t, err)

	view, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 10.0, view.Items[0].Product.Price, "price comes from the catalog, not a snapshot")

	// Items whose product disappeared are dropped from the view but kept in
	// the stored document.
	cart := carts.carts["u1"]
	cart.Add("ghost", 1)
	carts.carts["u1"] = cart

	view, err = svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)
}
