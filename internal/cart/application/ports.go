package application

import (
	"context"

	"github.com/pixelmart/storefront/internal/cart/domain"
	catalog "github.com/pixelmart/storefront/internal/catalog/domain"
)

// CartRepository stores one cart document per user. Get returns a not-found
// error when the user has never had a cart; Save upserts the whole document.
type CartRepository interface {
	Get(ctx context.Context, userID string) (domain.Cart, error)
	Save(ctx context.Context, cart domain.Cart) error
}

// ProductFinder resolves product references against the live catalog.
type ProductFinder interface {
	Get(ctx context.Context, id string) (catalog.Product, error)
	GetMany(ctx context.Context, ids []string) (map[string]catalog.Product, error)
}
