package application

import (
	"context"

	"github.com/pixelmart/storefront/internal/catalog/domain"
)

type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	GetMany(ctx context.Context, ids []string) (map[string]domain.Product, error)
	Create(ctx context.Context, p domain.Product) error
	Update(ctx context.Context, p domain.Product) error
	Delete(ctx context.Context, id string) error
}

// Cache is the read-through cache in front of Get. A miss is not an error.
type Cache interface {
	Get(ctx context.Context, id string) (domain.Product, bool, error)
	Set(ctx context.Context, p domain.Product) error
	Invalidate(ctx context.Context, id string) error
}
