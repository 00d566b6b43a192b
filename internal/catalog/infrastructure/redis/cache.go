package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pixelmart/storefront/internal/catalog/domain"
)

// ProductCache is a read-through cache over the catalog. Entries are
// invalidated on admin writes and expire on their own otherwise.
type ProductCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewProductCache(rdb *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{rdb: rdb, ttl: ttl}
}

func key(id string) string { return "product:" + id }

func (c *ProductCache) Get(ctx context.Context, id string) (domain.Product, bool, error) {
	raw, err := c.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Product{}, false, nil
	}
	if err != nil {
		return domain.Product{}, false, err
	}
	var p domain.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.Product{}, false, err
	}
	return p, true, nil
}

func (c *ProductCache) Set(ctx context.Context, p domain.Product) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key(p.ID), raw, c.ttl).Err()
}

func (c *ProductCache) Invalidate(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, key(id)).Err()
}
