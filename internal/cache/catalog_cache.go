package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"storefront/internal/service"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const catalogPrefix = "catalog:"

// CatalogCache хранит страницы каталога в JSON с TTL.
// Любая запись в каталог или оформленный заказ сбрасывает весь префикс.
type CatalogCache struct {
	rc  *RedisClient
	ttl time.Duration
}

func NewCatalogCache(rc *RedisClient, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CatalogCache{rc: rc, ttl: ttl}
}

func (c *CatalogCache) GetPage(ctx context.Context, key string) (*service.CatalogPage, bool, error) {
	raw, err := c.rc.client.Get(ctx, catalogPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var page service.CatalogPage
	if err := json.Unmarshal(raw, &page); err != nil {
		// битая запись: считаем промахом и перезапишем
		c.rc.log.Warn("catalog cache entry corrupted", zap.String("key", key), zap.Error(err))
		return nil, false, nil
	}
	return &page, true, nil
}

func (c *CatalogCache) SetPage(ctx context.Context, key string, page *service.CatalogPage) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.rc.client.Set(ctx, catalogPrefix+key, raw, c.ttl).Err()
}

func (c *CatalogCache) Invalidate(ctx context.Context) error {
	n, err := c.rc.deleteByPattern(ctx, catalogPrefix+"*")
	if err != nil {
		return err
	}
	c.rc.log.Debug("catalog cache invalidated", zap.Int("keys", n))
	return nil
}
