package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"storefront/internal/cart"

	"github.com/redis/go-redis/v9"
)

const cartPrefix = "cart:"

// CartPersistence хранит корзину покупателя под ключом cart:<owner>.
// TTL продлевается при каждом сохранении.
type CartPersistence struct {
	rc  *RedisClient
	ttl time.Duration
}

func NewCartPersistence(rc *RedisClient, ttl time.Duration) *CartPersistence {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &CartPersistence{rc: rc, ttl: ttl}
}

func (p *CartPersistence) Load(ctx context.Context, ownerID string) (*cart.Cart, error) {
	raw, err := p.rc.client.Get(ctx, cartPrefix+ownerID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var c cart.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (p *CartPersistence) Save(ctx context.Context, c *cart.Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return p.rc.client.Set(ctx, cartPrefix+c.OwnerID, raw, p.ttl).Err()
}

func (p *CartPersistence) Delete(ctx context.Context, ownerID string) error {
	return p.rc.client.Del(ctx, cartPrefix+ownerID).Err()
}
