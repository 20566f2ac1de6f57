package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/gega19/barber-app-backoffice-sub001/internal/config"
)

// Cache wraps the redis client for the two things the backoffice needs it
// for: short-lived dashboard aggregates and the refresh-token denylist
// populated on logout.
type Cache struct {
	rdb *redis.Client
}

func New(cfg *config.Config) *Cache {
	return &Cache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}),
	}
}

func NewWithClient(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Cache) GetJSON(ctx context.Context, key string) (string, bool) {
	v, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return v, true
}

func (c *Cache) SetJSON(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) > 0 {
		c.rdb.Del(ctx, keys...)
	}
}

const denylistPrefix = "denylist:refresh:"

// DenyRefreshToken blocks a refresh token until it would have expired
// anyway.
func (c *Cache) DenyRefreshToken(ctx context.Context, token string, ttl time.Duration) error {
	return c.rdb.Set(ctx, denylistPrefix+token, "1", ttl).Err()
}

func (c *Cache) IsRefreshTokenDenied(ctx context.Context, token string) bool {
	n, err := c.rdb.Exists(ctx, denylistPrefix+token).Result()
	return err == nil && n > 0
}
