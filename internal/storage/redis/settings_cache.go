package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sderosiaux/reservo-sub001/internal/app"
)

const settingKeyPrefix = "setting:"

// SettingsCache is a read-through cache in front of a SettingsStore. Lookups
// are best-effort: any Redis failure falls back to the underlying store, so a
// cache outage never blocks reservation traffic.
type SettingsCache struct {
	client *redis.Client
	next   app.SettingsStore
	ttl    time.Duration
}

func NewSettingsCache(client *redis.Client, next app.SettingsStore, ttl time.Duration) *SettingsCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &SettingsCache{client: client, next: next, ttl: ttl}
}

func (c *SettingsCache) Get(ctx context.Context, key string) (string, bool, error) {
	cached, err := c.client.Get(ctx, settingKeyPrefix+key).Result()
	if err == nil {
		return cached, true, nil
	}

	value, ok, err := c.next.Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	if ok {
		// Short TTL keeps flag flips visible without invalidation plumbing.
		_ = c.client.Set(ctx, settingKeyPrefix+key, value, c.ttl).Err()
	}
	return value, ok, nil
}

// Invalidate drops one key from the cache, used when a setting is changed.
func (c *SettingsCache) Invalidate(ctx context.Context, key string) error {
	return c.client.Del(ctx, settingKeyPrefix+key).Err()
}
