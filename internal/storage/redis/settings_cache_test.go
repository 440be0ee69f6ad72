package redis

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

func newTestClient(t *testing.T) *goredis.Client {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := goredis.NewClient(&goredis.Options{Addr: addr, DB: 9})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("skipping Redis integration tests: %v", err)
	}

	t.Cleanup(func() {
		_ = client.FlushDB(context.Background()).Err()
		_ = client.Close()
	})
	return client
}

type countingStore struct {
	values map[string]string
	calls  int
}

func (s *countingStore) Get(_ context.Context, key string) (string, bool, error) {
	s.calls++
	v, ok := s.values[key]
	return v, ok, nil
}

func TestSettingsCache_ReadThrough(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	store := &countingStore{values: map[string]string{"maintenance_mode": "on"}}
	cache := NewSettingsCache(client, store, time.Minute)

	value, ok, err := cache.Get(ctx, "maintenance_mode")
	if err != nil {
		t.Fatalf("first get: %v", err)
	}
	if !ok || value != "on" {
		t.Fatalf("expected on, got %q ok=%v", value, ok)
	}
	if store.calls != 1 {
		t.Fatalf("expected 1 store call, got %d", store.calls)
	}

	// Second lookup is served from the cache.
	value, ok, err = cache.Get(ctx, "maintenance_mode")
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if !ok || value != "on" {
		t.Fatalf("expected cached on, got %q ok=%v", value, ok)
	}
	if store.calls != 1 {
		t.Fatalf("expected cache hit, store calls=%d", store.calls)
	}
}

func TestSettingsCache_MissingKeyNotCached(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	store := &countingStore{values: map[string]string{}}
	cache := NewSettingsCache(client, store, time.Minute)

	for i := 0; i < 2; i++ {
		_, ok, err := cache.Get(ctx, "maintenance_mode")
		if err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
		if ok {
			t.Fatalf("expected missing key")
		}
	}
	if store.calls != 2 {
		t.Fatalf("missing keys are not cached, expected 2 store calls, got %d", store.calls)
	}
}

func TestSettingsCache_Invalidate(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	store := &countingStore{values: map[string]string{"maintenance_mode": "off"}}
	cache := NewSettingsCache(client, store, time.Minute)

	if _, _, err := cache.Get(ctx, "maintenance_mode"); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	store.values["maintenance_mode"] = "on"
	if err := cache.Invalidate(ctx, "maintenance_mode"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	value, _, err := cache.Get(ctx, "maintenance_mode")
	if err != nil {
		t.Fatalf("get after invalidate: %v", err)
	}
	if value != "on" {
		t.Fatalf("expected refreshed value on, got %q", value)
	}
}
