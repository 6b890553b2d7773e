package reports

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute)
}

func TestCacheFetchJSONPopulatesOnMiss(t *testing.T) {
	cache := testCache(t)
	ctx := context.Background()

	key, err := cache.BuildKey(ctx, keyTrialBalance(Period{}))
	if err != nil {
		t.Fatalf("build key: %v", err)
	}

	loads := 0
	loader := func(ctx context.Context) (interface{}, error) {
		loads++
		return map[string]float64{"total": 42}, nil
	}

	var first map[string]float64
	if err := cache.FetchJSON(ctx, key, &first, loader); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	var second map[string]float64
	if err := cache.FetchJSON(ctx, key, &second, loader); err != nil {
		t.Fatalf("fetch cached: %v", err)
	}
	if loads != 1 {
		t.Fatalf("expected 1 load, got %d", loads)
	}
	if second["total"] != 42 {
		t.Fatalf("unexpected cached value: %v", second)
	}
}

func TestCacheBumpInvalidatesKeys(t *testing.T) {
	cache := testCache(t)
	ctx := context.Background()

	before, err := cache.BuildKey(ctx, "reports", "tb")
	if err != nil {
		t.Fatalf("build key: %v", err)
	}
	if err := cache.Bump(ctx); err != nil {
		t.Fatalf("bump: %v", err)
	}
	after, err := cache.BuildKey(ctx, "reports", "tb")
	if err != nil {
		t.Fatalf("build key after bump: %v", err)
	}
	if before == after {
		t.Fatalf("expected key to change after bump, got %q twice", after)
	}
}

func TestInvalidateBumpsAndSchedulesWarmup(t *testing.T) {
	cache := testCache(t)
	ctx := context.Background()
	service := NewService(nil, nil, cache)

	warmups := 0
	service.WithWarmup(func(ctx context.Context) error {
		warmups++
		return nil
	})

	before, err := cache.BuildKey(ctx, "reports", "tb")
	if err != nil {
		t.Fatalf("build key: %v", err)
	}
	if err := service.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	after, err := cache.BuildKey(ctx, "reports", "tb")
	if err != nil {
		t.Fatalf("build key after invalidate: %v", err)
	}
	if before == after {
		t.Fatalf("expected key to change after invalidate, got %q twice", after)
	}
	if warmups != 1 {
		t.Fatalf("expected 1 warmup schedule, got %d", warmups)
	}
}

func TestCacheDisabledFallsBackToLoader(t *testing.T) {
	cache := NewCache(nil, time.Minute)
	ctx := context.Background()

	var out map[string]float64
	err := cache.FetchJSON(ctx, "any", &out, func(ctx context.Context) (interface{}, error) {
		return map[string]float64{"total": 7}, nil
	})
	if err != nil {
		t.Fatalf("fetch without redis: %v", err)
	}
	if out["total"] != 7 {
		t.Fatalf("unexpected value: %v", out)
	}
}
