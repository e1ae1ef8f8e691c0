package storage

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStoreSetWithTTL(t *testing.T) {
	mr, client := newTestRedis(t)
	ctx := context.Background()
	store := NewRedisStore(client, "")

	if err := store.Set(ctx, "tok-redis", 24*time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, err := mr.Get(DefaultKey); err != nil || got != "tok-redis" {
		t.Fatalf("unexpected stored value %q err=%v", got, err)
	}
	if ttl := mr.TTL(DefaultKey); ttl <= 0 || ttl > 24*time.Hour {
		t.Fatalf("unexpected TTL: %v", ttl)
	}

	token, ok, err := store.Get(ctx)
	if err != nil || !ok || token != "tok-redis" {
		t.Fatalf("unexpected get result: %q ok=%v err=%v", token, ok, err)
	}

	mr.FastForward(25 * time.Hour)
	if _, ok, err := store.Get(ctx); err != nil || ok {
		t.Fatalf("expected token to expire, ok=%v err=%v", ok, err)
	}
}

func TestRedisStoreClearIsIdempotent(t *testing.T) {
	mr, client := newTestRedis(t)
	ctx := context.Background()
	store := NewRedisStore(client, "custom:token")

	if err := store.Set(ctx, "tok", time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second clear: %v", err)
	}
	if mr.Exists("custom:token") {
		t.Fatalf("expected key to be deleted")
	}
	if _, ok, err := store.Get(ctx); err != nil || ok {
		t.Fatalf("expected empty store after clear, ok=%v err=%v", ok, err)
	}
}

func TestRedisStoreGetPropagatesConnectionErrors(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisStore(client, "")
	mr.Close()

	if _, _, err := store.Get(context.Background()); err == nil {
		t.Fatalf("expected error when redis is unavailable")
	}
}
