package archive

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/foxseedlab/rostersearch/internal/archive"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return NewRedisStore(client), mr
}

func TestRedisStore_CreateAndGet(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, "1 42", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Fatal("expected archive id")
	}
	if ttl := mr.TTL(redisKeyPrefix + id); ttl != time.Hour {
		t.Fatalf("unexpected ttl: %v", ttl)
	}

	content, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "1 42" {
		t.Fatalf("unexpected content: %q", content)
	}
}

func TestRedisStore_ExpiredArchiveIsNotFound(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, "gone soon", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if _, err := store.Get(ctx, id); !errors.Is(err, archive.ErrNotFound) {
		t.Fatalf("expected not found after expiry, got %v", err)
	}
}
