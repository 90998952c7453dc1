package archive

import (
	"context"
	"errors"
	"time"

	"github.com/foxseedlab/rostersearch/internal/archive"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "rostersearch:archive:"

// RedisStore relies on key TTLs for expiry, so it needs no janitor.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Create(ctx context.Context, text string, expiry time.Duration) (string, error) {
	id := uuid.NewString()
	if err := s.client.Set(ctx, redisKeyPrefix+id, text, expiry).Err(); err != nil {
		return "", err
	}
	return id, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (string, error) {
	content, err := s.client.Get(ctx, redisKeyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", archive.ErrNotFound
		}
		return "", err
	}
	return content, nil
}
