package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/foxseedlab/rostersearch/internal/archive"
	"github.com/foxseedlab/rostersearch/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do/v2"
)

const storeInitTimeout = 15 * time.Second

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (archive.Store, error) {
		cfg := do.MustInvoke[*config.Config](i)
		ctx, cancel := context.WithTimeout(context.Background(), storeInitTimeout)
		defer cancel()

		if cfg.ArchiveBackend == config.ArchiveBackendRedis {
			return newRedisStore(ctx, cfg.RedisURL)
		}
		return newPostgresStore(ctx, cfg.DatabaseURL)
	})
	do.Provide(injector, func(i do.Injector) (*HTTPServer, error) {
		cfg := do.MustInvoke[*config.Config](i)
		store := do.MustInvoke[archive.Store](i)
		return NewHTTPServer(cfg.ArchiveHTTPAddr, store), nil
	})
	do.Provide(injector, func(i do.Injector) (*Janitor, error) {
		cfg := do.MustInvoke[*config.Config](i)
		store := do.MustInvoke[archive.Store](i)
		return NewJanitor(store, cfg.ArchivePurgeSchedule), nil
	})
}

func newPostgresStore(ctx context.Context, databaseURL string) (archive.Store, error) {
	p, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := RunMigration(ctx, p); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to run migration: %w", err)
	}
	return NewPostgresStore(p), nil
}

func newRedisStore(ctx context.Context, redisURL string) (archive.Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return NewRedisStore(client), nil
}
