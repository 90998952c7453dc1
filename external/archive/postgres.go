package archive

import (
	"context"
	"errors"
	"time"

	"github.com/foxseedlab/rostersearch/internal/archive"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, text string, expiry time.Duration) (string, error) {
	var id string
	err := s.pool.QueryRow(ctx,
		`INSERT INTO search_archives (content, expires_at)
		 VALUES ($1, $2)
		 RETURNING id::text`,
		text, time.Now().Add(expiry)).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (string, error) {
	archiveID, err := uuid.Parse(id)
	if err != nil {
		return "", archive.ErrNotFound
	}
	var content string
	err = s.pool.QueryRow(ctx,
		`SELECT content FROM search_archives
		 WHERE id = $1 AND expires_at > NOW()`,
		archiveID).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", archive.ErrNotFound
		}
		return "", err
	}
	return content, nil
}

func (s *PostgresStore) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM search_archives WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
