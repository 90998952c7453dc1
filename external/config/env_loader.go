package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	internalconfig "github.com/foxseedlab/rostersearch/internal/config"
	"github.com/joho/godotenv"
)

type envConfig struct {
	Env                  string `env:"ENV" envDefault:"production"`
	DiscordToken         string `env:"DISCORD_TOKEN,required"`
	DiscordGuildID       string `env:"DISCORD_GUILD_ID,required"`
	ArchiveBackend       string `env:"ARCHIVE_BACKEND" envDefault:"postgres"`
	DatabaseURL          string `env:"DATABASE_URL"`
	RedisURL             string `env:"REDIS_URL"`
	ArchiveBaseURL       string `env:"ARCHIVE_BASE_URL,required"`
	ArchiveHTTPAddr      string `env:"ARCHIVE_HTTP_ADDR" envDefault:":8080"`
	ArchiveExpiryMin     int    `env:"ARCHIVE_EXPIRY_MIN" envDefault:"60"`
	ArchivePurgeSchedule string `env:"ARCHIVE_PURGE_SCHEDULE" envDefault:"@every 10m"`
	SearchPageSize       int    `env:"SEARCH_PAGE_SIZE" envDefault:"15"`
	SearchIDPageSize     int    `env:"SEARCH_ID_PAGE_SIZE" envDefault:"80"`
	SearchIdleTimeoutSec int    `env:"SEARCH_IDLE_TIMEOUT_SEC" envDefault:"300"`
	ExportWebhookURL     string `env:"EXPORT_WEBHOOK_URL"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*internalconfig.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:                  raw.Env,
		DiscordToken:         raw.DiscordToken,
		DiscordGuildID:       raw.DiscordGuildID,
		ArchiveBackend:       raw.ArchiveBackend,
		DatabaseURL:          raw.DatabaseURL,
		RedisURL:             raw.RedisURL,
		ArchiveBaseURL:       raw.ArchiveBaseURL,
		ArchiveHTTPAddr:      raw.ArchiveHTTPAddr,
		ArchiveExpiryMin:     raw.ArchiveExpiryMin,
		ArchivePurgeSchedule: raw.ArchivePurgeSchedule,
		SearchPageSize:       raw.SearchPageSize,
		SearchIDPageSize:     raw.SearchIDPageSize,
		SearchIdleTimeoutSec: raw.SearchIdleTimeoutSec,
		ExportWebhookURL:     raw.ExportWebhookURL,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
