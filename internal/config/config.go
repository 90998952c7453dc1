package config

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	ArchiveBackendPostgres = "postgres"
	ArchiveBackendRedis    = "redis"
)

type Config struct {
	Env                  string
	DiscordToken         string
	DiscordGuildID       string
	ArchiveBackend       string
	DatabaseURL          string
	RedisURL             string
	ArchiveBaseURL       string
	ArchiveHTTPAddr      string
	ArchiveExpiryMin     int
	ArchivePurgeSchedule string
	SearchPageSize       int
	SearchIDPageSize     int
	SearchIdleTimeoutSec int
	ExportWebhookURL     string
}

func (c *Config) Validate() error {
	for _, req := range c.requiredFieldChecks() {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}
	switch c.ArchiveBackend {
	case ArchiveBackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when ARCHIVE_BACKEND=postgres")
		}
		if _, err := cron.ParseStandard(c.ArchivePurgeSchedule); err != nil {
			return fmt.Errorf("ARCHIVE_PURGE_SCHEDULE is invalid: %w", err)
		}
	case ArchiveBackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when ARCHIVE_BACKEND=redis")
		}
	default:
		return fmt.Errorf("ARCHIVE_BACKEND must be %q or %q, got %q", ArchiveBackendPostgres, ArchiveBackendRedis, c.ArchiveBackend)
	}
	for _, p := range c.positiveFieldChecks() {
		if p.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", p.name, p.value)
		}
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "DISCORD_TOKEN", value: c.DiscordToken},
		{name: "DISCORD_GUILD_ID", value: c.DiscordGuildID},
		{name: "ARCHIVE_BASE_URL", value: c.ArchiveBaseURL},
		{name: "ARCHIVE_HTTP_ADDR", value: c.ArchiveHTTPAddr},
	}
}

type positiveEnvField struct {
	name  string
	value int
}

func (c *Config) positiveFieldChecks() []positiveEnvField {
	return []positiveEnvField{
		{name: "ARCHIVE_EXPIRY_MIN", value: c.ArchiveExpiryMin},
		{name: "SEARCH_PAGE_SIZE", value: c.SearchPageSize},
		{name: "SEARCH_ID_PAGE_SIZE", value: c.SearchIDPageSize},
		{name: "SEARCH_IDLE_TIMEOUT_SEC", value: c.SearchIdleTimeoutSec},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) ArchiveExpiry() time.Duration {
	return time.Duration(c.ArchiveExpiryMin) * time.Minute
}

func (c *Config) SearchIdleTimeout() time.Duration {
	return time.Duration(c.SearchIdleTimeoutSec) * time.Second
}
