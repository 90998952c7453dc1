package webhook

import "context"

const ExportWebhookSchemaVersion = "2026-10-01"

type ExportWebhookPayload struct {
	SchemaVersion string `json:"schema_version"`
	GuildID       string `json:"guild_id"`
	ChannelID     string `json:"channel_id"`
	RequestedBy   string `json:"requested_by"`
	Kind          string `json:"kind"`
	Query         string `json:"query"`
	Total         int    `json:"total"`
	ArchiveID     string `json:"archive_id"`
	ArchiveURL    string `json:"archive_url"`
	ExpiresAt     string `json:"expires_at"`
}

type Sender interface {
	SendExport(ctx context.Context, payload ExportWebhookPayload) error
}
