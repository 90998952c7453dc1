package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/foxseedlab/rostersearch/internal/archive"
	"github.com/foxseedlab/rostersearch/internal/search"
	"github.com/foxseedlab/rostersearch/internal/webhook"
)

// export stores every match in the archive and posts the link. A failed search posts the
// error instead and stores nothing.
func (m *Manager) export(ctx context.Context, inv invocation) error {
	q := inv.query
	q.Page = 1
	q.PerPage = search.UnboundedPageSize

	result, err := m.runSearch(ctx, inv, q)
	if err != nil {
		if m.reportSearchError(inv.channelID, err) {
			return nil
		}
		return err
	}

	expiry := m.cfg.ArchiveExpiry()
	text := search.Format(result.Items, q.IDsOnly)
	id, err := m.archive.Create(ctx, text, expiry)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	url := archive.URL(m.cfg.ArchiveBaseURL, id)
	expiresAt := time.Now().Add(expiry)

	announcement := fmt.Sprintf(messageArchiveFormat, result.Total, inv.kind.noun(), url, humanDuration(expiry))
	if err := m.discord.SendChannelMessage(inv.channelID, announcement); err != nil {
		return fmt.Errorf("announce archive: %w", err)
	}
	slog.Info("search results exported", "guild_id", inv.guildID, "channel_id", inv.channelID, "kind", inv.kind, "total", result.Total, "archive_id", id)

	if m.webhook == nil {
		return nil
	}
	payload := webhook.ExportWebhookPayload{
		SchemaVersion: webhook.ExportWebhookSchemaVersion,
		GuildID:       inv.guildID,
		ChannelID:     inv.channelID,
		RequestedBy:   inv.userID,
		Kind:          inv.kind.noun(),
		Query:         describeQuery(q),
		Total:         result.Total,
		ArchiveID:     id,
		ArchiveURL:    url,
		ExpiresAt:     expiresAt.UTC().Format(time.RFC3339),
	}
	if err := m.webhook.SendExport(ctx, payload); err != nil {
		slog.Error("failed to send export webhook", "error", err, "archive_id", id)
	}
	return nil
}

func humanDuration(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	case d >= time.Minute:
		return plural(int(d/time.Minute), "minute")
	default:
		return plural(int(d/time.Second), "second")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
