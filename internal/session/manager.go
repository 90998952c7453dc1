package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/foxseedlab/rostersearch/internal/archive"
	"github.com/foxseedlab/rostersearch/internal/config"
	"github.com/foxseedlab/rostersearch/internal/discord"
	"github.com/foxseedlab/rostersearch/internal/search"
	"github.com/foxseedlab/rostersearch/internal/webhook"
)

const commandTimeout = 30 * time.Second

// Manager turns slash commands into searches and keeps track of live interactive sessions.
type Manager struct {
	cfg     *config.Config
	discord discord.Client
	engine  *search.Engine
	archive archive.Store
	webhook webhook.Sender

	idleTimeout time.Duration

	mu       sync.Mutex
	sessions map[*searchSession]struct{}
}

func NewManager(cfg *config.Config, dc discord.Client, store archive.Store, wh webhook.Sender) *Manager {
	return &Manager{
		cfg:         cfg,
		discord:     dc,
		engine:      search.NewEngine(dc, dc, cfg.SearchPageSize, cfg.SearchIDPageSize),
		archive:     store,
		webhook:     wh,
		idleTimeout: cfg.SearchIdleTimeout(),
		sessions:    make(map[*searchSession]struct{}),
	}
}

func (m *Manager) HandleSlashCommand(event discord.SlashCommandEvent) {
	if event.GuildID != m.cfg.DiscordGuildID {
		m.respondEphemeral(event, messageEphemeralWrongGuild)
		return
	}
	kind, ok := kindForCommand(event.CommandName)
	if !ok {
		m.respondEphemeral(event, messageEphemeralUnknownCommand)
		return
	}
	q := queryFromOptions(kind, event.Options)
	inv := invocation{
		kind:      kind,
		guildID:   event.GuildID,
		channelID: event.ChannelID,
		userID:    event.UserID,
		query:     q,
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	if event.Options.Bool(optionArchive) {
		m.respondEphemeral(event, messageEphemeralExportStarted)
		if err := m.export(ctx, inv); err != nil {
			slog.Error("search export failed", "error", err, "guild_id", inv.guildID, "channel_id", inv.channelID, "kind", kind)
		}
		return
	}
	m.respondEphemeral(event, messageEphemeralSearchStarted)
	if err := m.startSession(ctx, inv); err != nil {
		slog.Error("interactive search failed", "error", err, "guild_id", inv.guildID, "channel_id", inv.channelID, "kind", kind)
	}
}

func (m *Manager) respondEphemeral(event discord.SlashCommandEvent, content string) {
	if event.RespondEphemeral == nil {
		return
	}
	if err := event.RespondEphemeral(content); err != nil {
		slog.Error("failed to respond to slash command", "error", err, "command", event.CommandName, "user_id", event.UserID)
	}
}

type invocation struct {
	kind      searchKind
	guildID   string
	channelID string
	userID    string
	query     search.Query
}

func (m *Manager) runSearch(ctx context.Context, inv invocation, q search.Query) (*search.Result, error) {
	if inv.kind == kindBans {
		return m.engine.SearchBans(ctx, inv.guildID, q)
	}
	return m.engine.SearchMembers(ctx, inv.guildID, q)
}

// reportSearchError sends user-facing search failures to the channel and reports whether err was one.
func (m *Manager) reportSearchError(channelID string, err error) bool {
	var se *search.SearchError
	if !errors.As(err, &se) {
		return false
	}
	if sendErr := m.discord.SendChannelMessage(channelID, errorMessage(se.Message)); sendErr != nil {
		slog.Error("failed to send search error message", "error", sendErr, "channel_id", channelID)
	}
	return true
}

func (m *Manager) startSession(ctx context.Context, inv invocation) error {
	s := newSearchSession(m, inv)
	m.track(s)
	return s.load(ctx, inv.query.Page)
}

func (m *Manager) track(s *searchSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s] = struct{}{}
}

func (m *Manager) forget(s *searchSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, s)
}

func (m *Manager) activeSessionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// StopAllSessions tears down every interactive session and returns how many were stopped.
func (m *Manager) StopAllSessions() int {
	m.mu.Lock()
	sessions := make([]*searchSession, 0, len(m.sessions))
	for s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		s.teardown()
	}
	return len(sessions)
}
