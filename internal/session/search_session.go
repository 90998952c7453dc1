package session

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/foxseedlab/rostersearch/internal/discord"
	"github.com/foxseedlab/rostersearch/internal/search"
	"golang.org/x/sync/errgroup"
)

const pageLoadTimeout = 30 * time.Second

// searchSession drives one interactive result message. Loads never overlap: a request that
// arrives while another is in flight is dropped.
type searchSession struct {
	manager *Manager
	inv     invocation

	busy   atomic.Bool
	closed atomic.Bool

	mu               sync.Mutex
	message          *discord.MessageRef
	page             int
	lastPage         int
	controlsAttached bool
	unsubscribe      func()
	idleTimer        *time.Timer
	teardownOnce     sync.Once
}

func newSearchSession(m *Manager, inv invocation) *searchSession {
	return &searchSession{
		manager: m,
		inv:     inv,
	}
}

func (s *searchSession) load(ctx context.Context, page int) error {
	if s.closed.Load() || !s.busy.CompareAndSwap(false, true) {
		return nil
	}
	defer s.busy.Store(false)
	if s.closed.Load() {
		return nil
	}

	q := s.inv.query
	q.Page = page

	var result *search.Result
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.showSearching()
	})
	g.Go(func() error {
		r, err := s.manager.runSearch(gctx, s.inv, q)
		result = r
		return err
	})
	if err := g.Wait(); err != nil {
		if s.manager.reportSearchError(s.inv.channelID, err) {
			s.teardown()
			return nil
		}
		return err
	}
	return s.render(result)
}

func (s *searchSession) showSearching() error {
	s.mu.Lock()
	ref := s.message
	s.mu.Unlock()

	if ref != nil {
		return s.manager.discord.EditMessage(*ref, messageSearching)
	}
	created, err := s.manager.discord.CreateMessage(s.inv.channelID, messageSearching)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.message = &created
	s.mu.Unlock()
	return nil
}

func (s *searchSession) render(result *search.Result) error {
	s.mu.Lock()
	ref := *s.message
	s.mu.Unlock()

	content := renderResult(s.inv.kind.noun(), result, s.inv.query.IDsOnly)
	if err := s.manager.discord.EditMessage(ref, content); err != nil {
		return err
	}
	s.mu.Lock()
	s.page = result.Page
	s.lastPage = result.LastPage
	s.mu.Unlock()
	if result.FitsOnePage() {
		s.mu.Lock()
		interactive := s.controlsAttached
		s.mu.Unlock()
		if !interactive {
			s.teardown()
		} else {
			s.armIdleTimer()
		}
		return nil
	}
	if s.closed.Load() {
		return nil
	}
	if err := s.attachControls(ref); err != nil {
		return err
	}
	s.armIdleTimer()
	return nil
}

func (s *searchSession) attachControls(ref discord.MessageRef) error {
	s.mu.Lock()
	if s.controlsAttached {
		s.mu.Unlock()
		return nil
	}
	s.controlsAttached = true
	s.mu.Unlock()

	for _, emoji := range controlEmojis {
		if err := s.manager.discord.AddReaction(ref, emoji); err != nil {
			return err
		}
	}
	// A teardown during the loop may have cleared reactions that were added after it.
	if s.closed.Load() {
		if err := s.manager.discord.ClearReactions(ref); err != nil {
			slog.Debug("failed to clear page control reactions", "error", err, "message_id", ref.MessageID)
		}
		return nil
	}
	unsubscribe := s.manager.discord.OnReactionAdd(discord.ReactionFilter{
		MessageID: ref.MessageID,
		UserID:    s.inv.userID,
		Emojis:    controlEmojis,
	}, s.handleReaction)

	s.mu.Lock()
	s.unsubscribe = unsubscribe
	s.mu.Unlock()
	if s.closed.Load() {
		unsubscribe()
	}
	return nil
}

func (s *searchSession) armIdleTimer() {
	if s.closed.Load() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.idleTimer != nil {
		s.idleTimer.Stop()
	}
	s.idleTimer = time.AfterFunc(s.manager.idleTimeout, s.teardown)
}

func (s *searchSession) handleReaction(ev discord.ReactionEvent) {
	if page, ok := s.targetPage(ev.Emoji); ok {
		ctx, cancel := context.WithTimeout(context.Background(), pageLoadTimeout)
		if err := s.load(ctx, page); err != nil {
			slog.Error("failed to load search page", "error", err, "channel_id", ev.ChannelID, "message_id", ev.MessageID, "page", page)
		}
		cancel()
	}
	ref := discord.MessageRef{ChannelID: ev.ChannelID, MessageID: ev.MessageID}
	if err := s.manager.discord.RemoveUserReaction(ref, ev.Emoji, ev.UserID); err != nil {
		slog.Debug("failed to remove page control reaction", "error", err, "message_id", ev.MessageID, "user_id", ev.UserID)
	}
}

func (s *searchSession) targetPage(emoji string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch emoji {
	case emojiPrevPage:
		return s.page - 1, s.page > 1
	case emojiNextPage:
		return s.page + 1, s.page < s.lastPage
	case emojiRefresh:
		return s.page, true
	default:
		return 0, false
	}
}

// teardown runs once: it stops page turns, drops the listener and clears the controls.
func (s *searchSession) teardown() {
	s.teardownOnce.Do(func() {
		s.closed.Store(true)

		s.mu.Lock()
		if s.idleTimer != nil {
			s.idleTimer.Stop()
		}
		unsubscribe := s.unsubscribe
		s.unsubscribe = nil
		attached := s.controlsAttached
		ref := s.message
		s.mu.Unlock()

		if unsubscribe != nil {
			unsubscribe()
		}
		if attached && ref != nil {
			if err := s.manager.discord.ClearReactions(*ref); err != nil {
				slog.Debug("failed to clear page control reactions", "error", err, "message_id", ref.MessageID)
			}
		}
		s.manager.forget(s)
	})
}
