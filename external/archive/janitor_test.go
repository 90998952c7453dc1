package archive

import (
	"context"
	"errors"
	"testing"
	"time"
)

type mockPurgingStore struct {
	mockStore
	purgeCalls int
	purgeErr   error
}

func (m *mockPurgingStore) PurgeExpired(_ context.Context) (int64, error) {
	m.purgeCalls++
	return 3, m.purgeErr
}

func TestJanitor_DisabledForSelfExpiringStore(t *testing.T) {
	j := NewJanitor(&mockStore{archives: map[string]string{}}, "@every 1m")
	if err := j.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if j.cron != nil {
		t.Fatal("expected no cron for a store without PurgeExpired")
	}
	j.Stop()
}

func TestJanitor_RunOncePurges(t *testing.T) {
	store := &mockPurgingStore{mockStore: mockStore{archives: map[string]string{}}}
	j := NewJanitor(store, "@every 1m")

	j.runOnce()
	store.purgeErr = errors.New("boom")
	j.runOnce()

	if store.purgeCalls != 2 {
		t.Fatalf("expected two purge calls, got %d", store.purgeCalls)
	}
}

func TestJanitor_InvalidSchedule(t *testing.T) {
	store := &mockPurgingStore{mockStore: mockStore{archives: map[string]string{}}}
	j := NewJanitor(store, "not a schedule")
	if err := j.Start(); err == nil {
		j.Stop()
		t.Fatal("expected error for invalid schedule")
	}
}

func TestJanitor_StartAndStop(t *testing.T) {
	store := &mockPurgingStore{mockStore: mockStore{archives: map[string]string{}}}
	j := NewJanitor(store, "@every 1h")
	if err := j.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	done := make(chan struct{})
	go func() {
		j.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
