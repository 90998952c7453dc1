package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/foxseedlab/rostersearch/internal/webhook"
)

func TestSendExport_EmptyWebhookURL(t *testing.T) {
	sender := NewHTTPSender("")
	if err := sender.SendExport(context.Background(), webhook.ExportWebhookPayload{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestSendExport_Success(t *testing.T) {
	var got webhook.ExportWebhookPayload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type: %s", ct)
		}
		if ev := r.Header.Get("X-Rostersearch-Event"); ev != "search.export" {
			t.Errorf("unexpected event header: %s", ev)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	sender := NewHTTPSender(server.URL)
	payload := webhook.ExportWebhookPayload{
		SchemaVersion: webhook.ExportWebhookSchemaVersion,
		GuildID:       "guild-1",
		Kind:          "members",
		Total:         3,
		ArchiveID:     "abc",
		ArchiveURL:    "https://archive.example.com/archives/abc",
	}
	if err := sender.SendExport(context.Background(), payload); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got != payload {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestSendExport_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("bad payload\n"))
	}))
	defer server.Close()

	sender := NewHTTPSender(server.URL)
	err := sender.SendExport(context.Background(), webhook.ExportWebhookPayload{})
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}
	if !strings.Contains(err.Error(), "status 400: bad payload") {
		t.Fatalf("unexpected error: %v", err)
	}
}
