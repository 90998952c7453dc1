package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/foxseedlab/rostersearch/internal/webhook"
)

const (
	exportRequestTimeout = 10 * time.Second
	exportEventHeader    = "X-Rostersearch-Event"
	exportEventName      = "search.export"
	// Only the start of a failed response body is kept for the error.
	maxErrorBodyBytes = 512
)

// HTTPSender posts export notifications as JSON. An empty URL disables it.
type HTTPSender struct {
	url    string
	client *http.Client
}

func NewHTTPSender(url string) webhook.Sender {
	return &HTTPSender{
		url:    url,
		client: &http.Client{Timeout: exportRequestTimeout},
	}
}

func (s *HTTPSender) SendExport(ctx context.Context, payload webhook.ExportWebhookPayload) error {
	if s.url == "" {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode export payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build export request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(exportEventHeader, exportEventName)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post export webhook: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return fmt.Errorf("export webhook returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return nil
}
