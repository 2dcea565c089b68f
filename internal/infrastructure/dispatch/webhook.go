package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	appcheckout "github.com/tindahan/backend/internal/application/checkout"
	"github.com/tindahan/backend/internal/domain/checkout"
)

// WebhookOrderLog delivers composed orders to the tenant's webhook endpoint
// as a JSON POST. Delivery is best effort: callers run it on a detached task
// and the storefront response never waits on it.
type WebhookOrderLog struct {
	client *http.Client
}

// NewWebhookOrderLog creates a webhook order log with the given request timeout
func NewWebhookOrderLog(timeout time.Duration) *WebhookOrderLog {
	return &WebhookOrderLog{
		client: &http.Client{Timeout: timeout},
	}
}

// NewWebhookOrderLogWithClient creates a webhook order log with a custom HTTP
// client (for testing)
func NewWebhookOrderLogWithClient(client *http.Client) *WebhookOrderLog {
	return &WebhookOrderLog{client: client}
}

// Record posts the order payload to the endpoint. A non-2xx response is
// reported as an error so callers can count failures, but the payload is
// never retried.
func (w *WebhookOrderLog) Record(ctx context.Context, endpoint string, payload checkout.OrderPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build order log request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("order log request failed: %w", err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("order log endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

var _ appcheckout.OrderLog = (*WebhookOrderLog)(nil)
