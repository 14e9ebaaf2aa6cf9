package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hodgins-insurance/quoteserver/models"
)

// WebhookTimeout bounds the single webhook delivery attempt. There is no
// retry and no queue; the channel is fire-once best-effort.
const WebhookTimeout = 10 * time.Second

// SendWebhook posts the raw submission payload to the configured URL. A
// non-2xx response counts as a failure so the caller can log it; the caller
// swallows the error either way.
func SendWebhook(ctx context.Context, url string, q models.QuoteSubmission) error {
	body, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, WebhookTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook failed: %s", resp.Status)
	}
	return nil
}
