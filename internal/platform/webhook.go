package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// WebhookAdapter forwards the publish request as JSON to an HTTP endpoint
// (a platform bridge service, or a stub in integration environments).
type WebhookAdapter struct {
	URL    string
	Client *http.Client
}

func NewWebhookAdapter(url string) *WebhookAdapter {
	return &WebhookAdapter{
		URL:    url,
		Client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (a *WebhookAdapter) Publish(ctx context.Context, req PublishRequest) (*PublishResult, error) {
	body, err := json.Marshal(map[string]string{
		"caption":          req.Caption,
		"image_url":        req.ImageURL,
		"external_page_id": req.ExternalPageID,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.URL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+req.AccessToken)

	resp, err := a.Client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("webhook returned %d: %s", resp.StatusCode, string(msg))
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("invalid webhook response: %v", err)
	}
	return &PublishResult{ExternalID: out.ID}, nil
}
