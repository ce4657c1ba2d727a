package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/folio/portfolio-cms/internal/config"
	"github.com/folio/portfolio-cms/internal/model"
)

// Forwarder posts contact messages to an operator-configured webhook.
type Forwarder struct {
	url        string
	httpClient *http.Client
}

func NewForwarder(url string, httpClient *http.Client) *Forwarder {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.NotifyTimeout}
	}
	return &Forwarder{url: url, httpClient: httpClient}
}

func (f *Forwarder) Configured() bool {
	return f != nil && f.url != ""
}

type webhookPayload struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func (f *Forwarder) Forward(ctx context.Context, msg *model.Message) error {
	body, err := json.Marshal(webhookPayload{
		Name:      msg.Name,
		Email:     msg.Email,
		Message:   msg.Message,
		Timestamp: msg.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook error: status %d", resp.StatusCode)
	}
	return nil
}
