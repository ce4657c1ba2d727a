package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/folio/portfolio-cms/internal/config"
)

const postmarkEndpoint = "https://api.postmarkapp.com/email"

var ErrNotConfigured = errors.New("email client not configured")

var codeEmail = template.Must(template.New("code").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
<h2 style="color: #3b82f6;">Portfolio CMS Login</h2>
<p>Your login code is:</p>
<div style="background: #f3f4f6; padding: 20px; border-radius: 8px; text-align: center; margin: 20px 0;">
<h1 style="color: #1f2937; font-size: 36px; letter-spacing: 8px; margin: 0;">{{.Code}}</h1>
</div>
<p style="color: #6b7280;">This code will expire in {{.Minutes}} minutes.</p>
<p style="color: #6b7280; font-size: 12px;">If you didn't request this code, please ignore this email.</p>
</div>`))

// PostmarkClient sends login codes through the Postmark HTTP API.
type PostmarkClient struct {
	serverToken string
	fromEmail   string
	endpoint    string
	httpClient  *http.Client
}

type Option func(*PostmarkClient)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *PostmarkClient) {
		cl.httpClient = c
	}
}

func WithEndpoint(url string) Option {
	return func(cl *PostmarkClient) {
		cl.endpoint = url
	}
}

func NewPostmarkClient(serverToken, fromEmail string, opts ...Option) *PostmarkClient {
	c := &PostmarkClient{
		serverToken: serverToken,
		fromEmail:   fromEmail,
		endpoint:    postmarkEndpoint,
		httpClient:  &http.Client{Timeout: config.NotifyTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *PostmarkClient) Configured() bool {
	return c.serverToken != "" && c.fromEmail != ""
}

type postmarkEmail struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	HtmlBody string `json:"HtmlBody"`
	TextBody string `json:"TextBody"`
}

func (c *PostmarkClient) SendCode(ctx context.Context, to, code string) error {
	if !c.Configured() {
		return fmt.Errorf("%w: missing server token or sender", ErrNotConfigured)
	}

	minutes := int(config.ChallengeTTL.Minutes())
	var html strings.Builder
	if err := codeEmail.Execute(&html, struct {
		Code    string
		Minutes int
	}{code, minutes}); err != nil {
		return fmt.Errorf("render email: %w", err)
	}

	payload := postmarkEmail{
		From:     c.fromEmail,
		To:       to,
		Subject:  "Your Admin Login Code",
		HtmlBody: html.String(),
		TextBody: fmt.Sprintf("Your login code is %s\n\nThis code will expire in %d minutes.", code, minutes),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Postmark-Server-Token", c.serverToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("postmark API error: status %d", resp.StatusCode)
	}

	return nil
}
