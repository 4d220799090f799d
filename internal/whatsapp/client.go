package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/orderhub/orderhub-backend/pkg/config"
	pkgerrors "github.com/orderhub/orderhub-backend/pkg/errors"
)

const responseBodyReadLimit int64 = 1024

var errBaseURLRequired = errors.New("evolution base url is required")

// Credentials identify an Evolution API instance. Messages may carry their
// own set to override the client defaults.
type Credentials struct {
	BaseURL    string `json:"base_url,omitempty"`
	InstanceID string `json:"instance_id,omitempty"`
	Token      string `json:"token,omitempty"`
}

func (c Credentials) merged(defaults Credentials) Credentials {
	out := c
	if strings.TrimSpace(out.BaseURL) == "" {
		out.BaseURL = defaults.BaseURL
	}
	if strings.TrimSpace(out.InstanceID) == "" {
		out.InstanceID = defaults.InstanceID
	}
	if strings.TrimSpace(out.Token) == "" {
		out.Token = defaults.Token
	}
	return out
}

// Message is a single WhatsApp send request. MediaURL switches the payload
// from sendText to sendMedia.
type Message struct {
	Number      string       `json:"number"`
	Text        string       `json:"text,omitempty"`
	MediaURL    string       `json:"media_url,omitempty"`
	MediaType   string       `json:"media_type,omitempty"`
	FileName    string       `json:"file_name,omitempty"`
	Caption     string       `json:"caption,omitempty"`
	Credentials *Credentials `json:"credentials,omitempty"`
}

// Kind reports the dispatch kind used for metric labels.
func (m Message) Kind() string {
	if strings.TrimSpace(m.MediaURL) != "" {
		return "media"
	}
	return "text"
}

// Client wraps the Evolution API endpoints used for WhatsApp delivery.
type Client struct {
	httpClient *http.Client
	defaults   Credentials
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient builds the Evolution API client from configuration.
func NewClient(cfg config.WhatsAppConfig, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errBaseURLRequired
	}

	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := &Client{
		httpClient: &http.Client{Timeout: timeout},
		defaults: Credentials{
			BaseURL:    strings.TrimSpace(cfg.BaseURL),
			InstanceID: strings.TrimSpace(cfg.InstanceID),
			Token:      strings.TrimSpace(cfg.Token),
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// Send delivers a single message, routing to sendText or sendMedia.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "whatsapp client not configured")
	}
	number := strings.TrimSpace(msg.Number)
	if number == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "message number is required")
	}

	creds := c.defaults
	if msg.Credentials != nil {
		creds = msg.Credentials.merged(c.defaults)
	}
	if strings.TrimSpace(creds.InstanceID) == "" || strings.TrimSpace(creds.Token) == "" {
		return pkgerrors.New(pkgerrors.CodeDependency, "evolution instance credentials missing")
	}

	if msg.Kind() == "media" {
		return c.post(ctx, creds, "message/sendMedia", map[string]any{
			"number":    number,
			"mediatype": mediaTypeOrDefault(msg.MediaType),
			"media":     msg.MediaURL,
			"fileName":  msg.FileName,
			"caption":   msg.Caption,
		})
	}

	if strings.TrimSpace(msg.Text) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "message text is required")
	}
	return c.post(ctx, creds, "message/sendText", map[string]any{
		"number": number,
		"text":   msg.Text,
	})
}

func (c *Client) post(ctx context.Context, creds Credentials, path string, body map[string]any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal evolution request")
	}

	url := fmt.Sprintf("%s/%s/%s", strings.TrimRight(creds.BaseURL, "/"), path, creds.InstanceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build evolution request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", creds.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute evolution request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "evolution request failed")
	}
	return nil
}

func mediaTypeOrDefault(mediaType string) string {
	trimmed := strings.TrimSpace(mediaType)
	if trimmed == "" {
		return "image"
	}
	return trimmed
}
