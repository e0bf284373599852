// Package assistant provides the HTTP client for the external completion
// service backing the study helper.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 30 * time.Second

// Client talks to a completion endpoint that accepts {"prompt": ...} and
// answers {"reply": ...}.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

type Options struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

func NewClient(opts Options, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		endpoint:   opts.Endpoint,
		apiKey:     opts.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type completionRequest struct {
	Prompt string `json:"prompt"`
}

type completionResponse struct {
	Reply string `json:"reply"`
	Error string `json:"error,omitempty"`
}

// Complete sends the prompt to the completion endpoint and returns the reply
// text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.endpoint == "" {
		return "", fmt.Errorf("assistant endpoint is not configured")
	}

	body, err := json.Marshal(completionRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("completion service returned an error",
			zap.Int("status", resp.StatusCode),
			zap.Duration("elapsed", time.Since(start)))
		return "", fmt.Errorf("completion service status %d", resp.StatusCode)
	}

	var parsed completionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if parsed.Error != "" {
		return "", fmt.Errorf("completion service: %s", parsed.Error)
	}

	c.logger.Debug("completion request finished",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("reply_bytes", len(parsed.Reply)))
	return parsed.Reply, nil
}

// PlainTextExtractor handles text/plain uploads locally. Binary formats are
// expected to be converted before they reach the server.
type PlainTextExtractor struct{}

func (PlainTextExtractor) Extract(_ context.Context, data []byte, contentType string) (string, error) {
	if contentType != "text/plain" {
		return "", fmt.Errorf("no extractor for content type %q", contentType)
	}
	return strings.TrimSpace(string(data)), nil
}
