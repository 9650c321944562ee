package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultURL is where the quote API listens by default
	DefaultURL = "http://127.0.0.1:8000/frases"

	// DefaultTimeout bounds a single quote request
	DefaultTimeout = 5 * time.Second

	// Fallback is shown whenever the quote API fails
	Fallback = `"Mantenha o foco!" — Sistema`

	maxBodySize = 64 << 10
)

// Config holds configuration for the HTTP quote provider
type Config struct {
	// URL of the endpoint returning {"frase": "..."}
	URL string

	// HTTPClient is optional; a client with Timeout is created when nil
	HTTPClient *http.Client

	Timeout time.Duration
}

type client struct {
	url        string
	httpClient *http.Client
}

// New creates a new HTTP quote provider
func New(cfg *Config) (*client, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	url := cfg.URL
	if url == "" {
		url = DefaultURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &client{url: url, httpClient: httpClient}, nil
}

type quoteResponse struct {
	Frase string `json:"frase"`
}

// FetchQuote requests a random quote and formats it for display
func (c *client) FetchQuote(ctx context.Context) string {
	text, err := c.fetch(ctx)
	if err != nil {
		log.Warn().Err(err).Str("url", c.url).Msg("Failed to fetch quote, using fallback")
		return Fallback
	}

	return Format(text)
}

func (c *client) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to build request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body quoteResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&body); err != nil {
		return "", errors.Wrap(err, "failed to decode quote")
	}

	text := strings.TrimSpace(body.Frase)
	if text == "" {
		return "", errors.New("empty quote")
	}

	return text, nil
}

// Format renders a quote the way the panel shows it
func Format(text string) string {
	return fmt.Sprintf(`"%s" — Motivação`, text)
}
