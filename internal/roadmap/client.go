package roadmap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"change_tracker/internal/domain"
)

// Config holds roadmap client configuration.
type Config struct {
	URL          string
	Timeout      time.Duration
	UserAgent    string
	MaxBodyBytes int64
}

// Client downloads the roadmap page and builds snapshots from it.
type Client struct {
	httpClient   *http.Client
	url          string
	userAgent    string
	maxBodyBytes int64
	logger       *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		url:          cfg.URL,
		userAgent:    cfg.UserAgent,
		maxBodyBytes: cfg.MaxBodyBytes,
		logger:       logger,
	}
}

// Fetch returns the current snapshot restricted to the watched tabs.
func (c *Client) Fetch(ctx context.Context, watched []string) (*domain.Roadmap, error) {
	start := time.Now()

	page, err := c.download(ctx)
	if err != nil {
		return nil, err
	}

	data, err := ExtractData(page)
	if err != nil {
		return nil, err
	}

	decoded, err := DecodePage(data)
	if err != nil {
		return nil, err
	}

	snapshot, err := BuildSnapshot(decoded, watched)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("roadmap fetched",
		"tabs", len(snapshot.Tabs),
		"cards", snapshot.CardCount(),
		"duration", time.Since(start),
	)

	return snapshot, nil
}

func (c *Client) download(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %v: %w", err, domain.ErrNetwork)
	}

	req.Header.Set("Accept", "text/html")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %v: %w", err, domain.ErrNetwork)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status: %d: %w", resp.StatusCode, domain.ErrNetwork)
	}

	reader := io.Reader(resp.Body)
	if c.maxBodyBytes > 0 {
		reader = io.LimitReader(resp.Body, c.maxBodyBytes+1)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read body: %v: %w", err, domain.ErrNetwork)
	}
	if c.maxBodyBytes > 0 && int64(len(body)) > c.maxBodyBytes {
		return nil, fmt.Errorf("body exceeds %d bytes: %w", c.maxBodyBytes, domain.ErrParse)
	}

	return body, nil
}
