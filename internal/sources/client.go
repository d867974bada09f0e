package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"rtsd/internal/structures"
)

const maxResponseBodySize = 4 << 20 // 4 MB

const defaultTimeout = 30 * time.Second

// Client is the shared HTTP client for all upstream fetches. Pooled
// transport, per-request context timeout, bounded response bodies.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
}

func NewHTTPClient(conf *structures.Config) *Client {
	timeout := conf.Sources.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     60 * time.Second,
			},
		},
		timeout: timeout,
	}
}

// GetString fetches url and returns the body as text. Any transport
// failure or non-2xx status becomes an UpstreamError tagged with source.
func (c *Client) GetString(ctx context.Context, source, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", upstreamErr(source, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", upstreamErr(source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", upstreamErr(source, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return "", upstreamErr(source, err)
	}
	return string(body), nil
}

// GetJSON fetches url and decodes the body into v.
func (c *Client) GetJSON(ctx context.Context, source, url string, v any) error {
	body, err := c.GetString(ctx, source, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return upstreamErr(source, fmt.Errorf("decode: %w", err))
	}
	return nil
}
