package hyperliquid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hypergate/hypergate/internal/pkg/apperrors"
	"github.com/hypergate/hypergate/internal/pkg/logger"
	"github.com/hypergate/hypergate/internal/pkg/metrics"
)

// Client talks to the exchange's HTTP API. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	isMainnet  bool
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

func NewClient(baseURL string, isMainnet bool, opts ...Option) *Client {
	c := &Client{
		baseURL:   baseURL,
		isMainnet: isMainnet,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsMainnet reports which network the client targets; signing domains depend
// on it.
func (c *Client) IsMainnet() bool {
	return c.isMainnet
}

// post sends a JSON body and returns the raw response bytes. Non-2xx
// statuses and transport failures surface as TRANSPORT_ERROR.
func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrInternal, "failed to encode request body", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.New(apperrors.ErrInternal, "failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.LatencyBucket.WithLabelValues(path).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, apperrors.New(apperrors.ErrTransport, fmt.Sprintf("exchange request to %s failed", path), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrTransport, "failed to read exchange response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn("Exchange returned non-2xx status",
			"path", path,
			"status", resp.StatusCode,
			"body", string(raw),
		)
		return nil, apperrors.New(apperrors.ErrTransport,
			fmt.Sprintf("exchange returned status %d", resp.StatusCode), nil)
	}

	return raw, nil
}
