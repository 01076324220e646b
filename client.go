package studio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultPollInterval = 5 * time.Second
)

// Client talks to the Studio API. The zero value is not usable, construct
// one with New. A Client is safe for concurrent use: it holds no mutable
// state once constructed.
type Client struct {
	cfg          Config
	explicit     Config
	fallback     Config
	http         *http.Client
	logger       *zap.SugaredLogger
	pollInterval time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the Studio access token, taking precedence over the
// environment and any config file.
func WithToken(token string) Option { return func(c *Client) { c.explicit.Token = token } }

// WithURL sets the base URL of Studio, for self-hosted instances.
func WithURL(url string) Option { return func(c *Client) { c.explicit.URL = url } }

// WithRepoURL sets the URL of the Git repository imported into Studio.
func WithRepoURL(url string) Option { return func(c *Client) { c.explicit.RepoURL = url } }

// WithOffline disables all network calls.
func WithOffline() Option { return func(c *Client) { c.explicit.Offline = true } }

// WithConfig supplies a fallback configuration layer, typically loaded from
// a file with LoadConfigFile. Explicit options and the environment take
// precedence over it.
func WithConfig(cfg Config) Option { return func(c *Client) { c.fallback = cfg } }

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithLogger sets the logger. Logging is off by default.
func WithLogger(logger *zap.SugaredLogger) Option { return func(c *Client) { c.logger = logger } }

// WithPollInterval sets the wait between device-login token polls.
func WithPollInterval(d time.Duration) Option { return func(c *Client) { c.pollInterval = d } }

// New creates a Client, resolving its configuration from the given options,
// the environment and the fallback layer (see ResolveConfig).
func New(opts ...Option) *Client {
	c := &Client{
		http:         &http.Client{Timeout: defaultTimeout},
		logger:       zap.NewNop().Sugar(),
		pollInterval: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cfg = ResolveConfig(c.explicit, c.fallback)
	return c
}

// Config returns the resolved connection settings.
func (c *Client) Config() Config { return c.cfg }

// endpoint joins the configured base URL with an API path.
func (c *Client) endpoint(path string) string {
	base := c.cfg.URL
	if base == "" {
		base = DefaultURL
	}
	return strings.TrimRight(base, "/") + path
}

// newRequest builds an API request with the standard headers. The token
// header is attached only for authed endpoints.
func (c *Client) newRequest(ctx context.Context, method, url string, payload any, authed bool) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("error creating json: %w", err)
		}
		body = bytes.NewReader(data)
	}
	request, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request for %s: %w", url, err)
	}
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if authed {
		request.Header.Set("Authorization", "token "+c.cfg.Token)
	}
	request.Header.Set("X-Request-Id", uuid.NewString())
	return request, nil
}

// do sends the request and reads the full response body. No retries: one
// attempt, one result.
func (c *Client) do(request *http.Request) (int, []byte, error) {
	response, err := c.http.Do(request)
	if err != nil {
		return 0, nil, fmt.Errorf("error sending request for %s: %w", request.URL, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("error reading response body: %w", err)
	}
	c.logger.Debugw("studio response",
		"method", request.Method,
		"url", request.URL.String(),
		"status", response.StatusCode,
		"request_id", request.Header.Get("X-Request-Id"),
	)
	return response.StatusCode, body, nil
}
