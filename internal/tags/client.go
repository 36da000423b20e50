package tags

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Source delivers the full current tag set. It is implemented by *Client and
// can be replaced in tests.
type Source interface {
	FetchSnapshot(ctx context.Context) ([]Tag, error)
}

var errMissingTags = errors.New("decode response: missing tags field")

// Ensure Client implements Source at compile time.
var _ Source = (*Client)(nil)

// SnapshotError reports a failed snapshot or health request: transport
// failure, non-success status, or a malformed payload.
type SnapshotError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *SnapshotError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SnapshotError) Unwrap() error { return e.Err }

// IsSnapshotError reports whether err wraps a *SnapshotError.
func IsSnapshotError(err error) bool {
	var se *SnapshotError
	return errors.As(err, &se)
}

// Client talks to the tag server HTTP API.
type Client struct {
	baseURL       *url.URL
	discoveryPath string
	http          *http.Client
	userAgent     string
}

const (
	defaultAPIBind       = "127.0.0.1:5000"
	defaultUserAgent     = "tagview/0.1"
	DefaultDiscoveryPath = "/api/tags/discovery"
	healthPath           = "/api/health"
	requestTimeout       = 5 * time.Second
)

// Option customizes a Client.
type Option func(*Client)

// WithDiscoveryPath overrides the snapshot endpoint path.
func WithDiscoveryPath(path string) Option {
	return func(c *Client) {
		if p := strings.TrimSpace(path); p != "" {
			if !strings.HasPrefix(p, "/") {
				p = "/" + p
			}
			c.discoveryPath = p
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient builds a Client using the provided apiBind host:port value.
func NewClient(apiBind string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:       base,
		discoveryPath: DefaultDiscoveryPath,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized server URL.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// FetchSnapshot retrieves the full tag list in backend order.
func (c *Client) FetchSnapshot(ctx context.Context) ([]Tag, error) {
	if c == nil {
		return nil, &SnapshotError{Op: "fetch snapshot", Err: errors.New("client is nil")}
	}
	var payload DiscoveryResponse
	if err := c.do(ctx, "fetch snapshot", c.discoveryPath, &payload); err != nil {
		return nil, err
	}
	if payload.Tags == nil {
		return nil, &SnapshotError{Op: "fetch snapshot", Err: errMissingTags}
	}
	return *payload.Tags, nil
}

// FetchHealth retrieves the server health summary.
func (c *Client) FetchHealth(ctx context.Context) (*HealthResponse, error) {
	if c == nil {
		return nil, &SnapshotError{Op: "fetch health", Err: errors.New("client is nil")}
	}
	var payload HealthResponse
	if err := c.do(ctx, "fetch health", healthPath, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) do(ctx context.Context, op, path string, dest any) error {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return &SnapshotError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return &SnapshotError{Op: op, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &SnapshotError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("api %s returned status %d", path, resp.StatusCode),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &SnapshotError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_bind %q: %w", apiBind, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_bind %q: missing host", apiBind)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
