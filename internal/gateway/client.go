package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"lingo/internal/domain"
)

// DefaultBaseURL is the API address used when none is configured.
const DefaultBaseURL = "http://localhost:5130/api"

// maxBodyBytes caps how much of a response body is buffered.
const maxBodyBytes = 8 << 20

// Client is the single HTTP client every API call goes through. It attaches
// the stored bearer token to outgoing requests and tears the session down
// when the server answers 401.
type Client struct {
	base      string
	http      *http.Client
	storage   domain.Storage
	nav       domain.Navigator
	log       *slog.Logger
	metrics   Recorder
	limiter   *rate.Limiter
	userAgent string

	mu    sync.RWMutex
	hooks []func(context.Context)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithNavigator sets where the user is sent after an authentication failure.
func WithNavigator(nav domain.Navigator) Option {
	return func(c *Client) { c.nav = nav }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMetrics records request counts and latencies to r.
func WithMetrics(r Recorder) Option {
	return func(c *Client) {
		if r != nil {
			c.metrics = r
		}
	}
}

// WithRateLimit throttles outgoing requests to rps with the given burst.
// A non-positive rps disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New returns a client for the API rooted at base, reading the bearer token
// from storage on every request.
func New(base string, storage domain.Storage, opts ...Option) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	c := &Client{
		base:      strings.TrimRight(base, "/"),
		http:      &http.Client{Timeout: 30 * time.Second},
		storage:   storage,
		log:       slog.Default(),
		metrics:   nopRecorder{},
		userAgent: "lingo",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Base returns the API base address.
func (c *Client) Base() string { return c.base }

// OnUnauthorized registers fn to run after the durable session has been
// cleared by a 401 and before navigation to the login view.
func (c *Client) OnUnauthorized(fn func(ctx context.Context)) {
	c.mu.Lock()
	c.hooks = append(c.hooks, fn)
	c.mu.Unlock()
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPut, path, in, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	start := time.Now()
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = buf
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return c.transportFailure(method, path, start, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return c.transportFailure(method, path, start, err)
	}
	if err := c.setHeaders(req, in != nil); err != nil {
		return c.transportFailure(method, path, start, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.transportFailure(method, path, start, err)
	}
	defer resp.Body.Close()

	b, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if resp.StatusCode/100 != 2 {
		return c.statusFailure(ctx, req, path, resp.StatusCode, b, start)
	}
	if readErr != nil {
		return c.transportFailure(method, path, start, readErr)
	}

	// The caller may have moved on; do not hand back a stale result.
	if err := ctx.Err(); err != nil {
		return c.transportFailure(method, path, start, err)
	}

	c.metrics.ObserveRequest(method, "ok", time.Since(start))
	if out == nil || len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return &domain.APIError{
			Kind:       domain.KindUnknown,
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Body:       b,
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request, hasBody bool) error {
	req.Header.Set("Accept", "application/json")
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	token, ok, err := c.storage.Get(domain.KeyToken)
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	if ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

func (c *Client) statusFailure(ctx context.Context, req *http.Request, path string, status int, body []byte, start time.Time) error {
	apiErr := &domain.APIError{
		Kind:       domain.ClassifyStatus(status),
		StatusCode: status,
		Method:     req.Method,
		Path:       path,
		Body:       body,
	}
	c.metrics.ObserveRequest(req.Method, apiErr.Kind.String(), time.Since(start))

	attrs := []any{
		"method", req.Method,
		"path", path,
		"status", status,
		"kind", apiErr.Kind.String(),
		"request_id", req.Header.Get("X-Request-ID"),
	}
	switch apiErr.Kind {
	case domain.KindUnauthorized:
		c.log.Warn("session rejected by server", attrs...)
		c.resetSession(ctx)
	case domain.KindServerError, domain.KindUnknown:
		c.log.Error("api request failed", attrs...)
	default:
		c.log.Warn("api request failed", attrs...)
	}
	return apiErr
}

func (c *Client) transportFailure(method, path string, start time.Time, err error) error {
	c.metrics.ObserveRequest(method, "transport", time.Since(start))
	c.log.Error("api request failed", "method", method, "path", path, "err", err)
	return &domain.APIError{Kind: domain.KindUnknown, Method: method, Path: path, Err: err}
}

// resetSession clears the durable session, notifies hooks and navigates to
// the login view, in that order.
func (c *Client) resetSession(ctx context.Context) {
	if err := c.storage.Delete(domain.KeyToken, domain.KeyUser); err != nil {
		c.log.Error("clear session", "err", err)
	}
	c.metrics.SessionReset()

	c.mu.RLock()
	hooks := append([]func(context.Context){}, c.hooks...)
	c.mu.RUnlock()
	for _, fn := range hooks {
		fn(ctx)
	}

	if c.nav != nil {
		c.nav.Navigate(ctx, domain.RouteLogin)
	}
}

var _ domain.Gateway = (*Client)(nil)
