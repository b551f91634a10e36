package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Fetcher defines the catalog reads the navigation layer depends on.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	FetchProduct(ctx context.Context, id int) (*Product, error)
	FetchProductsCount(ctx context.Context) (int, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

const (
	// DefaultBaseURL is the public catalog used when nothing else is configured.
	DefaultBaseURL = "https://fakestoreapi.com"

	defaultUserAgent = "showcase/0.1"
	defaultTimeout   = 12 * time.Second
	defaultRetries   = 2
	defaultRetryBase = 300 * time.Millisecond
	maxRetries       = 10
)

// Client talks to the catalog REST API. Successful responses are cached per
// URL for the configured TTL.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string

	timeout   time.Duration
	retries   int
	retryBase time.Duration

	cache   *responseCache
	group   singleflight.Group
	log     *zap.Logger
	metrics *Metrics
}

// Option customizes a Client.
type Option func(*options)

type options struct {
	timeout    time.Duration
	retries    int
	retryBase  time.Duration
	cacheTTL   time.Duration
	now        func() time.Time
	httpClient *http.Client
	log        *zap.Logger
	metrics    *Metrics
}

// WithTimeout bounds every single attempt.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithRetries sets how many extra attempts follow a failed one.
func WithRetries(n int) Option {
	return func(o *options) {
		if n >= 0 && n <= maxRetries {
			o.retries = n
		}
	}
}

// WithRetryBase sets the backoff unit; retry n waits base * 2^n.
func WithRetryBase(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.retryBase = d
		}
	}
}

// WithCacheTTL sets how long a cached response stays fresh.
func WithCacheTTL(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.cacheTTL = d
		}
	}
}

// WithClock replaces time.Now for cache bookkeeping.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithHTTPClient replaces the underlying *http.Client. Its transport is still
// wrapped for tracing.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithLogger attaches a logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithMetrics attaches prometheus collectors.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// NewClient builds a Client for the catalog rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	o := options{
		timeout:   defaultTimeout,
		retries:   defaultRetries,
		retryBase: defaultRetryBase,
		cacheTTL:  defaultCacheTTL,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}

	hc := &http.Client{}
	if o.httpClient != nil {
		dup := *o.httpClient
		hc = &dup
	}
	transport := hc.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	hc.Transport = otelhttp.NewTransport(transport)

	return &Client{
		baseURL:   base,
		http:      hc,
		userAgent: defaultUserAgent,
		timeout:   o.timeout,
		retries:   o.retries,
		retryBase: o.retryBase,
		cache:     newResponseCache(o.cacheTTL, o.now),
		log:       o.log.With(zap.String("component", "catalog")),
		metrics:   o.metrics,
	}, nil
}

// BaseURL returns the normalized catalog root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchProduct retrieves a single product by id.
func (c *Client) FetchProduct(ctx context.Context, id int) (*Product, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if id < 1 {
		return nil, fmt.Errorf("%w: product id %d", ErrInvalidArgument, id)
	}

	body, err := c.get(ctx, c.baseURL.JoinPath("products", strconv.Itoa(id)).String())
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: product %d is not an object", ErrMalformedResponse, id)
	}
	var p Product
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil, fmt.Errorf("%w: product %d: %v", ErrMalformedResponse, id, err)
	}
	return &p, nil
}

// FetchProductsCount returns the number of products in the catalog listing.
// A listing that is not an array counts as empty.
func (c *Client) FetchProductsCount(ctx context.Context) (int, error) {
	if c == nil {
		return 0, fmt.Errorf("client is nil")
	}

	body, err := c.get(ctx, c.baseURL.JoinPath("products").String())
	if err != nil {
		return 0, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return 0, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return 0, nil
	}
	return len(items), nil
}

func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	if body, ok := c.cache.get(reqURL); ok {
		c.metrics.cacheLookup(true)
		c.log.Debug("cache hit", zap.String("url", reqURL))
		return body, nil
	}
	c.metrics.cacheLookup(false)

	// The shared fetch outlives any single caller; each attempt is still
	// bounded by c.timeout.
	ch := c.group.DoChan(reqURL, func() (any, error) {
		body, err := c.fetch(context.WithoutCancel(ctx), reqURL)
		if err != nil {
			return nil, err
		}
		c.cache.set(reqURL, body)
		return body, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %s: %w", ErrRequestFailed, reqURL, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (c *Client) fetch(ctx context.Context, reqURL string) ([]byte, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryBase * 2
	policy.Multiplier = 2
	policy.RandomizationFactor = 0
	policy.MaxInterval = c.retryBase << (c.retries + 1)

	attempt := 0
	body, err := backoff.Retry(ctx,
		func() ([]byte, error) {
			attempt++
			return c.attempt(ctx, reqURL)
		},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(c.retries+1)),
		backoff.WithNotify(func(err error, wait time.Duration) {
			c.metrics.retry()
			c.log.Warn("catalog attempt failed, retrying",
				zap.String("url", reqURL),
				zap.Int("attempt", attempt),
				zap.Duration("wait", wait),
				zap.Error(err),
			)
		}),
	)
	if err != nil {
		c.log.Error("catalog request failed",
			zap.String("url", reqURL),
			zap.Int("attempts", attempt),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %s after %d attempts: %w", ErrRequestFailed, reqURL, attempt, err)
	}
	return body, nil
}

func (c *Client) attempt(ctx context.Context, reqURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.observeAttempt(outcomeError, time.Since(start))
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.metrics.observeAttempt(outcomeStatus, time.Since(start))
		return nil, &StatusError{URL: reqURL, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.observeAttempt(outcomeError, time.Since(start))
		return nil, fmt.Errorf("read response: %w", err)
	}
	if !json.Valid(body) {
		c.metrics.observeAttempt(outcomeError, time.Since(start))
		return nil, errors.New("decode response: invalid JSON")
	}
	c.metrics.observeAttempt(outcomeOK, time.Since(start))
	return body, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api base url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
