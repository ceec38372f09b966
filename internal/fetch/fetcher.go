// Package fetch retrieves source pages and feed documents over HTTP.
package fetch

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/JSmilg/veracity/internal/cache"
	"github.com/JSmilg/veracity/internal/model"
	"github.com/JSmilg/veracity/internal/worker"
)

const (
	acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptJSON = "application/json,text/plain;q=0.9,*/*;q=0.5"
	maxBackoff = 30 * time.Second
)

// ErrDisallowed is returned when robots.txt forbids the URL
var ErrDisallowed = errors.New("disallowed by robots.txt")

// StatusError is a non-2xx response
type StatusError struct {
	Code       int
	Status     string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d %s", e.Code, e.Status)
}

// fetchSleep waits between attempts; tests replace it
var fetchSleep = func(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Fetcher is a rate-limited, retrying, optionally caching HTTP client
type Fetcher struct {
	client     *http.Client
	userAgent  string
	maxBytes   int64
	maxRetries int
	backoff    time.Duration
	limiter    *worker.Limiter
	robots     *RobotsChecker
	cache      cache.Cache
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithLimiter applies per-host rate limits
func WithLimiter(l *worker.Limiter) Option {
	return func(f *Fetcher) { f.limiter = l }
}

// WithCache caches successful bodies for ttl
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(f *Fetcher) {
		f.cache = c
		f.cacheTTL = ttl
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(f *Fetcher) { f.logger = l }
}

// WithBackoff sets the first retry delay; later retries double it
func WithBackoff(d time.Duration) Option {
	return func(f *Fetcher) { f.backoff = d }
}

// NewFetcher creates a Fetcher from the http config section
func NewFetcher(cfg model.HTTPConfig, opts ...Option) *Fetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy)
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	f := &Fetcher{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("stopped after 5 redirects")
				}
				return nil
			},
		},
		userAgent:  cfg.UserAgent,
		maxBytes:   cfg.MaxBodyBytes,
		maxRetries: cfg.MaxRetries,
		backoff:    time.Second,
		cache:      cache.Nop{},
		logger:     zap.NewNop(),
	}
	if f.maxBytes <= 0 {
		f.maxBytes = 5_000_000
	}
	if f.maxRetries <= 0 {
		f.maxRetries = 1
	}

	for _, opt := range opts {
		opt(f)
	}

	if cfg.RespectRobots {
		f.robots = NewRobotsChecker(f.client, f.userAgent, f.logger)
	}
	return f
}

// Result is a fetched document
type Result struct {
	Body        []byte
	StatusCode  int
	ContentType string
	FinalURL    string
	FromCache   bool
}

// Text returns the body as a string
func (r *Result) Text() string {
	return string(r.Body)
}

// Fetch retrieves an HTML page
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	return f.fetch(ctx, rawURL, acceptHTML)
}

// FetchJSON retrieves rawURL and decodes its JSON body into dest
func (f *Fetcher) FetchJSON(ctx context.Context, rawURL string, dest any) error {
	res, err := f.fetch(ctx, rawURL, acceptJSON)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(res.Body, dest); err != nil {
		return fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return nil
}

func (f *Fetcher) fetch(ctx context.Context, rawURL, accept string) (*Result, error) {
	key := cache.Key(cache.NamespacePage, rawURL)
	if body, ok := f.cache.Get(key); ok {
		return &Result{Body: body, StatusCode: http.StatusOK, FinalURL: rawURL, FromCache: true}, nil
	}

	var delay time.Duration
	if f.robots != nil {
		allowed, crawlDelay, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, fmt.Errorf("%s: %w", rawURL, ErrDisallowed)
		}
		delay = crawlDelay
	}

	res, err := f.fetchWithRetry(ctx, rawURL, accept, delay)
	if err != nil {
		return nil, err
	}

	if err := f.cache.Set(key, res.Body, f.cacheTTL); err != nil {
		f.logger.Debug("cache write failed", zap.String("url", rawURL), zap.Error(err))
	}
	return res, nil
}

func (f *Fetcher) fetchWithRetry(ctx context.Context, rawURL, accept string, crawlDelay time.Duration) (*Result, error) {
	var lastErr error
	for attempt := 0; attempt < f.maxRetries; attempt++ {
		if attempt > 0 {
			wait := f.backoff << (attempt - 1)
			var se *StatusError
			if errors.As(lastErr, &se) && se.RetryAfter > wait {
				wait = se.RetryAfter
			}
			if wait > maxBackoff {
				wait = maxBackoff
			}
			f.logger.Debug("retrying fetch",
				zap.String("url", rawURL),
				zap.Int("attempt", attempt+1),
				zap.Duration("wait", wait),
				zap.Error(lastErr),
			)
			if err := fetchSleep(ctx, wait); err != nil {
				return nil, err
			}
		}

		if f.limiter != nil {
			if err := f.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
				return nil, fmt.Errorf("rate limit: %w", err)
			}
		}

		res, err := f.fetchOnce(ctx, rawURL, accept)
		if err == nil {
			return res, nil
		}
		lastErr = err
		if !isRetryable(err) || ctx.Err() != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL, accept string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", "en-GB,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &StatusError{
			Code:       resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &Result{
		Body:        body,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		FinalURL:    resp.Request.URL.String(),
	}, nil
}

// isRetryable reports whether err is a transient failure: 429, 5xx, a
// timeout or a dropped connection
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}

	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusTooManyRequests || se.Code >= 500
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF)
}

func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
