package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/pkgdex/pkgdex/pkg/cache"
	"github.com/pkgdex/pkgdex/pkg/httputil"
	"github.com/pkgdex/pkgdex/pkg/observability"
)

// Client provides shared HTTP functionality for all registry clients.
// It handles response caching, retry with backoff, request rate limiting,
// and common request headers.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	limiter *rate.Limiter
	headers map[string]string
}

// NewClient creates a Client backed by the given cache. Pass nil for
// headers if no default headers are needed; pass a cache.NullCache to
// disable response caching.
//
// Requests are limited to a few per second per client, which in practice
// means per registry. Registries documented here are generous, but a doc
// lookup can fan out and there is no reason to burst.
func NewClient(backend cache.Cache, headers map[string]string) *Client {
	return &Client{
		http:    NewHTTPClient(),
		cache:   backend,
		limiter: rate.NewLimiter(rate.Limit(10), 20),
		headers: headers,
	}
}

// CachedText retrieves a text payload from cache or executes fetch and
// caches the result with the given TTL. Cache read and write failures are
// ignored; the cache is an optimization, never a source of truth.
func (c *Client) CachedText(ctx context.Context, key string, ttl time.Duration, fetch func() (string, error)) (string, error) {
	if data, ok, _ := c.cache.Get(ctx, key); ok {
		return string(data), nil
	}

	var text string
	err := httputil.RetryWithBackoff(ctx, func() error {
		var ferr error
		text, ferr = fetch()
		return ferr
	})
	if err != nil {
		return "", err
	}
	_ = c.cache.Set(ctx, key, []byte(text), ttl)
	return text, nil
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with
// the client defaults. Request-specific headers win for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	body, err := c.doRequest(ctx, url, headers)
	if err != nil {
		return err
	}
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}

// GetText performs an HTTP GET request and returns the response body as a
// string. Useful for raw readme and plain-text endpoints.
func (c *Client) GetText(ctx context.Context, url string) (string, error) {
	return c.GetTextWithHeaders(ctx, url, nil)
}

// GetTextWithHeaders is GetText with additional request headers.
func (c *Client) GetTextWithHeaders(ctx context.Context, url string, headers map[string]string) (string, error) {
	body, err := c.doRequest(ctx, url, headers)
	if err != nil {
		return "", err
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	return string(data), err
}

func (c *Client) doRequest(ctx context.Context, url string, headers map[string]string) (io.ReadCloser, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	host, path := req.URL.Host, req.URL.Path
	observability.HTTP().OnRequest(ctx, http.MethodGet, host, path)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, host, path, err)
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	observability.HTTP().OnResponse(ctx, http.MethodGet, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound || code == http.StatusGone:
		return ErrNotFound
	case code == http.StatusTooManyRequests:
		return &httputil.RetryableError{Err: ErrRateLimited}
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
