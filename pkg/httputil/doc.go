// Package httputil provides HTTP utilities for documentation fetchers.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Only errors wrapped with [RetryableError] are retried; anything else
// (404, malformed responses) fails fast. Backoff is exponential:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return fetchFromAPI()
//	})
//
// Response caching lives in the cache package; fetchers compose the two
// through the registry client rather than through this package.
package httputil
