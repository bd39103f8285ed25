package registry

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a package or resource doesn't exist in
	// the registry.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection
	// errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrRateLimited is returned when a registry answers 429.
	ErrRateLimited = errors.New("rate limited by registry")
)

// NewHTTPClient creates an HTTP client with a standard timeout for registry
// requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// NormalizePkgName converts a package name to its canonical registry form.
// Applies lowercase and replaces underscores with hyphens, following PEP 503
// normalization rules used by PyPI and mirrored by most registries.
func NormalizePkgName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}
