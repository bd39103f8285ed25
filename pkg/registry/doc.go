// Package registry provides shared infrastructure for package registry
// clients: a common HTTP client with caching, retries, and rate limiting,
// plus error types and name normalization helpers.
//
// Registry-specific clients live in subpackages (npm, pypi, crates,
// rubygems); each knows only its own endpoints and response shapes.
package registry
