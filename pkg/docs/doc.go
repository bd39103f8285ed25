// Package docs implements the documentation resolution engine: ordered
// source chains per ecosystem, markdown normalization into labeled
// sections, a bounded TTL cache with single-flight deduplication, and
// in-document search with exact and fuzzy ranking.
//
// The engine is transport-agnostic. Ecosystem adapters supply [Fetcher]
// implementations; the CLI, HTTP, and MCP surfaces all share one [Engine].
package docs
