package docs

import (
	"context"
	"time"

	"github.com/pkgdex/pkgdex/pkg/observability"
)

// Fetcher is one retrieval strategy for an ecosystem. Implementations live
// in the ecosystem adapter packages; the engine only sees this interface.
//
// Fetch must honor ctx cancellation and return quickly once the deadline
// passes. Retry policy, if any, belongs inside the fetcher — the chain
// tries each strategy exactly once.
type Fetcher interface {
	// Name identifies the strategy in diagnostics, e.g. "pypi-api".
	Name() string

	// Kind is the strategy's source kind.
	Kind() SourceKind

	// Fetch retrieves raw documentation for the key.
	Fetch(ctx context.Context, key Key) (*RawResult, error)
}

// Chain runs an ordered list of fetch strategies until one succeeds.
//
// Strategies are tried strictly in order, fastest and most authoritative
// first. Each attempt is bounded by its own timeout; a timeout is that
// strategy's failure, not the chain's. Failures are accumulated so the
// caller can report which sources were tried and why each failed.
type Chain struct {
	fetchers []Fetcher
	timeout  time.Duration
}

// NewChain creates a chain over the given strategies with a per-source
// timeout applied to each attempt.
func NewChain(fetchers []Fetcher, perSourceTimeout time.Duration) *Chain {
	return &Chain{fetchers: fetchers, timeout: perSourceTimeout}
}

// Resolve tries each strategy in order and returns the first success.
// If every strategy fails, the returned *ExhaustedError carries one
// *SourceError per attempt. If ctx is cancelled between attempts the
// attempts made so far are still reported.
func (c *Chain) Resolve(ctx context.Context, key Key) (*RawResult, error) {
	attempts := make([]*SourceError, 0, len(c.fetchers))

	for _, f := range c.fetchers {
		if ctx.Err() != nil {
			attempts = append(attempts, &SourceError{
				Source: f.Name(),
				Kind:   f.Kind(),
				Err:    ctx.Err(),
			})
			break
		}

		raw, err := c.tryOne(ctx, f, key)
		if err == nil {
			return raw, nil
		}
		attempts = append(attempts, &SourceError{Source: f.Name(), Kind: f.Kind(), Err: err})
	}

	return nil, &ExhaustedError{Key: key, Attempts: attempts}
}

func (c *Chain) tryOne(ctx context.Context, f Fetcher, key Key) (*RawResult, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	observability.Resolve().OnSourceStart(ctx, key.Ecosystem, key.Package, f.Name())

	raw, err := f.Fetch(ctx, key)
	observability.Resolve().OnSourceComplete(ctx, key.Ecosystem, key.Package, f.Name(), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if raw == nil || len(raw.Content) == 0 {
		return nil, errEmptyContent
	}
	if raw.FetchedAt.IsZero() {
		raw.FetchedAt = time.Now()
	}
	return raw, nil
}

// errEmptyContent marks a fetcher that "succeeded" with nothing usable.
var errEmptyContent = &emptyContentError{}

type emptyContentError struct{}

func (*emptyContentError) Error() string { return "fetcher returned empty content" }
