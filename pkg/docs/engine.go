package docs

import (
	"context"
	"sort"
	"strings"
	"time"

	apperrors "github.com/pkgdex/pkgdex/pkg/errors"
	"github.com/pkgdex/pkgdex/pkg/markdown"
	"github.com/pkgdex/pkgdex/pkg/observability"
)

// Config tunes the resolution engine. The zero value is usable; every
// field falls back to a sensible default.
type Config struct {
	// Capacity bounds the document cache by entry count.
	Capacity int

	// MaxBytes bounds the document cache by estimated bytes. 0 disables
	// the byte bound.
	MaxBytes int

	// DocumentTTL is how long a successfully resolved document stays fresh.
	DocumentTTL time.Duration

	// NegativeTTL is how long degraded documents and failed resolutions
	// are remembered before sources are retried.
	NegativeTTL time.Duration

	// PerSourceTimeout bounds each individual fetch strategy.
	PerSourceTimeout time.Duration

	// OverallDeadline bounds a whole resolution as seen by the caller.
	OverallDeadline time.Duration

	// FuzzyThreshold is the minimum Jaro-Winkler similarity for a fuzzy
	// search match.
	FuzzyThreshold float64

	// DisableFuzzy turns off approximate search matching entirely.
	DisableFuzzy bool
}

func (c Config) withDefaults() Config {
	if c.Capacity <= 0 {
		c.Capacity = 256
	}
	if c.MaxBytes < 0 {
		c.MaxBytes = 0
	}
	if c.DocumentTTL <= 0 {
		c.DocumentTTL = 15 * time.Minute
	}
	if c.NegativeTTL <= 0 {
		c.NegativeTTL = time.Minute
	}
	if c.PerSourceTimeout <= 0 {
		c.PerSourceTimeout = 5 * time.Second
	}
	if c.OverallDeadline <= 0 {
		c.OverallDeadline = 20 * time.Second
	}
	if c.FuzzyThreshold <= 0 || c.FuzzyThreshold > 1 {
		c.FuzzyThreshold = 0.82
	}
	return c
}

// Engine resolves, caches, and searches package documentation across
// ecosystems. One engine is shared by all surfaces of a process.
type Engine struct {
	cfg    Config
	cache  *DocCache
	policy Policy
	chains map[string]*Chain
}

// Option customizes an Engine at construction time.
type Option func(*Engine)

// WithPolicy overrides the default section normalization policy.
func WithPolicy(p Policy) Option {
	return func(e *Engine) { e.policy = p }
}

// New builds an engine over the given per-ecosystem fetch strategies.
// Each strategy list is ordered: cheapest and most authoritative first.
func New(cfg Config, fetchers map[string][]Fetcher, opts ...Option) *Engine {
	cfg = cfg.withDefaults()
	e := &Engine{
		cfg:    cfg,
		cache:  NewDocCache(cfg.Capacity, cfg.MaxBytes, cfg.DocumentTTL, cfg.NegativeTTL),
		policy: DefaultPolicy(),
		chains: make(map[string]*Chain, len(fetchers)),
	}
	for eco, list := range fetchers {
		e.chains[eco] = NewChain(list, cfg.PerSourceTimeout)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ecosystems lists the supported ecosystem names, sorted.
func (e *Engine) Ecosystems() []string {
	names := make([]string, 0, len(e.chains))
	for name := range e.chains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveDocs resolves the documentation for key. When key.Symbol is set
// the result is narrowed to the sections covering that symbol; the full
// document stays cached either way, so narrowing never costs a refetch.
//
// Errors are typed: validation failures, *ExhaustedError when every source
// failed, *DeadlineError when the caller's deadline expired first.
func (e *Engine) ResolveDocs(ctx context.Context, key Key) (*Document, error) {
	doc, err := e.resolve(ctx, key)
	if err != nil {
		return nil, err
	}
	if key.Symbol == "" {
		return doc, nil
	}
	return narrowToSymbol(doc, key.Symbol)
}

// ResolveSearch resolves the documentation for key and ranks its sections
// against query. A symbol on the key takes precedence when the resolved
// document contains it: the symbol name becomes the effective query and
// narrowing is skipped so the match is ranked within the full document.
// When the document has no such symbol the caller's query is searched
// instead. Fuzzy matching applies only when both the caller asks for it
// and the engine has it enabled.
func (e *Engine) ResolveSearch(ctx context.Context, key Key, query string, fuzzy bool) (*Document, []Result, error) {
	if key.Symbol == "" {
		if err := apperrors.ValidateQuery(query); err != nil {
			return nil, nil, err
		}
	}

	doc, err := e.resolve(ctx, key)
	if err != nil {
		return nil, nil, err
	}

	effective := query
	if key.Symbol != "" && (doc.Symbol(key.Symbol) != nil || strings.TrimSpace(query) == "") {
		effective = key.Symbol
	}

	start := time.Now()
	results := Search(doc, effective, fuzzy && !e.cfg.DisableFuzzy, e.cfg.FuzzyThreshold)
	observability.Resolve().OnSearch(ctx, key.Ecosystem, key.Package, effective,
		len(results), time.Since(start))
	return doc, results, nil
}

// CacheLen reports the number of cached entries.
func (e *Engine) CacheLen() int { return e.cache.Len() }

// CachePurge drops every cached entry.
func (e *Engine) CachePurge() { e.cache.Purge() }

// CacheSweep removes expired entries eagerly and reports how many were
// reclaimed. Long-lived surfaces call this on a timer; short-lived ones
// can rely on lazy expiry alone.
func (e *Engine) CacheSweep() int { return e.cache.Sweep() }

// resolve validates the key and runs the cached fetch-normalize pipeline.
// The cache is keyed by package and version only; symbols and queries are
// views over the same document.
func (e *Engine) resolve(ctx context.Context, key Key) (*Document, error) {
	if err := e.validate(key); err != nil {
		return nil, err
	}

	chain, ok := e.chains[key.Ecosystem]
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeInvalidEcosystem,
			"unsupported ecosystem %q", key.Ecosystem)
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.OverallDeadline)
	defer cancel()

	cacheKey := key
	cacheKey.Symbol = ""

	return e.cache.GetOrFetch(ctx, cacheKey, func() (*Document, error) {
		// Detached from the caller's context: a fetch survives the
		// requesting caller so later waiters can still share its result.
		fctx, fcancel := context.WithTimeout(context.Background(), e.cfg.OverallDeadline)
		defer fcancel()

		raw, err := chain.Resolve(fctx, cacheKey)
		if err != nil {
			return nil, err
		}

		tree := markdown.Parse(raw.Content)
		doc := Normalize(tree, cacheKey, raw.Kind, e.policy, time.Now())
		observability.Resolve().OnNormalize(fctx, cacheKey.Ecosystem, cacheKey.Package,
			len(doc.Sections), doc.Degraded)
		return doc, nil
	})
}

func (e *Engine) validate(key Key) error {
	if key.Ecosystem == "" {
		return apperrors.New(apperrors.ErrCodeInvalidEcosystem, "ecosystem is required")
	}
	if err := apperrors.ValidatePackageName(key.Package); err != nil {
		return err
	}
	if key.Symbol != "" {
		if err := apperrors.ValidateSymbolName(key.Symbol); err != nil {
			return err
		}
	}
	return nil
}

// narrowToSymbol builds a view of doc limited to the symbol's section,
// keeping the description for context. The returned document shares
// section values with doc but is safe to render independently.
func narrowToSymbol(doc *Document, symbol string) (*Document, error) {
	sym := doc.Symbol(symbol)
	if sym == nil {
		return nil, apperrors.New(apperrors.ErrCodeSymbolNotFound,
			"symbol %q not found in %s documentation", symbol, doc.Key.Package)
	}

	narrowed := &Document{
		Key:      doc.Key,
		Source:   doc.Source,
		CachedAt: doc.CachedAt,
		Degraded: doc.Degraded,
	}
	narrowed.Key.Symbol = symbol

	for i, sec := range doc.Sections {
		if i == sym.SectionIndex || (sec.Label == LabelDescription && i != sym.SectionIndex) {
			narrowed.Sections = append(narrowed.Sections, sec)
		}
	}
	narrowed.Symbols = []SymbolRef{*sym}
	// Rebase the symbol onto the narrowed section list.
	for i, sec := range narrowed.Sections {
		if sec.Order == doc.Sections[sym.SectionIndex].Order {
			narrowed.Symbols[0].SectionIndex = i
		}
	}
	return narrowed, nil
}
