package docs

import (
	"container/list"
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pkgdex/pkgdex/pkg/observability"
)

// DocCache is the bounded, TTL-expiring store for structured documents.
//
// Capacity is bounded by entry count and, optionally, by estimated byte
// size; eviction is strict LRU among unexpired entries, with expired
// entries always reclaimed first. Failed resolutions are cached briefly as
// negative entries so repeated lookups of a broken package back off instead
// of hammering failing sources.
//
// All methods are safe for concurrent use. The internal mutex only guards
// bookkeeping: fetch and normalize work triggered by [DocCache.GetOrFetch]
// always runs outside the critical section, so a slow upstream never blocks
// unrelated cache operations.
type DocCache struct {
	mu      sync.Mutex
	entries map[Key]*list.Element
	lru     *list.List // front = most recently used
	bytes   int

	capacity int
	maxBytes int // 0 = unbounded by size

	docTTL time.Duration
	negTTL time.Duration

	group singleflight.Group

	// now is replaceable in tests.
	now func() time.Time
}

// cacheEntry wraps either a document or a negative (failure) result.
type cacheEntry struct {
	key       Key
	doc       *Document // nil for negative entries
	err       error     // non-nil for negative entries
	expiresAt time.Time
	size      int
}

// NewDocCache creates a cache bounded to capacity entries and maxBytes
// estimated bytes (0 disables the byte bound). Successful documents live
// for docTTL; degraded documents and failures for negTTL.
func NewDocCache(capacity, maxBytes int, docTTL, negTTL time.Duration) *DocCache {
	if capacity <= 0 {
		capacity = 256
	}
	return &DocCache{
		entries:  make(map[Key]*list.Element),
		lru:      list.New(),
		capacity: capacity,
		maxBytes: maxBytes,
		docTTL:   docTTL,
		negTTL:   negTTL,
		now:      time.Now,
	}
}

// Get returns the cached document for key, if present and unexpired.
// A hit refreshes the entry's recency. Negative entries are not visible
// through Get; they only short-circuit [DocCache.GetOrFetch].
func (c *DocCache) Get(key Key) (*Document, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.lookup(key)
	if !ok || entry.doc == nil {
		observability.Cache().OnCacheMiss(context.Background(), "document")
		return nil, false
	}
	observability.Cache().OnCacheHit(context.Background(), "document")
	return entry.doc, true
}

// Put inserts or replaces the document for key with the given TTL,
// evicting as needed to stay under capacity.
func (c *DocCache) Put(key Key, doc *Document, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store(&cacheEntry{
		key:       key,
		doc:       doc,
		expiresAt: c.now().Add(ttl),
		size:      doc.SizeEstimate(),
	})
}

// GetOrFetch is the concurrency primitive behind every resolution:
//
//   - cached and unexpired: the entry is returned immediately (documents
//     and, within the negative TTL, failures alike);
//   - a fetch for key already in flight: the caller shares its result;
//   - otherwise fetch runs once and its result — success or failure — is
//     published identically to all waiters and recorded in the cache.
//
// The fetch itself is not bound to ctx: a caller whose context expires gets
// a *DeadlineError, but the in-flight fetch continues for the benefit of
// other and future waiters.
func (c *DocCache) GetOrFetch(ctx context.Context, key Key, fetch func() (*Document, error)) (*Document, error) {
	c.mu.Lock()
	if entry, ok := c.lookup(key); ok {
		c.mu.Unlock()
		if entry.err != nil {
			observability.Cache().OnCacheHit(ctx, "negative")
			return nil, entry.err
		}
		observability.Cache().OnCacheHit(ctx, "document")
		return entry.doc, nil
	}
	c.mu.Unlock()
	observability.Cache().OnCacheMiss(ctx, "document")

	ch := c.group.DoChan(key.String(), func() (any, error) {
		doc, err := fetch()
		c.publish(key, doc, err)
		if err != nil {
			return nil, err
		}
		return doc, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Document), nil
	case <-ctx.Done():
		return nil, &DeadlineError{Key: key}
	}
}

// publish records a completed fetch in the cache. Successful documents use
// the document TTL; degraded documents and failures use the negative TTL.
func (c *DocCache) publish(key Key, doc *Document, err error) {
	entry := &cacheEntry{key: key}
	switch {
	case err != nil:
		entry.err = err
		entry.expiresAt = c.now().Add(c.negTTL)
		entry.size = 64
	case doc.Degraded:
		entry.doc = doc
		entry.expiresAt = c.now().Add(c.negTTL)
		entry.size = doc.SizeEstimate()
	default:
		entry.doc = doc
		entry.expiresAt = c.now().Add(c.docTTL)
		entry.size = doc.SizeEstimate()
	}

	c.mu.Lock()
	c.store(entry)
	c.mu.Unlock()

	if entry.doc != nil {
		observability.Cache().OnCacheSet(context.Background(), "document", entry.size)
	} else {
		observability.Cache().OnCacheSet(context.Background(), "negative", entry.size)
	}
}

// Len returns the number of live entries, including not-yet-reclaimed
// expired ones.
func (c *DocCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Sweep removes every expired entry and returns how many were reclaimed.
// Expiry is otherwise handled lazily on lookup and eviction.
func (c *DocCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	now := c.now()
	for el := c.lru.Back(); el != nil; {
		prev := el.Prev()
		if entry := el.Value.(*cacheEntry); !entry.expiresAt.After(now) {
			c.remove(el, true)
			removed++
		}
		el = prev
	}
	return removed
}

// Purge drops every entry.
func (c *DocCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]*list.Element)
	c.lru.Init()
	c.bytes = 0
}

// lookup finds a fresh entry and refreshes its recency. Expired entries
// are reclaimed on sight. Caller holds c.mu.
func (c *DocCache) lookup(key Key) (*cacheEntry, bool) {
	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	entry := el.Value.(*cacheEntry)
	if !entry.expiresAt.After(c.now()) {
		c.remove(el, true)
		return nil, false
	}
	c.lru.MoveToFront(el)
	return entry, true
}

// store inserts or replaces an entry and evicts down to capacity.
// Caller holds c.mu.
func (c *DocCache) store(entry *cacheEntry) {
	if el, ok := c.entries[entry.key]; ok {
		c.remove(el, false)
	}
	el := c.lru.PushFront(entry)
	c.entries[entry.key] = el
	c.bytes += entry.size
	c.evict()
}

// evict reclaims expired entries first, then least-recently-used live ones,
// until both bounds are satisfied. Caller holds c.mu.
func (c *DocCache) evict() {
	over := func() bool {
		return c.lru.Len() > c.capacity || (c.maxBytes > 0 && c.bytes > c.maxBytes)
	}
	if !over() {
		return
	}

	// Expired entries go first regardless of recency.
	now := c.now()
	for el := c.lru.Back(); el != nil && over(); {
		prev := el.Prev()
		if entry := el.Value.(*cacheEntry); !entry.expiresAt.After(now) {
			c.remove(el, true)
		}
		el = prev
	}

	// Then strict LRU among what's left.
	for over() {
		el := c.lru.Back()
		if el == nil {
			return
		}
		c.remove(el, true)
	}
}

// remove unlinks an entry. Caller holds c.mu.
func (c *DocCache) remove(el *list.Element, evicted bool) {
	entry := el.Value.(*cacheEntry)
	c.lru.Remove(el)
	delete(c.entries, entry.key)
	c.bytes -= entry.size
	if evicted {
		keyType := "document"
		if entry.err != nil {
			keyType = "negative"
		}
		expired := !entry.expiresAt.After(c.now())
		observability.Cache().OnCacheEvict(context.Background(), keyType, expired)
	}
}
