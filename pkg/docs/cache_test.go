package docs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func testDoc(key Key, body string) *Document {
	return &Document{
		Key:      key,
		Sections: []Section{{Label: LabelDescription, Body: body}},
		Source:   SourceRegistryAPI,
		CachedAt: time.Now(),
	}
}

func TestDocCachePutGet(t *testing.T) {
	c := NewDocCache(4, 0, time.Minute, time.Second)
	key := NewKey("python", "requests", "", "")

	if _, ok := c.Get(key); ok {
		t.Fatal("Get() hit on empty cache")
	}

	c.Put(key, testDoc(key, "http for humans"), time.Minute)
	doc, ok := c.Get(key)
	if !ok {
		t.Fatal("Get() miss after Put")
	}
	if doc.Sections[0].Body != "http for humans" {
		t.Errorf("body = %q", doc.Sections[0].Body)
	}
}

func TestDocCacheTTLExpiry(t *testing.T) {
	c := NewDocCache(4, 0, time.Minute, time.Second)
	base := time.Now()
	c.now = func() time.Time { return base }

	key := NewKey("npm", "express", "", "")
	c.Put(key, testDoc(key, "web framework"), time.Minute)

	base = base.Add(30 * time.Second)
	if _, ok := c.Get(key); !ok {
		t.Fatal("entry expired before its TTL")
	}

	base = base.Add(31 * time.Second)
	if _, ok := c.Get(key); ok {
		t.Fatal("entry still fresh after its TTL")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after expiry reclaim, want 0", c.Len())
	}
}

func TestDocCacheLRUEviction(t *testing.T) {
	c := NewDocCache(2, 0, time.Minute, time.Second)

	a := NewKey("go", "a", "", "")
	b := NewKey("go", "b", "", "")
	d := NewKey("go", "d", "", "")

	c.Put(a, testDoc(a, "a"), time.Minute)
	c.Put(b, testDoc(b, "b"), time.Minute)

	// Touch a so b becomes least recently used.
	if _, ok := c.Get(a); !ok {
		t.Fatal("Get(a) miss")
	}

	c.Put(d, testDoc(d, "d"), time.Minute)

	if _, ok := c.Get(b); ok {
		t.Error("least recently used entry survived eviction")
	}
	if _, ok := c.Get(a); !ok {
		t.Error("recently used entry was evicted")
	}
	if _, ok := c.Get(d); !ok {
		t.Error("newest entry was evicted")
	}
}

func TestDocCacheEvictsExpiredFirst(t *testing.T) {
	c := NewDocCache(2, 0, time.Minute, time.Second)
	base := time.Now()
	c.now = func() time.Time { return base }

	short := NewKey("go", "short", "", "")
	long := NewKey("go", "long", "", "")
	next := NewKey("go", "next", "", "")

	c.Put(short, testDoc(short, "short"), time.Second)
	c.Put(long, testDoc(long, "long"), time.Hour)

	// Make short expired but long the LRU tail.
	base = base.Add(2 * time.Second)
	c.lru.MoveToBack(c.entries[long])

	c.Put(next, testDoc(next, "next"), time.Minute)

	if _, ok := c.Get(long); !ok {
		t.Error("unexpired entry was evicted ahead of an expired one")
	}
	if _, ok := c.Get(short); ok {
		t.Error("expired entry survived eviction")
	}
}

func TestDocCacheByteBound(t *testing.T) {
	key := NewKey("go", "big", "", "")
	doc := testDoc(key, "0123456789")
	c := NewDocCache(100, doc.SizeEstimate(), time.Minute, time.Second)

	c.Put(key, doc, time.Minute)
	other := NewKey("go", "other", "", "")
	c.Put(other, testDoc(other, "0123456789"), time.Minute)

	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1 under byte bound", c.Len())
	}
}

func TestGetOrFetchSingleFlight(t *testing.T) {
	c := NewDocCache(4, 0, time.Minute, time.Second)
	key := NewKey("rust", "serde", "", "")

	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func() (*Document, error) {
		calls.Add(1)
		<-release
		return testDoc(key, "serialization"), nil
	}

	const waiters = 8
	var wg sync.WaitGroup
	started := make(chan struct{}, waiters)
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started <- struct{}{}
			doc, err := c.GetOrFetch(context.Background(), key, fetch)
			if err != nil {
				t.Errorf("GetOrFetch() error = %v", err)
				return
			}
			if doc.Sections[0].Body != "serialization" {
				t.Errorf("body = %q", doc.Sections[0].Body)
			}
		}()
	}
	for i := 0; i < waiters; i++ {
		<-started
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("fetch ran %d times for %d concurrent waiters, want 1", got, waiters)
	}
}

func TestGetOrFetchNegativeCaching(t *testing.T) {
	c := NewDocCache(4, 0, time.Minute, time.Minute)
	key := NewKey("python", "nope", "", "")
	failure := &ExhaustedError{Key: key}

	var calls atomic.Int32
	fetch := func() (*Document, error) {
		calls.Add(1)
		return nil, failure
	}

	for i := 0; i < 3; i++ {
		_, err := c.GetOrFetch(context.Background(), key, fetch)
		var exhausted *ExhaustedError
		if !errors.As(err, &exhausted) {
			t.Fatalf("call %d: error = %T, want *ExhaustedError", i, err)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("fetch ran %d times within the negative TTL, want 1", got)
	}
}

func TestGetOrFetchDegradedUsesNegativeTTL(t *testing.T) {
	c := NewDocCache(4, 0, time.Hour, time.Second)
	base := time.Now()
	c.now = func() time.Time { return base }

	key := NewKey("npm", "empty", "", "")
	var calls atomic.Int32
	fetch := func() (*Document, error) {
		calls.Add(1)
		doc := testDoc(key, "nothing extracted")
		doc.Degraded = true
		return doc, nil
	}

	if _, err := c.GetOrFetch(context.Background(), key, fetch); err != nil {
		t.Fatal(err)
	}
	base = base.Add(2 * time.Second)
	if _, err := c.GetOrFetch(context.Background(), key, fetch); err != nil {
		t.Fatal(err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("fetch ran %d times, want 2 after degraded entry expired", got)
	}
}

func TestGetOrFetchCallerDeadline(t *testing.T) {
	c := NewDocCache(4, 0, time.Minute, time.Second)
	key := NewKey("ruby", "rails", "", "")

	done := make(chan struct{})
	fetch := func() (*Document, error) {
		defer close(done)
		time.Sleep(50 * time.Millisecond)
		return testDoc(key, "web on rails"), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	_, err := c.GetOrFetch(ctx, key, fetch)
	var deadline *DeadlineError
	if !errors.As(err, &deadline) {
		t.Fatalf("error = %T (%v), want *DeadlineError", err, err)
	}

	// The fetch keeps going and its result lands in the cache.
	<-done
	time.Sleep(10 * time.Millisecond)
	if _, ok := c.Get(key); !ok {
		t.Error("abandoned fetch result never reached the cache")
	}
}
