package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	r := NoopResolveHooks{}
	r.OnSourceStart(ctx, "python", "requests", "pypi-api")
	r.OnSourceComplete(ctx, "python", "requests", "pypi-api", time.Second, nil)
	r.OnNormalize(ctx, "python", "requests", 4, false)
	r.OnSearch(ctx, "python", "requests", "session", 3, time.Millisecond)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "document")
	c.OnCacheMiss(ctx, "document")
	c.OnCacheSet(ctx, "document", 1024)
	c.OnCacheEvict(ctx, "document", true)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "pypi.org", "/pypi/requests/json")
	h.OnResponse(ctx, "GET", "pypi.org", "/pypi/requests/json", 200, time.Second)
	h.OnError(ctx, "GET", "pypi.org", "/pypi/requests/json", nil)
}

type testResolveHooks struct {
	NoopResolveHooks
	sources int
}

func (h *testResolveHooks) OnSourceStart(ctx context.Context, ecosystem, pkg, source string) {
	h.sources++
}

type testCacheHooks struct {
	NoopCacheHooks
	hits int
}

func (h *testCacheHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.hits++
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Resolve().(NoopResolveHooks); !ok {
		t.Error("Resolve() should return NoopResolveHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customResolve := &testResolveHooks{}
	SetResolveHooks(customResolve)
	if Resolve() != customResolve {
		t.Error("SetResolveHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Cache().OnCacheHit(context.Background(), "document")
	if customCache.hits != 1 {
		t.Errorf("hits = %d, want 1", customCache.hits)
	}

	// nil registration is ignored
	SetCacheHooks(nil)
	if Cache() != customCache {
		t.Error("SetCacheHooks(nil) should keep previous hooks")
	}

	Reset()
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset should restore noop hooks")
	}
}
