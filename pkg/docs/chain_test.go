package docs

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeFetcher struct {
	name  string
	kind  SourceKind
	raw   *RawResult
	err   error
	block bool // wait for ctx cancellation instead of returning
	calls int
}

func (f *fakeFetcher) Name() string     { return f.name }
func (f *fakeFetcher) Kind() SourceKind { return f.kind }

func (f *fakeFetcher) Fetch(ctx context.Context, _ Key) (*RawResult, error) {
	f.calls++
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.raw, nil
}

func TestChainFirstSuccessStops(t *testing.T) {
	first := &fakeFetcher{name: "local", kind: SourceLocalTool,
		raw: &RawResult{Content: []byte("docs"), Kind: SourceLocalTool}}
	second := &fakeFetcher{name: "registry", kind: SourceRegistryAPI,
		raw: &RawResult{Content: []byte("other"), Kind: SourceRegistryAPI}}

	chain := NewChain([]Fetcher{first, second}, time.Second)
	raw, err := chain.Resolve(context.Background(), NewKey("python", "requests", "", ""))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if string(raw.Content) != "docs" {
		t.Errorf("content = %q, want %q", raw.Content, "docs")
	}
	if second.calls != 0 {
		t.Errorf("second fetcher called %d times, want 0", second.calls)
	}
}

func TestChainFallsThroughFailures(t *testing.T) {
	first := &fakeFetcher{name: "local", kind: SourceLocalTool, err: errors.New("not installed")}
	second := &fakeFetcher{name: "registry", kind: SourceRegistryAPI,
		raw: &RawResult{Content: []byte("docs"), Kind: SourceRegistryAPI}}

	chain := NewChain([]Fetcher{first, second}, time.Second)
	raw, err := chain.Resolve(context.Background(), NewKey("python", "requests", "", ""))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if raw.Kind != SourceRegistryAPI {
		t.Errorf("kind = %q, want %q", raw.Kind, SourceRegistryAPI)
	}
}

func TestChainExhaustedAccumulatesAttempts(t *testing.T) {
	first := &fakeFetcher{name: "local", kind: SourceLocalTool, err: errors.New("not installed")}
	second := &fakeFetcher{name: "registry", kind: SourceRegistryAPI, err: errors.New("503")}

	chain := NewChain([]Fetcher{first, second}, time.Second)
	_, err := chain.Resolve(context.Background(), NewKey("python", "requests", "", ""))

	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("Resolve() error = %T, want *ExhaustedError", err)
	}
	if len(exhausted.Attempts) != 2 {
		t.Fatalf("attempts = %d, want 2", len(exhausted.Attempts))
	}
	if exhausted.Attempts[0].Source != "local" || exhausted.Attempts[1].Source != "registry" {
		t.Errorf("attempt sources = %q, %q", exhausted.Attempts[0].Source, exhausted.Attempts[1].Source)
	}
}

func TestChainPerSourceTimeout(t *testing.T) {
	slow := &fakeFetcher{name: "scrape", kind: SourceWebScrape, block: true}
	fast := &fakeFetcher{name: "registry", kind: SourceRegistryAPI,
		raw: &RawResult{Content: []byte("docs"), Kind: SourceRegistryAPI}}

	chain := NewChain([]Fetcher{slow, fast}, 20*time.Millisecond)
	raw, err := chain.Resolve(context.Background(), NewKey("rust", "serde", "", ""))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if raw.Kind != SourceRegistryAPI {
		t.Errorf("kind = %q, want fallback to %q", raw.Kind, SourceRegistryAPI)
	}
}

func TestChainEmptyContentIsFailure(t *testing.T) {
	empty := &fakeFetcher{name: "local", kind: SourceLocalTool,
		raw: &RawResult{Content: nil, Kind: SourceLocalTool}}

	chain := NewChain([]Fetcher{empty}, time.Second)
	_, err := chain.Resolve(context.Background(), NewKey("go", "fmt", "", ""))

	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("Resolve() error = %T, want *ExhaustedError", err)
	}
}

func TestChainCancelledContextRecordsAttempt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &fakeFetcher{name: "registry", kind: SourceRegistryAPI,
		raw: &RawResult{Content: []byte("docs"), Kind: SourceRegistryAPI}}
	chain := NewChain([]Fetcher{f}, time.Second)

	_, err := chain.Resolve(ctx, NewKey("ruby", "rails", "", ""))
	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("Resolve() error = %T, want *ExhaustedError", err)
	}
	if len(exhausted.Attempts) != 1 || !errors.Is(exhausted.Attempts[0].Err, context.Canceled) {
		t.Errorf("attempts = %+v, want one cancellation", exhausted.Attempts)
	}
	if f.calls != 0 {
		t.Errorf("fetcher called %d times after cancellation, want 0", f.calls)
	}
}
