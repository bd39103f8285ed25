package mcp

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pkgdex/pkgdex/pkg/docs"
)

type staticFetcher struct{ content string }

func (f *staticFetcher) Name() string          { return "static" }
func (f *staticFetcher) Kind() docs.SourceKind { return docs.SourceRegistryAPI }

func (f *staticFetcher) Fetch(ctx context.Context, key docs.Key) (*docs.RawResult, error) {
	if f.content == "" {
		return nil, io.ErrUnexpectedEOF
	}
	return &docs.RawResult{
		Content:   []byte(f.content),
		Kind:      docs.SourceRegistryAPI,
		FetchedAt: time.Now(),
	}, nil
}

const readme = "# dbkit\n\nDatabase toolkit.\n\n## API\n\nfunc Connect(dsn string) error\n"

func testHandlers(content string) *Handlers {
	engine := docs.New(docs.Config{},
		map[string][]docs.Fetcher{"python": {&staticFetcher{content: content}}})
	return NewHandlers(engine)
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

// resultPayload decodes the JSON text content of a tool result.
func resultPayload(t *testing.T, res *mcp.CallToolResult) map[string]any {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty result content")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content = %T, want text", res.Content[0])
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(text.Text), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	return payload
}

func TestHandleResolve(t *testing.T) {
	h := testHandlers(readme)

	res, err := h.HandleResolve(context.Background(), callRequest(map[string]any{
		"ecosystem": "py",
		"package":   "dbkit",
	}))
	if err != nil {
		t.Fatalf("HandleResolve() error = %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %+v", res)
	}

	payload := resultPayload(t, res)
	sections, ok := payload["sections"].([]any)
	if !ok || len(sections) != 2 {
		t.Errorf("sections = %v", payload["sections"])
	}
}

func TestHandleResolveBadEcosystem(t *testing.T) {
	h := testHandlers(readme)

	res, err := h.HandleResolve(context.Background(), callRequest(map[string]any{
		"ecosystem": "cobol",
		"package":   "dbkit",
	}))
	if err != nil {
		t.Fatalf("HandleResolve() error = %v", err)
	}
	if !res.IsError {
		t.Fatal("expected error result")
	}
	payload := resultPayload(t, res)
	errObj, _ := payload["error"].(map[string]any)
	if errObj["code"] != "INVALID_ECOSYSTEM" {
		t.Errorf("code = %v", errObj["code"])
	}
}

func TestHandleResolveExhausted(t *testing.T) {
	h := testHandlers("")

	res, err := h.HandleResolve(context.Background(), callRequest(map[string]any{
		"ecosystem": "python",
		"package":   "ghost",
	}))
	if err != nil {
		t.Fatalf("HandleResolve() error = %v", err)
	}
	if !res.IsError {
		t.Fatal("expected error result")
	}
	payload := resultPayload(t, res)
	errObj, _ := payload["error"].(map[string]any)
	if errObj["code"] != "SOURCES_EXHAUSTED" {
		t.Errorf("code = %v", errObj["code"])
	}
}

func TestHandleSearch(t *testing.T) {
	h := testHandlers(readme)

	res, err := h.HandleSearch(context.Background(), callRequest(map[string]any{
		"ecosystem": "python",
		"package":   "dbkit",
		"query":     "connect",
		"limit":     1,
	}))
	if err != nil {
		t.Fatalf("HandleSearch() error = %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %+v", res)
	}

	payload := resultPayload(t, res)
	results, ok := payload["results"].([]any)
	if !ok || len(results) != 1 {
		t.Fatalf("results = %v", payload["results"])
	}
	first, _ := results[0].(map[string]any)
	if first["label"] != "api" {
		t.Errorf("top label = %v", first["label"])
	}
}

func TestToolRegistryNames(t *testing.T) {
	for _, name := range []string{"docs_resolve", "docs_search"} {
		entry, ok := toolRegistry[name]
		if !ok {
			t.Errorf("tool %q not registered", name)
			continue
		}
		if entry.def.Name != name {
			t.Errorf("tool def name = %q, want %q", entry.def.Name, name)
		}
	}
}
