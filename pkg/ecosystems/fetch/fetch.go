// Package fetch provides the building blocks ecosystem adapters compose
// into documentation fetch strategies.
package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkgdex/pkgdex/pkg/docs"
)

// Func adapts a closure into a docs.Fetcher. Ecosystem adapters use it to
// wrap tool runners, registry clients, and scrapers without a type each.
type Func struct {
	FetchName string
	Source    docs.SourceKind
	Do        func(ctx context.Context, key docs.Key) ([]byte, error)
}

func (f *Func) Name() string          { return f.FetchName }
func (f *Func) Kind() docs.SourceKind { return f.Source }

func (f *Func) Fetch(ctx context.Context, key docs.Key) (*docs.RawResult, error) {
	content, err := f.Do(ctx, key)
	if err != nil {
		return nil, err
	}
	return &docs.RawResult{Content: content, Kind: f.Source, FetchedAt: time.Now()}, nil
}

// ToolOutput wraps plain command output as a markdown document with the
// package name as title and the output under an API heading, so symbol
// extraction and section labeling see the structure they expect.
func ToolOutput(pkg string, out []byte) []byte {
	text := strings.TrimSpace(string(out))
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n## API\n\n%s\n", pkg, text)
	return []byte(b.String())
}
