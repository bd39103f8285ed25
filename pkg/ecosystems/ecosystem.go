// Package ecosystems registers the supported package ecosystems and
// assembles their documentation fetch chains.
package ecosystems

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkgdex/pkgdex/pkg/cache"
	"github.com/pkgdex/pkgdex/pkg/docs"
	"github.com/pkgdex/pkgdex/pkg/ecosystems/golang"
	"github.com/pkgdex/pkgdex/pkg/ecosystems/javascript"
	"github.com/pkgdex/pkgdex/pkg/ecosystems/python"
	"github.com/pkgdex/pkgdex/pkg/ecosystems/ruby"
	"github.com/pkgdex/pkgdex/pkg/ecosystems/rust"
)

// Ecosystem describes one supported package ecosystem.
type Ecosystem struct {
	// Name is the canonical ecosystem identifier.
	Name string

	// Aliases are accepted alternative names (CLI shorthands, registry
	// names users reach for).
	Aliases []string

	// Fetchers builds the ordered resolution strategies, sharing the
	// given cache backend for raw HTTP payloads.
	Fetchers func(backend cache.Cache) []docs.Fetcher
}

var supported = []Ecosystem{
	{Name: "go", Aliases: []string{"golang"}, Fetchers: golang.Fetchers},
	{Name: "python", Aliases: []string{"py", "pypi"}, Fetchers: python.Fetchers},
	{Name: "javascript", Aliases: []string{"js", "node", "npm"}, Fetchers: javascript.Fetchers},
	{Name: "rust", Aliases: []string{"crates", "cargo"}, Fetchers: rust.Fetchers},
	{Name: "ruby", Aliases: []string{"gem", "rubygems"}, Fetchers: ruby.Fetchers},
}

// Names returns the canonical ecosystem names, sorted.
func Names() []string {
	names := make([]string, 0, len(supported))
	for _, e := range supported {
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names
}

// Canonical resolves a user-supplied ecosystem name or alias to its
// canonical form.
func Canonical(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, e := range supported {
		if e.Name == name {
			return e.Name, nil
		}
		for _, alias := range e.Aliases {
			if alias == name {
				return e.Name, nil
			}
		}
	}
	return "", fmt.Errorf("unsupported ecosystem %q (supported: %s)",
		name, strings.Join(Names(), ", "))
}

// BuildFetchers assembles the per-ecosystem fetch chains the engine is
// constructed with. All registry clients share the given cache backend.
func BuildFetchers(backend cache.Cache) map[string][]docs.Fetcher {
	out := make(map[string][]docs.Fetcher, len(supported))
	for _, e := range supported {
		out[e.Name] = e.Fetchers(backend)
	}
	return out
}
