// Package ruby resolves documentation for gems: ri for installed gems,
// then the RubyGems API.
package ruby

import (
	"context"

	"github.com/pkgdex/pkgdex/pkg/cache"
	"github.com/pkgdex/pkgdex/pkg/docs"
	"github.com/pkgdex/pkgdex/pkg/ecosystems/fetch"
	"github.com/pkgdex/pkgdex/pkg/localtool"
	"github.com/pkgdex/pkgdex/pkg/registry/rubygems"
)

// Fetchers returns the resolution strategies for the ruby ecosystem, in
// priority order.
func Fetchers(backend cache.Cache) []docs.Fetcher {
	ri := localtool.New("ri")
	api := rubygems.NewClient(backend)

	return []docs.Fetcher{
		&fetch.Func{
			FetchName: "ri",
			Source:    docs.SourceLocalTool,
			Do: func(ctx context.Context, key docs.Key) ([]byte, error) {
				out, err := ri.Run(ctx, "--format=markdown", "--no-pager", key.Package)
				if err != nil {
					return nil, err
				}
				return fetch.ToolOutput(key.Package, out), nil
			},
		},
		&fetch.Func{
			FetchName: "rubygems-api",
			Source:    docs.SourceRegistryAPI,
			Do: func(ctx context.Context, key docs.Key) ([]byte, error) {
				info, err := api.FetchInfo(ctx, key.Package, key.Version)
				if err != nil {
					return nil, err
				}
				return []byte(info), nil
			},
		},
	}
}
