// Package rust resolves documentation for crates: the crates.io readme
// endpoint first, then a docs.rs scrape for crates that publish docs but no
// readme.
package rust

import (
	"context"
	"fmt"
	"time"

	"github.com/pkgdex/pkgdex/pkg/cache"
	"github.com/pkgdex/pkgdex/pkg/docs"
	"github.com/pkgdex/pkgdex/pkg/ecosystems/fetch"
	"github.com/pkgdex/pkgdex/pkg/markdown"
	"github.com/pkgdex/pkgdex/pkg/registry"
	"github.com/pkgdex/pkgdex/pkg/registry/crates"
)

const docsRS = "https://docs.rs"

const scrapeTTL = time.Hour

// Fetchers returns the resolution strategies for the rust ecosystem, in
// priority order.
func Fetchers(backend cache.Cache) []docs.Fetcher {
	api := crates.NewClient(backend)
	scraper := registry.NewClient(backend, nil)

	return []docs.Fetcher{
		&fetch.Func{
			FetchName: "crates-io",
			Source:    docs.SourceRegistryAPI,
			Do: func(ctx context.Context, key docs.Key) ([]byte, error) {
				html, err := api.FetchReadme(ctx, key.Package, key.Version)
				if err != nil {
					return nil, err
				}
				return markdown.FromHTML([]byte(html)), nil
			},
		},
		&fetch.Func{
			FetchName: "docs.rs",
			Source:    docs.SourceWebScrape,
			Do: func(ctx context.Context, key docs.Key) ([]byte, error) {
				version := key.Version
				if version == "" {
					version = "latest"
				}
				crate := registry.NormalizePkgName(key.Package)
				url := fmt.Sprintf("%s/%s/%s", docsRS, crate, version)
				html, err := scraper.CachedText(ctx, "docsrs:"+url, scrapeTTL, func() (string, error) {
					return scraper.GetText(ctx, url)
				})
				if err != nil {
					return nil, err
				}
				return markdown.FromHTML([]byte(html)), nil
			},
		},
	}
}
