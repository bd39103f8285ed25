// Package golang resolves documentation for Go import paths: go doc output
// first, then a pkg.go.dev scrape for modules outside the local module
// graph.
package golang

import (
	"context"
	"fmt"
	"time"

	"github.com/pkgdex/pkgdex/pkg/cache"
	"github.com/pkgdex/pkgdex/pkg/docs"
	"github.com/pkgdex/pkgdex/pkg/ecosystems/fetch"
	"github.com/pkgdex/pkgdex/pkg/localtool"
	"github.com/pkgdex/pkgdex/pkg/markdown"
	"github.com/pkgdex/pkgdex/pkg/registry"
)

const pkgGoDev = "https://pkg.go.dev"

const scrapeTTL = time.Hour

// Fetchers returns the resolution strategies for the go ecosystem, in
// priority order.
func Fetchers(backend cache.Cache) []docs.Fetcher {
	goTool := localtool.New("go")
	scraper := registry.NewClient(backend, nil)

	return []docs.Fetcher{
		&fetch.Func{
			FetchName: "go-doc",
			Source:    docs.SourceLocalTool,
			Do: func(ctx context.Context, key docs.Key) ([]byte, error) {
				target := key.Package
				if key.Version != "" {
					target += "@" + key.Version
				}
				out, err := goTool.Run(ctx, "doc", "-all", target)
				if err != nil {
					return nil, err
				}
				return fetch.ToolOutput(key.Package, out), nil
			},
		},
		&fetch.Func{
			FetchName: "pkg.go.dev",
			Source:    docs.SourceWebScrape,
			Do: func(ctx context.Context, key docs.Key) ([]byte, error) {
				url := fmt.Sprintf("%s/%s", pkgGoDev, key.Package)
				if key.Version != "" {
					url = fmt.Sprintf("%s/%s@%s", pkgGoDev, key.Package, key.Version)
				}
				html, err := scraper.CachedText(ctx, "godev:"+url, scrapeTTL, func() (string, error) {
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
