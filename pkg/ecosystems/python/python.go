// Package python resolves documentation for Python packages: pydoc for
// anything importable locally, pip metadata for installed distributions,
// the PyPI JSON API otherwise.
package python

import (
	"context"

	"github.com/pkgdex/pkgdex/pkg/cache"
	"github.com/pkgdex/pkgdex/pkg/docs"
	"github.com/pkgdex/pkgdex/pkg/ecosystems/fetch"
	"github.com/pkgdex/pkgdex/pkg/localtool"
	"github.com/pkgdex/pkgdex/pkg/registry/pypi"
)

// Fetchers returns the resolution strategies for the python ecosystem, in
// priority order.
func Fetchers(backend cache.Cache) []docs.Fetcher {
	python := localtool.New("python3")
	api := pypi.NewClient(backend)

	return []docs.Fetcher{
		&fetch.Func{
			FetchName: "pydoc",
			Source:    docs.SourceLocalTool,
			Do: func(ctx context.Context, key docs.Key) ([]byte, error) {
				// Import names use underscores where distribution names
				// use hyphens.
				module := importName(key.Package)
				out, err := python.Run(ctx, "-m", "pydoc", module)
				if err != nil {
					return nil, err
				}
				return fetch.ToolOutput(key.Package, out), nil
			},
		},
		&fetch.Func{
			FetchName: "pip-show",
			Source:    docs.SourceLocalInstall,
			Do: func(ctx context.Context, key docs.Key) ([]byte, error) {
				// Installed-package metadata: name, summary, home page.
				// Thin, but local and instant when pydoc has nothing.
				out, err := python.Run(ctx, "-m", "pip", "show", key.Package)
				if err != nil {
					return nil, err
				}
				return fetch.ToolOutput(key.Package, out), nil
			},
		},
		&fetch.Func{
			FetchName: "pypi-api",
			Source:    docs.SourceRegistryAPI,
			Do: func(ctx context.Context, key docs.Key) ([]byte, error) {
				desc, err := api.FetchDescription(ctx, key.Package, key.Version)
				if err != nil {
					return nil, err
				}
				// Markdown and reST alike flow through the normalizer;
				// reST headings degrade to plain paragraphs, which still
				// yields a usable description section.
				return []byte(desc.Text), nil
			},
		},
	}
}

func importName(pkg string) string {
	out := make([]byte, len(pkg))
	for i := 0; i < len(pkg); i++ {
		if pkg[i] == '-' {
			out[i] = '_'
		} else {
			out[i] = pkg[i]
		}
	}
	return string(out)
}
