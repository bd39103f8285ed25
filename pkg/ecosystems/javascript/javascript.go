// Package javascript resolves documentation for npm packages: the local
// node_modules readme first, then the configured npm registry.
package javascript

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkgdex/pkgdex/pkg/cache"
	"github.com/pkgdex/pkgdex/pkg/docs"
	"github.com/pkgdex/pkgdex/pkg/ecosystems/fetch"
	"github.com/pkgdex/pkgdex/pkg/registry/npm"
)

// readmeNames are tried in order inside an installed package directory.
var readmeNames = []string{"README.md", "README.markdown", "readme.md", "Readme.md", "README"}

// Fetchers returns the resolution strategies for the javascript ecosystem,
// in priority order.
func Fetchers(backend cache.Cache) []docs.Fetcher {
	api := npm.NewClient(backend)

	return []docs.Fetcher{
		&fetch.Func{
			FetchName: "node-modules",
			Source:    docs.SourceLocalInstall,
			Do: func(ctx context.Context, key docs.Key) ([]byte, error) {
				return readInstalledReadme(key.Package)
			},
		},
		&fetch.Func{
			FetchName: "npm-registry",
			Source:    docs.SourceRegistryAPI,
			Do: func(ctx context.Context, key docs.Key) ([]byte, error) {
				readme, err := api.FetchReadme(ctx, key.Package, key.Version)
				if err != nil {
					return nil, err
				}
				return []byte(readme), nil
			},
		},
	}
}

// readInstalledReadme walks node_modules directories from the working
// directory upward, the way Node's own resolution does.
func readInstalledReadme(pkg string) ([]byte, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	for {
		pkgDir := filepath.Join(dir, "node_modules", filepath.FromSlash(pkg))
		if info, err := os.Stat(pkgDir); err == nil && info.IsDir() {
			for _, name := range readmeNames {
				if data, err := os.ReadFile(filepath.Join(pkgDir, name)); err == nil {
					return data, nil
				}
			}
			return nil, fmt.Errorf("package %s installed but has no readme", pkg)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, fmt.Errorf("package %s not found in any node_modules", pkg)
		}
		dir = parent
	}
}
