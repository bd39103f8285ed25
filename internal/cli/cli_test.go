package cli

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkgdex/pkgdex/internal/config"
	"github.com/pkgdex/pkgdex/pkg/cache"
)

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg-cache", "pkgdex"), dir)
}

func TestCacheDirHomeFallback(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", "/tmp/fake-home")

	dir, err := cacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/fake-home", ".cache", "pkgdex"), dir)
}

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	names := make(map[string]bool)
	for _, sub := range root.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"docs", "search", "ecosystems", "cache", "serve", "mcp", "completion"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestNewBackendSelection(t *testing.T) {
	c := New(io.Discard, LogInfo)
	ctx := context.Background()

	c.cfg = config.Default()
	c.cfg.Cache.Backend = "memory"
	backend, err := c.newBackend(ctx, false)
	require.NoError(t, err)
	assert.IsType(t, &cache.MemoryCache{}, backend)

	c.cfg.Cache.Backend = "none"
	backend, err = c.newBackend(ctx, false)
	require.NoError(t, err)
	assert.IsType(t, &cache.NullCache{}, backend)

	// noCache overrides whatever the config says.
	c.cfg.Cache.Backend = "memory"
	backend, err = c.newBackend(ctx, true)
	require.NoError(t, err)
	assert.IsType(t, &cache.NullCache{}, backend)

	c.cfg.Cache.Backend = "file"
	c.cfg.Cache.Dir = t.TempDir()
	backend, err = c.newBackend(ctx, false)
	require.NoError(t, err)
	assert.IsType(t, &cache.FileCache{}, backend)
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n\n  b", indent("a\n\nb", "  "))
	assert.Equal(t, "", indent("", "> "))
}
