// Package cli implements the pkgdex command-line interface.
//
// Commands resolve package documentation (docs), search inside it (search),
// list supported ecosystems, manage the response cache, and run the HTTP
// and MCP server surfaces. All commands share one resolution engine built
// from the loaded configuration.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pkgdex/pkgdex/internal/config"
	"github.com/pkgdex/pkgdex/pkg/buildinfo"
	"github.com/pkgdex/pkgdex/pkg/cache"
	"github.com/pkgdex/pkgdex/pkg/docs"
	"github.com/pkgdex/pkgdex/pkg/ecosystems"
)

// appName is the application name used for directories and display.
const appName = "pkgdex"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "pkgdex resolves and searches package documentation",
		Long:         `pkgdex fetches documentation for packages across ecosystems (Go, Python, JavaScript, Rust, Ruby), normalizes it into labeled sections, and serves compact relevant slices of it from cache.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			if c.verbose {
				c.Logger.SetLevel(log.DebugLevel)
			} else if level, lerr := log.ParseLevel(cfg.Log.Level); lerr == nil {
				c.Logger.SetLevel(level)
			}
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/pkgdex/config.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.docsCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.ecosystemsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.mcpCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newEngine builds the shared resolution engine from configuration.
func (c *CLI) newEngine(ctx context.Context, noCache bool) (*docs.Engine, error) {
	backend, err := c.newBackend(ctx, noCache)
	if err != nil {
		return nil, err
	}

	ec := c.cfg.Engine
	cfg := docs.Config{
		Capacity:         ec.Capacity,
		MaxBytes:         ec.MaxBytes,
		DocumentTTL:      ec.DocumentTTL.Std(),
		NegativeTTL:      ec.NegativeTTL.Std(),
		PerSourceTimeout: ec.PerSourceTimeout.Std(),
		OverallDeadline:  ec.OverallDeadline.Std(),
		FuzzyThreshold:   ec.FuzzyThreshold,
		DisableFuzzy:     ec.DisableFuzzy,
	}
	return docs.New(cfg, ecosystems.BuildFetchers(backend)), nil
}

// newBackend selects the raw payload cache backend per configuration.
func (c *CLI) newBackend(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}

	switch c.cfg.Cache.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "memory":
		return cache.NewMemoryCache(), nil
	case "redis":
		rc := c.cfg.Cache.Redis
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     rc.Addr,
			Password: rc.Password,
			DB:       rc.DB,
			Prefix:   rc.Prefix,
		})
	default:
		dir := c.cfg.Cache.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				c.Logger.Warn("cache directory unavailable, caching disabled", "err", err)
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	}
}

// cacheDir returns the cache directory using the XDG standard
// (~/.cache/pkgdex/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
