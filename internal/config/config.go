// Package config loads pkgdex configuration from TOML, layering file
// settings over built-in defaults.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration wraps time.Duration so TOML values can be written as "15m".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the full pkgdex configuration.
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

// EngineConfig tunes resolution, caching, and search behavior.
type EngineConfig struct {
	Capacity         int      `toml:"capacity"`
	MaxBytes         int      `toml:"max_bytes"`
	DocumentTTL      Duration `toml:"document_ttl"`
	NegativeTTL      Duration `toml:"negative_ttl"`
	PerSourceTimeout Duration `toml:"per_source_timeout"`
	OverallDeadline  Duration `toml:"overall_deadline"`
	FuzzyThreshold   float64  `toml:"fuzzy_threshold"`
	DisableFuzzy     bool     `toml:"disable_fuzzy"`
}

// CacheConfig selects the backend for raw HTTP payloads. The in-process
// document cache is always on; this backend only persists fetched content
// across runs.
type CacheConfig struct {
	// Backend is one of "file", "redis", "memory", or "none".
	Backend string `toml:"backend"`

	// Dir overrides the file backend's directory.
	Dir string `toml:"dir"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Engine: EngineConfig{
			Capacity:         256,
			MaxBytes:         32 << 20,
			DocumentTTL:      Duration(15 * time.Minute),
			NegativeTTL:      Duration(time.Minute),
			PerSourceTimeout: Duration(5 * time.Second),
			OverallDeadline:  Duration(20 * time.Second),
			FuzzyThreshold:   0.82,
		},
		Cache: CacheConfig{
			Backend: "file",
			Redis:   RedisConfig{Addr: "localhost:6379", Prefix: "pkgdex:"},
		},
		Server: ServerConfig{Addr: ":8383"},
		Log:    LogConfig{Level: "info"},
	}
}

// DefaultPath returns the standard config file location, honoring
// XDG_CONFIG_HOME.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pkgdex", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pkgdex", "config.toml")
}

// Load reads the config file at path, layered over defaults. An empty path
// means the default location; a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
			return cfg, err
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv layers PKGDEX_* environment variables over the loaded file,
// covering the settings that differ between deployments of the same image.
func applyEnv(cfg *Config) {
	if v := os.Getenv("PKGDEX_CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := os.Getenv("PKGDEX_CACHE_DIR"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := os.Getenv("PKGDEX_REDIS_ADDR"); v != "" {
		cfg.Cache.Redis.Addr = v
	}
	if v := os.Getenv("PKGDEX_REDIS_PASSWORD"); v != "" {
		cfg.Cache.Redis.Password = v
	}
	if v := os.Getenv("PKGDEX_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("PKGDEX_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}
