package npm

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkgdex/pkgdex/pkg/cache"
	"github.com/pkgdex/pkgdex/pkg/registry"
)

const defaultRegistry = "https://registry.npmjs.org"

// readmeTTL bounds how long raw registry payloads are kept in the backing
// cache. The in-process document cache has its own, shorter TTL.
const readmeTTL = time.Hour

// Client fetches package documentation from an npm-compatible registry.
type Client struct {
	*registry.Client
	baseURL string
}

// NewClient creates a Client for the configured registry. Registry URL and
// auth token come from the environment and ~/.npmrc, falling back to the
// public npm registry.
func NewClient(backend cache.Cache) *Client {
	cfg := loadNpmrc()
	headers := map[string]string{"Accept": "application/json"}
	if cfg.token != "" {
		headers["Authorization"] = "Bearer " + cfg.token
	}
	return &Client{
		Client:  registry.NewClient(backend, headers),
		baseURL: cfg.registry,
	}
}

// NewClientWithRegistry creates a Client pinned to a specific registry URL.
// Used by tests and private-registry setups.
func NewClientWithRegistry(backend cache.Cache, baseURL string) *Client {
	return &Client{
		Client:  registry.NewClient(backend, map[string]string{"Accept": "application/json"}),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// FetchReadme returns the package readme in markdown. Version is optional;
// the registry's packument carries one readme for the latest version, so a
// pinned version falls back to that text when the version exists.
func (c *Client) FetchReadme(ctx context.Context, pkg, version string) (string, error) {
	pkg = strings.TrimSpace(pkg)
	key := "npm:readme:" + pkg + "@" + version

	return c.CachedText(ctx, key, readmeTTL, func() (string, error) {
		var data packument
		if err := c.Get(ctx, c.baseURL+"/"+escapeName(pkg), &data); err != nil {
			if errors.Is(err, registry.ErrNotFound) {
				return "", fmt.Errorf("%w: npm package %s", err, pkg)
			}
			return "", err
		}
		if version != "" {
			if _, ok := data.Versions[version]; !ok {
				return "", fmt.Errorf("%w: npm package %s@%s", registry.ErrNotFound, pkg, version)
			}
		}
		if strings.TrimSpace(data.Readme) == "" {
			return "", fmt.Errorf("%w: no readme for npm package %s", registry.ErrNotFound, pkg)
		}
		return data.Readme, nil
	})
}

// escapeName encodes a scoped package name for use in a registry URL.
// Only the slash inside a scope needs escaping.
func escapeName(pkg string) string {
	if strings.HasPrefix(pkg, "@") {
		return strings.Replace(pkg, "/", "%2F", 1)
	}
	return pkg
}

type packument struct {
	Name     string              `json:"name"`
	Readme   string              `json:"readme"`
	Versions map[string]struct{} `json:"versions"`
}

// npmrcConfig is the subset of npm configuration the client honors.
type npmrcConfig struct {
	registry string
	token    string
}

// loadNpmrc resolves the registry endpoint and auth token the way the npm
// CLI does, in decreasing precedence: NPM_CONFIG_REGISTRY, then ~/.npmrc
// entries, then the public registry default.
func loadNpmrc() npmrcConfig {
	cfg := npmrcConfig{registry: defaultRegistry}
	if env := strings.TrimSpace(os.Getenv("NPM_CONFIG_REGISTRY")); env != "" {
		cfg.registry = strings.TrimSuffix(env, "/")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg
	}
	parseNpmrc(filepath.Join(home, ".npmrc"), &cfg)
	return cfg
}

// parseNpmrc reads key=value pairs from an npmrc file. It understands the
// two forms the client needs: "registry=URL" and "//host/:_authToken=TOKEN"
// scoped to the configured registry's host.
func parseNpmrc(path string, cfg *npmrcConfig) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	tokens := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)

		switch {
		case key == "registry":
			if value != "" {
				cfg.registry = strings.TrimSuffix(value, "/")
			}
		case strings.HasPrefix(key, "//") && strings.HasSuffix(key, ":_authToken"):
			host := strings.TrimSuffix(strings.TrimPrefix(key, "//"), ":_authToken")
			tokens[strings.TrimSuffix(host, "/")] = value
		}
	}

	hostPath := strings.TrimPrefix(strings.TrimPrefix(cfg.registry, "https:"), "http:")
	hostPath = strings.TrimSuffix(strings.TrimPrefix(hostPath, "//"), "/")
	if tok, ok := tokens[hostPath]; ok {
		cfg.token = expandEnv(tok)
	}
}

// expandEnv resolves the ${VAR} form npm allows for token values.
func expandEnv(v string) string {
	if strings.HasPrefix(v, "${") && strings.HasSuffix(v, "}") {
		return os.Getenv(v[2 : len(v)-1])
	}
	return v
}
