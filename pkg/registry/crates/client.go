package crates

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pkgdex/pkgdex/pkg/cache"
	"github.com/pkgdex/pkgdex/pkg/registry"
)

const defaultBaseURL = "https://crates.io/api/v1"

// crates.io policy requires a contactable user agent.
const userAgent = "pkgdex (github.com/pkgdex/pkgdex)"

const readmeTTL = time.Hour

// Client fetches crate documentation from the crates.io API.
type Client struct {
	*registry.Client
	baseURL string
}

// NewClient creates a Client for the public crates.io instance.
func NewClient(backend cache.Cache) *Client {
	return NewClientWithBaseURL(backend, defaultBaseURL)
}

// NewClientWithBaseURL creates a Client pinned to a specific API base URL.
func NewClientWithBaseURL(backend cache.Cache, baseURL string) *Client {
	return &Client{
		Client:  registry.NewClient(backend, map[string]string{"User-Agent": userAgent}),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// FetchReadme returns the rendered readme HTML for a crate. When version is
// empty the newest stable version is resolved first.
func (c *Client) FetchReadme(ctx context.Context, crate, version string) (string, error) {
	crate = registry.NormalizePkgName(crate)
	key := "crates:readme:" + crate + "@" + version

	return c.CachedText(ctx, key, readmeTTL, func() (string, error) {
		v := version
		if v == "" {
			resolved, err := c.latestVersion(ctx, crate)
			if err != nil {
				return "", err
			}
			v = resolved
		}

		html, err := c.GetText(ctx, fmt.Sprintf("%s/crates/%s/%s/readme", c.baseURL, crate, v))
		if err != nil {
			if errors.Is(err, registry.ErrNotFound) {
				return "", fmt.Errorf("%w: no readme for crate %s@%s", err, crate, v)
			}
			return "", err
		}
		if strings.TrimSpace(html) == "" {
			return "", fmt.Errorf("%w: no readme for crate %s@%s", registry.ErrNotFound, crate, v)
		}
		return html, nil
	})
}

func (c *Client) latestVersion(ctx context.Context, crate string) (string, error) {
	var data crateResponse
	if err := c.Get(ctx, c.baseURL+"/crates/"+crate, &data); err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return "", fmt.Errorf("%w: crate %s", err, crate)
		}
		return "", err
	}
	if data.Crate.MaxStableVersion != "" {
		return data.Crate.MaxStableVersion, nil
	}
	if data.Crate.MaxVersion != "" {
		return data.Crate.MaxVersion, nil
	}
	return "", fmt.Errorf("%w: crate %s has no versions", registry.ErrNotFound, crate)
}

type crateResponse struct {
	Crate struct {
		Name             string `json:"name"`
		MaxVersion       string `json:"max_version"`
		MaxStableVersion string `json:"max_stable_version"`
	} `json:"crate"`
}
