package rubygems

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pkgdex/pkgdex/pkg/cache"
	"github.com/pkgdex/pkgdex/pkg/registry"
)

const defaultBaseURL = "https://rubygems.org/api/v1"

const infoTTL = time.Hour

// Client fetches gem documentation from the RubyGems API.
//
// RubyGems exposes no readme endpoint, so the client assembles a markdown
// document from the gem's description and reference links. The local ri
// tool remains the richer source when the gem is installed.
type Client struct {
	*registry.Client
	baseURL string
}

// NewClient creates a Client for the public rubygems.org instance.
func NewClient(backend cache.Cache) *Client {
	return NewClientWithBaseURL(backend, defaultBaseURL)
}

// NewClientWithBaseURL creates a Client pinned to a specific API base URL.
func NewClientWithBaseURL(backend cache.Cache, baseURL string) *Client {
	return &Client{
		Client:  registry.NewClient(backend, map[string]string{"Accept": "application/json"}),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// FetchInfo returns the gem's metadata rendered as a markdown document.
// Version is optional.
func (c *Client) FetchInfo(ctx context.Context, gem, version string) (string, error) {
	gem = strings.TrimSpace(gem)
	key := "rubygems:info:" + gem + "@" + version

	return c.CachedText(ctx, key, infoTTL, func() (string, error) {
		var data gemResponse
		if err := c.Get(ctx, c.baseURL+"/gems/"+gem+".json", &data); err != nil {
			if errors.Is(err, registry.ErrNotFound) {
				return "", fmt.Errorf("%w: gem %s", err, gem)
			}
			return "", err
		}
		if version != "" && data.Version != version {
			// The gems endpoint only describes the latest version; older
			// versions share the same description text.
			data.Version = version
		}
		doc := renderInfo(&data)
		if doc == "" {
			return "", fmt.Errorf("%w: no documentation for gem %s", registry.ErrNotFound, gem)
		}
		return doc, nil
	})
}

// renderInfo formats gem metadata as markdown so it flows through the same
// normalization as every other source.
func renderInfo(g *gemResponse) string {
	if strings.TrimSpace(g.Info) == "" {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n", g.Name, strings.TrimSpace(g.Info))

	var links []string
	if g.DocumentationURI != "" {
		links = append(links, fmt.Sprintf("- Documentation: %s", g.DocumentationURI))
	}
	if g.HomepageURI != "" {
		links = append(links, fmt.Sprintf("- Homepage: %s", g.HomepageURI))
	}
	if g.SourceCodeURI != "" {
		links = append(links, fmt.Sprintf("- Source: %s", g.SourceCodeURI))
	}
	if len(links) > 0 {
		b.WriteString("\n## Resources\n\n")
		b.WriteString(strings.Join(links, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

type gemResponse struct {
	Name             string `json:"name"`
	Version          string `json:"version"`
	Info             string `json:"info"`
	DocumentationURI string `json:"documentation_uri"`
	HomepageURI      string `json:"homepage_uri"`
	SourceCodeURI    string `json:"source_code_uri"`
}
