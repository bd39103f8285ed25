package pypi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pkgdex/pkgdex/pkg/cache"
	"github.com/pkgdex/pkgdex/pkg/registry"
)

const defaultBaseURL = "https://pypi.org/pypi"

const descriptionTTL = time.Hour

// Client fetches package documentation from the PyPI JSON API.
type Client struct {
	*registry.Client
	baseURL string
}

// NewClient creates a Client for the public PyPI instance.
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

// Description holds the long description of a release and its declared
// content type ("text/markdown", "text/x-rst", or "text/plain").
type Description struct {
	Text        string
	ContentType string
}

// FetchDescription returns the long description of pkg, optionally pinned
// to a version. Names are PEP 503 normalized before the lookup.
func (c *Client) FetchDescription(ctx context.Context, pkg, version string) (*Description, error) {
	pkg = registry.NormalizePkgName(pkg)

	url := c.baseURL + "/" + pkg + "/json"
	if version != "" {
		url = c.baseURL + "/" + pkg + "/" + version + "/json"
	}
	key := "pypi:desc:" + pkg + "@" + version

	payload, err := c.CachedText(ctx, key, descriptionTTL, func() (string, error) {
		var data projectResponse
		if err := c.Get(ctx, url, &data); err != nil {
			if errors.Is(err, registry.ErrNotFound) {
				return "", fmt.Errorf("%w: pypi package %s", err, pkg)
			}
			return "", err
		}
		if strings.TrimSpace(data.Info.Description) == "" {
			return "", fmt.Errorf("%w: no description for pypi package %s", registry.ErrNotFound, pkg)
		}
		return data.Info.DescriptionContentType + "\x00" + data.Info.Description, nil
	})
	if err != nil {
		return nil, err
	}

	contentType, text, _ := strings.Cut(payload, "\x00")
	return &Description{Text: text, ContentType: contentType}, nil
}

type projectResponse struct {
	Info struct {
		Name                   string `json:"name"`
		Version                string `json:"version"`
		Description            string `json:"description"`
		DescriptionContentType string `json:"description_content_type"`
	} `json:"info"`
}
