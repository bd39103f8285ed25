package pypi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkgdex/pkgdex/pkg/cache"
	"github.com/pkgdex/pkgdex/pkg/registry"
)

func TestFetchDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/requests/json":
			w.Write([]byte(`{"info":{"name":"requests","version":"2.32.0",
				"description":"# Requests\n\nHTTP for Humans.",
				"description_content_type":"text/markdown"}}`))
		case "/requests/2.31.0/json":
			w.Write([]byte(`{"info":{"name":"requests","version":"2.31.0",
				"description":"old description",
				"description_content_type":"text/x-rst"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(cache.NewNullCache(), srv.URL)
	ctx := context.Background()

	desc, err := c.FetchDescription(ctx, "Requests", "")
	if err != nil {
		t.Fatalf("FetchDescription() error = %v", err)
	}
	if desc.Text != "# Requests\n\nHTTP for Humans." {
		t.Errorf("text = %q", desc.Text)
	}
	if desc.ContentType != "text/markdown" {
		t.Errorf("content type = %q", desc.ContentType)
	}

	desc, err = c.FetchDescription(ctx, "requests", "2.31.0")
	if err != nil {
		t.Fatalf("pinned FetchDescription() error = %v", err)
	}
	if desc.ContentType != "text/x-rst" {
		t.Errorf("pinned content type = %q", desc.ContentType)
	}

	if _, err := c.FetchDescription(ctx, "no-such-package", ""); !errors.Is(err, registry.ErrNotFound) {
		t.Errorf("missing package error = %v, want ErrNotFound", err)
	}
}
