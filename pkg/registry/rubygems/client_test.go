package rubygems

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkgdex/pkgdex/pkg/cache"
	"github.com/pkgdex/pkgdex/pkg/registry"
)

func TestFetchInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/gems/rails.json":
			w.Write([]byte(`{"name":"rails","version":"7.1.0",
				"info":"Full-stack web framework.",
				"documentation_uri":"https://api.rubyonrails.org",
				"homepage_uri":"https://rubyonrails.org"}`))
		case "/gems/blank.json":
			w.Write([]byte(`{"name":"blank","version":"0.1.0","info":""}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(cache.NewNullCache(), srv.URL)
	ctx := context.Background()

	doc, err := c.FetchInfo(ctx, "rails", "")
	if err != nil {
		t.Fatalf("FetchInfo() error = %v", err)
	}
	for _, want := range []string{"# rails", "Full-stack web framework.", "## Resources", "https://api.rubyonrails.org"} {
		if !strings.Contains(doc, want) {
			t.Errorf("doc missing %q:\n%s", want, doc)
		}
	}

	if _, err := c.FetchInfo(ctx, "blank", ""); !errors.Is(err, registry.ErrNotFound) {
		t.Errorf("blank info error = %v, want ErrNotFound", err)
	}
	if _, err := c.FetchInfo(ctx, "no-such-gem", ""); !errors.Is(err, registry.ErrNotFound) {
		t.Errorf("missing gem error = %v, want ErrNotFound", err)
	}
}
