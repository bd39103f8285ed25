package web

import (
	"encoding/json"
	"net/http"

	"github.com/pkgdex/pkgdex/pkg/docs"
	"github.com/pkgdex/pkgdex/pkg/ecosystems"
	apperrors "github.com/pkgdex/pkgdex/pkg/errors"
)

// docsResponse wraps a resolved document for the API.
type docsResponse struct {
	Document *docs.Document `json:"document"`
}

// searchResponse pairs search results with the key they were ranked for.
type searchResponse struct {
	Key     string         `json:"key"`
	Query   string         `json:"query"`
	Results []docs.Result  `json:"results"`
	Doc     *docs.Document `json:"document,omitempty"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleEcosystems(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"ecosystems": ecosystems.Names()})
}

// handleCachePurge drops every cached document.
// DELETE /api/v1/cache
func (s *Server) handleCachePurge(w http.ResponseWriter, r *http.Request) {
	purged := s.engine.CacheLen()
	s.engine.CachePurge()
	writeJSON(w, http.StatusOK, map[string]int{"purged": purged})
}

// handleDocs resolves documentation.
// GET /api/v1/docs?ecosystem=python&package=requests[&symbol=...][&version=...]
func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	eco, err := ecosystems.Canonical(q.Get("ecosystem"))
	if err != nil {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidEcosystem, "%v", err))
		return
	}
	key := docs.NewKey(eco, q.Get("package"), q.Get("symbol"), q.Get("version"))

	doc, err := s.engine.ResolveDocs(r.Context(), key)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docsResponse{Document: doc})
}

// handleSearch resolves documentation and ranks sections against a query.
// GET /api/v1/search?ecosystem=rust&package=serde&query=deserialize
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	eco, err := ecosystems.Canonical(q.Get("ecosystem"))
	if err != nil {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidEcosystem, "%v", err))
		return
	}
	key := docs.NewKey(eco, q.Get("package"), q.Get("symbol"), q.Get("version"))

	fuzzy := q.Get("fuzzy") != "false"
	doc, results, err := s.engine.ResolveSearch(r.Context(), key, q.Get("query"), fuzzy)
	if err != nil {
		writeError(w, err)
		return
	}
	if results == nil {
		results = []docs.Result{}
	}
	resp := searchResponse{Key: key.String(), Query: q.Get("query"), Results: results}
	if q.Get("include_document") == "true" {
		resp.Doc = doc
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps typed resolution errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	appErr := docs.AsAppError(err)
	writeJSON(w, apperrors.HTTPStatus(appErr.Code), errorResponse{
		Error: apperrors.UserMessage(appErr),
		Code:  string(appErr.Code),
	})
}
