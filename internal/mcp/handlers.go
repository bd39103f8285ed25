package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pkgdex/pkgdex/pkg/docs"
	"github.com/pkgdex/pkgdex/pkg/ecosystems"
	apperrors "github.com/pkgdex/pkgdex/pkg/errors"
)

// defaultSearchLimit bounds docs_search output so a broad query doesn't
// flood the caller's context window.
const defaultSearchLimit = 5

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	engine *docs.Engine
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(engine *docs.Engine) *Handlers {
	return &Handlers{engine: engine}
}

// ResolveRequest represents the arguments for docs_resolve.
type ResolveRequest struct {
	Ecosystem string `json:"ecosystem"`
	Package   string `json:"package"`
	Symbol    string `json:"symbol,omitempty"`
	Version   string `json:"version,omitempty"`
}

// SearchRequest represents the arguments for docs_search.
type SearchRequest struct {
	Ecosystem string  `json:"ecosystem"`
	Package   string  `json:"package"`
	Query     string  `json:"query"`
	Version   string  `json:"version,omitempty"`
	Limit     float64 `json:"limit,omitempty"`
	Fuzzy     *bool   `json:"fuzzy,omitempty"`
}

// HandleResolve handles the docs_resolve tool call.
func (h *Handlers) HandleResolve(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ResolveRequest](req)
	if err != nil {
		return errorResult(apperrors.New(apperrors.ErrCodeInvalidInput, "%v", err)), nil
	}

	eco, err := ecosystems.Canonical(input.Ecosystem)
	if err != nil {
		return errorResult(apperrors.New(apperrors.ErrCodeInvalidEcosystem, "%v", err)), nil
	}
	key := docs.NewKey(eco, input.Package, input.Symbol, input.Version)

	doc, err := h.engine.ResolveDocs(ctx, key)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(doc)
}

// HandleSearch handles the docs_search tool call.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SearchRequest](req)
	if err != nil {
		return errorResult(apperrors.New(apperrors.ErrCodeInvalidInput, "%v", err)), nil
	}

	eco, err := ecosystems.Canonical(input.Ecosystem)
	if err != nil {
		return errorResult(apperrors.New(apperrors.ErrCodeInvalidEcosystem, "%v", err)), nil
	}
	key := docs.NewKey(eco, input.Package, "", input.Version)

	fuzzy := input.Fuzzy == nil || *input.Fuzzy
	_, results, err := h.engine.ResolveSearch(ctx, key, input.Query, fuzzy)
	if err != nil {
		return errorResult(err), nil
	}

	limit := int(input.Limit)
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}
	if results == nil {
		results = []docs.Result{}
	}

	return successResult(map[string]any{
		"key":     key.String(),
		"query":   input.Query,
		"results": results,
	})
}

// errorResult converts a resolution error into a structured MCP error
// payload without failing the protocol call.
func errorResult(err error) *mcp.CallToolResult {
	appErr := docs.AsAppError(err)
	result, jerr := mcp.NewToolResultJSON(map[string]any{
		"error": map[string]any{
			"code":    string(appErr.Code),
			"message": apperrors.UserMessage(appErr),
		},
	})
	if jerr != nil {
		return mcp.NewToolResultError(appErr.Error())
	}
	result.IsError = true
	return result
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
