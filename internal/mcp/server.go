// Package mcp exposes the resolution engine as MCP tools over stdio, so
// coding agents can pull package documentation into context on demand.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pkgdex/pkgdex/pkg/docs"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"docs_resolve": {
		def:     resolveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleResolve },
	},
	"docs_search": {
		def:     searchToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSearch },
	},
}

var resolveToolDef = mcp.NewTool("docs_resolve",
	mcp.WithDescription("Resolve documentation for a package and return it as labeled sections (description, usage, api, example). Supports Go, Python, JavaScript, Rust, and Ruby packages."),
	mcp.WithString("ecosystem", mcp.Required(), mcp.Description("Package ecosystem: go, python, javascript, rust, or ruby (aliases like js, py, cargo accepted)")),
	mcp.WithString("package", mcp.Required(), mcp.Description("Package name or import path")),
	mcp.WithString("symbol", mcp.Description("Narrow the result to one symbol (function, type, method)")),
	mcp.WithString("version", mcp.Description("Pin a specific package version")),
)

var searchToolDef = mcp.NewTool("docs_search",
	mcp.WithDescription("Search inside a package's documentation and return ranked section snippets. Exact matches outrank fuzzy ones; reference sections rank highest."),
	mcp.WithString("ecosystem", mcp.Required(), mcp.Description("Package ecosystem: go, python, javascript, rust, or ruby")),
	mcp.WithString("package", mcp.Required(), mcp.Description("Package name or import path")),
	mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
	mcp.WithString("version", mcp.Description("Pin a specific package version")),
	mcp.WithNumber("limit", mcp.Description("Maximum results to return (default 5)")),
	mcp.WithBoolean("fuzzy", mcp.Description("Allow approximate matching for misspelled queries (default true)")),
)

// NewServer creates an MCP server with the pkgdex tools registered.
func NewServer(engine *docs.Engine, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"pkgdex",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(engine)
	for _, entry := range toolRegistry {
		s.AddTool(entry.def, entry.handler(h))
	}
	return s
}

// Run starts the MCP server on stdio.
func Run(engine *docs.Engine, version string) error {
	return server.ServeStdio(NewServer(engine, version))
}
