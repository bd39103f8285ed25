package cli

import (
	"github.com/spf13/cobra"

	"github.com/pkgdex/pkgdex/internal/mcp"
	"github.com/pkgdex/pkgdex/pkg/buildinfo"
)

// mcpCommand creates the mcp subcommand, which serves the engine over
// stdio for MCP clients. Stdout carries the protocol, so all logging
// must stay on stderr.
func (c *CLI) mcpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server on stdio",
		Long:  "Serves docs_resolve and docs_search as MCP tools over stdin/stdout, for use by coding agents and editors.",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := c.newEngine(cmd.Context(), false)
			if err != nil {
				return err
			}
			c.Logger.Debug("starting MCP server on stdio")
			return mcp.Run(engine, buildinfo.Version)
		},
	}
}
