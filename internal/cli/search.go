package cli

import (
	"github.com/spf13/cobra"

	"github.com/pkgdex/pkgdex/pkg/docs"
	"github.com/pkgdex/pkgdex/pkg/ecosystems"
)

// searchCommand creates the in-document search command.
func (c *CLI) searchCommand() *cobra.Command {
	var (
		version string
		limit   int
		asJSON  bool
		noCache bool
		noFuzzy bool
	)

	cmd := &cobra.Command{
		Use:   "search <ecosystem> <package> <query>",
		Short: "Search inside a package's documentation",
		Long: `Resolve a package's documentation and rank its sections against a query.

Exact matches always outrank fuzzy ones; fuzzy matching catches close
misspellings. Reference sections rank above usage and examples.`,
		Example: `  pkgdex search python requests timeout
  pkgdex search rust serde deserialize --limit 3`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eco, err := ecosystems.Canonical(args[0])
			if err != nil {
				return err
			}
			key := docs.NewKey(eco, args[1], "", version)
			query := args[2]

			engine, err := c.newEngine(ctx, noCache)
			if err != nil {
				return err
			}

			spin := newSpinner(ctx, "searching "+key.String())
			spin.Start()
			_, results, err := engine.ResolveSearch(ctx, key, query, !noFuzzy)
			spin.Stop()
			if err != nil {
				return renderResolveError(err)
			}

			if limit > 0 && len(results) > limit {
				results = results[:limit]
			}
			if asJSON {
				return renderJSON(results)
			}
			renderResults(key, query, results)
			return nil
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "pin a package version")
	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "maximum results to show (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output results as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the response cache")
	cmd.Flags().BoolVar(&noFuzzy, "no-fuzzy", false, "disable fuzzy matching")

	return cmd
}

// ecosystemsCommand creates the ecosystem listing command.
func (c *CLI) ecosystemsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ecosystems",
		Short: "List supported ecosystems",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range ecosystems.Names() {
				printInfo("%s", name)
			}
			return nil
		},
	}
}
