package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkgdex/pkgdex/pkg/docs"
	"github.com/pkgdex/pkgdex/pkg/ecosystems"
	apperrors "github.com/pkgdex/pkgdex/pkg/errors"
)

// docsCommand creates the docs resolution command.
func (c *CLI) docsCommand() *cobra.Command {
	var (
		symbol      string
		version     string
		asJSON      bool
		noCache     bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "docs <ecosystem> <package>",
		Short: "Resolve documentation for a package",
		Long: `Resolve documentation for a package and print it as labeled sections.

The ecosystem is one of: go, python, javascript, rust, ruby (aliases like
js, py, cargo, gem work too). Sources are tried in order: local tools,
local installs, registry APIs, then documentation sites.`,
		Example: `  pkgdex docs python requests
  pkgdex docs go golang.org/x/sync --symbol singleflight.Group
  pkgdex docs javascript express --version 4.19.0 --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eco, err := ecosystems.Canonical(args[0])
			if err != nil {
				return err
			}
			key := docs.NewKey(eco, args[1], symbol, version)

			engine, err := c.newEngine(ctx, noCache)
			if err != nil {
				return err
			}

			spin := newSpinner(ctx, "resolving "+key.String())
			spin.Start()
			doc, err := engine.ResolveDocs(ctx, key)
			spin.Stop()
			if err != nil {
				return renderResolveError(err)
			}

			if asJSON {
				return renderJSON(doc)
			}
			if interactive {
				return browseSections(doc)
			}
			renderDocument(doc)
			cached := time.Since(doc.CachedAt) > time.Second
			printDocStats(len(doc.Sections), len(doc.Symbols), string(doc.Source), cached)
			return nil
		},
	}

	cmd.Flags().StringVarP(&symbol, "symbol", "s", "", "narrow to a specific symbol")
	cmd.Flags().StringVar(&version, "version", "", "pin a package version")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output the document as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the response cache")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse sections interactively")

	return cmd
}

// renderResolveError turns typed resolution errors into readable CLI
// failures, listing per-source attempts when everything failed.
func renderResolveError(err error) error {
	var exhausted *docs.ExhaustedError
	if errors.As(err, &exhausted) {
		printError("all sources failed for %s", exhausted.Key.String())
		for _, attempt := range exhausted.Attempts {
			printDetail("%s (%s): %v", attempt.Source, attempt.Kind, attempt.Err)
		}
		return fmt.Errorf("documentation unavailable for %s", exhausted.Key.String())
	}

	var deadline *docs.DeadlineError
	if errors.As(err, &deadline) {
		return fmt.Errorf("resolution of %s timed out; sources may still be warming the cache, retry shortly", deadline.Key.String())
	}

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return errors.New(apperrors.UserMessage(err))
	}
	return err
}
