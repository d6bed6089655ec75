package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowbox/pkg/document"
	"github.com/matzehuels/flowbox/pkg/pipeline"
)

// layoutCommand creates the layout command for computing flow layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		opts    pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "layout [document]",
		Short: "Compute a flow layout from a box document",
		Long: `Compute a flow layout from a box document.

The layout command reads a JSON or TOML document, measures its boxes under
the container constraints, wraps them into lines and positions them. The
output is a layout.json file (same format as 'render -f json') that can be
rendered with 'render'.

Constraint flags override the constraints stored in the document.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if a cached layout exists")
	layoutFlags(cmd, &opts)

	return cmd
}

// runLayout loads the document, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	doc, err := document.ReadDocumentFile(input)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	layout, cacheHit, err := runner.LayoutWithCacheInfo(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + layoutSuffix + ".json"
	}

	if err := document.WriteLayoutFile(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(layout, cacheHit)
	for _, l := range layout.Lines {
		if l.Overflow {
			printWarning("Line at y=%d is %dpx wide, over the %d bound", l.Top, l.Width, layout.WidthConstraint.Size)
		}
	}
	printNewline()
	printNextStep("Render", "flowbox render "+outputPath)

	return nil
}
