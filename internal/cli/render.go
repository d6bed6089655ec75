package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowbox/pkg/document"
	"github.com/matzehuels/flowbox/pkg/pipeline"
)

// renderCommand creates the render command. It accepts either a document,
// which is laid out first, or a layout.json produced by 'layout'.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		opts       pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "render [document|layout.json]",
		Short: "Render a document or a computed layout",
		Long: `Render a document or a computed layout.

When given a document (JSON or TOML), render computes the layout first and
then renders it. When given a layout.json (produced by 'layout' or
'render -f json'), it is rendered as is and constraint flags are ignored.

Formats: svg (default), png, pdf, dot, json. With several formats, or no
--output, files are named after the input.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := opts.ValidateForRender(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached results exist")
	layoutFlags(cmd, &opts)

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	cmd.Flags().StringVar(&opts.Style, "style", pipeline.DefaultStyle, "visual style: simple (default), outline")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.LineGuides, "line-guides", false, "shade each line's band")
	cmd.Flags().BoolVar(&opts.Margins, "margins", false, "outline each box's margin area")
	cmd.Flags().BoolVar(&opts.Graphviz, "graphviz", false, "render SVG through graphviz (neato, pinned positions)")

	return cmd
}

// runRender loads the input, computes the layout if needed, and renders it.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	layout, layoutHit, err := c.loadOrComputeLayout(ctx, runner, input, opts)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	artifacts, renderHit, err := runner.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		layout:    layout,
		cacheHit:  layoutHit && renderHit,
	})
}

// loadOrComputeLayout reads input as a layout if it is one, and otherwise
// as a document which is then laid out.
func (c *CLI) loadOrComputeLayout(ctx context.Context, runner *pipeline.Runner, input string, opts pipeline.Options) (document.Layout, bool, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return document.Layout{}, false, fmt.Errorf("read %s: %w", input, err)
	}

	if document.IsLayoutJSON(data) {
		layout, err := document.UnmarshalLayout(data)
		if err != nil {
			return document.Layout{}, false, fmt.Errorf("load layout %s: %w", input, err)
		}
		if opts.Width != 0 || opts.WidthMode != "" || opts.Height != 0 || opts.HeightMode != "" {
			c.Logger.Warn("constraint flags are ignored when rendering a layout file")
		}
		return layout, true, nil
	}

	doc, err := document.ReadDocument(bytes.NewReader(data), document.FormatFromPath(input))
	if err != nil {
		return document.Layout{}, false, fmt.Errorf("load document %s: %w", input, err)
	}
	return runner.LayoutWithCacheInfo(ctx, doc, opts)
}

// artifactWriteParams groups the inputs of writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	layout    document.Layout
	cacheHit  bool
}

// writeArtifacts writes each artifact to disk. A single format with an
// explicit output goes to that path; "-" writes it to stdout. Otherwise
// files are named <base>.<format>.
func writeArtifacts(p artifactWriteParams) error {
	if len(p.formats) == 1 && p.output == "-" {
		return writeFile("", p.artifacts[p.formats[0]])
	}

	paths := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		path := basePath(p.output, p.input) + "." + format
		if len(p.formats) == 1 && p.output != "" {
			path = p.output
		}
		if err := writeFile(path, p.artifacts[format]); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	printSuccess("Rendered %d file(s)", len(paths))
	for _, path := range paths {
		printFile(path)
	}
	printStats(p.layout, p.cacheHit)
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
