package pipeline

import (
	"context"
	"slices"
	"time"

	"github.com/matzehuels/flowbox/pkg/document"
	"github.com/matzehuels/flowbox/pkg/errors"
	"github.com/matzehuels/flowbox/pkg/observability"
	"github.com/matzehuels/flowbox/pkg/render"
)

// RenderFromLayout renders every requested format from a computed layout.
// Artifacts are keyed by format name.
func RenderFromLayout(ctx context.Context, layout document.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if slices.Contains(opts.Formats, render.FormatPNG) {
		if err := render.ValidateRaster(layout.Width, layout.Height, opts.Scale); err != nil {
			return nil, err
		}
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderFormats(ctx, layout, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormats(ctx context.Context, layout document.Layout, opts Options) (map[string][]byte, error) {
	ropts := opts.RenderOptions()
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		if format == render.FormatSVG && opts.Graphviz {
			data, err = render.RenderDOTSVG(ctx, layout, ropts...)
		} else {
			data, err = renderFormat(layout, format, ropts)
		}
		if err != nil {
			if errors.GetCode(err) != "" {
				return nil, err
			}
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(layout document.Layout, format string, ropts []render.Option) ([]byte, error) {
	switch format {
	case render.FormatSVG:
		return render.RenderSVG(layout, ropts...), nil
	case render.FormatPNG:
		return render.RenderPNG(layout, ropts...)
	case render.FormatPDF:
		return render.RenderPDF(layout, ropts...)
	case render.FormatDOT:
		return []byte(render.ToDOT(layout, ropts...)), nil
	case render.FormatJSON:
		return document.MarshalLayout(layout)
	default:
		return nil, render.ValidateFormat(format)
	}
}
