package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/flowbox/pkg/core/flow"
	"github.com/matzehuels/flowbox/pkg/document"
	"github.com/matzehuels/flowbox/pkg/observability"
)

// ComputeLayout validates doc, measures its boxes under the resolved
// constraints and positions them inside the measured container.
//
// Layout hooks are emitted for the measure and position passes.
func ComputeLayout(ctx context.Context, doc document.Document, opts Options) (document.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return document.Layout{}, err
	}
	if err := doc.Validate(); err != nil {
		return document.Layout{}, err
	}
	width, height, err := opts.Constraints(doc)
	if err != nil {
		return document.Layout{}, err
	}

	hooks := observability.Layout()
	hooks.OnMeasureStart(ctx, len(doc.Boxes), width.String(), height.String())

	start := time.Now()
	m, err := flow.New(doc.Children()...).Measure(width, height)
	if err != nil {
		hooks.OnMeasureComplete(ctx, 0, time.Since(start), err)
		return document.Layout{}, err
	}
	hooks.OnMeasureComplete(ctx, len(m.Lines), time.Since(start), nil)
	opts.Logger.Debug("measured boxes",
		"boxes", len(doc.Boxes),
		"lines", len(m.Lines),
		"width", m.Width,
		"height", m.Height)

	start = time.Now()
	placements, err := m.Layout(flow.Rect{Right: m.Width, Bottom: m.Height})
	hooks.OnPositionComplete(ctx, len(placements), time.Since(start), err)
	if err != nil {
		return document.Layout{}, err
	}

	layout := document.FromMeasurement(doc, m, placements)
	if overflow := m.Overflowing(width); len(overflow) > 0 {
		opts.Logger.Warn("lines wider than the width constraint", "lines", overflow)
	}
	return layout, nil
}
