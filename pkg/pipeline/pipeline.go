// Package pipeline runs the document → layout → render pipeline for flowbox.
//
// The CLI and the API server both go through this package, so both apply
// the same defaults, validation and caching.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Layout: measure the document's boxes under the resolved constraints,
//     pack them into lines and position them
//  2. Render: produce artifacts (SVG, PNG, PDF, DOT, JSON) from the layout
//
// Each stage can run on its own. [ComputeLayout] and [RenderFromLayout] are
// the stateless stages; [Runner] wraps them with caching and logging.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, doc, pipeline.Options{
//	    WidthMode: "at_most",
//	    Width:     400,
//	    Formats:   []string{"svg", "png"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowbox/pkg/cache"
	"github.com/matzehuels/flowbox/pkg/core/flow"
	"github.com/matzehuels/flowbox/pkg/document"
	"github.com/matzehuels/flowbox/pkg/errors"
	"github.com/matzehuels/flowbox/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidthMode is the mode used when only a width size is given.
	DefaultWidthMode = "at_most"

	// DefaultHeightMode is the mode used when only a height size is given.
	DefaultHeightMode = "at_most"

	// DefaultStyle is the default visual style.
	DefaultStyle = render.StyleSimple

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0
)

// DefaultFormats are rendered when no format is requested.
var DefaultFormats = []string{render.FormatSVG}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
//
// Width and height override the document's own constraints. An axis is
// overridden when its mode or its size is set; a size without a mode uses
// the axis default mode.
type Options struct {
	// Layout options
	WidthMode  string `json:"width_mode,omitempty"`
	Width      int    `json:"width,omitempty"`
	HeightMode string `json:"height_mode,omitempty"`
	Height     int    `json:"height,omitempty"`
	Refresh    bool   `json:"refresh,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Style      string   `json:"style,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	LineGuides bool     `json:"line_guides,omitempty"`
	Margins    bool     `json:"margins,omitempty"`
	Graphviz   bool     `json:"graphviz,omitempty"` // SVG through graphviz neato

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed layout.
	Layout document.Layout

	// LayoutHash is the content hash of the serialized layout.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	BoxCount   int
	LineCount  int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := render.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates the constraint overrides and sets layout
// defaults.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if _, err := flow.ParseMode(o.WidthMode); err != nil {
		return err
	}
	if _, err := flow.ParseMode(o.HeightMode); err != nil {
		return err
	}
	if err := errors.ValidateConstraintSize("width", o.Width); err != nil {
		return err
	}
	return errors.ValidateConstraintSize("height", o.Height)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = append([]string(nil), DefaultFormats...)
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates render options and sets render defaults.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := render.ValidateStyle(o.Style); err != nil {
		return err
	}
	if !(o.Scale > 0 && o.Scale <= render.MaxScale) {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, %g]: %g", render.MaxScale, o.Scale)
	}
	return nil
}

// Constraints resolves the width and height constraints for doc: the
// document's own constraints with the option overrides applied.
func (o *Options) Constraints(doc document.Document) (width, height flow.Constraint, err error) {
	widthSpec, heightSpec := doc.Width, doc.Height
	if o.WidthMode != "" || o.Width != 0 {
		widthSpec = document.ConstraintSpec{Mode: orDefault(o.WidthMode, DefaultWidthMode), Size: o.Width}
	}
	if o.HeightMode != "" || o.Height != 0 {
		heightSpec = document.ConstraintSpec{Mode: orDefault(o.HeightMode, DefaultHeightMode), Size: o.Height}
	}
	if width, err = widthSpec.Constraint(); err != nil {
		return flow.Constraint{}, flow.Constraint{}, err
	}
	if height, err = heightSpec.Constraint(); err != nil {
		return flow.Constraint{}, flow.Constraint{}, err
	}
	return width, height, nil
}

// LayoutKeyOpts returns cache key options for a layout computed under the
// given constraints.
func LayoutKeyOpts(width, height flow.Constraint) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		WidthMode:  width.Mode.String(),
		Width:      width.Size,
		HeightMode: height.Mode.String(),
		Height:     height.Size,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:     format,
		Style:      o.Style,
		LineGuides: o.LineGuides,
		Margins:    o.Margins,
	}
	switch format {
	case render.FormatPNG:
		k.Scale = o.Scale
	case render.FormatSVG:
		k.Graphviz = o.Graphviz
	}
	return k
}

// RenderOptions converts the options to renderer options.
func (o *Options) RenderOptions() []render.Option {
	opts := []render.Option{render.WithStyle(o.Style)}
	if o.Scale > 0 {
		opts = append(opts, render.WithScale(o.Scale))
	}
	if o.LineGuides {
		opts = append(opts, render.WithLineGuides())
	}
	if o.Margins {
		opts = append(opts, render.WithMargins())
	}
	return opts
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
