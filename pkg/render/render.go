package render

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/matzehuels/flowbox/pkg/errors"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// Formats lists every supported output format.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatDOT, FormatJSON}

// Raster limits. A PNG is allocated as a full RGBA canvas, so its pixel
// count is bounded before anything is drawn.
const (
	MaxScale        = 8.0
	MaxRasterPixels = 25_000_000
)

// Visual styles.
const (
	StyleSimple  = "simple"
	StyleOutline = "outline"
)

// Styles lists every supported style.
var Styles = []string{StyleSimple, StyleOutline}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	for _, f := range Formats {
		if f == format {
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidFormat,
		"invalid format: %q (must be one of: %s)", format, strings.Join(Formats, ", "))
}

// ValidateStyle checks that a style is supported.
func ValidateStyle(style string) error {
	for _, s := range Styles {
		if s == style {
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidStyle,
		"invalid style: %q (must be one of: %s)", style, strings.Join(Styles, ", "))
}

// ValidateRaster checks that a width x height layout rendered at scale
// stays within MaxScale and MaxRasterPixels.
func ValidateRaster(width, height int, scale float64) error {
	if !(scale > 0 && scale <= MaxScale) {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, %g]: %g", MaxScale, scale)
	}
	w := max(float64(width)*scale, 1)
	h := max(float64(height)*scale, 1)
	if w*h > MaxRasterPixels {
		return errors.New(errors.ErrCodeInvalidSize,
			"raster of %.0fx%.0f pixels exceeds the limit of %d", w, h, MaxRasterPixels)
	}
	return nil
}

// Option configures a renderer.
type Option func(*options)

type options struct {
	style      string
	lineGuides bool
	margins    bool
	scale      float64
}

// WithStyle selects the visual style. Unknown styles fall back to simple.
func WithStyle(s string) Option { return func(o *options) { o.style = s } }

// WithLineGuides shades alternate lines behind the boxes.
func WithLineGuides() Option { return func(o *options) { o.lineGuides = true } }

// WithMargins draws each box's margin area as a dashed outline.
func WithMargins() Option { return func(o *options) { o.margins = true } }

// WithScale sets the raster scale factor for PNG output (default 2).
func WithScale(s float64) Option { return func(o *options) { o.scale = s } }

func newOptions(opts ...Option) options {
	o := options{style: StyleSimple, scale: 2}
	for _, opt := range opts {
		opt(&o)
	}
	if o.scale <= 0 {
		o.scale = 2
	}
	return o
}

// palette colors boxes that do not carry their own color.
var palette = []string{"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f", "#edc948", "#b07aa1", "#ff9da7"}

// Colors shared by every renderer.
const (
	strokeColor = "#333333"
	guideColor  = "#f2f2f2"
	marginColor = "#999999"
	textColor   = "#ffffff"
	outlineText = "#333333"
	background  = "#ffffff"
)

// boxColor returns the fill for the box at index i.
func boxColor(c string, i int) string {
	if c != "" {
		return c
	}
	return palette[i%len(palette)]
}

// parseHex parses #rgb or #rrggbb. Invalid input yields opaque black.
func parseHex(s string) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if len(s) != 6 || err != nil {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// Label sizing, in layout units.
const (
	fontSizeMax   = 14.0
	fontSizeMin   = 6.0
	charWidthEm   = 0.6
	labelPadding  = 4.0
	fontHeightFit = 0.7
)

// fontSize picks a label size that fits w x h for a label of n characters.
func fontSize(w, h float64, n int) float64 {
	n = max(n, 1)
	byWidth := (w - 2*labelPadding) / (float64(n) * charWidthEm)
	byHeight := h * fontHeightFit
	return max(fontSizeMin, min(fontSizeMax, byWidth, byHeight))
}
