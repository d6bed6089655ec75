package render

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"

	"github.com/matzehuels/flowbox/pkg/document"
)

// RenderPNG rasterizes the layout. The image is the container size
// multiplied by the scale option. Labels use gg's built-in bitmap face.
// Images larger than MaxRasterPixels are rejected with INVALID_SIZE.
func RenderPNG(l document.Layout, opts ...Option) ([]byte, error) {
	o := newOptions(opts...)
	if err := ValidateRaster(l.Width, l.Height, o.scale); err != nil {
		return nil, err
	}

	w := max(int(float64(l.Width)*o.scale), 1)
	h := max(int(float64(l.Height)*o.scale), 1)
	dc := gg.NewContext(w, h)
	dc.Scale(o.scale, o.scale)

	dc.SetHexColor(background)
	dc.Clear()

	if o.lineGuides {
		dc.SetHexColor(guideColor)
		for i, line := range l.Lines {
			if i%2 == 1 {
				continue
			}
			dc.DrawRectangle(0, float64(line.Top), float64(max(l.Width, line.Width)), float64(line.Height))
			dc.Fill()
		}
	}

	for i, b := range l.Boxes {
		x, y := float64(b.X), float64(b.Y)
		bw, bh := float64(b.Width), float64(b.Height)

		if o.margins {
			r := b.MarginRect()
			dc.SetHexColor(marginColor)
			dc.SetLineWidth(1 / o.scale)
			dc.SetDash(3, 2)
			dc.DrawRectangle(float64(r.Left), float64(r.Top), float64(r.Width()), float64(r.Height()))
			dc.Stroke()
			dc.SetDash()
		}

		if o.style != StyleOutline {
			dc.SetHexColor(boxColor(b.Color, i))
			dc.DrawRectangle(x, y, bw, bh)
			dc.Fill()
		}
		dc.SetHexColor(strokeColor)
		dc.SetLineWidth(1)
		dc.DrawRectangle(x, y, bw, bh)
		dc.Stroke()

		if b.Label != "" && b.Width > 0 && b.Height > 0 {
			if o.style == StyleOutline {
				dc.SetHexColor(outlineText)
			} else {
				dc.SetHexColor(textColor)
			}
			dc.DrawStringAnchored(b.Label, x+bw/2, y+bh/2, 0.5, 0.5)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
