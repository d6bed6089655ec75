package render

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"
	"unicode/utf8"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/flowbox/pkg/document"
)

// pxToMM converts layout units (CSS pixels at 96 DPI) to canvas millimetres.
const pxToMM = 25.4 / 96

// mmToPt converts millimetres to font points.
const mmToPt = 72 / 25.4

var (
	fontFamily     *canvas.FontFamily
	fontFamilyErr  error
	fontFamilyOnce sync.Once
)

func labelFont() (*canvas.FontFamily, error) {
	fontFamilyOnce.Do(func() {
		family := canvas.NewFontFamily("flowbox")
		if err := family.LoadFont(goregular.TTF, 0, canvas.FontRegular); err != nil {
			fontFamilyErr = fmt.Errorf("load label font: %w", err)
			return
		}
		fontFamily = family
	})
	return fontFamily, fontFamilyErr
}

// RenderPDF renders the layout as a single-page PDF the size of the
// container.
func RenderPDF(l document.Layout, opts ...Option) ([]byte, error) {
	o := newOptions(opts...)
	family, err := labelFont()
	if err != nil {
		return nil, err
	}

	pageW := max(float64(l.Width), 1) * pxToMM
	pageH := max(float64(l.Height), 1) * pxToMM

	c := canvas.New(pageW, pageH)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	ctx.SetFillColor(parseHex(background))
	ctx.SetStrokeColor(color.RGBA{})
	ctx.DrawPath(0, 0, canvas.Rectangle(pageW, pageH))

	if o.lineGuides {
		ctx.SetFillColor(parseHex(guideColor))
		for i, line := range l.Lines {
			if i%2 == 1 {
				continue
			}
			w := float64(max(l.Width, line.Width)) * pxToMM
			ctx.DrawPath(0, float64(line.Top)*pxToMM, canvas.Rectangle(w, float64(line.Height)*pxToMM))
		}
	}

	ctx.SetStrokeWidth(0.25)
	for i, b := range l.Boxes {
		x, y := float64(b.X)*pxToMM, float64(b.Y)*pxToMM
		w, h := float64(b.Width)*pxToMM, float64(b.Height)*pxToMM

		if o.margins {
			r := b.MarginRect()
			ctx.SetFillColor(color.RGBA{})
			ctx.SetStrokeColor(parseHex(marginColor))
			ctx.DrawPath(float64(r.Left)*pxToMM, float64(r.Top)*pxToMM,
				canvas.Rectangle(float64(r.Width())*pxToMM, float64(r.Height())*pxToMM))
		}

		if o.style == StyleOutline {
			ctx.SetFillColor(color.RGBA{})
		} else {
			ctx.SetFillColor(parseHex(boxColor(b.Color, i)))
		}
		ctx.SetStrokeColor(parseHex(strokeColor))
		ctx.DrawPath(x, y, canvas.Rectangle(w, h))

		if b.Label == "" || b.Width == 0 || b.Height == 0 {
			continue
		}
		fill := textColor
		if o.style == StyleOutline {
			fill = outlineText
		}
		size := fontSize(float64(b.Width), float64(b.Height), utf8.RuneCountInString(b.Label)) * pxToMM
		face := family.Face(size*mmToPt, parseHex(fill), canvas.FontRegular, canvas.FontNormal)
		m := face.Metrics()
		baseline := y + h/2 + (m.Ascent-m.Descent)/2
		ctx.DrawText(x+w/2, baseline, canvas.NewTextLine(face, b.Label, canvas.Center))
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, pageW, pageH, nil)
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
