package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"unicode/utf8"

	"github.com/matzehuels/flowbox/pkg/document"
)

// RenderSVG renders the layout as a standalone SVG document. The viewBox
// matches the layout's container size.
func RenderSVG(l document.Layout, opts ...Option) []byte {
	o := newOptions(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	if l.Name != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escape(l.Name))
	}
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", background)

	if o.lineGuides {
		renderLineGuides(&buf, l)
	}
	for i, b := range l.Boxes {
		if o.margins {
			renderMarginBox(&buf, b)
		}
		renderBox(&buf, b, i, o.style)
	}
	for _, b := range l.Boxes {
		renderLabel(&buf, b, o.style)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderLineGuides(buf *bytes.Buffer, l document.Layout) {
	for i, line := range l.Lines {
		if i%2 == 1 {
			continue
		}
		fmt.Fprintf(buf, `  <rect class="line" x="0" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
			line.Top, max(l.Width, line.Width), line.Height, guideColor)
	}
}

func renderMarginBox(buf *bytes.Buffer, b document.PlacedBox) {
	r := b.MarginRect()
	fmt.Fprintf(buf, `  <rect class="margin" x="%d" y="%d" width="%d" height="%d" fill="none" stroke="%s" stroke-dasharray="3 2"/>`+"\n",
		r.Left, r.Top, r.Width(), r.Height(), marginColor)
}

func renderBox(buf *bytes.Buffer, b document.PlacedBox, i int, style string) {
	fill := boxColor(b.Color, i)
	if style == StyleOutline {
		fill = "none"
	}
	fmt.Fprintf(buf, `  <rect id="box-%s" class="box" x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
		escape(b.ID), b.X, b.Y, b.Width, b.Height, fill, strokeColor)
}

func renderLabel(buf *bytes.Buffer, b document.PlacedBox, style string) {
	if b.Label == "" || b.Width == 0 || b.Height == 0 {
		return
	}
	fill := textColor
	if style == StyleOutline {
		fill = outlineText
	}
	size := fontSize(float64(b.Width), float64(b.Height), utf8.RuneCountInString(b.Label))
	cx := float64(b.X) + float64(b.Width)/2
	cy := float64(b.Y) + float64(b.Height)/2
	fmt.Fprintf(buf, `  <text class="label" x="%.1f" y="%.1f" font-family="sans-serif" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		cx, cy, size, fill, escape(b.Label))
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
