package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/flowbox/pkg/document"
)

// pointsPerInch converts layout units to Graphviz inches for node sizes.
const pointsPerInch = 72.0

// ToDOT converts a layout to a Graphviz graph for the neato engine. Every
// box becomes a fixed-size node pinned at its center; Graphviz's y axis
// points up, so y is flipped against the container height. Consecutive
// boxes are joined by dotted edges that trace the flow order.
func ToDOT(l document.Layout, opts ...Option) string {
	o := newOptions(opts...)

	var buf bytes.Buffer
	buf.WriteString("digraph flow {\n")
	fmt.Fprintf(&buf, "  bb=\"0,0,%d,%d\";\n", l.Width, l.Height)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  node [shape=box, fixedsize=true, fontname=\"sans-serif\", fontsize=10];\n")
	buf.WriteString("  edge [style=dotted, arrowsize=0.5, color=\"#999999\"];\n")
	buf.WriteString("\n")

	for i, b := range l.Boxes {
		cx := float64(b.X) + float64(b.Width)/2
		cy := float64(l.Height) - (float64(b.Y) + float64(b.Height)/2)
		attrs := fmt.Sprintf("label=%s, pos=\"%.1f,%.1f!\", width=%.3f, height=%.3f",
			dotQuote(b.Label), cx, cy, float64(b.Width)/pointsPerInch, float64(b.Height)/pointsPerInch)
		if o.style == StyleOutline {
			attrs += fmt.Sprintf(", color=%s", dotQuote(strokeColor))
		} else {
			attrs += fmt.Sprintf(", style=filled, fillcolor=%s, fontcolor=%s", dotQuote(boxColor(b.Color, i)), dotQuote(textColor))
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", dotQuote(b.ID), attrs)
	}

	if len(l.Boxes) > 1 {
		buf.WriteString("\n")
		for i := 1; i < len(l.Boxes); i++ {
			fmt.Fprintf(&buf, "  %s -> %s;\n", dotQuote(l.Boxes[i-1].ID), dotQuote(l.Boxes[i].ID))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// dotQuote returns s as a DOT double-quoted string. DOT only escapes the
// quote and the backslash; other characters are written as is.
func dotQuote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

// RenderDOTSVG renders ToDOT's output to SVG with the embedded Graphviz,
// using neato so the pinned positions are kept.
func RenderDOTSVG(ctx context.Context, l document.Layout, opts ...Option) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(ToDOT(l, opts...)))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	gv.SetLayout(graphviz.NEATO)

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
