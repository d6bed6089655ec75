// Package render turns computed flow layouts into artifacts.
//
// # Formats
//
//   - svg: hand-written SVG, one <rect> and one <text> per box
//   - png: raster image drawn with fogleman/gg
//   - pdf: vector document drawn with tdewolff/canvas
//   - dot: Graphviz source with pinned box positions
//   - json: the layout itself (see [document.MarshalLayout])
//
// All renderers take a [document.Layout] and the same functional options:
//
//	svg := render.RenderSVG(layout, render.WithStyle(render.StyleOutline), render.WithLineGuides())
//	png, err := render.RenderPNG(layout, render.WithScale(2))
//
// # Styles
//
// [StyleSimple] fills each box with its color (or a palette color picked by
// position) and draws the label in the middle. [StyleOutline] draws box
// borders only.
//
// # Graphviz
//
// [ToDOT] emits a neato graph whose nodes are pinned at the box centers,
// with dotted edges following flow order. [RenderDOTSVG] renders it with
// the embedded Graphviz (goccy/go-graphviz), which is useful to check a
// layout against an independent renderer.
package render
