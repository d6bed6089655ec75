package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowbox/pkg/document"
	"github.com/matzehuels/flowbox/pkg/pipeline"
)

const (
	defaultCellScale = 8 // layout pixels per terminal column
	minCellScale     = 1
	maxCellScale     = 64
	previewChrome    = 4 // header and footer lines
)

var previewPalette = []lipgloss.Color{colorCyan, colorGreen, colorYellow, colorBlue, colorRed, colorGray}

var (
	previewOverflowStyle = lipgloss.NewStyle().Foreground(colorRed)
	previewEmptyStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// previewCommand creates the preview command, an interactive view that
// re-measures the document every time the terminal is resized.
func (c *CLI) previewCommand() *cobra.Command {
	var cellScale int

	cmd := &cobra.Command{
		Use:   "preview [document]",
		Short: "Reflow a document live in the terminal",
		Long: `Reflow a document live in the terminal.

The terminal width, multiplied by --cell-scale, becomes an at_most width
constraint. The layout is recomputed on every resize, so shrinking the
window wraps boxes onto more lines.

Keys: + and - change the cell scale, q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := document.ReadDocumentFile(args[0])
			if err != nil {
				return fmt.Errorf("load document: %w", err)
			}
			m := newPreviewModel(doc, cellScale)
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().IntVar(&cellScale, "cell-scale", defaultCellScale, "layout pixels per terminal column")

	return cmd
}

// =============================================================================
// previewModel - Live reflow view
// =============================================================================

// previewModel is the bubbletea model for the preview command.
type previewModel struct {
	doc       document.Document
	cellScale int
	cols      int
	rows      int
	layout    document.Layout
	err       error
	reflows   int
}

func newPreviewModel(doc document.Document, cellScale int) previewModel {
	return previewModel{doc: doc, cellScale: clampScale(cellScale)}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "+", "=":
			m.cellScale = clampScale(m.cellScale * 2)
			m = m.reflow()
		case "-", "_":
			m.cellScale = clampScale(m.cellScale / 2)
			m = m.reflow()
		}
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		m = m.reflow()
	}
	return m, nil
}

// reflow recomputes the layout for the current terminal width.
func (m previewModel) reflow() previewModel {
	if m.cols <= 0 {
		return m
	}
	opts := pipeline.Options{
		WidthMode: "at_most",
		Width:     m.cols * m.cellScale,
	}
	m.layout, m.err = pipeline.ComputeLayout(context.Background(), m.doc, opts)
	m.reflows++
	return m
}

func (m previewModel) View() string {
	var b strings.Builder

	title := m.doc.Name
	if title == "" {
		title = "flowbox preview"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(previewOverflowStyle.Render(m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}
	if m.cols == 0 {
		b.WriteString(StyleDim.Render("waiting for terminal size..."))
		return b.String()
	}

	b.WriteString(StyleHighlight.Render(fmt.Sprintf("at_most:%d", m.cols*m.cellScale)))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d boxes  %d lines  %dx%d  1 col = %dpx",
		len(m.layout.Boxes), len(m.layout.Lines),
		m.layout.Width, m.layout.Height, m.cellScale)))
	b.WriteString("\n\n")

	grid := rasterize(m.layout, m.cellScale, m.cols, max(m.rows-previewChrome, 1))
	for _, row := range grid {
		b.WriteString(renderRow(row, m.layout))
		b.WriteString("\n")
	}

	b.WriteString(StyleDim.Render("+/- scale  q quit"))
	return b.String()
}

// rasterize maps the layout onto a terminal grid of at most cols×rows
// cells. A terminal cell is about twice as tall as it is wide, so one row
// covers 2*scale layout pixels. Each cell holds the index of the box that
// covers it, or -1.
func rasterize(l document.Layout, scale, cols, rows int) [][]int {
	cellW, cellH := scale, 2*scale
	w := min(ceilDiv(l.Width, cellW), cols)
	h := min(ceilDiv(l.Height, cellH), rows)

	grid := make([][]int, h)
	for y := range grid {
		grid[y] = make([]int, w)
		for x := range grid[y] {
			grid[y][x] = -1
		}
	}

	for i, box := range l.Boxes {
		if box.Width == 0 || box.Height == 0 {
			continue
		}
		x0, y0 := box.X/cellW, box.Y/cellH
		x1 := max(ceilDiv(box.X+box.Width, cellW), x0+1)
		y1 := max(ceilDiv(box.Y+box.Height, cellH), y0+1)
		for y := y0; y < min(y1, h); y++ {
			for x := x0; x < min(x1, w); x++ {
				grid[y][x] = i
			}
		}
	}
	return grid
}

// renderRow styles one grid row: each box is filled with the first
// character of its id in the box's palette color.
func renderRow(row []int, l document.Layout) string {
	var b strings.Builder
	for _, idx := range row {
		if idx < 0 {
			b.WriteString(previewEmptyStyle.Render("·"))
			continue
		}
		box := l.Boxes[idx]
		style := lipgloss.NewStyle().Foreground(previewPalette[idx%len(previewPalette)])
		if l.Lines[box.Line].Overflow {
			style = previewOverflowStyle
		}
		r := []rune(box.ID)
		b.WriteString(style.Render(string(r[0])))
	}
	return b.String()
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

func clampScale(s int) int {
	return max(minCellScale, min(s, maxCellScale))
}
