package document

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/flowbox/pkg/core/flow"
	"github.com/matzehuels/flowbox/pkg/errors"
)

// =============================================================================
// Layout - Serialized Layout Result
// =============================================================================

// Layout is the serialized result of one measure and layout cycle.
//
// Coordinates are relative to the container's top-left corner. Width and
// Height are the resolved container size; WidthConstraint and
// HeightConstraint echo the constraints it was measured under so a layout
// file can be rendered or re-checked without its document.
type Layout struct {
	Name   string `json:"name,omitempty" bson:"name,omitempty"`
	Width  int    `json:"width" bson:"width"`
	Height int    `json:"height" bson:"height"`

	WidthConstraint  ConstraintSpec `json:"width_constraint" bson:"width_constraint"`
	HeightConstraint ConstraintSpec `json:"height_constraint" bson:"height_constraint"`

	Lines []LineInfo  `json:"lines" bson:"lines"`
	Boxes []PlacedBox `json:"boxes" bson:"boxes"`
}

// LineInfo describes one line of the partition.
type LineInfo struct {
	Top      int      `json:"top" bson:"top"`
	Width    int      `json:"width" bson:"width"`
	Height   int      `json:"height" bson:"height"`
	Boxes    []string `json:"boxes" bson:"boxes"`                         // Box IDs in order
	Overflow bool     `json:"overflow,omitempty" bson:"overflow,omitempty"` // Wider than the bound
}

// PlacedBox is a box with its final rectangle.
type PlacedBox struct {
	ID     string  `json:"id" bson:"id"`
	Label  string  `json:"label,omitempty" bson:"label,omitempty"`
	Line   int     `json:"line" bson:"line"`
	X      int     `json:"x" bson:"x"`
	Y      int     `json:"y" bson:"y"`
	Width  int     `json:"width" bson:"width"`
	Height int     `json:"height" bson:"height"`
	Margin Margins `json:"margin,omitempty" bson:"margin,omitempty"`
	Color  string  `json:"color,omitempty" bson:"color,omitempty"`
}

// Rect returns the box's rectangle.
func (b PlacedBox) Rect() flow.Rect {
	return flow.Rect{Left: b.X, Top: b.Y, Right: b.X + b.Width, Bottom: b.Y + b.Height}
}

// MarginRect returns the box's rectangle grown by its margins.
func (b PlacedBox) MarginRect() flow.Rect {
	r := b.Rect()
	r.Left -= b.Margin.Left
	r.Top -= b.Margin.Top
	r.Right += b.Margin.Right
	r.Bottom += b.Margin.Bottom
	return r
}

// FromMeasurement converts a measurement and its placements into a Layout.
// placements must come from m and doc must be the document m was built
// from.
func FromMeasurement(doc Document, m *flow.Measurement, placements []flow.Placement) Layout {
	bound, bounded := m.WidthConstraint.Bound()

	l := Layout{
		Name:             doc.Name,
		Width:            m.Width,
		Height:           m.Height,
		WidthConstraint:  SpecOf(m.WidthConstraint),
		HeightConstraint: SpecOf(m.HeightConstraint),
		Lines:            make([]LineInfo, len(m.Lines)),
		Boxes:            make([]PlacedBox, 0, len(placements)),
	}

	top := 0
	for i, line := range m.Lines {
		ids := make([]string, len(line.Members))
		for j, idx := range line.Members {
			ids[j] = doc.Boxes[idx].ID
		}
		l.Lines[i] = LineInfo{
			Top:      top,
			Width:    line.Width,
			Height:   line.Height,
			Boxes:    ids,
			Overflow: bounded && line.Overflows(bound),
		}
		top += line.Height
	}

	for _, p := range placements {
		b := doc.Boxes[p.Index]
		l.Boxes = append(l.Boxes, PlacedBox{
			ID:     b.ID,
			Label:  b.DisplayLabel(),
			Line:   p.Line,
			X:      p.Rect.Left,
			Y:      p.Rect.Top,
			Width:  p.Rect.Width(),
			Height: p.Rect.Height(),
			Margin: b.Margin,
			Color:  b.Color,
		})
	}
	return l
}

// Validate checks that the layout is internally consistent: every box sits
// on an existing line and every line member names a placed box.
func (l Layout) Validate() error {
	if l.Width < 0 || l.Height < 0 {
		return errors.New(errors.ErrCodeInvalidSize, "layout has negative size %dx%d", l.Width, l.Height)
	}
	placed := make(map[string]bool, len(l.Boxes))
	for _, b := range l.Boxes {
		if b.Line < 0 || b.Line >= len(l.Lines) {
			return errors.New(errors.ErrCodeInvalidDocument, "box %q references missing line %d", b.ID, b.Line)
		}
		placed[b.ID] = true
	}
	var members int
	for i, line := range l.Lines {
		for _, id := range line.Boxes {
			if !placed[id] {
				return errors.New(errors.ErrCodeInvalidDocument, "line %d references unknown box %q", i, id)
			}
		}
		members += len(line.Boxes)
	}
	if members != len(l.Boxes) {
		return errors.New(errors.ErrCodeInvalidDocument, "lines hold %d boxes, layout has %d", members, len(l.Boxes))
	}
	return nil
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout and validates it.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidDocument, err, "unmarshal layout")
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout %s", path)
		}
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}

// IsLayoutJSON reports whether data looks like a serialized layout rather
// than a document: layouts carry a "lines" array.
func IsLayoutJSON(data []byte) bool {
	var probe struct {
		Lines json.RawMessage `json:"lines"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	return len(probe.Lines) > 0 && probe.Lines[0] == '['
}
