package document

import (
	"unicode/utf8"

	"github.com/matzehuels/flowbox/pkg/core/flow"
)

// Text metrics used to size label-only boxes. Labels are measured in a
// fixed-pitch cell grid.
const (
	CharWidth   = 8  // Width of one label character
	LineHeight  = 16 // Height of one text row
	TextPadding = 8  // Inner padding on each side of the label
)

// Margins mirrors flow.Margins with serialization tags.
type Margins struct {
	Left   int `json:"left,omitempty" toml:"left,omitempty" bson:"left,omitempty"`
	Top    int `json:"top,omitempty" toml:"top,omitempty" bson:"top,omitempty"`
	Right  int `json:"right,omitempty" toml:"right,omitempty" bson:"right,omitempty"`
	Bottom int `json:"bottom,omitempty" toml:"bottom,omitempty" bson:"bottom,omitempty"`
}

// Flow converts the margins to the layout engine's type.
func (m Margins) Flow() flow.Margins {
	return flow.Margins{Left: m.Left, Top: m.Top, Right: m.Right, Bottom: m.Bottom}
}

// Box is one element of a document.
type Box struct {
	ID     string  `json:"id" toml:"id"`
	Label  string  `json:"label,omitempty" toml:"label,omitempty"`
	Width  int     `json:"width,omitempty" toml:"width,omitempty"`
	Height int     `json:"height,omitempty" toml:"height,omitempty"`
	Margin Margins `json:"margin,omitempty" toml:"margin,omitempty"`
	Color  string  `json:"color,omitempty" toml:"color,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (b Box) DisplayLabel() string {
	if b.Label != "" {
		return b.Label
	}
	return b.ID
}

// IsAuto reports whether the box sizes itself from its label.
func (b Box) IsAuto() bool { return b.Width == 0 && b.Label != "" }

// Measure implements flow.Measurer.
//
// Fixed boxes ignore the constraints. Auto boxes are one text row wide
// enough for the whole label; under a bounded width that is too narrow the
// label wraps into as many rows as it needs and the box takes the bound as
// its width. An explicit Height on an auto box acts as a minimum.
func (b Box) Measure(width, _ flow.Constraint) (flow.Size, error) {
	if !b.IsAuto() {
		return flow.Size{Width: b.Width, Height: b.Height}, nil
	}

	chars := utf8.RuneCountInString(b.Label)
	perRow := chars
	if bound, ok := width.Bound(); ok && chars*CharWidth+2*TextPadding > bound {
		perRow = max((bound-2*TextPadding)/CharWidth, 1)
	}
	rows := (chars + perRow - 1) / perRow

	size := flow.Size{
		Width:  perRow*CharWidth + 2*TextPadding,
		Height: rows*LineHeight + 2*TextPadding,
	}
	size.Height = max(size.Height, b.Height)
	return size, nil
}
