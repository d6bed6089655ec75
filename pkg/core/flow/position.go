package flow

import "fmt"

// Rect is an axis-aligned rectangle. Right and Bottom are exclusive edges,
// so Width is Right - Left.
type Rect struct {
	Left, Top, Right, Bottom int
}

// Width returns Right - Left.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r Rect) Height() int { return r.Bottom - r.Top }

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width(), Height: r.Height()} }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Right <= r.Left || r.Bottom <= r.Top }

// String formats the rectangle as "(l,t)-(r,b)".
func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Left, r.Top, r.Right, r.Bottom)
}

// Placement is the final rectangle assigned to one child.
type Placement struct {
	Index int  // Child index
	Line  int  // Index of the line holding the child
	Rect  Rect // Border box, margins excluded
}

// Position assigns rectangles to every child of a partition. Coordinates
// are relative to the container's top-left corner.
//
// Children are walked line by line with a running cursor: each child sits at
// the cursor offset by its left and top margins, and the cursor then moves
// right by the child's occupied width. After each line the cursor returns to
// the left edge and moves down by the line height. Children are never
// aligned vertically within their line; their top margin is the only offset.
//
// measured must be indexable by the child indices stored in p.
func Position(p Partition, measured []Measured) []Placement {
	var n int
	for _, l := range p.Lines {
		n += len(l.Members)
	}
	placements := make([]Placement, 0, n)

	curTop := 0
	for li, l := range p.Lines {
		curLeft := 0
		for _, idx := range l.Members {
			m := measured[idx]
			left := curLeft + m.Margin.Left
			top := curTop + m.Margin.Top
			placements = append(placements, Placement{
				Index: idx,
				Line:  li,
				Rect: Rect{
					Left:   left,
					Top:    top,
					Right:  left + m.Size.Width,
					Bottom: top + m.Size.Height,
				},
			})
			curLeft += m.Occupied().Width
		}
		curTop += l.Height
	}
	return placements
}
