package flow

// Line is one horizontal run of children in a flow layout.
type Line struct {
	Members []int // Child indices, in order
	Width   int   // Sum of occupied widths
	Height  int   // Largest occupied height
}

// Len returns the number of children on the line.
func (l Line) Len() int { return len(l.Members) }

// Overflows reports whether the line is wider than bound. Only a line
// holding a single oversize child can overflow.
func (l Line) Overflows(bound int) bool { return l.Width > bound }

// Partition is the result of packing: the ordered lines and the container
// size derived from them.
type Partition struct {
	Lines  []Line
	Width  int
	Height int
}

// Order returns every child index in line order. For a partition produced
// by BuildLines this is 0..n-1.
func (p Partition) Order() []int {
	var n int
	for _, l := range p.Lines {
		n += len(l.Members)
	}
	order := make([]int, 0, n)
	for _, l := range p.Lines {
		order = append(order, l.Members...)
	}
	return order
}

// Overflowing returns the indices of lines wider than the width
// constraint's bound. It is empty when the width is Unspecified.
func (p Partition) Overflowing(width Constraint) []int {
	bound, ok := width.Bound()
	if !ok {
		return nil
	}
	var out []int
	for i, l := range p.Lines {
		if l.Overflows(bound) {
			out = append(out, i)
		}
	}
	return out
}

// BuildLines packs measured children greedily into lines.
//
// A child starts a new line when the current line is non-empty and adding
// its occupied width would exceed the width bound. The comparison is strict,
// so an exact fit stays on the line. A child wider than the bound therefore
// ends up alone on its own line. The last line is always kept.
//
// The partition's size is the widest line by the sum of line heights. On an
// axis whose constraint is Exact the constraint size is reported instead.
func BuildLines(measured []Measured, width, height Constraint) Partition {
	bound, _ := width.Bound()

	var p Partition
	var cur Line
	for _, m := range measured {
		occ := m.Occupied()
		if len(cur.Members) > 0 && cur.Width+occ.Width > bound {
			p.Lines = append(p.Lines, cur)
			cur = Line{}
		}
		cur.Members = append(cur.Members, m.Index)
		cur.Width += occ.Width
		cur.Height = max(cur.Height, occ.Height)
	}
	if len(cur.Members) > 0 {
		p.Lines = append(p.Lines, cur)
	}

	for _, l := range p.Lines {
		p.Width = max(p.Width, l.Width)
		p.Height += l.Height
	}
	if width.Mode == ModeExact {
		p.Width = width.Size
	}
	if height.Mode == ModeExact {
		p.Height = height.Size
	}
	return p
}
