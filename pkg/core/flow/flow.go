package flow

import "github.com/matzehuels/flowbox/pkg/errors"

// Layout is a flow container: an ordered list of children that can be
// measured and positioned any number of times. A Layout keeps no state
// between cycles.
type Layout struct {
	children []Child
}

// New returns a flow layout over children. The slice is copied; later
// changes by the caller do not affect the layout.
func New(children ...Child) *Layout {
	return &Layout{children: append([]Child(nil), children...)}
}

// Children returns a copy of the layout's children.
func (l *Layout) Children() []Child {
	return append([]Child(nil), l.children...)
}

// Len returns the number of children.
func (l *Layout) Len() int { return len(l.children) }

// Measure runs the measure pass under the given constraints: it validates
// the constraints, resolves every child's size and packs the children into
// lines. Each call returns a new Measurement.
func (l *Layout) Measure(width, height Constraint) (*Measurement, error) {
	if err := width.Validate("width"); err != nil {
		return nil, err
	}
	if err := height.Validate("height"); err != nil {
		return nil, err
	}

	measured, err := Resolve(l.children, width, height)
	if err != nil {
		return nil, err
	}

	return &Measurement{
		Partition:        BuildLines(measured, width, height),
		WidthConstraint:  width,
		HeightConstraint: height,
		measured:         measured,
	}, nil
}

// Measurement is the outcome of a measure pass. It embeds the line
// partition and the resolved container size.
type Measurement struct {
	Partition

	WidthConstraint  Constraint
	HeightConstraint Constraint

	measured []Measured
}

// Measured returns the resolved children, in child order.
func (m *Measurement) Measured() []Measured {
	return append([]Measured(nil), m.measured...)
}

// Size returns the resolved container size.
func (m *Measurement) Size() Size {
	return Size{Width: m.Width, Height: m.Height}
}

// Layout runs the layout pass against this measurement. bounds is the
// rectangle the container was given by its parent; it must not be inverted.
// Returned placements are relative to the container origin, in child order.
func (m *Measurement) Layout(bounds Rect) ([]Placement, error) {
	if bounds.Right < bounds.Left || bounds.Bottom < bounds.Top {
		return nil, errors.New(errors.ErrCodeInvalidBounds, "inverted layout bounds %s", bounds)
	}
	return Position(m.Partition, m.measured), nil
}

// Run measures the children and lays them out in one step, using the
// measured size as the container bounds.
func Run(children []Child, width, height Constraint) (*Measurement, []Placement, error) {
	m, err := New(children...).Measure(width, height)
	if err != nil {
		return nil, nil, err
	}
	placements, err := m.Layout(Rect{Right: m.Width, Bottom: m.Height})
	if err != nil {
		return nil, nil, err
	}
	return m, placements, nil
}
