package flow

import "github.com/matzehuels/flowbox/pkg/errors"

// Size is a resolved width/height pair.
type Size struct {
	Width, Height int
}

// Margins is the space kept around a child on each side.
type Margins struct {
	Left, Top, Right, Bottom int
}

// Horizontal returns Left + Right.
func (m Margins) Horizontal() int { return m.Left + m.Right }

// Vertical returns Top + Bottom.
func (m Margins) Vertical() int { return m.Top + m.Bottom }

// Validate rejects negative margins.
func (m Margins) Validate() error {
	return errors.ValidateMargins(m.Left, m.Top, m.Right, m.Bottom)
}

// Measurer resolves an element's intrinsic size under the container's
// constraints. It is the only capability the layout needs from an element.
type Measurer interface {
	Measure(width, height Constraint) (Size, error)
}

// MeasurerFunc adapts a function to the Measurer interface.
type MeasurerFunc func(width, height Constraint) (Size, error)

// Measure calls f(width, height).
func (f MeasurerFunc) Measure(width, height Constraint) (Size, error) {
	return f(width, height)
}

// Fixed returns a Measurer that always reports the given size, whatever
// the constraints.
func Fixed(width, height int) Measurer {
	return fixed{Width: width, Height: height}
}

type fixed Size

func (f fixed) Measure(Constraint, Constraint) (Size, error) { return Size(f), nil }

// Child is one element of a flow layout: something that can measure itself,
// plus the margins attached to it. The child's position in the slice passed
// to New is its order index.
type Child struct {
	Measurer Measurer
	Margin   Margins
}
