package flow

import "github.com/matzehuels/flowbox/pkg/errors"

// Measured is a child after size resolution.
type Measured struct {
	Index  int     // Position in the original child order
	Size   Size    // Resolved size, margins excluded
	Margin Margins // Margins copied from the child
}

// Occupied returns the space the child takes in its line: the resolved
// size plus margins on each axis.
func (m Measured) Occupied() Size {
	return Size{
		Width:  m.Size.Width + m.Margin.Horizontal(),
		Height: m.Size.Height + m.Margin.Vertical(),
	}
}

// Resolve measures every child in order, passing the container constraints
// through unchanged.
//
// All children are checked before any of them is measured: a nil Measurer
// is INVALID_INPUT and a negative margin is INVALID_MARGIN. An error
// returned by a child's Measure is returned as is, without wrapping, and
// stops the pass. A negative resolved dimension is INVALID_SIZE.
func Resolve(children []Child, width, height Constraint) ([]Measured, error) {
	for i, c := range children {
		if c.Measurer == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "child %d has no measurer", i)
		}
		if err := c.Margin.Validate(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidMargin, err, "child %d", i)
		}
	}

	measured := make([]Measured, len(children))
	for i, c := range children {
		size, err := c.Measurer.Measure(width, height)
		if err != nil {
			return nil, err
		}
		if size.Width < 0 || size.Height < 0 {
			return nil, errors.New(errors.ErrCodeInvalidSize,
				"child %d measured a negative size %dx%d", i, size.Width, size.Height)
		}
		measured[i] = Measured{Index: i, Size: size, Margin: c.Margin}
	}
	return measured, nil
}
