package flow

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/flowbox/pkg/errors"
)

// Mode specifies how a Constraint's size is interpreted.
type Mode uint8

const (
	ModeUnspecified Mode = iota // No limit; size follows content
	ModeExact                   // Caller dictates the size
	ModeAtMost                  // Caller gives an upper bound
)

// String returns the canonical lowercase name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeUnspecified:
		return "unspecified"
	case ModeExact:
		return "exact"
	case ModeAtMost:
		return "at_most"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ParseMode parses a mode name. Matching is case-insensitive and accepts
// "at-most" and "atmost" as spellings of "at_most". An empty string is
// ModeUnspecified.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unspecified", "auto":
		return ModeUnspecified, nil
	case "exact", "exactly":
		return ModeExact, nil
	case "at_most", "at-most", "atmost":
		return ModeAtMost, nil
	default:
		return ModeUnspecified, errors.New(errors.ErrCodeInvalidConstraint,
			"unknown constraint mode %q (must be one of: exact, at_most, unspecified)", s)
	}
}

// Constraint is the sizing constraint for one axis.
// Size is ignored under ModeUnspecified.
type Constraint struct {
	Mode Mode
	Size int
}

// Exact returns a constraint that fixes the axis to n.
func Exact(n int) Constraint { return Constraint{Mode: ModeExact, Size: n} }

// AtMost returns a constraint that bounds the axis to n.
func AtMost(n int) Constraint { return Constraint{Mode: ModeAtMost, Size: n} }

// Unspecified returns an unbounded constraint.
func Unspecified() Constraint { return Constraint{Mode: ModeUnspecified} }

// Validate rejects unknown modes and negative sizes. The axis name is
// used in the error message.
func (c Constraint) Validate(axis string) error {
	if c.Mode > ModeAtMost {
		return errors.New(errors.ErrCodeInvalidConstraint, "%s constraint has unknown mode %d", axis, c.Mode)
	}
	return errors.ValidateConstraintSize(axis, c.Size)
}

// Bound returns the wrap bound along this axis and whether it is finite.
// Unspecified constraints report math.MaxInt and false.
func (c Constraint) Bound() (int, bool) {
	if c.Mode == ModeUnspecified {
		return math.MaxInt, false
	}
	return c.Size, true
}

// String formats the constraint as "mode:size", or just "unspecified".
func (c Constraint) String() string {
	if c.Mode == ModeUnspecified {
		return c.Mode.String()
	}
	return fmt.Sprintf("%s:%d", c.Mode, c.Size)
}
