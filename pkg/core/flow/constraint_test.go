package flow

import (
	"math"
	"testing"

	"github.com/matzehuels/flowbox/pkg/errors"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"exact", ModeExact, false},
		{"EXACT", ModeExact, false},
		{"at_most", ModeAtMost, false},
		{"at-most", ModeAtMost, false},
		{"atmost", ModeAtMost, false},
		{"unspecified", ModeUnspecified, false},
		{"", ModeUnspecified, false},
		{"fill", ModeUnspecified, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidConstraint) {
					t.Errorf("code = %v, want INVALID_CONSTRAINT", errors.GetCode(err))
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestModeStringRoundTrip(t *testing.T) {
	for _, m := range []Mode{ModeUnspecified, ModeExact, ModeAtMost} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
}

func TestConstraintBound(t *testing.T) {
	if b, ok := Exact(40).Bound(); b != 40 || !ok {
		t.Errorf("Exact(40).Bound() = %d, %v", b, ok)
	}
	if b, ok := AtMost(0).Bound(); b != 0 || !ok {
		t.Errorf("AtMost(0).Bound() = %d, %v", b, ok)
	}
	if b, ok := Unspecified().Bound(); b != math.MaxInt || ok {
		t.Errorf("Unspecified().Bound() = %d, %v", b, ok)
	}
}

func TestConstraintString(t *testing.T) {
	tests := []struct {
		c    Constraint
		want string
	}{
		{Exact(10), "exact:10"},
		{AtMost(200), "at_most:200"},
		{Unspecified(), "unspecified"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestConstraintConstructors(t *testing.T) {
	tests := []struct {
		name string
		c    Constraint
		want Constraint
	}{
		{"exact", Exact(10), Constraint{Mode: ModeExact, Size: 10}},
		{"at most", AtMost(20), Constraint{Mode: ModeAtMost, Size: 20}},
		{"unspecified", Unspecified(), Constraint{Mode: ModeUnspecified}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.c != tt.want {
				t.Errorf("got %+v, want %+v", tt.c, tt.want)
			}
			if err := tt.c.Validate("width"); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}
