package document

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/flowbox/pkg/core/flow"
	"github.com/matzehuels/flowbox/pkg/errors"
)

func computeLayout(t *testing.T, doc Document, width, height flow.Constraint) Layout {
	t.Helper()
	m, placements, err := flow.Run(doc.Children(), width, height)
	if err != nil {
		t.Fatalf("flow.Run: %v", err)
	}
	return FromMeasurement(doc, m, placements)
}

func TestFromMeasurement(t *testing.T) {
	doc := Document{
		Name: "row",
		Boxes: []Box{
			{ID: "a", Width: 30, Height: 10},
			{ID: "b", Width: 40, Height: 20, Color: "#abc"},
			{ID: "c", Width: 150, Height: 5, Margin: Margins{Left: 2}},
		},
	}

	got := computeLayout(t, doc, flow.AtMost(100), flow.Unspecified())

	want := Layout{
		Name:             "row",
		Width:            152,
		Height:           25,
		WidthConstraint:  ConstraintSpec{Mode: "at_most", Size: 100},
		HeightConstraint: ConstraintSpec{Mode: "unspecified"},
		Lines: []LineInfo{
			{Top: 0, Width: 70, Height: 20, Boxes: []string{"a", "b"}},
			{Top: 20, Width: 152, Height: 5, Boxes: []string{"c"}, Overflow: true},
		},
		Boxes: []PlacedBox{
			{ID: "a", Label: "a", Line: 0, X: 0, Y: 0, Width: 30, Height: 10},
			{ID: "b", Label: "b", Line: 0, X: 30, Y: 0, Width: 40, Height: 20, Color: "#abc"},
			{ID: "c", Label: "c", Line: 1, X: 2, Y: 20, Width: 150, Height: 5, Margin: Margins{Left: 2}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("layout mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	doc := Document{Boxes: []Box{
		{ID: "a", Width: 30, Height: 10},
		{ID: "b", Label: "Hello"},
	}}
	l := computeLayout(t, doc, flow.Exact(200), flow.Exact(80))

	path := filepath.Join(t.TempDir(), "out.layout.json")
	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatal(err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(l, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if got.Width != 200 || got.Height != 80 {
		t.Errorf("size = %dx%d, want 200x80", got.Width, got.Height)
	}
}

func TestUnmarshalLayoutValidation(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{`},
		{"box on missing line", `{"width":1,"height":1,"lines":[],"boxes":[{"id":"a","line":0}]}`},
		{"line names unknown box", `{"width":1,"height":1,"lines":[{"boxes":["x"]}],"boxes":[]}`},
		{"negative size", `{"width":-1,"height":1,"lines":[],"boxes":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalLayout([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.GetCode(err) == "" {
				t.Errorf("error %v carries no code", err)
			}
		})
	}
}

func TestIsLayoutJSON(t *testing.T) {
	tests := []struct {
		data string
		want bool
	}{
		{`{"lines":[],"boxes":[]}`, true},
		{`{"boxes":[{"id":"a"}]}`, false},
		{`{"lines":null}`, false},
		{`not json`, false},
	}
	for _, tt := range tests {
		if got := IsLayoutJSON([]byte(tt.data)); got != tt.want {
			t.Errorf("IsLayoutJSON(%s) = %v, want %v", tt.data, got, tt.want)
		}
	}
}

func TestPlacedBoxMarginRect(t *testing.T) {
	b := PlacedBox{X: 5, Y: 10, Width: 20, Height: 20, Margin: Margins{Left: 5, Top: 10, Right: 5, Bottom: 10}}
	if got, want := b.MarginRect(), (flow.Rect{Left: 0, Top: 0, Right: 30, Bottom: 40}); got != want {
		t.Errorf("MarginRect() = %v, want %v", got, want)
	}
}
