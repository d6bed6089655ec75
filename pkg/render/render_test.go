package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/matzehuels/flowbox/pkg/core/flow"
	"github.com/matzehuels/flowbox/pkg/document"
	"github.com/matzehuels/flowbox/pkg/errors"
)

// sampleLayout lays out three boxes under AtMost(100): two on the first
// line and one on the second.
func sampleLayout(t *testing.T) document.Layout {
	t.Helper()
	doc := document.Document{
		Name: "sample <flow>",
		Boxes: []document.Box{
			{ID: "a", Label: "A", Width: 30, Height: 10},
			{ID: "b", Label: "B & C", Width: 40, Height: 20, Color: "#abc"},
			{ID: "c", Label: "C", Width: 50, Height: 10, Margin: document.Margins{Left: 5, Top: 5}},
		},
	}
	m, placements, err := flow.Run(doc.Children(), flow.AtMost(100), flow.Unspecified())
	if err != nil {
		t.Fatal(err)
	}
	return document.FromMeasurement(doc, m, placements)
}

func TestValidateFormat(t *testing.T) {
	for _, f := range Formats {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v", f, err)
		}
	}
	if err := ValidateFormat("gif"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormat(gif) = %v, want INVALID_FORMAT", err)
	}
}

func TestValidateStyle(t *testing.T) {
	for _, s := range Styles {
		if err := ValidateStyle(s); err != nil {
			t.Errorf("ValidateStyle(%q) = %v", s, err)
		}
	}
	if err := ValidateStyle("handdrawn"); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("ValidateStyle(handdrawn) = %v, want INVALID_STYLE", err)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#ffffff", color.RGBA{255, 255, 255, 255}},
		{"#abc", color.RGBA{0xaa, 0xbb, 0xcc, 255}},
		{"336699", color.RGBA{0x33, 0x66, 0x99, 255}},
		{"#nothex", color.RGBA{A: 255}},
		{"#12345", color.RGBA{A: 255}},
	}
	for _, tt := range tests {
		if got := parseHex(tt.in); got != tt.want {
			t.Errorf("parseHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFontSize(t *testing.T) {
	if got := fontSize(1000, 1000, 1); got != fontSizeMax {
		t.Errorf("large box: %v, want max %v", got, fontSizeMax)
	}
	if got := fontSize(10, 10, 50); got != fontSizeMin {
		t.Errorf("tiny box: %v, want min %v", got, fontSizeMin)
	}
	if got := fontSize(200, 10, 1); math.Abs(got-10*fontHeightFit) > 1e-9 {
		t.Errorf("short box: %v, want height-bound %v", got, 10*fontHeightFit)
	}
}

func TestBoxColor(t *testing.T) {
	if got := boxColor("#123456", 3); got != "#123456" {
		t.Errorf("explicit color replaced: %s", got)
	}
	if boxColor("", 0) != boxColor("", len(palette)) {
		t.Error("palette should cycle")
	}
}
