package errors

import (
	"strings"
	"testing"
)

func TestValidateConstraintSize(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"zero", 0, false},
		{"positive", 100, false},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConstraintSize("width", tt.size)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConstraintSize(%d) error = %v, wantErr %v", tt.size, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidConstraint) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidConstraint)
			}
		})
	}
}

func TestValidateMargins(t *testing.T) {
	tests := []struct {
		name                     string
		left, top, right, bottom int
		wantErr                  string
	}{
		{name: "all zero"},
		{name: "all positive", left: 1, top: 2, right: 3, bottom: 4},
		{name: "negative left", left: -1, wantErr: "left"},
		{name: "negative bottom", bottom: -5, wantErr: "bottom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMargins(tt.left, tt.top, tt.right, tt.bottom)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !Is(err, ErrCodeInvalidMargin) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidMargin)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateBoxID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "a", false},
		{"valid with dash", "box-1", false},
		{"valid unicode", "标签", false},

		{"empty", "", true},
		{"too long", strings.Repeat("x", 200), true},
		{"space", "box 1", true},
		{"newline", "box\n1", true},
		{"quote", `box"1`, true},
		{"angle bracket", "<box>", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBoxID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBoxID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
