package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/flowbox/pkg/document"
	"github.com/matzehuels/flowbox/pkg/pipeline"
)

const testDocTOML = `name = "cli"

[width]
mode = "at_most"
size = 70

[[boxes]]
id = "a"
width = 30
height = 10

[[boxes]]
id = "b"
width = 30
height = 10

[[boxes]]
id = "c"
width = 30
height = 10
`

func writeTestDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "boxes.toml")
	if err := os.WriteFile(path, []byte(testDocTOML), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testCLI() *CLI {
	return &CLI{Logger: log.New(io.Discard)}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces trimmed", "svg, dot", []string{"svg", "dot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseFormats(tt.input)); diff != "" {
				t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "boxes.json", "boxes"},
		{"", "dir/boxes.toml", "dir/boxes"},
		{"", "boxes.layout.json", "boxes"},
		{"out.svg", "boxes.json", "out"},
		{"out", "boxes.json", "out"},
		{"out.txt", "boxes.json", "out.txt"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestLoadOrComputeLayout(t *testing.T) {
	c := testCLI()
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	ctx := context.Background()
	docPath := writeTestDoc(t)

	fromDoc, _, err := c.loadOrComputeLayout(ctx, runner, docPath, pipeline.Options{})
	if err != nil {
		t.Fatalf("loadOrComputeLayout(document) error: %v", err)
	}
	if len(fromDoc.Lines) != 2 {
		t.Errorf("lines = %d, want 2", len(fromDoc.Lines))
	}

	layoutPath := filepath.Join(t.TempDir(), "boxes.layout.json")
	if err := document.WriteLayoutFile(fromDoc, layoutPath); err != nil {
		t.Fatal(err)
	}
	fromLayout, loaded, err := c.loadOrComputeLayout(ctx, runner, layoutPath, pipeline.Options{Width: 500})
	if err != nil {
		t.Fatalf("loadOrComputeLayout(layout) error: %v", err)
	}
	if !loaded {
		t.Error("a layout file should be reported as loaded")
	}
	if diff := cmp.Diff(fromDoc, fromLayout); diff != "" {
		t.Errorf("layout file should be used as is (-want +got):\n%s", diff)
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "boxes.json")
	artifacts := map[string][]byte{"svg": []byte("<svg/>"), "dot": []byte("digraph{}")}

	err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   []string{"svg", "dot"},
		input:     input,
	})
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}
	for format, want := range artifacts {
		got, err := os.ReadFile(filepath.Join(dir, "boxes."+format))
		if err != nil {
			t.Fatalf("read %s: %v", format, err)
		}
		if string(got) != string(want) {
			t.Errorf("%s = %q, want %q", format, got, want)
		}
	}

	single := filepath.Join(dir, "custom.out")
	err = writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   []string{"svg"},
		input:     input,
		output:    single,
	})
	if err != nil {
		t.Fatalf("writeArtifacts(single) error: %v", err)
	}
	if _, err := os.Stat(single); err != nil {
		t.Errorf("single output should be written to %s: %v", single, err)
	}
}

func TestRunLayoutWritesLayoutFile(t *testing.T) {
	docPath := writeTestDoc(t)
	out := filepath.Join(t.TempDir(), "out.json")

	err := testCLI().runLayout(context.Background(), docPath, pipeline.Options{Width: 200}, out, true)
	if err != nil {
		t.Fatalf("runLayout() error: %v", err)
	}
	l, err := document.ReadLayoutFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Lines) != 1 {
		t.Errorf("lines = %d, want 1 with --width 200", len(l.Lines))
	}
}
