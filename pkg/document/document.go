package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flowbox/pkg/core/flow"
	"github.com/matzehuels/flowbox/pkg/errors"
)

// Serialization formats for documents.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

var colorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ConstraintSpec is the serialized form of a flow.Constraint.
type ConstraintSpec struct {
	Mode string `json:"mode,omitempty" toml:"mode,omitempty" bson:"mode,omitempty"`
	Size int    `json:"size,omitempty" toml:"size,omitempty" bson:"size,omitempty"`
}

// Constraint parses the spec.
func (s ConstraintSpec) Constraint() (flow.Constraint, error) {
	mode, err := flow.ParseMode(s.Mode)
	if err != nil {
		return flow.Constraint{}, err
	}
	return flow.Constraint{Mode: mode, Size: s.Size}, nil
}

// SpecOf converts a constraint to its serialized form.
func SpecOf(c flow.Constraint) ConstraintSpec {
	if c.Mode == flow.ModeUnspecified {
		return ConstraintSpec{Mode: c.Mode.String()}
	}
	return ConstraintSpec{Mode: c.Mode.String(), Size: c.Size}
}

// Document is an ordered list of boxes plus default container constraints.
type Document struct {
	Name   string         `json:"name,omitempty" toml:"name,omitempty"`
	Width  ConstraintSpec `json:"width" toml:"width"`
	Height ConstraintSpec `json:"height" toml:"height"`
	Boxes  []Box          `json:"boxes" toml:"boxes"`
}

// Constraints parses the document's default width and height constraints.
func (d Document) Constraints() (width, height flow.Constraint, err error) {
	if width, err = d.Width.Constraint(); err != nil {
		return flow.Constraint{}, flow.Constraint{}, err
	}
	if height, err = d.Height.Constraint(); err != nil {
		return flow.Constraint{}, flow.Constraint{}, err
	}
	return width, height, nil
}

// Validate checks box ids, sizes, margins, colors and the default
// constraints.
func (d Document) Validate() error {
	width, height, err := d.Constraints()
	if err != nil {
		return err
	}
	if err := width.Validate("width"); err != nil {
		return err
	}
	if err := height.Validate("height"); err != nil {
		return err
	}

	seen := make(map[string]bool, len(d.Boxes))
	for i, b := range d.Boxes {
		if err := errors.ValidateBoxID(b.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDocument, err, "box %d", i)
		}
		if seen[b.ID] {
			return errors.New(errors.ErrCodeInvalidDocument, "duplicate box id %q", b.ID)
		}
		seen[b.ID] = true

		if b.Width < 0 || b.Height < 0 {
			return errors.New(errors.ErrCodeInvalidSize, "box %q has negative size %dx%d", b.ID, b.Width, b.Height)
		}
		if err := b.Margin.Flow().Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidMargin, err, "box %q", b.ID)
		}
		if b.Color != "" && !colorPattern.MatchString(b.Color) {
			return errors.New(errors.ErrCodeInvalidDocument, "box %q has invalid color %q (want #rgb or #rrggbb)", b.ID, b.Color)
		}
	}
	return nil
}

// Children converts the boxes to layout children, in document order.
func (d Document) Children() []flow.Child {
	children := make([]flow.Child, len(d.Boxes))
	for i, b := range d.Boxes {
		children[i] = flow.Child{Measurer: b, Margin: b.Margin.Flow()}
	}
	return children
}

// FormatFromPath picks the document format from a file extension.
// Anything other than .toml is treated as JSON.
func FormatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// ReadDocument decodes and validates a document from r.
// ReadDocument does not close r.
func ReadDocument(r io.Reader, format string) (Document, error) {
	var d Document
	switch format {
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(&d); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode json")
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&d); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode toml")
		}
	default:
		return Document{}, errors.New(errors.ErrCodeInvalidFormat, "unknown document format %q", format)
	}
	if err := d.Validate(); err != nil {
		return Document{}, err
	}
	return d, nil
}

// ReadDocumentFile reads a document from path. The extension picks the
// decoder.
func ReadDocumentFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s", path)
		}
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	d, err := ReadDocument(f, FormatFromPath(path))
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// MarshalDocument encodes a document. JSON output is indented.
func MarshalDocument(d Document, format string) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return json.MarshalIndent(d, "", "  ")
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(d); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown document format %q", format)
	}
}

// WriteDocumentFile writes a document to path in the format its extension
// names.
func WriteDocumentFile(d Document, path string) error {
	data, err := MarshalDocument(d, FormatFromPath(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
