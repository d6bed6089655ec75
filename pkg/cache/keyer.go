package cache

// Key prefixes, also used as key types for cache hooks.
const (
	KeyTypeLayout   = "layout"
	KeyTypeArtifact = "artifact"
)

// LayoutKeyOpts are the options that change a computed layout.
type LayoutKeyOpts struct {
	WidthMode  string `json:"width_mode"`
	Width      int    `json:"width"`
	HeightMode string `json:"height_mode"`
	Height     int    `json:"height"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Style      string  `json:"style"`
	Scale      float64 `json:"scale,omitempty"`
	LineGuides bool    `json:"line_guides,omitempty"`
	Margins    bool    `json:"margins,omitempty"`
	Graphviz   bool    `json:"graphviz,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey returns the key for a layout of the document with the
	// given content hash.
	LayoutKey(docHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key for an artifact rendered from the layout
	// with the given content hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer builds keys of the form "type:sha256(hash, opts)".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey(KeyTypeLayout, docHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey(KeyTypeArtifact, layoutHash, opts)
}
