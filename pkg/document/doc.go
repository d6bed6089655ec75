// Package document defines the on-disk formats of flowbox: box documents
// (the input) and computed layouts (the output).
//
// # Documents
//
// A [Document] is an ordered list of boxes plus the default constraints the
// container is measured under. Documents are read from JSON or TOML; the
// file extension picks the decoder:
//
//	name = "toolbar"
//
//	[width]
//	mode = "at_most"
//	size = 320
//
//	[[boxes]]
//	id = "open"
//	label = "Open"
//
//	[[boxes]]
//	id = "spacer"
//	width = 40
//	height = 32
//	margin = { left = 4, right = 4 }
//
// Every [Box] implements [flow.Measurer]. A box with an explicit width
// reports its fixed size. A box with only a label sizes itself from the
// label text and wraps it when the width constraint is bounded.
//
// # Layouts
//
// A [Layout] is the serialized result of a layout cycle: the container
// size, the lines, and one [PlacedBox] per input box. It carries json and
// bson tags so the same value is written to files, returned over HTTP and
// stored in MongoDB.
//
//	layout := document.FromMeasurement(doc, m, placements)
//	data, _ := document.MarshalLayout(layout)
package document
