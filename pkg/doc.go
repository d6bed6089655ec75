// Package pkg provides the core libraries for flowbox.
//
// # Overview
//
// Flowbox is a flow (wrap) layout engine. It takes an ordered list of boxes
// and a container with width and height constraints, measures each box,
// packs the boxes greedily into lines and positions them. The pkg directory
// is organized into these areas:
//
//  1. [core/flow] - The layout engine (resolve, line building, positioning)
//  2. [document] - Input documents and serialized layouts (JSON, TOML)
//  3. [render] - Output formats (SVG, PNG, PDF, DOT)
//  4. [pipeline] - Orchestration (layout → render) with caching
//  5. [cache], [store] - Result caching and layout persistence
//
// # Architecture
//
// The typical data flow through flowbox:
//
//	Document (JSON/TOML)
//	         ↓
//	    [core/flow] Resolve   (measure each box under the container constraints)
//	         ↓
//	    [core/flow] BuildLines (greedy wrap into lines)
//	         ↓
//	    [core/flow] Position  (cursor walk, container-relative rectangles)
//	         ↓
//	    [document] Layout → [render] SVG/PNG/PDF/DOT/JSON
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/flowbox/pkg/core/flow"
//	)
//
//	l := flow.New(
//	    flow.Child{Measurer: flow.Fixed(30, 10)},
//	    flow.Child{Measurer: flow.Fixed(30, 10)},
//	    flow.Child{Measurer: flow.Fixed(30, 10)},
//	)
//	m, _ := l.Measure(flow.AtMost(70), flow.Unspecified())
//	placements, _ := m.Layout(flow.Rect{Right: m.Width, Bottom: m.Height})
//
// # Main Packages
//
// [core/flow] - Constraints, the Measurer interface, and the three layout
// passes. Measurement is a value: measuring twice with the same inputs
// yields the same partition.
//
// [document] - Box documents with auto-sized labelled boxes, validation, and
// the serialized Layout shared by the CLI, the API and the renderers.
//
// [render] - Hand-written SVG, PNG through fogleman/gg, PDF through
// tdewolff/canvas, and pinned DOT rendered by Graphviz.
//
// [pipeline] - The layout → render pipeline used by both the CLI and the
// API. Ensures consistent defaults, validation and caching.
//
// [cache] - File, Redis and null caches with content-addressed keys.
//
// [store] - Layout persistence for the API (memory and MongoDB).
//
// [observability] - Hooks for layout, render, cache and HTTP events.
//
// [errors] - Structured error codes shared by every layer.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/core/flow/...          # Specific package
//	go test -run Example                 # Examples only
//
// [core/flow]: https://pkg.go.dev/github.com/matzehuels/flowbox/pkg/core/flow
// [document]: https://pkg.go.dev/github.com/matzehuels/flowbox/pkg/document
// [render]: https://pkg.go.dev/github.com/matzehuels/flowbox/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/flowbox/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/flowbox/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/flowbox/pkg/store
// [observability]: https://pkg.go.dev/github.com/matzehuels/flowbox/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/flowbox/pkg/errors
package pkg
