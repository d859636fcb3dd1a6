// Package pkg provides the core libraries for Engrave music notation layout.
//
// # Overview
//
// Engrave places barlines and text annotations onto notation staves and
// draws the result. The pkg directory is organized into four areas:
//
//  1. [notation] - Layout logic (staves, notes, barlines, annotations)
//  2. [render] - Drawing surfaces and text measurement
//  3. [score] and [pipeline] - Score documents and the decode, layout, render flow
//  4. [cache], [errors], [observability] - Infrastructure shared by CLI and server
//
// # Architecture
//
// The typical data flow:
//
//	Score document (TOML/JSON)
//	         ↓
//	    [score] package (decode + validate)
//	         ↓
//	    [notation] packages (format note slots, stack annotations)
//	         ↓
//	    [render/canvas] package (draw)
//	         ↓
//	    SVG/PDF/PNG/JSON output
//
// # Quick Start
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "song.toml",
//	    Formats: []string{"svg"},
//	})
//	os.WriteFile("song.svg", result.Artifacts["svg"], 0o644)
//
// # Main Packages
//
// [notation/barline] - Measure separators of seven kinds, each with its own
// width, padding and drawing routine.
//
// [notation/annotation] - Text attached to a note, justified horizontally and
// stacked vertically on the per-slot text lines.
//
// [notation/staff] - The standard five-line stave plus stave and tab notes.
//
// [render/canvas] - The drawing [canvas.Context] and its SVG, PDF, PNG and
// recorder sinks.
//
// [render/textfmt] - Font-aware text measurement backed by the embedded
// [fonts].
//
// [notation]: https://pkg.go.dev/github.com/matzehuels/engrave/pkg/notation
// [notation/barline]: https://pkg.go.dev/github.com/matzehuels/engrave/pkg/notation/barline
// [notation/annotation]: https://pkg.go.dev/github.com/matzehuels/engrave/pkg/notation/annotation
// [notation/staff]: https://pkg.go.dev/github.com/matzehuels/engrave/pkg/notation/staff
// [render]: https://pkg.go.dev/github.com/matzehuels/engrave/pkg/render
// [render/canvas]: https://pkg.go.dev/github.com/matzehuels/engrave/pkg/render/canvas
// [render/textfmt]: https://pkg.go.dev/github.com/matzehuels/engrave/pkg/render/textfmt
// [canvas.Context]: https://pkg.go.dev/github.com/matzehuels/engrave/pkg/render/canvas#Context
// [fonts]: https://pkg.go.dev/github.com/matzehuels/engrave/pkg/fonts
// [score]: https://pkg.go.dev/github.com/matzehuels/engrave/pkg/score
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/engrave/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/engrave/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/engrave/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/engrave/pkg/observability
package pkg
