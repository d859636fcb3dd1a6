// Package render groups the drawing side of the layout engine.
//
// Nothing lives in this package itself. The work happens in two
// subpackages:
//
//   - [canvas]: the drawing surface glyphs render onto, with SVG, PDF, PNG
//     and JSON recorder sinks
//   - [textfmt]: text measurement used to justify and stack annotations
//
// Layout code measures with textfmt, then draws through a canvas.Context
// created for each requested output format:
//
//	surface, err := canvas.New("svg", 400, 150, 1)
//	// draw glyphs onto surface
//	data, err := surface.Encode()
//
// [canvas]: github.com/matzehuels/engrave/pkg/render/canvas
// [textfmt]: github.com/matzehuels/engrave/pkg/render/textfmt
package render
