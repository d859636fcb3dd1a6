// Package canvas defines the drawing surface glyphs render onto, plus the
// sinks that turn drawing calls into artifacts.
//
// # Surfaces
//
// [Context] is the small immediate-mode API every glyph draws through:
// filled rectangles, arcs filled as paths, text, a save/restore state stack
// and named groups. Each sink implements it for one output format:
//
//   - [SVG]: a standalone SVG document; groups become <g> elements
//   - [PDF]: a single-page PDF via github.com/jung-kurt/gofpdf
//   - [PNG]: a raster image via github.com/fogleman/gg
//   - [Recorder]: an in-memory list of primitives, encoded as JSON
//
// The recorder doubles as the assertion surface in tests: draw a glyph onto
// it and compare the recorded primitives.
//
// # Usage
//
//	svg := canvas.NewSVG(400, 150)
//	if err := barline.Draw(stave, 10); err != nil {
//	    return err
//	}
//	data, err := svg.Encode()
package canvas

import (
	"github.com/matzehuels/engrave/pkg/errors"
	"github.com/matzehuels/engrave/pkg/fonts"
)

// Context is an immediate-mode drawing surface.
//
// Coordinates are in layout units with y growing downward. Angles are in
// radians; ccw selects the counter-clockwise sweep between them.
type Context interface {
	FillRect(x, y, w, h float64)
	BeginPath()
	Arc(x, y, r, startAngle, endAngle float64, ccw bool)
	Fill()
	FillText(text string, x, y float64)
	SetFont(f fonts.Font)
	Save()
	Restore()
	OpenGroup(class, id string)
	CloseGroup()
}

// Surface is a Context that can serialize what was drawn onto it.
type Surface interface {
	Context
	// Encode returns the finished artifact.
	Encode() ([]byte, error)
	// Format names the artifact format, e.g. "svg".
	Format() string
}

// New creates the surface for an artifact format. Scale only affects raster
// formats.
func New(format string, width, height, scale float64) (Surface, error) {
	switch format {
	case "svg":
		return NewSVG(width, height), nil
	case "pdf":
		return NewPDF(width, height), nil
	case "png":
		return NewPNG(width, height, scale), nil
	case "json":
		return NewRecorder(width, height), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "no canvas for format %q", format)
	}
}

// state is the part of the drawing state Save and Restore preserve.
type state struct {
	font fonts.Font
}

// stateStack implements Save/Restore bookkeeping shared by the sinks.
// Restore on an empty stack is a no-op, as on an HTML canvas.
type stateStack struct {
	cur   state
	saved []state
}

func newStateStack() stateStack {
	return stateStack{cur: state{font: fonts.TextFont}}
}

func (s *stateStack) save() { s.saved = append(s.saved, s.cur) }

func (s *stateStack) restore() bool {
	if len(s.saved) == 0 {
		return false
	}
	s.cur = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
	return true
}
