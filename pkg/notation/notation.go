// Package notation holds the vocabulary shared by every glyph the layout
// engine places: stave and note geometry, stem direction, modifier positions
// and the per-slot stacking state.
//
// # Overview
//
// Glyph packages ([barline], [annotation]) never depend on a concrete staff.
// They query the [Stave] and [Note] interfaces declared here; the staff
// package supplies the standard five-line implementation.
//
// # Coordinates
//
// All values are in layout units (CSS pixels at 1x) with y growing downward.
// Vertical stacking is counted in text lines of [StaveLineDistance] units.
//
// [barline]: github.com/matzehuels/engrave/pkg/notation/barline
// [annotation]: github.com/matzehuels/engrave/pkg/notation/annotation
package notation

import (
	"github.com/matzehuels/engrave/pkg/render/canvas"
)

const (
	// StaveLineDistance is the distance between text lines.
	StaveLineDistance = 10.0
	// StaveLineThickness is the stroke width of stave lines and thin bars.
	StaveLineThickness = 1.0
	// DefaultNumLines is the line count assumed for a note without a stave.
	DefaultNumLines = 5
)

// StemDirection is the direction a stem points.
type StemDirection int

const (
	StemUp   StemDirection = 1
	StemDown StemDirection = -1
)

func (d StemDirection) String() string {
	if d == StemDown {
		return "down"
	}
	return "up"
}

// ModifierPosition is where a modifier sits relative to its note.
type ModifierPosition int

const (
	PositionCenter ModifierPosition = iota
	PositionLeft
	PositionRight
	PositionAbove
	PositionBelow
)

// StavePosition is where a stave modifier sits on its stave.
type StavePosition int

const (
	StaveBegin StavePosition = iota + 1
	StaveEnd
)

func (p StavePosition) String() string {
	if p == StaveEnd {
		return "end"
	}
	return "begin"
}

// Point is a position in layout units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// StemExtents is the vertical span of a stem: TopY is its tip, BaseY where
// it meets the notehead.
type StemExtents struct {
	TopY  float64
	BaseY float64
}

// Stem describes a drawn stem.
type Stem struct {
	Height  float64 // signed: negative for up stems
	Extents StemExtents
}

// Stave is the geometry a glyph needs from the staff it is drawn on.
type Stave interface {
	TopLineTopY() float64
	BottomLineBottomY() float64
	NumLines() int
	SpacingBetweenLines() float64
	X() float64
	YForBottomText(line float64) float64
	// CheckContext returns the bound drawing surface or a
	// RENDERING_CONTEXT_MISSING error.
	CheckContext() (canvas.Context, error)
}

// Note is the geometry a modifier needs from the note it is attached to.
type Note interface {
	// LineNumber is the stave line of the highest (topHalf) or lowest key.
	LineNumber(topHalf bool) float64
	HasStem() bool
	StemDirection() StemDirection
	Stem() (Stem, error)
	ModifierStartXY(pos ModifierPosition, index int) (Point, error)
	StemX() float64
	Ys() []float64
	YForTopText(line float64) float64
	// Stave returns the stave the note belongs to, if any.
	Stave() (Stave, bool)
}

// Rest is implemented by notes that may be rests. Rests never contribute a
// stem to vertical stacking.
type Rest interface {
	IsRest() bool
}

// Tablature is implemented by notes positioned by string instead of by line.
type Tablature interface {
	LeastString() float64
	GreatestString() float64
	// DrawsStem reports whether the stem is actually rendered.
	DrawsStem() bool
}

// IsRest reports whether n is a rest.
func IsRest(n Note) bool {
	r, ok := n.(Rest)
	return ok && r.IsRest()
}

// NumLinesFor returns the line count of the note's stave, or
// [DefaultNumLines] when it has none.
func NumLinesFor(n Note) int {
	if s, ok := n.Stave(); ok && s != nil {
		return s.NumLines()
	}
	return DefaultNumLines
}
