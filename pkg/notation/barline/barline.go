// Package barline draws stave barlines.
//
// A barline is one of seven [Kind] values. Each kind has a fixed [Geometry]
// (advance width, repeat padding and bounding box) used by stave layout, and
// a fixed sequence of drawing primitives:
//
//	single       |
//	double       ||      second bar 3 units left of the anchor
//	end          |█      thin bar at -5, thick bar at -2
//	repeatBegin  █|:     plus a plain bar at the stave's left edge when shifted
//	repeatEnd    :|█
//	repeatBoth   :|█|:
//	none         (nothing)
package barline

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/engrave/pkg/notation"
	"github.com/matzehuels/engrave/pkg/render/canvas"
)

// Class is the drawing group class of every barline.
const Class = "stavebarline"

// Repeat dot geometry.
const (
	dotRadius  = 2.0
	thickWidth = 3.0
)

// Barline is a barline glyph attached to one end of a stave.
type Barline struct {
	notation.Element

	kind      Kind
	geometry  Geometry
	thickness float64
	position  notation.StavePosition
	x         float64
}

// Option configures a Barline.
type Option func(*Barline)

// WithLogger injects a logger for draw diagnostics.
func WithLogger(l *log.Logger) Option { return func(b *Barline) { b.SetLogger(l) } }

// WithID overrides the generated element id.
func WithID(id string) Option { return func(b *Barline) { b.SetID(id) } }

// WithPosition places the barline at the begin or end of its stave.
func WithPosition(p notation.StavePosition) Option { return func(b *Barline) { b.position = p } }

// New creates a barline of kind k. It fails with UNKNOWN_KIND for an
// undeclared kind.
func New(k Kind, opts ...Option) (*Barline, error) {
	g, err := LookupGeometry(k)
	if err != nil {
		return nil, err
	}
	b := &Barline{
		Element:   notation.NewElement(Class),
		kind:      k,
		geometry:  g,
		thickness: notation.StaveLineThickness,
		position:  notation.StaveBegin,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// NewFromString creates a barline from a symbolic kind name or numeric string.
func NewFromString(name string, opts ...Option) (*Barline, error) {
	k, err := ParseKind(name)
	if err != nil {
		return nil, err
	}
	return New(k, opts...)
}

// SetKind changes the kind and re-derives width, padding and metrics
// together. On error the barline is left unchanged.
func (b *Barline) SetKind(k Kind) error {
	g, err := LookupGeometry(k)
	if err != nil {
		return err
	}
	b.kind, b.geometry = k, g
	return nil
}

// SetKindName is SetKind for a symbolic name.
func (b *Barline) SetKindName(name string) error {
	k, err := ParseKind(name)
	if err != nil {
		return err
	}
	return b.SetKind(k)
}

// SetKindValue is SetKind for a numeric kind value.
func (b *Barline) SetKindValue(n int) error {
	k, err := KindFromInt(n)
	if err != nil {
		return err
	}
	return b.SetKind(k)
}

func (b *Barline) Kind() Kind                           { return b.kind }
func (b *Barline) Geometry() Geometry                   { return b.geometry }
func (b *Barline) Width() float64                       { return b.geometry.Width }
func (b *Barline) Padding() float64                     { return b.geometry.Padding }
func (b *Barline) LayoutMetrics() LayoutMetrics         { return b.geometry.Metrics }
func (b *Barline) Thickness() float64                   { return b.thickness }
func (b *Barline) Position() notation.StavePosition     { return b.position }
func (b *Barline) SetPosition(p notation.StavePosition) { b.position = p }

// X is the anchor of the last draw.
func (b *Barline) X() float64 { return b.x }

// Draw renders the barline at anchor x on stave. The only failure is a
// stave without a drawing surface.
func (b *Barline) Draw(stave notation.Stave, x float64) error {
	ctx, err := stave.CheckContext()
	if err != nil {
		return err
	}
	b.SetRendered()
	b.x = x

	ctx.OpenGroup(b.Class(), b.ID())
	defer ctx.CloseGroup()

	b.Logger().Debug("draw barline", "kind", b.kind, "x", x, "id", b.ID())

	switch b.kind {
	case Single:
		b.drawVerticalBar(ctx, stave, x, false)
	case Double:
		b.drawVerticalBar(ctx, stave, x, true)
	case End:
		b.drawVerticalEndBar(ctx, stave, x)
	case RepeatBegin:
		b.drawRepeatBar(ctx, stave, x, true)
		if stave.X() != x {
			b.drawVerticalBar(ctx, stave, stave.X(), false)
		}
	case RepeatEnd:
		b.drawRepeatBar(ctx, stave, x, false)
	case RepeatBoth:
		b.drawRepeatBar(ctx, stave, x, false)
		b.drawRepeatBar(ctx, stave, x, true)
	default:
		// None, and any kind without geometry, draws nothing.
	}
	return nil
}

func (b *Barline) drawVerticalBar(ctx canvas.Context, stave notation.Stave, x float64, double bool) {
	top, bot := stave.TopLineTopY(), stave.BottomLineBottomY()
	ctx.FillRect(x, top, b.thickness, bot-top)
	if double {
		ctx.FillRect(x-3, top, b.thickness, bot-top)
	}
}

func (b *Barline) drawVerticalEndBar(ctx canvas.Context, stave notation.Stave, x float64) {
	top, bot := stave.TopLineTopY(), stave.BottomLineBottomY()
	ctx.FillRect(x-5, top, b.thickness, bot-top)
	ctx.FillRect(x-2, top, thickWidth, bot-top)
}

// drawRepeatBar draws the thin and thick bars of a repeat sign and its two
// dots, centered on the middle space of the stave.
func (b *Barline) drawRepeatBar(ctx canvas.Context, stave notation.Stave, x float64, begin bool) {
	top, bot := stave.TopLineTopY(), stave.BottomLineBottomY()

	shift := 3.0
	if !begin {
		shift = -5
	}
	ctx.FillRect(x+shift, top, b.thickness, bot-top)
	ctx.FillRect(x-2, top, thickWidth, bot-top)

	if begin {
		shift += 4
	} else {
		shift -= 4
	}
	spacing := stave.SpacingBetweenLines()
	dotX := x + shift + dotRadius/2
	yOffset := float64(stave.NumLines()-1)*spacing/2 - spacing/2
	dotY := top + yOffset + dotRadius/2

	for range 2 {
		ctx.BeginPath()
		ctx.Arc(dotX, dotY, dotRadius, 0, 2*math.Pi, false)
		ctx.Fill()
		dotY += spacing
	}
}
