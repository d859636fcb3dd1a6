package staff

import (
	"math"
	"slices"

	"github.com/matzehuels/engrave/pkg/errors"
	"github.com/matzehuels/engrave/pkg/fonts"
	"github.com/matzehuels/engrave/pkg/notation"
)

// TabPosition is one fretted string. String 1 is the top line.
type TabPosition struct {
	String int    `json:"str" toml:"str"`
	Fret   string `json:"fret" toml:"fret"`
}

// FretFont is the face fret numbers are drawn in.
var FretFont = fonts.Font{Family: fonts.FallbackFontFamily, Size: 9, Weight: fonts.WeightNormal, Style: fonts.StyleNormal}

// TabNote is a chord of fret numbers on a tablature stave.
type TabNote struct {
	notation.Element

	positions []TabPosition
	x         float64
	dir       notation.StemDirection
	drawStem  bool
	stave     *Staff
}

var (
	_ notation.Note      = (*TabNote)(nil)
	_ notation.Tablature = (*TabNote)(nil)
)

// TabOption configures a TabNote.
type TabOption func(*TabNote)

// WithTabStem draws the stem, which tablature usually omits. Without it the
// note reports no stem to the modifiers attached to it.
func WithTabStem(d notation.StemDirection) TabOption {
	return func(n *TabNote) { n.drawStem, n.dir = true, d }
}

// NewTabNote creates a tab note. At least one position is required.
func NewTabNote(positions []TabPosition, opts ...TabOption) (*TabNote, error) {
	if len(positions) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "tab note needs at least one position")
	}
	for _, p := range positions {
		if p.String < 1 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid string %d", p.String)
		}
	}
	n := &TabNote{
		Element:   notation.NewElement("tabnote"),
		positions: slices.Clone(positions),
		dir:       notation.StemUp,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

func (n *TabNote) SetStave(s *Staff)        { n.stave = s }
func (n *TabNote) SetX(x float64)           { n.x = x }
func (n *TabNote) X() float64               { return n.x }
func (n *TabNote) Positions() []TabPosition { return n.positions }
func (n *TabNote) DrawsStem() bool          { return n.drawStem }
func (n *TabNote) HasStem() bool            { return n.drawStem }
func (n *TabNote) StemX() float64           { return n.x + NoteheadWidth/2 }

func (n *TabNote) StemDirection() notation.StemDirection { return n.dir }

func (n *TabNote) Stave() (notation.Stave, bool) {
	if n.stave == nil {
		return nil, false
	}
	return n.stave, true
}

func (n *TabNote) strings() []float64 {
	s := make([]float64, len(n.positions))
	for i, p := range n.positions {
		s[i] = float64(p.String)
	}
	return s
}

// LeastString is the topmost string played.
func (n *TabNote) LeastString() float64 { return slices.Min(n.strings()) }

// GreatestString is the bottommost string played.
func (n *TabNote) GreatestString() float64 { return slices.Max(n.strings()) }

// LineNumber counts strings from the bottom line, matching key line numbers.
func (n *TabNote) LineNumber(topHalf bool) float64 {
	lines := float64(notation.NumLinesFor(n))
	if topHalf {
		return lines - n.LeastString()
	}
	return lines - n.GreatestString()
}

func (n *TabNote) Ys() []float64 {
	if n.stave == nil {
		return nil
	}
	ys := make([]float64, len(n.positions))
	for i, p := range n.positions {
		ys[i] = n.stave.YForLine(float64(p.String - 1))
	}
	return ys
}

// Stem extends from the outer fret past the stave.
func (n *TabNote) Stem() (notation.Stem, error) {
	if n.stave == nil {
		return notation.Stem{}, errors.New(errors.ErrCodeNoStave, "tab note %s has no stave", n.ID())
	}
	if n.dir == notation.StemDown {
		base := n.stave.BottomLineBottomY()
		return notation.Stem{Height: StemHeight, Extents: notation.StemExtents{TopY: base + StemHeight, BaseY: base}}, nil
	}
	base := n.stave.TopLineTopY()
	return notation.Stem{Height: -StemHeight, Extents: notation.StemExtents{TopY: base - StemHeight, BaseY: base}}, nil
}

func (n *TabNote) ModifierStartXY(pos notation.ModifierPosition, index int) (notation.Point, error) {
	ys := n.Ys()
	if ys == nil {
		return notation.Point{}, errors.New(errors.ErrCodeNoStave, "tab note %s has no stave", n.ID())
	}
	if index < 0 || index >= len(ys) {
		return notation.Point{}, errors.New(errors.ErrCodeInvalidInput, "tab note %s has no position %d", n.ID(), index)
	}
	return notation.Point{X: n.x + NoteheadWidth/2, Y: ys[index]}, nil
}

func (n *TabNote) YForTopText(l float64) float64 {
	if n.stave == nil {
		return 0
	}
	return n.stave.YForTopText(l)
}

// Draw renders each fret number on its string, and the stem if enabled.
func (n *TabNote) Draw() error {
	if n.stave == nil {
		return errors.New(errors.ErrCodeNoStave, "tab note %s has no stave", n.ID())
	}
	ctx, err := n.stave.CheckContext()
	if err != nil {
		return err
	}
	n.SetRendered()

	ctx.OpenGroup(n.Class(), n.ID())
	defer ctx.CloseGroup()

	ctx.Save()
	ctx.SetFont(FretFont)
	ys := n.Ys()
	for i, p := range n.positions {
		ctx.FillText(p.Fret, n.x, ys[i]+FretFont.PixelSize()/3)
	}
	ctx.Restore()

	if n.drawStem {
		stem, err := n.Stem()
		if err != nil {
			return err
		}
		top := math.Min(stem.Extents.TopY, stem.Extents.BaseY)
		ctx.FillRect(n.StemX(), top, notation.StaveLineThickness, math.Abs(stem.Extents.BaseY-stem.Extents.TopY))
	}
	return nil
}
