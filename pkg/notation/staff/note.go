package staff

import (
	"math"
	"slices"

	"github.com/matzehuels/engrave/pkg/errors"
	"github.com/matzehuels/engrave/pkg/notation"
)

// Note geometry.
const (
	StemHeight      = 35.0
	NoteheadWidth   = 10.0
	annotationSpace = 5.0
	noteheadRadius  = 4.5
)

// StaveNote is a chord of noteheads on a five-line stave, with an optional
// stem. Keys are line numbers: 0 is one space below the bottom line, each
// step of 0.5 moves from a line to the next space.
type StaveNote struct {
	notation.Element

	keys   []float64
	x      float64
	dir    notation.StemDirection
	rest   bool
	noStem bool
	stave  *Staff
}

var (
	_ notation.Note = (*StaveNote)(nil)
	_ notation.Rest = (*StaveNote)(nil)
)

// NoteOption configures a StaveNote.
type NoteOption func(*StaveNote)

// WithStemDirection sets the stem direction (default up).
func WithStemDirection(d notation.StemDirection) NoteOption {
	return func(n *StaveNote) { n.dir = d }
}

// AsRest turns the note into a rest. Rests have no stem.
func AsRest() NoteOption { return func(n *StaveNote) { n.rest = true } }

// WithoutStem drops the stem, as for whole notes.
func WithoutStem() NoteOption { return func(n *StaveNote) { n.noStem = true } }

// NewStaveNote creates a note with the given key line numbers. At least one
// key is required.
func NewStaveNote(keys []float64, opts ...NoteOption) (*StaveNote, error) {
	if len(keys) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "note needs at least one key")
	}
	n := &StaveNote{
		Element: notation.NewElement("stavenote"),
		keys:    slices.Clone(keys),
		dir:     notation.StemUp,
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.dir != notation.StemUp && n.dir != notation.StemDown {
		return nil, errors.UnknownKind("stem direction", int(n.dir))
	}
	return n, nil
}

// SetStave places the note on s.
func (n *StaveNote) SetStave(s *Staff) { n.stave = s }

// SetX sets the left edge of the noteheads.
func (n *StaveNote) SetX(x float64) { n.x = x }

func (n *StaveNote) X() float64      { return n.x }
func (n *StaveNote) Keys() []float64 { return n.keys }
func (n *StaveNote) IsRest() bool    { return n.rest }
func (n *StaveNote) HasStem() bool   { return !n.rest && !n.noStem }

func (n *StaveNote) StemDirection() notation.StemDirection { return n.dir }

func (n *StaveNote) Stave() (notation.Stave, bool) {
	if n.stave == nil {
		return nil, false
	}
	return n.stave, true
}

// LineNumber is the highest key for topHalf, else the lowest.
func (n *StaveNote) LineNumber(topHalf bool) float64 {
	if topHalf {
		return slices.Max(n.keys)
	}
	return slices.Min(n.keys)
}

// Ys is the y of each key, in key order. It is empty off-stave.
func (n *StaveNote) Ys() []float64 {
	if n.stave == nil {
		return nil
	}
	ys := make([]float64, len(n.keys))
	for i, k := range n.keys {
		ys[i] = n.stave.YForNote(k)
	}
	return ys
}

func (n *StaveNote) StemX() float64 {
	if n.dir == notation.StemDown {
		return n.x
	}
	return n.x + NoteheadWidth
}

// Stem returns the stem the note draws. The stem spans all keys and extends
// StemHeight past the outermost one.
func (n *StaveNote) Stem() (notation.Stem, error) {
	if n.stave == nil {
		return notation.Stem{}, errors.New(errors.ErrCodeNoStave, "note %s has no stave", n.ID())
	}
	ys := n.Ys()
	lo, hi := slices.Min(ys), slices.Max(ys)
	var ext notation.StemExtents
	if n.dir == notation.StemDown {
		ext = notation.StemExtents{TopY: hi + StemHeight, BaseY: lo}
	} else {
		ext = notation.StemExtents{TopY: lo - StemHeight, BaseY: hi}
	}
	height := -float64(n.dir) * (StemHeight + hi - lo)
	return notation.Stem{Height: height, Extents: ext}, nil
}

// ModifierStartXY is where a modifier of key index starts. Above and below
// modifiers center on the notehead; left and right ones sit beside it.
func (n *StaveNote) ModifierStartXY(pos notation.ModifierPosition, index int) (notation.Point, error) {
	if n.stave == nil {
		return notation.Point{}, errors.New(errors.ErrCodeNoStave, "note %s has no stave", n.ID())
	}
	ys := n.Ys()
	if index < 0 || index >= len(ys) {
		return notation.Point{}, errors.New(errors.ErrCodeInvalidInput, "note %s has no key %d", n.ID(), index)
	}
	x := n.x
	switch pos {
	case notation.PositionAbove, notation.PositionBelow:
		x += NoteheadWidth / 2
	case notation.PositionRight:
		x += NoteheadWidth + 2
	case notation.PositionLeft:
		x -= 2
	}
	return notation.Point{X: x, Y: ys[index]}, nil
}

// YForTopText keeps top text clear of an up stem.
func (n *StaveNote) YForTopText(l float64) float64 {
	if n.stave == nil {
		return 0
	}
	y := n.stave.YForTopText(l)
	if stem, err := n.Stem(); err == nil {
		y = math.Min(y, stem.Extents.TopY-annotationSpace*(l+1))
	}
	return y
}

// Draw renders the noteheads and stem, or a rest block.
func (n *StaveNote) Draw() error {
	if n.stave == nil {
		return errors.New(errors.ErrCodeNoStave, "note %s has no stave", n.ID())
	}
	ctx, err := n.stave.CheckContext()
	if err != nil {
		return err
	}
	n.SetRendered()

	ctx.OpenGroup(n.Class(), n.ID())
	defer ctx.CloseGroup()

	if n.rest {
		y := n.stave.YForLine(float64(n.stave.NumLines()-1) / 2)
		ctx.FillRect(n.x, y-5, NoteheadWidth, 10)
		return nil
	}
	for _, y := range n.Ys() {
		ctx.BeginPath()
		ctx.Arc(n.x+NoteheadWidth/2, y, noteheadRadius, 0, 2*math.Pi, false)
		ctx.Fill()
	}
	if n.HasStem() {
		stem, err := n.Stem()
		if err != nil {
			return err
		}
		top := math.Min(stem.Extents.TopY, stem.Extents.BaseY)
		ctx.FillRect(n.StemX()-notation.StaveLineThickness/2, top, notation.StaveLineThickness,
			math.Abs(stem.Extents.BaseY-stem.Extents.TopY))
	}
	return nil
}
