// Package staff implements the stave and notes glyphs are laid out against.
//
// A [Staff] is the standard five-line stave (or a six-line tablature stave
// from [NewTab]): lines are spacing units apart, with four lines of
// headroom above and below for text. Line 0 is the top line. Note positions
// count the other way: [Staff.YForNote] puts line 0 one space below the
// bottom line and line 5 on the top line, as key line numbers do.
package staff

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/engrave/pkg/errors"
	"github.com/matzehuels/engrave/pkg/notation"
	"github.com/matzehuels/engrave/pkg/notation/barline"
	"github.com/matzehuels/engrave/pkg/render/canvas"
)

// Stave geometry defaults.
const (
	DefaultSpacing  = 10.0
	TabSpacing      = 13.0
	TabLines        = 6
	headroom        = 4.0
	topTextPosition = 1.0
)

// Staff is a stave positioned on the page.
type Staff struct {
	notation.Element

	x, y, width float64
	lines       int
	spacing     float64
	headerWidth float64
	begin, end  *barline.Barline
}

var _ notation.Stave = (*Staff)(nil)

// Option configures a Staff.
type Option func(*Staff)

// WithNumLines sets the number of lines (default 5).
func WithNumLines(n int) Option { return func(s *Staff) { s.lines = n } }

// WithSpacing sets the distance between lines (default 10).
func WithSpacing(sp float64) Option { return func(s *Staff) { s.spacing = sp } }

// WithHeaderWidth reserves room for clef, key and time signatures. Notes
// and a begin repeat start after it.
func WithHeaderWidth(w float64) Option { return func(s *Staff) { s.headerWidth = w } }

// WithLogger injects a logger shared with the barlines.
func WithLogger(l *log.Logger) Option { return func(s *Staff) { s.SetLogger(l) } }

// WithID overrides the generated element id.
func WithID(id string) Option { return func(s *Staff) { s.SetID(id) } }

// New creates a stave at (x, y) spanning width, with single barlines at both
// ends.
func New(x, y, width float64, opts ...Option) *Staff {
	s := &Staff{
		Element: notation.NewElement("stave"),
		x:       x,
		y:       y,
		width:   width,
		lines:   notation.DefaultNumLines,
		spacing: DefaultSpacing,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.begin, _ = barline.New(barline.Single, barline.WithPosition(notation.StaveBegin), barline.WithLogger(s.Logger()))
	s.end, _ = barline.New(barline.Single, barline.WithPosition(notation.StaveEnd), barline.WithLogger(s.Logger()))
	return s
}

// NewTab creates a six-line tablature stave.
func NewTab(x, y, width float64, opts ...Option) *Staff {
	opts = append([]Option{WithNumLines(TabLines), WithSpacing(TabSpacing)}, opts...)
	s := New(x, y, width, opts...)
	s.AddClass("tabstave")
	return s
}

// SetBeginBarline changes the kind of the begin barline.
func (s *Staff) SetBeginBarline(k barline.Kind) error { return s.begin.SetKind(k) }

// SetEndBarline changes the kind of the end barline.
func (s *Staff) SetEndBarline(k barline.Kind) error { return s.end.SetKind(k) }

func (s *Staff) BeginBarline() *barline.Barline { return s.begin }
func (s *Staff) EndBarline() *barline.Barline   { return s.end }

func (s *Staff) X() float64                   { return s.x }
func (s *Staff) Y() float64                   { return s.y }
func (s *Staff) Width() float64               { return s.width }
func (s *Staff) NumLines() int                { return s.lines }
func (s *Staff) SpacingBetweenLines() float64 { return s.spacing }
func (s *Staff) HeaderWidth() float64         { return s.headerWidth }

// NoteStartX is where the first note may be placed.
func (s *Staff) NoteStartX() float64 {
	x := s.x + s.headerWidth
	if s.begin.Kind() != barline.None {
		x += s.begin.Width() + s.begin.Padding()
	}
	return x
}

// NoteEndX is where the last note must end.
func (s *Staff) NoteEndX() float64 {
	return s.x + s.width - s.end.Width() - s.end.Padding()
}

// Height is the full height including headroom.
func (s *Staff) Height() float64 {
	return (float64(s.lines-1) + 2*headroom) * s.spacing
}

// YForLine is the y of stave line l, counted from the top line.
func (s *Staff) YForLine(l float64) float64 {
	return s.y + (l+headroom)*s.spacing
}

func (s *Staff) TopLineTopY() float64 {
	return s.YForLine(0) - notation.StaveLineThickness/2
}

func (s *Staff) BottomLineBottomY() float64 {
	return s.YForLine(float64(s.lines-1)) + notation.StaveLineThickness/2
}

// YForNote is the y of key line number line.
func (s *Staff) YForNote(line float64) float64 {
	return s.y + headroom*s.spacing + 5*s.spacing - line*s.spacing
}

// YForTopText is the baseline of text line l above the stave.
func (s *Staff) YForTopText(l float64) float64 {
	return s.YForLine(-(l + topTextPosition))
}

// YForBottomText is the baseline of text line l below the stave.
func (s *Staff) YForBottomText(l float64) float64 {
	return s.YForLine(float64(s.lines) + l)
}

func (s *Staff) CheckContext() (canvas.Context, error) {
	return s.Element.CheckContext("stave " + s.ID())
}

// beginBarlineX is the anchor of the begin barline: the stave edge, or the
// end of the header for a begin repeat.
func (s *Staff) beginBarlineX() float64 {
	if s.begin.Kind() == barline.RepeatBegin && s.headerWidth > 0 {
		return s.x + s.headerWidth
	}
	return s.x
}

// Draw renders the stave lines and both barlines.
func (s *Staff) Draw() error {
	ctx, err := s.CheckContext()
	if err != nil {
		return err
	}
	if s.lines <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "stave %s has %d lines", s.ID(), s.lines)
	}
	s.SetRendered()

	ctx.OpenGroup(s.Class(), s.ID())
	defer ctx.CloseGroup()

	for i := range s.lines {
		y := s.YForLine(float64(i))
		ctx.FillRect(s.x, y-notation.StaveLineThickness/2, s.width, notation.StaveLineThickness)
	}
	if err := s.begin.Draw(s, s.beginBarlineX()); err != nil {
		return err
	}
	return s.end.Draw(s, s.x+s.width)
}
