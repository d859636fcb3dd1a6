package annotation

import (
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/matzehuels/engrave/pkg/errors"
	"github.com/matzehuels/engrave/pkg/fonts"
	"github.com/matzehuels/engrave/pkg/notation"
	"github.com/matzehuels/engrave/pkg/render/canvas"
	"github.com/matzehuels/engrave/pkg/render/textfmt"
)

// mono gives every annotation 2 text lines ((5+15)/10) and 5 units per rune.
var mono = textfmt.Fixed(textfmt.Monospace{Height: 15, Advance: 5})

type testStave struct {
	lines   int
	spacing float64
}

func (s testStave) TopLineTopY() float64                  { return 39.5 }
func (s testStave) BottomLineBottomY() float64            { return 80.5 }
func (s testStave) NumLines() int                         { return s.lines }
func (s testStave) SpacingBetweenLines() float64          { return s.spacing }
func (s testStave) X() float64                            { return 0 }
func (s testStave) YForBottomText(l float64) float64      { return 100 + l*10 }
func (s testStave) CheckContext() (canvas.Context, error) { return nil, nil }

var fiveLines = testStave{lines: 5, spacing: 10}

type testNote struct {
	top, bottom float64
	stemmed     bool
	dir         notation.StemDirection
	stem        notation.Stem
	stemErr     error
	rest        bool
	start       notation.Point
	stemX       float64
	ys          []float64
	stave       notation.Stave
}

func (n *testNote) LineNumber(topHalf bool) float64 {
	if topHalf {
		return n.top
	}
	return n.bottom
}
func (n *testNote) HasStem() bool                         { return n.stemmed }
func (n *testNote) StemDirection() notation.StemDirection { return n.dir }
func (n *testNote) Stem() (notation.Stem, error)          { return n.stem, n.stemErr }
func (n *testNote) StemX() float64                        { return n.stemX }
func (n *testNote) Ys() []float64                         { return n.ys }
func (n *testNote) YForTopText(l float64) float64         { return 20 - l*10 }
func (n *testNote) IsRest() bool                          { return n.rest }
func (n *testNote) Stave() (notation.Stave, bool) {
	return n.stave, n.stave != nil
}
func (n *testNote) ModifierStartXY(pos notation.ModifierPosition, index int) (notation.Point, error) {
	return n.start, nil
}

type testTabNote struct {
	testNote
	least, greatest float64
	drawStem        bool
}

func (n *testTabNote) LeastString() float64    { return n.least }
func (n *testTabNote) GreatestString() float64 { return n.greatest }
func (n *testTabNote) DrawsStem() bool         { return n.drawStem }

func newAnn(t *testing.T, text string, note notation.Note, opts ...Option) *Annotation {
	t.Helper()
	opts = append([]Option{WithTextFormatter(mono)}, opts...)
	a, err := New(text, opts...)
	if err != nil {
		t.Fatalf("New(%q) error: %v", text, err)
	}
	if note != nil {
		a.Attach(note, 0)
	}
	return a
}

func TestNewDefaults(t *testing.T) {
	a := newAnn(t, "abc", nil)
	if a.Justification() != Center || a.VerticalJustification() != Top {
		t.Errorf("defaults = %v/%v, want center/top", a.Justification(), a.VerticalJustification())
	}
	if a.Font() != fonts.TextFont {
		t.Errorf("Font() = %+v, want TextFont", a.Font())
	}
	if a.Width() != 15 || a.TextLine() != 0 {
		t.Errorf("Width() = %v, TextLine() = %v", a.Width(), a.TextLine())
	}
	if _, ok := a.Note(); ok {
		t.Error("new annotation should not be attached")
	}

	if _, err := New("x", WithTextFormatter(mono), WithJustification(9)); !errors.Is(err, errors.ErrCodeUnknownKind) {
		t.Errorf("New() with bad justification error = %v", err)
	}
}

func TestSetters(t *testing.T) {
	a := newAnn(t, "ab", nil)
	if err := a.SetText("abcdef"); err != nil || a.Width() != 30 {
		t.Errorf("SetText() width = %v, err = %v", a.Width(), err)
	}
	if err := a.SetJustification(Justification(0)); !errors.Is(err, errors.ErrCodeUnknownKind) {
		t.Errorf("SetJustification(0) error = %v", err)
	}
	if err := a.SetVerticalJustification(Bottom); err != nil || a.VerticalJustification() != Bottom {
		t.Errorf("SetVerticalJustification() = %v, %v", a.VerticalJustification(), err)
	}

	broken := textfmt.FactoryFunc(func(fonts.Font) (textfmt.Formatter, error) {
		return nil, stderrors.New("no face")
	})
	a.measure = broken
	if err := a.SetFont(fonts.Font{Size: 20}); err == nil {
		t.Error("SetFont() should fail when measuring fails")
	}
	if a.Font() != fonts.TextFont {
		t.Errorf("failed SetFont() changed the font to %+v", a.Font())
	}
}

func TestParseJustification(t *testing.T) {
	tests := []struct {
		in   string
		want Justification
		ok   bool
	}{
		{"left", Left, true},
		{"center", Center, true},
		{"right", Right, true},
		{"centerStem", CenterStem, true},
		{"3", Right, true},
		{"5", 0, false},
		{"middle", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseJustification(tt.in)
			if tt.ok && (err != nil || got != tt.want) {
				t.Errorf("ParseJustification(%q) = %v, %v", tt.in, got, err)
			}
			if !tt.ok && !errors.Is(err, errors.ErrCodeUnknownKind) {
				t.Errorf("ParseJustification(%q) error = %v, want UNKNOWN_KIND", tt.in, err)
			}
		})
	}
}

func TestParseVerticalJustification(t *testing.T) {
	tests := []struct {
		in   string
		want VerticalJustification
		ok   bool
	}{
		{"top", Top, true},
		{"center", VerticalCenter, true},
		{"bottom", Bottom, true},
		{"centerStem", VerticalCenterStem, true},
		{"1", Top, true},
		{"0", 0, false},
		{"above", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVerticalJustification(tt.in)
			if tt.ok && (err != nil || got != tt.want) {
				t.Errorf("ParseVerticalJustification(%q) = %v, %v", tt.in, got, err)
			}
			if !tt.ok && !errors.Is(err, errors.ErrCodeUnknownKind) {
				t.Errorf("ParseVerticalJustification(%q) error = %v, want UNKNOWN_KIND", tt.in, err)
			}
		})
	}
}

func TestJustificationText(t *testing.T) {
	var j Justification
	if err := j.UnmarshalText([]byte("centerStem")); err != nil || j != CenterStem {
		t.Errorf("UnmarshalText() = %v, %v", j, err)
	}
	if b, _ := Bottom.MarshalText(); string(b) != "bottom" {
		t.Errorf("MarshalText() = %s", b)
	}
	if _, err := VerticalJustification(7).MarshalText(); err == nil {
		t.Error("MarshalText() of an invalid value should fail")
	}
}

func TestFormatEmpty(t *testing.T) {
	state := &notation.ModifierContextState{TopTextLine: 1, TextLine: 2, LeftShift: 3, RightShift: 4}
	before := *state

	for _, in := range [][]*Annotation{nil, {}} {
		ok, err := Format(in, state)
		if ok || err != nil {
			t.Errorf("Format(%v) = %v, %v; want false, nil", in, ok, err)
		}
		if *state != before {
			t.Errorf("Format(empty) changed state to %+v", *state)
		}
	}
}

func TestFormatTopStacking(t *testing.T) {
	note := &testNote{top: 2, stave: fiveLines}
	first := newAnn(t, "a", note)
	second := newAnn(t, "b", note)
	state := notation.NewModifierContextState()

	ok, err := Format([]*Annotation{first, second}, state)
	if !ok || err != nil {
		t.Fatalf("Format() = %v, %v", ok, err)
	}
	if first.TextLine() != 3 {
		t.Errorf("first TextLine() = %v, want 3", first.TextLine())
	}
	if second.TextLine() != 5 {
		t.Errorf("second TextLine() = %v, want 5 (stacked on the first)", second.TextLine())
	}
	if state.TopTextLine != 7 {
		t.Errorf("TopTextLine = %v, want 7", state.TopTextLine)
	}
	if state.TextLine != 0 {
		t.Errorf("TextLine = %v, want 0", state.TextLine)
	}
	if !first.IsFormatted() || !second.IsFormatted() {
		t.Error("annotations not marked formatted")
	}
}

func TestFormatOrderDependent(t *testing.T) {
	note := &testNote{top: 2, stave: fiveLines}
	a, b := newAnn(t, "a", note), newAnn(t, "b", note)

	if _, err := Format([]*Annotation{b, a}, notation.NewModifierContextState()); err != nil {
		t.Fatal(err)
	}
	if b.TextLine() != 3 || a.TextLine() != 5 {
		t.Errorf("reversed order lines = %v, %v; want 3, 5", b.TextLine(), a.TextLine())
	}
}

func TestFormatTop(t *testing.T) {
	tests := []struct {
		name     string
		note     notation.Note
		state    notation.ModifierContextState
		wantLine float64
		wantTop  float64
	}{
		{
			name:     "no stave defaults to five lines",
			note:     &testNote{top: 2},
			wantLine: 3, wantTop: 5,
		},
		{
			name:     "note above the stave stacks from the counter",
			note:     &testNote{top: 6, stave: fiveLines},
			state:    notation.ModifierContextState{TopTextLine: 1},
			wantLine: 1, wantTop: 3,
		},
		{
			name: "up stem raises the note line",
			note: &testNote{top: 2, stemmed: true, dir: notation.StemUp,
				stem: notation.Stem{Height: -35}, stave: fiveLines},
			wantLine: 0, wantTop: 2,
		},
		{
			name: "down stem is ignored above",
			note: &testNote{top: 2, stemmed: true, dir: notation.StemDown,
				stem: notation.Stem{Height: 35}, stave: fiveLines},
			wantLine: 3, wantTop: 5,
		},
		{
			name: "rest has no stem height",
			note: &testNote{top: 2, stemmed: true, dir: notation.StemUp, rest: true,
				stem: notation.Stem{Height: -35}, stave: fiveLines},
			wantLine: 3, wantTop: 5,
		},
		{
			name: "room check threshold",
			// 4.4 + 0 + 0.5 < 5 holds, 4.5 + 0 + 0.5 < 5 does not
			note:     &testNote{top: 4.4, stave: fiveLines},
			wantLine: 5 - 4.4, wantTop: 5 - 4.4 + 2,
		},
		{
			name:     "room check fails at the threshold",
			note:     &testNote{top: 4.5, stave: fiveLines},
			wantLine: 0, wantTop: 2,
		},
		{
			name:     "tab note uses the least string",
			note:     &testTabNote{testNote: testNote{stave: testStave{lines: 6, spacing: 13}}, least: 2},
			wantLine: 1.5, wantTop: 3.5,
		},
		{
			name: "tab note with a drawn stem",
			note: &testTabNote{
				testNote: testNote{stemmed: true, dir: notation.StemUp, stem: notation.Stem{Height: -35},
					stave: testStave{lines: 6, spacing: 13}},
				least: 2, drawStem: true,
			},
			wantLine: 0, wantTop: 2,
		},
		{
			name: "tab note with a hidden stem",
			note: &testTabNote{
				testNote: testNote{stemmed: true, dir: notation.StemUp, stem: notation.Stem{Height: -35},
					stave: testStave{lines: 6, spacing: 13}},
				least: 2,
			},
			wantLine: 1.5, wantTop: 3.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAnn(t, "x", tt.note)
			state := tt.state
			if _, err := Format([]*Annotation{a}, &state); err != nil {
				t.Fatalf("Format() error: %v", err)
			}
			if !approx(a.TextLine(), tt.wantLine) || !approx(state.TopTextLine, tt.wantTop) {
				t.Errorf("line = %v, TopTextLine = %v; want %v, %v", a.TextLine(), state.TopTextLine, tt.wantLine, tt.wantTop)
			}
			if state.TextLine != tt.state.TextLine {
				t.Errorf("TOP annotation moved TextLine to %v", state.TextLine)
			}
		})
	}
}

func TestFormatBottom(t *testing.T) {
	tests := []struct {
		name       string
		note       notation.Note
		state      notation.ModifierContextState
		wantLine   float64
		wantBottom float64
	}{
		{
			name:     "room below the note",
			note:     &testNote{bottom: 4, stave: fiveLines},
			wantLine: 3, wantBottom: 5,
		},
		{
			name:     "low note stacks from the counter",
			note:     &testNote{bottom: 1, stave: fiveLines},
			wantLine: 0, wantBottom: 2,
		},
		{
			name:     "existing text below",
			note:     &testNote{bottom: 4, stave: fiveLines},
			state:    notation.ModifierContextState{TextLine: 3},
			wantLine: 3, wantBottom: 5,
		},
		{
			name: "down stem lowers the note line",
			note: &testNote{bottom: 4, stemmed: true, dir: notation.StemDown,
				stem: notation.Stem{Height: 35}, stave: fiveLines},
			wantLine: 0, wantBottom: 2,
		},
		{
			name: "up stem is ignored below",
			note: &testNote{bottom: 4, stemmed: true, dir: notation.StemUp,
				stem: notation.Stem{Height: -35}, stave: fiveLines},
			wantLine: 3, wantBottom: 5,
		},
		{
			name:     "tab note uses the greatest string",
			note:     &testTabNote{testNote: testNote{stave: testStave{lines: 6, spacing: 13}}, greatest: 3},
			wantLine: 3, wantBottom: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAnn(t, "x", tt.note, WithVerticalJustification(Bottom))
			state := tt.state
			if _, err := Format([]*Annotation{a}, &state); err != nil {
				t.Fatalf("Format() error: %v", err)
			}
			if a.TextLine() != tt.wantLine || state.TextLine != tt.wantBottom {
				t.Errorf("line = %v, TextLine = %v; want %v, %v", a.TextLine(), state.TextLine, tt.wantLine, tt.wantBottom)
			}
			if state.TopTextLine != tt.state.TopTextLine {
				t.Errorf("BOTTOM annotation moved TopTextLine to %v", state.TopTextLine)
			}
		})
	}
}

func TestFormatCenterReadsTextLine(t *testing.T) {
	note := &testNote{top: 2, bottom: 2, stave: fiveLines}
	for _, vj := range []VerticalJustification{VerticalCenter, VerticalCenterStem} {
		t.Run(vj.String(), func(t *testing.T) {
			a := newAnn(t, "x", note, WithVerticalJustification(vj))
			state := notation.ModifierContextState{TopTextLine: 1, TextLine: 4}
			if _, err := Format([]*Annotation{a}, &state); err != nil {
				t.Fatal(err)
			}
			if a.TextLine() != 4 {
				t.Errorf("TextLine() = %v, want 4", a.TextLine())
			}
			if state.TopTextLine != 1 || state.TextLine != 4 {
				t.Errorf("counters changed: %+v", state)
			}
		})
	}
}

func TestFormatShifts(t *testing.T) {
	note := &testNote{top: 2, stave: fiveLines}
	state := &notation.ModifierContextState{LeftShift: 3, RightShift: 1}

	anns := []*Annotation{newAnn(t, "ab", note), newAnn(t, "abcd", note)}
	if _, err := Format(anns, state); err != nil {
		t.Fatal(err)
	}
	if state.LeftShift != 13 || state.RightShift != 11 {
		t.Errorf("shifts = %v/%v, want 13/11", state.LeftShift, state.RightShift)
	}
}

func TestFormatUnattachedAbortsBatch(t *testing.T) {
	note := &testNote{top: 2, stave: fiveLines}
	attached := newAnn(t, "a", note)
	loose := newAnn(t, "b", nil)
	state := &notation.ModifierContextState{TopTextLine: 1}
	before := *state

	ok, err := Format([]*Annotation{attached, loose}, state)
	if ok || !errors.Is(err, errors.ErrCodeNoAttachedNote) {
		t.Fatalf("Format() = %v, %v; want NO_ATTACHED_NOTE", ok, err)
	}
	if *state != before {
		t.Errorf("failed Format() changed state to %+v", *state)
	}
	if attached.TextLine() != 0 || attached.IsFormatted() {
		t.Error("failed Format() assigned a line to an earlier annotation")
	}
}

func TestFormatPropagatesStemError(t *testing.T) {
	stemErr := stderrors.New("stem not built")
	note := &testNote{top: 2, stemmed: true, stemErr: stemErr, stave: fiveLines}
	a := newAnn(t, "a", note)

	if _, err := Format([]*Annotation{a}, notation.NewModifierContextState()); !stderrors.Is(err, stemErr) {
		t.Errorf("Format() error = %v, want %v", err, stemErr)
	}
}

func drawAnn(t *testing.T, a *Annotation) *canvas.Recorder {
	t.Helper()
	rec := canvas.NewRecorder(200, 200)
	a.SetContext(rec)
	if err := a.Draw(); err != nil {
		t.Fatalf("Draw() error: %v", err)
	}
	if err := rec.Balanced(); err != nil {
		t.Errorf("unbalanced drawing: %v", err)
	}
	return rec
}

func TestDrawHorizontal(t *testing.T) {
	note := &testNote{start: notation.Point{X: 100, Y: 50}, stemX: 104, ys: []float64{50}, stave: fiveLines}
	tests := []struct {
		justify Justification
		wantX   float64
	}{
		{Left, 100},
		{Right, 80},
		{Center, 90},
		{CenterStem, 94},
	}
	for _, tt := range tests {
		t.Run(tt.justify.String(), func(t *testing.T) {
			a := newAnn(t, "abcd", note, WithJustification(tt.justify))
			texts := drawAnn(t, a).Texts()
			if len(texts) != 1 || texts[0].X != tt.wantX {
				t.Errorf("texts = %+v, want x %v", texts, tt.wantX)
			}
		})
	}
}

func TestDrawVertical(t *testing.T) {
	tests := []struct {
		name     string
		vjustify VerticalJustification
		line     float64
		note     *testNote
		wantY    float64
	}{
		{"top", Top, 0, &testNote{ys: []float64{50, 60}}, 40},
		{"top stacked", Top, 3, &testNote{ys: []float64{50, 60}}, 10},
		{
			"top stem above stave", Top, 0,
			&testNote{ys: []float64{50}, stemmed: true, dir: notation.StemUp,
				stem: notation.Stem{Extents: notation.StemExtents{TopY: 15, BaseY: 50}}},
			5,
		},
		{
			"top stem inside stave", Top, 0,
			&testNote{ys: []float64{50}, stemmed: true, dir: notation.StemUp,
				stem: notation.Stem{Extents: notation.StemExtents{TopY: 45, BaseY: 80}}},
			37,
		},
		{"bottom", Bottom, 0, &testNote{ys: []float64{50, 60}}, 85},
		{"bottom stacked", Bottom, 2, &testNote{ys: []float64{50, 60}}, 105},
		{
			"bottom down stem", Bottom, 0,
			&testNote{ys: []float64{60}, stemmed: true, dir: notation.StemDown,
				stem: notation.Stem{Extents: notation.StemExtents{TopY: 100, BaseY: 60}}},
			115,
		},
		{"center", VerticalCenter, 0, &testNote{ys: []float64{50}}, 67},
		{"center stacked", VerticalCenter, 1, &testNote{ys: []float64{50}}, 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.note.stave = testStave{lines: 5, spacing: 8}
			a := newAnn(t, "x", tt.note, WithVerticalJustification(tt.vjustify))
			a.SetTextLine(tt.line)
			texts := drawAnn(t, a).Texts()
			if len(texts) != 1 || texts[0].Y != tt.wantY {
				t.Errorf("texts = %+v, want y %v", texts, tt.wantY)
			}
			if a.Position().Y != tt.wantY {
				t.Errorf("Position() = %+v", a.Position())
			}
		})
	}
}

func TestDrawCenterStemIgnoresTextLine(t *testing.T) {
	note := &testNote{ys: []float64{50}, stemmed: true, dir: notation.StemUp,
		stem: notation.Stem{Extents: notation.StemExtents{TopY: 20, BaseY: 55}}, stave: fiveLines}

	var ys []float64
	for _, line := range []float64{0, 1, 5, 12} {
		a := newAnn(t, "x", note, WithVerticalJustification(VerticalCenterStem))
		a.SetTextLine(line)
		ys = append(ys, drawAnn(t, a).Texts()[0].Y)
	}
	for _, y := range ys {
		if y != 45 {
			t.Errorf("center-stem y = %v, want 45 for every text line (%v)", y, ys)
		}
	}
}

func TestDrawSequence(t *testing.T) {
	font := fonts.Font{Family: "Times", Size: 12, Style: fonts.StyleItalic}
	note := &testNote{ys: []float64{50}, stave: fiveLines}
	a := newAnn(t, "lyric", note, WithFont(font), WithID("ann-1"))

	rec := drawAnn(t, a)
	want := []string{canvas.OpSave, canvas.OpSetFont, canvas.OpOpenGroup, canvas.OpFillText, canvas.OpCloseGroup, canvas.OpRestore}
	if got := rec.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	ops := rec.Ops()
	if *ops[1].Font != font {
		t.Errorf("setFont = %+v, want %+v", *ops[1].Font, font)
	}
	if ops[2].Class != Class || ops[2].ID != "ann-1" {
		t.Errorf("openGroup = %q/%q", ops[2].Class, ops[2].ID)
	}
	if ops[3].Text != "lyric" {
		t.Errorf("fillText = %q", ops[3].Text)
	}
	if !a.IsRendered() {
		t.Error("Draw() did not mark the annotation rendered")
	}
}

func TestDrawErrors(t *testing.T) {
	t.Run("no context", func(t *testing.T) {
		a := newAnn(t, "x", &testNote{stave: fiveLines})
		if err := a.Draw(); !errors.Is(err, errors.ErrCodeRenderingContextMissing) {
			t.Errorf("Draw() error = %v, want RENDERING_CONTEXT_MISSING", err)
		}
		if a.IsRendered() {
			t.Error("failed Draw() marked the annotation rendered")
		}
	})

	t.Run("no note", func(t *testing.T) {
		rec := canvas.NewRecorder(1, 1)
		a := newAnn(t, "x", nil)
		a.SetContext(rec)
		if err := a.Draw(); !errors.Is(err, errors.ErrCodeNoAttachedNote) {
			t.Errorf("Draw() error = %v, want NO_ATTACHED_NOTE", err)
		}
		if len(rec.Ops()) != 0 {
			t.Errorf("failed Draw() emitted %v", rec.Names())
		}
	})

	t.Run("no stave", func(t *testing.T) {
		rec := canvas.NewRecorder(1, 1)
		a := newAnn(t, "x", &testNote{ys: []float64{1}})
		a.SetContext(rec)
		if err := a.Draw(); !errors.Is(err, errors.ErrCodeNoStave) {
			t.Errorf("Draw() error = %v, want NO_STAVE", err)
		}
		if a.IsRendered() {
			t.Error("failed Draw() marked the annotation rendered")
		}
		if len(rec.Ops()) != 0 {
			t.Errorf("failed Draw() emitted %v", rec.Names())
		}
	})
}

func TestDrawStemErrorLeavesUnrendered(t *testing.T) {
	rec := canvas.NewRecorder(1, 1)
	boom := stderrors.New("stem unavailable")
	a := newAnn(t, "x", &testNote{stemmed: true, stemErr: boom, ys: []float64{60}, stave: fiveLines})
	a.SetContext(rec)
	if err := a.Draw(); !stderrors.Is(err, boom) {
		t.Fatalf("Draw() error = %v, want the stem error", err)
	}
	if a.IsRendered() || len(rec.Ops()) != 0 {
		t.Errorf("failed Draw() rendered=%v ops=%v", a.IsRendered(), rec.Names())
	}
}

func TestFormatThenDraw(t *testing.T) {
	note := &testNote{top: 2, ys: []float64{60}, start: notation.Point{X: 40}, stave: fiveLines}
	first, second := newAnn(t, "C", note), newAnn(t, "Am7", note)
	if _, err := Format([]*Annotation{first, second}, notation.NewModifierContextState()); err != nil {
		t.Fatal(err)
	}

	y1 := drawAnn(t, first).Texts()[0].Y
	y2 := drawAnn(t, second).Texts()[0].Y
	// lines 3 and 5: 60 - 4*10 and 60 - 6*10
	if y1 != 20 || y2 != 0 {
		t.Errorf("ys = %v, %v; want 20, 0", y1, y2)
	}
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
