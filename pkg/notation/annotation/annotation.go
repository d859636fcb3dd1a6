// Package annotation places and draws text attached to notes: lyrics,
// chord symbols, fingerings and the like.
//
// # Layout
//
// Annotations sharing a note slot are laid out in two steps. [Format] runs
// once per slot and assigns every annotation a text line, stacking them
// outward from the note so they clear the note, its stem, the stave and
// each other. [Annotation.Draw] then turns the assigned line into a
// baseline position and emits the text.
//
//	state := notation.NewModifierContextState()
//	if _, err := annotation.Format(anns, state); err != nil {
//	    return err
//	}
//	for _, a := range anns {
//	    a.SetContext(ctx)
//	    if err := a.Draw(); err != nil {
//	        return err
//	    }
//	}
//
// Stacking is greedy and order-dependent: an annotation earlier in the slice
// gets the slot closest to the note.
package annotation

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/engrave/pkg/errors"
	"github.com/matzehuels/engrave/pkg/fonts"
	"github.com/matzehuels/engrave/pkg/notation"
	"github.com/matzehuels/engrave/pkg/render/textfmt"
)

// Class is the drawing group class of every annotation.
const Class = "annotation"

// Annotation is a text modifier attached to one note.
type Annotation struct {
	notation.Element

	text      string
	font      fonts.Font
	justify   Justification
	vjustify  VerticalJustification
	textLine  float64
	width     float64
	measure   textfmt.Factory
	note      notation.Note
	index     int
	x, y      float64
	formatted bool
}

// Option configures an Annotation.
type Option func(*Annotation)

// WithFont sets the text font (default [fonts.TextFont]).
func WithFont(f fonts.Font) Option { return func(a *Annotation) { a.font = f } }

// WithJustification sets the horizontal justification (default [Center]).
func WithJustification(j Justification) Option { return func(a *Annotation) { a.justify = j } }

// WithVerticalJustification sets the vertical justification (default [Top]).
func WithVerticalJustification(j VerticalJustification) Option {
	return func(a *Annotation) { a.vjustify = j }
}

// WithTextFormatter replaces the text measurement service.
func WithTextFormatter(f textfmt.Factory) Option { return func(a *Annotation) { a.measure = f } }

// WithLogger injects a logger for layout diagnostics.
func WithLogger(l *log.Logger) Option { return func(a *Annotation) { a.SetLogger(l) } }

// WithID overrides the generated element id.
func WithID(id string) Option { return func(a *Annotation) { a.SetID(id) } }

// New creates an annotation and measures its width.
func New(text string, opts ...Option) (*Annotation, error) {
	a := &Annotation{
		Element:  notation.NewElement(Class),
		text:     text,
		font:     fonts.TextFont,
		justify:  Center,
		vjustify: Top,
		measure:  textfmt.Default,
	}
	for _, opt := range opts {
		opt(a)
	}
	if !a.justify.Valid() {
		return nil, errors.UnknownKind("annotation justification", int(a.justify))
	}
	if !a.vjustify.Valid() {
		return nil, errors.UnknownKind("annotation vertical justification", int(a.vjustify))
	}
	if err := a.remeasure(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Annotation) formatter() (textfmt.Formatter, error) {
	f, err := a.measure.Create(a.font)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "measure annotation %q", a.text)
	}
	return f, nil
}

func (a *Annotation) remeasure() error {
	f, err := a.formatter()
	if err != nil {
		return err
	}
	a.width = f.WidthForText(a.text)
	return nil
}

// SetText replaces the text and re-measures the width.
func (a *Annotation) SetText(text string) error {
	old := a.text
	a.text = text
	if err := a.remeasure(); err != nil {
		a.text = old
		return err
	}
	return nil
}

// SetFont replaces the font and re-measures the width.
func (a *Annotation) SetFont(f fonts.Font) error {
	old := a.font
	a.font = f
	if err := a.remeasure(); err != nil {
		a.font = old
		return err
	}
	return nil
}

// SetJustification sets the horizontal justification.
func (a *Annotation) SetJustification(j Justification) error {
	if !j.Valid() {
		return errors.UnknownKind("annotation justification", int(j))
	}
	a.justify = j
	return nil
}

// SetVerticalJustification sets the vertical justification.
func (a *Annotation) SetVerticalJustification(j VerticalJustification) error {
	if !j.Valid() {
		return errors.UnknownKind("annotation vertical justification", int(j))
	}
	a.vjustify = j
	return nil
}

// Attach binds the annotation to the index-th key of note. The annotation
// only reads the note's geometry.
func (a *Annotation) Attach(note notation.Note, index int) {
	a.note = note
	a.index = index
}

// Note returns the attached note.
func (a *Annotation) Note() (notation.Note, bool) { return a.note, a.note != nil }

func (a *Annotation) Text() string                                 { return a.text }
func (a *Annotation) Font() fonts.Font                             { return a.font }
func (a *Annotation) Justification() Justification                 { return a.justify }
func (a *Annotation) VerticalJustification() VerticalJustification { return a.vjustify }
func (a *Annotation) Width() float64                               { return a.width }
func (a *Annotation) Index() int                                   { return a.index }

// TextLine is the stacking slot assigned by [Format].
func (a *Annotation) TextLine() float64 { return a.textLine }

// SetTextLine overrides the stacking slot.
func (a *Annotation) SetTextLine(line float64) { a.textLine = line }

// Position is the baseline origin of the last draw.
func (a *Annotation) Position() notation.Point { return notation.Point{X: a.x, Y: a.y} }

// IsFormatted reports whether Format has assigned a text line.
func (a *Annotation) IsFormatted() bool { return a.formatted }

func (a *Annotation) checkAttachedNote() (notation.Note, error) {
	if a.note == nil {
		return nil, errors.NoAttachedNote("annotation " + a.ID())
	}
	return a.note, nil
}
