package score

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/engrave/pkg/errors"
	"github.com/matzehuels/engrave/pkg/notation"
	"github.com/matzehuels/engrave/pkg/notation/annotation"
	"github.com/matzehuels/engrave/pkg/notation/staff"
	"github.com/matzehuels/engrave/pkg/render/canvas"
	"github.com/matzehuels/engrave/pkg/render/textfmt"
)

// Option configures Build and Engrave.
type Option func(*config)

type config struct {
	logger  *log.Logger
	measure textfmt.Factory
}

// WithLogger sets the logger handed to every element.
func WithLogger(l *log.Logger) Option { return func(c *config) { c.logger = l } }

// WithTextFormatter replaces the text measurement service, which defaults
// to the embedded Go fonts.
func WithTextFormatter(f textfmt.Factory) Option { return func(c *config) { c.measure = f } }

// drawableNote is a note the layout can place and draw.
type drawableNote interface {
	notation.Note
	SetStave(*staff.Staff)
	SetX(float64)
	Draw() error
}

// Slot is one note and the annotations stacked on it. Every slot formats
// against its own ModifierContextState.
type Slot struct {
	Note        drawableNote
	Annotations []*annotation.Annotation
	State       *notation.ModifierContextState
}

// Layout is a document turned into elements.
type Layout struct {
	Staves []*staff.Staff
	Slots  []*Slot

	logger *log.Logger
}

// Build creates the elements of doc without formatting or drawing them.
func Build(doc *Document, opts ...Option) (*Layout, error) {
	cfg := config{measure: textfmt.Default}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	l := &Layout{logger: cfg.logger}
	for i, sd := range doc.Staves {
		st, err := buildStave(sd, cfg)
		if err != nil {
			return nil, annotate(err, "stave %d", i)
		}
		l.Staves = append(l.Staves, st)

		xs := spread(st, sd.Notes)
		for j, nd := range sd.Notes {
			note, err := buildNote(nd, sd.Tab)
			if err != nil {
				return nil, annotate(err, "stave %d note %d", i, j)
			}
			note.SetStave(st)
			note.SetX(xs[j])

			slot := &Slot{Note: note, State: notation.NewModifierContextState()}
			for _, ad := range nd.Annotations {
				a, err := buildAnnotation(ad, doc, cfg)
				if err != nil {
					return nil, annotate(err, "stave %d note %d", i, j)
				}
				a.Attach(note, ad.Index)
				slot.Annotations = append(slot.Annotations, a)
			}
			l.Slots = append(l.Slots, slot)
		}
	}
	return l, nil
}

func buildStave(sd Stave, cfg config) (*staff.Staff, error) {
	opts := []staff.Option{staff.WithLogger(cfg.logger)}
	if sd.Lines > 0 {
		opts = append(opts, staff.WithNumLines(sd.Lines))
	}
	if sd.HeaderWidth > 0 {
		opts = append(opts, staff.WithHeaderWidth(sd.HeaderWidth))
	}
	var st *staff.Staff
	if sd.Tab {
		st = staff.NewTab(sd.X, sd.Y, sd.Width, opts...)
	} else {
		st = staff.New(sd.X, sd.Y, sd.Width, opts...)
	}
	if err := st.SetBeginBarline(sd.BeginBarline); err != nil {
		return nil, err
	}
	if err := st.SetEndBarline(sd.EndBarline); err != nil {
		return nil, err
	}
	return st, nil
}

func buildNote(nd Note, tab bool) (drawableNote, error) {
	if tab {
		var opts []staff.TabOption
		switch nd.Stem {
		case StemUp:
			// Tab stems are opt-in; "up" is the default and draws none.
		case StemDown:
			opts = append(opts, staff.WithTabStem(notation.StemDown))
		}
		return staff.NewTabNote(nd.Positions, opts...)
	}

	var opts []staff.NoteOption
	switch nd.Stem {
	case StemDown:
		opts = append(opts, staff.WithStemDirection(notation.StemDown))
	case StemNone:
		opts = append(opts, staff.WithoutStem())
	}
	if nd.Rest {
		opts = append(opts, staff.AsRest())
	}
	return staff.NewStaveNote(nd.Keys, opts...)
}

func buildAnnotation(ad Annotation, doc *Document, cfg config) (*annotation.Annotation, error) {
	opts := []annotation.Option{
		annotation.WithJustification(ad.Justify),
		annotation.WithVerticalJustification(ad.VJustify),
		annotation.WithTextFormatter(cfg.measure),
		annotation.WithLogger(cfg.logger),
	}
	switch {
	case ad.Font != nil:
		opts = append(opts, annotation.WithFont(ad.Font.WithDefaults()))
	case doc.Font != nil:
		opts = append(opts, annotation.WithFont(doc.Font.WithDefaults()))
	}
	return annotation.New(ad.Text, opts...)
}

// spread returns the x of every note. Notes without an explicit x share the
// space between the stave's note start and end equally.
func spread(st *staff.Staff, notes []Note) []float64 {
	xs := make([]float64, len(notes))
	if len(notes) == 0 {
		return xs
	}
	start, end := st.NoteStartX(), st.NoteEndX()
	step := (end - start) / float64(len(notes))
	for i, n := range notes {
		if n.X != nil {
			xs[i] = *n.X
			continue
		}
		xs[i] = start + step*float64(i) + (step-staff.NoteheadWidth)/2
	}
	return xs
}

// Format stacks the annotations of every slot. A slot that fails leaves its
// state untouched and aborts the pass.
func (l *Layout) Format() error {
	for i, slot := range l.Slots {
		if _, err := annotation.Format(slot.Annotations, slot.State); err != nil {
			return annotate(err, "format slot %d", i)
		}
		l.logger.Debug("formatted slot", "slot", i, "annotations", len(slot.Annotations),
			"top_text_line", slot.State.TopTextLine, "text_line", slot.State.TextLine)
	}
	return nil
}

// Draw renders every element onto ctx: staves with their barlines first,
// then notes, then annotations.
func (l *Layout) Draw(ctx canvas.Context) error {
	for _, st := range l.Staves {
		st.SetContext(ctx)
		if err := st.Draw(); err != nil {
			return err
		}
	}
	for _, slot := range l.Slots {
		if err := slot.Note.Draw(); err != nil {
			return err
		}
	}
	for _, slot := range l.Slots {
		for _, a := range slot.Annotations {
			a.SetContext(ctx)
			if err := a.Draw(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Annotations returns every annotation in slot order.
func (l *Layout) Annotations() []*annotation.Annotation {
	var out []*annotation.Annotation
	for _, slot := range l.Slots {
		out = append(out, slot.Annotations...)
	}
	return out
}

// annotate adds context to err and keeps its code.
func annotate(err error, format string, args ...any) error {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return errors.Wrap(code, err, format, args...)
}

// Engrave builds, formats and draws doc onto ctx.
func Engrave(ctx canvas.Context, doc *Document, opts ...Option) (*Layout, error) {
	l, err := Build(doc, opts...)
	if err != nil {
		return nil, err
	}
	if err := l.Format(); err != nil {
		return nil, err
	}
	if err := l.Draw(ctx); err != nil {
		return nil, err
	}
	return l, nil
}
