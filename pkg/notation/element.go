package notation

import (
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/engrave/pkg/errors"
	"github.com/matzehuels/engrave/pkg/render/canvas"
)

// Element is the state every drawable glyph carries: a unique id, style
// classes, an optional bound context and a logger.
// Glyph types embed it.
type Element struct {
	id       string
	classes  []string
	ctx      canvas.Context
	rendered bool
	logger   *log.Logger
}

// NewElement returns an element with a fresh id and the given classes.
func NewElement(classes ...string) Element {
	return Element{
		id:      "vf-" + uuid.NewString(),
		classes: classes,
		logger:  DiscardLogger(),
	}
}

// DiscardLogger returns a logger that drops everything. Glyphs use it
// unless a logger is injected.
func DiscardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func (e *Element) ID() string { return e.id }

// SetID replaces the element id.
func (e *Element) SetID(id string) { e.id = id }

// Class returns the classes joined by spaces, as used for drawing groups.
func (e *Element) Class() string { return strings.Join(e.classes, " ") }

// AddClass adds a style class once.
func (e *Element) AddClass(class string) {
	if class != "" && !slices.Contains(e.classes, class) {
		e.classes = append(e.classes, class)
	}
}

// HasClass reports whether class was added.
func (e *Element) HasClass(class string) bool { return slices.Contains(e.classes, class) }

// SetContext binds the drawing surface.
func (e *Element) SetContext(ctx canvas.Context) { e.ctx = ctx }

// Context returns the bound drawing surface, possibly nil.
func (e *Element) Context() canvas.Context { return e.ctx }

// CheckContext returns the bound surface or RENDERING_CONTEXT_MISSING.
func (e *Element) CheckContext(what string) (canvas.Context, error) {
	if e.ctx == nil {
		return nil, errors.ContextMissing(what)
	}
	return e.ctx, nil
}

// SetRendered marks the element as drawn.
func (e *Element) SetRendered() { e.rendered = true }

// IsRendered reports whether the element has been drawn at least once.
func (e *Element) IsRendered() bool { return e.rendered }

// SetLogger injects a logger; nil restores the discard logger.
func (e *Element) SetLogger(l *log.Logger) {
	if l == nil {
		l = DiscardLogger()
	}
	e.logger = l
}

// Logger returns the element's logger, never nil.
func (e *Element) Logger() *log.Logger {
	if e.logger == nil {
		e.logger = DiscardLogger()
	}
	return e.logger
}
