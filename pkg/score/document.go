// Package score decodes score documents and engraves them onto a canvas.
//
// A score document is a small TOML or JSON file describing staves, the notes
// placed on them and the annotations attached to each note:
//
//	title = "Chart"
//	width = 420
//	height = 160
//
//	[render]
//	formats = ["svg", "png"]
//
//	[[staves]]
//	x = 10
//	y = 10
//	width = 400
//	end_barline = "end"
//
//	[[staves.notes]]
//	keys = [3]
//
//	[[staves.notes.annotations]]
//	text = "Am"
//
// [Engrave] lays the document out in two passes. The format pass stacks the
// annotations of every note slot onto text lines; the draw pass renders
// staves, barlines, notes and annotations in that order.
package score

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/engrave/pkg/errors"
	"github.com/matzehuels/engrave/pkg/fonts"
	"github.com/matzehuels/engrave/pkg/notation/annotation"
	"github.com/matzehuels/engrave/pkg/notation/barline"
	"github.com/matzehuels/engrave/pkg/notation/staff"
)

// Page defaults.
const (
	DefaultWidth  = 500.0
	DefaultHeight = 160.0
	DefaultScale  = 2.0
)

// Stem names accepted in a note's stem field.
const (
	StemUp   = "up"
	StemDown = "down"
	StemNone = "none"
)

// Document is a decoded score.
type Document struct {
	Title  string      `json:"title,omitempty" toml:"title"`
	Width  float64     `json:"width,omitempty" toml:"width"`
	Height float64     `json:"height,omitempty" toml:"height"`
	Font   *fonts.Font `json:"font,omitempty" toml:"font"`
	Render Render      `json:"render" toml:"render"`
	Staves []Stave     `json:"staves" toml:"staves"`
}

// Render carries render defaults. Command line flags override them.
type Render struct {
	Formats []string `json:"formats,omitempty" toml:"formats"`
	Scale   float64  `json:"scale,omitempty" toml:"scale"`
}

// Stave is one stave and its notes.
type Stave struct {
	X            float64      `json:"x" toml:"x"`
	Y            float64      `json:"y" toml:"y"`
	Width        float64      `json:"width" toml:"width"`
	Lines        int          `json:"lines,omitempty" toml:"lines"`
	Tab          bool         `json:"tab,omitempty" toml:"tab"`
	HeaderWidth  float64      `json:"header_width,omitempty" toml:"header_width"`
	BeginBarline barline.Kind `json:"begin_barline,omitempty" toml:"begin_barline"`
	EndBarline   barline.Kind `json:"end_barline,omitempty" toml:"end_barline"`
	Notes        []Note       `json:"notes,omitempty" toml:"notes"`
}

// Note is a stave note (keys) or a tab note (positions).
type Note struct {
	X           *float64            `json:"x,omitempty" toml:"x"`
	Keys        []float64           `json:"keys,omitempty" toml:"keys"`
	Positions   []staff.TabPosition `json:"positions,omitempty" toml:"positions"`
	Stem        string              `json:"stem,omitempty" toml:"stem"`
	Rest        bool                `json:"rest,omitempty" toml:"rest"`
	Annotations []Annotation        `json:"annotations,omitempty" toml:"annotations"`
}

// Annotation is text attached to a note.
type Annotation struct {
	Text     string                           `json:"text" toml:"text"`
	Index    int                              `json:"index,omitempty" toml:"index"`
	Justify  annotation.Justification         `json:"justify,omitempty" toml:"justify"`
	VJustify annotation.VerticalJustification `json:"vjustify,omitempty" toml:"vjustify"`
	Font     *fonts.Font                      `json:"font,omitempty" toml:"font"`
}

// Load reads a score file, choosing the decoder by extension.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "score %s not found", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	return Decode(data, FormatFor(path))
}

// FormatFor maps a file name to "json" or "toml". Anything that is not
// .json is treated as TOML.
func FormatFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return "json"
	}
	return "toml"
}

// Decode parses a score in the given format, applies defaults and
// validates it. Unknown keys are rejected so that typos do not silently
// drop content.
func Decode(data []byte, format string) (*Document, error) {
	var doc Document
	switch format {
	case "toml":
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScore, err, "decode toml score")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidScore, "unknown key %q", undecoded[0].String())
		}
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScore, err, "decode json score")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown score format %q", format)
	}
	doc.SetDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// SetDefaults fills in zero values. It is idempotent.
func (d *Document) SetDefaults() {
	if d.Width == 0 {
		d.Width = DefaultWidth
	}
	if d.Height == 0 {
		d.Height = DefaultHeight
	}
	if d.Render.Scale == 0 {
		d.Render.Scale = DefaultScale
	}
	for i := range d.Staves {
		s := &d.Staves[i]
		if s.BeginBarline == 0 {
			s.BeginBarline = barline.Single
		}
		if s.EndBarline == 0 {
			s.EndBarline = barline.Single
		}
		if s.Width == 0 {
			s.Width = d.Width - 2*s.X
		}
		for j := range s.Notes {
			n := &s.Notes[j]
			if n.Stem == "" {
				n.Stem = StemUp
			}
			for k := range n.Annotations {
				a := &n.Annotations[k]
				if a.Justify == 0 {
					a.Justify = annotation.Center
				}
				if a.VJustify == 0 {
					a.VJustify = annotation.Top
				}
			}
		}
	}
}

// Validate reports the first structural problem in the document.
func (d *Document) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidScore, "page size must be positive, got %vx%v", d.Width, d.Height)
	}
	for _, f := range d.Render.Formats {
		if err := errors.ValidateFormat(f); err != nil {
			return err
		}
	}
	if err := errors.ValidateScale(d.Render.Scale); err != nil {
		return err
	}
	if len(d.Staves) == 0 {
		return errors.New(errors.ErrCodeInvalidScore, "score has no staves")
	}
	for i, s := range d.Staves {
		if s.Width <= 0 {
			return errors.New(errors.ErrCodeInvalidScore, "stave %d: width must be positive", i)
		}
		if s.Lines < 0 {
			return errors.New(errors.ErrCodeInvalidScore, "stave %d: negative line count", i)
		}
		for _, k := range []barline.Kind{s.BeginBarline, s.EndBarline} {
			if !k.Valid() {
				return errors.UnknownKind("barline kind", int(k))
			}
		}
		for j, n := range s.Notes {
			if err := n.validate(s.Tab); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidScore, err, "stave %d note %d", i, j)
			}
		}
	}
	return nil
}

func (n Note) validate(tab bool) error {
	switch {
	case tab && len(n.Positions) == 0:
		return errors.New(errors.ErrCodeInvalidScore, "tab note needs positions")
	case tab && len(n.Keys) > 0:
		return errors.New(errors.ErrCodeInvalidScore, "tab note cannot have keys")
	case !tab && len(n.Keys) == 0:
		return errors.New(errors.ErrCodeInvalidScore, "note needs keys")
	case !tab && len(n.Positions) > 0:
		return errors.New(errors.ErrCodeInvalidScore, "positions need a tab stave")
	}
	switch n.Stem {
	case StemUp, StemDown, StemNone:
	default:
		return errors.UnknownKind("stem", n.Stem)
	}
	for _, a := range n.Annotations {
		if !a.Justify.Valid() {
			return errors.UnknownKind("justification", int(a.Justify))
		}
		if !a.VJustify.Valid() {
			return errors.UnknownKind("vertical justification", int(a.VJustify))
		}
		if a.Index < 0 || a.Index >= max(len(n.Keys), len(n.Positions)) {
			return errors.New(errors.ErrCodeInvalidScore, "annotation %q: index %d out of range", a.Text, a.Index)
		}
	}
	return nil
}

// Counts returns the number of staves, notes and annotations.
func (d *Document) Counts() (staves, notes, annotations int) {
	for _, s := range d.Staves {
		notes += len(s.Notes)
		for _, n := range s.Notes {
			annotations += len(n.Annotations)
		}
	}
	return len(d.Staves), notes, annotations
}
