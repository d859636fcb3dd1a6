package canvas

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"

	"github.com/matzehuels/engrave/pkg/fonts"
)

// pdfDoc is the subset of *gofpdf.Fpdf the PDF surface draws with.
type pdfDoc interface {
	AddUTF8FontFromBytes(familyStr, styleStr string, utf8Bytes []byte)
	SetFont(familyStr, styleStr string, size float64)
	SetFillColor(r, g, b int)
	SetTextColor(r, g, b int)
	Rect(x, y, w, h float64, styleStr string)
	Circle(x, y, r float64, styleStr string)
	Arc(x, y, rx, ry, degRotate, degStart, degEnd float64, styleStr string)
	Text(x, y float64, txtStr string)
	Output(w io.Writer) error
	Err() bool
	Error() error
}

type pdfArc struct {
	x, y, r, start, end float64
	ccw                 bool
}

// PDF is a [Surface] producing a single-page PDF. One layout unit maps to
// one PDF point.
type PDF struct {
	doc      pdfDoc
	st       stateStack
	path     []pdfArc
	fonts    map[string]bool
	fontSet  bool
	appliedF fonts.Font
}

var (
	_ Surface = (*PDF)(nil)
	_ pdfDoc  = (*gofpdf.Fpdf)(nil)
)

// NewPDF returns a PDF surface whose page is width x height points.
func NewPDF(width, height float64) *PDF {
	f := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	f.SetMargins(0, 0, 0)
	f.SetAutoPageBreak(false, 0)
	f.AddPage()
	return newPDF(f)
}

func newPDF(doc pdfDoc) *PDF {
	doc.SetFillColor(0, 0, 0)
	doc.SetTextColor(0, 0, 0)
	return &PDF{doc: doc, st: newStateStack(), fonts: make(map[string]bool)}
}

func (p *PDF) FillRect(x, y, w, h float64) { p.doc.Rect(x, y, w, h, "F") }

func (p *PDF) BeginPath() { p.path = p.path[:0] }

func (p *PDF) Arc(x, y, r, startAngle, endAngle float64, ccw bool) {
	p.path = append(p.path, pdfArc{x: x, y: y, r: r, start: startAngle, end: endAngle, ccw: ccw})
}

// Fill fills every arc of the current path. PDF angles run counter-clockwise
// with y up, so canvas angles are negated.
func (p *PDF) Fill() {
	for _, a := range p.path {
		if math.Abs(a.end-a.start) >= 2*math.Pi {
			p.doc.Circle(a.x, a.y, a.r, "F")
			continue
		}
		from, to := -degrees(a.end), -degrees(a.start)
		if a.ccw {
			from, to = -degrees(a.start), -degrees(a.end)
		}
		if to < from {
			to += 360
		}
		p.doc.Arc(a.x, a.y, a.r, a.r, 0, from, to, "F")
	}
	p.path = p.path[:0]
}

func (p *PDF) FillText(text string, x, y float64) {
	p.applyFont()
	p.doc.Text(x, y, text)
}

func (p *PDF) SetFont(f fonts.Font) { p.st.cur.font = f }

func (p *PDF) Save() { p.st.save() }

func (p *PDF) Restore() { p.st.restore() }

// PDF has no grouping construct; groups only matter to SVG consumers.
func (p *PDF) OpenGroup(class, id string) {}

func (p *PDF) CloseGroup() {}

// applyFont registers the embedded face for the current font on first use
// and selects it.
func (p *PDF) applyFont() {
	f := p.st.cur.font.WithDefaults()
	if p.fontSet && f == p.appliedF {
		return
	}
	family := "go"
	if f.IsMono() {
		family = "gomono"
	}
	style := ""
	if f.IsBold() && !f.IsMono() {
		style += "B"
	}
	if f.IsItalic() && !f.IsMono() {
		style += "I"
	}
	key := family + style
	if !p.fonts[key] {
		p.doc.AddUTF8FontFromBytes(family, style, fonts.TTF(f))
		p.fonts[key] = true
	}
	p.doc.SetFont(family, style, f.PixelSize())
	p.fontSet, p.appliedF = true, f
}

// Encode returns the PDF bytes.
func (p *PDF) Encode() ([]byte, error) {
	if p.doc.Err() {
		return nil, fmt.Errorf("pdf: %w", p.doc.Error())
	}
	var buf bytes.Buffer
	if err := p.doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *PDF) Format() string { return "pdf" }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
