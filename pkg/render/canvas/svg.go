package canvas

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/engrave/pkg/fonts"
)

// SVGOption configures an [SVG] surface.
type SVGOption func(*SVG)

// WithSVGBackground paints a background rectangle in the given color.
func WithSVGBackground(color string) SVGOption { return func(s *SVG) { s.background = color } }

// WithSVGFill sets the fill color of every primitive (default black).
func WithSVGFill(color string) SVGOption { return func(s *SVG) { s.fill = color } }

// SVG is a [Surface] producing a standalone SVG document.
type SVG struct {
	width, height float64
	background    string
	fill          string

	body  bytes.Buffer
	path  strings.Builder
	depth int
	st    stateStack
}

var _ Surface = (*SVG)(nil)

// NewSVG returns an empty width x height SVG surface.
func NewSVG(width, height float64, opts ...SVGOption) *SVG {
	s := &SVG{width: width, height: height, fill: "black", st: newStateStack()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SVG) line(format string, args ...any) {
	s.body.WriteString(strings.Repeat("  ", s.depth+1))
	fmt.Fprintf(&s.body, format, args...)
	s.body.WriteByte('\n')
}

func (s *SVG) FillRect(x, y, w, h float64) {
	s.line(`<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`, num(x), num(y), num(w), num(h), s.fill)
}

func (s *SVG) BeginPath() { s.path.Reset() }

func (s *SVG) Arc(x, y, r, startAngle, endAngle float64, ccw bool) {
	delta := endAngle - startAngle
	if ccw {
		delta = -delta
	}
	full := delta >= 2*math.Pi
	delta = math.Mod(delta, 2*math.Pi)
	if delta < 0 {
		delta += 2 * math.Pi
	}

	sweep := 1
	if ccw {
		sweep = 0
	}
	sx, sy := x+r*math.Cos(startAngle), y+r*math.Sin(startAngle)
	if s.path.Len() == 0 {
		fmt.Fprintf(&s.path, "M%s %s", num(sx), num(sy))
	} else {
		fmt.Fprintf(&s.path, " L%s %s", num(sx), num(sy))
	}

	if full {
		// A single SVG arc cannot close on itself, so draw two halves.
		mx, my := x-r*math.Cos(startAngle), y-r*math.Sin(startAngle)
		fmt.Fprintf(&s.path, " A%s %s 0 0 %d %s %s", num(r), num(r), sweep, num(mx), num(my))
		fmt.Fprintf(&s.path, " A%s %s 0 0 %d %s %s", num(r), num(r), sweep, num(sx), num(sy))
		return
	}

	large := 0
	if delta > math.Pi {
		large = 1
	}
	ex, ey := x+r*math.Cos(endAngle), y+r*math.Sin(endAngle)
	fmt.Fprintf(&s.path, " A%s %s 0 %d %d %s %s", num(r), num(r), large, sweep, num(ex), num(ey))
}

func (s *SVG) Fill() {
	if s.path.Len() == 0 {
		return
	}
	s.line(`<path d="%s Z" fill="%s"/>`, s.path.String(), s.fill)
}

func (s *SVG) FillText(text string, x, y float64) {
	f := s.st.cur.font.WithDefaults()
	attrs := fmt.Sprintf(`font-family="%s" font-size="%s"`, escapeXML(f.Family), num(f.PixelSize()))
	if f.IsBold() {
		attrs += fmt.Sprintf(` font-weight="%s"`, escapeXML(f.Weight))
	}
	if f.IsItalic() {
		attrs += fmt.Sprintf(` font-style="%s"`, escapeXML(f.Style))
	}
	s.line(`<text x="%s" y="%s" %s fill="%s">%s</text>`, num(x), num(y), attrs, s.fill, escapeXML(text))
}

func (s *SVG) SetFont(f fonts.Font) { s.st.cur.font = f }

func (s *SVG) Save() { s.st.save() }

func (s *SVG) Restore() { s.st.restore() }

func (s *SVG) OpenGroup(class, id string) {
	s.line(`<g class="%s" id="%s">`, escapeXML(class), escapeXML(id))
	s.depth++
}

func (s *SVG) CloseGroup() {
	if s.depth == 0 {
		return
	}
	s.depth--
	s.line(`</g>`)
}

// Encode returns the SVG document. Groups left open are closed.
func (s *SVG) Encode() ([]byte, error) {
	for s.depth > 0 {
		s.CloseGroup()
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(s.width), num(s.height), num(s.width), num(s.height))
	if s.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", s.background)
	}
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func (s *SVG) Format() string { return "svg" }

// num formats a coordinate with at most three decimals.
func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
