package canvas

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/engrave/pkg/errors"
	"github.com/matzehuels/engrave/pkg/fonts"
)

// drawSample draws one of every primitive inside a group.
func drawSample(c Context) {
	c.Save()
	c.OpenGroup("sample", "s1")
	c.FillRect(10, 20, 1, 40)
	c.BeginPath()
	c.Arc(30, 30, 2, 0, 2*math.Pi, false)
	c.Fill()
	c.SetFont(fonts.Font{Size: 12, Weight: fonts.WeightBold})
	c.FillText("a < b", 40, 50)
	c.CloseGroup()
	c.Restore()
}

func TestNew(t *testing.T) {
	tests := []struct {
		format string
	}{
		{"svg"}, {"pdf"}, {"png"}, {"json"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			s, err := New(tt.format, 100, 80, 1)
			if err != nil {
				t.Fatalf("New() error: %v", err)
			}
			if s.Format() != tt.format {
				t.Errorf("Format() = %q, want %q", s.Format(), tt.format)
			}
		})
	}

	if _, err := New("gif", 1, 1, 1); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("New(gif) error = %v, want INVALID_FORMAT", err)
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(100, 80)
	drawSample(r)

	want := []string{OpSave, OpOpenGroup, OpFillRect, OpBeginPath, OpArc, OpFill, OpSetFont, OpFillText, OpCloseGroup, OpRestore}
	got := r.Names()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("Names() = %v, want %v", got, want)
	}

	if rects := r.Rects(); len(rects) != 1 || rects[0] != (Rect{X: 10, Y: 20, W: 1, H: 40}) {
		t.Errorf("Rects() = %v", rects)
	}
	texts := r.Texts()
	if len(texts) != 1 || texts[0].Text != "a < b" || texts[0].Font.Weight != fonts.WeightBold {
		t.Errorf("Texts() = %+v", texts)
	}
	if err := r.Balanced(); err != nil {
		t.Errorf("Balanced() error: %v", err)
	}
	if r.Count(OpFill) != 1 {
		t.Errorf("Count(fill) = %d, want 1", r.Count(OpFill))
	}

	data, err := r.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	var decoded struct {
		Width float64 `json:"width"`
		Ops   []Op    `json:"ops"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Encode() produced invalid JSON: %v", err)
	}
	if decoded.Width != 100 || len(decoded.Ops) != len(want) {
		t.Errorf("decoded = width %v, %d ops", decoded.Width, len(decoded.Ops))
	}

	r.Reset()
	if len(r.Ops()) != 0 {
		t.Errorf("Reset() left %d ops", len(r.Ops()))
	}
}

func TestRecorderFontStack(t *testing.T) {
	r := NewRecorder(10, 10)
	r.Save()
	r.SetFont(fonts.Font{Size: 30})
	r.Restore()
	r.FillText("x", 0, 0)

	if got := r.Texts()[0].Font; got != fonts.TextFont {
		t.Errorf("font after Restore() = %+v, want %+v", got, fonts.TextFont)
	}
}

func TestBalanced(t *testing.T) {
	tests := []struct {
		name string
		draw func(c Context)
		ok   bool
	}{
		{"empty", func(Context) {}, true},
		{"paired", func(c Context) { c.Save(); c.OpenGroup("a", "b"); c.CloseGroup(); c.Restore() }, true},
		{"unclosed save", func(c Context) { c.Save() }, false},
		{"stray close", func(c Context) { c.CloseGroup() }, false},
		{"interleaved", func(c Context) { c.Save(); c.OpenGroup("a", "b"); c.Restore(); c.CloseGroup() }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecorder(1, 1)
			tt.draw(r)
			if err := r.Balanced(); (err == nil) != tt.ok {
				t.Errorf("Balanced() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestSVG(t *testing.T) {
	s := NewSVG(100, 80, WithSVGBackground("white"))
	drawSample(s)

	data, err := s.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 80"`,
		`<rect width="100%" height="100%" fill="white"/>`,
		`<g class="sample" id="s1">`,
		`<rect x="10" y="20" width="1" height="40" fill="black"/>`,
		`<path d="M32 30 A2 2 0 0 1 28 30 A2 2 0 0 1 32 30 Z" fill="black"/>`,
		`font-size="16" font-weight="bold"`,
		`>a &lt; b</text>`,
		`</g>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q\n%s", want, out)
		}
	}
}

func TestSVGPartialArc(t *testing.T) {
	s := NewSVG(10, 10)
	s.BeginPath()
	s.Arc(0, 0, 1, 0, math.Pi/2, false)
	s.Fill()
	s.BeginPath()
	s.Arc(0, 0, 1, 0, math.Pi/2, true)
	s.Fill()

	data, _ := s.Encode()
	out := string(data)
	if !strings.Contains(out, `M1 0 A1 1 0 0 1 0 1 Z`) {
		t.Errorf("clockwise quarter arc missing:\n%s", out)
	}
	if !strings.Contains(out, `M1 0 A1 1 0 1 0 0 1 Z`) {
		t.Errorf("counter-clockwise three-quarter arc missing:\n%s", out)
	}
}

func TestSVGClosesOpenGroups(t *testing.T) {
	s := NewSVG(10, 10)
	s.OpenGroup("a", "1")
	data, _ := s.Encode()
	if strings.Count(string(data), "</g>") != 1 {
		t.Errorf("Encode() should close dangling groups:\n%s", data)
	}
}

// fakePDF records calls the PDF surface makes.
type fakePDF struct {
	calls []string
}

func (f *fakePDF) AddUTF8FontFromBytes(family, style string, _ []byte) {
	f.calls = append(f.calls, "font:"+family+style)
}
func (f *fakePDF) SetFont(family, style string, size float64) {
	f.calls = append(f.calls, "setfont:"+family+style)
}
func (f *fakePDF) SetFillColor(r, g, b int) {}
func (f *fakePDF) SetTextColor(r, g, b int) {}
func (f *fakePDF) Rect(x, y, w, h float64, style string) {
	f.calls = append(f.calls, "rect")
}
func (f *fakePDF) Circle(x, y, r float64, style string) {
	f.calls = append(f.calls, "circle")
}
func (f *fakePDF) Arc(x, y, rx, ry, rot, from, to float64, style string) {
	f.calls = append(f.calls, "arc")
}
func (f *fakePDF) Text(x, y float64, txt string) {
	f.calls = append(f.calls, "text:"+txt)
}
func (f *fakePDF) Output(w io.Writer) error { return nil }
func (f *fakePDF) Err() bool                { return false }
func (f *fakePDF) Error() error             { return nil }

func TestPDFCalls(t *testing.T) {
	fake := &fakePDF{}
	p := newPDF(fake)
	drawSample(p)
	p.FillText("again", 0, 0)
	p.BeginPath()
	p.Arc(0, 0, 1, 0, math.Pi, false)
	p.Fill()

	want := "rect,circle,font:goB,setfont:goB,text:a < b,font:go,setfont:go,text:again,arc"
	if got := strings.Join(fake.calls, ","); got != want {
		t.Errorf("calls = %s\nwant    %s", got, want)
	}
}

func TestPDFEncode(t *testing.T) {
	p := NewPDF(100, 80)
	drawSample(p)
	data, err := p.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("Encode() does not start with a PDF header")
	}
}

func TestPNGEncode(t *testing.T) {
	p := NewPNG(100, 80, 2)
	drawSample(p)
	data, err := p.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Encode() produced invalid PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 160 {
		t.Errorf("image size = %dx%d, want 200x160", b.Dx(), b.Dy())
	}
	// The bar at x=10 is 1 unit wide; at scale 2 pixel (21, 60) is inside it.
	if r, _, _, _ := img.At(21, 60).RGBA(); r > 0x1000 {
		t.Errorf("pixel inside bar is not dark: r=%#x", r)
	}
}
