package canvas

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/engrave/pkg/fonts"
)

// PNG is a raster [Surface] backed by github.com/fogleman/gg.
type PNG struct {
	dc    *gg.Context
	scale float64
	st    stateStack
	faces map[fonts.Font]font.Face
	err   error
}

var _ Surface = (*PNG)(nil)

// NewPNG returns a white width x height surface rendered at scale pixels
// per layout unit. A non-positive scale means 1.
func NewPNG(width, height, scale float64) *PNG {
	if scale <= 0 {
		scale = 1
	}
	dc := gg.NewContext(int(math.Ceil(width*scale)), int(math.Ceil(height*scale)))
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.Scale(scale, scale)
	dc.SetRGB(0, 0, 0)
	return &PNG{dc: dc, scale: scale, st: newStateStack(), faces: make(map[fonts.Font]font.Face)}
}

func (p *PNG) FillRect(x, y, w, h float64) {
	p.dc.DrawRectangle(x, y, w, h)
	p.dc.Fill()
}

func (p *PNG) BeginPath() { p.dc.ClearPath() }

// Arc adds an arc to the current path. gg always sweeps from the first angle
// to the second, so a counter-clockwise sweep is expressed by lowering the
// end angle by a full turn.
func (p *PNG) Arc(x, y, r, startAngle, endAngle float64, ccw bool) {
	if ccw && endAngle > startAngle {
		endAngle -= 2 * math.Pi
	}
	p.dc.DrawArc(x, y, r, startAngle, endAngle)
}

func (p *PNG) Fill() { p.dc.Fill() }

func (p *PNG) FillText(text string, x, y float64) {
	face, err := p.face(p.st.cur.font)
	if err != nil {
		if p.err == nil {
			p.err = err
		}
		return
	}
	p.dc.SetFontFace(face)
	p.dc.DrawString(text, x, y)
}

func (p *PNG) SetFont(f fonts.Font) { p.st.cur.font = f }

func (p *PNG) Save() {
	p.st.save()
	p.dc.Push()
}

func (p *PNG) Restore() {
	if p.st.restore() {
		p.dc.Pop()
	}
}

func (p *PNG) OpenGroup(class, id string) {}

func (p *PNG) CloseGroup() {}

// face returns the opentype face for f. The context is already scaled, so
// faces are created at layout size.
func (p *PNG) face(f fonts.Font) (font.Face, error) {
	f = f.WithDefaults()
	if face, ok := p.faces[f]; ok {
		return face, nil
	}
	parsed, err := fonts.Parse(f)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{Size: f.Size, DPI: 96, Hinting: font.HintingNone})
	if err != nil {
		return nil, fmt.Errorf("png: create face: %w", err)
	}
	p.faces[f] = face
	return face, nil
}

// Encode returns the PNG bytes.
func (p *PNG) Encode() ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	var buf bytes.Buffer
	if err := p.dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("png: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *PNG) Format() string { return "png" }
