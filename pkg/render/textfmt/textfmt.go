// Package textfmt measures text for layout.
//
// Glyph placement needs three numbers per font: the tallest glyph extent
// (used to reserve stacking space), the advance width of a string (used to
// justify it horizontally) and the inked height of a string (used to offset
// its baseline). A [Factory] produces a [Formatter] for a font; the default
// factory measures with the embedded Go fonts so results do not depend on
// the host system.
package textfmt

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/engrave/pkg/fonts"
)

// dpi makes one font point equal 4/3 layout units, the CSS px convention.
const dpi = 96

// Formatter measures text in one font.
type Formatter interface {
	// MaxHeight is the ascent plus descent of the font, in layout units.
	MaxHeight() float64
	// WidthForText is the advance width of text.
	WidthForText(text string) float64
	// HeightForText is the inked height of text.
	HeightForText(text string) float64
}

// Factory creates formatters.
type Factory interface {
	Create(f fonts.Font) (Formatter, error)
}

// FactoryFunc adapts a function to [Factory].
type FactoryFunc func(f fonts.Font) (Formatter, error)

// Create calls fn(f).
func (fn FactoryFunc) Create(f fonts.Font) (Formatter, error) { return fn(f) }

// Default is the factory used when none is injected.
var Default Factory = NewFaceFactory()

// =============================================================================
// Font faces
// =============================================================================

// FaceFactory creates formatters backed by opentype faces of the embedded
// Go fonts. Faces are cached per (variant, size).
type FaceFactory struct {
	mu    sync.Mutex
	faces map[fonts.Font]*faceFormatter
}

// NewFaceFactory returns an empty FaceFactory.
func NewFaceFactory() *FaceFactory {
	return &FaceFactory{faces: make(map[fonts.Font]*faceFormatter)}
}

// Create implements [Factory].
func (ff *FaceFactory) Create(f fonts.Font) (Formatter, error) {
	f = f.WithDefaults()

	ff.mu.Lock()
	defer ff.mu.Unlock()
	if fm, ok := ff.faces[f]; ok {
		return fm, nil
	}

	parsed, err := fonts.Parse(f)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    f.Size,
		DPI:     dpi,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create face for %s: %w", f, err)
	}
	fm := &faceFormatter{face: face}
	ff.faces[f] = fm
	return fm, nil
}

type faceFormatter struct {
	mu   sync.Mutex // font.Face is not safe for concurrent use
	face font.Face
}

func (fm *faceFormatter) MaxHeight() float64 {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	m := fm.face.Metrics()
	return fixedToFloat(m.Ascent + m.Descent)
}

func (fm *faceFormatter) WidthForText(text string) float64 {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	return fixedToFloat(font.MeasureString(fm.face, text))
}

func (fm *faceFormatter) HeightForText(text string) float64 {
	if text == "" {
		return 0
	}
	fm.mu.Lock()
	defer fm.mu.Unlock()
	bounds, _ := font.BoundString(fm.face, text)
	return fixedToFloat(bounds.Max.Y - bounds.Min.Y)
}

// =============================================================================
// Monospace
// =============================================================================

// Monospace is a fixed-metric formatter: every rune advances by Advance and
// every string is Height tall. It keeps layout arithmetic exact, which makes
// it the formatter of choice for golden tests.
type Monospace struct {
	Height  float64
	Advance float64
}

func (m Monospace) MaxHeight() float64 { return m.Height }

func (m Monospace) WidthForText(text string) float64 {
	return float64(utf8.RuneCountInString(text)) * m.Advance
}

func (m Monospace) HeightForText(text string) float64 {
	if text == "" {
		return 0
	}
	return m.Height
}

// Fixed returns a factory that hands out f for every font.
func Fixed(f Formatter) Factory {
	return FactoryFunc(func(fonts.Font) (Formatter, error) { return f, nil })
}

// ScaledMonospace approximates a proportional font with a monospace
// formatter whose advance is ratio times the pixel size.
func ScaledMonospace(f fonts.Font, ratio float64) Monospace {
	px := f.WithDefaults().PixelSize()
	return Monospace{Height: px, Advance: px * ratio}
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
