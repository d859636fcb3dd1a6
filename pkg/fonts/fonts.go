// Package fonts provides the font descriptions used by text glyphs and the
// embedded font files that back text measurement and raster output.
//
// The font files are the Go fonts shipped with golang.org/x/image, compiled
// into the binary, so measurement is identical on every machine and no
// system font lookup is needed.
package fonts

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Font weights and styles.
const (
	WeightNormal = "normal"
	WeightBold   = "bold"
	StyleNormal  = "normal"
	StyleItalic  = "italic"
)

// FontFamily is the CSS font-family name for the embedded sans-serif face.
const FontFamily = "Go"

// FallbackFontFamily lists fallbacks for viewers without the embedded font.
const FallbackFontFamily = `'Go', Arial, sans-serif`

// MonoFontFamily selects the embedded monospace face.
const MonoFontFamily = "Go Mono"

// Font describes a text face. Size is in points; one point is 4/3 px.
type Font struct {
	Family string  `json:"family,omitempty" toml:"family"`
	Size   float64 `json:"size,omitempty" toml:"size"`
	Weight string  `json:"weight,omitempty" toml:"weight"`
	Style  string  `json:"style,omitempty" toml:"style"`
}

// TextFont is the default face for annotations and other text modifiers.
var TextFont = Font{Family: FallbackFontFamily, Size: 10, Weight: WeightNormal, Style: StyleNormal}

// WithDefaults fills every empty field from [TextFont].
func (f Font) WithDefaults() Font {
	if f.Family == "" {
		f.Family = TextFont.Family
	}
	if f.Size <= 0 {
		f.Size = TextFont.Size
	}
	if f.Weight == "" {
		f.Weight = TextFont.Weight
	}
	if f.Style == "" {
		f.Style = TextFont.Style
	}
	return f
}

// IsBold reports whether the face uses a bold weight.
func (f Font) IsBold() bool {
	return f.Weight == WeightBold || f.Weight == "700" || f.Weight == "800" || f.Weight == "900"
}

// IsItalic reports whether the face is italic or oblique.
func (f Font) IsItalic() bool {
	return f.Style == StyleItalic || f.Style == "oblique"
}

// IsMono reports whether the family asks for a monospace face.
func (f Font) IsMono() bool {
	fam := strings.ToLower(f.Family)
	return strings.Contains(fam, "mono") || strings.Contains(fam, "courier")
}

// PixelSize converts the point size to CSS pixels.
func (f Font) PixelSize() float64 {
	return f.Size * 4 / 3
}

// CSS renders the font as a CSS shorthand, e.g. "italic bold 10pt 'Go', Arial, sans-serif".
func (f Font) CSS() string {
	f = f.WithDefaults()
	var parts []string
	if f.IsItalic() {
		parts = append(parts, f.Style)
	}
	if f.IsBold() {
		parts = append(parts, f.Weight)
	}
	parts = append(parts, fmt.Sprintf("%gpt", f.Size), f.Family)
	return strings.Join(parts, " ")
}

// String implements fmt.Stringer.
func (f Font) String() string { return f.CSS() }

// TTF returns the embedded font file that best matches f.
func TTF(f Font) []byte {
	switch {
	case f.IsMono():
		return gomono.TTF
	case f.IsBold() && f.IsItalic():
		return gobolditalic.TTF
	case f.IsBold():
		return gobold.TTF
	case f.IsItalic():
		return goitalic.TTF
	default:
		return goregular.TTF
	}
}

// Parsed font files, keyed by the TTF variant (computed once on first access).
var (
	parsedMu sync.Mutex
	parsed   = make(map[string]*opentype.Font)
)

// Parse returns the parsed embedded font matching f.
// The result is cached; parsing only happens once per variant.
func Parse(f Font) (*opentype.Font, error) {
	key := variantKey(f)

	parsedMu.Lock()
	defer parsedMu.Unlock()
	if p, ok := parsed[key]; ok {
		return p, nil
	}
	p, err := opentype.Parse(TTF(f))
	if err != nil {
		return nil, fmt.Errorf("parse %s font: %w", key, err)
	}
	parsed[key] = p
	return p, nil
}

func variantKey(f Font) string {
	switch {
	case f.IsMono():
		return "mono"
	case f.IsBold() && f.IsItalic():
		return "bolditalic"
	case f.IsBold():
		return "bold"
	case f.IsItalic():
		return "italic"
	default:
		return "regular"
	}
}
