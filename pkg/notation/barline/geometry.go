package barline

import (
	"fmt"

	"github.com/matzehuels/engrave/pkg/errors"
)

// LayoutMetrics is the bounding box of a barline relative to its anchor x,
// used by stave layout to reserve space.
type LayoutMetrics struct {
	XMin         float64 `json:"x_min"`
	XMax         float64 `json:"x_max"`
	PaddingLeft  float64 `json:"padding_left"`
	PaddingRight float64 `json:"padding_right"`
}

// Geometry is the fixed layout record of one kind.
type Geometry struct {
	Width   float64       `json:"width"`
	Padding float64       `json:"padding"`
	Metrics LayoutMetrics `json:"layout_metrics"`
}

var widths = map[Kind]float64{
	Single:      5,
	Double:      5,
	End:         5,
	RepeatBegin: 5,
	RepeatEnd:   5,
	RepeatBoth:  5,
	None:        5,
}

// Only repeats reserve padding, for the dots.
var paddings = map[Kind]float64{
	Single:      0,
	Double:      0,
	End:         0,
	RepeatBegin: 15,
	RepeatEnd:   15,
	RepeatBoth:  15,
	None:        0,
}

var layoutMetrics = map[Kind]LayoutMetrics{
	Single:      {XMin: 0, XMax: 1, PaddingLeft: 5, PaddingRight: 5},
	Double:      {XMin: -3, XMax: 1, PaddingLeft: 5, PaddingRight: 5},
	End:         {XMin: -5, XMax: 1, PaddingLeft: 5, PaddingRight: 5},
	RepeatEnd:   {XMin: -10, XMax: 1, PaddingLeft: 5, PaddingRight: 5},
	RepeatBegin: {XMin: -2, XMax: 10, PaddingLeft: 5, PaddingRight: 5},
	RepeatBoth:  {XMin: -10, XMax: 10, PaddingLeft: 5, PaddingRight: 5},
	None:        {XMin: 0, XMax: 0, PaddingLeft: 5, PaddingRight: 5},
}

// GeometryFor returns the geometry of k. It panics when k is not a declared
// kind; use [LookupGeometry] for values that come from input.
func GeometryFor(k Kind) Geometry {
	g, err := LookupGeometry(k)
	if err != nil {
		panic(fmt.Sprintf("barline: %v", err))
	}
	return g
}

// LookupGeometry returns the geometry of k or UNKNOWN_KIND.
func LookupGeometry(k Kind) (Geometry, error) {
	w, okW := widths[k]
	p, okP := paddings[k]
	m, okM := layoutMetrics[k]
	if !okW || !okP || !okM {
		return Geometry{}, errors.UnknownKind("barline kind", int(k))
	}
	return Geometry{Width: w, Padding: p, Metrics: m}, nil
}
