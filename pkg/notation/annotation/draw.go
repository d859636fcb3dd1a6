package annotation

import (
	"slices"

	"github.com/matzehuels/engrave/pkg/errors"
	"github.com/matzehuels/engrave/pkg/notation"
)

// Draw renders the annotation at its assigned text line. It needs a bound
// context and an attached note that belongs to a stave. All geometry is
// resolved before anything is emitted, so a failing Draw leaves the canvas
// untouched.
func (a *Annotation) Draw() error {
	ctx, err := a.CheckContext("annotation " + a.ID())
	if err != nil {
		return err
	}
	note, err := a.checkAttachedNote()
	if err != nil {
		return err
	}
	x, y, err := a.anchor(note)
	if err != nil {
		return err
	}
	a.SetRendered()
	a.x, a.y = x, y
	a.Logger().Debug("draw annotation", "text", a.text, "x", x, "y", y, "line", a.textLine)

	ctx.Save()
	defer ctx.Restore()
	ctx.SetFont(a.font)
	ctx.OpenGroup(a.Class(), a.ID())
	defer ctx.CloseGroup()
	ctx.FillText(a.text, x, y)
	return nil
}

// anchor computes the text origin (left end of the baseline).
func (a *Annotation) anchor(note notation.Note) (x, y float64, err error) {
	f, err := a.formatter()
	if err != nil {
		return 0, 0, err
	}
	textWidth := f.WidthForText(a.text)
	textHeight := f.HeightForText(a.text)

	stave, ok := note.Stave()
	if !ok || stave == nil {
		return 0, 0, errors.New(errors.ErrCodeNoStave, "annotation %s: note has no stave", a.ID())
	}
	start, err := note.ModifierStartXY(notation.PositionAbove, a.index)
	if err != nil {
		return 0, 0, err
	}

	switch a.justify {
	case Left:
		x = start.X
	case Right:
		x = start.X - textWidth
	case CenterStem:
		x = note.StemX() - textWidth/2
	default:
		x = start.X - textWidth/2
	}

	var stem notation.Stem
	spacing := 0.0
	hasStem := note.HasStem()
	if hasStem {
		if stem, err = note.Stem(); err != nil {
			return 0, 0, err
		}
		spacing = stave.SpacingBetweenLines()
	}

	switch a.vjustify {
	case Bottom:
		y = maxOf(note.Ys()) + (a.textLine+1)*notation.StaveLineDistance + textHeight
		if hasStem && note.StemDirection() == notation.StemDown {
			y = max(y, stem.Extents.TopY+textHeight+spacing*a.textLine)
		}
	case VerticalCenter:
		yt := note.YForTopText(a.textLine) - 1
		yb := stave.YForBottomText(a.textLine)
		y = yt + (yb-yt)/2 + textHeight/2
	case VerticalCenterStem:
		ext := stem.Extents
		if !hasStem {
			if ext, err = stemExtents(note); err != nil {
				return 0, 0, err
			}
		}
		y = ext.TopY + (ext.BaseY-ext.TopY)/2 + textHeight/2
	default:
		y = minOf(note.Ys()) - (a.textLine+1)*notation.StaveLineDistance
		if hasStem && note.StemDirection() == notation.StemUp {
			if stem.Extents.TopY < stave.TopLineTopY() {
				spacing = notation.StaveLineDistance
			}
			y = min(y, stem.Extents.TopY-spacing*(a.textLine+1))
		}
	}
	return x, y, nil
}

// stemExtents asks a stemless note for the extents its stem would have.
func stemExtents(note notation.Note) (notation.StemExtents, error) {
	stem, err := note.Stem()
	if err != nil {
		return notation.StemExtents{}, err
	}
	return stem.Extents, nil
}

func maxOf(ys []float64) float64 {
	if len(ys) == 0 {
		return 0
	}
	return slices.Max(ys)
}

func minOf(ys []float64) float64 {
	if len(ys) == 0 {
		return 0
	}
	return slices.Min(ys)
}
