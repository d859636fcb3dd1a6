package annotation

import (
	"math"

	"github.com/matzehuels/engrave/pkg/notation"
)

// Format assigns text lines to the annotations of one note slot, in order,
// and reserves half the widest annotation on both sides of the slot.
//
// It returns false, leaving state untouched, when there is nothing to
// format. If any annotation is unattached, or a note's geometry cannot be
// read, Format returns the error and neither state nor any annotation is
// changed.
func Format(annotations []*Annotation, state *notation.ModifierContextState) (bool, error) {
	if len(annotations) == 0 {
		return false, nil
	}

	next := *state
	assigned := make([]float64, len(annotations))
	maxWidth := 0.0

	for i, a := range annotations {
		f, err := a.formatter()
		if err != nil {
			return false, err
		}
		textLines := (5 + f.MaxHeight()) / notation.StaveLineDistance
		width := f.WidthForText(a.text)
		maxWidth = math.Max(maxWidth, width)

		note, err := a.checkAttachedNote()
		if err != nil {
			return false, err
		}
		stemDir := notation.StemUp
		if note.HasStem() {
			stemDir = note.StemDirection()
		}
		stemHeight, err := stemHeightInLines(note)
		if err != nil {
			return false, err
		}
		lines := float64(notation.NumLinesFor(note))
		tab, isTab := note.(notation.Tablature)

		var line float64
		switch a.vjustify {
		case Top:
			noteLine := note.LineNumber(true)
			if isTab {
				noteLine = lines - (tab.LeastString() - 0.5)
			}
			if stemDir == notation.StemUp {
				noteLine += stemHeight
			}
			if noteLine+next.TopTextLine+0.5 < lines {
				line = lines - noteLine
				next.TopTextLine = line + textLines
			} else {
				line = next.TopTextLine
				next.TopTextLine += textLines
			}
		case Bottom:
			noteLine := lines - note.LineNumber(false)
			if isTab {
				noteLine = tab.GreatestString() - 1
			}
			if stemDir == notation.StemDown {
				noteLine += stemHeight
			}
			curBottom := noteLine + next.TextLine + 1
			if curBottom < lines {
				line = lines - curBottom
				next.TextLine = line + textLines
			} else {
				line = next.TextLine
				next.TextLine += textLines
			}
		default:
			line = next.TextLine
		}
		assigned[i] = line

		a.Logger().Debug("format annotation",
			"text", a.text, "justify", a.vjustify, "line", line, "text_lines", textLines)
	}

	next.LeftShift += maxWidth / 2
	next.RightShift += maxWidth / 2

	*state = next
	for i, a := range annotations {
		a.textLine = assigned[i]
		a.formatted = true
	}
	return true, nil
}

// stemHeightInLines is the stem length in text lines, or 0 when no stem is
// drawn. Tab notes decide by their own draw-stem flag.
func stemHeightInLines(note notation.Note) (float64, error) {
	if tab, ok := note.(notation.Tablature); ok {
		if !tab.DrawsStem() {
			return 0, nil
		}
	} else if !note.HasStem() || notation.IsRest(note) {
		return 0, nil
	}
	stem, err := note.Stem()
	if err != nil {
		return 0, err
	}
	return math.Abs(stem.Height) / notation.StaveLineDistance, nil
}
