package annotation

import (
	"strconv"

	"github.com/matzehuels/engrave/pkg/errors"
)

// Justification is the horizontal alignment of an annotation against its
// note.
type Justification int

const (
	Left Justification = iota + 1
	Center
	Right
	CenterStem
)

// VerticalJustification is where an annotation stacks relative to its note.
type VerticalJustification int

const (
	Top VerticalJustification = iota + 1
	VerticalCenter
	Bottom
	VerticalCenterStem
)

var justificationNames = map[string]Justification{
	"left":       Left,
	"center":     Center,
	"right":      Right,
	"centerStem": CenterStem,
}

var verticalNames = map[string]VerticalJustification{
	"top":        Top,
	"center":     VerticalCenter,
	"bottom":     Bottom,
	"centerStem": VerticalCenterStem,
}

// ParseJustification accepts left, center, right, centerStem or 1..4.
func ParseJustification(s string) (Justification, error) {
	if j, ok := justificationNames[s]; ok {
		return j, nil
	}
	if n, err := strconv.Atoi(s); err == nil && Justification(n).Valid() {
		return Justification(n), nil
	}
	return 0, errors.UnknownKind("annotation justification", strconv.Quote(s))
}

// ParseVerticalJustification accepts top, center, bottom, centerStem or 1..4.
func ParseVerticalJustification(s string) (VerticalJustification, error) {
	if j, ok := verticalNames[s]; ok {
		return j, nil
	}
	if n, err := strconv.Atoi(s); err == nil && VerticalJustification(n).Valid() {
		return VerticalJustification(n), nil
	}
	return 0, errors.UnknownKind("annotation vertical justification", strconv.Quote(s))
}

func (j Justification) Valid() bool { return j >= Left && j <= CenterStem }

func (j Justification) String() string {
	for name, v := range justificationNames {
		if v == j {
			return name
		}
	}
	return "Justification(" + strconv.Itoa(int(j)) + ")"
}

func (j Justification) MarshalText() ([]byte, error) {
	if !j.Valid() {
		return nil, errors.UnknownKind("annotation justification", int(j))
	}
	return []byte(j.String()), nil
}

func (j *Justification) UnmarshalText(text []byte) error {
	v, err := ParseJustification(string(text))
	if err != nil {
		return err
	}
	*j = v
	return nil
}

func (j VerticalJustification) Valid() bool { return j >= Top && j <= VerticalCenterStem }

func (j VerticalJustification) String() string {
	for name, v := range verticalNames {
		if v == j {
			return name
		}
	}
	return "VerticalJustification(" + strconv.Itoa(int(j)) + ")"
}

func (j VerticalJustification) MarshalText() ([]byte, error) {
	if !j.Valid() {
		return nil, errors.UnknownKind("annotation vertical justification", int(j))
	}
	return []byte(j.String()), nil
}

func (j *VerticalJustification) UnmarshalText(text []byte) error {
	v, err := ParseVerticalJustification(string(text))
	if err != nil {
		return err
	}
	*j = v
	return nil
}
