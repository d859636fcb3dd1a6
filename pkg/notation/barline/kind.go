package barline

import (
	"strconv"

	"github.com/matzehuels/engrave/pkg/errors"
)

// Kind is the closed set of barline types. The numeric values are stable
// and may appear in score documents.
type Kind int

const (
	Single Kind = iota + 1
	Double
	End
	RepeatBegin
	RepeatEnd
	RepeatBoth
	None
)

var kindNames = map[Kind]string{
	Single:      "single",
	Double:      "double",
	End:         "end",
	RepeatBegin: "repeatBegin",
	RepeatEnd:   "repeatEnd",
	RepeatBoth:  "repeatBoth",
	None:        "none",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

// Kinds returns every kind in numeric order.
func Kinds() []Kind {
	return []Kind{Single, Double, End, RepeatBegin, RepeatEnd, RepeatBoth, None}
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// String returns the symbolic name, or "Kind(n)" for an undeclared value.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind resolves a symbolic name such as "repeatBegin". The numeric
// value written as a string ("4") is accepted too.
func ParseKind(s string) (Kind, error) {
	if k, ok := kindsByName[s]; ok {
		return k, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return KindFromInt(n)
	}
	return 0, errors.UnknownKind("barline kind", strconv.Quote(s))
}

// KindFromInt resolves a numeric kind value.
func KindFromInt(n int) (Kind, error) {
	k := Kind(n)
	if !k.Valid() {
		return 0, errors.UnknownKind("barline kind", n)
	}
	return k, nil
}

// MarshalText implements encoding.TextMarshaler using the symbolic name.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, errors.UnknownKind("barline kind", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts the symbolic
// name or the numeric value.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
