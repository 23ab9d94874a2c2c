package scale

import (
	"strings"

	"github.com/pkg/errors"
)

// Kind names the family of position function an axis is built on.
type Kind int

const (
	Linear Kind = iota
	Sqrt
	Pow
	Log
	Time
	Band
	Point
	Ordinal
)

var ErrUnknownKind = errors.New("unknown scale kind")

var kindNames = [...]string{
	Linear:  "linear",
	Sqrt:    "sqrt",
	Pow:     "pow",
	Log:     "log",
	Time:    "time",
	Band:    "band",
	Point:   "point",
	Ordinal: "ordinal",
}

func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownKind, "%q", s)
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Continuous reports whether values of this kind are numbers on a line.
func (k Kind) Continuous() bool {
	switch k {
	case Linear, Sqrt, Pow, Log, Time:
		return true
	}
	return false
}

// Discrete reports whether the domain is a category list.
func (k Kind) Discrete() bool {
	switch k {
	case Band, Point, Ordinal:
		return true
	}
	return false
}

func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, errors.Wrapf(ErrUnknownKind, "%d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Scale maps domain values to pixel positions. Discrete scales take the
// category index as their domain value.
type Scale interface {
	Kind() Kind
	Map(x float64) float64
	Range() (start, end float64)
	Ticks() []float64
}
