package svgaxis

import (
	"math"
	"strconv"
	"strings"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/tebeka/strftime"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	textnumber "golang.org/x/text/number"

	"github.com/decibelcooper/svgaxis/scale"
)

// Locale holds the abbreviation suffixes for one language. Suffixes are
// indexed by SI exponent/3 + 8, from yocto to yotta.
type Locale struct {
	Tag       language.Tag
	Decimal   string
	Separator string
	Suffixes  [17]string
}

var Locales = map[string]Locale{
	"en-US": {
		Tag: language.AmericanEnglish, Decimal: ".",
		Suffixes: [17]string{"y", "z", "a", "f", "p", "n", "µ", "m", "", "k", "M", "B", "T", "q", "Q", "Z", "Y"},
	},
	"en-GB": {
		Tag: language.BritishEnglish, Decimal: ".",
		Suffixes: [17]string{"y", "z", "a", "f", "p", "n", "µ", "m", "", "k", "M", "B", "T", "q", "Q", "Z", "Y"},
	},
	"es-ES": {
		Tag: language.EuropeanSpanish, Decimal: ",",
		Suffixes: [17]string{"y", "z", "a", "f", "p", "n", "µ", "m", "", "k", "mm", "b", "kb", "qd", "qn", "sx", "sp"},
	},
	"de-DE": {
		Tag: language.German, Decimal: ",", Separator: " ",
		Suffixes: [17]string{"y", "z", "a", "f", "p", "n", "µ", "m", "", "Tsd", "Mio", "Mrd", "Bio", "Brd", "Trill", "Trd", "Quad"},
	},
	"fr-FR": {
		Tag: language.French, Decimal: ",", Separator: " ",
		Suffixes: [17]string{"y", "z", "a", "f", "p", "n", "µ", "m", "", "k", "M", "Md", "Bn", "Bd", "Tn", "Td", "Qn"},
	},
}

var ErrUnknownLocale = errors.New("unknown locale")

func LookupLocale(name string) (Locale, error) {
	l, ok := Locales[name]
	if !ok {
		return Locale{}, errors.Wrapf(ErrUnknownLocale, "%q", name)
	}
	return l, nil
}

// suffix returns the locale suffix for an SI exponent, a multiple of 3.
func (l Locale) suffix(exp int) string {
	i := exp/3 + 8
	if i < 0 || i >= len(l.Suffixes) {
		return ""
	}
	return l.Suffixes[i]
}

func (l Locale) decimal(s string) string {
	if l.Decimal == "" || l.Decimal == "." {
		return s
	}
	return strings.Replace(s, ".", l.Decimal, 1)
}

// significant formats v with at most p significant digits and no
// trailing zeros.
func significant(v float64, p int) string {
	if v == 0 {
		return "0"
	}
	mag := int(math.Floor(math.Log10(math.Abs(v))))
	decimals := p - 1 - mag
	pow := math.Pow10(decimals)
	v = math.Round(v*pow) / pow
	if decimals < 0 {
		decimals = 0
	}
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}

// Abbreviate shortens n for a tick label: three significant digits and a
// suffix from hundreds upwards, two significant digits below one, three
// otherwise.
func (l Locale) Abbreviate(n float64) string {
	if n == 0 || math.IsNaN(n) {
		return "0"
	}
	a := math.Abs(n)
	sign := ""
	if n < 0 {
		sign = "-"
	}
	switch {
	case a >= 100:
		v, _ := strconv.ParseFloat(significant(a, 3), 64)
		m, _ := humanize.ComputeSI(v)
		exp := int(math.Round(math.Log10(v / m)))
		return sign + l.decimal(significant(m, 3)) + l.Separator + l.suffix(exp)
	case a < 1:
		return sign + l.decimal(significant(a, 2))
	}
	return sign + l.decimal(significant(a, 3))
}

// Smallest formats n in the unit of the smallest label >= 1000, unit
// being the power of 1000 that label was found in.
func (l Locale) Smallest(n float64, unit int) string {
	if n <= 1 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	v := n / math.Pow10(3*unit)
	p := message.NewPrinter(l.Tag)
	s := p.Sprint(textnumber.Decimal(v, textnumber.MaxFractionDigits(6)))
	suff := ""
	if n >= 1000 {
		suff = l.suffix(3 * unit)
	}
	return s + l.Separator + suff
}

// smallestUnit finds the largest power of 1000, up to 10^18, that the
// smallest label >= 1000 is still at least one of.
func smallestUnit(labels []float64) int {
	min := math.Inf(1)
	for _, v := range labels {
		if v >= 1000 && v < min {
			min = v
		}
	}
	unit := 0
	if math.IsInf(min, 1) {
		return unit
	}
	for i := 1; i < 7; i++ {
		if min/math.Pow10(3*i) < 1 {
			break
		}
		unit = i
	}
	return unit
}

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹', '-': '⁻',
}

// FormatLog writes v as a power of ten, with its leading digit as a
// multiplier when that is not 1: "10 ³", "5 x 10 ²", "-10 ⁻¹".
func FormatLog(v float64) string {
	if v == 0 {
		return "0"
	}
	a := math.Abs(v)
	p := int(math.Floor(math.Log10(a) + 1e-9))
	var sup strings.Builder
	for _, c := range strconv.Itoa(p) {
		sup.WriteRune(superscripts[c])
	}
	s := "10 " + sup.String()
	if d := scale.LeadingDigit(a); d != '1' {
		s = string(d) + " x " + s
	}
	if v < 0 {
		s = "-" + s
	}
	return s
}

var timeFormats = map[scale.Unit]string{
	scale.Second: ":%S",
	scale.Minute: "%I:%M",
	scale.Hour:   "%I %p",
	scale.Day:    "%a %d",
	scale.Week:   "%b %d",
	scale.Month:  "%b",
	scale.Year:   "%Y",
}

// FormatTime labels t at unit, or at the coarser unit t sits on the
// boundary of.
func FormatTime(t time.Time, unit scale.Unit) (string, error) {
	if u := scale.UnitOf(t); u > unit {
		unit = u
	}
	if unit == scale.Millisecond {
		return "." + strconv.FormatInt(int64(t.Nanosecond()/1e6)+1000, 10)[1:], nil
	}
	s, err := strftime.Format(timeFormats[unit], t)
	return s, errors.Wrapf(err, "formatting %v", t)
}
