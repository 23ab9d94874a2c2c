// Package date turns the loose date values found in axis domains, tick
// lists and data sets into time.Time.
//
// Numbers are years unless they look like epoch milliseconds (more than
// five characters and integral). Strings may be M/D/Y with '/', '.' or '-'
// separators, the form produced by JavaScript's Date.toString, a bare year,
// a fiscal quarter ("Q2 1987", "1987Q2") or one of the usual ISO and RFC
// layouts. Negative years are kept exactly.
package date

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	dayFormat     = regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})[./-](-?\d{1,4})$`)
	stringFormat  = regexp.MustCompile(`^[A-Za-z]{1,3} ([A-Za-z]{1,3}) (\d{1,2}) (-?\d{1,4}) (\d{1,2}):(\d{1,2}):(\d{1,2})(?: (?:GMT|UTC)?([+-]\d{4}))?(?: \(([^)]*)\))?$`)
	quarterFirst  = regexp.MustCompile(`^[Qq]([1-4])\s*(-?\d{1,4})$`)
	quarterLast   = regexp.MustCompile(`^(-?\d{1,4})\s*[Qq]([1-4])$`)
	yearFormat    = regexp.MustCompile(`^-?\d+$`)
	parseFallback = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
		"2006-01",
		time.RFC1123Z,
		time.RFC1123,
		time.RFC850,
		time.ANSIC,
		time.UnixDate,
		time.RubyDate,
		time.RFC822Z,
		time.RFC822,
		"January 2, 2006",
		"Jan 2, 2006",
		"2 January 2006",
		"2 Jan 2006",
		"January 2006",
		"Jan 2006",
	}
)

// Normalize converts v to a time in loc. A nil loc means UTC.
func Normalize(v interface{}, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case *time.Time:
		if d == nil {
			return time.Time{}, errors.New("nil time")
		}
		return *d, nil
	case string:
		return parseString(d, loc)
	case []byte:
		return parseString(string(d), loc)
	}
	f, ok := number(v)
	if !ok {
		return time.Time{}, errors.Errorf("unsupported date value %T", v)
	}
	return fromNumber(f, loc), nil
}

// MustNormalize is Normalize for values known to be valid.
func MustNormalize(v interface{}, loc *time.Location) time.Time {
	t, err := Normalize(v, loc)
	if err != nil {
		panic(err)
	}
	return t
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func fromNumber(f float64, loc *time.Location) time.Time {
	if len(strconv.FormatFloat(f, 'f', -1, 64)) > 5 && f == math.Trunc(f) {
		sec := math.Floor(f / 1000)
		ms := f - sec*1000
		return time.Unix(int64(sec), int64(ms)*int64(time.Millisecond)).In(loc)
	}
	return Year(int(f), loc)
}

// Year is midnight on January 1 of year y.
func Year(y int, loc *time.Location) time.Time {
	return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
}

// Quarter is the last day of quarter q of year y.
func Quarter(y, q int, loc *time.Location) time.Time {
	return time.Date(y, time.Month(3*q+1), 0, 0, 0, 0, 0, loc)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func parseString(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)

	if m := dayFormat.FindStringSubmatch(s); m != nil {
		month, day, year := atoi(m[1]), atoi(m[2]), atoi(m[3])
		if month < 1 || month > 12 || day < 1 || day > daysIn(year, month) {
			return time.Time{}, errors.Errorf("date %q out of range", s)
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), nil
	}

	if m := stringFormat.FindStringSubmatch(s); m != nil {
		return parseDateString(s, m, loc)
	}

	if m := quarterFirst.FindStringSubmatch(s); m != nil {
		return Quarter(atoi(m[2]), atoi(m[1]), loc), nil
	}
	if m := quarterLast.FindStringSubmatch(s); m != nil {
		return Quarter(atoi(m[1]), atoi(m[2]), loc), nil
	}

	if yearFormat.MatchString(s) {
		y, err := strconv.Atoi(s)
		if err != nil {
			return time.Time{}, errors.Wrapf(err, "year %q", s)
		}
		return Year(y, loc), nil
	}

	for _, layout := range parseFallback {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	_, err := time.ParseInLocation(time.RFC3339, s, loc)
	return time.Time{}, errors.Wrapf(err, "parse date %q", s)
}

func parseDateString(s string, m []string, loc *time.Location) (time.Time, error) {
	month, err := time.Parse("Jan", m[1])
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parse date %q", s)
	}
	day, year := atoi(m[2]), atoi(m[3])
	hour, min, sec := atoi(m[4]), atoi(m[5]), atoi(m[6])

	zone := loc
	if m[7] != "" {
		off := atoi(m[7][1:])
		secs := (off/100)*3600 + (off%100)*60
		if m[7][0] == '-' {
			secs = -secs
		}
		name := m[8]
		if name == "" {
			name = "GMT" + m[7]
		}
		zone = time.FixedZone(name, secs)
	}
	return time.Date(year, month.Month(), day, hour, min, sec, 0, zone), nil
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
