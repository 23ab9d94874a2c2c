package svgaxis

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/decibelcooper/svgaxis/date"
	"github.com/decibelcooper/svgaxis/scale"
)

// domain is a Config's domain and data resolved to numbers for its kind.
type domain struct {
	kind       scale.Kind
	lo, hi     float64
	categories []string
	data       []float64
	times      []time.Time
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
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
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func category(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func resolveDomain(c Config) (domain, error) {
	d := domain{kind: c.Scale}
	if c.Scale.Discrete() {
		seen := map[string]bool{}
		for _, v := range c.Domain {
			s := category(v)
			if !seen[s] {
				seen[s] = true
				d.categories = append(d.categories, s)
			}
		}
		return d, nil
	}

	// Fewer than two values collapse to a point: [0, 0] when empty,
	// [v, v] for a single value.
	if len(c.Domain) > 2 {
		return d, errors.Wrapf(ErrDomain, "%s scale takes at most two domain values, got %d", c.Scale, len(c.Domain))
	}
	var ends []float64
	for i, v := range c.Domain {
		n, err := continuousValue(c, v)
		if err != nil {
			return d, errors.Wrapf(err, "domain[%d]", i)
		}
		ends = append(ends, n)
	}
	if len(ends) > 0 {
		d.lo, d.hi = ends[0], ends[len(ends)-1]
	}

	for _, v := range c.Data {
		if c.Scale == scale.Time {
			t, err := date.Normalize(v, c.Location)
			if err != nil {
				continue
			}
			d.times = append(d.times, t)
			d.data = append(d.data, scale.Millis(t))
			continue
		}
		if n, ok := number(v); ok {
			d.data = append(d.data, n)
		}
	}
	return d, nil
}

func continuousValue(c Config, v interface{}) (float64, error) {
	if c.Scale == scale.Time {
		t, err := date.Normalize(v, c.Location)
		if err != nil {
			return 0, errors.Wrapf(err, "time domain value %v", v)
		}
		return scale.Millis(t), nil
	}
	n, ok := number(v)
	if !ok {
		return 0, errors.Wrapf(ErrDomain, "%v is not a number", v)
	}
	return n, nil
}

// values resolves override values to scale domain numbers, dropping any
// that do not belong to the domain.
func (d domain) values(c Config, vs []interface{}) []float64 {
	out := make([]float64, 0, len(vs))
	for _, v := range vs {
		if d.kind.Discrete() {
			s := category(v)
			for i, cat := range d.categories {
				if cat == s {
					out = append(out, float64(i))
					break
				}
			}
			continue
		}
		if n, err := continuousValue(c, v); err == nil {
			out = append(out, n)
		}
	}
	return out
}

func (d domain) value(n float64) Value {
	v := Value{Num: n}
	if d.kind.Discrete() {
		if i := int(n); i >= 0 && i < len(d.categories) {
			v.Category = d.categories[i]
		}
	}
	return v
}

// key identifies a value across renders.
func (d domain) key(n float64) string {
	if d.kind.Discrete() {
		return d.value(n).Category
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}
