package scale

import (
	"math"

	"github.com/pkg/errors"
)

// Continuous is a linear, sqrt, pow, log or time position function over a
// numeric domain. Time domains are milliseconds since the epoch.
type Continuous struct {
	kind     Kind
	d0, d1   float64
	r0, r1   float64
	exponent float64
	round    bool
}

func NewContinuous(kind Kind, d0, d1, r0, r1 float64) (*Continuous, error) {
	if !kind.Continuous() {
		return nil, errors.Errorf("%s is not a continuous scale", kind)
	}
	if kind == Log && d0*d1 < 0 {
		return nil, errors.Errorf("log domain [%g, %g] crosses zero", d0, d1)
	}
	c := &Continuous{kind: kind, d0: d0, d1: d1, r0: r0, r1: r1, exponent: 1}
	if kind == Sqrt {
		c.exponent = 0.5
	}
	return c, nil
}

// Round makes Map return whole pixels.
func (c *Continuous) Round(round bool) *Continuous {
	c.round = round
	return c
}

// Exponent sets the power of a pow scale.
func (c *Continuous) Exponent(e float64) *Continuous {
	if c.kind == Pow {
		c.exponent = e
	}
	return c
}

func (c *Continuous) Kind() Kind { return c.kind }

func (c *Continuous) Domain() (float64, float64) { return c.d0, c.d1 }

func (c *Continuous) Range() (float64, float64) { return c.r0, c.r1 }

// Degenerate reports whether the domain collapses to a single value.
func (c *Continuous) Degenerate() bool {
	return c.transform(c.d0) == c.transform(c.d1)
}

func (c *Continuous) transform(x float64) float64 {
	switch c.kind {
	case Log:
		if c.d0 < 0 || c.d1 < 0 {
			return -math.Log10(-x)
		}
		return math.Log10(x)
	case Sqrt, Pow:
		if x < 0 {
			return -math.Pow(-x, c.exponent)
		}
		return math.Pow(x, c.exponent)
	}
	return x
}

func (c *Continuous) Map(x float64) float64 {
	var y float64
	if c.Degenerate() {
		y = (c.r0 + c.r1) / 2
	} else {
		t0 := c.transform(c.d0)
		u := (c.transform(x) - t0) / (c.transform(c.d1) - t0)
		y = c.r0 + u*(c.r1-c.r0)
	}
	if c.round {
		return math.Round(y)
	}
	return y
}

// TicksN returns about count nice values inside the domain, in domain
// order. A degenerate domain has no ticks.
func (c *Continuous) TicksN(count int) []float64 {
	if c.Degenerate() {
		return nil
	}
	if c.kind != Log {
		return LinearTicks(c.d0, c.d1, count)
	}
	u, v := c.d0, c.d1
	reverse := v < u
	if reverse {
		u, v = v, u
	}
	var z []float64
	if u > 0 {
		z = logTicks(u, v, count)
	} else {
		pos := logTicks(-v, -u, count)
		z = make([]float64, len(pos))
		for i, t := range pos {
			z[len(pos)-1-i] = -t
		}
	}
	if reverse {
		for i, j := 0, len(z)-1; i < j; i, j = i+1, j-1 {
			z[i], z[j] = z[j], z[i]
		}
	}
	return z
}

func (c *Continuous) Ticks() []float64 {
	return c.TicksN(TickCount(c.r1 - c.r0))
}
