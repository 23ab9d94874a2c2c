package scale

import (
	"math"
)

// ZeroFallback replaces a zero log endpoint when no data is observed.
const ZeroFallback = 1e-6

// Split is a log scale that may straddle zero. It is composed of an
// optional negative piece and an optional positive piece whose pixel
// ranges meet at a single zero point.
type Split struct {
	Neg, Pos *Continuous
	d0, d1   float64
	r0, r1   float64
	zero     float64
	epsilon  float64
}

// SmallestMagnitude returns the smallest non-zero |v| in data, or 0.
func SmallestMagnitude(data []float64) float64 {
	m := 0.0
	for _, v := range data {
		a := math.Abs(v)
		if a == 0 || math.IsNaN(a) || math.IsInf(a, 0) {
			continue
		}
		if m == 0 || a < m {
			m = a
		}
	}
	return m
}

// NewLog builds a log scale over [d0, d1] mapped onto [r0, r1]. Zero
// endpoints are snapped to the smallest magnitude observed in data. A
// domain crossing zero is split at epsilon = min(1, smallest magnitude),
// the zero point sitting at the share of the range the negative side's
// decades take up.
func NewLog(d0, d1, r0, r1 float64, data []float64) *Split {
	smallest := SmallestMagnitude(data)
	snap := smallest
	if snap == 0 {
		snap = ZeroFallback
	}
	if d0 == 0 {
		d0 = math.Copysign(snap, d1)
	}
	if d1 == 0 {
		d1 = math.Copysign(snap, d0)
	}

	s := &Split{d0: d0, d1: d1, r0: r0, r1: r1}
	piece := func(a, b, ra, rb float64) *Continuous {
		c, _ := NewContinuous(Log, a, b, ra, rb)
		return c
	}

	if d0*d1 > 0 {
		c := piece(d0, d1, r0, r1)
		if d0 < 0 {
			s.Neg = c
		} else {
			s.Pos = c
		}
		s.epsilon = math.Min(math.Abs(d0), math.Abs(d1))
		if math.Abs(d0) < math.Abs(d1) {
			s.zero = r0
		} else {
			s.zero = r1
		}
		return s
	}

	eps := 1.0
	if smallest > 0 && smallest < 1 {
		eps = smallest
	}
	s.epsilon = eps
	a := math.Max(0, math.Log10(math.Abs(d0)/eps))
	b := math.Max(0, math.Log10(math.Abs(d1)/eps))
	share := 0.5
	if a+b > 0 {
		share = a / (a + b)
	}
	s.zero = r0 + share*(r1-r0)

	first := piece(d0, math.Copysign(eps, d0), r0, s.zero)
	second := piece(math.Copysign(eps, d1), d1, s.zero, r1)
	if d0 < 0 {
		s.Neg, s.Pos = first, second
	} else {
		s.Pos, s.Neg = first, second
	}
	return s
}

func (s *Split) Round(round bool) *Split {
	for _, p := range s.pieces() {
		p.Round(round)
	}
	return s
}

func (s *Split) pieces() []*Continuous {
	var ps []*Continuous
	if s.Neg != nil {
		ps = append(ps, s.Neg)
	}
	if s.Pos != nil {
		ps = append(ps, s.Pos)
	}
	return ps
}

func (s *Split) Kind() Kind { return Log }

func (s *Split) Range() (float64, float64) { return s.r0, s.r1 }

// Zero is the pixel where the two pieces meet.
func (s *Split) Zero() float64 { return s.zero }

// Epsilon is the magnitude each piece stops at next to zero.
func (s *Split) Epsilon() float64 { return s.epsilon }

// Straddles reports whether both pieces are present.
func (s *Split) Straddles() bool { return s.Neg != nil && s.Pos != nil }

// Domain returns the snapped domain endpoints.
func (s *Split) Domain() (float64, float64) { return s.d0, s.d1 }

func (s *Split) Map(x float64) float64 {
	var p *Continuous
	switch {
	case x < 0:
		p = s.Neg
	case x > 0:
		p = s.Pos
	}
	if p == nil {
		return s.zero
	}
	y := p.Map(x)
	lo, hi := p.Range()
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Max(lo, math.Min(hi, y))
}

// Ticks returns each piece's ticks, each sized to its own pixel share.
func (s *Split) Ticks() []float64 {
	var ticks []float64
	for _, p := range s.pieces() {
		r0, r1 := p.Range()
		ticks = append(ticks, p.TicksN(TickCount(r1-r0))...)
	}
	return ticks
}
