package scale

import (
	"math"
)

// BandScale splits a range into n equal buckets. Map returns the start of a
// bucket; add Bandwidth()/2 for its centre.
type BandScale struct {
	kind         Kind
	n            int
	r0, r1       float64
	inner, outer float64
	round        bool

	step, bandwidth float64
	values          []float64
}

func NewBand(n int, r0, r1, inner, outer float64) *BandScale {
	b := &BandScale{kind: Band, n: n, r0: r0, r1: r1, inner: clamp01(inner), outer: math.Max(0, outer)}
	b.rescale()
	return b
}

// NewPoint is a band scale with zero bandwidth: buckets shrink to points.
func NewPoint(n int, r0, r1 float64) *BandScale {
	b := &BandScale{kind: Point, n: n, r0: r0, r1: r1, inner: 1}
	b.rescale()
	return b
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func (b *BandScale) Round(round bool) *BandScale {
	b.round = round
	b.rescale()
	return b
}

func (b *BandScale) rescale() {
	reverse := b.r1 < b.r0
	start, stop := b.r0, b.r1
	if reverse {
		start, stop = stop, start
	}
	n := float64(b.n)
	b.step = (stop - start) / math.Max(1, n-b.inner+b.outer*2)
	if b.round {
		b.step = math.Floor(b.step)
	}
	start += (stop - start - b.step*(n-b.inner)) * 0.5
	b.bandwidth = b.step * (1 - b.inner)
	if b.round {
		start = math.Round(start)
		b.bandwidth = math.Round(b.bandwidth)
	}
	b.values = make([]float64, b.n)
	for i := range b.values {
		b.values[i] = start + b.step*float64(i)
	}
	if reverse {
		for i, j := 0, len(b.values)-1; i < j; i, j = i+1, j-1 {
			b.values[i], b.values[j] = b.values[j], b.values[i]
		}
	}
}

func (b *BandScale) Kind() Kind { return b.kind }

func (b *BandScale) Range() (float64, float64) { return b.r0, b.r1 }

func (b *BandScale) Step() float64 { return b.step }

func (b *BandScale) Bandwidth() float64 { return b.bandwidth }

func (b *BandScale) Map(i float64) float64 {
	k := int(math.Round(i))
	if k < 0 || k >= len(b.values) {
		return math.NaN()
	}
	return b.values[k]
}

func (b *BandScale) Ticks() []float64 {
	return indices(b.n)
}

func indices(n int) []float64 {
	ticks := make([]float64, n)
	for i := range ticks {
		ticks[i] = float64(i)
	}
	return ticks
}

// OrdinalScale maps category i to the i-th position, cycling when there are
// more categories than positions.
type OrdinalScale struct {
	n         int
	positions []float64
}

func NewOrdinal(n int, positions []float64) *OrdinalScale {
	return &OrdinalScale{n: n, positions: positions}
}

// BucketCentres spreads n positions at the centres of n equal buckets.
func BucketCentres(n int, r0, r1 float64) []float64 {
	ps := make([]float64, n)
	for k := range ps {
		ps[k] = r0 + (r1-r0)*(float64(k)+0.5)/float64(n)
	}
	return ps
}

// Endpoints spreads n positions evenly with the first and last on r0, r1.
func Endpoints(n int, r0, r1 float64) []float64 {
	if n == 1 {
		return []float64{r0}
	}
	ps := make([]float64, n)
	for k := range ps {
		ps[k] = r0 + (r1-r0)*float64(k)/float64(n-1)
	}
	return ps
}

func (o *OrdinalScale) Kind() Kind { return Ordinal }

func (o *OrdinalScale) Range() (float64, float64) {
	if len(o.positions) == 0 {
		return 0, 0
	}
	return o.positions[0], o.positions[len(o.positions)-1]
}

func (o *OrdinalScale) Map(i float64) float64 {
	if len(o.positions) == 0 {
		return math.NaN()
	}
	k := int(math.Round(i))
	if k < 0 {
		return math.NaN()
	}
	return o.positions[k%len(o.positions)]
}

func (o *OrdinalScale) Ticks() []float64 {
	return indices(o.n)
}
