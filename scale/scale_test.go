package scale

import (
	"math"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, name := range []string{"linear", "sqrt", "pow", "log", "time", "band", "point", "ordinal"} {
		k, err := ParseKind(name)
		require.NoError(t, err)
		assert.Equal(t, name, k.String())
	}

	k, err := ParseKind(" Band ")
	require.NoError(t, err)
	assert.Equal(t, Band, k)

	_, err = ParseKind("radial")
	assert.Equal(t, ErrUnknownKind, errors.Cause(err))
}

func TestLinearTicks(t *testing.T) {
	assert.Equal(t, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, LinearTicks(0, 10, 10))
	assert.Equal(t, []float64{0, 0.2, 0.4, 0.6, 0.8, 1}, LinearTicks(0, 1, 5))
	assert.Equal(t, []float64{10, 5, 0}, LinearTicks(10, 0, 2))
	assert.Equal(t, []float64{3}, LinearTicks(3, 3, 5))
	assert.Empty(t, LinearTicks(0, 10, 0))
}

func TestTickCount(t *testing.T) {
	assert.Equal(t, 0, TickCount(5))
	assert.Equal(t, 1, TickCount(10))
	assert.Equal(t, 3, TickCount(100))
	assert.Equal(t, 8, TickCount(400))
	assert.Equal(t, 8, TickCount(-400))
	assert.Equal(t, 16, TickCount(800))
}

func TestLinearScenario(t *testing.T) {
	c, err := NewContinuous(Linear, 0, 10, 0, 400)
	require.NoError(t, err)
	c.Round(true)
	assert.Equal(t, 200.0, c.Map(5))
	assert.Equal(t, 0.0, c.Map(0))
	assert.Equal(t, 400.0, c.Map(10))
}

func TestContinuousRejectsDiscreteKind(t *testing.T) {
	_, err := NewContinuous(Band, 0, 1, 0, 1)
	assert.Error(t, err)
	_, err = NewContinuous(Log, -1, 1, 0, 1)
	assert.Error(t, err)
}

func TestMonotonic(t *testing.T) {
	type tc struct {
		kind   Kind
		d0, d1 float64
	}
	cases := []tc{
		{Linear, -50, 50},
		{Sqrt, 0, 100},
		{Pow, -10, 10},
		{Log, 1, 1e6},
		{Log, -1e4, -0.01},
		{Time, 0, 1e12},
	}
	for _, c := range cases {
		for _, rng := range [][2]float64{{0, 500}, {500, 0}} {
			s, err := NewContinuous(c.kind, c.d0, c.d1, rng[0], rng[1])
			require.NoError(t, err)
			s.Exponent(3)
			prev := s.Map(c.d0)
			for i := 1; i <= 200; i++ {
				x := c.d0 + (c.d1-c.d0)*float64(i)/200
				if c.kind == Log {
					x = math.Copysign(math.Pow(10, math.Log10(math.Abs(c.d0))+(math.Log10(math.Abs(c.d1))-math.Log10(math.Abs(c.d0)))*float64(i)/200), c.d0)
				}
				y := s.Map(x)
				if rng[1] > rng[0] {
					assert.LessOrEqual(t, prev, y, "%s at %g", c.kind, x)
				} else {
					assert.GreaterOrEqual(t, prev, y, "%s at %g", c.kind, x)
				}
				prev = y
			}
		}
	}
}

func TestDegenerateDomain(t *testing.T) {
	c, err := NewContinuous(Linear, 3, 3, 10, 110)
	require.NoError(t, err)
	assert.True(t, c.Degenerate())
	assert.Equal(t, 60.0, c.Map(3))
	assert.Equal(t, 60.0, c.Map(100))
	assert.Empty(t, c.Ticks())
}

func TestLogTicks(t *testing.T) {
	c, err := NewContinuous(Log, 1, 1000, 0, 400)
	require.NoError(t, err)
	ticks := c.TicksN(10)
	require.Len(t, ticks, 28)
	assert.Equal(t, 1.0, ticks[0])
	assert.Equal(t, 2.0, ticks[1])
	assert.Equal(t, 1000.0, ticks[len(ticks)-1])

	neg, err := NewContinuous(Log, -1000, -1, 0, 400)
	require.NoError(t, err)
	nticks := neg.TicksN(10)
	require.Len(t, nticks, 28)
	assert.Equal(t, -1000.0, nticks[0])
	assert.Equal(t, -1.0, nticks[len(nticks)-1])
	for i := 1; i < len(nticks); i++ {
		assert.Less(t, nticks[i-1], nticks[i])
	}
}

func TestLeadingDigit(t *testing.T) {
	assert.Equal(t, byte('1'), LeadingDigit(100))
	assert.Equal(t, byte('1'), LeadingDigit(-0.001))
	assert.Equal(t, byte('3'), LeadingDigit(0.3))
	assert.Equal(t, byte('2'), LeadingDigit(2e9))
}

func TestSplitPartition(t *testing.T) {
	s := NewLog(-1000, 100000, 0, 800, nil)
	require.True(t, s.Straddles())
	zero := s.Zero()
	// three decades left of zero, five right
	assert.InDelta(t, 300.0, zero, 1e-9)

	n0, n1 := s.Neg.Range()
	p0, p1 := s.Pos.Range()
	assert.Equal(t, 0.0, n0)
	assert.Equal(t, zero, n1)
	assert.Equal(t, zero, p0)
	assert.Equal(t, 800.0, p1)

	for _, v := range []float64{-999, -500, -50, -2, -1.5} {
		y := s.Map(v)
		assert.Greater(t, y, 0.0, "%g", v)
		assert.Less(t, y, zero, "%g", v)
	}
	for _, v := range []float64{1.5, 2, 50, 5000, 99999} {
		y := s.Map(v)
		assert.Greater(t, y, zero, "%g", v)
		assert.Less(t, y, 800.0, "%g", v)
	}

	ticks := s.Ticks()
	assert.NotEmpty(t, ticks)
	for _, v := range ticks {
		assert.NotZero(t, v)
	}
}

func TestSplitInvertedDomain(t *testing.T) {
	s := NewLog(1000, -10, 0, 400, nil)
	require.True(t, s.Straddles())
	assert.InDelta(t, 300.0, s.Zero(), 1e-9)
	assert.Less(t, s.Map(500), s.Zero())
	assert.Greater(t, s.Map(-5), s.Zero())
}

func TestSplitZeroSnapping(t *testing.T) {
	s := NewLog(0, 100, 0, 400, []float64{0, 0.5, 3, 0, 20})
	require.False(t, s.Straddles())
	d0, d1 := s.Domain()
	assert.Equal(t, 0.5, d0)
	assert.Equal(t, 100.0, d1)

	s = NewLog(-100, 0, 0, 400, nil)
	d0, d1 = s.Domain()
	assert.Equal(t, -100.0, d0)
	assert.Equal(t, -ZeroFallback, d1)
	assert.NotNil(t, s.Neg)
	assert.Nil(t, s.Pos)

	s = NewLog(-100, 100, 0, 400, []float64{-0.01, 7})
	assert.Equal(t, 0.01, s.Epsilon())
	assert.InDelta(t, 200.0, s.Zero(), 1e-9)
}

func TestBandScenario(t *testing.T) {
	b := NewBand(3, 0, 300, 0, 0).Round(true)
	assert.Equal(t, 100.0, b.Bandwidth())
	assert.Equal(t, 100.0, b.Step())
	assert.Equal(t, 150.0, b.Map(1)+b.Bandwidth()/2)
	assert.Equal(t, []float64{0, 1, 2}, b.Ticks())
	assert.True(t, math.IsNaN(b.Map(3)))
}

func TestBandPadding(t *testing.T) {
	b := NewBand(4, 0, 420, 0.1, 0.1)
	assert.InDelta(t, 420/4.1, b.Step(), 1e-9)
	assert.InDelta(t, b.Step()*0.9, b.Bandwidth(), 1e-9)
	first := b.Map(0)
	last := b.Map(3) + b.Bandwidth()
	assert.InDelta(t, 420-last, first, 1e-9)

	rev := NewBand(4, 420, 0, 0.1, 0.1)
	assert.InDelta(t, b.Map(0), rev.Map(3), 1e-9)
}

func TestPoint(t *testing.T) {
	p := NewPoint(3, 0, 200)
	assert.Equal(t, Point, p.Kind())
	assert.Equal(t, 0.0, p.Bandwidth())
	assert.Equal(t, []float64{0, 100, 200}, []float64{p.Map(0), p.Map(1), p.Map(2)})
}

func TestOrdinal(t *testing.T) {
	o := NewOrdinal(4, BucketCentres(4, 0, 400))
	assert.Equal(t, []float64{50, 150, 250, 350}, []float64{o.Map(0), o.Map(1), o.Map(2), o.Map(3)})

	o = NewOrdinal(3, Endpoints(3, 10, 110))
	assert.Equal(t, []float64{10, 60, 110}, []float64{o.Map(0), o.Map(1), o.Map(2)})
	lo, hi := o.Range()
	assert.Equal(t, 10.0, lo)
	assert.Equal(t, 110.0, hi)

	o = NewOrdinal(4, []float64{0, 10})
	assert.Equal(t, 0.0, o.Map(2))
}

func TestTimeTicks(t *testing.T) {
	start := time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC)
	s := NewTime(start, start.Add(24*time.Hour), 0, 400, time.UTC)

	iv := s.Choose(Millis(start), Millis(start.Add(24*time.Hour)), 8)
	assert.Equal(t, Interval{Hour, 3}, iv)

	ticks := s.TicksN(8)
	require.Len(t, ticks, 9)
	for i, ms := range ticks {
		assert.Equal(t, start.Add(time.Duration(i)*3*time.Hour), FromMillis(ms, time.UTC))
	}
}

func TestTimeTicksRespectDataResolution(t *testing.T) {
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)
	s := NewTime(start, end, 0, 800, time.UTC)
	assert.Equal(t, Interval{Hour, 6}, s.Choose(Millis(start), Millis(end), 16))

	s.MinGap([]time.Time{start, start.AddDate(0, 0, 1), start.AddDate(0, 0, 2), end})
	assert.Equal(t, Interval{Day, 1}, s.Choose(Millis(start), Millis(end), 16))
	for _, ms := range s.TicksN(16) {
		tk := FromMillis(ms, time.UTC)
		assert.Equal(t, Floor(tk, Day), tk)
	}
}

func TestYearTicks(t *testing.T) {
	start := time.Date(1900, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2000, time.June, 1, 0, 0, 0, 0, time.UTC)
	s := NewTime(start, end, 0, 400, time.UTC)
	ticks := s.TicksN(5)
	require.NotEmpty(t, ticks)
	for _, ms := range ticks {
		tk := FromMillis(ms, time.UTC)
		assert.Equal(t, 0, tk.Year()%20)
		assert.Equal(t, time.January, tk.Month())
	}
}

func TestIntervalRangeAlignment(t *testing.T) {
	start := time.Date(2021, time.January, 30, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, time.February, 3, 0, 0, 0, 0, time.UTC)
	got := Interval{Day, 2}.Range(start, end)
	var days []int
	for _, d := range got {
		days = append(days, d.Day())
	}
	assert.Equal(t, []int{31, 1, 3}, days)

	q := Interval{Month, 3}.Range(time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC))
	require.Len(t, q, 3)
	assert.Equal(t, time.April, q[0].Month())
}

func TestGranularity(t *testing.T) {
	var months []time.Time
	for m := 1; m <= 6; m++ {
		months = append(months, time.Date(2020, time.Month(m), 1, 0, 0, 0, 0, time.UTC))
	}
	assert.Equal(t, Month, Granularity(months))

	var years []time.Time
	for y := 2000; y <= 2005; y++ {
		years = append(years, time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC))
	}
	assert.Equal(t, Year, Granularity(years))

	base := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	var hours []time.Time
	for h := 0; h < 24; h += 6 {
		hours = append(hours, base.Add(time.Duration(h)*time.Hour))
	}
	assert.Equal(t, Hour, Granularity(hours))

	assert.Equal(t, Week, Granularity([]time.Time{
		time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 3, 8, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC),
	}))
	assert.Equal(t, Second, Granularity([]time.Time{base, base.Add(5 * time.Second)}))
	assert.Equal(t, Millisecond, Granularity([]time.Time{base, base.Add(5 * time.Millisecond)}))
}

func TestUnitOf(t *testing.T) {
	assert.Equal(t, Year, UnitOf(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Month, UnitOf(time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC)))
	// 2020-03-01 is a Sunday
	assert.Equal(t, Week, UnitOf(time.Date(2020, 3, 8, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Day, UnitOf(time.Date(2020, 3, 9, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Hour, UnitOf(time.Date(2020, 3, 9, 4, 0, 0, 0, time.UTC)))
	assert.Equal(t, Millisecond, UnitOf(time.Date(2020, 3, 9, 4, 0, 0, 5e6, time.UTC)))
}
