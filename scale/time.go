package scale

import (
	"math"
	"sort"
	"time"
)

// Unit is a calendar granularity, coarsest last.
type Unit int

const (
	Millisecond Unit = iota
	Second
	Minute
	Hour
	Day
	Week
	Month
	Year
)

var unitNames = [...]string{"millisecond", "second", "minute", "hour", "day", "week", "month", "year"}

func (u Unit) String() string { return unitNames[u] }

const (
	msSecond = 1000.0
	msMinute = 60 * msSecond
	msHour   = 60 * msMinute
	msDay    = 24 * msHour
	msWeek   = 7 * msDay
	msMonth  = 30 * msDay
	msYear   = 365 * msDay
)

// Interval is every Step units, aligned on the unit's field.
type Interval struct {
	Unit Unit
	Step int
}

var ladder = []struct {
	Interval
	ms float64
}{
	{Interval{Second, 1}, msSecond},
	{Interval{Second, 5}, 5 * msSecond},
	{Interval{Second, 15}, 15 * msSecond},
	{Interval{Second, 30}, 30 * msSecond},
	{Interval{Minute, 1}, msMinute},
	{Interval{Minute, 5}, 5 * msMinute},
	{Interval{Minute, 15}, 15 * msMinute},
	{Interval{Minute, 30}, 30 * msMinute},
	{Interval{Hour, 1}, msHour},
	{Interval{Hour, 3}, 3 * msHour},
	{Interval{Hour, 6}, 6 * msHour},
	{Interval{Hour, 12}, 12 * msHour},
	{Interval{Day, 1}, msDay},
	{Interval{Day, 2}, 2 * msDay},
	{Interval{Week, 1}, msWeek},
	{Interval{Month, 1}, msMonth},
	{Interval{Month, 3}, 3 * msMonth},
	{Interval{Year, 1}, msYear},
}

// TimeScale is a continuous scale over instants, in milliseconds since the epoch.
type TimeScale struct {
	*Continuous
	loc    *time.Location
	minGap float64
}

func NewTime(d0, d1 time.Time, r0, r1 float64, loc *time.Location) *TimeScale {
	if loc == nil {
		loc = time.UTC
	}
	c, _ := NewContinuous(Time, Millis(d0), Millis(d1), r0, r1)
	return &TimeScale{Continuous: c, loc: loc}
}

// Millis converts t to milliseconds since the epoch.
func Millis(t time.Time) float64 {
	return float64(t.Unix())*1000 + float64(t.Nanosecond())/1e6
}

// FromMillis converts milliseconds since the epoch to a time in loc.
func FromMillis(ms float64, loc *time.Location) time.Time {
	sec := math.Floor(ms / 1000)
	ns := math.Round((ms - sec*1000) * 1e6)
	return time.Unix(int64(sec), int64(ns)).In(loc)
}

// MinGap stops tick intervals going finer than the smallest gap between
// consecutive data points.
func (t *TimeScale) MinGap(data []time.Time) *TimeScale {
	ms := make([]float64, len(data))
	for i, d := range data {
		ms[i] = Millis(d)
	}
	sort.Float64s(ms)
	t.minGap = 0
	for i := 1; i < len(ms); i++ {
		gap := ms[i] - ms[i-1]
		if gap > 0 && (t.minGap == 0 || gap < t.minGap) {
			t.minGap = gap
		}
	}
	return t
}

func (t *TimeScale) Location() *time.Location { return t.loc }

// Choose picks the interval for about count ticks over [start, stop] ms.
func (t *TimeScale) Choose(start, stop float64, count int) Interval {
	if stop < start {
		start, stop = stop, start
	}
	if count <= 0 {
		count = 1
	}
	target := (stop - start) / float64(count)
	i := sort.Search(len(ladder), func(i int) bool { return ladder[i].ms > target })
	switch {
	case i == len(ladder):
		return t.years(start, stop, count)
	case i == 0:
		step := math.Max(1, math.Round(TickStep(start, stop, count)))
		if step < t.minGap {
			if t.minGap >= ladder[0].ms {
				i = t.coarser(0)
				if i == len(ladder) {
					return t.years(start, stop, count)
				}
				return ladder[i].Interval
			}
			step = math.Ceil(t.minGap)
		}
		return Interval{Millisecond, int(step)}
	}
	if target/ladder[i-1].ms < ladder[i].ms/target {
		i--
	}
	i = t.coarser(i)
	if i == len(ladder) {
		return t.years(start, stop, count)
	}
	return ladder[i].Interval
}

func (t *TimeScale) coarser(i int) int {
	for i < len(ladder) && ladder[i].ms < t.minGap {
		i++
	}
	return i
}

func (t *TimeScale) years(start, stop float64, count int) Interval {
	step := math.Max(1, math.Round(TickStep(start/msYear, stop/msYear, count)))
	if gap := math.Ceil(t.minGap / msYear); gap > step {
		step = gap
	}
	return Interval{Year, int(step)}
}

func (t *TimeScale) TicksN(count int) []float64 {
	if t.Degenerate() || count <= 0 {
		return nil
	}
	start, stop := t.d0, t.d1
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	iv := t.Choose(start, stop, count)
	ticks := iv.Range(FromMillis(start, t.loc), FromMillis(stop, t.loc))
	z := make([]float64, len(ticks))
	for i, tk := range ticks {
		z[i] = Millis(tk)
	}
	if reverse {
		for i, j := 0, len(z)-1; i < j; i, j = i+1, j-1 {
			z[i], z[j] = z[j], z[i]
		}
	}
	return z
}

func (t *TimeScale) Ticks() []float64 {
	return t.TicksN(TickCount(t.r1 - t.r0))
}

// Floor truncates t to the start of its unit in t's location. Weeks start
// on Sunday.
func Floor(t time.Time, u Unit) time.Time {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	loc := t.Location()
	switch u {
	case Millisecond:
		return time.Date(y, mo, d, h, mi, s, t.Nanosecond()/1e6*1e6, loc)
	case Second:
		return time.Date(y, mo, d, h, mi, s, 0, loc)
	case Minute:
		return time.Date(y, mo, d, h, mi, 0, 0, loc)
	case Hour:
		return time.Date(y, mo, d, h, 0, 0, 0, loc)
	case Day:
		return time.Date(y, mo, d, 0, 0, 0, 0, loc)
	case Week:
		return time.Date(y, mo, d-int(t.Weekday()), 0, 0, 0, 0, loc)
	case Month:
		return time.Date(y, mo, 1, 0, 0, 0, 0, loc)
	}
	return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
}

func offset(t time.Time, u Unit, n int) time.Time {
	switch u {
	case Millisecond:
		return t.Add(time.Duration(n) * time.Millisecond)
	case Second:
		return t.Add(time.Duration(n) * time.Second)
	case Minute:
		return t.Add(time.Duration(n) * time.Minute)
	case Hour:
		return t.Add(time.Duration(n) * time.Hour)
	case Day:
		return t.AddDate(0, 0, n)
	case Week:
		return t.AddDate(0, 0, 7*n)
	case Month:
		return t.AddDate(0, n, 0)
	}
	return t.AddDate(n, 0, 0)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func (iv Interval) aligned(t time.Time) bool {
	if iv.Step <= 1 {
		return true
	}
	switch iv.Unit {
	case Second:
		return t.Second()%iv.Step == 0
	case Minute:
		return t.Minute()%iv.Step == 0
	case Hour:
		return t.Hour()%iv.Step == 0
	case Day:
		return (t.Day()-1)%iv.Step == 0
	case Month:
		return (int(t.Month())-1)%iv.Step == 0
	}
	return true
}

// Range returns every aligned instant in [start, stop].
func (iv Interval) Range(start, stop time.Time) []time.Time {
	var ticks []time.Time
	switch iv.Unit {
	case Millisecond:
		step := float64(iv.Step)
		first := math.Ceil(Millis(start)/step) * step
		for ms := first; ms <= Millis(stop); ms += step {
			ticks = append(ticks, FromMillis(ms, start.Location()))
		}
		return ticks
	case Year:
		y := start.Year()
		if !Floor(start, Year).Equal(start) {
			y++
		}
		y = -floorDiv(-y, iv.Step) * iv.Step
		for ; ; y += iv.Step {
			t := time.Date(y, time.January, 1, 0, 0, 0, 0, start.Location())
			if t.After(stop) {
				break
			}
			ticks = append(ticks, t)
		}
		return ticks
	}
	t := Floor(start, iv.Unit)
	if t.Before(start) {
		t = offset(t, iv.Unit, 1)
	}
	for ; !t.After(stop); t = offset(t, iv.Unit, 1) {
		if iv.aligned(t) {
			ticks = append(ticks, t)
		}
	}
	return ticks
}

// Granularity returns the coarsest unit at which consecutive ticks still
// differ. With fewer than two ticks it falls back to UnitOf.
func Granularity(ticks []time.Time) Unit {
	if len(ticks) < 2 {
		if len(ticks) == 1 {
			return UnitOf(ticks[0])
		}
		return Year
	}
	for u := Year; u >= Millisecond; u-- {
		distinct := true
		for i := 1; i < len(ticks); i++ {
			if Floor(ticks[i], u).Equal(Floor(ticks[i-1], u)) {
				distinct = false
				break
			}
		}
		if distinct {
			return u
		}
	}
	return Millisecond
}

// UnitOf returns the finest unit t is not aligned to.
func UnitOf(t time.Time) Unit {
	switch {
	case Floor(t, Second).Before(t):
		return Millisecond
	case Floor(t, Minute).Before(t):
		return Second
	case Floor(t, Hour).Before(t):
		return Minute
	case Floor(t, Day).Before(t):
		return Hour
	case Floor(t, Month).Before(t):
		if Floor(t, Week).Before(t) {
			return Day
		}
		return Week
	case Floor(t, Year).Before(t):
		return Month
	}
	return Year
}
