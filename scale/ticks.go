package scale

import (
	"math"
	"strconv"
)

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickSpec returns the integer bounds i1..i2 and increment of a nice tick
// run covering [start, stop]. A negative increment means the step is the
// reciprocal of -inc, which keeps decimal ticks exact.
func tickSpec(start, stop float64, count float64) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, count)
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}
	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = math.Round(start * inc)
		i2 = math.Round(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = math.Round(start / inc)
		i2 = math.Round(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}
	if i2 < i1 && 0.5 <= count && count < 2 {
		return tickSpec(start, stop, count*2)
	}
	return i1, i2, inc
}

// LinearTicks returns roughly count uniformly spaced, human friendly values
// between start and stop inclusive, in the order of the bounds.
func LinearTicks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	i1, i2, inc := tickSpec(start, stop, float64(count))
	if !(i2 >= i1) || math.IsInf(inc, 0) || inc == 0 {
		return nil
	}
	n := int(i2-i1) + 1
	ticks := make([]float64, n)
	for i := 0; i < n; i++ {
		var k float64
		if reverse {
			k = i2 - float64(i)
		} else {
			k = i1 + float64(i)
		}
		if inc < 0 {
			ticks[i] = k / -inc
		} else {
			ticks[i] = k * inc
		}
	}
	return ticks
}

// TickStep is the distance between adjacent LinearTicks values.
func TickStep(start, stop float64, count int) float64 {
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	_, _, inc := tickSpec(start, stop, float64(count))
	step := inc
	if inc < 0 {
		step = 1 / -inc
	}
	if reverse {
		return -step
	}
	return step
}

// TickCount is the default number of ticks for a range of the given pixel
// length. Spacing grows on a square root curve from 10px at 10px to 50px at
// 400px, so longer axes get fewer ticks per pixel.
func TickCount(size float64) int {
	size = math.Abs(size)
	const lo, hi = 10.0, 400.0
	var spacing float64
	switch {
	case size <= lo:
		spacing = 10
	case size >= hi:
		spacing = 50
	default:
		t := (math.Sqrt(size) - math.Sqrt(lo)) / (math.Sqrt(hi) - math.Sqrt(lo))
		spacing = 10 + t*40
	}
	return int(math.Floor(size / spacing))
}

// logTicks returns ticks for a positive log domain u <= v.
func logTicks(u, v float64, count int) []float64 {
	if count <= 0 || u <= 0 || v <= 0 {
		return nil
	}
	i, j := math.Log10(u), math.Log10(v)
	var z []float64
	if j-i < float64(count) {
		for p := math.Floor(i); p <= math.Ceil(j); p++ {
			for k := 1.0; k < 10; k++ {
				var t float64
				if p < 0 {
					t = k / math.Pow(10, -p)
				} else {
					t = k * math.Pow(10, p)
				}
				if t < u {
					continue
				}
				if t > v {
					break
				}
				z = append(z, t)
			}
		}
		if len(z)*2 < count {
			z = LinearTicks(u, v, count)
		}
		return z
	}
	n := int(math.Min(j-i, float64(count)))
	for _, e := range LinearTicks(i, j, n) {
		z = append(z, math.Pow(10, e))
	}
	return z
}

// LeadingDigit returns the first significant digit of |v|.
func LeadingDigit(v float64) byte {
	s := strconv.FormatFloat(math.Abs(v), 'e', -1, 64)
	return s[0]
}
