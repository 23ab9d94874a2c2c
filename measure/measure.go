// Package measure wraps label text into a width/height budget and reports
// the pixel size of each resulting line.
package measure

import (
	"math"
	"strings"
)

// DefaultLineHeight is the line height used when a request leaves it unset,
// as a multiple of the font size.
const DefaultLineHeight = 1.2

type Request struct {
	Text       string
	Family     string
	Size       float64
	LineHeight float64
	Width      float64
	Height     float64
}

type Result struct {
	Lines      []string
	Widths     []float64
	Truncated  bool
	LineHeight float64
}

// A Measurer wraps text into the budget of a Request.
type Measurer interface {
	Measure(r Request) Result
}

// Metrics reports the advance width of a single line of text.
type Metrics interface {
	Width(s, family string, size float64) float64
}

// Wrapper breaks text greedily on whitespace. Lines are added while the
// height budget allows; a word wider than the budget, or a line that does
// not fit vertically, stops wrapping and marks the result truncated.
type Wrapper struct {
	Metrics Metrics
}

func (w Wrapper) Measure(r Request) Result {
	lh := r.LineHeight
	if lh <= 0 {
		lh = r.Size * DefaultLineHeight
	}
	res := Result{LineHeight: lh}
	maxLines := 0
	if lh > 0 {
		maxLines = int(math.Floor(r.Height/lh + 1e-9))
	}

	width := func(s string) float64 { return w.Metrics.Width(s, r.Family, r.Size) }
	fits := func(s string) bool { return width(s) <= r.Width+1e-9 }

wrap:
	for p, para := range strings.Split(r.Text, "\n") {
		words := strings.Fields(para)
		for i, word := range words {
			if len(res.Lines) == 0 || i == 0 && p > 0 {
				if len(res.Lines) >= maxLines || !fits(word) {
					res.Truncated = true
					break wrap
				}
				res.Lines = append(res.Lines, word)
				continue
			}
			last := len(res.Lines) - 1
			if candidate := res.Lines[last] + " " + word; fits(candidate) {
				res.Lines[last] = candidate
				continue
			}
			if len(res.Lines) >= maxLines || !fits(word) {
				res.Truncated = true
				break wrap
			}
			res.Lines = append(res.Lines, word)
		}
	}

	res.Widths = make([]float64, len(res.Lines))
	for i, l := range res.Lines {
		res.Widths[i] = width(l)
	}
	return res
}
