package measure

import (
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// FixedMetrics gives every cell the advance of basicfont's 7x13 face,
// scaled from its 13px height to the requested size. East Asian wide
// runes take two cells. Output is the same on every machine, which makes
// it the measurer of choice in tests.
type FixedMetrics struct{}

var cellAdvance = float64(font.MeasureString(basicfont.Face7x13, "0")) / 64

const cellHeight = 13.0

func (FixedMetrics) Width(s, _ string, size float64) float64 {
	return float64(runewidth.StringWidth(s)) * cellAdvance * size / cellHeight
}

// NewFixedMeasurer returns a Measurer backed by FixedMetrics.
func NewFixedMeasurer() Measurer {
	return Wrapper{Metrics: FixedMetrics{}}
}
