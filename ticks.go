package svgaxis

import (
	"math"

	"gonum.org/v1/plot"

	"github.com/decibelcooper/svgaxis/measure"
	"github.com/decibelcooper/svgaxis/scale"
)

// Ticker is a plot.Ticker that lays out an axis from Config over the plot
// range. Labelled ticks come back as major ticks and the rest as minor
// ones. A Config without a size lays out a 400px axis of its scale kind.
type Ticker struct {
	Config   Config
	Measurer measure.Measurer
}

func (t Ticker) Ticks(min, max float64) []plot.Tick {
	base := t.Config
	if base.Width == 0 && base.Height == 0 {
		kind := base.Scale
		base = defaultConfig()
		base.Scale = kind
	}
	if !base.Scale.Continuous() || base.Scale == scale.Time {
		return plot.DefaultTicks{}.Ticks(min, max)
	}
	cfg, err := base.Builder().Domain(min, max).Build()
	if err != nil {
		return plot.DefaultTicks{}.Ticks(min, max)
	}
	m := t.Measurer
	if m == nil {
		m = measure.NewFixedMeasurer()
	}
	lay, err := Compute(cfg, m)
	if err != nil {
		return plot.DefaultTicks{}.Ticks(min, max)
	}

	var ticks []plot.Tick
	for _, td := range lay.Ticks {
		tick := plot.Tick{Value: td.Value.Num}
		if td.Label {
			tick.Label = td.Text
		}
		ticks = append(ticks, tick)
	}
	return ticks
}

type LogTicks struct {
	Measurer measure.Measurer
}

func (t LogTicks) Ticks(min, max float64) []plot.Tick {
	cfg := defaultConfig()
	cfg.Scale = scale.Log
	return Ticker{Config: cfg, Measurer: t.Measurer}.Ticks(min, max)
}

// LogScale is a plot.Normalizer for log axes whose range may include zero
// or negative values, split the way scale.NewLog splits them.
type LogScale struct{}

func (LogScale) Normalize(min, max, x float64) float64 {
	if max <= min {
		return 0.5
	}
	return scale.NewLog(min, max, 0, 1, nil).Map(x)
}

func round(x float64, prec int) float64 {
	if x == 0 {
		// Make sure zero is returned
		// without the negative bit set.
		return 0
	}
	// Fast path for positive precision on integers.
	if prec >= 0 && x == math.Trunc(x) {
		return x
	}
	pow := math.Pow10(prec)
	intermed := x * pow
	if math.IsInf(intermed, 0) {
		return x
	}
	if x < 0 {
		x = math.Ceil(intermed - 0.5)
	} else {
		x = math.Floor(intermed + 0.5)
	}

	if x == 0 {
		return 0
	}

	return x / pow
}
