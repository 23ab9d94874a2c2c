package svgaxis

import (
	"math"
	"time"

	"github.com/decibelcooper/svgaxis/measure"
	"github.com/decibelcooper/svgaxis/render"
	"github.com/decibelcooper/svgaxis/scale"
)

const labelLineHeight = 1.4

// formatter returns the label text function for one pass.
func (g *geometry) formatter(ps *pass) func(float64) string {
	cfg := g.cfg
	if cfg.TickFormat != nil {
		return func(v float64) string { return cfg.TickFormat(g.dom.value(v)) }
	}
	switch {
	case cfg.Scale == scale.Log:
		return FormatLog
	case cfg.Scale == scale.Time:
		times := make([]time.Time, len(ps.labels))
		for i, v := range ps.labels {
			times[i] = scale.FromMillis(v, cfg.Location)
		}
		unit := scale.Granularity(times)
		return func(v float64) string {
			s, err := FormatTime(scale.FromMillis(v, cfg.Location), unit)
			if err != nil {
				return ""
			}
			return s
		}
	case cfg.Scale.Discrete():
		return func(v float64) string { return g.dom.value(v).Category }
	}

	prec := 0
	if len(ps.labels) > 1 {
		step := math.Abs(scale.TickStep(g.dom.lo, g.dom.hi, len(ps.labels)-1))
		if step > 0 && !math.IsInf(step, 0) {
			prec = int(math.Max(0, -math.Floor(math.Log10(step))))
		}
	}
	if cfg.Scale == scale.Linear && cfg.TickSuffix == SuffixSmallest {
		unit := smallestUnit(ps.labels)
		return func(v float64) string { return g.locale.Smallest(round(v, prec), unit) }
	}
	return func(v float64) string { return g.locale.Abbreviate(round(v, prec)) }
}

func (c Config) labelStyle() render.TextStyle {
	st := c.ShapeStyle.Label
	if st.LineHeight == 0 {
		st.LineHeight = st.Size * labelLineHeight
	}
	return st
}

func (c Config) titleStyle() render.TextStyle {
	st := c.TitleStyle
	if st.Size == 0 {
		st.Size = 12
	}
	if st.LineHeight == 0 {
		st.LineHeight = st.Size * measure.DefaultLineHeight
	}
	return st
}

// labels formats and measures every label of ps. diff is how many
// neighbours away the spacing is taken from.
func (g *geometry) labels(ps *pass, rotate bool, diff int) []TickDatum {
	format := g.formatter(ps)
	st := g.cfg.labelStyle()
	out := make([]TickDatum, len(ps.labels))
	for i, v := range ps.labels {
		out[i] = TickDatum{
			Value:      g.dom.value(v),
			Position:   ps.pos(v),
			Label:      true,
			Text:       format(v),
			LineHeight: st.LineHeight,
			Rotate:     rotate,
		}
	}
	for i := range out {
		out[i].Space = g.space(ps, out, i, diff)
		g.measure(&out[i])
	}
	return out
}

// space is the room a label has along the axis: the bandwidth on band
// scales, otherwise twice the distance to the nearer midpoint between it
// and the labels diff places either side.
func (g *geometry) space(ps *pass, labels []TickDatum, i, diff int) float64 {
	if ps.band != nil && ps.band.Kind() == scale.Band {
		return ps.band.Bandwidth()
	}
	x := labels[i].Position
	prev, next := g.outer[0], g.outer[1]
	if i-diff >= 0 {
		prev = x - (x-labels[i-diff].Position)/2
	}
	if i+diff < len(labels) {
		next = x - (x-labels[i+diff].Position)/2
	}
	return math.Min(math.Abs(x-prev), math.Abs(x-next)) * 2
}

// budget is the room labels have across the axis.
func (g *geometry) budget() float64 {
	depth := g.depth
	if g.cfg.MaxSize != nil && *g.cfg.MaxSize < depth {
		depth = *g.cfg.MaxSize
	}
	b := depth - g.hBuff - g.cfg.Padding
	if g.horizontal {
		return b - g.margin.Top - g.margin.Bottom
	}
	return b - g.margin.Left - g.margin.Right
}

func even(v float64) float64 {
	if math.Mod(v, 2) != 0 {
		v++
	}
	return v
}

func (g *geometry) measure(d *TickDatum) {
	w, h := d.Space, g.budget()
	if !g.horizontal {
		w, h = h, w
	}
	if d.Rotate {
		w, h = h, w
	}
	st := g.cfg.labelStyle()
	res := g.measurer.Measure(measure.Request{
		Text:       d.Text,
		Family:     st.Family,
		Size:       st.Size,
		LineHeight: d.LineHeight,
		Width:      w,
		Height:     h,
	})

	d.Lines = d.Lines[:0]
	widest := 0.0
	for i, line := range res.Lines {
		if line == "" {
			continue
		}
		d.Lines = append(d.Lines, line)
		if i < len(res.Widths) {
			widest = math.Max(widest, res.Widths[i])
		}
	}
	d.Truncated = res.Truncated
	d.Width, d.Height = 0, 0
	if len(d.Lines) > 0 {
		d.Width = even(math.Ceil(math.Ceil(widest) + st.Size/4))
		d.Height = even(math.Ceil(math.Ceil(float64(len(d.Lines))*d.LineHeight) + st.Size/4))
	}
}

func (g *geometry) rotateFirst(labels []TickDatum) bool {
	switch g.cfg.LabelRotation {
	case RotationOn:
		return true
	case RotationOff:
		return false
	}
	if !g.horizontal {
		return false
	}
	for _, d := range labels {
		if d.Truncated {
			return true
		}
	}
	return false
}

// collides reports a truncated label, or a label overlapping its
// predecessor by more than the collision threshold.
func (g *geometry) collides(labels []TickDatum) bool {
	for i, d := range labels {
		if d.Truncated {
			return true
		}
		if i == 0 {
			continue
		}
		prev := labels[i-1]
		if prev.Position+prev.Width/2-(d.Position-d.Width/2) > g.cfg.CollisionThreshold {
			return true
		}
	}
	return false
}

// spill is how far the first and last labels reach past the outer range,
// negative at the start and positive at the end when they overflow.
func (g *geometry) spill(labels []TickDatum) [2]float64 {
	var s [2]float64
	if len(labels) == 0 {
		return s
	}
	half := func(d TickDatum) float64 {
		if d.Rotate || !g.horizontal {
			return d.Height / 2
		}
		return d.Width / 2
	}
	first, last := labels[0], labels[len(labels)-1]
	s[0] = first.Position - half(first) - g.outer[0]
	s[1] = last.Position + half(last) - g.outer[1]
	return s
}

// stagger alternates overlapping neighbours between two tiers. A label
// that clears its predecessor goes back to the first tier. Every moved
// label takes the largest offset needed.
func (g *geometry) stagger(labels []TickDatum) {
	along := func(d TickDatum) float64 {
		if g.horizontal {
			return d.Width
		}
		return d.Height
	}
	across := func(d TickDatum) float64 {
		if g.horizontal {
			return d.Height
		}
		return d.Width
	}
	prev := -1
	raised := false
	var moved []int
	offset := 0.0
	for i, d := range labels {
		if len(d.Lines) == 0 {
			continue
		}
		if prev >= 0 {
			p := labels[prev]
			if p.Position+along(p)/2 > d.Position-along(d)/2 {
				raised = !raised
			} else {
				raised = false
			}
			if raised {
				moved = append(moved, i)
				offset = math.Max(offset, across(p))
			}
		}
		prev = i
	}
	for _, i := range moved {
		labels[i].Offset = offset
	}
}

// title wraps the title into the fitted range and returns its lines and
// the margin they take up.
func (g *geometry) title(rng [2]float64) ([]string, float64) {
	if g.cfg.Title == "" {
		return nil, 0
	}
	st := g.cfg.titleStyle()
	p := g.cfg.Padding
	res := g.measurer.Measure(measure.Request{
		Text:       g.cfg.Title,
		Family:     st.Family,
		Size:       st.Size,
		LineHeight: st.LineHeight,
		Width:      rng[1] - rng[0] - 2*p,
		Height:     g.depth - g.cfg.TickSize - 2*p,
	})
	var lines []string
	for _, l := range res.Lines {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines, float64(len(lines))*st.LineHeight + p
}
