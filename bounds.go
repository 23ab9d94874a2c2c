package svgaxis

import (
	"math"
	"sort"

	"github.com/decibelcooper/svgaxis/render"
	"github.com/decibelcooper/svgaxis/scale"
)

func (g *geometry) assemble(ps *pass, labels []TickDatum, labelHeight float64) *Layout {
	cfg := g.cfg
	p := cfg.Padding
	o := cfg.Orient

	extent := 0.0
	for _, d := range labels {
		e := d.Height
		if d.Rotate || !g.horizontal {
			e = d.Width
		}
		extent = math.Max(extent, math.Ceil(e+d.Offset))
	}
	perp := extent
	if len(labels) > 0 {
		perp += p
	}

	margin := g.margin
	margin.set(o, margin.get(o)+g.hBuff)
	var opp float64
	if cfg.GridSize != nil {
		opp = math.Max(*cfg.GridSize, g.tBuff)
	} else {
		opp = math.Max(0, g.depth-margin.get(o)-perp-p)
	}
	margin.set(o.opposite(), opp)
	perp += opp + margin.get(o)

	var y float64
	switch cfg.Align {
	case AlignStart:
		y = p
	case AlignEnd:
		y = g.depth - perp - p
	default:
		y = g.depth/2 - perp/2
	}
	line := y + opp
	gridLength := -opp
	if o.flip() {
		line = y + perp - opp
		gridLength = opp
	}

	// Pinned ends keep their range, so a label reaching past one widens
	// the bounds instead.
	var grow [2]float64
	final := g.spill(labels)
	if g.pinned[0] && final[0] < 0 {
		grow[0] = -final[0]
	}
	if g.pinned[1] && final[1] > 0 {
		grow[1] = final[1]
	}
	along0 := g.outer[0] - grow[0]
	alongW := g.outer[1] - g.outer[0] + grow[0] + grow[1]
	bounds := Bounds{X: along0, Y: y, Width: alongW, Height: perp}
	if !g.horizontal {
		bounds = Bounds{X: y, Y: along0, Width: perp, Height: alongW}
	}

	lay := &Layout{
		Config:     cfg,
		Scale:      ps.scale,
		Range:      ps.rng,
		Outer:      g.outer,
		Bar:        g.bar(ps),
		Line:       line,
		GridLength: gridLength,
		Bounds:     bounds,
		Margin:     margin,
		dom:        g.dom,
		pass:       ps,
	}
	lay.Ticks = g.tickData(ps, labels, labelHeight, extent)
	lay.Grid = g.gridValues(ps)
	return lay
}

// tickData merges ticks and labels into sorted tick descriptors. Labels
// that are not ticks appear with no mark.
func (g *geometry) tickData(ps *pass, labels []TickDatum, labelHeight, labelWidth float64) []TickDatum {
	cfg := g.cfg
	sign := 1.0
	if cfg.Orient.flip() {
		sign = -1
	}
	rotated := false
	byValue := make(map[float64]int, len(labels))
	for i, d := range labels {
		byValue[d.Value.Num] = i
		rotated = rotated || d.Rotate
	}

	isTick := make(map[float64]bool, len(ps.ticks))
	values := append([]float64(nil), ps.ticks...)
	for _, v := range ps.ticks {
		isTick[v] = true
	}
	for _, d := range labels {
		if len(d.Lines) > 0 && !isTick[d.Value.Num] {
			values = append(values, d.Value.Num)
		}
	}

	out := make([]TickDatum, 0, len(values))
	for _, v := range values {
		td := TickDatum{Value: g.dom.value(v), Position: ps.pos(v), Tick: isTick[v]}
		i, labeled := byValue[v]
		if !labeled {
			td.Size = g.hBuff / 2 * sign
			out = append(out, td)
			continue
		}
		d := labels[i]
		td.Label = len(d.Lines) > 0
		td.Text, td.Lines = d.Text, d.Lines
		td.Width, td.Height, td.LineHeight = d.Width, d.Height, d.LineHeight
		td.Space, td.Truncated, td.Rotate = d.Space, d.Truncated, d.Rotate
		if cfg.LabelOffset {
			td.Offset = d.Offset
		}
		td.Size = (g.hBuff + td.Offset) * sign
		td.Box = g.labelBox(td, rotated, labelHeight, labelWidth)
		out = append(out, td)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// labelBox places a label relative to its tick anchor. Rotated boxes are
// given unrotated and turn about their centre.
func (g *geometry) labelBox(d TickDatum, rotated bool, labelHeight, labelWidth float64) render.Box {
	p := g.cfg.Padding
	o := g.cfg.Orient
	if rotated {
		block := d.LineHeight * float64(len(d.Lines))
		y := d.Size - 2*p - (d.Width+block)/2
		if o == Bottom {
			y = d.Size + p + (d.Width-block)/2
		}
		return render.Box{X: -d.Width/2 + g.cfg.labelStyle().Size/4, Y: y, Width: d.Width, Height: d.Height}
	}
	if g.horizontal {
		y := d.Size - p - labelHeight
		if o == Bottom {
			y = d.Size + p
		}
		return render.Box{X: -d.Space / 2, Y: y, Width: d.Space, Height: labelHeight}
	}
	x := d.Size + p
	if o == Left {
		x = -labelWidth - p + d.Size
	}
	return render.Box{X: x, Y: -d.Space / 2, Width: labelWidth, Height: d.Space}
}

func (g *geometry) gridValues(ps *pass) []float64 {
	cfg := g.cfg
	switch {
	case cfg.GridSize != nil && *cfg.GridSize == 0:
		return nil
	case cfg.Grid != nil:
		return ps.within(g.dom.values(cfg, cfg.Grid))
	case cfg.Scale == scale.Log && !cfg.GridLog:
		return ps.labels
	}
	return ps.ticks
}

// bar spans the domain. On band scales it reaches out to cover the outer
// padding of the first and last bands.
func (g *geometry) bar(ps *pass) [2]float64 {
	n := len(g.dom.categories)
	switch {
	case ps.band != nil && ps.band.Kind() == scale.Band:
		if n == 0 {
			return ps.rng
		}
		step, bw := ps.band.Step(), ps.band.Bandwidth()
		return [2]float64{ps.scale.Map(0) - (step - bw), ps.scale.Map(float64(n-1)) + step}
	case g.cfg.Scale.Discrete():
		if n == 0 {
			return ps.rng
		}
		return [2]float64{ps.scale.Map(0), ps.scale.Map(float64(n - 1))}
	}
	if split, ok := ps.scale.(*scale.Split); ok {
		d0, d1 := split.Domain()
		return [2]float64{split.Map(d0), split.Map(d1)}
	}
	return [2]float64{ps.scale.Map(g.dom.lo), ps.scale.Map(g.dom.hi)}
}

// titleBox centres the title in the outermost band of the axis, turned to
// read along vertical axes.
func (g *geometry) titleBox(lay *Layout, ps *pass, lines []string, titleMargin float64) *render.Title {
	if len(lines) == 0 {
		return nil
	}
	o := g.cfg.Orient
	b := lay.Bounds
	y, perp := b.Y, b.Height
	if !g.horizontal {
		y, perp = b.X, b.Width
	}
	band := y + perp - titleMargin
	if o.flip() {
		band = y
	}
	w := ps.rng[1] - ps.rng[0]
	t := &render.Title{Text: g.cfg.Title, Lines: lines}
	if g.horizontal {
		t.Box = render.Box{X: ps.rng[0], Y: band, Width: w, Height: titleMargin}
		return t
	}
	cx, cy := band+titleMargin/2, ps.rng[0]+w/2
	t.Box = render.Box{X: cx - w/2, Y: cy - titleMargin/2, Width: w, Height: titleMargin}
	t.Rotate = 90
	if o == Left {
		t.Rotate = -90
	}
	return t
}
