package svgaxis

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/decibelcooper/svgaxis/measure"
	"github.com/decibelcooper/svgaxis/render"
	"github.com/decibelcooper/svgaxis/scale"
)

// TickDatum is one tick and/or label of a laid out axis. Position is
// along the axis; Box is relative to the tick anchor.
type TickDatum struct {
	Value      Value
	Position   float64
	Tick       bool
	Label      bool
	Size       float64
	Text       string
	Lines      []string
	Width      float64
	Height     float64
	LineHeight float64
	Space      float64
	Truncated  bool
	Rotate     bool
	Offset     float64
	Box        render.Box
}

type Bounds struct {
	X, Y, Width, Height float64
}

type Margin struct {
	Top, Right, Bottom, Left float64
}

func (m Margin) get(o Orient) float64 {
	switch o {
	case Top:
		return m.Top
	case Left:
		return m.Left
	case Right:
		return m.Right
	}
	return m.Bottom
}

func (m *Margin) set(o Orient, v float64) {
	switch o {
	case Top:
		m.Top = v
	case Left:
		m.Left = v
	case Right:
		m.Right = v
	default:
		m.Bottom = v
	}
}

// Layout is the result of fitting a Config into its container.
type Layout struct {
	Config Config
	Scale  scale.Scale
	// Range is the fitted pixel range; Outer the container range less
	// padding.
	Range [2]float64
	Outer [2]float64

	Ticks []TickDatum
	Grid  []float64
	// Bar holds the along-axis ends of the axis bar, Line its
	// perpendicular coordinate and GridLength the signed length of grid
	// lines drawn from it.
	Bar        [2]float64
	Line       float64
	GridLength float64

	Rotated bool
	Refit   bool
	Spill   [2]float64

	Bounds Bounds
	Margin Margin
	Title  *render.Title

	dom  domain
	pass *pass
}

// Position maps a scale domain value to its pixel position along the axis.
func (l *Layout) Position(v float64) float64 { return l.pass.pos(v) }

func (l *Layout) Horizontal() bool { return l.Config.Orient.Horizontal() }

// geometry holds what stays fixed while an axis is fitted.
type geometry struct {
	cfg      Config
	dom      domain
	locale   Locale
	measurer measure.Measurer

	horizontal bool
	length     float64
	depth      float64
	outer      [2]float64
	minR, maxR float64
	pinned     [2]bool
	hBuff      float64
	tBuff      float64
	margin     Margin
}

func newGeometry(cfg Config, dom domain, loc Locale, m measure.Measurer) *geometry {
	g := &geometry{cfg: cfg, dom: dom, locale: loc, measurer: m, horizontal: cfg.Orient.Horizontal()}
	g.length, g.depth = cfg.Width, cfg.Height
	if !g.horizontal {
		g.length, g.depth = cfg.Height, cfg.Width
	}
	p := cfg.Padding
	g.outer = [2]float64{p, g.length - p}
	g.minR, g.maxR = g.outer[0], g.outer[1]
	if cfg.RangeStart != nil {
		g.minR, g.pinned[0] = *cfg.RangeStart, true
	}
	if cfg.RangeEnd != nil {
		g.maxR, g.pinned[1] = *cfg.RangeEnd, true
	}

	st := cfg.ShapeStyle
	switch cfg.Shape {
	case render.Circle:
		g.hBuff = st.Radius
	case render.Rect:
		g.hBuff = st.Height / 2
		if !g.horizontal {
			g.hBuff = st.Width / 2
		}
	default:
		g.hBuff = cfg.TickSize
	}
	if cfg.Shape != render.Line {
		g.tBuff = g.hBuff
	}
	return g
}

// pass is one build of the scale with its tick and label values, sorted
// by position.
type pass struct {
	scale  scale.Scale
	band   *scale.BandScale
	rng    [2]float64
	ticks  []float64
	labels []float64
}

// pos centres band values in their band.
func (p *pass) pos(v float64) float64 {
	x := p.scale.Map(v)
	if p.band != nil && p.band.Kind() == scale.Band {
		x += p.band.Bandwidth() / 2
	}
	return x
}

// within drops values that map outside the pass's range, allowing half a
// pixel for rounding.
func (p *pass) within(vs []float64) []float64 {
	lo, hi := math.Min(p.rng[0], p.rng[1])-0.5, math.Max(p.rng[0], p.rng[1])+0.5
	out := vs[:0:0]
	for _, v := range vs {
		if x := p.pos(v); x >= lo && x <= hi {
			out = append(out, v)
		}
	}
	return out
}

// pass builds the scale over fit, or over the full range when fit is nil.
// The first build pads continuous ranges by half a label bucket and
// spreads ordinal categories over bucket centres.
func (g *geometry) pass(fit *[2]float64) (*pass, error) {
	cfg, dom := g.cfg, g.dom
	rng := [2]float64{g.minR, g.maxR}
	if fit != nil {
		rng = *fit
		rng[0] = math.Max(rng[0], g.minR)
		rng[1] = math.Min(rng[1], g.maxR)
	}
	sizeInner := g.maxR - g.minR
	n := len(dom.categories)

	var positions []float64
	switch {
	case cfg.Scale == scale.Ordinal && n > 2:
		if fit == nil {
			positions = scale.BucketCentres(n, rng[0], rng[1])
		} else {
			positions = scale.Endpoints(n, rng[0], rng[1])
		}
	case fit == nil:
		var buckets []float64
		if cfg.Labels != nil {
			buckets = dom.values(cfg, cfg.Labels)
		} else if cfg.Scale.Continuous() {
			buckets = scale.LinearTicks(dom.lo, dom.hi, scale.TickCount(sizeInner))
		}
		if k := len(buckets); k > 0 {
			pad := math.Ceil(sizeInner / float64(k) / 2)
			rng = [2]float64{rng[0] + pad, rng[1] - pad}
		}
	}

	ps := &pass{rng: rng}
	switch k := cfg.Scale; k {
	case scale.Linear, scale.Sqrt, scale.Pow:
		c, err := scale.NewContinuous(k, dom.lo, dom.hi, rng[0], rng[1])
		if err != nil {
			return nil, errors.Wrap(err, "building scale")
		}
		if k == scale.Pow && cfg.Exponent != 0 {
			c.Exponent(cfg.Exponent)
		}
		ps.scale = c.Round(true)
	case scale.Log:
		ps.scale = scale.NewLog(dom.lo, dom.hi, rng[0], rng[1], dom.data).Round(true)
	case scale.Time:
		loc := cfg.Location
		ts := scale.NewTime(scale.FromMillis(dom.lo, loc), scale.FromMillis(dom.hi, loc), rng[0], rng[1], loc).MinGap(dom.times)
		ts.Round(true)
		ps.scale = ts
	case scale.Band:
		ps.band = scale.NewBand(n, rng[0], rng[1], cfg.PaddingInner, cfg.PaddingOuter).Round(true)
		ps.scale = ps.band
	case scale.Point:
		ps.band = scale.NewPoint(n, rng[0], rng[1]).Round(true)
		ps.scale = ps.band
	case scale.Ordinal:
		if positions == nil {
			positions = rng[:n]
		}
		ps.scale = scale.NewOrdinal(n, positions)
	default:
		return nil, errors.Wrapf(ErrUnknownScale, "kind %d", int(k))
	}

	if cfg.Ticks != nil {
		ps.ticks = dom.values(cfg, cfg.Ticks)
	} else {
		ps.ticks = ps.scale.Ticks()
	}
	switch {
	case cfg.Labels != nil:
		ps.labels = dom.values(cfg, cfg.Labels)
	case cfg.Scale.Continuous():
		ps.labels = ps.scale.Ticks()
	default:
		ps.labels = append([]float64(nil), ps.ticks...)
	}
	if cfg.Scale == scale.Log && cfg.Labels == nil {
		ps.labels = g.logLabels(ps)
	}

	byPosition := func(vs []float64) {
		sort.SliceStable(vs, func(i, j int) bool { return ps.pos(vs[i]) < ps.pos(vs[j]) })
	}
	byPosition(ps.ticks)
	byPosition(ps.labels)
	if cfg.Ticks != nil {
		ps.ticks = ps.within(ps.ticks)
	}
	if cfg.Labels != nil {
		ps.labels = ps.within(ps.labels)
	}
	ps.ticks = g.thin(ps)
	return ps, nil
}

// logLabels keeps the powers of ten, falling back to multiples of five
// and values ending in 1 when fewer than three remain. A domain straddling
// zero beyond ±10 would show 1 twice around the zero point, so -1 goes.
func (g *geometry) logLabels(ps *pass) []float64 {
	var out []float64
	for _, v := range ps.labels {
		if scale.LeadingDigit(math.Abs(v)) == '1' {
			out = append(out, v)
		}
	}
	if len(out) < 3 {
		out = nil
		for _, v := range ps.ticks {
			s := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
			if math.Mod(v, 5) == 0 || strings.HasSuffix(s, "1") {
				out = append(out, v)
			}
		}
	}
	split, ok := ps.scale.(*scale.Split)
	if !ok || !split.Straddles() || math.Max(math.Abs(g.dom.lo), math.Abs(g.dom.hi)) <= 10 {
		return out
	}
	kept := out[:0]
	for _, v := range out {
		if v != -1 {
			kept = append(kept, v)
		}
	}
	return kept
}

// tickSpacing is the footprint of one tick mark along the axis.
func (g *geometry) tickSpacing() float64 {
	st := g.cfg.ShapeStyle
	switch g.cfg.Shape {
	case render.Circle:
		return st.Radius * 2
	case render.Rect:
		if g.horizontal {
			return st.Width
		}
		return st.Height
	}
	return st.StrokeWidth
}

// thin drops ticks within twice the tick footprint of a kept tick.
func (g *geometry) thin(ps *pass) []float64 {
	s := g.tickSpacing()
	var kept, out []float64
	for _, v := range ps.ticks {
		x := ps.pos(v)
		if math.IsNaN(x) {
			continue
		}
		if len(kept) == 0 || math.Abs(closest(x, kept)-x) > 2*s {
			kept = append(kept, x)
			out = append(out, v)
		}
	}
	return out
}

func closest(x float64, xs []float64) float64 {
	best := xs[0]
	for _, v := range xs[1:] {
		if math.Abs(v-x) < math.Abs(best-x) {
			best = v
		}
	}
	return best
}

// Compute fits cfg into its container. It is a pure function of the
// configuration and the measurer.
func Compute(cfg Config, m measure.Measurer) (*Layout, error) {
	dom, err := resolveDomain(cfg)
	if err != nil {
		return nil, err
	}
	loc, err := LookupLocale(cfg.Locale)
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = measure.NewFontMeasurer()
	}
	g := newGeometry(cfg, dom, loc, m)

	ps, err := g.pass(nil)
	if err != nil {
		return nil, err
	}
	titleLines, titleMargin := g.title(ps.rng)
	g.margin.set(cfg.Orient, titleMargin)

	labels := g.labels(ps, false, 1)
	rotate := g.rotateFirst(labels)
	if rotate {
		labels = g.labels(ps, true, 1)
	}

	refit := false
	spill := g.spill(labels)
	fit := [2]float64{ps.rng[0] - spill[0], ps.rng[1] - spill[1]}
	if g.pinned[0] {
		fit[0] = *cfg.RangeStart
	}
	if g.pinned[1] {
		fit[1] = *cfg.RangeEnd
	}
	if fit != ps.rng {
		if ps, err = g.pass(&fit); err != nil {
			return nil, err
		}
		labels = g.labels(ps, rotate, 1)
		refit = true
	}

	labelHeight := 0.0
	for _, d := range labels {
		labelHeight = math.Max(labelHeight, d.Height)
	}
	if cfg.LabelRotation == RotationAuto && g.horizontal && !rotate && g.collides(labels) {
		rotate = true
		labels = g.labels(ps, true, 2)
	}
	if !rotate && cfg.LabelOffset {
		g.stagger(labels)
	}

	lay := g.assemble(ps, labels, labelHeight)
	lay.Rotated = rotate
	lay.Refit = refit
	lay.Spill = spill
	lay.Title = g.titleBox(lay, ps, titleLines, titleMargin)
	return lay, nil
}
