package svgaxis

import (
	"github.com/decibelcooper/svgaxis/render"
)

// point turns an along/across pair into container coordinates.
func (l *Layout) point(along, across float64) (x, y float64) {
	if l.Horizontal() {
		return along, across
	}
	return across, along
}

// categoryIndex finds a category of l's domain by name.
func (l *Layout) categoryIndex(name string) (float64, bool) {
	for i, c := range l.dom.categories {
		if c == name {
			return float64(i), true
		}
	}
	return 0, false
}

// positionOf places a value of another layout's domain on l's scale. ok is
// false when l has no place for it.
func (l *Layout) positionOf(v Value, discrete bool) (float64, bool) {
	if discrete {
		i, ok := l.categoryIndex(v.Category)
		if !ok {
			return 0, false
		}
		return l.pass.pos(i), true
	}
	return l.pass.pos(v.Num), true
}

func (l *Layout) tickKeys() map[string]bool {
	keys := make(map[string]bool, len(l.Ticks))
	for _, t := range l.Ticks {
		keys[l.dom.key(t.Value.Num)] = true
	}
	return keys
}

// Frame describes l for a renderer. Given the previously rendered layout,
// ticks and gridlines carry where they move from and those no longer
// present come back as exiting.
func (l *Layout) Frame(id string, prev *Layout) render.Frame {
	cfg := l.Config
	discrete := cfg.Scale.Discrete()
	horizontal := l.Horizontal()

	label := cfg.labelStyle()
	shape := cfg.ShapeStyle
	shape.Label = label
	title := cfg.titleStyle()

	f := render.Frame{
		ID:         id,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Orient:     cfg.Orient.String(),
		Horizontal: horizontal,
		Bounds:     render.Box(l.Bounds),
		Clip:       render.Box(l.Bounds),
		Duration:   cfg.Duration,
		Shape:      cfg.Shape,
		ShapeStyle: shape,
		GridStyle:  cfg.GridStyle,
		BarStyle:   cfg.BarStyle,
		Title:      l.Title,
		TitleStyle: title,
	}

	var prevKeys map[string]bool
	if prev != nil {
		prevKeys = prev.tickKeys()
	}
	from := func(v Value, x float64) float64 {
		if prev == nil {
			return x
		}
		if px, ok := prev.positionOf(v, discrete); ok {
			return px
		}
		return x
	}

	anchor, valign := l.labelAlign()
	current := make(map[string]bool, len(l.Ticks))
	for _, td := range l.Ticks {
		key := l.dom.key(td.Value.Num)
		current[key] = true
		t := l.tick(key, td, anchor, valign)
		t.PrevX, t.PrevY = l.point(from(td.Value, td.Position), l.Line)
		t.Entering = !prevKeys[key]
		f.Ticks = append(f.Ticks, t)
	}
	if prev != nil {
		panchor, pvalign := prev.labelAlign()
		for _, td := range prev.Ticks {
			key := prev.dom.key(td.Value.Num)
			if current[key] {
				continue
			}
			t := prev.tick(key, td, panchor, pvalign)
			if x, ok := l.positionOf(td.Value, discrete); ok {
				t.X, t.Y = l.point(x, l.Line)
			}
			t.PrevX, t.PrevY = t.X, t.Y
			f.Exiting = append(f.Exiting, t)
		}
	}

	f.Grid, f.GridExiting = l.gridSegments(prev, discrete)

	x1, y1 := l.point(l.Bar[0], l.Line)
	x2, y2 := l.point(l.Bar[1], l.Line)
	f.Bar = render.Segment{Key: "bar", X1: x1, Y1: y1, X2: x2, Y2: y2, Prev: [4]float64{x1, y1, x2, y2}}
	if prev != nil {
		px1, py1 := prev.point(prev.Bar[0], prev.Line)
		px2, py2 := prev.point(prev.Bar[1], prev.Line)
		f.Bar.Prev = [4]float64{px1, py1, px2, py2}
	}
	return f
}

func (l *Layout) labelAlign() (anchor, valign string) {
	switch l.Config.Orient {
	case Left:
		return "end", "middle"
	case Right:
		return "start", "middle"
	case Top:
		if l.Rotated {
			return "start", "bottom"
		}
		return "middle", "bottom"
	}
	if l.Rotated {
		return "end", "top"
	}
	return "middle", "top"
}

func (l *Layout) tick(key string, td TickDatum, anchor, valign string) render.Tick {
	x, y := l.point(td.Position, l.Line)
	t := render.Tick{
		Key:           key,
		X:             x,
		Y:             y,
		PrevX:         x,
		PrevY:         y,
		Mark:          td.Tick,
		Size:          td.Size,
		Rotate:        td.Rotate,
		Anchor:        anchor,
		VerticalAlign: valign,
	}
	if td.Label {
		t.Text = td.Text
		t.Lines = append([]string(nil), td.Lines...)
		t.LineHeight = td.LineHeight
		t.LabelBox = td.Box
	}
	return t
}

func (l *Layout) gridSegment(x float64) [4]float64 {
	x1, y1 := l.point(x, l.Line)
	x2, y2 := l.point(x, l.Line+l.GridLength)
	return [4]float64{x1, y1, x2, y2}
}

func segment(key string, c [4]float64) render.Segment {
	return render.Segment{Key: key, X1: c[0], Y1: c[1], X2: c[2], Y2: c[3], Prev: c}
}

// gridSegments returns the current gridlines and those leaving since prev.
// New gridlines grow out of the bar where prev would have placed them.
func (l *Layout) gridSegments(prev *Layout, discrete bool) (grid, exiting []render.Segment) {
	prevGrid := map[string]bool{}
	if prev != nil {
		for _, v := range prev.Grid {
			prevGrid[prev.dom.key(v)] = true
		}
	}
	current := make(map[string]bool, len(l.Grid))
	for _, v := range l.Grid {
		val := l.dom.value(v)
		key := l.dom.key(v)
		current[key] = true
		s := segment(key, l.gridSegment(l.pass.pos(v)))
		if prev == nil {
			s.Entering = true
			grid = append(grid, s)
			continue
		}
		px, ok := prev.positionOf(val, discrete)
		if !ok {
			px = l.pass.pos(v)
		}
		if prevGrid[key] {
			s.Prev = prev.gridSegment(px)
		} else {
			s.Entering = true
			x, y := l.point(px, l.Line)
			s.Prev = [4]float64{x, y, x, y}
		}
		grid = append(grid, s)
	}
	if prev == nil {
		return grid, nil
	}
	for _, v := range prev.Grid {
		key := prev.dom.key(v)
		if current[key] {
			continue
		}
		x := prev.pass.pos(v)
		if nx, ok := l.positionOf(prev.dom.value(v), discrete); ok {
			x = nx
		}
		exiting = append(exiting, segment(key, l.gridSegment(x)))
	}
	return grid, exiting
}
