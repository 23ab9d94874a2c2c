// Package vgrender draws the settled state of an axis frame onto a gonum
// vg canvas, so axes can be exported as PNG, PDF or EPS through the vg
// backends. Frame pixels are taken as points.
package vgrender

import (
	"context"
	"image/color"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/decibelcooper/svgaxis/measure"
	"github.com/decibelcooper/svgaxis/render"
)

type Renderer struct {
	Canvas draw.Canvas
	fonts  *font.Cache
}

func New(c draw.Canvas) *Renderer {
	return &Renderer{Canvas: c, fonts: font.NewCache(liberation.Collection())}
}

func (r *Renderer) Render(ctx context.Context, f render.Frame) error {
	d := drawer{c: &r.Canvas, f: f, fonts: r.fonts}
	steps := []func() error{d.grid, d.bar, d.ticks, d.title}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

type drawer struct {
	c     *draw.Canvas
	f     render.Frame
	fonts *font.Cache
}

// pt maps frame pixels, y down, onto the canvas, y up.
func (d drawer) pt(x, y float64) vg.Point {
	return vg.Point{X: d.c.Min.X + vg.Length(x), Y: d.c.Max.Y - vg.Length(y)}
}

func lineStyle(s render.Style) (draw.LineStyle, error) {
	c, err := render.ParseColor(s.Stroke)
	if err != nil {
		return draw.LineStyle{}, errors.Wrap(err, "stroke")
	}
	return draw.LineStyle{Color: c, Width: vg.Length(s.StrokeWidth)}, nil
}

func (d drawer) segment(sty draw.LineStyle, s render.Segment) {
	a, b := d.pt(s.X1, s.Y1), d.pt(s.X2, s.Y2)
	d.c.StrokeLine2(sty, a.X, a.Y, b.X, b.Y)
}

func (d drawer) grid() error {
	if len(d.f.Grid) == 0 {
		return nil
	}
	sty, err := lineStyle(d.f.GridStyle)
	if err != nil {
		return errors.Wrap(err, "grid")
	}
	clip := d.f.Clip
	lo, hi := d.pt(clip.X, clip.Y+clip.Height), d.pt(clip.X+clip.Width, clip.Y)
	cc := draw.Canvas{Canvas: d.c.Canvas, Rectangle: vg.Rectangle{Min: lo, Max: hi}}
	for _, s := range d.f.Grid {
		line := []vg.Point{d.pt(s.X1, s.Y1), d.pt(s.X2, s.Y2)}
		cc.StrokeLines(sty, cc.ClipLinesXY(line)...)
	}
	return nil
}

func (d drawer) bar() error {
	sty, err := lineStyle(d.f.BarStyle)
	if err != nil {
		return errors.Wrap(err, "bar")
	}
	d.segment(sty, d.f.Bar)
	return nil
}

func (d drawer) ticks() error {
	st := d.f.ShapeStyle
	stroke, err := lineStyle(st.Style)
	if err != nil {
		return errors.Wrap(err, "ticks")
	}
	fill, err := render.ParseColor(st.Fill)
	if err != nil {
		return errors.Wrap(err, "tick fill")
	}
	tsty, err := d.textStyle(st.Label)
	if err != nil {
		return errors.Wrap(err, "tick labels")
	}
	for _, t := range d.f.Ticks {
		if t.Mark {
			d.mark(t, stroke, fill)
		}
		if len(t.Lines) > 0 {
			d.label(t, tsty)
		}
	}
	return nil
}

func (d drawer) mark(t render.Tick, stroke draw.LineStyle, fill color.Color) {
	st := d.f.ShapeStyle
	switch d.f.Shape {
	case render.Circle:
		d.c.DrawGlyph(draw.GlyphStyle{Color: fill, Radius: vg.Length(st.Radius), Shape: draw.CircleGlyph{}}, d.pt(t.X, t.Y))
	case render.Rect:
		x0, y0 := t.X-st.Width/2, t.Y-st.Height/2
		pts := []vg.Point{
			d.pt(x0, y0), d.pt(x0+st.Width, y0),
			d.pt(x0+st.Width, y0+st.Height), d.pt(x0, y0+st.Height),
		}
		d.c.FillPolygon(fill, pts)
		d.c.StrokeLines(stroke, append(pts, pts[0]))
	default:
		x1, y1, x2, y2 := t.Line(d.f.Horizontal)
		d.segment(stroke, render.Segment{X1: x1, Y1: y1, X2: x2, Y2: y2})
	}
}

func (d drawer) textStyle(s render.TextStyle) (draw.TextStyle, error) {
	c, err := render.ParseColor(s.Color)
	if err != nil {
		return draw.TextStyle{}, err
	}
	fnt := measure.Font(s.Family)
	fnt.Size = font.Points(s.Size)
	return draw.TextStyle{
		Color:   c,
		Font:    fnt,
		YAlign:  draw.YTop,
		Handler: text.Plain{Fonts: d.fonts},
	}, nil
}

// lines fills a block of lines whose box is given relative to the origin
// in frame orientation.
func (d drawer) lines(sty draw.TextStyle, lines []string, lh float64, b render.Box, anchor, valign string, at func(x, y float64) vg.Point) {
	x := b.X + b.Width/2
	sty.XAlign = draw.XCenter
	switch anchor {
	case "start":
		x, sty.XAlign = b.X, draw.XLeft
	case "end":
		x, sty.XAlign = b.X+b.Width, draw.XRight
	}
	block := lh * float64(len(lines))
	top := b.Y + (b.Height-block)/2
	switch valign {
	case "top":
		top = b.Y
	case "bottom":
		top = b.Y + b.Height - block
	}
	pad := (lh - sty.Font.Size.Points()) / 2
	for i, line := range lines {
		d.c.FillText(sty, at(x, top+lh*float64(i)+pad), line)
	}
}

func (d drawer) label(t render.Tick, sty draw.TextStyle) {
	if !t.Rotate {
		d.lines(sty, t.Lines, t.LineHeight, t.LabelBox, t.Anchor, t.VerticalAlign, func(x, y float64) vg.Point {
			return d.pt(t.X+x, t.Y+y)
		})
		return
	}
	b := t.LabelBox
	cx, cy := b.Width/2, b.Height/2
	d.c.Push()
	d.c.Translate(d.pt(t.X+b.X+cx, t.Y+b.Y+cy))
	d.c.Rotate(math.Pi / 2)
	local := render.Box{X: -cx, Y: -cy, Width: b.Width, Height: b.Height}
	d.lines(sty, t.Lines, t.LineHeight, local, t.Anchor, t.VerticalAlign, func(x, y float64) vg.Point {
		return vg.Point{X: vg.Length(x), Y: vg.Length(-y)}
	})
	d.c.Pop()
}

func (d drawer) title() error {
	t := d.f.Title
	if t == nil || len(t.Lines) == 0 {
		return nil
	}
	sty, err := d.textStyle(d.f.TitleStyle)
	if err != nil {
		return errors.Wrap(err, "title")
	}
	b := t.Box
	cx, cy := b.X+b.Width/2, b.Y+b.Height/2
	w, h := b.Width, b.Height
	d.c.Push()
	d.c.Translate(d.pt(cx, cy))
	d.c.Rotate(-t.Rotate * math.Pi / 180)
	local := render.Box{X: -w / 2, Y: -h / 2, Width: w, Height: h}
	d.lines(sty, t.Lines, d.f.TitleStyle.LineHeight, local, "middle", "middle", func(x, y float64) vg.Point {
		return vg.Point{X: vg.Length(x), Y: vg.Length(-y)}
	})
	d.c.Pop()
	return nil
}
