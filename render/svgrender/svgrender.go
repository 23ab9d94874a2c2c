// Package svgrender draws axis frames as SVG with svgo. Changes between
// frames are expressed as SMIL animations lasting Frame.Duration.
package svgrender

import (
	"bytes"
	"context"
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo/float"
	"github.com/pkg/errors"

	"github.com/decibelcooper/svgaxis/render"
)

// Renderer writes one SVG fragment per frame to W. With Standalone set
// each frame is wrapped in its own <svg> document sized to the frame.
type Renderer struct {
	W          io.Writer
	Standalone bool
	// Static suppresses animation elements.
	Static bool
}

func New(w io.Writer) *Renderer {
	return &Renderer{W: w, Standalone: true}
}

func (r *Renderer) Render(ctx context.Context, f render.Frame) error {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	d := &drawer{svg: canvas, f: f, animate: !r.Static && f.Duration > 0}

	if r.Standalone {
		canvas.Start(f.Width, f.Height)
	}
	canvas.Group(attr("id", f.ID), attr("class", "axis axis-"+f.Orient))

	steps := []func(){d.clip, d.grid, d.bar, d.ticks, d.title}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		step()
	}

	canvas.Gend()
	if r.Standalone {
		canvas.End()
	}
	_, err := io.Copy(r.W, &buf)
	return errors.Wrap(err, "writing svg")
}

type drawer struct {
	svg     *svg.SVG
	f       render.Frame
	animate bool
	seq     int
}

func (d *drawer) id(kind string) string {
	d.seq++
	return fmt.Sprintf("%s-%s%d", d.f.ID, kind, d.seq)
}

func (d *drawer) seconds() float64 { return d.f.Duration.Seconds() }

func (d *drawer) clipID() string { return d.f.ID + "-clip" }

func (d *drawer) clip() {
	c := d.f.Clip
	d.svg.Def()
	d.svg.ClipPath(attr("id", d.clipID()))
	d.svg.Rect(c.X, c.Y, c.Width, c.Height)
	d.svg.ClipEnd()
	d.svg.DefEnd()
}

func (d *drawer) grid() {
	if len(d.f.Grid) == 0 && len(d.f.GridExiting) == 0 {
		return
	}
	d.svg.Group(attr("class", "grid"), attr("clip-path", "url(#"+d.clipID()+")"), strokeStyle(d.f.GridStyle))
	for _, s := range d.f.Grid {
		d.segment(s, false)
	}
	for _, s := range d.f.GridExiting {
		d.segment(s, true)
	}
	d.svg.Gend()
}

func (d *drawer) bar() {
	d.svg.Group(attr("class", "bar"), strokeStyle(d.f.BarStyle))
	d.segment(d.f.Bar, false)
	d.svg.Gend()
}

func (d *drawer) segment(s render.Segment, exiting bool) {
	id := d.id("line")
	d.svg.Line(s.X1, s.Y1, s.X2, s.Y2, attr("id", id))
	if !d.animate {
		return
	}
	link := "#" + id
	switch {
	case exiting:
		d.fade(link, 1, 0)
		return
	case s.Entering:
		d.fade(link, 0, 1)
	}
	to := [4]float64{s.X1, s.Y1, s.X2, s.Y2}
	if s.Prev == to {
		return
	}
	for i, name := range [4]string{"x1", "y1", "x2", "y2"} {
		d.svg.Animate(link, name, s.Prev[i], to[i], d.seconds(), 1, `fill="freeze"`)
	}
}

func (d *drawer) fade(link string, from, to float64) {
	d.svg.Animate(link, "opacity", from, to, d.seconds(), 1, `fill="freeze"`)
}

func (d *drawer) ticks() {
	st := d.f.ShapeStyle
	d.svg.Group(attr("class", "ticks"), textStyle(st.Label))
	for _, t := range d.f.Ticks {
		d.tick(t, false)
	}
	for _, t := range d.f.Exiting {
		d.tick(t, true)
	}
	d.svg.Gend()
}

func (d *drawer) tick(t render.Tick, exiting bool) {
	id := d.id("tick")
	d.svg.Group(attr("id", id), attr("class", "tick"), attr("transform", translate(t.X, t.Y)))
	if t.Mark {
		d.mark(t)
	}
	if len(t.Lines) > 0 {
		d.label(t)
	}
	d.svg.Gend()

	if !d.animate {
		return
	}
	link := "#" + id
	switch {
	case exiting:
		d.fade(link, 1, 0)
		return
	case t.Entering:
		d.fade(link, 0, 1)
	}
	if t.PrevX != t.X || t.PrevY != t.Y {
		d.svg.AnimateTranslate(link, t.PrevX, t.PrevY, t.X, t.Y, d.seconds(), 1, `fill="freeze"`)
	}
}

func (d *drawer) mark(t render.Tick) {
	st := d.f.ShapeStyle
	switch d.f.Shape {
	case render.Circle:
		d.svg.Circle(0, 0, st.Radius, shapeStyle(st.Style))
	case render.Rect:
		d.svg.Rect(-st.Width/2, -st.Height/2, st.Width, st.Height, shapeStyle(st.Style))
	default:
		x1, y1, x2, y2 := render.Tick{Size: t.Size}.Line(d.f.Horizontal)
		d.svg.Line(x1, y1, x2, y2, strokeStyle(st.Style))
	}
}

func (d *drawer) label(t render.Tick) {
	b := t.LabelBox
	size := d.f.ShapeStyle.Label.Size
	if t.Rotate {
		cx, cy := b.X+b.Width/2, b.Y+b.Height/2
		d.svg.Group(attr("transform", fmt.Sprintf("rotate(-90 %g %g)", cx, cy)))
		defer d.svg.Gend()
	}
	x := b.X + b.Width/2
	switch t.Anchor {
	case "start":
		x = b.X
	case "end":
		x = b.X + b.Width
	}
	block := t.LineHeight * float64(len(t.Lines))
	top := b.Y + (b.Height-block)/2
	switch t.VerticalAlign {
	case "top":
		top = b.Y
	case "bottom":
		top = b.Y + b.Height - block
	}
	for i, line := range t.Lines {
		y := top + t.LineHeight*float64(i) + baseline(t.LineHeight, size)
		d.svg.Text(x, y, line, attr("text-anchor", t.Anchor))
	}
}

func (d *drawer) title() {
	t := d.f.Title
	if t == nil || len(t.Lines) == 0 {
		return
	}
	b := t.Box
	cx, cy := b.X+b.Width/2, b.Y+b.Height/2
	st := d.f.TitleStyle
	d.svg.Group(attr("class", "title"), textStyle(st),
		attr("transform", fmt.Sprintf("rotate(%g %g %g)", t.Rotate, cx, cy)))
	lh := st.LineHeight
	top := cy - lh*float64(len(t.Lines))/2
	for i, line := range t.Lines {
		d.svg.Text(cx, top+lh*float64(i)+baseline(lh, st.Size), line, attr("text-anchor", "middle"))
	}
	d.svg.Gend()
}

// baseline offsets a line's baseline from the top of its line box,
// taking the ascent as 0.8 of the font size.
func baseline(lineHeight, size float64) float64 {
	return (lineHeight-size)/2 + 0.8*size
}

func attr(name, value string) string {
	return fmt.Sprintf(`%s="%s"`, name, value)
}

func translate(x, y float64) string {
	return fmt.Sprintf("translate(%g %g)", x, y)
}

func strokeStyle(s render.Style) string {
	return fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g", render.Hex(s.Stroke), s.StrokeWidth)
}

func shapeStyle(s render.Style) string {
	return fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%g", render.Hex(s.Fill), render.Hex(s.Stroke), s.StrokeWidth)
}

func textStyle(s render.TextStyle) string {
	return fmt.Sprintf("font-family:%s;font-size:%gpx;fill:%s", s.Family, s.Size, render.Hex(s.Color))
}
