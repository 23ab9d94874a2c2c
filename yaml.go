package svgaxis

import (
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/decibelcooper/svgaxis/render"
	"github.com/decibelcooper/svgaxis/scale"
)

type styleDoc struct {
	Stroke      string   `yaml:"stroke"`
	StrokeWidth *float64 `yaml:"strokeWidth"`
	Fill        string   `yaml:"fill"`
}

func (d *styleDoc) apply(s *render.Style) {
	if d == nil {
		return
	}
	if d.Stroke != "" {
		s.Stroke = d.Stroke
	}
	if d.StrokeWidth != nil {
		s.StrokeWidth = *d.StrokeWidth
	}
	if d.Fill != "" {
		s.Fill = d.Fill
	}
}

type textDoc struct {
	Family     string   `yaml:"family"`
	Size       *float64 `yaml:"size"`
	LineHeight *float64 `yaml:"lineHeight"`
	Color      string   `yaml:"color"`
}

func (d *textDoc) apply(s *render.TextStyle) {
	if d == nil {
		return
	}
	if d.Family != "" {
		s.Family = d.Family
	}
	if d.Size != nil {
		s.Size = *d.Size
	}
	if d.LineHeight != nil {
		s.LineHeight = *d.LineHeight
	}
	if d.Color != "" {
		s.Color = d.Color
	}
}

type shapeDoc struct {
	styleDoc `yaml:",inline"`
	Width    *float64 `yaml:"width"`
	Height   *float64 `yaml:"height"`
	Radius   *float64 `yaml:"radius"`
	Label    *textDoc `yaml:"label"`
}

// document is the YAML form of a Config. Unset fields keep the defaults.
type document struct {
	Scale    string        `yaml:"scale"`
	Exponent *float64      `yaml:"exponent"`
	Domain   []interface{} `yaml:"domain"`
	Data     []interface{} `yaml:"data"`

	RangeStart *float64 `yaml:"rangeStart"`
	RangeEnd   *float64 `yaml:"rangeEnd"`

	Orient       string   `yaml:"orient"`
	Width        *float64 `yaml:"width"`
	Height       *float64 `yaml:"height"`
	Padding      *float64 `yaml:"padding"`
	PaddingInner *float64 `yaml:"paddingInner"`
	PaddingOuter *float64 `yaml:"paddingOuter"`
	Align        string   `yaml:"align"`

	Ticks      []interface{} `yaml:"ticks"`
	Labels     []interface{} `yaml:"labels"`
	Grid       []interface{} `yaml:"grid"`
	GridSize   *float64      `yaml:"gridSize"`
	GridLog    *bool         `yaml:"gridLog"`
	TickSize   *float64      `yaml:"tickSize"`
	TickSuffix string        `yaml:"tickSuffix"`
	Locale     string        `yaml:"locale"`

	// LabelRotation takes true, false or "auto".
	LabelRotation      interface{} `yaml:"labelRotation"`
	LabelOffset        *bool       `yaml:"labelOffset"`
	CollisionThreshold *float64    `yaml:"collisionThreshold"`

	Shape      string    `yaml:"shape"`
	ShapeStyle *shapeDoc `yaml:"shapeStyle"`
	BarStyle   *styleDoc `yaml:"barStyle"`
	GridStyle  *styleDoc `yaml:"gridStyle"`

	Title      string   `yaml:"title"`
	TitleStyle *textDoc `yaml:"titleStyle"`

	MaxSize  *float64 `yaml:"maxSize"`
	Duration string   `yaml:"duration"`
	Location string   `yaml:"location"`
}

// DecodeYAML reads an axis document into a Builder over the defaults.
// Unknown keys are errors. The Builder may be refined further before
// Build.
func DecodeYAML(r io.Reader) (*Builder, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decoding axis yaml")
	}
	b := NewBuilder()
	if err := doc.apply(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (d *document) apply(b *Builder) error {
	if d.Scale != "" {
		k, err := scale.ParseKind(d.Scale)
		if err != nil {
			return err
		}
		b.Scale(k)
	}
	if d.Exponent != nil {
		b.Exponent(*d.Exponent)
	}
	if d.Domain != nil {
		b.Domain(d.Domain...)
	}
	if d.Data != nil {
		b.Data(d.Data...)
	}
	if d.RangeStart != nil {
		b.RangeStart(*d.RangeStart)
	}
	if d.RangeEnd != nil {
		b.RangeEnd(*d.RangeEnd)
	}

	if d.Orient != "" {
		o, err := ParseOrient(d.Orient)
		if err != nil {
			return err
		}
		b.Orient(o)
	}
	width, height := b.cfg.Width, b.cfg.Height
	if d.Width != nil {
		width = *d.Width
	}
	if d.Height != nil {
		height = *d.Height
	}
	b.Size(width, height)
	setFloat(d.Padding, b.Padding)
	setFloat(d.PaddingInner, b.PaddingInner)
	setFloat(d.PaddingOuter, b.PaddingOuter)
	if d.Align != "" {
		a, err := ParseAlign(d.Align)
		if err != nil {
			return err
		}
		b.Align(a)
	}

	if d.Ticks != nil {
		b.Ticks(d.Ticks...)
	}
	if d.Labels != nil {
		b.Labels(d.Labels...)
	}
	if d.Grid != nil {
		b.Grid(d.Grid...)
	}
	setFloat(d.GridSize, b.GridSize)
	if d.GridLog != nil {
		b.GridLog(*d.GridLog)
	}
	setFloat(d.TickSize, b.TickSize)
	if d.TickSuffix != "" {
		s, err := ParseSuffix(d.TickSuffix)
		if err != nil {
			return err
		}
		b.TickSuffix(s)
	}
	if d.Locale != "" {
		b.Locale(d.Locale)
	}

	if d.LabelRotation != nil {
		r, err := ParseRotation(fmt.Sprint(d.LabelRotation))
		if err != nil {
			return err
		}
		b.LabelRotation(r)
	}
	if d.LabelOffset != nil {
		b.LabelOffset(*d.LabelOffset)
	}
	setFloat(d.CollisionThreshold, b.CollisionThreshold)

	if d.Shape != "" {
		s, err := render.ParseShape(d.Shape)
		if err != nil {
			return err
		}
		b.Shape(s)
	}
	if s := d.ShapeStyle; s != nil {
		b.ShapeStyle(func(st *render.ShapeStyle) {
			s.styleDoc.apply(&st.Style)
			setFloat(s.Width, func(v float64) *Builder { st.Width = v; return b })
			setFloat(s.Height, func(v float64) *Builder { st.Height = v; return b })
			setFloat(s.Radius, func(v float64) *Builder { st.Radius = v; return b })
			s.Label.apply(&st.Label)
		})
	}
	d.BarStyle.apply(&b.cfg.BarStyle)
	d.GridStyle.apply(&b.cfg.GridStyle)

	if d.Title != "" {
		b.Title(d.Title)
	}
	b.TitleStyle(d.TitleStyle.apply)

	setFloat(d.MaxSize, b.MaxSize)
	if d.Duration != "" {
		dur, err := time.ParseDuration(d.Duration)
		if err != nil {
			return errors.Wrap(err, "duration")
		}
		b.Duration(dur)
	}
	if d.Location != "" {
		loc, err := time.LoadLocation(d.Location)
		if err != nil {
			return errors.Wrap(err, "location")
		}
		b.Location(loc)
	}
	return nil
}

func setFloat(v *float64, set func(float64) *Builder) {
	if v != nil {
		set(*v)
	}
}
