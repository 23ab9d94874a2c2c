package svgaxis

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/decibelcooper/svgaxis/render"
	"github.com/decibelcooper/svgaxis/scale"
)

var (
	ErrUnknownScale    = scale.ErrUnknownKind
	ErrUnknownOrient   = errors.New("unknown orientation")
	ErrUnknownAlign    = errors.New("unknown alignment")
	ErrUnknownRotation = errors.New("unknown label rotation")
	ErrUnknownSuffix   = errors.New("unknown tick suffix")
	ErrDomain          = errors.New("invalid domain")
	ErrSize            = errors.New("invalid size")
)

type Orient int

const (
	Bottom Orient = iota
	Top
	Left
	Right
)

var orientNames = [...]string{"bottom", "top", "left", "right"}

func (o Orient) String() string {
	if o < 0 || int(o) >= len(orientNames) {
		return "unknown"
	}
	return orientNames[o]
}

func ParseOrient(s string) (Orient, error) {
	for i, n := range orientNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return Orient(i), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownOrient, "%q", s)
}

func (o Orient) Horizontal() bool { return o == Bottom || o == Top }

// flip is set when the axis draws towards the origin of its container.
func (o Orient) flip() bool { return o == Top || o == Left }

func (o Orient) opposite() Orient {
	switch o {
	case Bottom:
		return Top
	case Top:
		return Bottom
	case Left:
		return Right
	}
	return Left
}

type Align int

const (
	AlignMiddle Align = iota
	AlignStart
	AlignEnd
)

var alignNames = [...]string{"middle", "start", "end"}

func (a Align) String() string {
	if a < 0 || int(a) >= len(alignNames) {
		return "unknown"
	}
	return alignNames[a]
}

func ParseAlign(s string) (Align, error) {
	for i, n := range alignNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return Align(i), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownAlign, "%q", s)
}

// Rotation is the label rotation policy. RotationAuto rotates labels on
// horizontal axes when they truncate or collide.
type Rotation int

const (
	RotationAuto Rotation = iota
	RotationOn
	RotationOff
)

func ParseRotation(s string) (Rotation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return RotationAuto, nil
	case "true", "on":
		return RotationOn, nil
	case "false", "off":
		return RotationOff, nil
	}
	return 0, errors.Wrapf(ErrUnknownRotation, "%q", s)
}

func (r Rotation) String() string {
	switch r {
	case RotationOn:
		return "on"
	case RotationOff:
		return "off"
	}
	return "auto"
}

type Suffix int

const (
	SuffixNormal Suffix = iota
	SuffixSmallest
)

func ParseSuffix(s string) (Suffix, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return SuffixNormal, nil
	case "smallest":
		return SuffixSmallest, nil
	}
	return 0, errors.Wrapf(ErrUnknownSuffix, "%q", s)
}

// Value is a tick or label value. Num is milliseconds since the epoch on
// time scales and the category index on discrete scales.
type Value struct {
	Num      float64
	Category string
}

func (v Value) Time(loc *time.Location) time.Time {
	return scale.FromMillis(v.Num, loc)
}

// Config describes one axis. It is built, and validated, by a Builder and
// not modified afterwards.
type Config struct {
	Scale    scale.Kind
	Exponent float64
	Domain   []interface{}
	Data     []interface{}

	RangeStart, RangeEnd *float64

	Orient        Orient
	Width, Height float64
	Padding       float64
	PaddingInner  float64
	PaddingOuter  float64
	Align         Align

	Ticks, Labels, Grid []interface{}
	GridSize            *float64
	GridLog             bool
	TickSize            float64
	TickFormat          func(Value) string
	TickSuffix          Suffix
	Locale              string

	LabelRotation      Rotation
	LabelOffset        bool
	CollisionThreshold float64

	Shape      render.Shape
	ShapeStyle render.ShapeStyle
	BarStyle   render.Style
	GridStyle  render.Style

	Title      string
	TitleStyle render.TextStyle

	MaxSize  *float64
	Duration time.Duration
	Location *time.Location
}

func defaultConfig() Config {
	return Config{
		Scale:        scale.Linear,
		Domain:       []interface{}{0.0, 10.0},
		Orient:       Bottom,
		Width:        400,
		Height:       400,
		Padding:      5,
		PaddingInner: 0.1,
		PaddingOuter: 0.1,
		Align:        AlignMiddle,
		TickSize:     5,
		Locale:       "en-US",
		LabelOffset:  true,
		Shape:        render.Line,
		ShapeStyle: render.ShapeStyle{
			Style:  render.Style{Fill: "#000", Stroke: "#000", StrokeWidth: 1},
			Width:  8,
			Height: 8,
			Radius: 4,
			Label: render.TextStyle{
				Family: "Helvetica Neue, Arial, sans-serif",
				Size:   10,
				Color:  "#000",
			},
		},
		BarStyle:  render.Style{Stroke: "#000", StrokeWidth: 1},
		GridStyle: render.Style{Stroke: "#ccc", StrokeWidth: 1},
		TitleStyle: render.TextStyle{
			Family: "Helvetica Neue, Arial, sans-serif",
			Size:   12,
			Color:  "#444",
		},
		Duration: 600 * time.Millisecond,
		Location: time.UTC,
	}
}

// Builder assembles a Config. Setters record the first parse error, which
// Build returns.
type Builder struct {
	cfg Config
	err error
}

func NewBuilder() *Builder { return &Builder{cfg: defaultConfig()} }

func NewBottom() *Builder { return NewBuilder().Orient(Bottom) }
func NewTop() *Builder    { return NewBuilder().Orient(Top) }
func NewLeft() *Builder   { return NewBuilder().Orient(Left) }
func NewRight() *Builder  { return NewBuilder().Orient(Right) }

// Builder returns a Builder seeded with c, for deriving a new Config.
func (c Config) Builder() *Builder { return &Builder{cfg: c} }

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

func (b *Builder) Scale(k scale.Kind) *Builder { b.cfg.Scale = k; return b }

func (b *Builder) ScaleName(s string) *Builder {
	k, err := scale.ParseKind(s)
	if err != nil {
		return b.fail(err)
	}
	return b.Scale(k)
}

// Exponent sets the exponent of a pow scale.
func (b *Builder) Exponent(e float64) *Builder { b.cfg.Exponent = e; return b }

func (b *Builder) Domain(v ...interface{}) *Builder { b.cfg.Domain = v; return b }
func (b *Builder) Data(v ...interface{}) *Builder   { b.cfg.Data = v; return b }

func (b *Builder) Range(start, end float64) *Builder {
	return b.RangeStart(start).RangeEnd(end)
}

func (b *Builder) RangeStart(v float64) *Builder { b.cfg.RangeStart = &v; return b }
func (b *Builder) RangeEnd(v float64) *Builder   { b.cfg.RangeEnd = &v; return b }

func (b *Builder) Orient(o Orient) *Builder { b.cfg.Orient = o; return b }

func (b *Builder) OrientName(s string) *Builder {
	o, err := ParseOrient(s)
	if err != nil {
		return b.fail(err)
	}
	return b.Orient(o)
}

func (b *Builder) Size(width, height float64) *Builder {
	b.cfg.Width, b.cfg.Height = width, height
	return b
}

func (b *Builder) Padding(p float64) *Builder      { b.cfg.Padding = p; return b }
func (b *Builder) PaddingInner(p float64) *Builder { b.cfg.PaddingInner = p; return b }
func (b *Builder) PaddingOuter(p float64) *Builder { b.cfg.PaddingOuter = p; return b }
func (b *Builder) Align(a Align) *Builder          { b.cfg.Align = a; return b }

func (b *Builder) Ticks(v ...interface{}) *Builder  { b.cfg.Ticks = v; return b }
func (b *Builder) Labels(v ...interface{}) *Builder { b.cfg.Labels = v; return b }
func (b *Builder) Grid(v ...interface{}) *Builder   { b.cfg.Grid = v; return b }
func (b *Builder) GridSize(v float64) *Builder      { b.cfg.GridSize = &v; return b }
func (b *Builder) GridLog(on bool) *Builder         { b.cfg.GridLog = on; return b }
func (b *Builder) TickSize(v float64) *Builder      { b.cfg.TickSize = v; return b }

func (b *Builder) TickFormat(fn func(Value) string) *Builder { b.cfg.TickFormat = fn; return b }
func (b *Builder) TickSuffix(s Suffix) *Builder              { b.cfg.TickSuffix = s; return b }
func (b *Builder) Locale(name string) *Builder               { b.cfg.Locale = name; return b }

func (b *Builder) LabelRotation(r Rotation) *Builder      { b.cfg.LabelRotation = r; return b }
func (b *Builder) LabelOffset(on bool) *Builder           { b.cfg.LabelOffset = on; return b }
func (b *Builder) CollisionThreshold(px float64) *Builder { b.cfg.CollisionThreshold = px; return b }

func (b *Builder) Shape(s render.Shape) *Builder { b.cfg.Shape = s; return b }

// ShapeStyle edits the tick style in place.
func (b *Builder) ShapeStyle(fn func(*render.ShapeStyle)) *Builder {
	fn(&b.cfg.ShapeStyle)
	return b
}

func (b *Builder) BarStyle(s render.Style) *Builder  { b.cfg.BarStyle = s; return b }
func (b *Builder) GridStyle(s render.Style) *Builder { b.cfg.GridStyle = s; return b }

func (b *Builder) Title(s string) *Builder { b.cfg.Title = s; return b }

func (b *Builder) TitleStyle(fn func(*render.TextStyle)) *Builder {
	fn(&b.cfg.TitleStyle)
	return b
}

func (b *Builder) MaxSize(v float64) *Builder           { b.cfg.MaxSize = &v; return b }
func (b *Builder) Duration(d time.Duration) *Builder    { b.cfg.Duration = d; return b }
func (b *Builder) Location(loc *time.Location) *Builder { b.cfg.Location = loc; return b }

// Build validates the accumulated settings. Domain values are checked
// against the scale kind here so a bad domain never reaches a render.
func (b *Builder) Build() (Config, error) {
	if b.err != nil {
		return Config{}, b.err
	}
	c := b.cfg
	if c.Scale < scale.Linear || c.Scale > scale.Ordinal {
		return Config{}, errors.Wrapf(ErrUnknownScale, "kind %d", int(c.Scale))
	}
	if c.Orient < Bottom || c.Orient > Right {
		return Config{}, errors.Wrapf(ErrUnknownOrient, "orient %d", int(c.Orient))
	}
	if c.Width < 0 || c.Height < 0 {
		return Config{}, errors.Wrapf(ErrSize, "%gx%g", c.Width, c.Height)
	}
	if _, err := LookupLocale(c.Locale); err != nil {
		return Config{}, err
	}
	if c.Location == nil {
		c.Location = time.UTC
	}
	if _, err := resolveDomain(c); err != nil {
		return Config{}, err
	}
	c.Domain = append([]interface{}(nil), c.Domain...)
	c.Data = append([]interface{}(nil), c.Data...)
	return c, nil
}
