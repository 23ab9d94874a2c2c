// Package render describes a laid out axis as a Frame of positioned
// primitives and defines the Renderer that draws one.
//
// All coordinates are absolute pixels in the axis container, y growing
// downwards.
package render

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Shape is the mark drawn at each tick.
type Shape int

const (
	Line Shape = iota
	Circle
	Rect
)

var shapeNames = [...]string{"Line", "Circle", "Rect"}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return "unknown"
	}
	return shapeNames[s]
}

func ParseShape(s string) (Shape, error) {
	for i, n := range shapeNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return Shape(i), nil
		}
	}
	return 0, errors.Errorf("unknown shape %q", s)
}

type Box struct {
	X, Y, Width, Height float64
}

type Style struct {
	Stroke      string
	StrokeWidth float64
	Fill        string
}

type TextStyle struct {
	Family     string
	Size       float64
	LineHeight float64
	Color      string
}

// ShapeStyle styles tick marks and their labels. Width and Height size
// Rect marks, Radius sizes Circle marks.
type ShapeStyle struct {
	Style
	Width, Height float64
	Radius        float64
	Label         TextStyle
}

// Tick is one mark and/or label. Size is the signed perpendicular length
// of a Line mark. LabelBox is relative to (X, Y); a rotated label is
// turned -90 degrees about the centre of its box.
type Tick struct {
	Key           string
	X, Y          float64
	PrevX, PrevY  float64
	Entering      bool
	Mark          bool
	Size          float64
	Text          string
	Lines         []string
	LineHeight    float64
	Rotate        bool
	Anchor        string
	VerticalAlign string
	LabelBox      Box
}

// Segment is a gridline or the axis bar. Prev holds the position it
// animates from when entering.
type Segment struct {
	Key            string
	X1, Y1, X2, Y2 float64
	Prev           [4]float64
	Entering       bool
}

type Title struct {
	Text   string
	Lines  []string
	Box    Box
	Rotate float64
}

type Frame struct {
	ID            string
	Width, Height float64
	Orient        string
	Horizontal    bool
	Bounds        Box
	Duration      time.Duration

	Shape      Shape
	ShapeStyle ShapeStyle
	Ticks      []Tick
	// Exiting ticks fade out at their new positions.
	Exiting []Tick

	Grid        []Segment
	GridExiting []Segment
	GridStyle   Style
	Clip        Box

	Bar      Segment
	BarStyle Style

	Title      *Title
	TitleStyle TextStyle
}

// Renderer draws a Frame. Transitions in the output take Frame.Duration;
// Render itself returns once the frame is written.
type Renderer interface {
	Render(ctx context.Context, f Frame) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, f Frame) error

func (fn RendererFunc) Render(ctx context.Context, f Frame) error { return fn(ctx, f) }

// Discard drops every frame.
var Discard Renderer = RendererFunc(func(context.Context, Frame) error { return nil })

// Line returns the two endpoints of a Line tick mark.
func (t Tick) Line(horizontal bool) (x1, y1, x2, y2 float64) {
	if horizontal {
		return t.X, t.Y, t.X, t.Y + t.Size
	}
	return t.X, t.Y, t.X + t.Size, t.Y
}
