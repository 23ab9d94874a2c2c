// Package svgaxis lays out and draws chart axes. A Config describes the
// scale, container and styles; Compute fits it, measuring labels, rotating
// or staggering them when they collide and refitting the range when the
// outer labels spill. An Axis keeps the previous layout so each render
// animates from where the last one left off.
package svgaxis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/decibelcooper/svgaxis/measure"
	"github.com/decibelcooper/svgaxis/render"
)

type Axis struct {
	id       string
	cfg      Config
	measurer measure.Measurer
	renderer render.Renderer
	log      logrus.FieldLogger
	metrics  *Metrics

	last *Layout
}

type Option func(*Axis)

func WithMeasurer(m measure.Measurer) Option { return func(a *Axis) { a.measurer = m } }
func WithRenderer(r render.Renderer) Option  { return func(a *Axis) { a.renderer = r } }
func WithLogger(l logrus.FieldLogger) Option { return func(a *Axis) { a.log = l } }
func WithMetrics(m *Metrics) Option          { return func(a *Axis) { a.metrics = m } }

// New creates an axis for cfg. Without options labels are measured with
// the bundled Liberation fonts and frames are discarded.
func New(cfg Config, opts ...Option) *Axis {
	a := &Axis{
		id:       "axis-" + uuid.New().String(),
		cfg:      cfg,
		measurer: measure.NewFontMeasurer(),
		renderer: render.Discard,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ID is the id of the axis group and the prefix of its element ids.
func (a *Axis) ID() string { return a.id }

func (a *Axis) Config() Config { return a.cfg }

// Update replaces the configuration. The next render transitions from
// the last rendered layout.
func (a *Axis) Update(cfg Config) { a.cfg = cfg }

// Layout returns the last rendered layout, or nil before the first render.
func (a *Axis) Layout() *Layout { return a.last }

// Render lays out the axis and hands the frame to the renderer. The
// returned Transition is done once the configured animation should have
// finished.
func (a *Axis) Render(ctx context.Context) (*Transition, error) {
	log := a.log.WithFields(logrus.Fields{
		"axis":   a.id,
		"orient": a.cfg.Orient.String(),
		"scale":  a.cfg.Scale.String(),
	})

	start := time.Now()
	lay, err := Compute(a.cfg, a.measurer)
	if err != nil {
		a.metrics.failed()
		log.WithError(err).Error("axis layout failed")
		return nil, errors.Wrap(err, "laying out axis")
	}
	a.metrics.observe(lay, time.Since(start))
	log.WithFields(logrus.Fields{
		"ticks":   len(lay.Ticks),
		"spill":   lay.Spill,
		"refit":   lay.Refit,
		"rotated": lay.Rotated,
		"bounds":  lay.Bounds,
	}).Debug("axis laid out")

	if err := a.renderer.Render(ctx, lay.Frame(a.id, a.last)); err != nil {
		a.metrics.failed()
		log.WithError(err).Error("axis render failed")
		return nil, errors.Wrap(err, "rendering axis")
	}
	a.last = lay
	return newTransition(a.cfg.Duration), nil
}

// OuterBounds is the area taken by the last rendered axis, labels and
// title included.
func (a *Axis) OuterBounds() Bounds {
	if a.last == nil {
		return Bounds{}
	}
	return a.last.Bounds
}

// Margin is the room the last rendered axis left on each side of its
// line, for placing neighbouring chart elements.
func (a *Axis) Margin() Margin {
	if a.last == nil {
		return Margin{}
	}
	return a.last.Margin
}
