package svgaxis

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decibelcooper/svgaxis/measure"
	"github.com/decibelcooper/svgaxis/render"
	"github.com/decibelcooper/svgaxis/render/svgrender"
	"github.com/decibelcooper/svgaxis/scale"
)

// frames collects every frame handed to it.
type frames []render.Frame

func (f *frames) Render(_ context.Context, fr render.Frame) error {
	*f = append(*f, fr)
	return nil
}

func build(t *testing.T, b *Builder) Config {
	t.Helper()
	cfg, err := b.Build()
	require.NoError(t, err)
	return cfg
}

func TestRenderIdempotent(t *testing.T) {
	var out frames
	a := New(build(t, NewBuilder().Domain(0, 10)), WithMeasurer(measure.NewFixedMeasurer()), WithRenderer(&out))
	assert.Nil(t, a.Layout())

	_, err := a.Render(context.Background())
	require.NoError(t, err)
	first := a.Layout()
	_, err = a.Render(context.Background())
	require.NoError(t, err)
	second := a.Layout()

	assert.Equal(t, first.Bounds, second.Bounds)
	assert.Equal(t, first.Margin, second.Margin)
	assert.Equal(t, first.Ticks, second.Ticks)
	assert.Equal(t, first.Bounds, a.OuterBounds())
	assert.Equal(t, first.Margin, a.Margin())

	require.Len(t, out, 2)
	for _, tk := range out[0].Ticks {
		assert.True(t, tk.Entering, tk.Key)
	}
	for _, tk := range out[1].Ticks {
		assert.False(t, tk.Entering, tk.Key)
		assert.Equal(t, tk.X, tk.PrevX, tk.Key)
		assert.Equal(t, tk.Y, tk.PrevY, tk.Key)
	}
	assert.Empty(t, out[1].Exiting)
	assert.Equal(t, out[0].Ticks, func() []render.Tick {
		ts := append([]render.Tick(nil), out[1].Ticks...)
		for i := range ts {
			ts[i].Entering = true
		}
		return ts
	}())
}

func TestUpdateTransitions(t *testing.T) {
	var out frames
	a := New(build(t, NewBuilder().Scale(scale.Band).Domain("a", "b", "c")),
		WithMeasurer(measure.NewFixedMeasurer()), WithRenderer(&out))
	_, err := a.Render(context.Background())
	require.NoError(t, err)

	a.Update(build(t, a.Config().Builder().Domain("a", "b", "d")))
	_, err = a.Render(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	f := out[1]

	entering := map[string]bool{}
	prev := map[string]float64{}
	for _, tk := range f.Ticks {
		entering[tk.Key] = tk.Entering
		prev[tk.Key] = tk.PrevX
	}
	assert.False(t, entering["a"])
	assert.False(t, entering["b"])
	assert.True(t, entering["d"])
	assert.Equal(t, out[0].Ticks[0].X, prev["a"])

	require.Len(t, f.Exiting, 1)
	assert.Equal(t, "c", f.Exiting[0].Key)
	require.Len(t, f.GridExiting, 1)
	assert.Equal(t, "c", f.GridExiting[0].Key)
	for _, g := range f.Grid {
		if g.Key == "d" {
			assert.True(t, g.Entering)
			assert.Equal(t, g.Prev[0], g.Prev[2])
			assert.Equal(t, g.Prev[1], g.Prev[3])
		}
	}
}

func TestFrameGeometry(t *testing.T) {
	lay, err := Compute(build(t, NewBuilder().Domain(0, 10).Title("Distance")), measure.NewFixedMeasurer())
	require.NoError(t, err)
	f := lay.Frame("ax", nil)

	assert.Equal(t, "ax", f.ID)
	assert.Equal(t, "bottom", f.Orient)
	assert.True(t, f.Horizontal)
	assert.Equal(t, render.Box(lay.Bounds), f.Clip)
	assert.InDelta(t, 14.0, f.ShapeStyle.Label.LineHeight, 1e-9)
	assert.InDelta(t, 14.4, f.TitleStyle.LineHeight, 1e-9)
	require.NotNil(t, f.Title)

	assert.Equal(t, lay.Line, f.Bar.Y1)
	assert.Equal(t, lay.Bar[0], f.Bar.X1)
	assert.Equal(t, lay.Bar[1], f.Bar.X2)
	for _, tk := range f.Ticks {
		assert.Equal(t, lay.Line, tk.Y)
		assert.Equal(t, "middle", tk.Anchor)
		assert.Equal(t, "top", tk.VerticalAlign)
	}
	for _, g := range f.Grid {
		assert.Equal(t, g.X1, g.X2)
		assert.Equal(t, lay.Line+lay.GridLength, g.Y2)
	}

	left, err := Compute(build(t, NewLeft().Domain(0, 10)), measure.NewFixedMeasurer())
	require.NoError(t, err)
	lf := left.Frame("ax", nil)
	for _, tk := range lf.Ticks {
		assert.Equal(t, left.Line, tk.X)
		assert.Equal(t, "end", tk.Anchor)
	}
}

func TestRenderSVG(t *testing.T) {
	var buf bytes.Buffer
	a := New(build(t, NewBuilder().Domain(0, 10).Title("Distance")),
		WithMeasurer(measure.NewFixedMeasurer()), WithRenderer(svgrender.New(&buf)))
	tr, err := a.Render(context.Background())
	require.NoError(t, err)
	require.NotNil(t, tr)

	out := buf.String()
	assert.Contains(t, out, `id="`+a.ID()+`"`)
	assert.Contains(t, out, `class="axis axis-bottom"`)
	assert.Contains(t, out, `id="`+a.ID()+`-clip"`)
	assert.Contains(t, out, ">10</text>")
	assert.Contains(t, out, ">Distance</text>")
}

func TestRenderErrors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	logger, hook := logtest.NewNullLogger()

	boom := errors.New("boom")
	a := New(build(t, NewBuilder().Domain(0, 10)),
		WithMeasurer(measure.NewFixedMeasurer()),
		WithRenderer(render.RendererFunc(func(context.Context, render.Frame) error { return boom })),
		WithLogger(logger), WithMetrics(m))

	_, err := a.Render(context.Background())
	assert.Equal(t, boom, errors.Cause(err))
	assert.Nil(t, a.Layout())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Errors))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)

	bad := New(Config{Scale: scale.Linear, Domain: []interface{}{"a", "b"}}, WithLogger(logger), WithMetrics(m))
	_, err = bad.Render(context.Background())
	assert.Equal(t, ErrDomain, errors.Cause(err))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Errors))
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	a := New(build(t, NewBuilder().Domain(0, 10)),
		WithMeasurer(measure.NewFixedMeasurer()), WithLogger(logger), WithMetrics(m))
	_, err := a.Render(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Renders.WithLabelValues("linear", "bottom")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Refits))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Errors))
	assert.Equal(t, 1, testutil.CollectAndCount(m.LayoutSeconds))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Equal(t, "bottom", entry.Data["orient"])
	assert.Equal(t, "linear", entry.Data["scale"])
}

func TestTransition(t *testing.T) {
	tr := newTransition(0)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, tr.Wait(ctx))
	select {
	case <-tr.Done():
	default:
		t.Fatal("transition not done")
	}

	long := newTransition(time.Hour)
	cancelled, stop := context.WithCancel(context.Background())
	stop()
	assert.Equal(t, context.Canceled, long.Wait(cancelled))
}
