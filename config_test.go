package svgaxis

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decibelcooper/svgaxis/render"
	"github.com/decibelcooper/svgaxis/scale"
)

func TestDefaults(t *testing.T) {
	cfg, err := NewBuilder().Build()
	require.NoError(t, err)
	assert.Equal(t, scale.Linear, cfg.Scale)
	assert.Equal(t, Bottom, cfg.Orient)
	assert.Equal(t, 400.0, cfg.Width)
	assert.Equal(t, 400.0, cfg.Height)
	assert.Equal(t, 5.0, cfg.Padding)
	assert.Equal(t, 600*time.Millisecond, cfg.Duration)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.True(t, cfg.LabelOffset)
	assert.Nil(t, cfg.RangeStart)
}

func TestOrientShortcuts(t *testing.T) {
	for b, o := range map[*Builder]Orient{NewBottom(): Bottom, NewTop(): Top, NewLeft(): Left, NewRight(): Right} {
		cfg, err := b.Build()
		require.NoError(t, err)
		assert.Equal(t, o, cfg.Orient)
	}
	assert.True(t, Top.Horizontal())
	assert.False(t, Right.Horizontal())
}

func TestBuildErrors(t *testing.T) {
	for name, c := range map[string]struct {
		b    *Builder
		want error
	}{
		"scale":  {NewBuilder().ScaleName("radial"), ErrUnknownScale},
		"orient": {NewBuilder().OrientName("diagonal"), ErrUnknownOrient},
		"kind":   {NewBuilder().Scale(scale.Kind(42)), ErrUnknownScale},
		"triple": {NewBuilder().Domain(1.0, 2.0, 3.0), ErrDomain},
		"number": {NewBuilder().Domain("a", 2.0), ErrDomain},
		"size":   {NewBuilder().Size(-1, 10), ErrSize},
		"locale": {NewBuilder().Locale("xx"), ErrUnknownLocale},
	} {
		_, err := c.b.Build()
		assert.Equal(t, c.want, errors.Cause(err), name)
	}
}

func TestBuildTimeDomain(t *testing.T) {
	_, err := NewBuilder().Scale(scale.Time).Domain("not a date", "2020").Build()
	assert.Error(t, err)

	cfg, err := NewBuilder().Scale(scale.Time).Domain("2019", "2020").Build()
	require.NoError(t, err)
	assert.Len(t, cfg.Domain, 2)
}

func TestFirstErrorWins(t *testing.T) {
	_, err := NewBuilder().OrientName("up").ScaleName("radial").Build()
	assert.Equal(t, ErrUnknownOrient, errors.Cause(err))
}

func TestParsers(t *testing.T) {
	r, err := ParseRotation("true")
	require.NoError(t, err)
	assert.Equal(t, RotationOn, r)
	r, err = ParseRotation("")
	require.NoError(t, err)
	assert.Equal(t, RotationAuto, r)
	_, err = ParseRotation("sideways")
	assert.Equal(t, ErrUnknownRotation, errors.Cause(err))

	a, err := ParseAlign("End")
	require.NoError(t, err)
	assert.Equal(t, AlignEnd, a)

	s, err := ParseSuffix("smallest")
	require.NoError(t, err)
	assert.Equal(t, SuffixSmallest, s)
	_, err = ParseSuffix("largest")
	assert.Equal(t, ErrUnknownSuffix, errors.Cause(err))
}

func TestBuildCopiesDomain(t *testing.T) {
	dom := []interface{}{0.0, 10.0}
	cfg, err := NewBuilder().Domain(dom...).Build()
	require.NoError(t, err)
	dom[1] = 20.0
	assert.Equal(t, 10.0, cfg.Domain[1])
}

func TestConfigBuilder(t *testing.T) {
	cfg, err := NewBuilder().Title("first").Build()
	require.NoError(t, err)
	next, err := cfg.Builder().ShapeStyle(func(s *render.ShapeStyle) { s.Radius = 9 }).Build()
	require.NoError(t, err)
	assert.Equal(t, "first", next.Title)
	assert.Equal(t, 9.0, next.ShapeStyle.Radius)
	assert.Equal(t, 4.0, cfg.ShapeStyle.Radius)
}
