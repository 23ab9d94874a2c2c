package svgaxis

import (
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decibelcooper/svgaxis/render"
	"github.com/decibelcooper/svgaxis/scale"
)

const axisDoc = `
scale: log
domain: [1, 1000]
orient: left
width: 120
height: 300
align: start
labelRotation: false
tickSuffix: smallest
shape: circle
shapeStyle:
  stroke: "#333"
  radius: 3
  label:
    size: 12
gridStyle:
  strokeWidth: 2
titleStyle:
  color: "#111"
title: Energy
duration: 250ms
location: UTC
`

func TestDecodeYAML(t *testing.T) {
	b, err := DecodeYAML(strings.NewReader(axisDoc))
	require.NoError(t, err)
	cfg, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, scale.Log, cfg.Scale)
	assert.Equal(t, []interface{}{1, 1000}, cfg.Domain)
	assert.Equal(t, Left, cfg.Orient)
	assert.Equal(t, 120.0, cfg.Width)
	assert.Equal(t, 300.0, cfg.Height)
	assert.Equal(t, AlignStart, cfg.Align)
	assert.Equal(t, RotationOff, cfg.LabelRotation)
	assert.Equal(t, SuffixSmallest, cfg.TickSuffix)
	assert.Equal(t, render.Circle, cfg.Shape)
	assert.Equal(t, "#333", cfg.ShapeStyle.Stroke)
	assert.Equal(t, 3.0, cfg.ShapeStyle.Radius)
	assert.Equal(t, 12.0, cfg.ShapeStyle.Label.Size)
	assert.Equal(t, "#000", cfg.ShapeStyle.Label.Color)
	assert.Equal(t, 2.0, cfg.GridStyle.StrokeWidth)
	assert.Equal(t, "#ccc", cfg.GridStyle.Stroke)
	assert.Equal(t, "#111", cfg.TitleStyle.Color)
	assert.Equal(t, 12.0, cfg.TitleStyle.Size)
	assert.Equal(t, "Energy", cfg.Title)
	assert.Equal(t, 250*time.Millisecond, cfg.Duration)
	assert.Equal(t, time.UTC, cfg.Location)
}

func TestDecodeYAMLEmpty(t *testing.T) {
	b, err := DecodeYAML(strings.NewReader(""))
	require.NoError(t, err)
	cfg, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, Bottom, cfg.Orient)
	assert.Equal(t, 400.0, cfg.Width)
}

func TestDecodeYAMLErrors(t *testing.T) {
	_, err := DecodeYAML(strings.NewReader("orient: diagonal\n"))
	assert.Equal(t, ErrUnknownOrient, errors.Cause(err))

	_, err = DecodeYAML(strings.NewReader("scale: radial\n"))
	assert.Equal(t, ErrUnknownScale, errors.Cause(err))

	_, err = DecodeYAML(strings.NewReader("colour: red\n"))
	assert.Error(t, err)

	_, err = DecodeYAML(strings.NewReader("duration: soon\n"))
	assert.Error(t, err)

	_, err = DecodeYAML(strings.NewReader("labelRotation: sideways\n"))
	assert.Equal(t, ErrUnknownRotation, errors.Cause(err))
}
