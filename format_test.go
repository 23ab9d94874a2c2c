package svgaxis

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decibelcooper/svgaxis/scale"
)

func TestAbbreviate(t *testing.T) {
	en := Locales["en-US"]
	for _, c := range []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{5, "5"},
		{0.25, "0.25"},
		{100, "100"},
		{1000, "1k"},
		{1500, "1.5k"},
		{-2500, "-2.5k"},
		{1e6, "1M"},
	} {
		assert.Equal(t, c.want, en.Abbreviate(c.in), "%v", c.in)
	}

	assert.Equal(t, "1,5 Tsd", Locales["de-DE"].Abbreviate(1500))
}

func TestLookupLocale(t *testing.T) {
	l, err := LookupLocale("fr-FR")
	require.NoError(t, err)
	assert.Equal(t, ",", l.Decimal)

	_, err = LookupLocale("xx-XX")
	assert.Equal(t, ErrUnknownLocale, errors.Cause(err))
}

func TestSmallest(t *testing.T) {
	unit := smallestUnit([]float64{500, 1000, 2500, 1e6})
	assert.Equal(t, 1, unit)

	en := Locales["en-US"]
	assert.Equal(t, "2.5k", en.Smallest(2500, unit))
	assert.Equal(t, "1,000k", en.Smallest(1e6, unit))
	assert.Equal(t, "1", en.Smallest(1, unit))

	assert.Equal(t, 0, smallestUnit([]float64{1, 2, 3}))
}

func TestFormatLog(t *testing.T) {
	assert.Equal(t, "10 ³", FormatLog(1000))
	assert.Equal(t, "10 ⁰", FormatLog(1))
	assert.Equal(t, "5 x 10 ²", FormatLog(500))
	assert.Equal(t, "-10 ²", FormatLog(-100))
	assert.Equal(t, "0", FormatLog(0))
}

func TestFormatTime(t *testing.T) {
	for _, c := range []struct {
		at   time.Time
		unit scale.Unit
		want string
	}{
		{time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), scale.Month, "2020"},
		{time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC), scale.Day, "Mar"},
		{time.Date(2020, 3, 3, 0, 0, 0, 0, time.UTC), scale.Day, "Tue 03"},
		{time.Date(2020, 3, 3, 13, 0, 0, 0, time.UTC), scale.Hour, "01 PM"},
		{time.Date(2020, 3, 3, 13, 5, 0, 0, time.UTC), scale.Minute, "01:05"},
		{time.Date(2020, 3, 3, 13, 5, 7, 0, time.UTC), scale.Second, ":07"},
		{time.Date(2020, 3, 3, 13, 5, 7, 250e6, time.UTC), scale.Millisecond, ".250"},
	} {
		s, err := FormatTime(c.at, c.unit)
		require.NoError(t, err)
		assert.Equal(t, c.want, s, "%v", c.at)
	}
}
