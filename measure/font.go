package measure

import (
	"strings"
	"sync"

	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/font/liberation"
)

// FontMetrics measures text with the Liberation fonts shipped with
// gonum/plot. Family names are matched loosely: anything mentioning "mono"
// or "courier" uses Liberation Mono, a plain "serif" family uses Liberation
// Serif and everything else Liberation Sans. Sizes are taken as points,
// one point per pixel.
type FontMetrics struct {
	once  sync.Once
	cache *font.Cache
}

func (m *FontMetrics) Width(s, family string, size float64) float64 {
	m.once.Do(func() {
		m.cache = font.NewCache(liberation.Collection())
	})
	face := m.cache.Lookup(Font(family), font.Points(size))
	return face.Width(s).Points()
}

// Font maps a CSS-like family name onto a Liberation font descriptor.
func Font(family string) font.Font {
	f := strings.ToLower(family)
	variant := "Sans"
	switch {
	case strings.Contains(f, "mono"), strings.Contains(f, "courier"):
		variant = "Mono"
	case strings.Contains(f, "serif") && !strings.Contains(f, "sans"),
		strings.Contains(f, "times"), strings.Contains(f, "georgia"):
		variant = "Serif"
	}
	return font.Font{Typeface: "Liberation", Variant: font.Variant(variant)}
}

// NewFontMeasurer returns a Measurer backed by FontMetrics.
func NewFontMeasurer() Measurer {
	return Wrapper{Metrics: &FontMetrics{}}
}
