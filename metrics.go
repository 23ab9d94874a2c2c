package svgaxis

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts axis renders. One Metrics may be shared by many axes.
type Metrics struct {
	Renders       *prometheus.CounterVec
	Refits        prometheus.Counter
	Rotations     prometheus.Counter
	Errors        prometheus.Counter
	LayoutSeconds prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg, if given.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "svgaxis",
			Name:      "renders_total",
			Help:      "Axis renders by scale kind and orientation.",
		}, []string{"scale", "orient"}),
		Refits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "svgaxis",
			Name:      "refits_total",
			Help:      "Layouts that needed a second scale pass.",
		}),
		Rotations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "svgaxis",
			Name:      "rotations_total",
			Help:      "Layouts with rotated labels.",
		}),
		Errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "svgaxis",
			Name:      "errors_total",
			Help:      "Failed renders.",
		}),
		LayoutSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "svgaxis",
			Name:      "layout_seconds",
			Help:      "Time spent computing axis layouts.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Renders, m.Refits, m.Rotations, m.Errors, m.LayoutSeconds)
	}
	return m
}

func (m *Metrics) observe(lay *Layout, took time.Duration) {
	if m == nil {
		return
	}
	m.LayoutSeconds.Observe(took.Seconds())
	m.Renders.WithLabelValues(lay.Config.Scale.String(), lay.Config.Orient.String()).Inc()
	if lay.Refit {
		m.Refits.Inc()
	}
	if lay.Rotated {
		m.Rotations.Inc()
	}
}

func (m *Metrics) failed() {
	if m != nil {
		m.Errors.Inc()
	}
}
