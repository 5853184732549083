// Package metrics provides optional Prometheus instrumentation for
// layering sessions. The layering engine itself never imports this
// package — it is a pure function with no observability hooks of its own;
// callers (such as cmd/layerctl) record metrics around their calls to
// layering.Render.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder records outcomes of rendering sessions. The zero value is not
// usable; construct one with NewRecorder. A nil *Recorder is safe to call
// methods on and is a no-op, so instrumentation can be wired in optionally.
type Recorder struct {
	renderTotal    *prometheus.CounterVec
	renderDuration prometheus.Histogram
}

// NewRecorder creates a Recorder and registers its collectors with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		renderTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "layerforge_render_total",
			Help: "Total number of layering render sessions, by outcome.",
		}, []string{"outcome"}),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "layerforge_render_duration_seconds",
			Help:    "Duration of layering render sessions.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(r.renderTotal, r.renderDuration)

	return r
}

// ObserveRender records one render session's duration and whether it
// succeeded.
func (r *Recorder) ObserveRender(d time.Duration, err error) {
	if r == nil {
		return
	}

	outcome := "success"
	if err != nil {
		outcome = "failure"
	}

	r.renderTotal.WithLabelValues(outcome).Inc()
	r.renderDuration.Observe(d.Seconds())
}
