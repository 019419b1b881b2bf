// Package metrics exposes store activity as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tripbuilder"

// Recorder counts store actions and times publish/save round-trips.
// It satisfies service.ActionRecorder.
type Recorder struct {
	registry *prometheus.Registry
	actions  *prometheus.CounterVec
	publish  *prometheus.HistogramVec
}

// NewRecorder registers the store metrics, plus the Go runtime and process
// collectors, on a private registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Store actions by name and result.",
		}, []string{"action", "result"}),
		publish: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "publish_duration_seconds",
			Help:      "Time spent waiting on the publisher.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind", "result"}),
	}
	reg.MustRegister(
		r.actions,
		r.publish,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Action counts one store action.
func (r *Recorder) Action(name string, err error) {
	r.actions.WithLabelValues(name, result(err)).Inc()
}

// Publish observes one publisher call.
func (r *Recorder) Publish(kind string, elapsed time.Duration, err error) {
	r.publish.WithLabelValues(kind, result(err)).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
