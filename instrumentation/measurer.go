package instrumentation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Measurer interface {
	Incr(activity string, name string, value float64, tags ...string)
	Timing(activity string, name string, value time.Duration, tags ...string)
}

type NilMeasurer struct{}

func (*NilMeasurer) Incr(activity string, name string, value float64, tags ...string)         {}
func (*NilMeasurer) Timing(activity string, name string, value time.Duration, tags ...string) {}

// PrometheusMeasurer records counters and timings as prometheus vectors labelled by activity and
// metric name. Tags are ignored, prometheus label sets must be fixed up front.
type PrometheusMeasurer struct {
	counters *prometheus.CounterVec
	timings  *prometheus.HistogramVec
}

var _ Measurer = (*PrometheusMeasurer)(nil)

// NewPrometheusMeasurer creates the collectors under namespace and registers them with registerer.
func NewPrometheusMeasurer(registerer prometheus.Registerer, namespace string) (*PrometheusMeasurer, error) {
	m := &PrometheusMeasurer{
		counters: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Number of observable events by activity and event name",
		}, []string{"activity", "name"}),
		timings: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "duration_seconds",
			Help:      "Observable timings by activity and timing name",
			Buckets:   prometheus.DefBuckets,
		}, []string{"activity", "name"}),
	}

	for _, c := range []prometheus.Collector{m.counters, m.timings} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *PrometheusMeasurer) Incr(activity string, name string, value float64, _ ...string) {
	m.counters.WithLabelValues(activity, name).Add(value)
}

func (m *PrometheusMeasurer) Timing(activity string, name string, value time.Duration, _ ...string) {
	m.timings.WithLabelValues(activity, name).Observe(value.Seconds())
}

// Counter exposes the underlying counter for an activity and name.
func (m *PrometheusMeasurer) Counter(activity string, name string) prometheus.Counter {
	return m.counters.WithLabelValues(activity, name)
}
