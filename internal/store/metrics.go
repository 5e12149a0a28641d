package store

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the store's Prometheus collectors.
type Metrics struct {
	Mutations       *prometheus.CounterVec
	Loads           *prometheus.CounterVec
	PersistDuration prometheus.Histogram
	Projects        prometheus.Gauge
}

// NewMetrics builds the collectors and registers them on reg when reg is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tada_store_mutations_total",
				Help: "Store mutations by operation and status",
			},
			[]string{"op", "status"},
		),
		Loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tada_store_loads_total",
				Help: "Loads from storage by result (loaded, empty, malformed, error)",
			},
			[]string{"result"},
		),
		PersistDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tada_store_persist_duration_seconds",
				Help:    "Duration of writing the full project blob to storage",
				Buckets: prometheus.DefBuckets,
			},
		),
		Projects: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "tada_store_projects",
				Help: "Number of projects currently held by the store",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Mutations, m.Loads, m.PersistDuration, m.Projects)
	}
	return m
}

func (m *Metrics) mutation(op string, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.Mutations.WithLabelValues(op, status).Inc()
}

func (m *Metrics) load(result string) {
	if m == nil {
		return
	}
	m.Loads.WithLabelValues(result).Inc()
}

func (m *Metrics) persist(d time.Duration) {
	if m == nil {
		return
	}
	m.PersistDuration.Observe(d.Seconds())
}

func (m *Metrics) projects(n int) {
	if m == nil {
		return
	}
	m.Projects.Set(float64(n))
}
