package analysis

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus metrics of the analysis pipeline.
type Metrics struct {
	FetchDuration   *prometheus.HistogramVec // labels: provider
	ComputeDuration prometheus.Histogram
	PeriodsFetched  *prometheus.CounterVec // labels: provider
	ErrorsTotal     *prometheus.CounterVec // labels: stage, code
}

// NewMetrics creates the metrics without registering them.
func NewMetrics() *Metrics {
	return &Metrics{
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "indicators_fetch_duration_seconds",
			Help:    "Latency of one series fetch from a data source",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		ComputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "indicators_compute_duration_seconds",
			Help:    "Latency of computing the full indicator set",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		PeriodsFetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "indicators_periods_fetched_total",
			Help: "Total periods received from data sources",
		}, []string{"provider"}),
		ErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "indicators_errors_total",
			Help: "Pipeline failures by stage and error code",
		}, []string{"stage", "code"}),
	}
}

// Register registers every metric with the registerer.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.FetchDuration,
		m.ComputeDuration,
		m.PeriodsFetched,
		m.ErrorsTotal,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}

	return nil
}
