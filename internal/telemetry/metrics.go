package telemetry

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics is the per-run metric set. A run is one short-lived process, so the
// registry is pushed once at the end instead of being scraped.
type Metrics struct {
	Registry *prometheus.Registry

	FetchDuration prometheus.Histogram
	FetchBytes    prometheus.Counter
	Records       prometheus.Counter
	StageDuration *prometheus.HistogramVec
	SinkPushes    *prometheus.CounterVec
	LastSuccess   prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "launchfeed_fetch_duration_seconds",
			Help:    "Time spent fetching the upstream envelope.",
			Buckets: prometheus.DefBuckets,
		}),
		FetchBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "launchfeed_fetch_bytes_total",
			Help: "Response bytes read from upstream.",
		}),
		Records: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "launchfeed_records_total",
			Help: "Launch records handed to sinks.",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "launchfeed_stage_duration_seconds",
			Help:    "Time spent in each transform stage.",
			Buckets: []float64{.00001, .0001, .001, .01, .1},
		}, []string{"stage"}),
		SinkPushes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "launchfeed_sink_pushes_total",
			Help: "Sink pushes by sink and outcome.",
		}, []string{"sink", "outcome"}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "launchfeed_last_success_timestamp_seconds",
			Help: "Unix time of the last run that reached every sink.",
		}),
	}
	m.Registry = prometheus.NewRegistry()
	m.Registry.MustRegister(m.FetchDuration, m.FetchBytes, m.Records, m.StageDuration, m.SinkPushes, m.LastSuccess)
	return m
}

func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (m *Metrics) ObserveSink(name string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.SinkPushes.WithLabelValues(name, outcome).Inc()
}

// Push sends the registry to a Pushgateway. An empty url is a no-op.
func (m *Metrics) Push(ctx context.Context, url, job string) error {
	if url == "" {
		return nil
	}
	return push.New(url, job).Gatherer(m.Registry).PushContext(ctx)
}
