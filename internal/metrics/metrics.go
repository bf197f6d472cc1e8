package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"postmarket/internal/db"
)

var (
	requestsByStatusDesc = prometheus.NewDesc(
		"postmarket_publisher_requests",
		"Publisher request count by status",
		[]string{"status"},
		nil,
	)

	submissionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "postmarket_submissions_total",
		Help: "Total publisher request submissions accepted",
	})

	analysisRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "postmarket_analysis_runs_total",
		Help: "Total website analysis runs by trigger",
	}, []string{"trigger"})
)

// StatusCollector is a custom Prometheus collector that reads publisher
// request counts from the database on each scrape.
type StatusCollector struct {
	db *db.DB
}

// Describe sends the metric descriptor to the channel.
func (c *StatusCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- requestsByStatusDesc
}

// Collect queries the database for request counts and emits them as gauges.
func (c *StatusCollector) Collect(ch chan<- prometheus.Metric) {
	counts, err := c.db.CountRequestsByStatus(context.Background())
	if err != nil {
		slog.Error("failed to collect request status metrics", "error", err)
		return
	}
	for status, count := range counts {
		ch <- prometheus.MustNewConstMetric(
			requestsByStatusDesc,
			prometheus.GaugeValue,
			float64(count),
			status,
		)
	}
}

var initOnce sync.Once

// Init registers the custom collector and counters.
// Must be called once at startup.
func Init(database *db.DB) {
	initOnce.Do(func() {
		prometheus.MustRegister(&StatusCollector{db: database})
		prometheus.MustRegister(submissionsTotal, analysisRunsTotal)
	})
}

// RecordSubmission counts an accepted publisher request.
func RecordSubmission() {
	submissionsTotal.Inc()
}

// RecordAnalysisRun counts an analysis run. Trigger is "submit", "manual"
// or "refresh".
func RecordAnalysisRun(trigger string) {
	analysisRunsTotal.WithLabelValues(trigger).Inc()
}
