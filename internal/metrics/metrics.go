// Package metrics defines the Prometheus collectors exported at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "fairsplit"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)
	httpLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	expensesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expenses_created_total",
			Help:      "Expenses recorded by split type",
		},
		[]string{"split_type"},
	)

	settlementReports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlement_reports_total",
			Help:      "Settlement reports computed by result",
		},
		[]string{"result"},
	)
	settlementLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settlement_report_duration_seconds",
			Help:      "Time spent building a settlement report",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
	)
	settlementTransfers = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settlement_transfers",
			Help:      "Number of transfers emitted per settlement report",
			Buckets:   prometheus.LinearBuckets(0, 1, 10),
		},
	)
)

// ObserveHTTP records one served request
func ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpLatency.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ExpenseCreated counts a stored expense
func ExpenseCreated(splitType string) {
	expensesCreated.WithLabelValues(splitType).Inc()
}

// ObserveSettlement records one settlement report computation
func ObserveSettlement(elapsed time.Duration, transfers int, err error) {
	if err != nil {
		settlementReports.WithLabelValues(resultError).Inc()
		return
	}
	settlementReports.WithLabelValues(resultSuccess).Inc()
	settlementLatency.Observe(elapsed.Seconds())
	settlementTransfers.Observe(float64(transfers))
}
