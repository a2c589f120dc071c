package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeFailed   = "failed"
)

var (
	lookupMetricsOnce sync.Once

	userLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_lookups_total",
			Help: "Total number of user lookups by outcome",
		},
		[]string{"outcome"},
	)

	dbConnectionErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "db_connection_errors_total",
			Help: "Total number of failed attempts to acquire a database connection",
		},
	)
)

func RegisterLookupMetrics() {
	lookupMetricsOnce.Do(func() {
		prometheus.MustRegister(userLookupsTotal, dbConnectionErrorsTotal)
	})
}

func IncLookup(outcome string) {
	RegisterLookupMetrics()
	userLookupsTotal.WithLabelValues(outcome).Inc()
}

func IncConnectionError() {
	RegisterLookupMetrics()
	dbConnectionErrorsTotal.Inc()
}
