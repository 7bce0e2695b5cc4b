// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package sqlcast

import "github.com/prometheus/client_golang/prometheus"

const (
	MetricQueries       = "queries_total"
	MetricQueryDuration = "query_duration_seconds"
	MetricCasts         = "casts_total"
	MetricErrors        = "errors_total"

	metricNamespace = "sqlcast"
)

// Outcome label values for CounterQueries.
const (
	outcomeOK           = "ok"
	outcomeCompileError = "compile_error"
	outcomeError        = "error"
)

var CounterQueries = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: metricNamespace,
		Name:      MetricQueries,
		Help:      "Number of SQL statements handled, by outcome.",
	},
	[]string{
		"outcome",
	},
)

var HistogramQueryDuration = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: metricNamespace,
		Name:      MetricQueryDuration,
		Help:      "Time taken to compile and run a SQL statement.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
	},
)

var CounterCasts = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: metricNamespace,
		Name:      MetricCasts,
		Help:      "Number of casts compiled or evaluated, by target type.",
	},
	[]string{
		"target",
	},
)

var CounterErrors = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: metricNamespace,
		Name:      MetricErrors,
		Help:      "Number of failed statements and casts, by error code.",
	},
	[]string{
		"code",
	},
)

func init() {
	prometheus.MustRegister(CounterQueries)
	prometheus.MustRegister(HistogramQueryDuration)
	prometheus.MustRegister(CounterCasts)
	prometheus.MustRegister(CounterErrors)
}
