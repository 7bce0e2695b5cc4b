// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package sqlcast_test

import (
	"context"
	"testing"

	"github.com/featurebasedb/sqlcast"
	"github.com/prometheus/client_golang/prometheus"
	io_prometheus_client "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Registered(t *testing.T) {
	api := newAPI(t)
	ctx := context.Background()

	// Vec metrics are only gathered once a label set has been observed.
	_, err := api.Query(ctx, "select '1'::int", false)
	require.NoError(t, err)
	_, err = api.Query(ctx, "select 'x'::int", false)
	require.NoError(t, err)

	metricFams, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, metricName := range []string{
		"sqlcast_" + sqlcast.MetricQueries,
		"sqlcast_" + sqlcast.MetricQueryDuration,
		"sqlcast_" + sqlcast.MetricCasts,
		"sqlcast_" + sqlcast.MetricErrors,
	} {
		if metricExists(metricName, metricFams) {
			continue
		}
		t.Fatalf("metric does not exist: %s", metricName)
	}
}

func TestMetrics_CastTargets(t *testing.T) {
	api := newAPI(t)
	ctx := context.Background()

	before := counterValue(t, "sqlcast_"+sqlcast.MetricCasts, "target", "date")
	_, err := api.Query(ctx, "select cast('2020-01-01' as date), '2020-01-02'::date", false)
	require.NoError(t, err)
	after := counterValue(t, "sqlcast_"+sqlcast.MetricCasts, "target", "date")
	require.Equal(t, before+2, after)
}

func metricExists(metricName string, metricFams []*io_prometheus_client.MetricFamily) bool {
	for _, metricFam := range metricFams {
		if metricFam.GetName() == metricName {
			return true
		}
	}
	return false
}

// counterValue returns the value of the counter in family name whose label
// matches value, or zero if there is none yet.
func counterValue(t *testing.T, name, label, value string) float64 {
	t.Helper()
	metricFams, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, fam := range metricFams {
		if fam.GetName() != name {
			continue
		}
		for _, m := range fam.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}
