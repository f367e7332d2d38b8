// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package metrics defines the application's Prometheus collectors. They
// are registered onto the metrics server registry at startup.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Result label values for RecalculationsTotal.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// RecalculationsTotal counts per-client insight recalculations by outcome.
var RecalculationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "client_insights_recalculations_total",
		Help: "Total number of per-client insight recalculations",
	},
	[]string{"result"},
)

// RecalculationDuration observes how long a single client recalculation
// takes, data fetch included.
var RecalculationDuration = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "client_insights_recalculation_duration_seconds",
		Help:    "Duration of a single client insight recalculation",
		Buckets: prometheus.DefBuckets,
	},
)

// SummarizeRequestsTotal counts meeting note summarization requests.
var SummarizeRequestsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "client_insights_summarize_requests_total",
		Help: "Total number of meeting note summarization requests",
	},
)

// Collectors returns every application collector for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		RecalculationsTotal,
		RecalculationDuration,
		SummarizeRequestsTotal,
	}
}
