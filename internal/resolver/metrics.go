package resolver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	verdicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "partsbot_resolver_verdicts_total",
		Help: "Resolution verdicts by entity kind, source stage and status.",
	}, []string{"kind", "source", "status"})

	oracleCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "partsbot_oracle_calls_total",
		Help: "Knowledge-fallback calls by outcome.",
	}, []string{"outcome"})
)
