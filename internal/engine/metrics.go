package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	oracleCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "twentyfour_oracle_calls_total",
		Help: "Oracle calls issued by the search engine, by operation",
	}, []string{"op"})

	nodesExpanded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "twentyfour_nodes_expanded_total",
		Help: "Search nodes expanded through move proposals",
	})

	solveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "twentyfour_solve_total",
		Help: "Finished solve calls by outcome (success, exhausted, error)",
	}, []string{"outcome"})
)
