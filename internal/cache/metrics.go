package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "twentyfour_cache_hits_total",
		Help: "Feasibility lookups answered from the judgment cache",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "twentyfour_cache_misses_total",
		Help: "Feasibility lookups that required an oracle call",
	})

	cacheSaves = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "twentyfour_cache_saves_total",
		Help: "Cache flushes by result (ok, error, clean)",
	}, []string{"result"})

	cacheEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "twentyfour_cache_entries",
		Help: "Judgments currently held in memory",
	})
)
