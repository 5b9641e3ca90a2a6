package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// IconCache — счётчики кеша списка SVG-источников.
type IconCache struct {
	hits          prometheus.Counter
	misses        prometheus.Counter
	invalidations prometheus.Counter
}

// NewIconCache регистрирует счётчики в reg (nil — prometheus.DefaultRegisterer).
func NewIconCache(reg prometheus.Registerer) *IconCache {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &IconCache{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "svgicon",
			Subsystem: "sources_cache",
			Name:      "hits_total",
			Help:      "Source list reads served from cache.",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "svgicon",
			Subsystem: "sources_cache",
			Name:      "misses_total",
			Help:      "Source list reads that triggered discovery.",
		}),
		invalidations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "svgicon",
			Subsystem: "sources_cache",
			Name:      "invalidations_total",
			Help:      "Cache drops caused by saved SVG attachments.",
		}),
	}
	reg.MustRegister(m.hits, m.misses, m.invalidations)
	return m
}

func (m *IconCache) Hit()        { m.hits.Inc() }
func (m *IconCache) Miss()       { m.misses.Inc() }
func (m *IconCache) Invalidate() { m.invalidations.Inc() }
