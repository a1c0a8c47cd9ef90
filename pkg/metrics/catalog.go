package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics records upstream catalog fetch outcomes.
type CatalogMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	stale    *prometheus.CounterVec
}

// NewCatalogMetrics registers the catalog fetch metrics on the provided registerer.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_fetch_duration_seconds",
		Help:    "Duration of upstream catalog fetches in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"category"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_fetch_success",
		Help: "Successful upstream catalog fetches.",
	}, []string{"category"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_fetch_failure",
		Help: "Failed upstream catalog fetches.",
	}, []string{"category"})
	stale := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_fetch_stale_dropped",
		Help: "Catalog fetch results discarded because the category session moved on.",
	}, []string{"category"})
	reg.MustRegister(duration, success, failure, stale)
	return &CatalogMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		stale:    stale,
	}
}

// ObserveDuration records the duration of a fetch for the category.
func (c *CatalogMetrics) ObserveDuration(category string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(category)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the category.
func (c *CatalogMetrics) IncSuccess(category string) {
	if c == nil || c.success == nil {
		return
	}
	c.success.WithLabelValues(normalizeLabel(category)).Inc()
}

// IncFailure increments the failure counter for the category.
func (c *CatalogMetrics) IncFailure(category string) {
	if c == nil || c.failure == nil {
		return
	}
	c.failure.WithLabelValues(normalizeLabel(category)).Inc()
}

// IncStaleDropped increments the stale-drop counter for the category.
func (c *CatalogMetrics) IncStaleDropped(category string) {
	if c == nil || c.stale == nil {
		return
	}
	c.stale.WithLabelValues(normalizeLabel(category)).Inc()
}

func normalizeLabel(category string) string {
	if category == "" {
		return "unknown"
	}
	return category
}
