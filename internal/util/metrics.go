package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CacheLoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "entity_cache_loads_total",
		Help: "Cache load attempts per entity type and outcome",
	}, []string{"entity", "outcome"})

	CacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "entity_cache_hits_total",
		Help: "Loads skipped because the tenant was already cached",
	}, []string{"entity"})

	CacheInvalidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "entity_cache_invalidations_total",
		Help: "Cache invalidations per entity type",
	}, []string{"entity"})

	EntityWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "entity_writes_total",
		Help: "Entity mutations per entity type, operation and outcome",
	}, []string{"entity", "op", "outcome"})

	OrderStatusUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_updates_total",
		Help: "Order status transitions by target status",
	}, []string{"status"})

	StatsGenerationLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dashboard_stats_generation_seconds",
		Help:    "Latency of dashboard statistics generation",
		Buckets: prometheus.DefBuckets,
	})

	StatsCacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_stats_cache_total",
		Help: "Dashboard stats snapshot cache lookups by outcome",
	}, []string{"outcome"})

	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logins_total",
		Help: "Login attempts by outcome",
	}, []string{"outcome"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
