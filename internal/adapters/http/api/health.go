// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/scout/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandler handles health check requests.
type HealthHandler struct{}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// HandleHealth handles GET /healthz requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// MetricsHandler serves Prometheus metrics.
type MetricsHandler struct {
	inner http.Handler
}

// NewMetricsHandler creates a handler backed by the custom metrics registry.
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{
		inner: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// HandleMetrics handles GET /metrics requests.
func (h *MetricsHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	h.inner.ServeHTTP(w, r)
}
