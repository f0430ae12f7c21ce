package http

import (
	"net/http"

	"github.com/go-chi/render"
)

// MetricsHandler exposes the Prometheus scrape endpoint
type MetricsHandler struct {
	scrape http.Handler
}

// NewMetricsHandler creates a new metrics handler. A nil scrape handler
// means the Prometheus exporter is disabled.
func NewMetricsHandler(scrape http.Handler) *MetricsHandler {
	return &MetricsHandler{scrape: scrape}
}

// Enabled reports whether a scrape handler is configured
func (h *MetricsHandler) Enabled() bool {
	return h.scrape != nil
}

// GetMetrics handles GET /metrics
func (h *MetricsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	if h.scrape == nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, map[string]interface{}{
			"status":  "disabled",
			"message": "prometheus exporter is not enabled",
		})
		return
	}
	h.scrape.ServeHTTP(w, r)
}
