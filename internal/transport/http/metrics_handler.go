package http

import (
	"net/http"

	"wmsapi/internal/infrastructure"
)

// MetricsHandler exposes the Prometheus scrape endpoint when the metrics
// exporter is enabled
type MetricsHandler struct {
	providers *infrastructure.OTelProviders
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler(providers *infrastructure.OTelProviders) *MetricsHandler {
	return &MetricsHandler{providers: providers}
}

// Handler returns the scrape handler, or a 404 when metrics are disabled
func (h *MetricsHandler) Handler() http.Handler {
	if h.providers != nil && h.providers.PrometheusHTTP != nil {
		return h.providers.PrometheusHTTP
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "metrics disabled", http.StatusNotFound)
	})
}
