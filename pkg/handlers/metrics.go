package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/doctorew/pocket-morties/pkg/metrics"
)

// RegisterMetricsRoute exposes m's registry at GET /metrics.
func RegisterMetricsRoute(mux *http.ServeMux, m *metrics.Metrics, logger *zap.Logger) {
	mux.Handle("GET /metrics", promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{
		ErrorLog: zap.NewStdLog(logger.Named("metrics")),
	}))
}
