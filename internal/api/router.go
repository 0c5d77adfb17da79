package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	_ "labor-dashboard/docs"
	"labor-dashboard/internal/api/handler"
	"labor-dashboard/internal/metrics"
	"labor-dashboard/pkg/router"
)

func RegisterRoutes(r *router.Router, h *handler.Handler, rec *metrics.Recorder) {
	r.GET("/api/v1/health", h.Health)
	r.GET("/api/v1/dashboards", h.ListDashboards)
	r.GET("/api/v1/dashboards/*", h.GetDashboard)
	r.POST("/api/v1/widgets", h.RenderWidget)
	r.GET("/api/v1/datasets", h.ListDatasets)
	// More specific routes first
	r.GET("/api/v1/datasets/*/export", h.ExportDataset)
	r.GET("/api/v1/datasets/*", h.GetDataset)

	if rec != nil {
		r.Handle("/metrics", rec.Handler())
	}
	r.Handle("/swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}
