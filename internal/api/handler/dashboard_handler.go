package handler

import (
	"encoding/json"
	"net/http"

	"labor-dashboard/internal/model"
	"labor-dashboard/pkg/router"
)

// ListDashboards returns every dashboard definition
// @Summary List dashboards
// @Description Get the definitions of every available dashboard
// @Tags dashboards
// @Produce json
// @Success 200 {array} model.DashboardSpec
// @Router /dashboards [get]
func (h *Handler) ListDashboards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Dashboards())
}

// GetDashboard renders a dashboard
// @Summary Render dashboard
// @Description Load the dashboard's data and render every widget. Query parameters other than sort, desc and page filter the data.
// @Tags dashboards
// @Produce json
// @Param name path string true "Dashboard name"
// @Param sort query string false "Table sort field"
// @Param desc query bool false "Sort descending"
// @Param page query int false "Table page, 1-based"
// @Success 200 {object} model.DashboardResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /dashboards/{name} [get]
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	name := router.Param(r, 0)
	filters, q, err := parseQuery(r.URL.Query())
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	res, err := h.svc.Render(r.Context(), name, filters, q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// RenderWidget renders an ad-hoc widget
// @Summary Render widget
// @Description Render one widget over inline records or a named dataset. Widget level failures come back as a 200 with an error result.
// @Tags widgets
// @Accept json
// @Produce json
// @Param widget body model.WidgetRequest true "Widget request"
// @Success 200 {object} model.WidgetResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /widgets [post]
func (h *Handler) RenderWidget(w http.ResponseWriter, r *http.Request) {
	var req model.WidgetRequest
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		badRequest(w, r, "invalid JSON payload")
		return
	}
	res, err := h.svc.RenderWidget(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
