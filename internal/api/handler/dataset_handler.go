package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"labor-dashboard/internal/export"
	"labor-dashboard/internal/model"
	"labor-dashboard/pkg/router"
)

// ListDatasets returns the dataset names
// @Summary List datasets
// @Tags datasets
// @Produce json
// @Success 200 {array} string
// @Router /datasets [get]
func (h *Handler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Datasets())
}

// GetDataset returns the filtered records of a dataset
// @Summary Get dataset
// @Description Load a dataset from the backend, or the fallback catalog when the backend is unavailable. Query parameters filter the records.
// @Tags datasets
// @Produce json
// @Param name path string true "Dataset name"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse
// @Router /datasets/{name} [get]
func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	filters, _, err := parseQuery(r.URL.Query())
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	ds, err := h.svc.Dataset(r.Context(), router.Param(r, 0), filters)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

// ExportDataset downloads a dataset as CSV or JSON
// @Summary Export dataset
// @Description Project a dataset onto the requested columns (all fields by default), sort it and download it.
// @Tags datasets
// @Produce text/csv
// @Produce json
// @Param name path string true "Dataset name"
// @Param format query string false "csv or json" default(csv)
// @Param columns query string false "Comma separated fields"
// @Param sort query string false "Sort field"
// @Param desc query bool false "Sort descending"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /datasets/{name}/export [get]
func (h *Handler) ExportDataset(w http.ResponseWriter, r *http.Request) {
	name := router.Param(r, 0)
	query := r.URL.Query()
	filters, q, err := parseQuery(query)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	cfg := model.TableConfig{
		Columns: lo.Map(splitList(query.Get("columns")), func(f string, _ int) model.FieldSpec {
			return model.FieldSpec{Field: f}
		}),
	}

	res, err := h.svc.Table(r.Context(), name, filters, cfg, q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	switch {
	case res.IsError():
		badRequest(w, r, res.Message)
		return
	case res.IsEmpty():
		res.Data = &model.TablePage{Columns: cfg.Columns}
	}

	format := export.ParseFormat(query.Get("format"))
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+"."+string(format)))
	n, err := export.Write(w, format, *res.Data, export.Info{Dataset: name, ExportedAt: time.Now().UTC()})
	if err != nil {
		h.logger.Warn("export interrupted",
			zap.String("request_id", router.RequestID(r)), zap.String("dataset", name), zap.Int("rows", n), zap.Error(err))
	}
}
