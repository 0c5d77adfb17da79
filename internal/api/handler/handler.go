package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"labor-dashboard/internal/dashboard"
	"labor-dashboard/internal/model"
	"labor-dashboard/internal/source"
	"labor-dashboard/pkg/router"
)

// Handler serves the dashboard HTTP API.
type Handler struct {
	svc    *dashboard.Service
	logger *zap.Logger
}

func New(svc *dashboard.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service errors onto status codes.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, dashboard.ErrUnknownDashboard), errors.Is(err, source.ErrUnknownDataset):
		status = http.StatusNotFound
	case errors.Is(err, dashboard.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("request_id", router.RequestID(r)), zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error(), RequestID: router.RequestID(r)})
}

func badRequest(w http.ResponseWriter, r *http.Request, msg string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msg, RequestID: router.RequestID(r)})
}

// Query parameters that are never treated as dataset filters.
var reserved = map[string]bool{"sort": true, "desc": true, "page": true, "format": true, "columns": true}

// parseQuery splits a query string into filters and table view state.
// Only the first value of a repeated parameter is used.
func parseQuery(q url.Values) (source.Filters, model.TableQuery, error) {
	filters := source.Filters{}
	for k, vs := range q {
		if !reserved[k] && len(vs) > 0 {
			filters[k] = vs[0]
		}
	}
	tq := model.TableQuery{SortBy: q.Get("sort"), Desc: cast.ToBool(q.Get("desc"))}
	if p := q.Get("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, tq, errors.New("page must be an integer")
		}
		tq.Page = n
	}
	return filters, tq, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Health reports liveness
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
