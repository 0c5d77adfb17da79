package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"labor-dashboard/internal/config"
	"labor-dashboard/internal/metrics"
	"labor-dashboard/internal/model"
	"labor-dashboard/internal/source"
	"labor-dashboard/internal/viz"
)

// ErrInvalidRequest marks requests that can never succeed as sent.
var ErrInvalidRequest = errors.New("invalid request")

// renderWorkers caps how many widgets of one dashboard render at once.
const renderWorkers = 4

// Service loads datasets and renders dashboards over them.
type Service struct {
	loader   *source.Loader
	registry *Registry
	caps     config.Caps
	logger   *zap.Logger
	metrics  *metrics.Recorder
	now      func() time.Time
}

// NewService wires a Service. logger and rec may be nil.
func NewService(loader *source.Loader, registry *Registry, caps config.Caps, logger *zap.Logger, rec *metrics.Recorder) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		loader:   loader,
		registry: registry,
		caps:     caps,
		logger:   logger,
		metrics:  rec,
		now:      time.Now,
	}
}

// Dashboards lists every registered dashboard.
func (s *Service) Dashboards() []model.DashboardSpec {
	return s.registry.List()
}

// Datasets lists the dataset names the service can load.
func (s *Service) Datasets() []string {
	return s.loader.Catalog().Names()
}

// Dataset loads one dataset with filters applied.
func (s *Service) Dataset(ctx context.Context, name string, filters source.Filters) (source.Dataset, error) {
	return s.loader.Load(ctx, name, filters)
}

// Render loads the datasets behind dashboard name and renders every widget.
// Filters outside the dashboard's allowed set are ignored. Widget failures
// are reported per widget; only load failures abort the render.
func (s *Service) Render(ctx context.Context, name string, filters source.Filters, q model.TableQuery) (model.DashboardResult, error) {
	spec, err := s.registry.Get(name)
	if err != nil {
		return model.DashboardResult{}, err
	}
	active := filters.Only(spec.Filters).Active()

	names := lo.Uniq(append([]string{spec.Dataset}, lo.FilterMap(spec.Widgets, func(w model.WidgetSpec, _ int) (string, bool) {
		return w.Dataset, w.Dataset != ""
	})...))

	loaded := make([]source.Dataset, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, n := range names {
		i, n := i, n
		g.Go(func() error {
			ds, err := s.loader.Load(gctx, n, active)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", n, err)
			}
			loaded[i] = ds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.DashboardResult{}, err
	}
	byName := lo.KeyBy(loaded, func(ds source.Dataset) string { return ds.Name })

	widgets := make([]model.WidgetResult, len(spec.Widgets))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(renderWorkers)
	for i, w := range spec.Widgets {
		i, w := i, w
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ds := byName[lo.Ternary(w.Dataset != "", w.Dataset, spec.Dataset)]
			widgets[i] = s.render(ds.Records, w, q)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.DashboardResult{}, err
	}

	primary := byName[spec.Dataset]
	s.logger.Debug("dashboard rendered",
		zap.String("dashboard", name),
		zap.String("origin", string(primary.Origin)),
		zap.Int("records", len(primary.Records)),
		zap.Int("widgets", len(widgets)))

	return model.DashboardResult{
		Name:           spec.Name,
		Title:          spec.Title,
		Dataset:        spec.Dataset,
		Origin:         string(primary.Origin),
		FallbackReason: primary.FallbackReason,
		Filters:        active,
		Widgets:        widgets,
		RenderedAt:     s.now().UTC(),
	}, nil
}

// RenderWidget renders an ad-hoc widget over inline records or a named
// dataset. Inline records win when both are given.
func (s *Service) RenderWidget(ctx context.Context, req model.WidgetRequest) (model.WidgetResult, error) {
	if req.Widget.Kind == "" {
		return model.WidgetResult{}, fmt.Errorf("%w: widget kind is required", ErrInvalidRequest)
	}
	records := req.Records
	switch {
	case len(records) > 0:
		records = source.Filters(req.Filters).Active().Apply(source.Normalize(records))
	case req.Dataset != "":
		ds, err := s.loader.Load(ctx, req.Dataset, req.Filters)
		if err != nil {
			return model.WidgetResult{}, err
		}
		records = ds.Records
	}
	return s.render(records, req.Widget, req.Query), nil
}

// Table projects every row of dataset name, unpaginated. When cfg has no
// columns, every field seen in the records becomes a column in name order.
func (s *Service) Table(ctx context.Context, name string, filters source.Filters, cfg model.TableConfig, q model.TableQuery) (model.Result[model.TablePage], error) {
	ds, err := s.loader.Load(ctx, name, filters)
	if err != nil {
		return model.Result[model.TablePage]{}, err
	}
	if len(ds.Records) == 0 {
		return model.Empty[model.TablePage](viz.ErrEmptyInput), nil
	}
	if len(cfg.Columns) == 0 {
		cfg.Columns = inferColumns(ds.Records)
	}
	if len(cfg.Sortable) == 0 {
		cfg.Sortable = lo.Map(cfg.Columns, func(c model.FieldSpec, _ int) string { return c.Field })
	}
	if cfg.MaxRows == 0 {
		cfg.MaxRows = s.caps.TableRows
	}
	return viz.TableRows(ds.Records, cfg, q), nil
}

func inferColumns(records []model.Record) []model.FieldSpec {
	seen := make(map[string]struct{})
	for _, r := range records {
		for k := range r {
			seen[k] = struct{}{}
		}
	}
	fields := lo.Keys(seen)
	sort.Strings(fields)
	return columns(fields...)
}

// droppedLabels reports how many category labels a chart cut to stay bounded.
func droppedLabels(data any) int {
	switch d := data.(type) {
	case model.GroupedSeries:
		return d.Dropped
	case model.Matrix:
		return d.Dropped
	case model.RadarChart:
		return d.Dropped
	case model.LineChart:
		return d.Dropped
	case model.ScatterChart:
		return d.Dropped
	}
	return 0
}

func (s *Service) render(records []model.Record, w model.WidgetSpec, q model.TableQuery) model.WidgetResult {
	res := viz.Render(records, WithCaps(w, s.caps), q)
	s.metrics.Widget(string(w.Kind), string(res.Kind))
	if res.IsReady() {
		s.metrics.Dropped(string(w.Kind), droppedLabels(*res.Data))
	}
	if res.IsError() {
		s.logger.Warn("widget failed", zap.String("widget", w.ID), zap.String("kind", string(w.Kind)), zap.Error(res.Err))
	}
	return model.WidgetResult{ID: w.ID, Title: w.Title, Kind: w.Kind, Result: res}
}
