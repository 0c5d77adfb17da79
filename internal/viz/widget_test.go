package viz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labor-dashboard/internal/model"
)

func TestRenderDispatch(t *testing.T) {
	records := exampleRecords()
	tests := []struct {
		name   string
		widget model.WidgetSpec
	}{
		{"bar", model.WidgetSpec{ID: "w", Kind: model.WidgetBar, Aggregation: &model.AggregationConfig{GroupBy: []string{"tipo"}, Value: "n"}}},
		{"heatmap", model.WidgetSpec{ID: "w", Kind: model.WidgetHeatmap, Matrix: &model.MatrixConfig{Row: "tipo", Column: "region", Value: "n"}}},
		{"radar", model.WidgetSpec{ID: "w", Kind: model.WidgetRadar, Radar: &model.RadarConfig{Category: "tipo", Metrics: []model.MetricSpec{{Field: "n"}}}}},
		{"table", model.WidgetSpec{ID: "w", Kind: model.WidgetTable, Table: &model.TableConfig{Columns: []model.FieldSpec{{Field: "tipo"}}}}},
		{"line", model.WidgetSpec{ID: "w", Kind: model.WidgetLine, Line: &model.LineConfig{X: "region", Y: "n"}}},
		{"scatter", model.WidgetSpec{ID: "w", Kind: model.WidgetScatter, Scatter: &model.ScatterConfig{X: "n", Y: "n"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Render(records, tt.widget, model.TableQuery{})
			require.True(t, res.IsReady(), res.Message)
			assert.NotNil(t, res.Data)
		})
	}
}

func TestRenderMissingConfig(t *testing.T) {
	res := Render(exampleRecords(), model.WidgetSpec{ID: "w", Kind: model.WidgetRadar}, model.TableQuery{})
	require.True(t, res.IsError())
	var cfgErr *ConfigError
	assert.True(t, errors.As(res.Err, &cfgErr))

	unknown := Render(exampleRecords(), model.WidgetSpec{ID: "w", Kind: "pie"}, model.TableQuery{})
	assert.True(t, unknown.IsError())
	assert.Contains(t, unknown.Message, "pie")
}
