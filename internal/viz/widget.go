package viz

import (
	"fmt"

	"labor-dashboard/internal/model"
)

// Render dispatches records to the reducer selected by w.Kind. q is only
// read by table widgets.
func Render(records []model.Record, w model.WidgetSpec, q model.TableQuery) model.Result[any] {
	missing := func() model.Result[any] {
		return model.Failed[any](&ConfigError{
			Component: string(w.Kind),
			Err:       fmt.Errorf("widget %q has no %s configuration", w.ID, w.Kind),
		})
	}
	switch w.Kind {
	case model.WidgetBar:
		if w.Aggregation == nil {
			return missing()
		}
		return Group(records, *w.Aggregation).Erase()
	case model.WidgetHeatmap:
		if w.Matrix == nil {
			return missing()
		}
		return Matrix(records, *w.Matrix).Erase()
	case model.WidgetRadar:
		if w.Radar == nil {
			return missing()
		}
		return Radar(records, *w.Radar).Erase()
	case model.WidgetTable:
		if w.Table == nil {
			return missing()
		}
		return Table(records, *w.Table, q).Erase()
	case model.WidgetLine:
		if w.Line == nil {
			return missing()
		}
		return Line(records, *w.Line).Erase()
	case model.WidgetRegionMap:
		if w.Region == nil {
			return missing()
		}
		return Regions(records, *w.Region).Erase()
	case model.WidgetScatter:
		if w.Scatter == nil {
			return missing()
		}
		return Scatter(records, *w.Scatter).Erase()
	}
	return model.Failed[any](&ConfigError{
		Component: "widget",
		Err:       fmt.Errorf("widget %q has unknown kind %q", w.ID, w.Kind),
	})
}
