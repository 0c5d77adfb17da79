package viz

import (
	"sort"

	"labor-dashboard/internal/model"
)

// singleSeries names the only series of a line chart without a series field.
const singleSeries = "value"

func validateLine(cfg model.LineConfig) error {
	c := newChecker("line")
	c.field(cfg.X, "x")
	c.field(cfg.Y, "y")
	c.bound(cfg.XBound, "x")
	c.bound(cfg.SeriesBound, "series")
	return c.err()
}

// Line builds a time series. X positions are ordered chronologically when
// every label is a date and alphabetically otherwise. With a series field
// each (x, series) pair takes the first matching record; pairs without one
// are gaps, which are never reported as 0. Dropped counts the x positions and
// series cut by their bounds.
func Line(records []model.Record, cfg model.LineConfig) model.Result[model.LineChart] {
	if err := validateLine(cfg); err != nil {
		return model.Failed[model.LineChart](err)
	}
	if len(records) == 0 {
		return model.Empty[model.LineChart](ErrEmptyInput)
	}
	if missing := missingFields(records[0], cfg.X, cfg.Y, cfg.Series); len(missing) > 0 {
		return model.Failed[model.LineChart](&SchemaError{Component: "line", Missing: missing})
	}

	xBound := cfg.XBound
	if xBound.Order == "" {
		xBound.Order = model.OrderTemporal
	}
	var chart model.LineChart
	if cfg.Series == "" {
		chart = singleLine(records, cfg, xBound)
	} else {
		chart = multiLine(records, cfg, xBound)
	}
	if len(chart.Points) == 0 {
		return model.Empty[model.LineChart](ErrEmptyInput)
	}
	return model.Ready(chart)
}

func singleLine(records []model.Record, cfg model.LineConfig, xBound model.Bound) model.LineChart {
	limit := xBound.Cap
	if limit == 0 {
		limit = DefaultLineXCap
	}
	dropped := 0
	if len(records) > limit {
		dropped = len(records) - limit
		records = records[:limit]
	}
	points := make([]model.LinePoint, 0, len(records))
	for _, r := range records {
		y, ok := LookupNumber(r, cfg.Y)
		if !ok {
			continue
		}
		points = append(points, model.LinePoint{
			X:      Category(r, cfg.X, DefaultCategory),
			Values: map[string]model.NullFloat{singleSeries: model.Float(y)},
		})
	}

	labels := make([]string, len(points))
	for i, p := range points {
		labels[i] = p.X
	}
	arrange(labels, xBound.Order)
	rank := make(map[string]int, len(labels))
	for i, l := range labels {
		if _, seen := rank[l]; !seen {
			rank[l] = i
		}
	}
	sort.SliceStable(points, func(i, j int) bool {
		return rank[points[i].X] < rank[points[j].X]
	})
	return model.LineChart{X: cfg.X, Series: []string{singleSeries}, Points: points, Dropped: dropped}
}

func multiLine(records []model.Record, cfg model.LineConfig, xBound model.Bound) model.LineChart {
	xs, xDropped := BoundField(records, cfg.X, xBound, DefaultLineXCap)
	series, sDropped := BoundField(records, cfg.Series, cfg.SeriesBound, DefaultLineSeriesCap)
	xIdx := indexOf(xs)
	sIdx := indexOf(series)

	grid := make([][]model.NullFloat, len(xs))
	for i := range grid {
		grid[i] = make([]model.NullFloat, len(series))
	}
	for _, r := range records {
		i, ok := xIdx[Category(r, cfg.X, DefaultCategory)]
		if !ok {
			continue
		}
		j, ok := sIdx[Category(r, cfg.Series, DefaultCategory)]
		if !ok || grid[i][j].Valid {
			continue
		}
		grid[i][j] = NullableNumber(r, cfg.Y)
	}

	points := make([]model.LinePoint, len(xs))
	for i, x := range xs {
		values := make(map[string]model.NullFloat, len(series))
		for j, s := range series {
			values[s] = grid[i][j]
		}
		points[i] = model.LinePoint{X: x, Values: values}
	}
	return model.LineChart{X: cfg.X, Series: series, Points: points, Dropped: xDropped + sDropped}
}
