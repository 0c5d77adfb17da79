package viz

import "labor-dashboard/internal/model"

func validateScatter(cfg model.ScatterConfig) error {
	c := newChecker("scatter")
	c.field(cfg.X, "x")
	c.field(cfg.Y, "y")
	c.require(cfg.MaxPoints >= 0, "max_points must not be negative, got %d", cfg.MaxPoints)
	c.bound(cfg.CategoryBound, "category")
	return c.err()
}

// Scatter plots the first MaxPoints records. Records with an unparsable X or
// Y are dropped, and so are records whose category fell outside the bound.
func Scatter(records []model.Record, cfg model.ScatterConfig) model.Result[model.ScatterChart] {
	if err := validateScatter(cfg); err != nil {
		return model.Failed[model.ScatterChart](err)
	}
	if len(records) == 0 {
		return model.Empty[model.ScatterChart](ErrEmptyInput)
	}
	if missing := missingFields(records[0], cfg.X, cfg.Y); len(missing) > 0 {
		return model.Failed[model.ScatterChart](&SchemaError{Component: "scatter", Missing: missing})
	}

	limit := cfg.MaxPoints
	if limit == 0 {
		limit = DefaultScatterPoints
	}
	truncated := len(records) > limit
	if truncated {
		records = records[:limit]
	}

	categories := []string{DefaultCategory}
	dropped := 0
	if cfg.Category != "" {
		categories, dropped = BoundField(records, cfg.Category, cfg.CategoryBound, DefaultScatterCategories)
	}
	catIdx := indexOf(categories)

	points := make([]model.ScatterPoint, 0, len(records))
	for _, r := range records {
		x, okX := LookupNumber(r, cfg.X)
		y, okY := LookupNumber(r, cfg.Y)
		if !okX || !okY {
			continue
		}
		cat := DefaultCategory
		if cfg.Category != "" {
			cat = Category(r, cfg.Category, DefaultCategory)
		}
		if _, ok := catIdx[cat]; !ok {
			continue
		}
		size := model.Float(defaultScatterSize)
		if cfg.Size != "" {
			if s, ok := LookupNumber(r, cfg.Size); ok {
				size = model.Float(s)
			}
		}
		points = append(points, model.ScatterPoint{X: x, Y: y, Size: size, Category: cat})
	}
	if len(points) == 0 {
		return model.Empty[model.ScatterChart](ErrEmptyInput)
	}
	return model.Ready(model.ScatterChart{Categories: categories, Points: points, Truncated: truncated, Dropped: dropped})
}
