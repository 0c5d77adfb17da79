package viz

import "labor-dashboard/internal/model"

func validateRadar(cfg model.RadarConfig) error {
	c := newChecker("radar")
	c.field(cfg.Category, "category")
	c.require(len(cfg.Metrics) > 0, "at least one metric is required")
	for i, m := range cfg.Metrics {
		c.field(m.Field, "metric field")
		c.require(m.Name != "" || m.Field != "", "metric %d needs a name or field", i)
		if m.Domain != nil {
			c.require(m.Domain.Max > m.Domain.Min,
				"metric %q domain max %v must exceed min %v", m.Field, m.Domain.Max, m.Domain.Min)
		}
	}
	c.bound(cfg.CategoryBound, "category")
	return c.err()
}

// scaleToPercent maps v from domain onto [0, 100], clamped.
func scaleToPercent(v float64, d model.Domain) float64 {
	p := (v - d.Min) / (d.Max - d.Min) * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// Radar averages each metric per category and, where a metric declares a
// domain, rescales the average onto 0..100. The output is pivoted by metric.
// Unparsable values are left out of the average; a category with no usable
// values gets exactly 0 because a radar cannot draw a missing spoke.
func Radar(records []model.Record, cfg model.RadarConfig) model.Result[model.RadarChart] {
	if err := validateRadar(cfg); err != nil {
		return model.Failed[model.RadarChart](err)
	}
	if len(records) == 0 {
		return model.Empty[model.RadarChart](ErrEmptyInput)
	}

	sample := records[0]
	if !Has(sample, cfg.Category) {
		return model.Failed[model.RadarChart](&SchemaError{Component: "radar", Missing: []string{cfg.Category}})
	}
	var present []model.MetricSpec
	var absent []string
	for _, m := range cfg.Metrics {
		if Has(sample, m.Field) {
			present = append(present, m)
		} else {
			absent = append(absent, m.Field)
		}
	}
	if len(present) == 0 {
		return model.Failed[model.RadarChart](&SchemaError{Component: "radar", Missing: absent})
	}

	categories, dropped := BoundField(records, cfg.Category, cfg.CategoryBound, DefaultRadarCategories)
	catIdx := indexOf(categories)
	acc := make([][]accumulator, len(cfg.Metrics))
	for i := range acc {
		acc[i] = make([]accumulator, len(categories))
	}

	for _, r := range records {
		j, ok := catIdx[Category(r, cfg.Category, DefaultCategory)]
		if !ok {
			continue
		}
		for i, m := range cfg.Metrics {
			if v, ok := LookupNumber(r, m.Field); ok {
				acc[i][j].add(v)
			}
		}
	}

	rows := make([]model.RadarRow, len(cfg.Metrics))
	for i, m := range cfg.Metrics {
		name := m.Name
		if name == "" {
			name = m.Field
		}
		row := model.RadarRow{Metric: name, Values: make(map[string]float64, len(categories))}
		for j, cat := range categories {
			a := acc[i][j]
			if a.n == 0 {
				row.Values[cat] = 0
				continue
			}
			avg := a.reduce(model.ReduceMean)
			if m.Domain != nil {
				avg = scaleToPercent(avg, *m.Domain)
			}
			row.Values[cat] = avg
		}
		rows[i] = row
	}

	return model.Ready(model.RadarChart{Categories: categories, Rows: rows, Dropped: dropped})
}
