package dashboard

import (
	"labor-dashboard/internal/config"
	"labor-dashboard/internal/model"
)

func fill(n *int, def int) {
	if *n == 0 {
		*n = def
	}
}

// WithCaps returns a copy of w whose unset caps are taken from caps. Only the
// copy is modified; registry specs stay untouched.
func WithCaps(w model.WidgetSpec, caps config.Caps) model.WidgetSpec {
	if a := w.Aggregation; a != nil {
		c := *a
		if c.Sort != model.SortNone {
			fill(&c.PrimaryBound.Cap, caps.Ranking)
		} else {
			fill(&c.PrimaryBound.Cap, caps.BarX)
		}
		fill(&c.SecondaryBound.Cap, caps.BarGroups)
		w.Aggregation = &c
	}
	if m := w.Matrix; m != nil {
		c := *m
		fill(&c.RowBound.Cap, caps.HeatmapRows)
		fill(&c.ColumnBound.Cap, caps.HeatmapColumns)
		fill(&c.MaxCells, caps.HeatmapMaxCells)
		w.Matrix = &c
	}
	if r := w.Radar; r != nil {
		c := *r
		fill(&c.CategoryBound.Cap, caps.RadarCategories)
		w.Radar = &c
	}
	if t := w.Table; t != nil {
		c := *t
		fill(&c.MaxRows, caps.TableRows)
		fill(&c.PageSize, caps.PageSize)
		w.Table = &c
	}
	if l := w.Line; l != nil {
		c := *l
		fill(&c.XBound.Cap, caps.LineX)
		fill(&c.SeriesBound.Cap, caps.LineSeries)
		w.Line = &c
	}
	if s := w.Scatter; s != nil {
		c := *s
		fill(&c.MaxPoints, caps.ScatterPoints)
		fill(&c.CategoryBound.Cap, caps.ScatterCategories)
		w.Scatter = &c
	}
	return w
}
