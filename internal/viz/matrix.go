package viz

import (
	"math"

	"labor-dashboard/internal/model"
)

func validateMatrix(cfg model.MatrixConfig) error {
	c := newChecker("matrix")
	c.field(cfg.Row, "row")
	c.field(cfg.Column, "column")
	c.reducer(cfg.Reducer, model.ReduceLast, model.ReduceSum, model.ReduceMean, model.ReduceCount)
	if cfg.Reducer != model.ReduceCount {
		c.field(cfg.Value, "value")
	}
	c.require(cfg.MaxCells >= 0, "max_cells must not be negative, got %d", cfg.MaxCells)
	c.bound(cfg.RowBound, "row")
	c.bound(cfg.ColumnBound, "column")
	return c.err()
}

// fitCells shrinks the row and column counts until their product fits in
// maxCells. Only the longer side is cut when the shorter one already fits
// under sqrt(maxCells); otherwise rows are held at sqrt(maxCells) and columns
// take what remains.
func fitCells(rows, cols, maxCells int) (int, int) {
	if rows*cols <= maxCells {
		return rows, cols
	}
	side := int(math.Sqrt(float64(maxCells)))
	if side < 1 {
		side = 1
	}
	switch {
	case cols <= side:
		rows = maxCells / cols
	case rows <= side:
		cols = maxCells / rows
	default:
		rows = side
		cols = min(cols, maxCells/rows)
	}
	return rows, cols
}

// Matrix builds a dense heatmap from records keyed by a row and a column
// category. Both axes are bounded and then shrunk to fit MaxCells before any
// cell is allocated; Dropped counts the row and column labels cut. Cells
// without a parsable value stay empty, and Min/Max cover populated cells only.
func Matrix(records []model.Record, cfg model.MatrixConfig) model.Result[model.Matrix] {
	if err := validateMatrix(cfg); err != nil {
		return model.Failed[model.Matrix](err)
	}
	if len(records) == 0 {
		return model.Empty[model.Matrix](ErrEmptyInput)
	}

	kind := cfg.Reducer
	if kind == "" {
		kind = model.ReduceLast
	}
	value := cfg.Value
	if kind == model.ReduceCount {
		value = ""
	}
	if missing := missingFields(records[0], cfg.Row, cfg.Column, value); len(missing) > 0 {
		return model.Failed[model.Matrix](&SchemaError{Component: "matrix", Missing: missing})
	}

	maxCells := cfg.MaxCells
	if maxCells == 0 {
		maxCells = DefaultMaxCells
	}
	rowLabels, rowsDropped := BoundField(records, cfg.Row, cfg.RowBound, DefaultMatrixAxisCap)
	colLabels, colsDropped := BoundField(records, cfg.Column, cfg.ColumnBound, DefaultMatrixAxisCap)
	nr, nc := fitCells(len(rowLabels), len(colLabels), maxCells)
	rowsDropped += len(rowLabels) - nr
	colsDropped += len(colLabels) - nc
	rowLabels, colLabels = rowLabels[:nr], colLabels[:nc]

	rowIdx := indexOf(rowLabels)
	colIdx := indexOf(colLabels)
	acc := make([][]accumulator, nr)
	for i := range acc {
		acc[i] = make([]accumulator, nc)
	}

	for _, r := range records {
		i, ok := rowIdx[Category(r, cfg.Row, DefaultCategory)]
		if !ok {
			continue
		}
		j, ok := colIdx[Category(r, cfg.Column, DefaultCategory)]
		if !ok {
			continue
		}
		if value == "" {
			acc[i][j].add(0)
			continue
		}
		if v, ok := LookupNumber(r, value); ok {
			acc[i][j].add(v)
		}
	}

	out := model.Matrix{
		RowLabels:    rowLabels,
		ColumnLabels: colLabels,
		Cells:        make([][]model.NullFloat, nr),
		Dropped:      rowsDropped + colsDropped,
	}
	for i := range acc {
		out.Cells[i] = make([]model.NullFloat, nc)
		for j, a := range acc[i] {
			if a.n == 0 {
				continue
			}
			v := a.reduce(kind)
			out.Cells[i][j] = model.Float(v)
			if out.Populated == 0 || v < out.Min {
				out.Min = v
			}
			if out.Populated == 0 || v > out.Max {
				out.Max = v
			}
			out.Populated++
		}
	}
	if out.Populated == 0 {
		return model.Empty[model.Matrix](ErrEmptyInput)
	}
	return model.Ready(out)
}
