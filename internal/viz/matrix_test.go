package viz

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labor-dashboard/internal/model"
)

func TestMatrixMinMax(t *testing.T) {
	var records []model.Record
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			records = append(records, model.Record{
				"fila":    fmt.Sprintf("r%d", i),
				"columna": fmt.Sprintf("c%d", j),
				"v":       i + j,
			})
		}
	}
	res := Matrix(records, model.MatrixConfig{Row: "fila", Column: "columna", Value: "v"})
	require.True(t, res.IsReady(), res.Message)

	m := res.Data
	assert.Equal(t, []string{"r0", "r1", "r2"}, m.RowLabels)
	assert.Equal(t, []string{"c0", "c1", "c2"}, m.ColumnLabels)
	assert.Equal(t, 0.0, m.Min)
	assert.Equal(t, 4.0, m.Max)
	assert.Equal(t, model.Float(4), m.Cells[2][2])
	assert.Equal(t, 9, m.Populated)
}

func TestMatrixRespectsMaxCells(t *testing.T) {
	var records []model.Record
	for i := 0; i < 80; i++ {
		for j := 0; j < 80; j++ {
			records = append(records, model.Record{"r": fmt.Sprintf("r%d", i), "c": fmt.Sprintf("c%d", j), "v": 1})
		}
	}
	res := Matrix(records, model.MatrixConfig{
		Row: "r", Column: "c", Value: "v",
		RowBound:    model.Bound{Cap: 80},
		ColumnBound: model.Bound{Cap: 80},
		MaxCells:    2500,
	})
	require.True(t, res.IsReady(), res.Message)

	m := res.Data
	assert.LessOrEqual(t, len(m.RowLabels)*len(m.ColumnLabels), 2500)
	assert.Equal(t, 160-len(m.RowLabels)-len(m.ColumnLabels), m.Dropped)
	assert.Equal(t, 60, m.Dropped)
	assert.Len(t, m.Cells, len(m.RowLabels))
	for _, row := range m.Cells {
		assert.Len(t, row, len(m.ColumnLabels))
	}
}

func TestFitCells(t *testing.T) {
	tests := []struct {
		rows, cols, max int
		wantR, wantC    int
	}{
		{3, 3, 2500, 3, 3},
		{80, 80, 2500, 50, 50},
		{100, 3, 200, 66, 3},
		{3, 100, 200, 3, 66},
		{40, 400, 900, 30, 30},
		{5, 5, 1, 1, 1},
	}
	for _, tt := range tests {
		r, c := fitCells(tt.rows, tt.cols, tt.max)
		assert.Equal(t, tt.wantR, r, "%+v", tt)
		assert.Equal(t, tt.wantC, c, "%+v", tt)
		assert.LessOrEqual(t, r*c, tt.max)
	}
}

func TestMatrixAbsentCellsAreNotZero(t *testing.T) {
	records := []model.Record{
		{"r": "a", "c": "x", "v": 0},
		{"r": "b", "c": "y", "v": "sin dato"},
		{"r": "b", "c": "x", "v": 2},
	}
	res := Matrix(records, model.MatrixConfig{Row: "r", Column: "c", Value: "v"})
	require.True(t, res.IsReady(), res.Message)

	m := res.Data
	assert.Equal(t, model.Float(0), m.Cells[0][0], "true zero")
	assert.False(t, m.Cells[0][1].Valid, "no record for (a, y)")
	assert.False(t, m.Cells[1][1].Valid, "unparsable value")
	assert.Equal(t, 2, m.Populated)
}

func TestMatrixReducers(t *testing.T) {
	records := []model.Record{
		{"r": "a", "c": "x", "v": 1},
		{"r": "a", "c": "x", "v": 3},
	}
	tests := map[model.ReducerKind]float64{
		"":                3,
		model.ReduceLast:  3,
		model.ReduceSum:   4,
		model.ReduceMean:  2,
		model.ReduceCount: 2,
	}
	for kind, want := range tests {
		res := Matrix(records, model.MatrixConfig{Row: "r", Column: "c", Value: "v", Reducer: kind})
		require.True(t, res.IsReady(), res.Message)
		assert.Equal(t, want, res.Data.Cells[0][0].Value, string(kind))
	}
}

func TestMatrixStates(t *testing.T) {
	cfg := model.MatrixConfig{Row: "r", Column: "c", Value: "v"}

	assert.True(t, Matrix(nil, cfg).IsEmpty())

	onlyBad := Matrix([]model.Record{{"r": "a", "c": "x", "v": "?"}}, cfg)
	assert.True(t, onlyBad.IsEmpty())

	wrong := Matrix([]model.Record{{"r": "a", "v": 1}}, cfg)
	require.True(t, wrong.IsError())
	var schemaErr *SchemaError
	require.True(t, errors.As(wrong.Err, &schemaErr))
	assert.Equal(t, []string{"c"}, schemaErr.Missing)

	bad := Matrix([]model.Record{{"r": "a"}}, model.MatrixConfig{MaxCells: -1})
	require.True(t, bad.IsError())
	var cfgErr *ConfigError
	assert.True(t, errors.As(bad.Err, &cfgErr))
}
