package viz

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labor-dashboard/internal/model"
)

func TestScatter(t *testing.T) {
	records := []model.Record{
		{"x": 1, "y": 2, "tam": 9, "area": "Salud"},
		{"x": "bad", "y": 2, "area": "Salud"},
		{"x": 3, "y": 4, "tam": "?", "area": nil},
	}
	res := Scatter(records, model.ScatterConfig{X: "x", Y: "y", Size: "tam", Category: "area"})
	require.True(t, res.IsReady(), res.Message)

	points := res.Data.Points
	require.Len(t, points, 2)
	assert.Equal(t, model.Float(9), points[0].Size)
	assert.Equal(t, model.Float(5), points[1].Size)
	assert.Equal(t, DefaultCategory, points[1].Category)
	assert.Equal(t, []string{"Salud", DefaultCategory}, res.Data.Categories)
}

func TestScatterBounds(t *testing.T) {
	var records []model.Record
	for i := 0; i < 40; i++ {
		records = append(records, model.Record{"x": i, "y": i, "c": fmt.Sprintf("c%d", i%4)})
	}
	res := Scatter(records, model.ScatterConfig{
		X: "x", Y: "y", Category: "c",
		MaxPoints:     20,
		CategoryBound: model.Bound{Cap: 2},
	})
	require.True(t, res.IsReady())
	assert.True(t, res.Data.Truncated)
	assert.Len(t, res.Data.Points, 10)
	assert.Equal(t, 2, res.Data.Dropped)
	for _, p := range res.Data.Points {
		assert.Contains(t, []string{"c0", "c1"}, p.Category)
	}
}

func TestScatterStates(t *testing.T) {
	cfg := model.ScatterConfig{X: "x", Y: "y"}
	assert.True(t, Scatter(nil, cfg).IsEmpty())
	assert.True(t, Scatter([]model.Record{{"x": "a", "y": "b"}}, cfg).IsEmpty())
	assert.True(t, Scatter([]model.Record{{"x": 1}}, cfg).IsError())
}
