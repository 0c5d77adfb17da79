package viz

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labor-dashboard/internal/model"
)

func exampleRecords() []model.Record {
	return []model.Record{
		{"tipo": "A", "region": "X", "n": 10},
		{"tipo": "A", "region": "Y", "n": 5},
		{"tipo": "B", "region": "X", "n": 7},
	}
}

func TestGroupSumFirstSeen(t *testing.T) {
	res := Group(exampleRecords(), model.AggregationConfig{
		GroupBy:      []string{"tipo"},
		Value:        "n",
		Reducer:      model.ReduceSum,
		PrimaryBound: model.Bound{Cap: 10},
	})
	require.True(t, res.IsReady(), res.Message)

	points := res.Data.Points
	require.Len(t, points, 2)
	assert.Equal(t, "A", points[0].Key)
	assert.Equal(t, 15.0, points[0].Value)
	assert.Equal(t, "B", points[1].Key)
	assert.Equal(t, 7.0, points[1].Value)
	assert.Equal(t, 0, res.Data.Dropped)
}

func TestGroupSecondary(t *testing.T) {
	res := Group(exampleRecords(), model.AggregationConfig{
		GroupBy: []string{"tipo", "region"},
		Value:   "n",
	})
	require.True(t, res.IsReady(), res.Message)
	assert.Equal(t, []string{"X", "Y"}, res.Data.Series)

	a, b := res.Data.Points[0], res.Data.Points[1]
	assert.Equal(t, map[string]float64{"X": 10, "Y": 5}, a.Values)
	assert.Equal(t, map[string]float64{"X": 7, "Y": 0}, b.Values)
	assert.Equal(t, 15.0, a.Value)
}

func TestGroupReducers(t *testing.T) {
	tests := []struct {
		reducer model.ReducerKind
		value   string
		want    []float64
	}{
		{model.ReduceSum, "n", []float64{15, 7}},
		{model.ReduceMean, "n", []float64{7.5, 7}},
		{model.ReduceCount, "", []float64{2, 1}},
	}
	for _, tt := range tests {
		t.Run(string(tt.reducer), func(t *testing.T) {
			res := Group(exampleRecords(), model.AggregationConfig{
				GroupBy: []string{"tipo"},
				Value:   tt.value,
				Reducer: tt.reducer,
			})
			require.True(t, res.IsReady(), res.Message)
			for i, p := range res.Data.Points {
				assert.Equal(t, tt.want[i], p.Value, p.Key)
			}
		})
	}
}

func TestGroupAbsorbsParseFailures(t *testing.T) {
	records := []model.Record{
		{"tipo": "A", "n": "10"},
		{"tipo": "A", "n": "n/a"},
		{"tipo": "A"},
	}
	res := Group(records, model.AggregationConfig{GroupBy: []string{"tipo"}, Value: "n", Reducer: model.ReduceMean})
	require.True(t, res.IsReady(), res.Message)
	assert.InDelta(t, 10.0/3, res.Data.Points[0].Value, 1e-9)
	assert.Equal(t, 3, res.Data.Points[0].Count)
}

func TestGroupCapsPrimary(t *testing.T) {
	var records []model.Record
	for i := 0; i < 20; i++ {
		records = append(records, model.Record{"k": fmt.Sprintf("k%02d", i), "v": i})
	}
	res := Group(records, model.AggregationConfig{
		GroupBy:      []string{"k"},
		Value:        "v",
		PrimaryBound: model.Bound{Cap: 5},
	})
	require.True(t, res.IsReady())
	require.Len(t, res.Data.Points, 5)
	assert.Equal(t, "k00", res.Data.Points[0].Key)
	assert.Equal(t, 15, res.Data.Dropped)
}

func TestGroupRanking(t *testing.T) {
	records := []model.Record{
		{"ocupacion": "Docente", "n": 3},
		{"ocupacion": "Ingeniero", "n": 9},
		{"ocupacion": "Abogado", "n": 5},
		{"ocupacion": "Docente", "n": 4},
	}
	res := Group(records, model.AggregationConfig{
		GroupBy:      []string{"ocupacion"},
		Value:        "n",
		Sort:         model.SortValueDesc,
		PrimaryBound: model.Bound{Cap: 2},
	})
	require.True(t, res.IsReady(), res.Message)
	require.Len(t, res.Data.Points, 2)
	assert.Equal(t, "Ingeniero", res.Data.Points[0].Key)
	assert.Equal(t, "Docente", res.Data.Points[1].Key)
	assert.Equal(t, 7.0, res.Data.Points[1].Value)
	assert.Equal(t, 1, res.Data.Dropped)

	asc := Group(records, model.AggregationConfig{
		GroupBy: []string{"ocupacion"},
		Value:   "n",
		Sort:    model.SortValueAsc,
	})
	require.True(t, asc.IsReady())
	assert.Equal(t, "Abogado", asc.Data.Points[0].Key)
}

func TestGroupSchemaMismatch(t *testing.T) {
	res := Group(exampleRecords(), model.AggregationConfig{GroupBy: []string{"sector"}, Value: "monto"})
	require.True(t, res.IsError())

	var schemaErr *SchemaError
	require.True(t, errors.As(res.Err, &schemaErr))
	assert.Equal(t, []string{"sector", "monto"}, schemaErr.Missing)
}

func TestGroupEmpty(t *testing.T) {
	res := Group(nil, model.AggregationConfig{GroupBy: []string{"tipo"}, Value: "n"})
	assert.True(t, res.IsEmpty())
	assert.ErrorIs(t, res.Err, ErrEmptyInput)
}

func TestGroupInvalidConfig(t *testing.T) {
	res := Group(exampleRecords(), model.AggregationConfig{
		GroupBy:      nil,
		Reducer:      "median",
		PrimaryBound: model.Bound{Cap: -1},
	})
	require.True(t, res.IsError())

	var cfgErr *ConfigError
	require.True(t, errors.As(res.Err, &cfgErr))
	assert.Contains(t, res.Message, "group_by")
	assert.Contains(t, res.Message, "median")
	assert.Contains(t, res.Message, "negative")
}

func TestGroupSumMatchesBoundedPartitions(t *testing.T) {
	var records []model.Record
	for i := 0; i < 300; i++ {
		records = append(records, model.Record{
			"k": fmt.Sprintf("g%d", (i*7)%23),
			"v": float64(i%11) - 3.5,
		})
	}
	const limit = 9
	res := Group(records, model.AggregationConfig{
		GroupBy:      []string{"k"},
		Value:        "v",
		PrimaryBound: model.Bound{Cap: limit},
	})
	require.True(t, res.IsReady())
	require.LessOrEqual(t, len(res.Data.Points), limit)

	for _, p := range res.Data.Points {
		want := 0.0
		for _, r := range records {
			if Category(r, "k", DefaultCategory) == p.Key {
				want += Number(r, "v", 0)
			}
		}
		assert.InDelta(t, want, p.Value, 1e-9, p.Key)
	}
}
