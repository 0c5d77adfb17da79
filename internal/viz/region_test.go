package viz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labor-dashboard/internal/model"
)

func regionValue(m *model.RegionMap, id string) model.RegionValue {
	for _, r := range m.Regions {
		if r.ID == id {
			return r
		}
	}
	return model.RegionValue{}
}

func TestRegionsMatchFoldedNames(t *testing.T) {
	records := []model.Record{
		{"region": "Valparaiso", "tasa": 10},
		{"region": "METROPOLITANA", "tasa": 30},
		{"region": "13", "tasa": 20},
		{"region": "Biobío", "tasa": 15},
		{"region": "Atlántida", "tasa": 99},
	}
	res := Regions(records, model.RegionConfig{Value: "tasa"})
	require.True(t, res.IsReady(), res.Message)

	m := res.Data
	assert.Len(t, m.Regions, len(ChileRegions))
	assert.Equal(t, model.Float(10), regionValue(m, "05").Value)
	assert.Equal(t, model.Float(20), regionValue(m, "13").Value, "last value wins by default")
	assert.False(t, regionValue(m, "12").Value.Valid)
	assert.Equal(t, []string{"Atlántida"}, m.Unmatched)

	assert.Equal(t, 10.0, m.Min)
	assert.Equal(t, 20.0, m.Max)
	assert.Equal(t, 0.0, regionValue(m, "05").Intensity)
	assert.Equal(t, 1.0, regionValue(m, "13").Intensity)
	assert.Equal(t, 0.5, regionValue(m, "08").Intensity)
}

func TestRegionsSum(t *testing.T) {
	records := []model.Record{
		{"reg": "Maule", "n": 1},
		{"reg": "maule", "n": 2},
	}
	res := Regions(records, model.RegionConfig{Field: "reg", Value: "n", Reducer: model.ReduceSum})
	require.True(t, res.IsReady())
	assert.Equal(t, model.Float(3), regionValue(res.Data, "07").Value)
}

func TestRegionsStates(t *testing.T) {
	cfg := model.RegionConfig{Value: "n"}
	assert.True(t, Regions(nil, cfg).IsEmpty())
	assert.True(t, Regions([]model.Record{{"region": "Narnia", "n": 1}}, cfg).IsEmpty())
	assert.True(t, Regions([]model.Record{{"n": 1}}, cfg).IsError())
	assert.True(t, Regions([]model.Record{{"region": "Maule", "n": 1}}, model.RegionConfig{}).IsError())
}

func TestScale(t *testing.T) {
	s := Scale{Min: 10, Max: 20}
	assert.Equal(t, 0.5, s.Normalize(15))
	assert.Equal(t, 0.0, s.Normalize(5))
	assert.Equal(t, 1.0, s.Normalize(25))
	assert.Equal(t, 0.0, Scale{Min: 3, Max: 3}.Normalize(3))
}
