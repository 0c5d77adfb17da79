package viz

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labor-dashboard/internal/model"
)

func TestTablePartialSchemaIsReady(t *testing.T) {
	res := Table([]model.Record{{"nombre": "X", "edad": 5}}, model.TableConfig{
		Columns: []model.FieldSpec{{Field: "nombre"}, {Field: "inexistente"}},
	}, model.TableQuery{})
	require.True(t, res.IsReady(), res.Message)

	require.Len(t, res.Data.Rows, 1)
	row := res.Data.Rows[0]
	assert.Len(t, row, 2)
	assert.Equal(t, "X", row["nombre"].Text)
	assert.True(t, row["inexistente"].Missing)
	assert.Equal(t, NoValue, row["inexistente"].Text)
	assert.Nil(t, row["inexistente"].Value)
}

func TestTableSchemaMismatch(t *testing.T) {
	res := Table([]model.Record{{"edad": 5}}, model.TableConfig{
		Columns: []model.FieldSpec{{Field: "nombre"}, {Field: "inexistente"}},
	}, model.TableQuery{})
	require.True(t, res.IsError())
	var schemaErr *SchemaError
	require.True(t, errors.As(res.Err, &schemaErr))
	assert.ElementsMatch(t, []string{"nombre", "inexistente"}, schemaErr.Missing)
}

func TestTableFormatting(t *testing.T) {
	res := Table([]model.Record{{
		"salario":  156000,
		"tasa":     "2.5",
		"acredita": true,
		"texto":    "Ingeniería",
		"nulo":     nil,
		"roto":     "abc",
	}}, model.TableConfig{Columns: []model.FieldSpec{
		{Field: "salario"},
		{Field: "tasa", Kind: model.KindNumeric},
		{Field: "acredita"},
		{Field: "texto"},
		{Field: "nulo"},
		{Field: "roto", Kind: model.KindNumeric},
	}}, model.TableQuery{})
	require.True(t, res.IsReady(), res.Message)

	row := res.Data.Rows[0]
	assert.Equal(t, "156.000", row["salario"].Text)
	assert.Equal(t, "2,5", row["tasa"].Text)
	assert.Equal(t, "Sí", row["acredita"].Text)
	assert.Equal(t, "Ingeniería", row["texto"].Text)
	assert.True(t, row["nulo"].Missing)
	assert.True(t, row["roto"].Missing)
}

func salaryRecords() []model.Record {
	return []model.Record{
		{"carrera": "Medicina", "salario": 3000000},
		{"carrera": "Arte", "salario": nil},
		{"carrera": "Derecho", "salario": 2000000},
		{"carrera": "Enfermería", "salario": "2500000"},
	}
}

func TestTableSortWhitelisted(t *testing.T) {
	cfg := model.TableConfig{
		Columns:  []model.FieldSpec{{Field: "carrera"}, {Field: "salario", Kind: model.KindNumeric}},
		Sortable: []string{"salario", "carrera"},
	}

	desc := Table(salaryRecords(), cfg, model.TableQuery{SortBy: "salario", Desc: true})
	require.True(t, desc.IsReady(), desc.Message)
	assert.Equal(t, []string{"Medicina", "Enfermería", "Derecho", "Arte"}, carreras(desc.Data))
	assert.Equal(t, "salario", desc.Data.SortBy)

	asc := Table(salaryRecords(), cfg, model.TableQuery{SortBy: "salario"})
	require.True(t, asc.IsReady())
	assert.Equal(t, []string{"Derecho", "Enfermería", "Medicina", "Arte"}, carreras(asc.Data), "missing values sort last")

	byName := Table(salaryRecords(), cfg, model.TableQuery{SortBy: "carrera"})
	require.True(t, byName.IsReady())
	assert.Equal(t, []string{"Arte", "Derecho", "Enfermería", "Medicina"}, carreras(byName.Data))
}

func TestTableSortOutsideWhitelistIsNoop(t *testing.T) {
	cfg := model.TableConfig{
		Columns:  []model.FieldSpec{{Field: "carrera"}, {Field: "salario"}},
		Sortable: []string{"carrera"},
	}
	res := Table(salaryRecords(), cfg, model.TableQuery{SortBy: "salario", Desc: true})
	require.True(t, res.IsReady())
	assert.Equal(t, []string{"Medicina", "Arte", "Derecho", "Enfermería"}, carreras(res.Data))
	assert.Empty(t, res.Data.SortBy)
}

func TestTablePaginationReproducesRows(t *testing.T) {
	var records []model.Record
	for i := 0; i < 23; i++ {
		records = append(records, model.Record{"id": fmt.Sprintf("r%02d", i), "n": (i * 7) % 10})
	}
	cfg := model.TableConfig{
		Columns:  []model.FieldSpec{{Field: "id"}, {Field: "n"}},
		Sortable: []string{"n"},
		PageSize: 5,
	}
	q := model.TableQuery{SortBy: "n", Desc: true}

	all := TableRows(records, cfg, q)
	require.True(t, all.IsReady())

	first := Table(records, cfg, q)
	require.True(t, first.IsReady())
	assert.Equal(t, 5, first.Data.PageCount)

	var joined []model.TableRow
	for p := 1; p <= first.Data.PageCount; p++ {
		q.Page = p
		page := Table(records, cfg, q)
		require.True(t, page.IsReady())
		assert.Equal(t, p, page.Data.Page)
		joined = append(joined, page.Data.Rows...)
	}
	assert.Equal(t, all.Data.Rows, joined)
}

func TestTablePageClamping(t *testing.T) {
	var records []model.Record
	for i := 0; i < 12; i++ {
		records = append(records, model.Record{"id": i})
	}
	cfg := model.TableConfig{Columns: []model.FieldSpec{{Field: "id"}}}

	last := Table(records, cfg, model.TableQuery{Page: 99})
	require.True(t, last.IsReady())
	assert.Equal(t, 2, last.Data.Page)
	assert.Len(t, last.Data.Rows, 2)

	first := Table(records, cfg, model.TableQuery{Page: -3})
	require.True(t, first.IsReady())
	assert.Equal(t, 1, first.Data.Page)
	assert.Len(t, first.Data.Rows, DefaultPageSize)
}

func TestTableCapsRows(t *testing.T) {
	records := make([]model.Record, 1500)
	for i := range records {
		records[i] = model.Record{"id": i}
	}
	res := TableRows(records, model.TableConfig{Columns: []model.FieldSpec{{Field: "id"}}}, model.TableQuery{})
	require.True(t, res.IsReady())
	assert.Equal(t, DefaultTableRows, res.Data.TotalRows)
	assert.True(t, res.Data.Truncated)
}

func TestTableStates(t *testing.T) {
	assert.True(t, Table(nil, model.TableConfig{Columns: []model.FieldSpec{{Field: "a"}}}, model.TableQuery{}).IsEmpty())

	bad := Table([]model.Record{{"a": 1}}, model.TableConfig{}, model.TableQuery{})
	require.True(t, bad.IsError())
	var cfgErr *ConfigError
	assert.True(t, errors.As(bad.Err, &cfgErr))
}

func carreras(p *model.TablePage) []string {
	out := make([]string, len(p.Rows))
	for i, r := range p.Rows {
		out[i] = r["carrera"].Text
	}
	return out
}
