package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labor-dashboard/internal/model"
)

func samplePage() model.TablePage {
	return model.TablePage{
		Columns: []model.FieldSpec{
			{Field: "area", Header: "Área"},
			{Field: "matricula", Kind: model.KindNumeric},
		},
		Rows: []model.TableRow{
			{"area": {Value: "Salud", Text: "Salud"}, "matricula": {Value: 1250.5, Text: "1.250,5"}},
			{"area": {Value: "Educación, Humanidades", Text: "Educación, Humanidades"}, "matricula": {Text: "—", Missing: true}},
		},
		TotalRows: 2,
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatJSON, ParseFormat("out/areas.json"))
	assert.Equal(t, FormatCSV, ParseFormat("areas.csv"))
	assert.Equal(t, FormatCSV, ParseFormat(""))
	assert.Equal(t, FormatCSV, ParseFormat("xlsx"))
	assert.Equal(t, "application/json", FormatJSON.ContentType())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	n, err := WriteCSV(&buf, samplePage())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "Área,matricula\nSalud,\"1.250,5\"\n\"Educación, Humanidades\",\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	n, err := WriteJSON(&buf, samplePage(), Info{Dataset: "analisis_area", ExportedAt: at})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var got struct {
		Info Info                     `json:"export_info"`
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "analisis_area", got.Info.Dataset)
	assert.Equal(t, 2, got.Info.RowCount)
	assert.Equal(t, 1250.5, got.Data[0]["matricula"])
	assert.Nil(t, got.Data[1]["matricula"])
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "areas.json")
	n, err := ToFile(path, samplePage(), Info{Dataset: "analisis_area"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"export_info"`)
}
