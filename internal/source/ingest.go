package source

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"labor-dashboard/internal/model"
	"labor-dashboard/pkg/utils"
)

// ReadFile loads records from a .csv or .json file.
func ReadFile(ctx context.Context, path string) ([]model.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(ctx, file)
	case ".json":
		return ReadJSON(file)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}
}

// ReadCSV reads header-keyed records. Cell values go through
// utils.ParseValue, so numeric cells become numbers; empty cells become nil.
func ReadCSV(ctx context.Context, r io.Reader) ([]model.Record, error) {
	csvReader := csv.NewReader(r)
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1
	headers, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i, h := range headers {
		// BOM and quotes survive LazyQuotes on some exports
		headers[i] = strings.ReplaceAll(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), `"`, "")
	}

	var records []model.Record
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := csvReader.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error on line %d: %w", line, err)
		}
		rec := make(model.Record, len(headers))
		for i, h := range headers {
			if i >= len(row) || strings.TrimSpace(row[i]) == "" {
				rec[h] = nil
				continue
			}
			rec[h] = utils.ParseValue(row[i])
		}
		records = append(records, rec)
	}
}

// ReadJSON accepts an array of objects, a single object, or an object
// wrapping the array under "data".
func ReadJSON(r io.Reader) ([]model.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}

	switch data := raw.(type) {
	case []interface{}:
		return objects(data)
	case map[string]interface{}:
		if inner, ok := data["data"].([]interface{}); ok {
			return objects(inner)
		}
		return []model.Record{model.Record(data)}, nil
	}
	return nil, fmt.Errorf("unexpected JSON structure")
}

func objects(items []interface{}) ([]model.Record, error) {
	records := make([]model.Record, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("JSON item %d is not an object", i)
		}
		records = append(records, model.Record(m))
	}
	return records, nil
}
