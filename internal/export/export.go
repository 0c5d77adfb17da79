package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"

	"labor-dashboard/internal/model"
)

// Format is an export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat accepts a format name or a file name and falls back to CSV.
func ParseFormat(s string) Format {
	s = strings.ToLower(strings.TrimSpace(s))
	if ext := filepath.Ext(s); ext != "" {
		s = ext[1:]
	}
	if s == string(FormatJSON) {
		return FormatJSON
	}
	return FormatCSV
}

// ContentType returns the HTTP media type of f.
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "text/csv; charset=utf-8"
}

// Info describes an export.
type Info struct {
	Dataset    string    `json:"dataset"`
	Origin     string    `json:"origin,omitempty"`
	ExportedAt time.Time `json:"exported_at"`
	RowCount   int       `json:"row_count"`
	Truncated  bool      `json:"truncated,omitempty"`
}

// Write encodes page to w in format f and returns the number of rows written.
func Write(w io.Writer, f Format, page model.TablePage, info Info) (int, error) {
	if f == FormatJSON {
		return WriteJSON(w, page, info)
	}
	return WriteCSV(w, page)
}

// WriteCSV writes a header of column labels followed by one line per row.
// Missing cells are written empty rather than as the on-screen placeholder.
func WriteCSV(w io.Writer, page model.TablePage) (int, error) {
	writer := csv.NewWriter(w)

	header := lo.Map(page.Columns, func(c model.FieldSpec, _ int) string { return c.Label() })
	if err := writer.Write(header); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	count := 0
	for _, row := range page.Rows {
		line := lo.Map(page.Columns, func(c model.FieldSpec, _ int) string {
			cell := row[c.Field]
			if cell.Missing {
				return ""
			}
			return cell.Text
		})
		if err := writer.Write(line); err != nil {
			return count, fmt.Errorf("failed to write row: %w", err)
		}
		count++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return count, fmt.Errorf("failed to flush csv: %w", err)
	}
	return count, nil
}

// WriteJSON writes {"export_info": ..., "data": [...]} with one object per
// row holding the raw cell values keyed by field.
func WriteJSON(w io.Writer, page model.TablePage, info Info) (int, error) {
	data := lo.Map(page.Rows, func(row model.TableRow, _ int) map[string]interface{} {
		out := make(map[string]interface{}, len(page.Columns))
		for _, c := range page.Columns {
			out[c.Field] = row[c.Field].Value
		}
		return out
	})
	info.RowCount = len(data)
	info.Truncated = info.Truncated || page.Truncated

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	payload := map[string]interface{}{
		"export_info": info,
		"columns":     page.Columns,
		"data":        data,
	}
	if err := encoder.Encode(payload); err != nil {
		return 0, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return len(data), nil
}

// ToFile writes page to path, creating parent directories. The format
// follows the file extension.
func ToFile(path string, page model.TablePage, info Info) (int, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, fmt.Errorf("failed to create directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	n, werr := Write(file, ParseFormat(path), page, info)
	if cerr := file.Close(); werr == nil && cerr != nil {
		werr = fmt.Errorf("failed to close %s: %w", path, cerr)
	}
	return n, werr
}
