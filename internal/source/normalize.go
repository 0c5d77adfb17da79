package source

import (
	"encoding/json"
	"strings"

	"labor-dashboard/internal/model"
)

// Normalize returns cleaned copies of records: keys and string values are
// trimmed and json.Number becomes float64. Null values are kept so a field
// that is present but empty stays distinct from a missing one.
func Normalize(records []model.Record) []model.Record {
	out := make([]model.Record, len(records))
	for i, r := range records {
		clean := make(model.Record, len(r))
		for k, v := range r {
			k = strings.TrimSpace(k)
			if k == "" {
				continue
			}
			switch val := v.(type) {
			case string:
				clean[k] = strings.TrimSpace(val)
			case json.Number:
				if f, err := val.Float64(); err == nil {
					clean[k] = f
				} else {
					clean[k] = val.String()
				}
			default:
				clean[k] = val
			}
		}
		out[i] = clean
	}
	return out
}
