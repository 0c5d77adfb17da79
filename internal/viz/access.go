// Package viz turns untyped record sets into bounded, render-safe chart
// structures. Every reducer is a pure function of (records, config) and
// returns a model.Result; none of them log, block or share state.
package viz

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/spf13/cast"

	"labor-dashboard/internal/model"
)

// DefaultCategory labels records whose categorical field is absent or blank.
const DefaultCategory = "Sin categoría"

// Has reports whether field is present on r, even when its value is nil.
func Has(r model.Record, field string) bool {
	if r == nil {
		return false
	}
	_, ok := r[field]
	return ok
}

// LookupNumber parses field as a finite float64. Absent, nil, boolean, blank
// and unparsable values report false.
func LookupNumber(r model.Record, field string) (float64, bool) {
	raw, ok := r[field]
	if !ok || raw == nil {
		return 0, false
	}
	var (
		f   float64
		err error
	)
	switch v := raw.(type) {
	case bool:
		return 0, false
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		f, err = cast.ToFloat64E(s)
	case json.Number:
		f, err = v.Float64()
	default:
		f, err = cast.ToFloat64E(v)
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Number returns field as a float64, or fallback when it cannot be parsed.
func Number(r model.Record, field string, fallback float64) float64 {
	if f, ok := LookupNumber(r, field); ok {
		return f
	}
	return fallback
}

// NullableNumber is Number for display contexts, where absence must stay
// distinguishable from zero.
func NullableNumber(r model.Record, field string) model.NullFloat {
	if f, ok := LookupNumber(r, field); ok {
		return model.Float(f)
	}
	return model.NullFloat{}
}

// Category returns field as a trimmed string label, or fallback when it is
// absent, nil, blank or not representable as text.
func Category(r model.Record, field, fallback string) string {
	raw, ok := r[field]
	if !ok || raw == nil {
		return fallback
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return fallback
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return s
}

// Boolean parses field as a boolean ("true", "1", true...).
func Boolean(r model.Record, field string) (bool, bool) {
	raw, ok := r[field]
	if !ok || raw == nil {
		return false, false
	}
	if s, isString := raw.(string); isString && strings.TrimSpace(s) == "" {
		return false, false
	}
	b, err := cast.ToBoolE(raw)
	if err != nil {
		return false, false
	}
	return b, true
}

// missingFields lists the fields not present on sample, skipping blanks.
func missingFields(sample model.Record, fields ...string) []string {
	var missing []string
	for _, f := range fields {
		if f == "" {
			continue
		}
		if !Has(sample, f) {
			missing = append(missing, f)
		}
	}
	return missing
}
