package source

import (
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cast"
	"github.com/zeebo/xxh3"

	"labor-dashboard/internal/model"
	"labor-dashboard/internal/textutil"
)

// Filters are equality filters on record fields.
type Filters map[string]string

// wildcards are the selector values that mean "no filter".
var wildcards = []string{"", "todas", "todos", "all"}

// Active drops wildcard entries and trims keys and values.
func (f Filters) Active() Filters {
	out := make(Filters, len(f))
	for k, v := range f {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k == "" || lo.Contains(wildcards, textutil.Fold(v)) {
			continue
		}
		out[k] = v
	}
	return out
}

// Only keeps the filters whose key is allowed.
func (f Filters) Only(allowed []string) Filters {
	return lo.PickByKeys(f, allowed)
}

// Match reports whether r satisfies every active filter. Values compare
// after accent and case folding; a record without the field never matches.
func (f Filters) Match(r model.Record) bool {
	for k, v := range f.Active() {
		raw, ok := r[k]
		if !ok || raw == nil {
			return false
		}
		if !textutil.EqualFold(cast.ToString(raw), v) {
			return false
		}
	}
	return true
}

// Apply returns the records matching f, or records itself when f is empty.
func (f Filters) Apply(records []model.Record) []model.Record {
	if len(f.Active()) == 0 {
		return records
	}
	return lo.Filter(records, func(r model.Record, _ int) bool { return f.Match(r) })
}

// Key is a stable hash of the active filters, used for cache keys.
func (f Filters) Key() uint64 {
	active := f.Active()
	keys := lo.Keys(active)
	sort.Strings(keys)
	h := xxh3.New()
	for _, k := range keys {
		_, _ = h.WriteString(k)
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(textutil.Fold(active[k]))
		_, _ = h.WriteString("\x01")
	}
	return h.Sum64()
}
