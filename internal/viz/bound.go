package viz

import (
	"sort"
	"time"

	"github.com/samber/lo"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"labor-dashboard/internal/model"
)

// temporalLayouts are tried in order when labels are sorted chronologically.
var temporalLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01",
	"2006",
}

func validOrder(o model.Order) bool {
	switch o {
	case "", model.OrderFirstSeen, model.OrderSorted, model.OrderTemporal:
		return true
	}
	return false
}

// Distinct returns the category labels of field in first-seen order. Absent
// values collapse into DefaultCategory.
func Distinct(records []model.Record, field string) []string {
	return lo.Uniq(lo.Map(records, func(r model.Record, _ int) string {
		return Category(r, field, DefaultCategory)
	}))
}

// Bound keeps at most cap labels. The first cap labels in first-seen order
// survive; with a sorted or temporal order the survivors are then arranged.
// The extra labels are dropped, never merged into an "other" bucket.
// A zero cap selects defaultCap; it returns the kept labels and how many
// were dropped.
func Bound(labels []string, b model.Bound, defaultCap int) ([]string, int) {
	limit := b.Cap
	if limit <= 0 {
		limit = defaultCap
	}
	kept := labels
	dropped := 0
	if limit > 0 && len(labels) > limit {
		kept = labels[:limit]
		dropped = len(labels) - limit
	}
	out := make([]string, len(kept))
	copy(out, kept)
	arrange(out, b.Order)
	return out, dropped
}

// BoundField is Distinct followed by Bound.
func BoundField(records []model.Record, field string, b model.Bound, defaultCap int) ([]string, int) {
	return Bound(Distinct(records, field), b, defaultCap)
}

func arrange(labels []string, order model.Order) {
	switch order {
	case model.OrderSorted:
		sortCollated(labels)
	case model.OrderTemporal:
		if !sortTemporal(labels) {
			sortCollated(labels)
		}
	}
}

func sortCollated(labels []string) {
	c := collate.New(language.Spanish, collate.IgnoreCase)
	sort.SliceStable(labels, func(i, j int) bool {
		return c.CompareString(labels[i], labels[j]) < 0
	})
}

// sortTemporal sorts labels chronologically, reporting false and leaving
// labels untouched unless every label parses as a date.
func sortTemporal(labels []string) bool {
	times := make(map[string]time.Time, len(labels))
	for _, l := range labels {
		t, ok := parseTemporal(l)
		if !ok {
			return false
		}
		times[l] = t
	}
	sort.SliceStable(labels, func(i, j int) bool {
		return times[labels[i]].Before(times[labels[j]])
	})
	return true
}

func parseTemporal(s string) (time.Time, bool) {
	for _, layout := range temporalLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// indexOf maps each label to its position.
func indexOf(labels []string) map[string]int {
	idx := make(map[string]int, len(labels))
	for i, l := range labels {
		idx[l] = i
	}
	return idx
}
