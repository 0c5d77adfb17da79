package viz

import (
	"sort"

	"labor-dashboard/internal/model"
)

type accumulator struct {
	sum  float64
	n    int
	last float64
}

func (a *accumulator) add(v float64) {
	a.sum += v
	a.n++
	a.last = v
}

func (a accumulator) reduce(kind model.ReducerKind) float64 {
	switch kind {
	case model.ReduceCount:
		return float64(a.n)
	case model.ReduceMean:
		if a.n == 0 {
			return 0
		}
		return a.sum / float64(a.n)
	case model.ReduceLast:
		return a.last
	default:
		return a.sum
	}
}

func validateAggregation(cfg model.AggregationConfig) error {
	c := newChecker("group")
	c.require(len(cfg.GroupBy) == 1 || len(cfg.GroupBy) == 2,
		"group_by needs one or two fields, got %d", len(cfg.GroupBy))
	for _, f := range cfg.GroupBy {
		c.field(f, "group_by")
	}
	c.reducer(cfg.Reducer, model.ReduceSum, model.ReduceCount, model.ReduceMean)
	if cfg.Reducer != model.ReduceCount {
		c.field(cfg.Value, "value")
	}
	c.require(cfg.Sort == model.SortNone || cfg.Sort == model.SortValueDesc || cfg.Sort == model.SortValueAsc,
		"sort %q is not supported", cfg.Sort)
	c.bound(cfg.PrimaryBound, "primary")
	c.bound(cfg.SecondaryBound, "secondary")
	return c.err()
}

// Group partitions records by one or two categorical keys and reduces the
// value field per partition. Keys keep first-seen order unless cfg.Sort asks
// for a ranking, in which case every distinct key is reduced, ranked by value
// and cut to the top N.
func Group(records []model.Record, cfg model.AggregationConfig) model.Result[model.GroupedSeries] {
	if err := validateAggregation(cfg); err != nil {
		return model.Failed[model.GroupedSeries](err)
	}
	if len(records) == 0 {
		return model.Empty[model.GroupedSeries](ErrEmptyInput)
	}

	kind := cfg.Reducer
	if kind == "" {
		kind = model.ReduceSum
	}
	primary := cfg.GroupBy[0]
	secondary := ""
	if len(cfg.GroupBy) == 2 {
		secondary = cfg.GroupBy[1]
	}
	value := cfg.Value
	if kind == model.ReduceCount {
		value = ""
	}
	if missing := missingFields(records[0], primary, secondary, value); len(missing) > 0 {
		return model.Failed[model.GroupedSeries](&SchemaError{Component: "group", Missing: missing})
	}

	distinct := Distinct(records, primary)
	var keys []string
	dropped := 0
	if cfg.Sort != model.SortNone {
		keys, dropped = Bound(distinct, model.Bound{Cap: rankingCeiling}, rankingCeiling)
	} else {
		keys, dropped = Bound(distinct, cfg.PrimaryBound, DefaultGroupCap)
	}

	var series []string
	if secondary != "" {
		var d int
		series, d = BoundField(records, secondary, cfg.SecondaryBound, DefaultSeriesCap)
		dropped += d
	}

	keyIdx := indexOf(keys)
	seriesIdx := indexOf(series)
	totals := make([]accumulator, len(keys))
	var cells [][]accumulator
	if secondary != "" {
		cells = make([][]accumulator, len(keys))
		for i := range cells {
			cells[i] = make([]accumulator, len(series))
		}
	}

	for _, r := range records {
		i, ok := keyIdx[Category(r, primary, DefaultCategory)]
		if !ok {
			continue
		}
		v := 0.0
		if value != "" {
			v = Number(r, value, 0)
		}
		if secondary != "" {
			j, ok := seriesIdx[Category(r, secondary, DefaultCategory)]
			if !ok {
				continue
			}
			cells[i][j].add(v)
		}
		totals[i].add(v)
	}

	points := make([]model.AggregatedPoint, len(keys))
	for i, k := range keys {
		p := model.AggregatedPoint{Key: k, Value: totals[i].reduce(kind), Count: totals[i].n}
		if secondary != "" {
			p.Values = make(map[string]float64, len(series))
			for j, s := range series {
				p.Values[s] = cells[i][j].reduce(kind)
			}
		}
		points[i] = p
	}

	if cfg.Sort != model.SortNone {
		points, dropped = rank(points, cfg.Sort, cfg.PrimaryBound.Cap, dropped)
	}

	return model.Ready(model.GroupedSeries{
		GroupBy: cfg.GroupBy,
		Series:  series,
		Points:  points,
		Dropped: dropped,
	})
}

// rank orders points by value and keeps the top limit. Ties keep first-seen
// order.
func rank(points []model.AggregatedPoint, mode model.SortMode, limit, dropped int) ([]model.AggregatedPoint, int) {
	if limit <= 0 {
		limit = DefaultRankingCap
	}
	sort.SliceStable(points, func(i, j int) bool {
		if mode == model.SortValueAsc {
			return points[i].Value < points[j].Value
		}
		return points[i].Value > points[j].Value
	})
	if len(points) > limit {
		dropped += len(points) - limit
		points = points[:limit]
	}
	return points, dropped
}
