package viz

import (
	"labor-dashboard/internal/model"
	"labor-dashboard/internal/textutil"
)

// DefaultRegionField is the record field read when RegionConfig.Field is empty.
const DefaultRegionField = "region"

// ChileRegions lists the sixteen regions of Chile north to south, keyed by
// their official numbering.
var ChileRegions = []model.Region{
	{ID: "15", Name: "Arica y Parinacota"},
	{ID: "01", Name: "Tarapacá"},
	{ID: "02", Name: "Antofagasta"},
	{ID: "03", Name: "Atacama"},
	{ID: "04", Name: "Coquimbo"},
	{ID: "05", Name: "Valparaíso"},
	{ID: "13", Name: "Metropolitana"},
	{ID: "06", Name: "O'Higgins"},
	{ID: "07", Name: "Maule"},
	{ID: "16", Name: "Ñuble"},
	{ID: "08", Name: "Biobío"},
	{ID: "09", Name: "Araucanía"},
	{ID: "14", Name: "Los Ríos"},
	{ID: "10", Name: "Los Lagos"},
	{ID: "11", Name: "Aysén"},
	{ID: "12", Name: "Magallanes"},
}

func validateRegion(cfg model.RegionConfig) error {
	c := newChecker("region")
	c.field(cfg.Value, "value")
	c.reducer(cfg.Reducer, model.ReduceLast, model.ReduceSum, model.ReduceMean)
	for i, r := range cfg.Catalog {
		c.require(r.ID != "" && r.Name != "", "catalog entry %d needs an id and a name", i)
	}
	return c.err()
}

// Regions reduces records onto a fixed region catalog. A record matches a
// region by id or by name after accent and case folding; records naming an
// unknown region are skipped and listed in Unmatched.
func Regions(records []model.Record, cfg model.RegionConfig) model.Result[model.RegionMap] {
	if err := validateRegion(cfg); err != nil {
		return model.Failed[model.RegionMap](err)
	}
	if len(records) == 0 {
		return model.Empty[model.RegionMap](ErrEmptyInput)
	}
	field := cfg.Field
	if field == "" {
		field = DefaultRegionField
	}
	if missing := missingFields(records[0], field, cfg.Value); len(missing) > 0 {
		return model.Failed[model.RegionMap](&SchemaError{Component: "region", Missing: missing})
	}
	kind := cfg.Reducer
	if kind == "" {
		kind = model.ReduceLast
	}
	catalog := cfg.Catalog
	if len(catalog) == 0 {
		catalog = ChileRegions
	}

	lookup := make(map[string]int, 2*len(catalog))
	for i, r := range catalog {
		lookup[textutil.Fold(r.Name)] = i
		lookup[textutil.Fold(r.ID)] = i
	}

	acc := make([]accumulator, len(catalog))
	var unmatched []string
	seen := make(map[string]bool)
	for _, r := range records {
		name := Category(r, field, "")
		if name == "" {
			continue
		}
		i, ok := lookup[textutil.Fold(name)]
		if !ok {
			if !seen[name] {
				seen[name] = true
				unmatched = append(unmatched, name)
			}
			continue
		}
		if v, ok := LookupNumber(r, cfg.Value); ok {
			acc[i].add(v)
		}
	}

	out := model.RegionMap{Regions: make([]model.RegionValue, len(catalog)), Unmatched: unmatched}
	populated := 0
	for i, r := range catalog {
		out.Regions[i] = model.RegionValue{ID: r.ID, Name: r.Name}
		if acc[i].n == 0 {
			continue
		}
		v := acc[i].reduce(kind)
		out.Regions[i].Value = model.Float(v)
		if populated == 0 || v < out.Min {
			out.Min = v
		}
		if populated == 0 || v > out.Max {
			out.Max = v
		}
		populated++
	}
	if populated == 0 {
		return model.Empty[model.RegionMap](ErrEmptyInput)
	}
	scale := Scale{Min: out.Min, Max: out.Max}
	for i := range out.Regions {
		if out.Regions[i].Value.Valid {
			out.Regions[i].Intensity = scale.Normalize(out.Regions[i].Value.Value)
		}
	}
	return model.Ready(out)
}
