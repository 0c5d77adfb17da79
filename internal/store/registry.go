package store

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// View maps a dataset onto the relation that backs it and the columns a
// client may filter on. Filters on other columns are dropped.
type View struct {
	Dataset  string
	Relation string
	Filters  []string
}

// Registry resolves dataset names to views.
type Registry struct {
	views map[string]View
}

// NewRegistry indexes views by dataset.
func NewRegistry(views ...View) *Registry {
	return &Registry{views: lo.KeyBy(views, func(v View) string { return v.Dataset })}
}

// DefaultRegistry lists the dashboard views of the hosted database.
func DefaultRegistry() *Registry {
	return NewRegistry(
		View{Dataset: "distribucion_institucional", Relation: "dashboard_distribucion_institucional", Filters: []string{"tipo", "acreditacion", "region"}},
		View{Dataset: "brechas_genero", Relation: "dashboard_brechas_genero", Filters: []string{"area", "region"}},
		View{Dataset: "analisis_sectorial", Relation: "dashboard_analisis_sectorial", Filters: []string{"sector", "region"}},
		View{Dataset: "tendencias_sectores", Relation: "dashboard_tendencias_sectores", Filters: []string{"sector", "region"}},
		View{Dataset: "tendencias_ocupacionales", Relation: "dashboard_tendencias_ocupacionales", Filters: []string{"ocupacion", "region"}},
		View{Dataset: "explorador_carreras", Relation: "dashboard_explorador_carreras", Filters: []string{"area_conocimiento", "tipo_institucion", "region"}},
		View{Dataset: "analisis_area", Relation: "dashboard_analisis_area", Filters: []string{"area_conocimiento"}},
		View{Dataset: "market_trends", Relation: "market_trends", Filters: []string{"sector", "region"}},
		View{Dataset: "skills_demand", Relation: "skills_demand", Filters: []string{"sector"}},
	)
}

// Lookup returns the view for dataset.
func (r *Registry) Lookup(dataset string) (View, error) {
	v, ok := r.views[dataset]
	if !ok {
		return View{}, fmt.Errorf("no view registered for dataset %q", dataset)
	}
	return v, nil
}

// Datasets lists registered dataset names in order.
func (r *Registry) Datasets() []string {
	names := lo.Keys(r.views)
	sort.Strings(names)
	return names
}
