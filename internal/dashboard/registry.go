package dashboard

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"labor-dashboard/internal/model"
	"labor-dashboard/internal/source"
)

// ErrUnknownDashboard is returned for names not in the registry.
var ErrUnknownDashboard = errors.New("unknown dashboard")

// Registry holds dashboard definitions in display order.
type Registry struct {
	order  []string
	byName map[string]model.DashboardSpec
}

// NewRegistry indexes specs by name. Names must be unique.
func NewRegistry(specs ...model.DashboardSpec) (*Registry, error) {
	r := &Registry{byName: make(map[string]model.DashboardSpec, len(specs))}
	for _, s := range specs {
		if _, dup := r.byName[s.Name]; dup {
			return nil, fmt.Errorf("duplicate dashboard %q", s.Name)
		}
		if len(s.Widgets) == 0 {
			return nil, fmt.Errorf("dashboard %q has no widgets", s.Name)
		}
		r.order = append(r.order, s.Name)
		r.byName[s.Name] = s
	}
	return r, nil
}

// Get returns the dashboard called name.
func (r *Registry) Get(name string) (model.DashboardSpec, error) {
	s, ok := r.byName[name]
	if !ok {
		return model.DashboardSpec{}, fmt.Errorf("%w: %s", ErrUnknownDashboard, name)
	}
	return s, nil
}

// List returns every dashboard in registration order.
func (r *Registry) List() []model.DashboardSpec {
	return lo.Map(r.order, func(n string, _ int) model.DashboardSpec { return r.byName[n] })
}

func columns(fields ...string) []model.FieldSpec {
	return lo.Map(fields, func(f string, _ int) model.FieldSpec { return model.FieldSpec{Field: f} })
}

func numeric(spec model.FieldSpec) model.FieldSpec {
	spec.Kind = model.KindNumeric
	return spec
}

// Default returns the built-in dashboards.
func Default() *Registry {
	r, err := NewRegistry(
		distribucionInstitucional(),
		brechasGenero(),
		analisisSectorial(),
		tendenciasSectores(),
		tendenciasOcupacionales(),
		exploradorCarreras(),
		analisisArea(),
		mercadoLaboral(),
	)
	if err != nil {
		panic(err)
	}
	return r
}

func distribucionInstitucional() model.DashboardSpec {
	cols := columns("tipo", "acreditacion", "region")
	cols = append(cols,
		numeric(model.FieldSpec{Field: "num_instituciones", Header: "Instituciones"}),
		numeric(model.FieldSpec{Field: "num_carreras", Header: "Carreras"}),
		numeric(model.FieldSpec{Field: "matricula_total", Header: "Matrícula"}),
	)
	return model.DashboardSpec{
		Name:        "distribucion-institucional",
		Title:       "Distribución Institucional",
		Description: "Instituciones de educación superior por tipo, acreditación y región.",
		Dataset:     source.DistribucionInstitucional,
		Filters:     []string{"tipo", "acreditacion", "region"},
		Widgets: []model.WidgetSpec{
			{ID: "matricula-por-tipo", Title: "Matrícula por tipo de institución", Kind: model.WidgetBar,
				Aggregation: &model.AggregationConfig{GroupBy: []string{"tipo"}, Value: "matricula_total", Reducer: model.ReduceSum}},
			{ID: "instituciones-region-tipo", Title: "Instituciones por región y tipo", Kind: model.WidgetBar,
				Aggregation: &model.AggregationConfig{GroupBy: []string{"region", "tipo"}, Value: "num_instituciones", Reducer: model.ReduceSum}},
			{ID: "matricula-regional", Title: "Matrícula por región", Kind: model.WidgetRegionMap,
				Region: &model.RegionConfig{Value: "matricula_total", Reducer: model.ReduceSum}},
			{ID: "detalle", Title: "Detalle de instituciones", Kind: model.WidgetTable,
				Table: &model.TableConfig{Columns: cols, Sortable: []string{"tipo", "region", "num_instituciones", "num_carreras", "matricula_total"}}},
		},
	}
}

func brechasGenero() model.DashboardSpec {
	cols := columns("area", "region")
	cols = append(cols,
		numeric(model.FieldSpec{Field: "pct_mujeres", Header: "% Mujeres"}),
		numeric(model.FieldSpec{Field: "pct_hombres", Header: "% Hombres"}),
		numeric(model.FieldSpec{Field: "brecha_desocupacion", Header: "Brecha desocupación"}),
		numeric(model.FieldSpec{Field: "brecha_informalidad", Header: "Brecha informalidad"}),
	)
	return model.DashboardSpec{
		Name:        "brechas-genero",
		Title:       "Brechas de Género",
		Description: "Participación y brechas laborales entre mujeres y hombres por área y región.",
		Dataset:     source.BrechasGenero,
		Filters:     []string{"area", "region"},
		Widgets: []model.WidgetSpec{
			{ID: "participacion-por-area", Title: "Participación femenina por área", Kind: model.WidgetBar,
				Aggregation: &model.AggregationConfig{GroupBy: []string{"area"}, Value: "pct_mujeres", Reducer: model.ReduceMean}},
			{ID: "brecha-area-region", Title: "Brecha de desocupación por área y región", Kind: model.WidgetHeatmap,
				Matrix: &model.MatrixConfig{Row: "area", Column: "region", Value: "brecha_desocupacion", Reducer: model.ReduceMean}},
			{ID: "mapa-brechas", Title: "Mapa de brechas por región", Kind: model.WidgetRegionMap,
				Region: &model.RegionConfig{Value: "brecha_informalidad", Reducer: model.ReduceMean}},
			{ID: "detalle", Title: "Detalle por área", Kind: model.WidgetTable,
				Table: &model.TableConfig{Columns: cols, Sortable: []string{"area", "pct_mujeres", "brecha_desocupacion", "brecha_informalidad"}}},
		},
	}
}

func analisisSectorial() model.DashboardSpec {
	return model.DashboardSpec{
		Name:        "analisis-sectorial",
		Title:       "Análisis Sectorial",
		Description: "Indicadores de calidad laboral por sector económico.",
		Dataset:     source.AnalisisSectorial,
		Filters:     []string{"sector", "region"},
		Widgets: []model.WidgetSpec{
			{ID: "indicadores", Title: "Indicadores por sector", Kind: model.WidgetRadar,
				Radar: &model.RadarConfig{Category: "sector", Metrics: []model.MetricSpec{
					{Name: "Desocupación", Field: "tasa_desocupacion", Domain: &model.Domain{Min: 0, Max: 15}},
					{Name: "Variabilidad", Field: "variabilidad", Domain: &model.Domain{Min: 0, Max: 100}},
					{Name: "Fuerza Laboral", Field: "fuerza_trabajo"},
					{Name: "Informalidad", Field: "informalidad", Domain: &model.Domain{Min: 0, Max: 50}},
				}}},
			{ID: "fuerza-trabajo", Title: "Sectores con mayor fuerza de trabajo", Kind: model.WidgetBar,
				Aggregation: &model.AggregationConfig{GroupBy: []string{"sector"}, Value: "fuerza_trabajo", Sort: model.SortValueDesc}},
			{ID: "desocupacion-informalidad", Title: "Desocupación e informalidad", Kind: model.WidgetScatter,
				Scatter: &model.ScatterConfig{X: "tasa_desocupacion", Y: "informalidad", Size: "variabilidad", Category: "sector"}},
		},
	}
}

func tendenciasSectores() model.DashboardSpec {
	return model.DashboardSpec{
		Name:        "tendencias-sectores",
		Title:       "Tendencias por Sectores Económicos",
		Description: "Evolución trimestral del empleo por sector.",
		Dataset:     source.TendenciasSectores,
		Filters:     []string{"sector", "region"},
		Widgets: []model.WidgetSpec{
			{ID: "evolucion", Title: "Evolución por sector", Kind: model.WidgetLine,
				Line: &model.LineConfig{X: "tmp_fecha", Y: "valor", Series: "sector"}},
			{ID: "mapa-calor", Title: "Valor por sector y periodo", Kind: model.WidgetHeatmap,
				Matrix: &model.MatrixConfig{Row: "sector", Column: "tmp_fecha", Value: "valor", Reducer: model.ReduceMean,
					ColumnBound: model.Bound{Order: model.OrderSorted}}},
			{ID: "mapa-regional", Title: "Valor por región", Kind: model.WidgetRegionMap,
				Region: &model.RegionConfig{Value: "valor", Reducer: model.ReduceSum}},
		},
	}
}

func tendenciasOcupacionales() model.DashboardSpec {
	return model.DashboardSpec{
		Name:        "tendencias-ocupacionales",
		Title:       "Tendencias Ocupacionales",
		Description: "Avisos laborales, salarios y teletrabajo por ocupación.",
		Dataset:     source.TendenciasOcupacionales,
		Filters:     []string{"ocupacion", "region"},
		Widgets: []model.WidgetSpec{
			{ID: "nuevos-avisos", Title: "Nuevos avisos por ocupación", Kind: model.WidgetLine,
				Line: &model.LineConfig{X: "fecha", Y: "nuevos_avisos", Series: "ocupacion"}},
			{ID: "salarios", Title: "Salario promedio por ocupación", Kind: model.WidgetBar,
				Aggregation: &model.AggregationConfig{GroupBy: []string{"ocupacion"}, Value: "salario_promedio", Reducer: model.ReduceMean, Sort: model.SortValueDesc}},
			{ID: "remotas", Title: "Oportunidades remotas por región", Kind: model.WidgetBar,
				Aggregation: &model.AggregationConfig{GroupBy: []string{"ocupacion", "region"}, Value: "oportunidades_remotas", Reducer: model.ReduceSum}},
			{ID: "experiencia", Title: "Experiencia requerida y salario", Kind: model.WidgetScatter,
				Scatter: &model.ScatterConfig{X: "experiencia_requerida", Y: "salario_promedio", Category: "ocupacion"}},
		},
	}
}

func exploradorCarreras() model.DashboardSpec {
	cols := columns("nombre_carrera", "nombre_institucion", "tipo_institucion", "area_conocimiento", "region")
	cols = append(cols,
		numeric(model.FieldSpec{Field: "acreditacion", Header: "Años de acreditación"}),
		numeric(model.FieldSpec{Field: "matricula_total", Header: "Matrícula"}),
		numeric(model.FieldSpec{Field: "arancel", Header: "Arancel"}),
		numeric(model.FieldSpec{Field: "duracion", Header: "Duración (semestres)"}),
	)
	return model.DashboardSpec{
		Name:        "explorador-carreras",
		Title:       "Explorador de Carreras",
		Description: "Carreras de educación superior con acreditación, matrícula y arancel.",
		Dataset:     source.ExploradorCarreras,
		Filters:     []string{"area_conocimiento", "tipo_institucion", "region"},
		Widgets: []model.WidgetSpec{
			{ID: "carreras", Title: "Carreras", Kind: model.WidgetTable,
				Table: &model.TableConfig{Columns: cols, Sortable: []string{"nombre_carrera", "acreditacion", "matricula_total", "arancel", "duracion"}}},
			{ID: "arancel-matricula", Title: "Arancel y matrícula", Kind: model.WidgetScatter,
				Scatter: &model.ScatterConfig{X: "arancel", Y: "matricula_total", Size: "duracion", Category: "area_conocimiento"}},
		},
	}
}

func analisisArea() model.DashboardSpec {
	cols := columns("area_conocimiento")
	cols = append(cols,
		numeric(model.FieldSpec{Field: "num_carreras", Header: "Carreras"}),
		numeric(model.FieldSpec{Field: "num_instituciones", Header: "Instituciones"}),
		numeric(model.FieldSpec{Field: "matricula_total", Header: "Matrícula"}),
		numeric(model.FieldSpec{Field: "promedio_primer_ano", Header: "Primer año"}),
	)
	return model.DashboardSpec{
		Name:        "analisis-area",
		Title:       "Análisis por Área de Conocimiento",
		Description: "Oferta y matrícula por área de conocimiento.",
		Dataset:     source.AnalisisArea,
		Filters:     []string{"area_conocimiento"},
		Widgets: []model.WidgetSpec{
			{ID: "matricula", Title: "Matrícula por área", Kind: model.WidgetBar,
				Aggregation: &model.AggregationConfig{GroupBy: []string{"area_conocimiento"}, Value: "matricula_total"}},
			{ID: "perfil", Title: "Perfil por área", Kind: model.WidgetRadar,
				Radar: &model.RadarConfig{Category: "area_conocimiento", Metrics: []model.MetricSpec{
					{Name: "Carreras", Field: "num_carreras", Domain: &model.Domain{Min: 0, Max: 100}},
					{Name: "Instituciones", Field: "num_instituciones", Domain: &model.Domain{Min: 0, Max: 50}},
					{Name: "Primer año", Field: "promedio_primer_ano", Domain: &model.Domain{Min: 0, Max: 15000}},
				}}},
			{ID: "detalle", Title: "Detalle por área", Kind: model.WidgetTable,
				Table: &model.TableConfig{Columns: cols, Sortable: []string{"num_carreras", "matricula_total", "promedio_primer_ano"}}},
		},
	}
}

func mercadoLaboral() model.DashboardSpec {
	return model.DashboardSpec{
		Name:        "mercado-laboral",
		Title:       "Mercado Laboral",
		Description: "Demanda y crecimiento por sector.",
		Dataset:     source.MarketTrends,
		Filters:     []string{"sector", "region"},
		Widgets: []model.WidgetSpec{
			{ID: "demanda", Title: "Demanda por sector", Kind: model.WidgetBar,
				Aggregation: &model.AggregationConfig{GroupBy: []string{"sector"}, Value: "demand_score", Sort: model.SortValueDesc}},
			{ID: "crecimiento-regional", Title: "Crecimiento por región", Kind: model.WidgetRegionMap,
				Region: &model.RegionConfig{Value: "growth_rate"}},
			{ID: "habilidades", Title: "Habilidades más demandadas", Kind: model.WidgetBar, Dataset: source.SkillsDemand,
				Aggregation: &model.AggregationConfig{GroupBy: []string{"skill_name"}, Value: "demand_level", Sort: model.SortValueDesc}},
		},
	}
}
