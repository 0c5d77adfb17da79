package model

// ReducerKind names how values sharing a key are combined.
type ReducerKind string

const (
	ReduceSum   ReducerKind = "sum"
	ReduceCount ReducerKind = "count"
	ReduceMean  ReducerKind = "mean"
	ReduceLast  ReducerKind = "last"
)

// Order controls how bounded distinct values are arranged.
type Order string

const (
	OrderFirstSeen Order = "first_seen"
	OrderSorted    Order = "sorted"
	OrderTemporal  Order = "temporal"
)

// Bound caps a dimension. Cap 0 means "use the component default".
type Bound struct {
	Cap   int   `json:"cap,omitempty" yaml:"cap,omitempty"`
	Order Order `json:"order,omitempty" yaml:"order,omitempty"`
}

// SortMode ranks aggregated points by value.
type SortMode string

const (
	SortNone      SortMode = ""
	SortValueDesc SortMode = "value_desc"
	SortValueAsc  SortMode = "value_asc"
)

// AggregationConfig drives grouped bar and summary charts. GroupBy holds one
// or two fields: the primary dimension and an optional secondary series.
type AggregationConfig struct {
	GroupBy        []string    `json:"group_by" yaml:"group_by"`
	Value          string      `json:"value,omitempty" yaml:"value,omitempty"`
	Reducer        ReducerKind `json:"reducer,omitempty" yaml:"reducer,omitempty"`
	PrimaryBound   Bound       `json:"primary_bound,omitempty" yaml:"primary_bound,omitempty"`
	SecondaryBound Bound       `json:"secondary_bound,omitempty" yaml:"secondary_bound,omitempty"`
	Sort           SortMode    `json:"sort,omitempty" yaml:"sort,omitempty"`
}

// MatrixConfig drives heatmaps.
type MatrixConfig struct {
	Row         string      `json:"row" yaml:"row"`
	Column      string      `json:"column" yaml:"column"`
	Value       string      `json:"value" yaml:"value"`
	Reducer     ReducerKind `json:"reducer,omitempty" yaml:"reducer,omitempty"`
	RowBound    Bound       `json:"row_bound,omitempty" yaml:"row_bound,omitempty"`
	ColumnBound Bound       `json:"column_bound,omitempty" yaml:"column_bound,omitempty"`
	MaxCells    int         `json:"max_cells,omitempty" yaml:"max_cells,omitempty"`
}

// Domain is the expected [Min, Max] range of a metric.
type Domain struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// MetricSpec is one radar axis. A nil Domain passes values through unscaled.
type MetricSpec struct {
	Name   string  `json:"name" yaml:"name"`
	Field  string  `json:"field" yaml:"field"`
	Domain *Domain `json:"domain,omitempty" yaml:"domain,omitempty"`
}

// RadarConfig drives radar charts.
type RadarConfig struct {
	Category      string       `json:"category" yaml:"category"`
	Metrics       []MetricSpec `json:"metrics" yaml:"metrics"`
	CategoryBound Bound        `json:"category_bound,omitempty" yaml:"category_bound,omitempty"`
}

// TableConfig drives paginated tables. Sortable whitelists the fields a
// caller may sort by.
type TableConfig struct {
	Columns  []FieldSpec `json:"columns" yaml:"columns"`
	Sortable []string    `json:"sortable,omitempty" yaml:"sortable,omitempty"`
	MaxRows  int         `json:"max_rows,omitempty" yaml:"max_rows,omitempty"`
	PageSize int         `json:"page_size,omitempty" yaml:"page_size,omitempty"`
}

// TableQuery is the per-request view state of a table.
type TableQuery struct {
	SortBy string `json:"sort_by,omitempty"`
	Desc   bool   `json:"desc,omitempty"`
	Page   int    `json:"page,omitempty"`
}

// LineConfig drives time series. Series is optional.
type LineConfig struct {
	X           string `json:"x" yaml:"x"`
	Y           string `json:"y" yaml:"y"`
	Series      string `json:"series,omitempty" yaml:"series,omitempty"`
	XBound      Bound  `json:"x_bound,omitempty" yaml:"x_bound,omitempty"`
	SeriesBound Bound  `json:"series_bound,omitempty" yaml:"series_bound,omitempty"`
}

// Region is one entry of a geographic catalog.
type Region struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// RegionConfig drives the region choropleth. An empty Catalog selects the
// built-in catalog of Chilean regions.
type RegionConfig struct {
	Field   string      `json:"field,omitempty" yaml:"field,omitempty"`
	Value   string      `json:"value" yaml:"value"`
	Reducer ReducerKind `json:"reducer,omitempty" yaml:"reducer,omitempty"`
	Catalog []Region    `json:"catalog,omitempty" yaml:"catalog,omitempty"`
}

// ScatterConfig drives scatter plots.
type ScatterConfig struct {
	X             string `json:"x" yaml:"x"`
	Y             string `json:"y" yaml:"y"`
	Size          string `json:"size,omitempty" yaml:"size,omitempty"`
	Category      string `json:"category,omitempty" yaml:"category,omitempty"`
	MaxPoints     int    `json:"max_points,omitempty" yaml:"max_points,omitempty"`
	CategoryBound Bound  `json:"category_bound,omitempty" yaml:"category_bound,omitempty"`
}

// WidgetKind selects the reducer a widget runs.
type WidgetKind string

const (
	WidgetBar       WidgetKind = "bar"
	WidgetLine      WidgetKind = "line"
	WidgetRadar     WidgetKind = "radar"
	WidgetHeatmap   WidgetKind = "heatmap"
	WidgetRegionMap WidgetKind = "region_map"
	WidgetTable     WidgetKind = "table"
	WidgetScatter   WidgetKind = "scatter"
)

// WidgetSpec is one visualization on a dashboard. Exactly the config that
// matches Kind is read.
type WidgetSpec struct {
	ID      string     `json:"id" yaml:"id"`
	Title   string     `json:"title,omitempty" yaml:"title,omitempty"`
	Kind    WidgetKind `json:"kind" yaml:"kind"`
	Dataset string     `json:"dataset,omitempty" yaml:"dataset,omitempty"`

	Aggregation *AggregationConfig `json:"aggregation,omitempty" yaml:"aggregation,omitempty"`
	Matrix      *MatrixConfig      `json:"matrix,omitempty" yaml:"matrix,omitempty"`
	Radar       *RadarConfig       `json:"radar,omitempty" yaml:"radar,omitempty"`
	Table       *TableConfig       `json:"table,omitempty" yaml:"table,omitempty"`
	Line        *LineConfig        `json:"line,omitempty" yaml:"line,omitempty"`
	Region      *RegionConfig      `json:"region,omitempty" yaml:"region,omitempty"`
	Scatter     *ScatterConfig     `json:"scatter,omitempty" yaml:"scatter,omitempty"`
}

// DashboardSpec groups widgets over one dataset.
type DashboardSpec struct {
	Name        string       `json:"name" yaml:"name"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Dataset     string       `json:"dataset" yaml:"dataset"`
	Filters     []string     `json:"filters,omitempty" yaml:"filters,omitempty"`
	Widgets     []WidgetSpec `json:"widgets" yaml:"widgets"`
}

// WidgetRequest is the body of POST /api/v1/widgets.
type WidgetRequest struct {
	Dataset string            `json:"dataset,omitempty"`
	Records []Record          `json:"records,omitempty"`
	Filters map[string]string `json:"filters,omitempty"`
	Widget  WidgetSpec        `json:"widget"`
	Query   TableQuery        `json:"query,omitempty"`
}
