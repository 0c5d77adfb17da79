package model

import "time"

// AggregatedPoint is one primary key of a grouped series. Value holds the
// single-series result; Values holds one entry per secondary key.
type AggregatedPoint struct {
	Key    string             `json:"key"`
	Value  float64            `json:"value"`
	Values map[string]float64 `json:"values,omitempty"`
	Count  int                `json:"count"`
}

// GroupedSeries is the output of GroupingReducer.
type GroupedSeries struct {
	GroupBy []string          `json:"group_by"`
	Series  []string          `json:"series,omitempty"`
	Points  []AggregatedPoint `json:"points"`
	Dropped int               `json:"dropped"`
}

// Matrix is a dense heatmap. Cells[i][j] is Row i, Column j.
type Matrix struct {
	RowLabels    []string      `json:"row_labels"`
	ColumnLabels []string      `json:"column_labels"`
	Cells        [][]NullFloat `json:"cells"`
	Min          float64       `json:"min"`
	Max          float64       `json:"max"`
	Populated    int           `json:"populated"`
	Dropped      int           `json:"dropped"`
}

// RadarRow is one metric across every category.
type RadarRow struct {
	Metric string             `json:"metric"`
	Values map[string]float64 `json:"values"`
}

// RadarChart is the output of RadarNormalizer.
type RadarChart struct {
	Categories []string   `json:"categories"`
	Rows       []RadarRow `json:"rows"`
	Dropped    int        `json:"dropped"`
}

// Cell is a rendered table cell. Missing cells carry the placeholder text.
type Cell struct {
	Value   interface{} `json:"value"`
	Text    string      `json:"text"`
	Missing bool        `json:"missing,omitempty"`
}

// TableRow maps field to cell.
type TableRow map[string]Cell

// TablePage is one page of a projected table.
type TablePage struct {
	Columns   []FieldSpec `json:"columns"`
	Rows      []TableRow  `json:"rows"`
	SortBy    string      `json:"sort_by,omitempty"`
	Desc      bool        `json:"desc,omitempty"`
	Page      int         `json:"page"`
	PageSize  int         `json:"page_size"`
	PageCount int         `json:"page_count"`
	TotalRows int         `json:"total_rows"`
	Truncated bool        `json:"truncated,omitempty"`
}

// LinePoint is one X position with a value per series.
type LinePoint struct {
	X      string               `json:"x"`
	Values map[string]NullFloat `json:"values"`
}

// LineChart is the output of the line series reducer.
type LineChart struct {
	X       string      `json:"x"`
	Series  []string    `json:"series"`
	Points  []LinePoint `json:"points"`
	Dropped int         `json:"dropped"`
}

// RegionValue is one catalog region with its reduced value.
type RegionValue struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Value     NullFloat `json:"value"`
	Intensity float64   `json:"intensity"`
}

// RegionMap is the output of the region reducer.
type RegionMap struct {
	Regions   []RegionValue `json:"regions"`
	Min       float64       `json:"min"`
	Max       float64       `json:"max"`
	Unmatched []string      `json:"unmatched,omitempty"`
}

// ScatterPoint is one plotted record.
type ScatterPoint struct {
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Size     NullFloat `json:"size"`
	Category string    `json:"category"`
}

// ScatterChart is the output of the scatter reducer.
type ScatterChart struct {
	Categories []string       `json:"categories"`
	Points     []ScatterPoint `json:"points"`
	Truncated  bool           `json:"truncated,omitempty"`
	Dropped    int            `json:"dropped"`
}

// WidgetResult is a rendered widget as served to clients.
type WidgetResult struct {
	ID     string      `json:"id"`
	Title  string      `json:"title,omitempty"`
	Kind   WidgetKind  `json:"kind"`
	Result Result[any] `json:"result"`
}

// DashboardResult is a fully rendered dashboard.
type DashboardResult struct {
	Name           string            `json:"name"`
	Title          string            `json:"title"`
	Dataset        string            `json:"dataset"`
	Origin         string            `json:"origin"`
	FallbackReason string            `json:"fallback_reason,omitempty"`
	Filters        map[string]string `json:"filters,omitempty"`
	Widgets        []WidgetResult    `json:"widgets"`
	RenderedAt     time.Time         `json:"rendered_at"`
}
