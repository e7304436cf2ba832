package canvas

import "context"

// ChartType identifies the visual a widget renders.
type ChartType string

// Chart types available on the builder palette.
const (
	ChartBar        ChartType = "bar"
	ChartStackedBar ChartType = "stacked-bar"
	ChartLine       ChartType = "line"
	ChartArea       ChartType = "area"
	ChartPie        ChartType = "pie"
	ChartDonut      ChartType = "donut"
	ChartTreemap    ChartType = "treemap"
	ChartGauge      ChartType = "gauge"
	ChartCard       ChartType = "card"
	ChartFilter     ChartType = "filter"
	ChartTable      ChartType = "table"
)

// Aggregation names the reduction applied to a widget's bound field.
type Aggregation string

// Supported aggregations.
const (
	AggCount      Aggregation = "count"
	AggSum        Aggregation = "sum"
	AggFirst      Aggregation = "first"
	AggLast       Aggregation = "last"
	AggPercentage Aggregation = "percentage"
)

// Position locates a widget's top-left corner in stage coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a widget's extent in stage coordinates.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bindings maps field buckets to dataset column names. Empty string means
// the bucket is unbound.
type Bindings struct {
	XAxis       string `json:"xAxis,omitempty"`
	YAxis       string `json:"yAxis,omitempty"`
	Legend      string `json:"legend,omitempty"`
	FilterField string `json:"filterField,omitempty"`
}

// Widget is a chart placed on the builder stage. Positions and sizes are
// stage-absolute so persisted layouts survive zoom/pan round-trips.
type Widget struct {
	ID              string      `json:"id"`
	Type            ChartType   `json:"type"`
	Title           string      `json:"title,omitempty"`
	Position        Position    `json:"position"`
	Size            Size        `json:"size"`
	DatasetID       int         `json:"datasetId,omitempty"`
	Bindings        Bindings    `json:"bindings"`
	Aggregation     Aggregation `json:"aggregation,omitempty"`
	SelectedFilters []string    `json:"selectedFilters,omitempty"`
	AccentColor     string      `json:"accentColor,omitempty"`
	// AutoPlaced stays true until the widget is dragged; only auto-placed
	// widgets carry the non-overlap guarantee.
	AutoPlaced bool `json:"autoPlaced,omitempty"`
}

// Column describes a dataset column. Type is advisory (string/number/date).
type Column struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Row is a single dataset record keyed by column name. Values stay loosely
// typed; coercion happens only at the filter and aggregation boundaries.
type Row map[string]any

// ColumnRef identifies a column within a specific dataset, e.g. a field
// dragged out of the fields panel.
type ColumnRef struct {
	DatasetID int    `json:"datasetId"`
	Name      string `json:"name"`
}

// DatasetSource fetches rows and schema for a dataset. Implementations live
// outside the core (HTTP API, Excel ingestion); pkg/datasets ships one.
type DatasetSource interface {
	FetchRows(ctx context.Context, datasetID int) ([]Row, []Column, error)
}

// DashboardStore persists dashboard documents.
type DashboardStore interface {
	Load(ctx context.Context, dashboardID string) (Document, error)
	Save(ctx context.Context, dashboardID string, doc Document) error
}

// RefreshHook notifies transports that a widget's data or layout changed.
type RefreshHook interface {
	WidgetUpdated(ctx context.Context, event WidgetEvent) error
}

// WidgetEvent describes a change transports might care about.
type WidgetEvent struct {
	WidgetID string `json:"widget_id"`
	Reason   string `json:"reason"`
}

type noopRefreshHook struct{}

func (noopRefreshHook) WidgetUpdated(context.Context, WidgetEvent) error { return nil }
