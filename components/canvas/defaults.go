package canvas

var defaultWidgetSize = Size{Width: 360, Height: 260}

var defaultChartDefinitions = []ChartDefinition{
	{
		Type:          ChartBar,
		Name:          "Bar Chart",
		Description:   "Vertical bars per category",
		Icon:          "bar-chart",
		DefaultSize:   Size{Width: 420, Height: 300},
		DefaultAccent: "#4e79a7",
		Buckets: []BucketRule{
			{Bucket: BucketXAxis, Label: "X-Axis", Required: true},
			{Bucket: BucketYAxis, Label: "Values", Required: true},
			{Bucket: BucketLegend, Label: "Legend"},
		},
	},
	{
		Type:          ChartStackedBar,
		Name:          "Stacked Bar Chart",
		Description:   "Bars stacked by legend series",
		Icon:          "stacked-bar-chart",
		DefaultSize:   Size{Width: 420, Height: 300},
		DefaultAccent: "#59a14f",
		Buckets: []BucketRule{
			{Bucket: BucketXAxis, Label: "X-Axis", Required: true},
			{Bucket: BucketYAxis, Label: "Values", Required: true},
			{Bucket: BucketLegend, Label: "Legend"},
		},
	},
	{
		Type:          ChartLine,
		Name:          "Line Chart",
		Description:   "Trend line over an ordered axis",
		Icon:          "line-chart",
		DefaultSize:   Size{Width: 420, Height: 300},
		DefaultAccent: "#f28e2b",
		Buckets: []BucketRule{
			{Bucket: BucketXAxis, Label: "X-Axis", Required: true},
			{Bucket: BucketYAxis, Label: "Values", Required: true},
			{Bucket: BucketLegend, Label: "Legend"},
		},
	},
	{
		Type:          ChartArea,
		Name:          "Area Chart",
		Description:   "Filled trend line",
		Icon:          "area-chart",
		DefaultSize:   Size{Width: 420, Height: 300},
		DefaultAccent: "#76b7b2",
		Buckets: []BucketRule{
			{Bucket: BucketXAxis, Label: "X-Axis", Required: true},
			{Bucket: BucketYAxis, Label: "Values", Required: true},
			{Bucket: BucketLegend, Label: "Legend"},
		},
	},
	{
		Type:          ChartPie,
		Name:          "Pie Chart",
		Description:   "Proportional slices",
		Icon:          "pie-chart",
		DefaultSize:   Size{Width: 340, Height: 300},
		DefaultAccent: "#e15759",
		Buckets: []BucketRule{
			{Bucket: BucketYAxis, Label: "Values", Required: true},
			{Bucket: BucketLegend, Label: "Names", Required: true},
		},
	},
	{
		Type:          ChartDonut,
		Name:          "Donut Chart",
		Description:   "Pie with a hollow center",
		Icon:          "donut-chart",
		DefaultSize:   Size{Width: 340, Height: 300},
		DefaultAccent: "#af7aa1",
		Buckets: []BucketRule{
			{Bucket: BucketYAxis, Label: "Values", Required: true},
			{Bucket: BucketLegend, Label: "Names", Required: true},
		},
	},
	{
		Type:          ChartTreemap,
		Name:          "Treemap",
		Description:   "Nested rectangles sized by value",
		Icon:          "treemap",
		DefaultSize:   Size{Width: 420, Height: 320},
		DefaultAccent: "#edc948",
		Buckets: []BucketRule{
			{Bucket: BucketXAxis, Label: "Name", Required: true},
			{Bucket: BucketYAxis, Label: "Size", Required: true},
		},
	},
	{
		Type:               ChartGauge,
		Name:               "Gauge",
		Description:        "Single aggregated value on a dial",
		Icon:               "gauge",
		DefaultSize:        Size{Width: 300, Height: 260},
		DefaultAggregation: AggSum,
		DefaultAccent:      "#b07aa1",
		Buckets: []BucketRule{
			{Bucket: BucketYAxis, Label: "Field", Required: true},
		},
	},
	{
		Type:               ChartCard,
		Name:               "Card",
		Description:        "Single aggregated value",
		Icon:               "card",
		DefaultSize:        Size{Width: 240, Height: 160},
		DefaultAggregation: AggCount,
		DefaultAccent:      "#ff9da7",
		Buckets: []BucketRule{
			{Bucket: BucketYAxis, Label: "Field", Required: true},
		},
	},
	{
		Type:          ChartFilter,
		Name:          "Filter",
		Description:   "Slicer cross-filtering widgets on the same dataset",
		Icon:          "filter",
		DefaultSize:   Size{Width: 240, Height: 280},
		DefaultAccent: "#9c755f",
		Buckets: []BucketRule{
			{Bucket: BucketFilterField, Label: "Filter Field", Required: true},
		},
	},
	{
		Type:          ChartTable,
		Name:          "Table",
		Description:   "Raw rows with inferred columns",
		Icon:          "table",
		DefaultSize:   Size{Width: 480, Height: 320},
		DefaultAccent: "#bab0ac",
	},
}

// DefaultChartDefinitions returns the built-in builder palette.
func DefaultChartDefinitions() []ChartDefinition {
	defs := make([]ChartDefinition, len(defaultChartDefinitions))
	copy(defs, defaultChartDefinitions)
	return defs
}
