package canvas

// ValidateBindings checks a widget's bucket assignments against the needs of
// its chart type and returns advisory messages. Messages guide the editor;
// they never block saving or rendering.
func ValidateBindings(chartType ChartType, b Bindings) []string {
	var msgs []string
	switch chartType {
	case ChartBar, ChartStackedBar, ChartLine, ChartArea:
		if b.XAxis == "" {
			msgs = append(msgs, "X-axis is required")
		}
		if b.YAxis == "" {
			msgs = append(msgs, "Values field is required")
		}
	case ChartPie, ChartDonut:
		// Value accepts either bucket the user happened to drop on.
		if b.YAxis == "" {
			msgs = append(msgs, "Values field is required")
		}
		if b.Legend == "" && b.XAxis == "" {
			msgs = append(msgs, "Name field is required")
		}
	case ChartTreemap:
		// Renderer falls back to the first two raw columns when unbound,
		// so these stay advisory.
		if b.XAxis == "" {
			msgs = append(msgs, "Name field is required")
		}
		if b.YAxis == "" {
			msgs = append(msgs, "Size field is required")
		}
	case ChartGauge:
		if b.YAxis == "" {
			msgs = append(msgs, "Field is required")
		}
	case ChartCard:
		if b.YAxis == "" {
			msgs = append(msgs, "Field is required")
		}
	case ChartFilter:
		if b.FilterField == "" {
			msgs = append(msgs, "Filter field is required")
		}
	case ChartTable:
		// Tables render every column of the first row; nothing to bind.
	}
	return msgs
}

// ValidateWidget validates a widget's current bindings, adding an
// aggregation notice for gauge widgets.
func ValidateWidget(w *Widget) []string {
	msgs := ValidateBindings(w.Type, w.Bindings)
	if w.Type == ChartGauge && w.Aggregation == "" {
		msgs = append(msgs, "Aggregation is required")
	}
	return msgs
}

// setBucket assigns a column name to one of the widget's buckets.
func (b *Bindings) setBucket(bucket Bucket, column string) bool {
	switch bucket {
	case BucketXAxis:
		b.XAxis = column
	case BucketYAxis:
		b.YAxis = column
	case BucketLegend:
		b.Legend = column
	case BucketFilterField:
		b.FilterField = column
	default:
		return false
	}
	return true
}
