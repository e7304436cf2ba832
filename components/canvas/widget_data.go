package canvas

// WidgetData is the resolved payload handed to a renderer: the filtered row
// set keyed by the widget's bucket assignments, plus whatever the chart type
// derives from it. Category charts receive one data point per row; duplicate
// x-values are not grouped.
type WidgetData struct {
	Widget   Widget   `json:"widget"`
	Rows     []Row    `json:"rows,omitempty"`
	Columns  []Column `json:"columns,omitempty"`
	Value    any      `json:"value,omitempty"`
	Options  []string `json:"options,omitempty"`
	Selected []string `json:"selected,omitempty"`
	Messages []string `json:"messages,omitempty"`
	NoData   bool     `json:"no_data,omitempty"`
}

// WidgetData resolves a widget's rows through the shared filter map and
// computes the chart-type specific payload. Missing datasets and binding
// gaps surface as placeholder flags and advisory messages, never as errors.
func (s *Session) WidgetData(widgetID string) (WidgetData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.find(widgetID)
	if w == nil {
		return WidgetData{}, errMissingWidget
	}

	data := WidgetData{
		Widget:   *w,
		Messages: ValidateWidget(w),
	}

	rows := ResolveRows(w, s.cache, s.selectedDatasets, s.filters)
	data.Columns = s.columnsFor(w, rows)

	switch w.Type {
	case ChartFilter:
		data.Options = DistinctValues(rows, w.Bindings.FilterField)
		data.Selected = s.filters.Allowed(w.Bindings.FilterField)
		data.Rows = rows
	case ChartCard, ChartGauge:
		agg := w.Aggregation
		if agg == "" {
			agg = AggCount
		}
		base := BaseRows(w, s.cache, s.selectedDatasets)
		data.Value = Aggregate(rows, base, w.Bindings.YAxis, agg)
		data.Rows = rows
	case ChartTable:
		data.Rows = TableRows(rows)
	default:
		data.Rows = rows
	}

	data.NoData = len(rows) == 0
	return data, nil
}

func (s *Session) columnsFor(w *Widget, rows []Row) []Column {
	if cols := s.cache.Columns(w.DatasetID); len(cols) > 0 {
		return cols
	}
	for _, id := range s.selectedDatasets {
		if cols := s.cache.Columns(id); len(cols) > 0 {
			return cols
		}
	}
	return InferColumns(rows)
}
