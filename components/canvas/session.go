package canvas

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var (
	errMissingWidget   = errors.New("canvas: widget not found")
	errUnknownChart    = errors.New("canvas: unknown chart type")
	errNotFilterWidget = errors.New("canvas: widget is not a filter")
	errMissingStore    = errors.New("canvas: dashboard store not configured")
)

// SessionOptions configures an editor Session. Collaborators are provided
// via interface so applications can swap implementations.
type SessionOptions struct {
	Registry    *Registry
	Datasets    DatasetSource
	Store       DashboardStore
	RefreshHook RefreshHook
	Telemetry   Telemetry
	Validator   DocumentValidator
}

// Session owns one builder editing session: the widget list, the shared
// filter map, the viewport, the dataset cache, and the selection state.
// All mutation goes through session methods guarded by a single mutex, so
// handler callbacks stay serialized the way a UI event loop would run them.
type Session struct {
	mu   sync.Mutex
	opts SessionOptions

	widgets          []*Widget
	filters          *FilterMap
	viewport         *Viewport
	cache            *DatasetCache
	selectedDatasets []int
	selectedWidget   string
	category         string
	configVersion    int
}

// NewSession builds a session with safe defaults.
func NewSession(opts SessionOptions) *Session {
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Session{
		opts:     opts,
		filters:  NewFilterMap(),
		viewport: NewViewport(),
		cache:    NewDatasetCache(),
	}
}

// LoadDocument replaces session state with a persisted dashboard document.
func (s *Session) LoadDocument(doc Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyDocument(doc)
}

// LoadConfig decodes raw dashboard JSON. Malformed payloads open an empty
// canvas instead of failing the session.
func (s *Session) LoadConfig(ctx context.Context, data []byte) {
	doc, err := DecodeDocument(data)
	if err != nil {
		s.opts.Telemetry.Record(ctx, "canvas.config.invalid", map[string]any{
			"error": err.Error(),
		})
		doc = Document{ConfigVersion: CurrentConfigVersion}
	}
	s.LoadDocument(doc)
}

func (s *Session) applyDocument(doc Document) {
	s.widgets = make([]*Widget, 0, len(doc.Widgets))
	for i := range doc.Widgets {
		w := doc.Widgets[i]
		s.widgets = append(s.widgets, &w)
	}
	s.selectedDatasets = append([]int(nil), doc.SelectedDatasets...)
	s.category = doc.Category
	s.configVersion = doc.ConfigVersion
	s.filters = NewFilterMap()
	for _, w := range s.widgets {
		if w.Type == ChartFilter && w.Bindings.FilterField != "" {
			s.filters.SetValues(w.Bindings.FilterField, w.SelectedFilters)
		}
	}
	s.selectedWidget = ""
	s.viewport.Reset()
}

// Document snapshots the session as a persistable dashboard document.
// Positions are stage-absolute, so the layout survives round-trips
// regardless of the viewport.
func (s *Session) Document() Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := Document{
		ConfigVersion:    s.configVersion,
		Widgets:          make([]Widget, len(s.widgets)),
		SelectedDatasets: append([]int(nil), s.selectedDatasets...),
		Category:         s.category,
	}
	if doc.ConfigVersion == 0 {
		doc.ConfigVersion = CurrentConfigVersion
	}
	for i, w := range s.widgets {
		doc.Widgets[i] = *w
	}
	return doc
}

// Save validates and persists the dashboard document. Unlike most canvas
// errors, save failures must surface to the user.
func (s *Session) Save(ctx context.Context, dashboardID string) error {
	if s.opts.Store == nil {
		return errMissingStore
	}
	doc := s.Document()
	if s.opts.Validator != nil {
		if err := s.opts.Validator.ValidateDocument(doc); err != nil {
			return err
		}
	}
	if err := s.opts.Store.Save(ctx, dashboardID, doc); err != nil {
		return fmt.Errorf("canvas: save dashboard %s: %w", dashboardID, err)
	}
	s.opts.Telemetry.Record(ctx, "canvas.dashboard.save", map[string]any{
		"dashboard_id": dashboardID,
		"widgets":      len(doc.Widgets),
	})
	return nil
}

// AddWidget creates a widget of the given chart type, auto-placed at the
// first free grid slot. Auto-placed widgets never overlap each other.
func (s *Session) AddWidget(ctx context.Context, chartType ChartType) (Widget, error) {
	def, ok := s.opts.Registry.Definition(chartType)
	if !ok {
		return Widget{}, fmt.Errorf("%w: %s", errUnknownChart, chartType)
	}
	s.mu.Lock()
	size := def.DefaultSize
	w := &Widget{
		ID:          uuid.NewString(),
		Type:        chartType,
		Title:       def.Name,
		Position:    FindNextFreePosition(s.widgets, size),
		Size:        size,
		Aggregation: def.DefaultAggregation,
		AccentColor: def.DefaultAccent,
		AutoPlaced:  true,
	}
	if len(s.selectedDatasets) > 0 {
		w.DatasetID = s.selectedDatasets[0]
	}
	s.widgets = append(s.widgets, w)
	s.selectedWidget = w.ID
	created := *w
	s.mu.Unlock()

	s.notify(ctx, WidgetEvent{WidgetID: created.ID, Reason: "add"})
	s.opts.Telemetry.Record(ctx, "canvas.widget.add", map[string]any{
		"widget_id":  created.ID,
		"chart_type": string(chartType),
	})
	return created, nil
}

// RemoveWidget deletes a widget. Removing a filter widget also clears its
// field from the shared filter map unless another slicer still uses it.
func (s *Session) RemoveWidget(ctx context.Context, widgetID string) error {
	s.mu.Lock()
	idx := -1
	for i, w := range s.widgets {
		if w.ID == widgetID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return errMissingWidget
	}
	removed := s.widgets[idx]
	s.widgets = append(s.widgets[:idx], s.widgets[idx+1:]...)
	if removed.Type == ChartFilter && removed.Bindings.FilterField != "" {
		shared := false
		for _, w := range s.widgets {
			if w.Type == ChartFilter && w.Bindings.FilterField == removed.Bindings.FilterField {
				shared = true
				break
			}
		}
		if !shared {
			s.filters.Clear(removed.Bindings.FilterField)
		}
	}
	if s.selectedWidget == widgetID {
		s.selectedWidget = ""
	}
	s.mu.Unlock()

	s.notify(ctx, WidgetEvent{WidgetID: widgetID, Reason: "delete"})
	s.opts.Telemetry.Record(ctx, "canvas.widget.remove", map[string]any{"widget_id": widgetID})
	return nil
}

// MoveWidget commits a drag gesture: the stage-space delta is applied,
// snapped, and bounded to the stage. Manual moves may overlap other widgets
// and drop the auto-placement guarantee.
func (s *Session) MoveWidget(ctx context.Context, widgetID string, dx, dy float64) error {
	s.mu.Lock()
	w := s.find(widgetID)
	if w == nil {
		s.mu.Unlock()
		return errMissingWidget
	}
	w.Position = ApplyDrag(w.Position, w.Size, dx, dy)
	w.AutoPlaced = false
	s.mu.Unlock()

	s.notify(ctx, WidgetEvent{WidgetID: widgetID, Reason: "move"})
	return nil
}

// ResizeWidget commits a resize gesture from the given handle.
func (s *Session) ResizeWidget(ctx context.Context, widgetID string, handle ResizeHandle, dx, dy float64) error {
	s.mu.Lock()
	w := s.find(widgetID)
	if w == nil {
		s.mu.Unlock()
		return errMissingWidget
	}
	w.Position, w.Size = ApplyResize(w.Position, w.Size, handle, dx, dy)
	s.mu.Unlock()

	s.notify(ctx, WidgetEvent{WidgetID: widgetID, Reason: "resize"})
	return nil
}

// BindColumn drops a dataset column onto one of the widget's buckets. The
// drop also re-targets the widget to the column's source dataset.
func (s *Session) BindColumn(ctx context.Context, widgetID string, bucket Bucket, column ColumnRef) error {
	s.mu.Lock()
	w := s.find(widgetID)
	if w == nil {
		s.mu.Unlock()
		return errMissingWidget
	}
	if !w.Bindings.setBucket(bucket, column.Name) {
		s.mu.Unlock()
		return fmt.Errorf("canvas: unknown bucket %q", bucket)
	}
	if column.DatasetID != 0 {
		w.DatasetID = column.DatasetID
	}
	s.mu.Unlock()

	s.notify(ctx, WidgetEvent{WidgetID: widgetID, Reason: "bind"})
	s.opts.Telemetry.Record(ctx, "canvas.widget.bind", map[string]any{
		"widget_id": widgetID,
		"bucket":    string(bucket),
		"column":    column.Name,
	})
	return nil
}

// UpdateWidget applies format-panel edits (title, aggregation, accent).
// Empty fields are left untouched.
func (s *Session) UpdateWidget(ctx context.Context, widgetID string, title string, agg Aggregation, accent string) error {
	s.mu.Lock()
	w := s.find(widgetID)
	if w == nil {
		s.mu.Unlock()
		return errMissingWidget
	}
	if title != "" {
		w.Title = title
	}
	if agg != "" {
		w.Aggregation = agg
	}
	if accent != "" {
		w.AccentColor = accent
	}
	s.mu.Unlock()

	s.notify(ctx, WidgetEvent{WidgetID: widgetID, Reason: "update"})
	return nil
}

// ToggleFilterValue flips a value on a slicer widget, updating both the
// widget's own selection and the shared filter map entry for its field.
// Every widget on the dataset re-resolves against the updated map.
func (s *Session) ToggleFilterValue(ctx context.Context, widgetID, value string) error {
	s.mu.Lock()
	w := s.find(widgetID)
	if w == nil {
		s.mu.Unlock()
		return errMissingWidget
	}
	if w.Type != ChartFilter {
		s.mu.Unlock()
		return errNotFilterWidget
	}
	field := w.Bindings.FilterField
	if field == "" {
		s.mu.Unlock()
		return errors.New("canvas: filter widget has no bound field")
	}
	s.filters.Toggle(field, value)
	selection := s.filters.Allowed(field)
	// Slicers keyed to the same field share the map entry, so mirror the
	// selection onto each of them.
	for _, other := range s.widgets {
		if other.Type == ChartFilter && other.Bindings.FilterField == field {
			other.SelectedFilters = append([]string(nil), selection...)
		}
	}
	s.mu.Unlock()

	s.notify(ctx, WidgetEvent{WidgetID: widgetID, Reason: "filter"})
	s.opts.Telemetry.Record(ctx, "canvas.filter.toggle", map[string]any{
		"widget_id": widgetID,
		"field":     field,
		"value":     value,
	})
	return nil
}

// SelectDatasets records the datasets available to new widgets and the
// row-resolution fallback order.
func (s *Session) SelectDatasets(ctx context.Context, datasetIDs []int) {
	s.mu.Lock()
	s.selectedDatasets = append([]int(nil), datasetIDs...)
	s.mu.Unlock()
	s.opts.Telemetry.Record(ctx, "canvas.datasets.select", map[string]any{
		"count": len(datasetIDs),
	})
}

// LoadDatasets fetches rows for every selected dataset not yet cached.
// Fetch failures never propagate: the affected widgets render a "no data"
// placeholder and the error is only recorded. Responses for datasets
// deselected mid-flight are cached but not rendered.
func (s *Session) LoadDatasets(ctx context.Context) {
	if s.opts.Datasets == nil {
		return
	}
	s.mu.Lock()
	pending := make([]int, 0, len(s.selectedDatasets))
	for _, id := range s.selectedDatasets {
		if !s.cache.Has(id) {
			pending = append(pending, id)
		}
	}
	s.mu.Unlock()

	for _, id := range pending {
		rows, columns, err := s.opts.Datasets.FetchRows(ctx, id)
		if err != nil {
			s.opts.Telemetry.Record(ctx, "canvas.dataset.fetch_error", map[string]any{
				"dataset_id": id,
				"error":      err.Error(),
			})
			continue
		}
		s.PutDataset(id, rows, columns)
	}
}

// PutDataset caches rows for a dataset, e.g. from an out-of-band fetch.
func (s *Session) PutDataset(datasetID int, rows []Row, columns []Column) {
	s.mu.Lock()
	s.cache.Put(datasetID, rows, columns)
	s.mu.Unlock()
}

// DatasetColumns exposes the cached schema for the fields panel.
func (s *Session) DatasetColumns(datasetID int) []Column {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Columns(datasetID)
}

// Widgets returns a snapshot of all widgets in z-order.
func (s *Session) Widgets() []Widget {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Widget, len(s.widgets))
	for i, w := range s.widgets {
		out[i] = *w
	}
	return out
}

// Widget returns a snapshot of one widget.
func (s *Session) Widget(widgetID string) (Widget, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w := s.find(widgetID); w != nil {
		return *w, true
	}
	return Widget{}, false
}

// FilterSnapshot copies the active cross-filter entries.
func (s *Session) FilterSnapshot() map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters.Snapshot()
}

// Palette returns the chart definitions available to this session.
func (s *Session) Palette() []ChartDefinition {
	return s.opts.Registry.Definitions()
}

func (s *Session) find(widgetID string) *Widget {
	for _, w := range s.widgets {
		if w.ID == widgetID {
			return w
		}
	}
	return nil
}

func (s *Session) notify(ctx context.Context, event WidgetEvent) {
	_ = s.opts.RefreshHook.WidgetUpdated(ctx, event)
}
