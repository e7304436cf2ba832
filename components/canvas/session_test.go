package canvas

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
)

type stubSource struct {
	rows    map[int][]Row
	columns map[int][]Column
	err     error
	calls   []int
}

func (s *stubSource) FetchRows(_ context.Context, datasetID int) ([]Row, []Column, error) {
	s.calls = append(s.calls, datasetID)
	if s.err != nil {
		return nil, nil, s.err
	}
	rows, ok := s.rows[datasetID]
	if !ok {
		return nil, nil, fmt.Errorf("no dataset %d", datasetID)
	}
	return rows, s.columns[datasetID], nil
}

type stubStore struct {
	saved map[string]Document
	err   error
}

func newStubStore() *stubStore {
	return &stubStore{saved: map[string]Document{}}
}

func (s *stubStore) Load(_ context.Context, dashboardID string) (Document, error) {
	return s.saved[dashboardID], nil
}

func (s *stubStore) Save(_ context.Context, dashboardID string, doc Document) error {
	if s.err != nil {
		return s.err
	}
	s.saved[dashboardID] = doc
	return nil
}

type recordingTelemetry struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingTelemetry) has(event string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e == event {
			return true
		}
	}
	return false
}

type recordingHook struct {
	events []WidgetEvent
}

func (r *recordingHook) WidgetUpdated(_ context.Context, event WidgetEvent) error {
	r.events = append(r.events, event)
	return nil
}

func salesRows() []Row {
	return []Row{
		{"region": "North", "product": "Widgets", "amount": 10.0},
		{"region": "North", "product": "Gadgets", "amount": 20.0},
		{"region": "South", "product": "Widgets", "amount": 30.0},
		{"region": "South", "product": "Gadgets", "amount": 40.0},
	}
}

func newSalesSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(SessionOptions{})
	s.SelectDatasets(context.Background(), []int{1})
	s.PutDataset(1, salesRows(), nil)
	return s
}

func TestAddWidgetUsesDefinitionDefaults(t *testing.T) {
	ctx := context.Background()
	s := newSalesSession(t)

	w, err := s.AddWidget(ctx, ChartCard)
	if err != nil {
		t.Fatalf("add widget: %v", err)
	}
	if w.ID == "" {
		t.Fatalf("expected generated id")
	}
	if w.Aggregation != AggCount {
		t.Fatalf("card should default to count, got %s", w.Aggregation)
	}
	if !w.AutoPlaced {
		t.Fatalf("new widgets are auto-placed")
	}
	if w.DatasetID != 1 {
		t.Fatalf("new widgets bind the first selected dataset, got %d", w.DatasetID)
	}
	if selected, ok := s.SelectedWidget(); !ok || selected != w.ID {
		t.Fatalf("new widget should be selected, got %q", selected)
	}
}

func TestAddWidgetUnknownChart(t *testing.T) {
	s := NewSession(SessionOptions{})
	if _, err := s.AddWidget(context.Background(), ChartType("sparkline")); !errors.Is(err, errUnknownChart) {
		t.Fatalf("expected unknown chart error, got %v", err)
	}
}

func TestAddWidgetsPlaceLeftToRightWithoutOverlap(t *testing.T) {
	ctx := context.Background()
	s := NewSession(SessionOptions{})
	var created []Widget
	for i := 0; i < 3; i++ {
		w, err := s.AddWidget(ctx, ChartBar)
		if err != nil {
			t.Fatalf("add widget %d: %v", i, err)
		}
		created = append(created, w)
	}
	if created[0].Position != (Position{X: StagePadding, Y: StagePadding}) {
		t.Fatalf("first widget at padded origin, got %v", created[0].Position)
	}
	if created[1].Position.X <= created[0].Position.X || created[1].Position.Y != StagePadding {
		t.Fatalf("second widget should extend the row, got %v", created[1].Position)
	}
	for i := range created {
		for j := i + 1; j < len(created); j++ {
			a, b := created[i], created[j]
			if Overlaps(a.Bounds(), b.Bounds()) {
				t.Fatalf("auto-placed widgets overlap: %v %v", a.Position, b.Position)
			}
		}
	}
}

func TestRemoveWidgetClearsUnsharedFilterField(t *testing.T) {
	ctx := context.Background()
	s := newSalesSession(t)

	slicer, _ := s.AddWidget(ctx, ChartFilter)
	if err := s.BindColumn(ctx, slicer.ID, BucketFilterField, ColumnRef{DatasetID: 1, Name: "region"}); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if err := s.ToggleFilterValue(ctx, slicer.ID, "North"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if len(s.FilterSnapshot()) != 1 {
		t.Fatalf("expected an active filter entry")
	}
	if err := s.RemoveWidget(ctx, slicer.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(s.FilterSnapshot()) != 0 {
		t.Fatalf("removing the only slicer should clear its field")
	}
}

func TestRemoveWidgetKeepsSharedFilterField(t *testing.T) {
	ctx := context.Background()
	s := newSalesSession(t)

	a, _ := s.AddWidget(ctx, ChartFilter)
	b, _ := s.AddWidget(ctx, ChartFilter)
	_ = s.BindColumn(ctx, a.ID, BucketFilterField, ColumnRef{DatasetID: 1, Name: "region"})
	_ = s.BindColumn(ctx, b.ID, BucketFilterField, ColumnRef{DatasetID: 1, Name: "region"})
	_ = s.ToggleFilterValue(ctx, a.ID, "North")

	if err := s.RemoveWidget(ctx, a.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if snap := s.FilterSnapshot(); !reflect.DeepEqual(snap["region"], []string{"North"}) {
		t.Fatalf("shared field should survive, got %v", snap)
	}
}

func TestMoveWidgetSnapsAndDropsAutoPlacement(t *testing.T) {
	ctx := context.Background()
	s := NewSession(SessionOptions{})
	w, _ := s.AddWidget(ctx, ChartBar)

	if err := s.MoveWidget(ctx, w.ID, 33, 17); err != nil {
		t.Fatalf("move: %v", err)
	}
	moved, _ := s.Widget(w.ID)
	if moved.Position != (Position{X: w.Position.X + 30, Y: w.Position.Y + 20}) {
		t.Fatalf("expected snapped move, got %v", moved.Position)
	}
	if moved.AutoPlaced {
		t.Fatalf("manual moves drop the auto-placed flag")
	}
	if err := s.MoveWidget(ctx, "missing", 1, 1); !errors.Is(err, errMissingWidget) {
		t.Fatalf("expected missing widget error, got %v", err)
	}
}

func TestResizeWidgetFromLeftHandle(t *testing.T) {
	ctx := context.Background()
	s := NewSession(SessionOptions{})
	w, _ := s.AddWidget(ctx, ChartBar)
	rightEdge := w.Position.X + w.Size.Width

	if err := s.ResizeWidget(ctx, w.ID, HandleLeft, 40, 0); err != nil {
		t.Fatalf("resize: %v", err)
	}
	resized, _ := s.Widget(w.ID)
	if resized.Size.Width != w.Size.Width-40 {
		t.Fatalf("expected narrower widget, got %v", resized.Size)
	}
	if resized.Position.X+resized.Size.Width != rightEdge {
		t.Fatalf("right edge should stay fixed")
	}
}

func TestBindColumnRetargetsDataset(t *testing.T) {
	ctx := context.Background()
	s := newSalesSession(t)
	w, _ := s.AddWidget(ctx, ChartBar)

	if err := s.BindColumn(ctx, w.ID, BucketXAxis, ColumnRef{DatasetID: 4, Name: "region"}); err != nil {
		t.Fatalf("bind: %v", err)
	}
	bound, _ := s.Widget(w.ID)
	if bound.Bindings.XAxis != "region" {
		t.Fatalf("bucket not set: %+v", bound.Bindings)
	}
	if bound.DatasetID != 4 {
		t.Fatalf("drop should re-target the column's dataset, got %d", bound.DatasetID)
	}
	if err := s.BindColumn(ctx, w.ID, Bucket("nope"), ColumnRef{Name: "x"}); err == nil {
		t.Fatalf("expected unknown bucket error")
	}
}

func TestUpdateWidgetLeavesEmptyFieldsUntouched(t *testing.T) {
	ctx := context.Background()
	s := NewSession(SessionOptions{})
	w, _ := s.AddWidget(ctx, ChartCard)

	if err := s.UpdateWidget(ctx, w.ID, "Revenue", AggSum, "#ff8800"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := s.UpdateWidget(ctx, w.ID, "", "", ""); err != nil {
		t.Fatalf("update: %v", err)
	}
	updated, _ := s.Widget(w.ID)
	if updated.Title != "Revenue" || updated.Aggregation != AggSum || updated.AccentColor != "#ff8800" {
		t.Fatalf("empty fields should not reset values: %+v", updated)
	}
}

func TestToggleFilterRequiresFilterWidget(t *testing.T) {
	ctx := context.Background()
	s := newSalesSession(t)
	bar, _ := s.AddWidget(ctx, ChartBar)
	if err := s.ToggleFilterValue(ctx, bar.ID, "North"); !errors.Is(err, errNotFilterWidget) {
		t.Fatalf("expected filter widget error, got %v", err)
	}
	slicer, _ := s.AddWidget(ctx, ChartFilter)
	if err := s.ToggleFilterValue(ctx, slicer.ID, "North"); err == nil {
		t.Fatalf("unbound slicer should error")
	}
}

func TestTwoSlicersOnSameFieldShareSelection(t *testing.T) {
	ctx := context.Background()
	s := newSalesSession(t)

	a, _ := s.AddWidget(ctx, ChartFilter)
	b, _ := s.AddWidget(ctx, ChartFilter)
	_ = s.BindColumn(ctx, a.ID, BucketFilterField, ColumnRef{DatasetID: 1, Name: "region"})
	_ = s.BindColumn(ctx, b.ID, BucketFilterField, ColumnRef{DatasetID: 1, Name: "region"})

	if err := s.ToggleFilterValue(ctx, a.ID, "North"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	widgetA, _ := s.Widget(a.ID)
	widgetB, _ := s.Widget(b.ID)
	if !reflect.DeepEqual(widgetA.SelectedFilters, []string{"North"}) {
		t.Fatalf("slicer A selection not mirrored: %v", widgetA.SelectedFilters)
	}
	if !reflect.DeepEqual(widgetB.SelectedFilters, []string{"North"}) {
		t.Fatalf("slicer B selection not mirrored: %v", widgetB.SelectedFilters)
	}

	// Toggling the same value off from the second slicer clears both.
	if err := s.ToggleFilterValue(ctx, b.ID, "North"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	widgetA, _ = s.Widget(a.ID)
	if len(widgetA.SelectedFilters) != 0 {
		t.Fatalf("deselection should mirror too, got %v", widgetA.SelectedFilters)
	}
	if len(s.FilterSnapshot()) != 0 {
		t.Fatalf("filter map should be inactive")
	}
}

func TestCrossFilterNarrowsOtherWidgets(t *testing.T) {
	ctx := context.Background()
	s := newSalesSession(t)

	slicer, _ := s.AddWidget(ctx, ChartFilter)
	_ = s.BindColumn(ctx, slicer.ID, BucketFilterField, ColumnRef{DatasetID: 1, Name: "region"})
	card, _ := s.AddWidget(ctx, ChartCard)
	_ = s.BindColumn(ctx, card.ID, BucketYAxis, ColumnRef{DatasetID: 1, Name: "amount"})
	_ = s.UpdateWidget(ctx, card.ID, "", AggSum, "")

	data, err := s.WidgetData(card.ID)
	if err != nil {
		t.Fatalf("widget data: %v", err)
	}
	if data.Value != 100.0 {
		t.Fatalf("expected unfiltered sum 100, got %v", data.Value)
	}

	_ = s.ToggleFilterValue(ctx, slicer.ID, "North")
	data, _ = s.WidgetData(card.ID)
	if data.Value != 30.0 {
		t.Fatalf("expected filtered sum 30, got %v", data.Value)
	}
}

func TestWidgetDataFilterOptionsShrinkUnderOtherSlicers(t *testing.T) {
	ctx := context.Background()
	s := newSalesSession(t)

	regionSlicer, _ := s.AddWidget(ctx, ChartFilter)
	_ = s.BindColumn(ctx, regionSlicer.ID, BucketFilterField, ColumnRef{DatasetID: 1, Name: "region"})
	productSlicer, _ := s.AddWidget(ctx, ChartFilter)
	_ = s.BindColumn(ctx, productSlicer.ID, BucketFilterField, ColumnRef{DatasetID: 1, Name: "product"})

	_ = s.ToggleFilterValue(ctx, productSlicer.ID, "Widgets")

	data, err := s.WidgetData(regionSlicer.ID)
	if err != nil {
		t.Fatalf("widget data: %v", err)
	}
	if !reflect.DeepEqual(data.Options, []string{"North", "South"}) {
		t.Fatalf("unexpected options %v", data.Options)
	}

	// Selecting a region narrows the region slicer's own resolved rows as
	// well, since its field participates in the shared map.
	_ = s.ToggleFilterValue(ctx, regionSlicer.ID, "North")
	data, _ = s.WidgetData(regionSlicer.ID)
	if !reflect.DeepEqual(data.Selected, []string{"North"}) {
		t.Fatalf("unexpected selection %v", data.Selected)
	}
}

func TestWidgetDataAdvisoryMessagesAndNoData(t *testing.T) {
	ctx := context.Background()
	s := NewSession(SessionOptions{})
	w, _ := s.AddWidget(ctx, ChartBar)

	data, err := s.WidgetData(w.ID)
	if err != nil {
		t.Fatalf("widget data: %v", err)
	}
	if !data.NoData {
		t.Fatalf("no cached dataset should flag NoData")
	}
	if len(data.Messages) != 2 {
		t.Fatalf("expected binding advisories, got %v", data.Messages)
	}
	if _, err := s.WidgetData("missing"); !errors.Is(err, errMissingWidget) {
		t.Fatalf("expected missing widget error, got %v", err)
	}
}

func TestWidgetDataCardDefaultsToCount(t *testing.T) {
	ctx := context.Background()
	s := newSalesSession(t)
	card, _ := s.AddWidget(ctx, ChartCard)
	_ = s.UpdateWidget(ctx, card.ID, "", "", "")

	data, err := s.WidgetData(card.ID)
	if err != nil {
		t.Fatalf("widget data: %v", err)
	}
	if data.Value != 4 {
		t.Fatalf("expected row count 4, got %v", data.Value)
	}
}

func TestWidgetDataPercentage(t *testing.T) {
	ctx := context.Background()
	s := newSalesSession(t)

	slicer, _ := s.AddWidget(ctx, ChartFilter)
	_ = s.BindColumn(ctx, slicer.ID, BucketFilterField, ColumnRef{DatasetID: 1, Name: "region"})
	card, _ := s.AddWidget(ctx, ChartCard)
	_ = s.UpdateWidget(ctx, card.ID, "", AggPercentage, "")
	_ = s.ToggleFilterValue(ctx, slicer.ID, "North")

	data, _ := s.WidgetData(card.ID)
	if data.Value != 50.0 {
		t.Fatalf("expected 50%% of rows, got %v", data.Value)
	}
}

func TestWidgetDataTableCapsRows(t *testing.T) {
	ctx := context.Background()
	s := NewSession(SessionOptions{})
	rows := make([]Row, 80)
	for i := range rows {
		rows[i] = Row{"n": i}
	}
	s.SelectDatasets(ctx, []int{1})
	s.PutDataset(1, rows, nil)
	table, _ := s.AddWidget(ctx, ChartTable)

	data, _ := s.WidgetData(table.ID)
	if len(data.Rows) != maxTableRows {
		t.Fatalf("expected %d rows, got %d", maxTableRows, len(data.Rows))
	}
}

func TestLoadDatasetsRecordsFetchErrors(t *testing.T) {
	ctx := context.Background()
	telemetry := &recordingTelemetry{}
	source := &stubSource{err: errors.New("offline")}
	s := NewSession(SessionOptions{Datasets: source, Telemetry: telemetry})

	s.SelectDatasets(ctx, []int{1, 2})
	s.LoadDatasets(ctx)

	if len(source.calls) != 2 {
		t.Fatalf("expected both datasets attempted, got %v", source.calls)
	}
	if !telemetry.has("canvas.dataset.fetch_error") {
		t.Fatalf("fetch errors should be recorded, got %v", telemetry.events)
	}
}

func TestLoadDatasetsSkipsCached(t *testing.T) {
	ctx := context.Background()
	source := &stubSource{rows: map[int][]Row{1: salesRows()}}
	s := NewSession(SessionOptions{Datasets: source})

	s.SelectDatasets(ctx, []int{1})
	s.LoadDatasets(ctx)
	s.LoadDatasets(ctx)
	if len(source.calls) != 1 {
		t.Fatalf("cached datasets should not be refetched, got %v", source.calls)
	}
}

func TestSaveValidatesAndPersists(t *testing.T) {
	ctx := context.Background()
	store := newStubStore()
	s := NewSession(SessionOptions{Store: store, Validator: NewJSONSchemaValidator()})
	if _, err := s.AddWidget(ctx, ChartBar); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Save(ctx, "main"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(store.saved["main"].Widgets) != 1 {
		t.Fatalf("document not persisted")
	}
}

func TestSaveSurfacesStoreErrors(t *testing.T) {
	ctx := context.Background()
	store := newStubStore()
	store.err = errors.New("disk full")
	s := NewSession(SessionOptions{Store: store})
	if err := s.Save(ctx, "main"); err == nil {
		t.Fatalf("store failures must surface")
	}
	noStore := NewSession(SessionOptions{})
	if err := noStore.Save(ctx, "main"); !errors.Is(err, errMissingStore) {
		t.Fatalf("expected missing store error, got %v", err)
	}
}

func TestDocumentRoundTripRestoresFilters(t *testing.T) {
	ctx := context.Background()
	s := newSalesSession(t)
	slicer, _ := s.AddWidget(ctx, ChartFilter)
	_ = s.BindColumn(ctx, slicer.ID, BucketFilterField, ColumnRef{DatasetID: 1, Name: "region"})
	_ = s.ToggleFilterValue(ctx, slicer.ID, "South")
	s.ZoomIn()

	doc := s.Document()

	restored := NewSession(SessionOptions{})
	restored.LoadDocument(doc)
	if snap := restored.FilterSnapshot(); !reflect.DeepEqual(snap["region"], []string{"South"}) {
		t.Fatalf("filters should rebuild from slicer selections, got %v", snap)
	}
	if restored.ViewportState().Zoom != 1 {
		t.Fatalf("viewport must reset on load")
	}
	if _, ok := restored.SelectedWidget(); ok {
		t.Fatalf("selection must reset on load")
	}
}

func TestLoadConfigMalformedOpensEmptyCanvas(t *testing.T) {
	ctx := context.Background()
	telemetry := &recordingTelemetry{}
	s := NewSession(SessionOptions{Telemetry: telemetry})
	s.LoadConfig(ctx, []byte("{not json"))

	if len(s.Widgets()) != 0 {
		t.Fatalf("malformed config should open an empty canvas")
	}
	if !telemetry.has("canvas.config.invalid") {
		t.Fatalf("expected invalid config telemetry, got %v", telemetry.events)
	}
	doc := s.Document()
	if doc.ConfigVersion != CurrentConfigVersion {
		t.Fatalf("expected current config version, got %d", doc.ConfigVersion)
	}
}

func TestSessionNotifiesRefreshHook(t *testing.T) {
	ctx := context.Background()
	hook := &recordingHook{}
	s := NewSession(SessionOptions{RefreshHook: hook})
	w, _ := s.AddWidget(ctx, ChartBar)
	_ = s.MoveWidget(ctx, w.ID, 10, 0)
	_ = s.RemoveWidget(ctx, w.ID)

	if len(hook.events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(hook.events))
	}
	reasons := []string{hook.events[0].Reason, hook.events[1].Reason, hook.events[2].Reason}
	if !reflect.DeepEqual(reasons, []string{"add", "move", "delete"}) {
		t.Fatalf("unexpected reasons %v", reasons)
	}
}

func TestSelectionStateMachine(t *testing.T) {
	ctx := context.Background()
	s := NewSession(SessionOptions{})
	a, _ := s.AddWidget(ctx, ChartBar)
	b, _ := s.AddWidget(ctx, ChartLine)

	if !s.ClickWidget(a.ID) {
		t.Fatalf("click should select an existing widget")
	}
	if selected, _ := s.SelectedWidget(); selected != a.ID {
		t.Fatalf("expected %s selected, got %s", a.ID, selected)
	}
	if !s.ClickWidget(b.ID) {
		t.Fatalf("clicking another widget should move the selection")
	}
	if selected, _ := s.SelectedWidget(); selected != b.ID {
		t.Fatalf("expected %s selected, got %s", b.ID, selected)
	}
	if s.ClickWidget("missing") {
		t.Fatalf("clicking a missing widget should not select")
	}

	// A background pan keeps the selection; a true click over the canvas
	// clears it; a click released over a side panel does not.
	s.BeginCanvasPan(0, 0)
	s.PanCanvas(80, 0)
	s.EndCanvasPan(true)
	if _, ok := s.SelectedWidget(); !ok {
		t.Fatalf("pan should keep the selection")
	}

	s.BeginCanvasPan(0, 0)
	s.EndCanvasPan(false)
	if _, ok := s.SelectedWidget(); !ok {
		t.Fatalf("click over a panel should keep the selection")
	}

	s.BeginCanvasPan(0, 0)
	s.EndCanvasPan(true)
	if _, ok := s.SelectedWidget(); ok {
		t.Fatalf("click over the canvas should deselect")
	}
}

func TestSessionZoomWrappers(t *testing.T) {
	s := NewSession(SessionOptions{})
	for i := 0; i < 20; i++ {
		s.ZoomIn()
	}
	if s.ViewportState().Zoom != MaxZoom {
		t.Fatalf("expected clamped zoom, got %v", s.ViewportState().Zoom)
	}
	s.FitToView(Size{Width: 1200, Height: 800})
	dx, dy := s.StageDelta(10, 10)
	zoom := s.ViewportState().Zoom
	if dx != 10/zoom || dy != 10/zoom {
		t.Fatalf("stage delta should divide by zoom")
	}
}
