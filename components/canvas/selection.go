package canvas

// ViewportState is a read-only snapshot of the session viewport.
type ViewportState struct {
	Zoom float64  `json:"zoom"`
	Pan  Position `json:"pan"`
}

// ClickWidget selects a widget: Idle -> Selected, or moves the selection
// when a different widget is clicked.
func (s *Session) ClickWidget(widgetID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.find(widgetID) == nil {
		return false
	}
	s.selectedWidget = widgetID
	return true
}

// SelectedWidget returns the currently selected widget id, if any.
func (s *Session) SelectedWidget() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedWidget, s.selectedWidget != ""
}

// Deselect returns the editor to the Idle state.
func (s *Session) Deselect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedWidget = ""
}

// BeginCanvasPan starts a background drag capture at a screen point.
func (s *Session) BeginCanvasPan(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport.BeginPan(x, y)
}

// PanCanvas updates the pan offset by the raw screen delta.
func (s *Session) PanCanvas(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport.MovePan(x, y)
}

// EndCanvasPan finishes the gesture. A true click (no net movement) released
// over the canvas deselects the active widget; releasing over a non-canvas
// panel, or after an actual pan, never does.
func (s *Session) EndCanvasPan(overCanvas bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clicked := s.viewport.EndPan()
	if clicked && overCanvas {
		s.selectedWidget = ""
	}
}

// ZoomIn steps the viewport zoom up.
func (s *Session) ZoomIn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport.ZoomIn()
}

// ZoomOut steps the viewport zoom down.
func (s *Session) ZoomOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport.ZoomOut()
}

// AdjustZoom applies a wheel tick.
func (s *Session) AdjustZoom(delta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport.AdjustZoom(delta)
}

// FitToView fits the whole stage into the given viewport size.
func (s *Session) FitToView(viewport Size) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport.FitToView(viewport)
}

// StageDelta converts a raw pointer delta to stage space under the current
// zoom, for drag/resize gestures.
func (s *Session) StageDelta(dx, dy float64) (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewport.StageDelta(dx, dy)
}

// ViewportState snapshots the current zoom/pan.
func (s *Session) ViewportState() ViewportState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ViewportState{Zoom: s.viewport.Zoom(), Pan: s.viewport.Pan()}
}
