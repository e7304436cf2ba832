package canvas

import "math"

// Zoom limits and step factors for the builder stage.
const (
	MinZoom       = 0.15
	MaxZoom       = 2.0
	zoomStep      = 1.25
	wheelZoomStep = 0.1
	fitMargin     = 0.9
	clickSlop     = 2.0
)

// Viewport holds the zoom/pan state mapping stage coordinates to screen
// coordinates: screen = stage*zoom + pan. The state is session scoped and
// resets when the builder reopens.
type Viewport struct {
	zoom float64
	pan  Position

	panning bool
	moved   bool
	startX  float64
	startY  float64
	lastX   float64
	lastY   float64
}

// NewViewport returns a viewport at 100% zoom with no pan offset.
func NewViewport() *Viewport {
	return &Viewport{zoom: 1}
}

// Zoom returns the current zoom factor.
func (v *Viewport) Zoom() float64 { return v.zoom }

// Pan returns the current pan offset in screen coordinates.
func (v *Viewport) Pan() Position { return v.pan }

// ZoomIn multiplies the zoom factor by the step, clamped to MaxZoom.
func (v *Viewport) ZoomIn() { v.setZoom(v.zoom * zoomStep) }

// ZoomOut divides the zoom factor by the step, clamped to MinZoom.
func (v *Viewport) ZoomOut() { v.setZoom(v.zoom / zoomStep) }

// AdjustZoom applies a wheel tick: positive deltas zoom in by 0.1, negative
// deltas zoom out. The zoom is not anchored at the cursor.
func (v *Viewport) AdjustZoom(delta float64) {
	if delta > 0 {
		v.setZoom(v.zoom + wheelZoomStep)
	} else if delta < 0 {
		v.setZoom(v.zoom - wheelZoomStep)
	}
}

func (v *Viewport) setZoom(z float64) {
	v.zoom = clamp(z, MinZoom, MaxZoom)
}

// FitToView picks the zoom that shows the whole stage inside the given
// viewport with a small margin, and centers the stage.
func (v *Viewport) FitToView(viewport Size) {
	if viewport.Width <= 0 || viewport.Height <= 0 {
		return
	}
	scale := math.Min(viewport.Width/StageWidth, viewport.Height/StageHeight) * fitMargin
	v.setZoom(scale)
	v.pan = Position{
		X: (viewport.Width - StageWidth*v.zoom) / 2,
		Y: (viewport.Height - StageHeight*v.zoom) / 2,
	}
}

// ToStage converts a screen point to stage coordinates.
func (v *Viewport) ToStage(screen Position) Position {
	return Position{
		X: (screen.X - v.pan.X) / v.zoom,
		Y: (screen.Y - v.pan.Y) / v.zoom,
	}
}

// ToScreen converts a stage point to screen coordinates.
func (v *Viewport) ToScreen(stage Position) Position {
	return Position{
		X: stage.X*v.zoom + v.pan.X,
		Y: stage.Y*v.zoom + v.pan.Y,
	}
}

// StageDelta converts a raw pointer delta into a stage-space delta under the
// current zoom, used while dragging or resizing widgets.
func (v *Viewport) StageDelta(dx, dy float64) (float64, float64) {
	return dx / v.zoom, dy / v.zoom
}

// BeginPan starts a background drag capture at the given screen point.
func (v *Viewport) BeginPan(x, y float64) {
	v.panning = true
	v.moved = false
	v.startX = x
	v.startY = y
	v.lastX = x
	v.lastY = y
}

// MovePan updates the pan offset by the raw screen delta since the last
// pointer event. Net displacement from the capture origin beyond the click
// slop marks the gesture as a pan, so slow drags delivered in tiny
// increments still register.
func (v *Viewport) MovePan(x, y float64) {
	if !v.panning {
		return
	}
	v.pan.X += x - v.lastX
	v.pan.Y += y - v.lastY
	v.lastX = x
	v.lastY = y
	if math.Abs(x-v.startX) > clickSlop || math.Abs(y-v.startY) > clickSlop {
		v.moved = true
	}
}

// EndPan finishes the capture and reports whether the gesture was a true
// click (no net movement) rather than a pan.
func (v *Viewport) EndPan() (clicked bool) {
	if !v.panning {
		return false
	}
	v.panning = false
	return !v.moved
}

// Panning reports whether a background drag capture is active.
func (v *Viewport) Panning() bool { return v.panning }

// Reset restores the initial zoom/pan, used when the builder reopens.
func (v *Viewport) Reset() {
	v.zoom = 1
	v.pan = Position{}
	v.panning = false
	v.moved = false
}

func clamp(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
