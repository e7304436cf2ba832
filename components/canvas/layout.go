package canvas

import "math"

// Stage dimensions and layout constants. The stage is a fixed virtual canvas;
// widget positions are absolute within it, independent of zoom/pan.
const (
	StageWidth   = 3000.0
	StageHeight  = 2000.0
	StagePadding = 40.0

	GridUnit        = 10.0
	MinWidgetWidth  = 150.0
	MinWidgetHeight = 120.0

	// collisionPad expands widget bounds during overlap tests so
	// auto-placed widgets keep breathing room between them.
	collisionPad = 12.0

	maxPlacementRows = 400
)

// SnapToGrid rounds a stage coordinate to the nearest grid unit.
func SnapToGrid(v float64) float64 {
	return math.Round(v/GridUnit) * GridUnit
}

// Rect is an axis-aligned rectangle in stage coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Bounds returns the widget's rectangle.
func (w *Widget) Bounds() Rect {
	return Rect{X: w.Position.X, Y: w.Position.Y, W: w.Size.Width, H: w.Size.Height}
}

func (r Rect) pad(p float64) Rect {
	return Rect{X: r.X - p, Y: r.Y - p, W: r.W + 2*p, H: r.H + 2*p}
}

// Intersects reports standard AABB intersection.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Overlaps reports whether two widget rectangles collide once both are
// padded by the collision margin.
func Overlaps(a, b Rect) bool {
	return a.pad(collisionPad).Intersects(b.pad(collisionPad))
}

// FindNextFreePosition scans the stage top-down, left-to-right in grid steps
// and returns the first snapped position where a widget of the given size
// would not overlap any existing widget. The scan always terminates: rows
// advance past the lowest edge still blocking the current band, the row
// count is capped, and a below-everything fallback is clamped to the stage.
func FindNextFreePosition(widgets []*Widget, size Size) Position {
	y := StagePadding
	maxX := StageWidth - StagePadding - size.Width

	for row := 0; row < maxPlacementRows; row++ {
		nextY := math.Inf(1)
		for x := StagePadding; x <= maxX; x += GridUnit {
			candidate := Rect{X: SnapToGrid(x), Y: SnapToGrid(y), W: size.Width, H: size.Height}
			blocked := false
			for _, w := range widgets {
				b := w.Bounds()
				if Overlaps(candidate, b) {
					blocked = true
					if bottom := b.Y + b.H; bottom < nextY {
						nextY = bottom
					}
				}
			}
			if !blocked {
				return Position{X: candidate.X, Y: candidate.Y}
			}
		}
		// Jump past the lowest blocking edge instead of stepping one grid
		// unit so a fully occupied band is skipped in one move. Both rects
		// carry the collision pad, so the jump must clear twice the margin,
		// rounded up to the next grid line.
		if math.IsInf(nextY, 1) {
			y += size.Height + collisionPad
		} else {
			y = nextY + 2*collisionPad
		}
		y = math.Ceil(y/GridUnit) * GridUnit
		if y+size.Height > StageHeight-StagePadding {
			break
		}
	}

	return fallbackPosition(widgets, size)
}

// fallbackPosition places the widget directly below the lowest existing
// widget, clamped to the stage. Guarantees a position is always returned.
func fallbackPosition(widgets []*Widget, size Size) Position {
	lowest := StagePadding
	for _, w := range widgets {
		if bottom := w.Position.Y + w.Size.Height; bottom > lowest {
			lowest = bottom
		}
	}
	pos := Position{X: StagePadding, Y: SnapToGrid(lowest + collisionPad)}
	return ClampToStage(pos, size)
}

// ClampToStage keeps a widget rectangle inside [0,0,StageWidth,StageHeight].
func ClampToStage(pos Position, size Size) Position {
	pos.X = clamp(pos.X, 0, StageWidth-size.Width)
	pos.Y = clamp(pos.Y, 0, StageHeight-size.Height)
	return pos
}

// ResizeHandle names the edge or corner a resize gesture grabbed.
type ResizeHandle string

// Resize handles exposed by the widget chrome.
const (
	HandleLeft        ResizeHandle = "left"
	HandleRight       ResizeHandle = "right"
	HandleTop         ResizeHandle = "top"
	HandleBottom      ResizeHandle = "bottom"
	HandleTopLeft     ResizeHandle = "top-left"
	HandleTopRight    ResizeHandle = "top-right"
	HandleBottomLeft  ResizeHandle = "bottom-left"
	HandleBottomRight ResizeHandle = "bottom-right"
)

func (h ResizeHandle) hasLeft() bool {
	return h == HandleLeft || h == HandleTopLeft || h == HandleBottomLeft
}

func (h ResizeHandle) hasTop() bool {
	return h == HandleTop || h == HandleTopLeft || h == HandleTopRight
}

func (h ResizeHandle) hasRight() bool {
	return h == HandleRight || h == HandleTopRight || h == HandleBottomRight
}

func (h ResizeHandle) hasBottom() bool {
	return h == HandleBottom || h == HandleBottomLeft || h == HandleBottomRight
}

// ApplyResize grows or shrinks a rectangle from the given handle by a
// stage-space delta. Left/top handles shift the position by the negated size
// delta so the opposite edge stays fixed. The result is snapped, held to the
// minimum widget size, and clamped to the stage.
func ApplyResize(pos Position, size Size, handle ResizeHandle, dx, dy float64) (Position, Size) {
	switch {
	case handle.hasLeft():
		width := size.Width - dx
		if width < MinWidgetWidth {
			dx = size.Width - MinWidgetWidth
			width = MinWidgetWidth
		}
		pos.X += dx
		size.Width = width
	case handle.hasRight():
		size.Width = math.Max(MinWidgetWidth, size.Width+dx)
	}
	switch {
	case handle.hasTop():
		height := size.Height - dy
		if height < MinWidgetHeight {
			dy = size.Height - MinWidgetHeight
			height = MinWidgetHeight
		}
		pos.Y += dy
		size.Height = height
	case handle.hasBottom():
		size.Height = math.Max(MinWidgetHeight, size.Height+dy)
	}

	pos.X = SnapToGrid(pos.X)
	pos.Y = SnapToGrid(pos.Y)
	size.Width = SnapToGrid(size.Width)
	size.Height = SnapToGrid(size.Height)
	pos = ClampToStage(pos, size)
	return pos, size
}

// ApplyDrag moves a rectangle by a stage-space delta, snapped and bounded to
// the stage. Manual drags may overlap other widgets; only auto-placement
// avoids collisions.
func ApplyDrag(pos Position, size Size, dx, dy float64) Position {
	pos.X = SnapToGrid(pos.X + dx)
	pos.Y = SnapToGrid(pos.Y + dy)
	return ClampToStage(pos, size)
}
