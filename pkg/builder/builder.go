package builder

import (
	core "github.com/glintlab/go-canvas/components/canvas"
)

// Session exposes the underlying components/canvas.Session type.
type Session = core.Session

// SessionOptions re-export for convenience.
type SessionOptions = core.SessionOptions

// NewSession proxies to the internal constructor.
func NewSession(opts SessionOptions) *Session {
	return core.NewSession(opts)
}

// Controller re-exports the HTML/JSON controller.
type Controller = core.Controller

// NewController proxies to the internal constructor.
func NewController(session *Session, widgets core.WidgetRenderer, templates core.Renderer) *Controller {
	return core.NewController(session, widgets, templates)
}
