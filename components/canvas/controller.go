package canvas

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Renderer describes the template renderer contract needed by the controller.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

// Controller assembles builder payloads and HTML for transports.
type Controller struct {
	session  *Session
	widgets  WidgetRenderer
	template Renderer
}

// NewController wires the session and renderers into a controller.
func NewController(session *Session, widgets WidgetRenderer, template Renderer) *Controller {
	return &Controller{session: session, widgets: widgets, template: template}
}

// BuilderPayload captures everything a builder view needs to paint.
type BuilderPayload struct {
	Document Document            `json:"document"`
	Viewport ViewportState       `json:"viewport"`
	Palette  []ChartDefinition   `json:"palette"`
	Filters  map[string][]string `json:"filters"`
	Selected string              `json:"selected,omitempty"`
}

// Payload snapshots the session for the JSON layout endpoint.
func (c *Controller) Payload(ctx context.Context) (BuilderPayload, error) {
	if c.session == nil {
		return BuilderPayload{}, errors.New("canvas: controller requires a session")
	}
	doc := c.session.Document()
	selected, _ := c.session.SelectedWidget()
	return BuilderPayload{
		Document: doc,
		Viewport: c.session.ViewportState(),
		Palette:  c.session.Palette(),
		Filters:  c.session.FilterSnapshot(),
		Selected: selected,
	}, nil
}

type renderedWidget struct {
	Widget Widget
	HTML   string
}

// RenderTemplate renders the builder HTML shell with each widget's markup
// positioned absolutely on the stage.
func (c *Controller) RenderTemplate(ctx context.Context, out io.Writer) error {
	if c.template == nil || c.widgets == nil {
		return errors.New("canvas: controller requires template and widget renderers")
	}
	widgets := c.session.Widgets()
	rendered := make([]renderedWidget, 0, len(widgets))
	for _, w := range widgets {
		data, err := c.session.WidgetData(w.ID)
		if err != nil {
			continue
		}
		html, err := c.widgets.RenderWidget(ctx, data)
		if err != nil {
			html = renderPlaceholder(w)
		}
		rendered = append(rendered, renderedWidget{Widget: w, HTML: html})
	}
	viewport := c.session.ViewportState()
	_, err := c.template.Render("builder", map[string]any{
		"widgets":      rendered,
		"viewport":     viewport,
		"stage_width":  StageWidth,
		"stage_height": StageHeight,
	}, out)
	if err != nil {
		return fmt.Errorf("canvas: render builder template: %w", err)
	}
	return nil
}
