package commands

import (
	"context"
	"errors"

	canvas "github.com/glintlab/go-canvas/components/canvas"
	gocommand "github.com/goliatone/go-command"
)

// ResizeWidgetInput commits a resize gesture from a named handle.
type ResizeWidgetInput struct {
	WidgetID string              `json:"widget_id"`
	Handle   canvas.ResizeHandle `json:"handle"`
	DX       float64             `json:"dx"`
	DY       float64             `json:"dy"`
	ActorID  string              `json:"actor_id"`
}

type resizeService interface {
	ResizeWidget(ctx context.Context, widgetID string, handle canvas.ResizeHandle, dx, dy float64) error
}

// ResizeWidgetCommand wraps Session.ResizeWidget.
type ResizeWidgetCommand struct {
	service   resizeService
	telemetry Telemetry
}

// NewResizeWidgetCommand creates the command.
func NewResizeWidgetCommand(service resizeService, telemetry Telemetry) *ResizeWidgetCommand {
	return &ResizeWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ResizeWidgetInput] = (*ResizeWidgetCommand)(nil)

// Execute commits the widget's new bounds.
func (c *ResizeWidgetCommand) Execute(ctx context.Context, msg ResizeWidgetInput) error {
	if c.service == nil {
		return errors.New("resize command requires session")
	}
	if msg.WidgetID == "" {
		return errors.New("resize command requires widget id")
	}
	ctx = canvas.ContextWithActivity(ctx, canvas.ActivityContext{ActorID: msg.ActorID})
	if err := c.service.ResizeWidget(ctx, msg.WidgetID, msg.Handle, msg.DX, msg.DY); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "canvas.command.resize_widget", map[string]any{
		"widget_id": msg.WidgetID,
		"handle":    string(msg.Handle),
	})
	return nil
}
