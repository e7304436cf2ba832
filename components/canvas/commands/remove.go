package commands

import (
	"context"
	"errors"

	canvas "github.com/glintlab/go-canvas/components/canvas"
	gocommand "github.com/goliatone/go-command"
)

// RemoveWidgetInput identifies the widget to delete.
type RemoveWidgetInput struct {
	WidgetID string `json:"widget_id"`
	ActorID  string `json:"actor_id"`
}

type removeService interface {
	RemoveWidget(ctx context.Context, widgetID string) error
}

// RemoveWidgetCommand wraps Session.RemoveWidget.
type RemoveWidgetCommand struct {
	service   removeService
	telemetry Telemetry
}

// NewRemoveWidgetCommand creates the command.
func NewRemoveWidgetCommand(service removeService, telemetry Telemetry) *RemoveWidgetCommand {
	return &RemoveWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RemoveWidgetInput] = (*RemoveWidgetCommand)(nil)

// Execute deletes the widget.
func (c *RemoveWidgetCommand) Execute(ctx context.Context, msg RemoveWidgetInput) error {
	if c.service == nil {
		return errors.New("remove command requires session")
	}
	if msg.WidgetID == "" {
		return errors.New("remove command requires widget id")
	}
	ctx = canvas.ContextWithActivity(ctx, canvas.ActivityContext{ActorID: msg.ActorID})
	if err := c.service.RemoveWidget(ctx, msg.WidgetID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "canvas.command.remove_widget", map[string]any{
		"widget_id": msg.WidgetID,
	})
	return nil
}
