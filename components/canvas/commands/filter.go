package commands

import (
	"context"
	"errors"

	canvas "github.com/glintlab/go-canvas/components/canvas"
	gocommand "github.com/goliatone/go-command"
)

// ToggleFilterInput flips a slicer value on or off.
type ToggleFilterInput struct {
	WidgetID string `json:"widget_id"`
	Value    string `json:"value"`
	ActorID  string `json:"actor_id"`
}

type filterService interface {
	ToggleFilterValue(ctx context.Context, widgetID, value string) error
}

// ToggleFilterCommand wraps Session.ToggleFilterValue.
type ToggleFilterCommand struct {
	service   filterService
	telemetry Telemetry
}

// NewToggleFilterCommand creates the command.
func NewToggleFilterCommand(service filterService, telemetry Telemetry) *ToggleFilterCommand {
	return &ToggleFilterCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleFilterInput] = (*ToggleFilterCommand)(nil)

// Execute toggles the value and propagates the cross-filter.
func (c *ToggleFilterCommand) Execute(ctx context.Context, msg ToggleFilterInput) error {
	if c.service == nil {
		return errors.New("filter command requires session")
	}
	if msg.WidgetID == "" {
		return errors.New("filter command requires widget id")
	}
	ctx = canvas.ContextWithActivity(ctx, canvas.ActivityContext{ActorID: msg.ActorID})
	if err := c.service.ToggleFilterValue(ctx, msg.WidgetID, msg.Value); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "canvas.command.toggle_filter", map[string]any{
		"widget_id": msg.WidgetID,
		"value":     msg.Value,
	})
	return nil
}
