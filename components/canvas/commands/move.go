package commands

import (
	"context"
	"errors"

	canvas "github.com/glintlab/go-canvas/components/canvas"
	gocommand "github.com/goliatone/go-command"
)

// MoveWidgetInput commits a drag gesture with a stage-space delta.
type MoveWidgetInput struct {
	WidgetID string  `json:"widget_id"`
	DX       float64 `json:"dx"`
	DY       float64 `json:"dy"`
	ActorID  string  `json:"actor_id"`
}

type moveService interface {
	MoveWidget(ctx context.Context, widgetID string, dx, dy float64) error
}

// MoveWidgetCommand wraps Session.MoveWidget.
type MoveWidgetCommand struct {
	service   moveService
	telemetry Telemetry
}

// NewMoveWidgetCommand creates the command.
func NewMoveWidgetCommand(service moveService, telemetry Telemetry) *MoveWidgetCommand {
	return &MoveWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[MoveWidgetInput] = (*MoveWidgetCommand)(nil)

// Execute commits the widget's new position.
func (c *MoveWidgetCommand) Execute(ctx context.Context, msg MoveWidgetInput) error {
	if c.service == nil {
		return errors.New("move command requires session")
	}
	if msg.WidgetID == "" {
		return errors.New("move command requires widget id")
	}
	ctx = canvas.ContextWithActivity(ctx, canvas.ActivityContext{ActorID: msg.ActorID})
	if err := c.service.MoveWidget(ctx, msg.WidgetID, msg.DX, msg.DY); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "canvas.command.move_widget", map[string]any{
		"widget_id": msg.WidgetID,
	})
	return nil
}
