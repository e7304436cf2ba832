package commands

import (
	"context"
	"errors"

	canvas "github.com/glintlab/go-canvas/components/canvas"
	gocommand "github.com/goliatone/go-command"
)

// AddWidgetInput captures widget creation payloads.
type AddWidgetInput struct {
	ChartType canvas.ChartType `json:"chart_type"`
	ActorID   string           `json:"actor_id"`
	UserID    string           `json:"user_id"`
}

type addService interface {
	AddWidget(ctx context.Context, chartType canvas.ChartType) (canvas.Widget, error)
}

// AddWidgetCommand wraps Session.AddWidget.
type AddWidgetCommand struct {
	service   addService
	telemetry Telemetry
}

// NewAddWidgetCommand creates the command.
func NewAddWidgetCommand(service addService, telemetry Telemetry) *AddWidgetCommand {
	return &AddWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AddWidgetInput] = (*AddWidgetCommand)(nil)

// Execute adds an auto-placed widget to the canvas.
func (c *AddWidgetCommand) Execute(ctx context.Context, msg AddWidgetInput) error {
	if c.service == nil {
		return errors.New("add command requires session")
	}
	if msg.ChartType == "" {
		return errors.New("add command requires chart type")
	}
	ctx = canvas.ContextWithActivity(ctx, canvas.ActivityContext{
		ActorID: msg.ActorID,
		UserID:  msg.UserID,
	})
	widget, err := c.service.AddWidget(ctx, msg.ChartType)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "canvas.command.add_widget", map[string]any{
		"widget_id":  widget.ID,
		"chart_type": string(msg.ChartType),
	})
	return nil
}
