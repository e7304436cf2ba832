package commands

import (
	"context"
	"errors"

	canvas "github.com/glintlab/go-canvas/components/canvas"
	gocommand "github.com/goliatone/go-command"
)

// BindColumnInput drops a dataset column onto a widget bucket.
type BindColumnInput struct {
	WidgetID string           `json:"widget_id"`
	Bucket   canvas.Bucket    `json:"bucket"`
	Column   canvas.ColumnRef `json:"column"`
	ActorID  string           `json:"actor_id"`
}

type bindService interface {
	BindColumn(ctx context.Context, widgetID string, bucket canvas.Bucket, column canvas.ColumnRef) error
}

// BindColumnCommand wraps Session.BindColumn.
type BindColumnCommand struct {
	service   bindService
	telemetry Telemetry
}

// NewBindColumnCommand creates the command.
func NewBindColumnCommand(service bindService, telemetry Telemetry) *BindColumnCommand {
	return &BindColumnCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[BindColumnInput] = (*BindColumnCommand)(nil)

// Execute assigns the column to the bucket and re-targets the widget's
// dataset.
func (c *BindColumnCommand) Execute(ctx context.Context, msg BindColumnInput) error {
	if c.service == nil {
		return errors.New("bind command requires session")
	}
	if msg.WidgetID == "" {
		return errors.New("bind command requires widget id")
	}
	if msg.Column.Name == "" {
		return errors.New("bind command requires column name")
	}
	ctx = canvas.ContextWithActivity(ctx, canvas.ActivityContext{ActorID: msg.ActorID})
	if err := c.service.BindColumn(ctx, msg.WidgetID, msg.Bucket, msg.Column); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "canvas.command.bind_column", map[string]any{
		"widget_id": msg.WidgetID,
		"bucket":    string(msg.Bucket),
	})
	return nil
}
