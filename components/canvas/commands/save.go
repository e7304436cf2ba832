package commands

import (
	"context"
	"errors"

	canvas "github.com/glintlab/go-canvas/components/canvas"
	gocommand "github.com/goliatone/go-command"
)

// SaveDashboardInput persists the current dashboard document.
type SaveDashboardInput struct {
	DashboardID string `json:"dashboard_id"`
	ActorID     string `json:"actor_id"`
	UserID      string `json:"user_id"`
}

type saveService interface {
	Save(ctx context.Context, dashboardID string) error
}

// SaveDashboardCommand wraps Session.Save. Save failures are the one class
// of canvas error that must surface to the user.
type SaveDashboardCommand struct {
	service   saveService
	telemetry Telemetry
}

// NewSaveDashboardCommand creates the command.
func NewSaveDashboardCommand(service saveService, telemetry Telemetry) *SaveDashboardCommand {
	return &SaveDashboardCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SaveDashboardInput] = (*SaveDashboardCommand)(nil)

// Execute validates and persists the document.
func (c *SaveDashboardCommand) Execute(ctx context.Context, msg SaveDashboardInput) error {
	if c.service == nil {
		return errors.New("save command requires session")
	}
	if msg.DashboardID == "" {
		return errors.New("save command requires dashboard id")
	}
	ctx = canvas.ContextWithActivity(ctx, canvas.ActivityContext{
		ActorID: msg.ActorID,
		UserID:  msg.UserID,
	})
	if err := c.service.Save(ctx, msg.DashboardID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "canvas.command.save_dashboard", map[string]any{
		"dashboard_id": msg.DashboardID,
	})
	return nil
}
