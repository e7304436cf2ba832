package commands

import (
	"context"
	"errors"
	"testing"

	canvas "github.com/glintlab/go-canvas/components/canvas"
)

func TestAddWidgetCommand(t *testing.T) {
	service := &stubService{}
	telemetry := &stubTelemetry{}
	cmd := NewAddWidgetCommand(service, telemetry)
	if err := cmd.Execute(context.Background(), AddWidgetInput{ChartType: canvas.ChartBar, ActorID: "builder"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.addCalls != 1 {
		t.Fatalf("expected add call")
	}
	if service.lastActor != "builder" {
		t.Fatalf("expected actor on context, got %q", service.lastActor)
	}
	if !telemetry.has("canvas.command.add_widget") {
		t.Fatalf("expected add telemetry, got %v", telemetry.events)
	}
}

func TestAddWidgetCommandValidates(t *testing.T) {
	cmd := NewAddWidgetCommand(nil, nil)
	if err := cmd.Execute(context.Background(), AddWidgetInput{ChartType: canvas.ChartBar}); err == nil {
		t.Fatalf("expected error without service")
	}
	cmd = NewAddWidgetCommand(&stubService{}, nil)
	if err := cmd.Execute(context.Background(), AddWidgetInput{}); err == nil {
		t.Fatalf("expected error without chart type")
	}
}

func TestMoveWidgetCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewMoveWidgetCommand(service, nil)
	if err := cmd.Execute(context.Background(), MoveWidgetInput{WidgetID: "w1", DX: 30, DY: -10}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.moveCalls != 1 || service.lastDX != 30 || service.lastDY != -10 {
		t.Fatalf("unexpected move call %+v", service)
	}
	if err := cmd.Execute(context.Background(), MoveWidgetInput{}); err == nil {
		t.Fatalf("expected error without widget id")
	}
}

func TestResizeWidgetCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewResizeWidgetCommand(service, nil)
	input := ResizeWidgetInput{WidgetID: "w1", Handle: canvas.HandleBottomRight, DX: 20, DY: 20}
	if err := cmd.Execute(context.Background(), input); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.resizeCalls != 1 || service.lastHandle != canvas.HandleBottomRight {
		t.Fatalf("unexpected resize call %+v", service)
	}
}

func TestRemoveWidgetCommand(t *testing.T) {
	service := &stubService{}
	telemetry := &stubTelemetry{}
	cmd := NewRemoveWidgetCommand(service, telemetry)
	if err := cmd.Execute(context.Background(), RemoveWidgetInput{WidgetID: "w1"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.removeCalls != 1 {
		t.Fatalf("expected remove call")
	}
	if !telemetry.has("canvas.command.remove_widget") {
		t.Fatalf("expected remove telemetry")
	}
}

func TestBindColumnCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewBindColumnCommand(service, nil)
	input := BindColumnInput{
		WidgetID: "w1",
		Bucket:   canvas.BucketYAxis,
		Column:   canvas.ColumnRef{DatasetID: 4, Name: "amount"},
	}
	if err := cmd.Execute(context.Background(), input); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.bindCalls != 1 || service.lastColumn.Name != "amount" {
		t.Fatalf("unexpected bind call %+v", service)
	}
	if err := cmd.Execute(context.Background(), BindColumnInput{WidgetID: "w1"}); err == nil {
		t.Fatalf("expected error without column name")
	}
}

func TestToggleFilterCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewToggleFilterCommand(service, nil)
	if err := cmd.Execute(context.Background(), ToggleFilterInput{WidgetID: "w1", Value: "North"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.toggleCalls != 1 || service.lastValue != "North" {
		t.Fatalf("unexpected toggle call %+v", service)
	}
}

func TestSaveDashboardCommand(t *testing.T) {
	service := &stubService{}
	telemetry := &stubTelemetry{}
	cmd := NewSaveDashboardCommand(service, telemetry)
	if err := cmd.Execute(context.Background(), SaveDashboardInput{DashboardID: "dash-1"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.saveCalls != 1 {
		t.Fatalf("expected save call")
	}
	if !telemetry.has("canvas.command.save_dashboard") {
		t.Fatalf("expected save telemetry")
	}
	if err := cmd.Execute(context.Background(), SaveDashboardInput{}); err == nil {
		t.Fatalf("expected error without dashboard id")
	}
}

func TestSaveDashboardCommandSurfacesFailures(t *testing.T) {
	boom := errors.New("store offline")
	service := &stubService{saveErr: boom}
	telemetry := &stubTelemetry{}
	cmd := NewSaveDashboardCommand(service, telemetry)
	if err := cmd.Execute(context.Background(), SaveDashboardInput{DashboardID: "dash-1"}); !errors.Is(err, boom) {
		t.Fatalf("expected save error, got %v", err)
	}
	if telemetry.has("canvas.command.save_dashboard") {
		t.Fatalf("failed saves must not record success telemetry")
	}
}

type stubService struct {
	addCalls    int
	moveCalls   int
	resizeCalls int
	removeCalls int
	bindCalls   int
	toggleCalls int
	saveCalls   int

	lastActor  string
	lastDX     float64
	lastDY     float64
	lastHandle canvas.ResizeHandle
	lastColumn canvas.ColumnRef
	lastValue  string

	saveErr error
}

func (s *stubService) AddWidget(ctx context.Context, chartType canvas.ChartType) (canvas.Widget, error) {
	s.addCalls++
	s.lastActor = canvas.ActivityFrom(ctx).ActorID
	return canvas.Widget{ID: "w1", Type: chartType}, nil
}

func (s *stubService) MoveWidget(_ context.Context, _ string, dx, dy float64) error {
	s.moveCalls++
	s.lastDX, s.lastDY = dx, dy
	return nil
}

func (s *stubService) ResizeWidget(_ context.Context, _ string, handle canvas.ResizeHandle, _, _ float64) error {
	s.resizeCalls++
	s.lastHandle = handle
	return nil
}

func (s *stubService) RemoveWidget(context.Context, string) error {
	s.removeCalls++
	return nil
}

func (s *stubService) BindColumn(_ context.Context, _ string, _ canvas.Bucket, column canvas.ColumnRef) error {
	s.bindCalls++
	s.lastColumn = column
	return nil
}

func (s *stubService) ToggleFilterValue(_ context.Context, _, value string) error {
	s.toggleCalls++
	s.lastValue = value
	return nil
}

func (s *stubService) Save(context.Context, string) error {
	s.saveCalls++
	return s.saveErr
}

type stubTelemetry struct {
	events []string
}

func (s *stubTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	s.events = append(s.events, event)
}

func (s *stubTelemetry) has(event string) bool {
	for _, e := range s.events {
		if e == event {
			return true
		}
	}
	return false
}
