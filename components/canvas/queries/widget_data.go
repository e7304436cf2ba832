package queries

import (
	"context"

	canvas "github.com/glintlab/go-canvas/components/canvas"
	gocommand "github.com/goliatone/go-command"
)

// WidgetDataInput identifies the widget to resolve.
type WidgetDataInput struct {
	WidgetID string `json:"widget_id"`
}

type widgetDataService interface {
	WidgetData(widgetID string) (canvas.WidgetData, error)
}

// WidgetDataQuery resolves a widget's rows, aggregate, and advisory
// messages through the session pipeline.
type WidgetDataQuery struct {
	service widgetDataService
}

// NewWidgetDataQuery builds the query.
func NewWidgetDataQuery(service widgetDataService) *WidgetDataQuery {
	return &WidgetDataQuery{service: service}
}

var _ gocommand.Querier[WidgetDataInput, canvas.WidgetData] = (*WidgetDataQuery)(nil)

// Query resolves the widget payload.
func (q *WidgetDataQuery) Query(_ context.Context, input WidgetDataInput) (canvas.WidgetData, error) {
	return q.service.WidgetData(input.WidgetID)
}
