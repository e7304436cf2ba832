package queries

import (
	"context"

	canvas "github.com/glintlab/go-canvas/components/canvas"
	gocommand "github.com/goliatone/go-command"
)

// BuilderInput requests the full builder payload. It carries no fields yet;
// the session is single-dashboard.
type BuilderInput struct{}

type builderService interface {
	Payload(ctx context.Context) (canvas.BuilderPayload, error)
}

// BuilderQuery snapshots the document, viewport, palette, and filters for
// the layout endpoint.
type BuilderQuery struct {
	service builderService
}

// NewBuilderQuery builds the query.
func NewBuilderQuery(service builderService) *BuilderQuery {
	return &BuilderQuery{service: service}
}

var _ gocommand.Querier[BuilderInput, canvas.BuilderPayload] = (*BuilderQuery)(nil)

// Query resolves the builder payload.
func (q *BuilderQuery) Query(ctx context.Context, _ BuilderInput) (canvas.BuilderPayload, error) {
	return q.service.Payload(ctx)
}
