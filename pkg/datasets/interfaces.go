package datasets

import (
	"context"

	canvas "github.com/glintlab/go-canvas/components/canvas"
)

// RowClient fetches dataset rows and schema from the dataset read API.
type RowClient interface {
	FetchRows(ctx context.Context, datasetID int) ([]canvas.Row, []canvas.Column, error)
}

// ListClient enumerates the datasets available to the builder.
type ListClient interface {
	ListDatasets(ctx context.Context) ([]DatasetInfo, error)
}

// Client is a convenience union for services that implement all dataset calls.
type Client interface {
	RowClient
	ListClient
}

// DatasetInfo describes a dataset exposed by the read API.
type DatasetInfo struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	RowCount int    `json:"row_count"`
}
