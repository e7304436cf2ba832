package datasets

import (
	"context"
	"fmt"
	"sort"
	"sync"

	canvas "github.com/glintlab/go-canvas/components/canvas"
)

// MockData seeds deterministic dataset responses for tests or local demos.
type MockData struct {
	Rows    map[int][]canvas.Row
	Columns map[int][]canvas.Column
	Names   map[int]string
}

// MockClient implements Client using in-memory fixtures.
type MockClient struct {
	data MockData
	mu   sync.RWMutex
}

// NewMockClient builds a mock dataset client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	if data.Rows == nil {
		data.Rows = map[int][]canvas.Row{}
	}
	if data.Columns == nil {
		data.Columns = map[int][]canvas.Column{}
	}
	if data.Names == nil {
		data.Names = map[int]string{}
	}
	return &MockClient{data: data}
}

// FetchRows returns the configured rows, inferring a schema when none is
// seeded.
func (c *MockClient) FetchRows(_ context.Context, datasetID int) ([]canvas.Row, []canvas.Column, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rows, ok := c.data.Rows[datasetID]
	if !ok {
		return nil, nil, fmt.Errorf("datasets: unknown dataset %d", datasetID)
	}
	columns := c.data.Columns[datasetID]
	if len(columns) == 0 {
		columns = canvas.InferColumns(rows)
	}
	out := make([]canvas.Row, len(rows))
	for i, row := range rows {
		clone := make(canvas.Row, len(row))
		for k, v := range row {
			clone[k] = v
		}
		out[i] = clone
	}
	return out, append([]canvas.Column(nil), columns...), nil
}

// ListDatasets returns the seeded datasets in id order.
func (c *MockClient) ListDatasets(context.Context) ([]DatasetInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]DatasetInfo, 0, len(c.data.Rows))
	for id, rows := range c.data.Rows {
		out = append(out, DatasetInfo{ID: id, Name: c.data.Names[id], RowCount: len(rows)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// SeedDataset replaces a dataset's fixture rows.
func (c *MockClient) SeedDataset(datasetID int, rows []canvas.Row, columns []canvas.Column) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.Rows[datasetID] = rows
	c.data.Columns[datasetID] = columns
}
