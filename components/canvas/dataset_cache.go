package canvas

import "sort"

// DatasetCache keeps fetched dataset rows and schemas keyed by dataset id.
// Responses for datasets the user has since deselected stay cached but are
// simply not rendered, so late fetches need no cancellation.
type DatasetCache struct {
	rows    map[int][]Row
	columns map[int][]Column
}

// NewDatasetCache returns an empty cache.
func NewDatasetCache() *DatasetCache {
	return &DatasetCache{
		rows:    map[int][]Row{},
		columns: map[int][]Column{},
	}
}

// Put stores rows and columns for a dataset. When no explicit schema is
// provided the columns are inferred from the first row's keys.
func (c *DatasetCache) Put(datasetID int, rows []Row, columns []Column) {
	c.rows[datasetID] = rows
	if len(columns) == 0 {
		columns = InferColumns(rows)
	}
	c.columns[datasetID] = columns
}

// Rows returns the cached rows for a dataset.
func (c *DatasetCache) Rows(datasetID int) ([]Row, bool) {
	rows, ok := c.rows[datasetID]
	return rows, ok
}

// Columns returns the cached schema for a dataset.
func (c *DatasetCache) Columns(datasetID int) []Column {
	return c.columns[datasetID]
}

// Has reports whether the dataset's rows are cached.
func (c *DatasetCache) Has(datasetID int) bool {
	_, ok := c.rows[datasetID]
	return ok
}

// Drop removes a dataset from the cache.
func (c *DatasetCache) Drop(datasetID int) {
	delete(c.rows, datasetID)
	delete(c.columns, datasetID)
}

// InferColumns derives a schema from the first row's keys, sorted for
// determinism, typing each column from its first value.
func InferColumns(rows []Row) []Column {
	if len(rows) == 0 {
		return nil
	}
	first := rows[0]
	names := make([]string, 0, len(first))
	for name := range first {
		names = append(names, name)
	}
	sort.Strings(names)
	columns := make([]Column, len(names))
	for i, name := range names {
		columns[i] = Column{Name: name, Type: inferColumnType(first[name])}
	}
	return columns
}

func inferColumnType(v any) string {
	switch v.(type) {
	case float64, float32, int, int64:
		return "number"
	case bool:
		return "boolean"
	default:
		return "string"
	}
}
