package datasets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	canvas "github.com/glintlab/go-canvas/components/canvas"
)

// HTTPConfig configures the HTTP dataset client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	PageSize   int
	MaxPages   int
	HTTPClient *http.Client
}

// HTTPClient talks to the dataset read API via REST endpoints.
type HTTPClient struct {
	baseURL  string
	apiKey   string
	pageSize int
	maxPages int
	client   *http.Client
}

// NewHTTPClient builds a client capable of hitting a live dataset API.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("datasets: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 500
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = 40
	}
	return &HTTPClient{
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		pageSize: pageSize,
		maxPages: maxPages,
		client:   httpClient,
	}, nil
}

// FetchRows implements RowClient by paging through the dataset data endpoint
// until the pagination envelope reports the last page.
func (c *HTTPClient) FetchRows(ctx context.Context, datasetID int) ([]canvas.Row, []canvas.Column, error) {
	var rows []canvas.Row
	var columns []canvas.Column
	for page := 1; page <= c.maxPages; page++ {
		path := fmt.Sprintf("/datasets/%d/data?page=%d&page_size=%d", datasetID, page, c.pageSize)
		var resp dataResponse
		if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
			return nil, nil, err
		}
		rows = append(rows, resp.Data...)
		if len(columns) == 0 && len(resp.Columns) > 0 {
			columns = make([]canvas.Column, len(resp.Columns))
			for i, col := range resp.Columns {
				columns[i] = canvas.Column{Name: col.Name, Type: col.Type}
			}
		}
		if resp.Pagination.TotalPages == 0 || page >= resp.Pagination.TotalPages {
			break
		}
	}
	if len(columns) == 0 {
		columns = canvas.InferColumns(rows)
	}
	return rows, columns, nil
}

// ListDatasets implements ListClient via the dataset index endpoint.
func (c *HTTPClient) ListDatasets(ctx context.Context) ([]DatasetInfo, error) {
	var resp listResponse
	if err := c.do(ctx, http.MethodGet, "/datasets", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, target any) error {
	var body *bytes.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("datasets: encode payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("datasets: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("datasets: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("datasets: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("datasets: decode response: %w", err)
	}
	return nil
}

type columnSchema struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	TotalRows  int `json:"total_rows"`
}

type dataResponse struct {
	Data       []canvas.Row   `json:"data"`
	Columns    []columnSchema `json:"columns,omitempty"`
	Pagination pagination     `json:"pagination"`
}

type listResponse struct {
	Data []DatasetInfo `json:"data"`
}
