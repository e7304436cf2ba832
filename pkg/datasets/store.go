package datasets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	canvas "github.com/glintlab/go-canvas/components/canvas"
)

// HTTPStore persists dashboard documents through the dashboard REST API.
type HTTPStore struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ canvas.DashboardStore = (*HTTPStore)(nil)

// NewHTTPStore builds a store against the dashboard persistence endpoints.
func NewHTTPStore(cfg HTTPConfig) (*HTTPStore, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("datasets: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPStore{baseURL: cfg.BaseURL, apiKey: cfg.APIKey, client: httpClient}, nil
}

// Load fetches a dashboard document by id.
func (s *HTTPStore) Load(ctx context.Context, dashboardID string) (canvas.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/dashboards/"+dashboardID, nil)
	if err != nil {
		return canvas.Document{}, fmt.Errorf("datasets: build request: %w", err)
	}
	s.setHeaders(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return canvas.Document{}, fmt.Errorf("datasets: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return canvas.Document{}, fmt.Errorf("datasets: remote error %d loading dashboard %s", resp.StatusCode, dashboardID)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return canvas.Document{}, fmt.Errorf("datasets: read dashboard body: %w", err)
	}
	return canvas.DecodeDocument(buf.Bytes())
}

// Save writes a dashboard document by id.
func (s *HTTPStore) Save(ctx context.Context, dashboardID string, doc canvas.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("datasets: encode dashboard: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.baseURL+"/dashboards/"+dashboardID, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("datasets: build request: %w", err)
	}
	s.setHeaders(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("datasets: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("datasets: remote error %d saving dashboard %s", resp.StatusCode, dashboardID)
	}
	return nil
}

func (s *HTTPStore) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}
}

// MemoryStore keeps documents in memory, useful for demos and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]canvas.Document
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: map[string]canvas.Document{}}
}

var _ canvas.DashboardStore = (*MemoryStore)(nil)

// Load returns the stored document or an empty one when absent.
func (s *MemoryStore) Load(_ context.Context, dashboardID string) (canvas.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if doc, ok := s.docs[dashboardID]; ok {
		return doc, nil
	}
	return canvas.Document{ConfigVersion: canvas.CurrentConfigVersion}, nil
}

// Save stores the document under the dashboard id.
func (s *MemoryStore) Save(_ context.Context, dashboardID string, doc canvas.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[dashboardID] = doc
	return nil
}
