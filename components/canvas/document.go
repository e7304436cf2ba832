package canvas

import (
	"encoding/json"
	"fmt"
)

// CurrentConfigVersion is the dashboard document format written by this
// module.
const CurrentConfigVersion = 2

// Document is the persisted dashboard payload. Widget positions are
// stage-absolute and survive round-trips unchanged.
type Document struct {
	ConfigVersion    int      `json:"configVersion"`
	Widgets          []Widget `json:"widgets"`
	SelectedDatasets []int    `json:"selectedDatasets,omitempty"`
	Category         string   `json:"category,omitempty"`
}

// DecodeDocument parses dashboard JSON and normalizes nil collections.
func DecodeDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("canvas: parse dashboard config: %w", err)
	}
	if doc.ConfigVersion == 0 {
		doc.ConfigVersion = CurrentConfigVersion
	}
	if doc.Widgets == nil {
		doc.Widgets = []Widget{}
	}
	return doc, nil
}

// Encode serializes the document as JSON.
func (d Document) Encode() ([]byte, error) {
	if d.Widgets == nil {
		d.Widgets = []Widget{}
	}
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("canvas: encode dashboard config: %w", err)
	}
	return data, nil
}
