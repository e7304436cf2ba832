package canvas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// DocumentValidator checks dashboard documents before save/publish.
type DocumentValidator interface {
	ValidateDocument(doc Document) error
}

var documentSchema = map[string]any{
	"type":     "object",
	"required": []string{"configVersion", "widgets"},
	"properties": map[string]any{
		"configVersion": map[string]any{"type": "integer", "minimum": 1},
		"category":      map[string]any{"type": "string"},
		"selectedDatasets": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "integer"},
		},
		"widgets": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []string{"id", "type", "position", "size"},
				"properties": map[string]any{
					"id":   map[string]any{"type": "string", "minLength": 1},
					"type": map[string]any{"type": "string"},
					"position": map[string]any{
						"type":     "object",
						"required": []string{"x", "y"},
						"properties": map[string]any{
							"x": map[string]any{"type": "number", "minimum": 0},
							"y": map[string]any{"type": "number", "minimum": 0},
						},
					},
					"size": map[string]any{
						"type":     "object",
						"required": []string{"width", "height"},
						"properties": map[string]any{
							"width":  map[string]any{"type": "number", "minimum": MinWidgetWidth},
							"height": map[string]any{"type": "number", "minimum": MinWidgetHeight},
						},
					},
					"aggregation": map[string]any{
						"type": "string",
						"enum": []string{"", "count", "sum", "first", "last", "percentage"},
					},
				},
			},
		},
	},
}

// JSONSchemaValidator validates dashboard documents against the document
// schema, compiled once.
type JSONSchemaValidator struct {
	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{}
}

// ValidateDocument ensures the document satisfies the dashboard schema.
func (v *JSONSchemaValidator) ValidateDocument(doc Document) error {
	schema, err := v.schema()
	if err != nil {
		return err
	}
	data, err := doc.Encode()
	if err != nil {
		return err
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("canvas: normalize dashboard document: %w", err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("canvas: dashboard document failed validation: %w", err)
	}
	return nil
}

func (v *JSONSchemaValidator) schema() (*jsonschema.Schema, error) {
	v.once.Do(func() {
		data, err := json.Marshal(documentSchema)
		if err != nil {
			v.err = fmt.Errorf("canvas: marshal document schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("dashboard.json", bytes.NewReader(data)); err != nil {
			v.err = fmt.Errorf("canvas: load document schema: %w", err)
			return
		}
		v.compiled, v.err = compiler.Compile("dashboard.json")
	})
	return v.compiled, v.err
}
