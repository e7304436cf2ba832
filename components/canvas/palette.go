package canvas

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	paletteVersionV1 = "1"
	// PaletteVersion exposes the current palette format version for tooling.
	PaletteVersion = paletteVersionV1
)

// PaletteDocument models a YAML manifest describing the chart palette shown
// in the builder sidebar. Deployments extend or restyle the palette without
// recompiling.
type PaletteDocument struct {
	Version string            `json:"version" yaml:"version"`
	Name    string            `json:"name,omitempty" yaml:"name,omitempty"`
	Charts  []ChartDefinition `json:"charts" yaml:"charts"`
	Source  string            `json:"-" yaml:"-"`
}

// LoadPaletteFile reads a palette from disk and registers it.
func (r *Registry) LoadPaletteFile(path string) (*PaletteDocument, error) {
	doc, err := ReadPalette(path)
	if err != nil {
		return nil, err
	}
	if err := r.LoadPaletteDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadPaletteDocument registers chart definitions from a decoded palette.
func (r *Registry) LoadPaletteDocument(doc *PaletteDocument) error {
	if doc == nil {
		return fmt.Errorf("canvas: palette document is nil")
	}
	for _, def := range doc.Charts {
		if err := r.RegisterDefinition(def); err != nil {
			return fmt.Errorf("canvas: register chart %s from %s: %w", def.Type, doc.Source, err)
		}
	}
	return nil
}

// ReadPalette loads a palette file from disk without registering it.
func ReadPalette(path string) (*PaletteDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("canvas: open palette %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodePalette(f)
	if err != nil {
		return nil, fmt.Errorf("canvas: decode palette %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodePalette reads a palette from any reader.
func DecodePalette(r io.Reader) (*PaletteDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc PaletteDocument
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("canvas: palette is empty")
		}
		return nil, fmt.Errorf("canvas: parse palette: %w", err)
	}
	if doc.Version == "" {
		doc.Version = paletteVersionV1
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the palette satisfies required fields.
func (doc *PaletteDocument) Validate() error {
	if doc.Version != paletteVersionV1 {
		return fmt.Errorf("canvas: unsupported palette version %q", doc.Version)
	}
	seen := make(map[ChartType]struct{}, len(doc.Charts))
	for idx, def := range doc.Charts {
		if def.Type == "" {
			return fmt.Errorf("canvas: palette chart at index %d is missing type", idx)
		}
		if def.Name == "" {
			return fmt.Errorf("canvas: palette chart %s missing name", def.Type)
		}
		if _, exists := seen[def.Type]; exists {
			return fmt.Errorf("canvas: palette duplicates chart type %s", def.Type)
		}
		seen[def.Type] = struct{}{}
	}
	return nil
}
