package canvas

import (
	"fmt"
	"sort"
	"sync"
)

// Bucket names a slot a widget binds a dataset column to.
type Bucket string

// Buckets exposed by the fields panel.
const (
	BucketXAxis       Bucket = "xAxis"
	BucketYAxis       Bucket = "yAxis"
	BucketLegend      Bucket = "legend"
	BucketFilterField Bucket = "filterField"
)

// BucketRule describes one bucket slot of a chart definition, used by the
// fields panel to render drop targets.
type BucketRule struct {
	Bucket   Bucket `json:"bucket" yaml:"bucket"`
	Label    string `json:"label" yaml:"label"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty"`
}

// ChartDefinition describes a chart type available on the palette.
type ChartDefinition struct {
	Type               ChartType    `json:"type" yaml:"type"`
	Name               string       `json:"name" yaml:"name"`
	Description        string       `json:"description,omitempty" yaml:"description,omitempty"`
	Icon               string       `json:"icon,omitempty" yaml:"icon,omitempty"`
	DefaultSize        Size         `json:"default_size,omitempty" yaml:"default_size,omitempty"`
	DefaultAggregation Aggregation  `json:"default_aggregation,omitempty" yaml:"default_aggregation,omitempty"`
	DefaultAccent      string       `json:"default_accent,omitempty" yaml:"default_accent,omitempty"`
	Buckets            []BucketRule `json:"buckets,omitempty" yaml:"buckets,omitempty"`
}

// ChartHook lets packages register chart definitions during init().
type ChartHook func(reg *Registry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []ChartHook
)

// RegisterChartHook registers a hook executed against new registries.
func RegisterChartHook(h ChartHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// Registry stores chart definitions discoverable via hooks or palette
// manifests.
type Registry struct {
	mu          sync.RWMutex
	definitions map[ChartType]ChartDefinition
}

// NewRegistry builds a registry seeded with the default palette and applies
// global hooks.
func NewRegistry() *Registry {
	reg := &Registry{definitions: map[ChartType]ChartDefinition{}}
	for _, def := range DefaultChartDefinitions() {
		_ = reg.RegisterDefinition(def)
	}
	_ = reg.ApplyHooks()
	return reg
}

// ApplyHooks executes registered chart hooks.
func (r *Registry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// RegisterDefinition stores chart metadata.
func (r *Registry) RegisterDefinition(def ChartDefinition) error {
	if def.Type == "" {
		return fmt.Errorf("canvas: chart definition type is required")
	}
	if def.DefaultSize.Width < MinWidgetWidth {
		def.DefaultSize.Width = defaultWidgetSize.Width
	}
	if def.DefaultSize.Height < MinWidgetHeight {
		def.DefaultSize.Height = defaultWidgetSize.Height
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.definitions[def.Type] = def
	return nil
}

// Definition fetches a chart definition by type.
func (r *Registry) Definition(chartType ChartType) (ChartDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[chartType]
	return def, ok
}

// Definitions returns all registered definitions sorted by type.
func (r *Registry) Definitions() []ChartDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]ChartDefinition, 0, len(r.definitions))
	for _, def := range r.definitions {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Type < defs[j].Type })
	return defs
}
