package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	"github.com/glintlab/go-canvas/components/canvas"
)

type cli struct {
	Validate validateCmd `cmd:"" help:"Validate a dashboard document against the builder schema."`
	Inspect  inspectCmd  `cmd:"" help:"Inspect a dashboard document's layout for grid, bounds, and overlap problems."`
	Scaffold scaffoldCmd `cmd:"" help:"Scaffold a chart definition entry in a palette manifest."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Canvas dashboard utility: validate documents, inspect layouts, scaffold palettes."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

type validateCmd struct {
	Path string `arg:"" type:"path" help:"Path to the dashboard document JSON."`
}

func (cmd *validateCmd) Run(_ context.Context) error {
	doc, err := readDocument(cmd.Path)
	if err != nil {
		return err
	}
	validator := canvas.NewJSONSchemaValidator()
	if err := validator.ValidateDocument(doc); err != nil {
		return fmt.Errorf("canvasctl: %s fails validation: %w", cmd.Path, err)
	}
	fmt.Fprintf(os.Stdout, "✓ %s is a valid dashboard document (%d widgets)\n", cmd.Path, len(doc.Widgets))
	return nil
}

type inspectCmd struct {
	Path   string `arg:"" type:"path" help:"Path to the dashboard document JSON."`
	Strict bool   `help:"Exit non-zero when any layout problem is found."`
}

func (cmd *inspectCmd) Run(_ context.Context) error {
	doc, err := readDocument(cmd.Path)
	if err != nil {
		return err
	}
	problems := inspectLayout(doc)
	if len(problems) == 0 {
		fmt.Fprintf(os.Stdout, "✓ %s: layout clean (%d widgets)\n", cmd.Path, len(doc.Widgets))
		return nil
	}
	for _, p := range problems {
		fmt.Fprintf(os.Stdout, "✗ %s\n", p)
	}
	if cmd.Strict {
		return fmt.Errorf("canvasctl: %d layout problem(s) in %s", len(problems), cmd.Path)
	}
	return nil
}

func inspectLayout(doc canvas.Document) []string {
	var problems []string
	for _, w := range doc.Widgets {
		if !onGrid(w.Position.X) || !onGrid(w.Position.Y) {
			problems = append(problems, fmt.Sprintf("widget %s position (%.0f, %.0f) is off the %.0f-unit grid", w.ID, w.Position.X, w.Position.Y, canvas.GridUnit))
		}
		if !onGrid(w.Size.Width) || !onGrid(w.Size.Height) {
			problems = append(problems, fmt.Sprintf("widget %s size (%.0f×%.0f) is off the %.0f-unit grid", w.ID, w.Size.Width, w.Size.Height, canvas.GridUnit))
		}
		if w.Size.Width < canvas.MinWidgetWidth || w.Size.Height < canvas.MinWidgetHeight {
			problems = append(problems, fmt.Sprintf("widget %s size (%.0f×%.0f) is below the %.0fx%.0f minimum", w.ID, w.Size.Width, w.Size.Height, canvas.MinWidgetWidth, canvas.MinWidgetHeight))
		}
		if w.Position.X < 0 || w.Position.Y < 0 ||
			w.Position.X+w.Size.Width > canvas.StageWidth ||
			w.Position.Y+w.Size.Height > canvas.StageHeight {
			problems = append(problems, fmt.Sprintf("widget %s extends outside the stage", w.ID))
		}
	}
	for i := range doc.Widgets {
		for j := i + 1; j < len(doc.Widgets); j++ {
			a, b := doc.Widgets[i], doc.Widgets[j]
			if a.Bounds().Intersects(b.Bounds()) {
				problems = append(problems, fmt.Sprintf("widgets %s and %s overlap", a.ID, b.ID))
			}
		}
	}
	return problems
}

func onGrid(v float64) bool {
	return math.Mod(v, canvas.GridUnit) == 0
}

type scaffoldCmd struct {
	Type        string   `required:"" help:"Chart type identifier (e.g. scatter)."`
	Name        string   `help:"Display name for the chart (defaults to the type in title case)."`
	Description string   `help:"One-line description shown in the palette."`
	Icon        string   `help:"Icon identifier for the palette tile."`
	Accent      string   `help:"Default accent color hex."`
	Width       float64  `default:"360" help:"Default widget width."`
	Height      float64  `default:"260" help:"Default widget height."`
	PalettePath string   `required:"" type:"path" help:"Path to the palette YAML file to update."`
	Aggregation string   `help:"Default aggregation (count, sum, first, last, percentage)."`
	Bucket      []string `help:"Bucket rules as bucket:Label pairs (e.g. xAxis:Category). Repeat per bucket."`
	Overwrite   bool     `help:"Replace an existing palette entry of the same type."`
}

func (cmd *scaffoldCmd) Run(_ context.Context) error {
	palettePath, err := filepath.Abs(cmd.PalettePath)
	if err != nil {
		return fmt.Errorf("canvasctl: resolve palette path: %w", err)
	}
	doc, err := loadOrInitPalette(palettePath)
	if err != nil {
		return err
	}
	chartType := canvas.ChartType(strings.TrimSpace(cmd.Type))
	if chartType == "" {
		return fmt.Errorf("canvasctl: chart type is required")
	}
	if !cmd.Overwrite {
		for _, def := range doc.Charts {
			if def.Type == chartType {
				return fmt.Errorf("canvasctl: palette already defines chart %s (use --overwrite to replace)", chartType)
			}
		}
	}

	buckets, err := parseBuckets(cmd.Bucket)
	if err != nil {
		return err
	}
	name := cmd.Name
	if name == "" {
		name = strcase.ToCase(string(chartType), strcase.TitleCase, ' ')
	}
	entry := canvas.ChartDefinition{
		Type:               chartType,
		Name:               name,
		Description:        cmd.Description,
		Icon:               cmd.Icon,
		DefaultSize:        canvas.Size{Width: cmd.Width, Height: cmd.Height},
		DefaultAggregation: canvas.Aggregation(cmd.Aggregation),
		DefaultAccent:      cmd.Accent,
		Buckets:            buckets,
	}

	replaced := false
	for idx := range doc.Charts {
		if doc.Charts[idx].Type == chartType {
			doc.Charts[idx] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Charts = append(doc.Charts, entry)
	}
	sort.Slice(doc.Charts, func(i, j int) bool { return doc.Charts[i].Type < doc.Charts[j].Type })

	if err := doc.Validate(); err != nil {
		return err
	}
	if err := writePalette(palettePath, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Added %s to %s\n", chartType, palettePath)
	return nil
}

func parseBuckets(specs []string) ([]canvas.BucketRule, error) {
	rules := make([]canvas.BucketRule, 0, len(specs))
	for _, spec := range specs {
		parts := strings.SplitN(spec, ":", 2)
		bucket := canvas.Bucket(strings.TrimSpace(parts[0]))
		switch bucket {
		case canvas.BucketXAxis, canvas.BucketYAxis, canvas.BucketLegend, canvas.BucketFilterField:
		default:
			return nil, fmt.Errorf("canvasctl: unknown bucket %q", parts[0])
		}
		label := string(bucket)
		if len(parts) == 2 && strings.TrimSpace(parts[1]) != "" {
			label = strings.TrimSpace(parts[1])
		}
		rules = append(rules, canvas.BucketRule{Bucket: bucket, Label: label})
	}
	return rules, nil
}

func readDocument(path string) (canvas.Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return canvas.Document{}, fmt.Errorf("canvasctl: read document %s: %w", path, err)
	}
	doc, err := canvas.DecodeDocument(data)
	if err != nil {
		return canvas.Document{}, fmt.Errorf("canvasctl: parse document %s: %w", path, err)
	}
	return doc, nil
}

func loadOrInitPalette(path string) (*canvas.PaletteDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &canvas.PaletteDocument{
				Version: canvas.PaletteVersion,
				Charts:  []canvas.ChartDefinition{},
				Source:  path,
			}, nil
		}
		return nil, fmt.Errorf("canvasctl: stat palette: %w", err)
	}
	return canvas.ReadPalette(path)
}

func writePalette(path string, doc *canvas.PaletteDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("canvasctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("canvasctl: create palette %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("canvasctl: write palette: %w", err)
	}
	return nil
}
