package canvas

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"math"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "100%"

var sharedRenderCache = NewTTLRenderCache(5 * time.Minute)

// WidgetRenderer turns a resolved widget payload into markup. The canvas
// core treats the renderer as a black box consuming rows and bucket
// assignments.
type WidgetRenderer interface {
	RenderWidget(ctx context.Context, data WidgetData) (string, error)
}

// EChartsRenderer renders widgets as server-side ECharts HTML, with plain
// HTML for card, filter, and table widgets.
type EChartsRenderer struct {
	cache      RenderCache
	theme      string
	assetsHost string
}

// EChartsRendererOption customizes renderer behavior.
type EChartsRendererOption func(*EChartsRenderer)

// WithRenderCache injects a render cache.
func WithRenderCache(cache RenderCache) EChartsRendererOption {
	return func(r *EChartsRenderer) {
		r.cache = cache
	}
}

// WithChartTheme sets the ECharts theme (defaults to Westeros).
func WithChartTheme(theme string) EChartsRendererOption {
	return func(r *EChartsRenderer) {
		r.theme = theme
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) EChartsRendererOption {
	return func(r *EChartsRenderer) {
		r.assetsHost = host
	}
}

// NewEChartsRenderer builds a renderer with the default shared cache.
func NewEChartsRenderer(options ...EChartsRendererOption) *EChartsRenderer {
	r := &EChartsRenderer{
		cache: sharedRenderCache,
		theme: types.ThemeWesteros,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// RenderWidget renders the widget payload, memoized per widget + data hash.
func (r *EChartsRenderer) RenderWidget(_ context.Context, data WidgetData) (string, error) {
	renderFn := func() (string, error) { return r.render(data) }
	if r.cache != nil {
		key := fmt.Sprintf("%s:%s", data.Widget.ID, renderHash(data))
		return r.cache.GetOrRender(key, renderFn)
	}
	return renderFn()
}

func (r *EChartsRenderer) render(data WidgetData) (string, error) {
	w := data.Widget
	switch w.Type {
	case ChartCard:
		return renderCard(data), nil
	case ChartFilter:
		return renderSlicer(data), nil
	case ChartTable:
		return renderTable(data), nil
	}
	// Binding gaps are advisory: show guidance instead of an empty chart.
	if len(data.Messages) > 0 {
		return renderGuidance(data), nil
	}
	if data.NoData {
		return renderPlaceholder(w), nil
	}
	switch w.Type {
	case ChartBar, ChartStackedBar:
		return r.renderBar(data, w.Type == ChartStackedBar)
	case ChartLine, ChartArea:
		return r.renderLine(data, w.Type == ChartArea)
	case ChartPie, ChartDonut:
		return r.renderPie(data, w.Type == ChartDonut)
	case ChartTreemap:
		return r.renderTreemap(data)
	case ChartGauge:
		return r.renderGauge(data)
	default:
		return "", fmt.Errorf("canvas: unsupported chart type: %s", w.Type)
	}
}

// categorySeries splits rows by legend value, one data point per row.
// Duplicate x-values are not grouped.
func categorySeries(data WidgetData) (labels []string, series map[string][]opts.BarData, order []string) {
	b := data.Widget.Bindings
	series = map[string][]opts.BarData{}
	for _, row := range data.Rows {
		label := stringifyValue(row[b.XAxis])
		labels = append(labels, label)
		name := "Values"
		if b.Legend != "" {
			name = stringifyValue(row[b.Legend])
		}
		if _, ok := series[name]; !ok {
			order = append(order, name)
		}
		series[name] = append(series[name], opts.BarData{
			Name:  label,
			Value: numberValue(row[b.YAxis]),
		})
	}
	return labels, series, order
}

func (r *EChartsRenderer) renderBar(data WidgetData, stacked bool) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globalChartOptions(data.Widget)...)
	labels, series, order := categorySeries(data)
	bar.SetXAxis(labels)
	for _, name := range order {
		bar.AddSeries(name, series[name])
	}
	if stacked {
		bar.SetSeriesOptions(charts.WithBarChartOpts(opts.BarChart{Stack: "total"}))
	}
	return renderChart(bar)
}

func (r *EChartsRenderer) renderLine(data WidgetData, area bool) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(r.globalChartOptions(data.Widget)...)
	labels, series, order := categorySeries(data)
	line.SetXAxis(labels)
	for _, name := range order {
		points := make([]opts.LineData, len(series[name]))
		for i, p := range series[name] {
			points[i] = opts.LineData{Name: p.Name, Value: p.Value}
		}
		line.AddSeries(name, points)
	}
	seriesOpts := []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
	}
	if area {
		seriesOpts = append(seriesOpts, charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.4}))
	}
	line.SetSeriesOptions(seriesOpts...)
	return renderChart(line)
}

func (r *EChartsRenderer) renderPie(data WidgetData, donut bool) (string, error) {
	pie := charts.NewPie()
	pie.SetGlobalOptions(r.globalChartOptions(data.Widget)...)
	b := data.Widget.Bindings
	nameField := b.Legend
	if nameField == "" {
		nameField = b.XAxis
	}
	points := make([]opts.PieData, 0, len(data.Rows))
	for i, row := range data.Rows {
		name := stringifyValue(row[nameField])
		if name == "" {
			name = fmt.Sprintf("Slice %d", i+1)
		}
		points = append(points, opts.PieData{
			Name:  name,
			Value: numberValue(row[b.YAxis]),
		})
	}
	pie.AddSeries(data.Widget.Title, points)
	if donut {
		pie.SetSeriesOptions(charts.WithPieChartOpts(opts.PieChart{
			Radius: []string{"45%", "75%"},
		}))
	}
	return renderChart(pie)
}

func (r *EChartsRenderer) renderTreemap(data WidgetData) (string, error) {
	b := data.Widget.Bindings
	nameField, sizeField := b.XAxis, b.YAxis
	// Unbound treemaps fall back to the first two raw columns.
	if (nameField == "" || sizeField == "") && len(data.Columns) >= 2 {
		if nameField == "" {
			nameField = data.Columns[0].Name
		}
		if sizeField == "" {
			sizeField = data.Columns[1].Name
		}
	}
	if nameField == "" || sizeField == "" {
		return renderGuidance(data), nil
	}
	tm := charts.NewTreeMap()
	tm.SetGlobalOptions(r.globalChartOptions(data.Widget)...)
	nodes := make([]opts.TreeMapNode, 0, len(data.Rows))
	for _, row := range data.Rows {
		nodes = append(nodes, opts.TreeMapNode{
			Name:  stringifyValue(row[nameField]),
			Value: int(math.Round(numberValue(row[sizeField]))),
		})
	}
	tm.AddSeries(data.Widget.Title, nodes)
	return renderChart(tm)
}

func (r *EChartsRenderer) renderGauge(data WidgetData) (string, error) {
	gauge := charts.NewGauge()
	gauge.SetGlobalOptions(r.globalChartOptions(data.Widget)...)
	gauge.AddSeries(data.Widget.Title, []opts.GaugeData{
		{Name: data.Widget.Bindings.YAxis, Value: numberValue(data.Value)},
	})
	return renderChart(gauge)
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *EChartsRenderer) globalChartOptions(w Widget) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  r.theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: w.Title}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func renderCard(data WidgetData) string {
	value := "—"
	if data.Value != nil {
		value = stringifyValue(data.Value)
	}
	accent := data.Widget.AccentColor
	if accent == "" {
		accent = "#4e79a7"
	}
	return fmt.Sprintf(
		`<div class="canvas-card" style="border-top:3px solid %s"><span class="canvas-card-value">%s</span><span class="canvas-card-title">%s</span></div>`,
		html.EscapeString(accent), html.EscapeString(value), html.EscapeString(data.Widget.Title))
}

func renderSlicer(data WidgetData) string {
	var sb strings.Builder
	sb.WriteString(`<ul class="canvas-slicer">`)
	selected := make(map[string]struct{}, len(data.Selected))
	for _, v := range data.Selected {
		selected[v] = struct{}{}
	}
	for _, option := range data.Options {
		class := "canvas-slicer-option"
		if _, ok := selected[option]; ok {
			class += " selected"
		}
		fmt.Fprintf(&sb, `<li class=%q>%s</li>`, class, html.EscapeString(option))
	}
	sb.WriteString(`</ul>`)
	return sb.String()
}

func renderTable(data WidgetData) string {
	if len(data.Rows) == 0 {
		return renderPlaceholder(data.Widget)
	}
	columns := data.Columns
	if len(columns) == 0 {
		columns = InferColumns(data.Rows)
	}
	var sb strings.Builder
	sb.WriteString(`<table class="canvas-table"><thead><tr>`)
	for _, col := range columns {
		fmt.Fprintf(&sb, "<th>%s</th>", html.EscapeString(col.Name))
	}
	sb.WriteString("</tr></thead><tbody>")
	for _, row := range data.Rows {
		sb.WriteString("<tr>")
		for _, col := range columns {
			fmt.Fprintf(&sb, "<td>%s</td>", html.EscapeString(stringifyValue(row[col.Name])))
		}
		sb.WriteString("</tr>")
	}
	sb.WriteString("</tbody></table>")
	return sb.String()
}

func renderGuidance(data WidgetData) string {
	var sb strings.Builder
	sb.WriteString(`<div class="canvas-guidance"><ul>`)
	for _, msg := range data.Messages {
		fmt.Fprintf(&sb, "<li>%s</li>", html.EscapeString(msg))
	}
	sb.WriteString("</ul></div>")
	return sb.String()
}

func renderPlaceholder(w Widget) string {
	return fmt.Sprintf(`<div class="canvas-empty">%s: no data</div>`, html.EscapeString(w.Title))
}
