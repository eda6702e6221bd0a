package charts

import (
	"bytes"
	"html/template"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// DefaultAssetsHost serves the ECharts script when no override is
// configured. Must end with a slash.
const DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

const (
	widgetWidth  = "100%"
	widgetHeight = "320px"
	gaugeHeight  = "260px"
)

// EChartsRenderer emits ECharts widget fragments. The fragments expect
// the script listed by Assets to be loaded on the page.
type EChartsRenderer struct {
	assetsHost string
}

// NewECharts returns a renderer backed by the given asset host.
func NewECharts(assetsHost string) *EChartsRenderer {
	return &EChartsRenderer{assetsHost: normalizeHost(assetsHost)}
}

func (r *EChartsRenderer) Mode() Mode { return ModeECharts }

func (r *EChartsRenderer) Assets() []string {
	return []string{scriptURL(r.assetsHost)}
}

func (r *EChartsRenderer) Pie(s CategorySeries) template.HTML {
	if len(s.Labels) == 0 {
		return emptyFragment(s.Title)
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(r.initOpts(widgetHeight)),
		charts.WithTitleOpts(opts.Title{Title: s.Title}),
	)

	items := make([]opts.PieData, 0, len(s.Labels))
	for i, label := range s.Labels {
		items = append(items, opts.PieData{Name: label, Value: s.Values[i]})
	}
	pie.AddSeries(s.Title, items)

	return r.embed(pie)
}

func (r *EChartsRenderer) Bar(s CategorySeries) template.HTML {
	if len(s.Labels) == 0 {
		return emptyFragment(s.Title)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(r.initOpts(widgetHeight)),
		charts.WithTitleOpts(opts.Title{Title: s.Title}),
	)

	items := make([]opts.BarData, 0, len(s.Values))
	for _, v := range s.Values {
		items = append(items, opts.BarData{Value: v})
	}
	bar.SetXAxis(s.Labels).AddSeries(s.Title, items)

	return r.embed(bar)
}

func (r *EChartsRenderer) Histogram(h HistogramData) template.HTML {
	buckets := bucketize(h.Samples, h.Bins)
	if len(buckets) == 0 {
		return emptyFragment(h.Title)
	}

	labels := make([]string, 0, len(buckets))
	items := make([]opts.BarData, 0, len(buckets))
	for _, b := range buckets {
		labels = append(labels, b.label)
		items = append(items, opts.BarData{Value: b.count})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(r.initOpts(widgetHeight)),
		charts.WithTitleOpts(opts.Title{Title: h.Title}),
	)
	bar.SetXAxis(labels).AddSeries(h.Title, items)

	return r.embed(bar)
}

func (r *EChartsRenderer) Line(s TimeSeries) template.HTML {
	if len(s.Days) == 0 {
		return emptyFragment(s.Title)
	}

	labels := make([]string, 0, len(s.Days))
	items := make([]opts.LineData, 0, len(s.Values))
	for i, day := range s.Days {
		labels = append(labels, day.Format("Jan 02"))
		items = append(items, opts.LineData{Value: s.Values[i]})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(r.initOpts(widgetHeight)),
		charts.WithTitleOpts(opts.Title{Title: s.Title}),
	)
	line.SetXAxis(labels).AddSeries(s.Title, items)

	return r.embed(line)
}

func (r *EChartsRenderer) Gauge(g GaugeSpec) template.HTML {
	gauge := charts.NewGauge()
	gauge.SetGlobalOptions(
		charts.WithInitializationOpts(r.initOpts(gaugeHeight)),
		charts.WithTitleOpts(opts.Title{Title: g.Title}),
	)
	gauge.AddSeries(g.Title, []opts.GaugeData{{Name: g.Name, Value: g.Value}})

	return r.embed(gauge)
}

func (r *EChartsRenderer) initOpts(height string) opts.Initialization {
	return opts.Initialization{
		AssetsHost: r.assetsHost,
		Width:      widgetWidth,
		Height:     height,
	}
}

// renderable is the slice of the go-echarts chart types we use.
type renderable interface {
	Render(w io.Writer) error
}

// embed renders the chart's standalone page and lifts the body out of
// it, so the widget can sit inside our own page shell. The script tags
// from the chart's head are dropped; Assets covers them once per page.
func (r *EChartsRenderer) embed(chart renderable) template.HTML {
	var buf bytes.Buffer
	if err := chart.Render(&buf); err != nil {
		return emptyFragment("chart render failed")
	}
	return template.HTML(extractBody(buf.String()))
}

// extractBody returns the markup between <body> and </body>, or the
// input unchanged when the markers are missing.
func extractBody(page string) string {
	open := strings.Index(page, "<body>")
	if open == -1 {
		return page
	}
	rest := page[open+len("<body>"):]
	end := strings.LastIndex(rest, "</body>")
	if end == -1 {
		return rest
	}
	return strings.TrimSpace(rest[:end])
}

func emptyFragment(title string) template.HTML {
	return template.HTML(`<div class="chart-empty"><h4>` +
		template.HTMLEscapeString(title) + `</h4><p>no data</p></div>`)
}

func normalizeHost(host string) string {
	if host == "" {
		return DefaultAssetsHost
	}
	if !strings.HasSuffix(host, "/") {
		host += "/"
	}
	return host
}

func scriptURL(host string) string {
	return normalizeHost(host) + "echarts.min.js"
}
