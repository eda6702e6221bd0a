// Package charts renders the dashboard's numeric series either as
// ECharts widgets or as plain-text summaries. The two renderers consume
// identical normalized data, so switching backends never changes the
// facts on a page, only their presentation. Which backend runs is
// decided once at startup.
package charts

import (
	"html/template"
	"math"
	"net/http"
	"strconv"
	"time"
)

// CategorySeries is a set of labeled values, rendered as a pie or bar.
type CategorySeries struct {
	Title  string
	Unit   string // what one count means, e.g. "messages"
	Labels []string
	Values []float64
}

// Total sums the series values.
func (s CategorySeries) Total() float64 {
	var total float64
	for _, v := range s.Values {
		total += v
	}
	return total
}

// TimeSeries is a value per day, rendered as a line.
type TimeSeries struct {
	Title  string
	Unit   string
	Days   []time.Time
	Values []float64
}

// HistogramData is a raw sample set, bucketed by the renderer.
type HistogramData struct {
	Title   string
	Unit    string
	Samples []float64
	Bins    int
}

// GaugeSpec is a single value on a bounded dial.
type GaugeSpec struct {
	Title     string
	Name      string
	Value     float64
	Max       float64
	Threshold float64
}

// Renderer produces embeddable HTML fragments for each widget type.
type Renderer interface {
	Pie(s CategorySeries) template.HTML
	Bar(s CategorySeries) template.HTML
	Histogram(h HistogramData) template.HTML
	Line(s TimeSeries) template.HTML
	Gauge(g GaugeSpec) template.HTML

	// Assets lists script URLs a page must include for the fragments
	// to work. Empty for the text renderer.
	Assets() []string

	// Mode identifies the active backend.
	Mode() Mode
}

// Mode selects the chart backend.
type Mode string

const (
	ModeAuto    Mode = "auto"    // probe the asset host, fall back to text
	ModeECharts Mode = "echarts" // force chart widgets
	ModeText    Mode = "text"    // force text summaries
)

// ParseMode maps a config string onto a Mode, defaulting to auto.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeECharts, ModeText:
		return Mode(s)
	default:
		return ModeAuto
	}
}

// probeTimeout bounds the one-time asset availability check.
const probeTimeout = 3 * time.Second

// AssetAvailable reports whether the ECharts script can be fetched from
// the asset host. Called once at startup; pages never re-probe.
func AssetAvailable(hc *http.Client, assetsHost string) bool {
	if hc == nil {
		hc = &http.Client{}
	}

	req, err := http.NewRequest(http.MethodHead, scriptURL(assetsHost), nil)
	if err != nil {
		return false
	}

	probe := *hc
	probe.Timeout = probeTimeout

	resp, err := probe.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Select picks the renderer for this process. Auto mode probes the asset
// host and degrades to text when the script is unreachable, so an
// offline deployment still shows every number.
func Select(mode Mode, assetsHost string, hc *http.Client) Renderer {
	switch mode {
	case ModeECharts:
		return NewECharts(assetsHost)
	case ModeText:
		return NewText()
	default:
		if AssetAvailable(hc, assetsHost) {
			return NewECharts(assetsHost)
		}
		return NewText()
	}
}

// bucket is one histogram bin.
type bucket struct {
	label string
	count int
}

// bucketize spreads samples over bins equal-width buckets. Both
// renderers share this so their bucket counts always agree.
func bucketize(samples []float64, bins int) []bucket {
	if len(samples) == 0 || bins <= 0 {
		return nil
	}

	lo, hi := minMax(samples)
	width := (hi - lo) / float64(bins)
	if width == 0 {
		width = 1
	}

	buckets := make([]bucket, bins)
	for i := range buckets {
		from := lo + float64(i)*width
		buckets[i].label = bucketLabel(from, from+width)
	}

	for _, s := range samples {
		idx := int((s - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		buckets[idx].count++
	}
	return buckets
}

func bucketLabel(from, to float64) string {
	return formatNum(from) + "-" + formatNum(to)
}

func minMax(samples []float64) (lo, hi float64) {
	lo, hi = samples[0], samples[0]
	for _, s := range samples[1:] {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	return lo, hi
}

func mean(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var total float64
	for _, s := range samples {
		total += s
	}
	return total / float64(len(samples))
}

// formatNum prints whole numbers without a decimal tail and everything
// else with one decimal.
func formatNum(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
