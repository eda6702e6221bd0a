package charts

import (
	"fmt"
	"html/template"
	"strings"
)

// TextRenderer prints the same series as plain markup. Used when the
// chart script is unreachable or when text mode is forced, so every
// number a chart would show still reaches the page.
type TextRenderer struct{}

// NewText returns the text renderer.
func NewText() *TextRenderer {
	return &TextRenderer{}
}

func (r *TextRenderer) Mode() Mode { return ModeText }

func (r *TextRenderer) Assets() []string { return nil }

func (r *TextRenderer) Pie(s CategorySeries) template.HTML {
	return categoryList(s)
}

func (r *TextRenderer) Bar(s CategorySeries) template.HTML {
	return categoryList(s)
}

func (r *TextRenderer) Histogram(h HistogramData) template.HTML {
	buckets := bucketize(h.Samples, h.Bins)
	if len(buckets) == 0 {
		return emptyFragment(h.Title)
	}

	lo, hi := minMax(h.Samples)
	var b strings.Builder
	openFragment(&b, h.Title)
	fmt.Fprintf(&b, `<p class="chart-summary">%d samples · min %s · max %s · avg %s</p>`,
		len(h.Samples), formatNum(lo), formatNum(hi), formatNum(mean(h.Samples)))
	b.WriteString("<ul>")
	total := float64(len(h.Samples))
	for _, bk := range buckets {
		fmt.Fprintf(&b, "<li>%s: %d (%s)</li>",
			template.HTMLEscapeString(bk.label), bk.count, pct(float64(bk.count), total))
	}
	b.WriteString("</ul></div>")
	return template.HTML(b.String())
}

func (r *TextRenderer) Line(s TimeSeries) template.HTML {
	if len(s.Days) == 0 {
		return emptyFragment(s.Title)
	}

	lo, hi := minMax(s.Values)
	var b strings.Builder
	openFragment(&b, s.Title)
	fmt.Fprintf(&b, `<p class="chart-summary">min %s · max %s · avg %s</p>`,
		formatNum(lo), formatNum(hi), formatNum(mean(s.Values)))
	b.WriteString("<ul>")
	for i, day := range s.Days {
		fmt.Fprintf(&b, "<li>%s: %s%s</li>",
			day.Format("Jan 02"), formatNum(s.Values[i]), unitSuffix(s.Unit))
	}
	b.WriteString("</ul></div>")
	return template.HTML(b.String())
}

func (r *TextRenderer) Gauge(g GaugeSpec) template.HTML {
	var b strings.Builder
	openFragment(&b, g.Title)
	fmt.Fprintf(&b, `<p class="chart-gauge">%s: %s / %s</p>`,
		template.HTMLEscapeString(g.Name), formatNum(g.Value), formatNum(g.Max))
	if g.Threshold > 0 {
		fmt.Fprintf(&b, `<p class="chart-summary">threshold %s</p>`, formatNum(g.Threshold))
	}
	b.WriteString("</div>")
	return template.HTML(b.String())
}

// categoryList renders one line per label, with the share of the total
// alongside the raw count.
func categoryList(s CategorySeries) template.HTML {
	if len(s.Labels) == 0 {
		return emptyFragment(s.Title)
	}

	total := s.Total()
	var b strings.Builder
	openFragment(&b, s.Title)
	b.WriteString("<ul>")
	for i, label := range s.Labels {
		fmt.Fprintf(&b, "<li>%s: %s%s (%s)</li>",
			template.HTMLEscapeString(label), formatNum(s.Values[i]),
			unitSuffix(s.Unit), pct(s.Values[i], total))
	}
	b.WriteString("</ul></div>")
	return template.HTML(b.String())
}

func openFragment(b *strings.Builder, title string) {
	b.WriteString(`<div class="chart chart-text"><h4>`)
	b.WriteString(template.HTMLEscapeString(title))
	b.WriteString("</h4>")
}

func unitSuffix(unit string) string {
	if unit == "" {
		return ""
	}
	return " " + template.HTMLEscapeString(unit)
}

func pct(v, total float64) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", v/total*100)
}
