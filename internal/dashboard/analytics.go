package dashboard

import (
	"html/template"
	"net/http"
	"sort"
	"time"

	"github.com/huenthong/smartrouting/internal/charts"
	"github.com/huenthong/smartrouting/internal/demo"
	"github.com/huenthong/smartrouting/internal/format"
	"github.com/huenthong/smartrouting/internal/routing"
)

const (
	defaultRangeDays = 7
	maxRangeDays     = 90
	alpsBins         = 10

	// analyticsFeedLimit is how many recent routings feed the live
	// intent and ALPS distributions.
	analyticsFeedLimit = 200
)

type analyticsData struct {
	page
	StartDate     string
	EndDate       string
	IntentChart   template.HTML
	PriorityChart template.HTML
	ALPSChart     template.HTML
	VolumeChart   template.HTML
}

// handleAnalytics renders the four analytics widgets over the selected
// date range. Intent and ALPS distributions come from the live feed
// when the engine answers with entries; priority and daily volume have
// no upstream endpoint and always come from the fallback dataset.
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	c := s.client()

	start, end := dateRange(r)
	days := int(end.Sub(start)/(24*time.Hour)) + 1
	if days > maxRangeDays {
		days = maxRangeDays
		start = end.AddDate(0, 0, -(days - 1))
	}

	data := analyticsData{
		page:      s.newPage(ctx, c, "analytics", "📈 Analytics & Insights"),
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
	}

	stats := demo.AnalyticsData()

	intent := charts.CategorySeries{Title: "Message Intent Distribution", Unit: "messages"}
	scores := stats.ALPSScores

	entries, err := c.FetchRecentRoutings(ctx, analyticsFeedLimit)
	if err != nil {
		s.logger.Warn().Err(err).Msg("recent routings unavailable, using demo analytics")
		data.Notice = demo.Notice
	}
	if err == nil && len(entries) > 0 {
		intent.Labels, intent.Values = intentDistribution(entries)
		scores = alpsSamples(entries)
	} else {
		for _, ic := range stats.IntentCounts {
			intent.Labels = append(intent.Labels, ic.Intent)
			intent.Values = append(intent.Values, float64(ic.Count))
		}
	}

	priority := charts.CategorySeries{Title: "Lead Priority Distribution", Unit: "leads"}
	for _, pc := range stats.PriorityCounts {
		priority.Labels = append(priority.Labels, pc.Level)
		priority.Values = append(priority.Values, float64(pc.Count))
	}

	volume := charts.TimeSeries{Title: "Daily Message Volume", Unit: "messages"}
	for _, p := range demo.DailyVolume(end, days) {
		volume.Days = append(volume.Days, p.Day)
		volume.Values = append(volume.Values, float64(p.Count))
	}

	data.IntentChart = s.renderer.Pie(intent)
	data.PriorityChart = s.renderer.Bar(priority)
	data.ALPSChart = s.renderer.Histogram(charts.HistogramData{
		Title:   "ALPS Score Distribution",
		Unit:    "scores",
		Samples: scores,
		Bins:    alpsBins,
	})
	data.VolumeChart = s.renderer.Line(volume)

	s.render(w, "analytics.html", data)
}

// intentDistribution counts feed entries per intent. Labels are
// title-cased and ordered alphabetically so repeated renders agree.
func intentDistribution(entries []routing.ActivityEntry) ([]string, []float64) {
	counts := make(map[string]int)
	for _, e := range entries {
		counts[format.TitleOrNA(e.Intent)]++
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	values := make([]float64, len(labels))
	for i, label := range labels {
		values[i] = float64(counts[label])
	}
	return labels, values
}

// alpsSamples collects the scores present in the feed. Non-sales
// entries carry none, so the result can be empty.
func alpsSamples(entries []routing.ActivityEntry) []float64 {
	samples := make([]float64, 0, len(entries))
	for _, e := range entries {
		if e.ALPSScore != nil {
			samples = append(samples, *e.ALPSScore)
		}
	}
	return samples
}

// dateRange reads the start/end query parameters, defaulting to the
// last week. Unparseable values fall back to the defaults and an
// inverted range is swapped rather than rejected.
func dateRange(r *http.Request) (time.Time, time.Time) {
	end := dateOnly(time.Now())
	start := end.AddDate(0, 0, -defaultRangeDays)

	if v := r.URL.Query().Get("start"); v != "" {
		if d, err := time.Parse("2006-01-02", v); err == nil {
			start = d
		}
	}
	if v := r.URL.Query().Get("end"); v != "" {
		if d, err := time.Parse("2006-01-02", v); err == nil {
			end = d
		}
	}

	if start.After(end) {
		start, end = end, start
	}
	return start, end
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
