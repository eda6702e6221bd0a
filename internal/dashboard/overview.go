package dashboard

import (
	"net/http"
	"strconv"

	"github.com/huenthong/smartrouting/internal/demo"
	"github.com/huenthong/smartrouting/internal/format"
)

type overviewData struct {
	page
	Metrics []metricCard
	Feed    []format.FeedLine
}

// handleOverview renders the system overview: headline metrics and the
// recent activity feed. The feed prefers live routings and falls back
// to demo entries when the engine is unreachable.
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	c := s.client()

	data := overviewData{
		page:    s.newPage(ctx, c, "overview", "📊 System Overview"),
		Metrics: metricCards(demo.Metrics()),
	}

	entries, err := c.FetchRecentRoutings(ctx, s.cfg.FeedLimit)
	if err != nil {
		s.logger.Warn().Err(err).Msg("recent routings unavailable, using demo feed")
		entries = demo.ActivityFeed()
		data.Notice = demo.Notice
	}
	data.Feed = format.FormatFeed(entries)

	s.render(w, "overview.html", data)
}

func metricCards(m demo.OverviewMetrics) []metricCard {
	cards := make([]metricCard, 0, 4)

	text, tone := delta(float64(m.MessagesDelta), "")
	cards = append(cards, metricCard{
		Icon: "📬", Label: "Messages Today",
		Value: strconv.Itoa(m.MessagesToday), Delta: text, Tone: tone,
	})

	text, tone = delta(m.ResponseDeltaMin, "min")
	cards = append(cards, metricCard{
		Icon: "⚡", Label: "Avg Response Time",
		Value: trimFloat(m.AvgResponseMin) + " min", Delta: text, Tone: tone,
	})

	text, tone = delta(m.ALPSDelta, "")
	cards = append(cards, metricCard{
		Icon: "🎯", Label: "ALPS Avg Score",
		Value: trimFloat(m.ALPSAverage), Delta: text, Tone: tone,
	})

	text, tone = delta(float64(m.SLADelta), "")
	cards = append(cards, metricCard{
		Icon: "🚨", Label: "SLA Breaches",
		Value: strconv.Itoa(m.SLABreaches), Delta: text, Tone: tone,
	})

	return cards
}
