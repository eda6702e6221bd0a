// Package format turns raw routing-engine payloads into presentation
// fields. Everything here is a pure transform: no I/O, no clock, no
// process state, so the same input always renders the same output.
package format

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/huenthong/smartrouting/internal/routing"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NotAvailable is the placeholder rendered for absent fields.
const NotAvailable = "N/A"

// Badge pairs a value's display label with its status icon and a tone
// used for styling.
type Badge struct {
	Icon  string
	Label string
	Tone  string
}

// BreakdownRow is one formatted score-breakdown criterion.
type BreakdownRow struct {
	Label string
	Value string
}

// ALPSView is the scoring panel shown for sales results that carry an
// ALPS score.
type ALPSView struct {
	Score     float64
	Band      routing.PriorityBand
	Banner    string
	Hint      string
	Tone      string
	Breakdown []BreakdownRow
}

// Result is a RoutingResult prepared for display.
type Result struct {
	Intent        string
	Sentiment     Badge
	Urgency       Badge
	Confidence    string
	ALPS          *ALPSView
	AssignedAgent string
	Escalated     bool
	RoutingLabel  string
	RoutingIcon   string
	RoutingReason string
	RawJSON       string
}

// FormatResult derives every display field from a raw routing result.
func FormatResult(r routing.RoutingResult) Result {
	out := Result{
		Intent:        TitleOrNA(r.Intent),
		Sentiment:     SentimentBadge(r.Sentiment),
		Urgency:       UrgencyBadge(r.Urgency),
		Confidence:    Percent(r.Confidence),
		AssignedAgent: orNA(r.AssignedAgent),
		Escalated:     r.Escalated,
		RoutingReason: orNA(r.RoutingReason),
	}

	if r.Escalated {
		out.RoutingIcon = "⚠️"
		out.RoutingLabel = "Escalated to Manager"
	} else {
		out.RoutingIcon = "✅"
		out.RoutingLabel = "Standard Routing"
	}

	if r.HasALPS() {
		out.ALPS = alpsView(*r.ALPSScore, r.ScoreBreakdown)
	}

	if raw, err := json.MarshalIndent(r, "", "  "); err == nil {
		out.RawJSON = string(raw)
	}

	return out
}

func alpsView(score float64, breakdown map[string]float64) *ALPSView {
	view := &ALPSView{
		Score: score,
		Band:  routing.BandForScore(score),
	}

	switch view.Band {
	case routing.BandHigh:
		view.Banner = "🔥 HIGH PRIORITY LEAD"
		view.Hint = "Route to top sales agent immediately!"
		view.Tone = "bad"
	case routing.BandMedium:
		view.Banner = "⚡ MEDIUM PRIORITY LEAD"
		view.Hint = "Route to available sales agent"
		view.Tone = "warn"
	default:
		view.Banner = "📝 STANDARD LEAD"
		view.Hint = "Route to general sales queue"
		view.Tone = "info"
	}

	view.Breakdown = FormatBreakdown(breakdown)
	return view
}

// FormatBreakdown renders score-breakdown entries with separator
// characters replaced by spaces, title-cased labels and two-decimal
// values. Criteria are ordered by their raw key so output is stable.
func FormatBreakdown(breakdown map[string]float64) []BreakdownRow {
	if len(breakdown) == 0 {
		return nil
	}

	keys := make([]string, 0, len(breakdown))
	for k := range breakdown {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sep := strings.NewReplacer("_", " ", "-", " ")
	rows := make([]BreakdownRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, BreakdownRow{
			Label: Title(sep.Replace(k)),
			Value: fmt.Sprintf("%.2f", breakdown[k]),
		})
	}
	return rows
}

// SentimentBadge maps a wire sentiment onto its icon. Unknown values keep
// their (title-cased) label under the neutral ⚪ icon rather than failing.
func SentimentBadge(raw string) Badge {
	b := Badge{Label: TitleOrNA(raw)}
	switch routing.Sentiment(strings.ToLower(strings.TrimSpace(raw))) {
	case routing.SentimentPositive:
		b.Icon, b.Tone = "🟢", "ok"
	case routing.SentimentNegative:
		b.Icon, b.Tone = "🔴", "bad"
	case routing.SentimentNeutral:
		b.Icon, b.Tone = "🟡", "warn"
	default:
		b.Icon, b.Tone = "⚪", "muted"
	}
	return b
}

// UrgencyBadge maps a wire urgency onto its icon, with the same
// unknown-value fallback as SentimentBadge.
func UrgencyBadge(raw string) Badge {
	b := Badge{Label: TitleOrNA(raw)}
	switch routing.Urgency(strings.ToLower(strings.TrimSpace(raw))) {
	case routing.UrgencyHigh:
		b.Icon, b.Tone = "🔴", "bad"
	case routing.UrgencyMedium:
		b.Icon, b.Tone = "🟡", "warn"
	case routing.UrgencyLow:
		b.Icon, b.Tone = "🟢", "ok"
	default:
		b.Icon, b.Tone = "⚪", "muted"
	}
	return b
}

// LoadBadge maps a load classification onto its icon, label and the chip
// text shown next to the agent row.
func LoadBadge(status routing.LoadStatus) Badge {
	switch status {
	case routing.LoadOverloaded:
		return Badge{Icon: "🔴", Label: "Overloaded", Tone: "bad"}
	case routing.LoadBusy:
		return Badge{Icon: "🟡", Label: "Busy", Tone: "warn"}
	default:
		return Badge{Icon: "🟢", Label: "Available", Tone: "ok"}
	}
}

// FeedLine is one rendered activity-feed row.
type FeedLine struct {
	Icon string
	Time string
	Text string
}

// FormatFeed renders activity entries into feed lines. Live and demo
// entries share this path, so both sources look identical downstream.
func FormatFeed(entries []routing.ActivityEntry) []FeedLine {
	lines := make([]FeedLine, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, formatFeedEntry(e))
	}
	return lines
}

func formatFeedEntry(e routing.ActivityEntry) FeedLine {
	line := FeedLine{Time: e.Time}
	agent := orNA(e.AgentID)

	switch routing.Intent(strings.ToLower(e.Intent)) {
	case routing.IntentSales:
		line.Icon = "✅"
		if e.ALPSScore != nil {
			line.Text = fmt.Sprintf("Sales lead → %s (ALPS: %.1f)", agent, *e.ALPSScore)
		} else {
			line.Text = fmt.Sprintf("Sales lead → %s", agent)
		}
	case routing.IntentSupport:
		line.Icon = "⚠️"
		line.Text = fmt.Sprintf("Support → %s", agent)
	default:
		line.Icon = "ℹ️"
		line.Text = fmt.Sprintf("%s → %s", TitleOrNA(e.Intent), agent)
	}
	return line
}

// Percent renders a [0,1] confidence as a one-decimal percentage.
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

// Title title-cases a string for display.
func Title(s string) string {
	return cases.Title(language.English).String(s)
}

// TitleOrNA title-cases a value, or returns the N/A placeholder when it
// is empty.
func TitleOrNA(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return NotAvailable
	}
	return Title(s)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}
