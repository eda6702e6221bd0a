package format

import (
	"reflect"
	"strings"
	"testing"

	"github.com/huenthong/smartrouting/internal/routing"
)

func TestSentimentBadge(t *testing.T) {
	tests := []struct {
		raw      string
		wantIcon string
		wantText string
	}{
		{"positive", "🟢", "Positive"},
		{"negative", "🔴", "Negative"},
		{"neutral", "🟡", "Neutral"},
		{"Positive", "🟢", "Positive"},
		{"confused", "⚪", "Confused"},
		{"", "⚪", "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := SentimentBadge(tt.raw)
			if got.Icon != tt.wantIcon {
				t.Errorf("icon = %s, want %s", got.Icon, tt.wantIcon)
			}
			if got.Label != tt.wantText {
				t.Errorf("label = %s, want %s", got.Label, tt.wantText)
			}
		})
	}
}

func TestUrgencyBadge(t *testing.T) {
	tests := []struct {
		raw      string
		wantIcon string
	}{
		{"high", "🔴"},
		{"medium", "🟡"},
		{"low", "🟢"},
		{"unknown", "⚪"},
		{"", "⚪"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := UrgencyBadge(tt.raw); got.Icon != tt.wantIcon {
				t.Errorf("icon = %s, want %s", got.Icon, tt.wantIcon)
			}
		})
	}
}

func TestFormatBreakdown(t *testing.T) {
	rows := FormatBreakdown(map[string]float64{
		"budget_match":    18.5,
		"urgency_signal":  22,
		"location-signal": 9.136,
	})

	want := []BreakdownRow{
		{Label: "Budget Match", Value: "18.50"},
		{Label: "Location Signal", Value: "9.14"},
		{Label: "Urgency Signal", Value: "22.00"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("breakdown = %+v, want %+v", rows, want)
	}

	if FormatBreakdown(nil) != nil {
		t.Error("expected nil breakdown for empty input")
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(0.91); got != "91.0%" {
		t.Errorf("Percent(0.91) = %s, want 91.0%%", got)
	}
	if got := Percent(0); got != "0.0%" {
		t.Errorf("Percent(0) = %s, want 0.0%%", got)
	}
	if got := Percent(1); got != "100.0%" {
		t.Errorf("Percent(1) = %s, want 100.0%%", got)
	}
}

// TestFormatResultUrgentSalesLead walks the canonical urgent-sales-lead
// response through the formatter and checks every displayed field.
func TestFormatResultUrgentSalesLead(t *testing.T) {
	score := 85.2
	raw := routing.RoutingResult{
		Intent:        "sales",
		Sentiment:     "positive",
		Urgency:       "high",
		Confidence:    0.91,
		ALPSScore:     &score,
		PriorityLevel: routing.PriorityHigh,
		ScoreBreakdown: map[string]float64{
			"urgency_signal": 28.4,
			"budget_match":   25.1,
		},
		AssignedAgent: "Sarah Chen",
		Escalated:     false,
		RoutingReason: "top scorer",
	}

	got := FormatResult(raw)

	if got.Intent != "Sales" {
		t.Errorf("intent = %s, want Sales", got.Intent)
	}
	if got.Sentiment.Icon != "🟢" || got.Sentiment.Label != "Positive" {
		t.Errorf("sentiment = %s %s, want 🟢 Positive", got.Sentiment.Icon, got.Sentiment.Label)
	}
	if got.Urgency.Icon != "🔴" || got.Urgency.Label != "High" {
		t.Errorf("urgency = %s %s, want 🔴 High", got.Urgency.Icon, got.Urgency.Label)
	}
	if got.Confidence != "91.0%" {
		t.Errorf("confidence = %s, want 91.0%%", got.Confidence)
	}
	if got.ALPS == nil {
		t.Fatal("expected ALPS view for sales result with score")
	}
	if got.ALPS.Banner != "🔥 HIGH PRIORITY LEAD" {
		t.Errorf("banner = %s, want 🔥 HIGH PRIORITY LEAD", got.ALPS.Banner)
	}
	if got.AssignedAgent != "Sarah Chen" {
		t.Errorf("agent = %s, want Sarah Chen", got.AssignedAgent)
	}
	if got.Escalated {
		t.Error("expected non-escalated result")
	}
	if got.RoutingLabel != "Standard Routing" {
		t.Errorf("routing label = %s, want Standard Routing", got.RoutingLabel)
	}
	if !strings.Contains(got.RawJSON, `"alps_score": 85.2`) {
		t.Errorf("raw JSON missing score: %s", got.RawJSON)
	}
}

func TestFormatResultEscalatedSupport(t *testing.T) {
	got := FormatResult(routing.RoutingResult{
		Intent:        "support",
		Sentiment:     "negative",
		Urgency:       "high",
		Confidence:    0.87,
		AssignedAgent: "John Smith",
		Escalated:     true,
		RoutingReason: "angry repeat customer",
	})

	if got.ALPS != nil {
		t.Error("support result should not carry an ALPS view")
	}
	if got.RoutingLabel != "Escalated to Manager" {
		t.Errorf("routing label = %s, want Escalated to Manager", got.RoutingLabel)
	}
	if got.RoutingIcon != "⚠️" {
		t.Errorf("routing icon = %s, want ⚠️", got.RoutingIcon)
	}
}

func TestFormatResultMissingFields(t *testing.T) {
	got := FormatResult(routing.RoutingResult{})

	if got.Intent != NotAvailable {
		t.Errorf("intent = %s, want %s", got.Intent, NotAvailable)
	}
	if got.AssignedAgent != NotAvailable {
		t.Errorf("agent = %s, want %s", got.AssignedAgent, NotAvailable)
	}
	if got.RoutingReason != NotAvailable {
		t.Errorf("reason = %s, want %s", got.RoutingReason, NotAvailable)
	}
	if got.Sentiment.Icon != "⚪" {
		t.Errorf("sentiment icon = %s, want ⚪", got.Sentiment.Icon)
	}
	if got.Confidence != "0.0%" {
		t.Errorf("confidence = %s, want 0.0%%", got.Confidence)
	}
}

// TestFormatResultDeterministic re-runs the formatter over the same input
// and expects byte-identical output, including breakdown ordering.
func TestFormatResultDeterministic(t *testing.T) {
	score := 72.1
	raw := routing.RoutingResult{
		Intent:    "sales",
		Sentiment: "neutral",
		Urgency:   "medium",
		ALPSScore: &score,
		ScoreBreakdown: map[string]float64{
			"e": 5, "d": 4, "c": 3, "b": 2, "a": 1,
		},
		AssignedAgent: "Mike Johnson",
	}

	first := FormatResult(raw)
	for i := 0; i < 10; i++ {
		if got := FormatResult(raw); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differed from first run: %+v vs %+v", i, got, first)
		}
	}
}

func TestBandTones(t *testing.T) {
	tests := []struct {
		score      float64
		wantBanner string
	}{
		{85.2, "🔥 HIGH PRIORITY LEAD"},
		{80, "🔥 HIGH PRIORITY LEAD"},
		{79.99, "⚡ MEDIUM PRIORITY LEAD"},
		{60, "⚡ MEDIUM PRIORITY LEAD"},
		{59.99, "📝 STANDARD LEAD"},
	}

	for _, tt := range tests {
		score := tt.score
		got := FormatResult(routing.RoutingResult{Intent: "sales", ALPSScore: &score})
		if got.ALPS == nil {
			t.Fatalf("score %v: missing ALPS view", tt.score)
		}
		if got.ALPS.Banner != tt.wantBanner {
			t.Errorf("score %v: banner = %s, want %s", tt.score, got.ALPS.Banner, tt.wantBanner)
		}
	}
}

func TestFormatFeed(t *testing.T) {
	score := 85.2
	lines := FormatFeed([]routing.ActivityEntry{
		{Time: "14:32", Intent: "sales", AgentID: "Sarah Chen", ALPSScore: &score},
		{Time: "14:30", Intent: "support", AgentID: "John Smith"},
		{Time: "14:28", Intent: "billing", AgentID: "Dana Wu"},
	})

	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0].Text != "Sales lead → Sarah Chen (ALPS: 85.2)" {
		t.Errorf("sales line = %q", lines[0].Text)
	}
	if lines[0].Icon != "✅" {
		t.Errorf("sales icon = %s, want ✅", lines[0].Icon)
	}
	if lines[1].Text != "Support → John Smith" {
		t.Errorf("support line = %q", lines[1].Text)
	}
	if lines[2].Icon != "ℹ️" {
		t.Errorf("unknown intent icon = %s, want ℹ️", lines[2].Icon)
	}
}

func TestLoadBadge(t *testing.T) {
	if got := LoadBadge(routing.LoadOverloaded); got.Icon != "🔴" {
		t.Errorf("overloaded icon = %s, want 🔴", got.Icon)
	}
	if got := LoadBadge(routing.LoadBusy); got.Icon != "🟡" {
		t.Errorf("busy icon = %s, want 🟡", got.Icon)
	}
	if got := LoadBadge(routing.LoadAvailable); got.Icon != "🟢" {
		t.Errorf("available icon = %s, want 🟢", got.Icon)
	}
}
