package routing

// Channel is the inbound channel a routed message claims to originate from.
type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelWeb      Channel = "web"
	ChannelFacebook Channel = "facebook"
	ChannelTelegram Channel = "telegram"
)

// AllChannels lists every channel the routing engine accepts, in the order
// the test form offers them.
var AllChannels = []Channel{
	ChannelWhatsApp,
	ChannelWeb,
	ChannelFacebook,
	ChannelTelegram,
}

// Valid reports whether c is one of the accepted channels.
func (c Channel) Valid() bool {
	for _, ch := range AllChannels {
		if c == ch {
			return true
		}
	}
	return false
}

// Intent values the routing engine is known to return. The dashboard never
// rejects other values; these exist for the places that branch on them.
type Intent string

const (
	IntentSales   Intent = "sales"
	IntentSupport Intent = "support"
)

// Sentiment classification as returned on the wire (lowercase).
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Urgency classification as returned on the wire (lowercase).
type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

// PriorityLevel is the engine's own priority field on a routing result.
// Distinct from PriorityBand, which this dashboard derives from the ALPS
// score for display.
type PriorityLevel string

const (
	PriorityHigh   PriorityLevel = "high"
	PriorityMedium PriorityLevel = "medium"
	PriorityLow    PriorityLevel = "low"
)

// RoutingRequest is the payload submitted to POST /api/v1/route.
// Channel and IsRepeatCustomer are opaque to the dashboard; only the
// routing engine interprets them.
type RoutingRequest struct {
	ChatID           string  `json:"chat_id"`
	Message          string  `json:"message"`
	Channel          Channel `json:"channel"`
	IsRepeatCustomer bool    `json:"is_repeat_customer"`
}

// RoutingResult is the engine's response to a routed message. Every field
// may be absent or carry a value outside the known enums; consumers render
// placeholders rather than reject.
type RoutingResult struct {
	Intent         string             `json:"intent"`
	Sentiment      string             `json:"sentiment"`
	Urgency        string             `json:"urgency"`
	Confidence     float64            `json:"confidence"`
	ALPSScore      *float64           `json:"alps_score,omitempty"`
	PriorityLevel  PriorityLevel      `json:"priority_level,omitempty"`
	ScoreBreakdown map[string]float64 `json:"score_breakdown,omitempty"`
	AssignedAgent  string             `json:"assigned_agent"`
	Escalated      bool               `json:"escalated"`
	RoutingReason  string             `json:"routing_reason"`
}

// HasALPS reports whether the result carries an ALPS score for a sales
// intent, which is when the scoring panel is shown.
func (r RoutingResult) HasALPS() bool {
	return Intent(r.Intent) == IntentSales && r.ALPSScore != nil
}

// AgentStatus describes one agent's live load as reported by the engine.
type AgentStatus struct {
	Name        string  `json:"name"`
	ActiveChats int     `json:"active_chats"`
	MaxChats    int     `json:"max_chats"`
	Performance float64 `json:"performance"`
}

// LoadPercent derives the agent's load as a percentage of capacity. The
// engine does not clamp active chats to capacity, so values above 100 are
// possible and rendered as-is. A zero capacity reports zero load.
func (a AgentStatus) LoadPercent() float64 {
	if a.MaxChats <= 0 {
		return 0
	}
	return float64(a.ActiveChats) / float64(a.MaxChats) * 100
}

// AgentRoster groups agents by team the way the status endpoint returns
// them.
type AgentRoster struct {
	Sales   []AgentStatus `json:"sales"`
	Support []AgentStatus `json:"support"`
}

// ActivityEntry is one row of the recent-routings feed.
type ActivityEntry struct {
	Time      string   `json:"time"`
	Intent    string   `json:"intent"`
	AgentID   string   `json:"agent_id"`
	ALPSScore *float64 `json:"alps_score,omitempty"`
}

// LoadStatus classifies an agent's load for display.
type LoadStatus string

const (
	LoadAvailable  LoadStatus = "available"
	LoadBusy       LoadStatus = "busy"
	LoadOverloaded LoadStatus = "overloaded"
)

// Load classification thresholds, in percent. Boundaries belong to the
// higher tier: exactly 80 is overloaded, exactly 60 is busy.
const (
	LoadBusyThreshold       = 60.0
	LoadOverloadedThreshold = 80.0
)

// ClassifyLoad maps a load percentage onto a LoadStatus.
func ClassifyLoad(loadPct float64) LoadStatus {
	switch {
	case loadPct >= LoadOverloadedThreshold:
		return LoadOverloaded
	case loadPct >= LoadBusyThreshold:
		return LoadBusy
	default:
		return LoadAvailable
	}
}

// PriorityBand is the lead priority derived from an ALPS score.
type PriorityBand string

const (
	BandHigh     PriorityBand = "high"
	BandMedium   PriorityBand = "medium"
	BandStandard PriorityBand = "standard"
)

// ALPS banding thresholds. Boundaries belong to the higher band: exactly
// 80 is high, exactly 60 is medium.
const (
	ALPSHighThreshold   = 80.0
	ALPSMediumThreshold = 60.0
)

// BandForScore maps an ALPS score onto a PriorityBand.
func BandForScore(score float64) PriorityBand {
	switch {
	case score >= ALPSHighThreshold:
		return BandHigh
	case score >= ALPSMediumThreshold:
		return BandMedium
	default:
		return BandStandard
	}
}
