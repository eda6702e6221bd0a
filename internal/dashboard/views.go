package dashboard

import (
	"errors"
	"strconv"

	"github.com/huenthong/smartrouting/internal/client"
)

// page carries the fields every template needs: titles, nav state, the
// engine status pill and any demo-data notice.
type page struct {
	Title   string
	Heading string
	Active  string
	BaseURL string
	Health  statusPill
	Assets  []string
	Notice  string
}

// statusPill is the engine status indicator in the masthead.
type statusPill struct {
	Icon  string
	Label string
	Tone  string
}

func healthPill(status client.HealthStatus) statusPill {
	switch status {
	case client.HealthOnline:
		return statusPill{Icon: "🟢", Label: "API Online", Tone: "ok"}
	case client.HealthError:
		return statusPill{Icon: "🔴", Label: "API Error", Tone: "bad"}
	default:
		return statusPill{Icon: "🔴", Label: "API Offline", Tone: "bad"}
	}
}

// errorView is a failed engine call prepared for display: the headline
// plus the response body when there is one worth showing.
type errorView struct {
	Message string
	Body    string
}

func errorViewFrom(err error) *errorView {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return &errorView{Message: apiErr.Display(), Body: apiErr.Body}
	}
	return &errorView{Message: "Connection Error: " + err.Error()}
}

// metricCard is one headline number with its day-over-day delta.
type metricCard struct {
	Icon  string
	Label string
	Value string
	Delta string
	Tone  string
}

// delta renders a signed change as an arrow plus magnitude. The tone
// follows the sign, not whether the change is good.
func delta(v float64, unit string) (string, string) {
	arrow, tone := "▲", "up"
	if v < 0 {
		arrow, tone = "▼", "down"
		v = -v
	}

	text := arrow + " " + trimFloat(v)
	if unit != "" {
		text += " " + unit
	}
	return text, tone
}

// trimFloat prints a float with no trailing zeros.
func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
