package dashboard

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/huenthong/smartrouting/internal/routing"
)

func routeForm(message, channel string, repeat bool) string {
	form := url.Values{}
	form.Set("action", "route")
	form.Set("scenario", "🔥 Urgent Sales Lead")
	form.Set("message", message)
	form.Set("channel", channel)
	if repeat {
		form.Set("is_repeat", "true")
	}
	return form.Encode()
}

func TestTestFormDefaults(t *testing.T) {
	engine := stubEngine(t, nil)
	router := newRouter(newTestServer(t, engine.URL))

	rec := get(t, router, "/test")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"🧪 Interactive Routing Test",
		`<option value="🔥 Urgent Sales Lead" selected>`,
		"budget around RM800-1200",
		"Message Length:",
		`<option value="whatsapp" selected>`,
		"🚀 Test Routing",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected form page to contain %q", want)
		}
	}
}

func TestTestLoadScenario(t *testing.T) {
	var routeCalls int32
	engine := stubEngine(t, map[string]http.HandlerFunc{
		"/api/v1/route": func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&routeCalls, 1)
			w.Write([]byte(`{}`))
		},
	})
	router := newRouter(newTestServer(t, engine.URL))

	form := url.Values{}
	form.Set("action", "load")
	form.Set("scenario", "💼 Premium Lead")
	form.Set("message", "stale text from before")
	form.Set("channel", "web")

	rec := postForm(t, router, "/test", form.Encode())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "luxury studio apartment near KLCC") {
		t.Error("expected the scenario message to replace the form message")
	}
	if strings.Contains(body, "stale text from before") {
		t.Error("expected the previous message to be discarded")
	}
	if !strings.Contains(body, `<option value="💼 Premium Lead" selected>`) {
		t.Error("expected the loaded scenario to stay selected")
	}
	if got := atomic.LoadInt32(&routeCalls); got != 0 {
		t.Errorf("expected no routing calls for a scenario load, got %d", got)
	}
}

func TestTestSubmitSuccess(t *testing.T) {
	engine := stubEngine(t, map[string]http.HandlerFunc{
		"/api/v1/route": func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}

			var req routing.RoutingRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("failed to decode routing request: %v", err)
			}
			if !strings.HasPrefix(req.ChatID, "test_") {
				t.Errorf("expected generated chat id, got %q", req.ChatID)
			}
			if req.Message != "I need a room near KLCC urgently" {
				t.Errorf("unexpected message %q", req.Message)
			}
			if req.Channel != routing.ChannelWhatsApp {
				t.Errorf("expected whatsapp channel, got %q", req.Channel)
			}
			if !req.IsRepeatCustomer {
				t.Error("expected is_repeat_customer to be true")
			}

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"intent":"sales","sentiment":"positive","urgency":"high","confidence":0.91,
				"alps_score":85.2,
				"score_breakdown":{"budget_fit":0.95,"urgency_score":0.88},
				"assigned_agent":"Sarah Chen","escalated":false,
				"routing_reason":"High ALPS score routed to senior agent"
			}`))
		},
	})
	router := newRouter(newTestServer(t, engine.URL))

	rec := postForm(t, router, "/test", routeForm("I need a room near KLCC urgently", "whatsapp", true))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"✅ Message Processed Successfully!",
		">Sales<",
		"🟢 Positive",
		"🔴 High",
		"91.0%",
		"🔥 HIGH PRIORITY LEAD",
		"Route to top sales agent immediately!",
		"ALPS: 85.2 / 100",
		"Budget Fit: 0.95",
		"Urgency Score: 0.88",
		"Sarah Chen",
		"Standard Routing",
		"High ALPS score routed to senior agent",
		"View Raw Response",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected result page to contain %q", want)
		}
	}
}

func TestTestSubmitEscalated(t *testing.T) {
	engine := stubEngine(t, map[string]http.HandlerFunc{
		"/api/v1/route": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"intent":"sales","sentiment":"neutral","urgency":"high","confidence":0.88,
				"alps_score":93.5,"assigned_agent":"Manager","escalated":true,
				"routing_reason":"Score above escalation threshold"
			}`))
		},
	})
	router := newRouter(newTestServer(t, engine.URL))

	rec := postForm(t, router, "/test", routeForm("Premium lead", "web", false))

	body := rec.Body.String()
	if !strings.Contains(body, "Escalated to Manager") {
		t.Error("expected escalation banner")
	}
	if strings.Contains(body, "Standard Routing") {
		t.Error("expected no standard-routing banner for an escalated result")
	}
}

func TestTestSubmitValidation(t *testing.T) {
	var routeCalls int32
	engine := stubEngine(t, map[string]http.HandlerFunc{
		"/api/v1/route": func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&routeCalls, 1)
			w.Write([]byte(`{}`))
		},
	})
	router := newRouter(newTestServer(t, engine.URL))

	tests := []struct {
		name    string
		message string
		channel string
		wantErr string
	}{
		{"empty message", "", "whatsapp", "Message is required."},
		{"oversized message", strings.Repeat("a", 4001), "whatsapp", "Message is too long (4000 characters max)."},
		{"unknown channel", "hello", "carrier-pigeon", "Choose one of the supported channels."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postForm(t, router, "/test", routeForm(tt.message, tt.channel, false))
			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.wantErr) {
				t.Errorf("expected form error %q", tt.wantErr)
			}
		})
	}

	if got := atomic.LoadInt32(&routeCalls); got != 0 {
		t.Errorf("expected no routing calls for invalid input, got %d", got)
	}
}

func TestTestSubmitAPIError(t *testing.T) {
	engine := stubEngine(t, map[string]http.HandlerFunc{
		"/api/v1/route": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"detail":"channel not supported"}`))
		},
	})
	router := newRouter(newTestServer(t, engine.URL))

	rec := postForm(t, router, "/test", routeForm("hello", "web", false))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "API Error: 422") {
		t.Error("expected the HTTP error banner")
	}
	if !strings.Contains(body, "channel not supported") {
		t.Error("expected the response body snippet")
	}
	if strings.Contains(body, "Message Processed Successfully") {
		t.Error("expected no success banner on failure")
	}
	// The submitted message stays in the form for a retry.
	if !strings.Contains(body, ">hello</textarea>") {
		t.Error("expected the message to be echoed back into the form")
	}
}

func TestTestSubmitConnectionError(t *testing.T) {
	router := newRouter(newTestServer(t, "http://localhost:1"))

	rec := postForm(t, router, "/test", routeForm("hello", "web", false))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	if !strings.Contains(rec.Body.String(), "Connection Error:") {
		t.Error("expected a connection error banner")
	}
}
