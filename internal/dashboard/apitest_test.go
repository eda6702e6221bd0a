package dashboard

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestAPITestPageCatalog(t *testing.T) {
	engine := stubEngine(t, nil)
	router := newRouter(newTestServer(t, engine.URL))

	rec := get(t, router, "/apitest")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"⚙️ API Test &amp; Configuration",
		"Current API URL",
		engine.URL + "/health",
		engine.URL + "/api/v1/route",
		engine.URL + "/api/v1/agents/status",
		engine.URL + "/api/v1/analytics/recent-routings",
		engine.URL + "/api/v1/webhook/chatwoot",
		engine.URL + "/docs",
		"🧪 Test All Endpoints",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
}

func TestAPITestRun(t *testing.T) {
	engine := stubEngine(t, map[string]http.HandlerFunc{
		"/api/v1/agents/status": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
		},
	})
	router := newRouter(newTestServer(t, engine.URL))

	rec := postForm(t, router, "/apitest/run", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "✅ <strong>Health:</strong> OK") {
		t.Error("expected health check to pass")
	}
	if !strings.Contains(body, "❌ <strong>Agent Status:</strong> 503") {
		t.Error("expected agent status check to report 503")
	}
	if !strings.Contains(body, `class="check-ok"`) || !strings.Contains(body, `class="check-bad"`) {
		t.Error("expected styled check rows")
	}
}

func TestAPITestRunEngineDown(t *testing.T) {
	router := newRouter(newTestServer(t, "http://localhost:1"))

	rec := postForm(t, router, "/apitest/run", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	if got := strings.Count(rec.Body.String(), "Connection failed"); got != 2 {
		t.Errorf("expected 2 failed checks, got %d", got)
	}
}

func TestAPITestURLRebind(t *testing.T) {
	first := stubEngine(t, nil)
	second := stubEngine(t, map[string]http.HandlerFunc{
		"/api/v1/agents/status": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"agents":{
				"sales":[{"name":"Rebound Agent","active_chats":1,"max_chats":5,"performance":90}],
				"support":[]
			}}`))
		},
	})
	router := newRouter(newTestServer(t, first.URL))

	form := url.Values{}
	form.Set("base_url", second.URL)

	rec := postForm(t, router, "/apitest/url", form.Encode())
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/apitest" {
		t.Errorf("expected redirect to /apitest, got %q", got)
	}

	// The catalog and all later engine calls use the new base.
	rec = get(t, router, "/apitest")
	if !strings.Contains(rec.Body.String(), second.URL+"/api/v1/route") {
		t.Error("expected the catalog to list the new base URL")
	}

	rec = get(t, router, "/agents")
	if !strings.Contains(rec.Body.String(), "Rebound Agent") {
		t.Error("expected the roster to come from the rebound engine")
	}
}

func TestAPITestURLRejectsInvalid(t *testing.T) {
	engine := stubEngine(t, nil)
	router := newRouter(newTestServer(t, engine.URL))

	for _, raw := range []string{"not a url", "ftp://files.example.com", ""} {
		form := url.Values{}
		form.Set("base_url", raw)

		rec := postForm(t, router, "/apitest/url", form.Encode())
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200 for %q, got %d", raw, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Enter a valid http or https URL.") {
			t.Errorf("expected a validation message for %q", raw)
		}
	}

	// The original binding is untouched.
	rec := get(t, router, "/apitest")
	if !strings.Contains(rec.Body.String(), engine.URL+"/health") {
		t.Error("expected the original base URL to survive rejected updates")
	}
}
