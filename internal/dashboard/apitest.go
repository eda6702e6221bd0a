package dashboard

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/huenthong/smartrouting/internal/client"
)

type apiTestData struct {
	page
	Endpoints  []endpointRow
	WebhookURL string
	DocsURL    string
	RanChecks  bool
	Results    []checkRow
	URLError   string
}

type endpointRow struct {
	Name string
	URL  string
}

type checkRow struct {
	OK     bool
	Icon   string
	Name   string
	Detail string
}

// handleAPITest renders the endpoint catalog and integration URLs.
func (s *Server) handleAPITest(w http.ResponseWriter, r *http.Request) {
	c := s.client()
	s.render(w, "apitest.html", s.apiTestPage(r, c))
}

// handleAPITestRun probes the engine's read endpoints and renders each
// outcome alongside the catalog.
func (s *Server) handleAPITestRun(w http.ResponseWriter, r *http.Request) {
	c := s.client()
	data := s.apiTestPage(r, c)
	data.RanChecks = true

	for _, chk := range c.TestEndpoints(r.Context()) {
		row := checkRow{Name: chk.Name}
		switch {
		case chk.OK():
			row.OK, row.Icon, row.Detail = true, "✅", "OK"
		case chk.Err != nil:
			row.Icon, row.Detail = "❌", "Connection failed"
		default:
			row.Icon, row.Detail = "❌", strconv.Itoa(chk.Status)
		}
		data.Results = append(data.Results, row)
	}

	s.logger.Info().Int("checks", len(data.Results)).Msg("endpoint self-test completed")
	s.render(w, "apitest.html", data)
}

// handleAPITestURL rebinds the dashboard to a different engine URL. The
// swap takes effect for all later requests; nothing already in flight
// is touched.
func (s *Server) handleAPITestURL(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	raw := strings.TrimSpace(r.PostFormValue("base_url"))
	if err := s.setBaseURL(raw); err != nil {
		s.logger.Warn().Err(err).Msg("rejected engine URL")
		data := s.apiTestPage(r, s.client())
		data.URLError = "Enter a valid http or https URL."
		s.render(w, "apitest.html", data)
		return
	}

	http.Redirect(w, r, "/apitest", http.StatusSeeOther)
}

func (s *Server) apiTestPage(r *http.Request, c *client.Client) apiTestData {
	return apiTestData{
		page: s.newPage(r.Context(), c, "apitest", "⚙️ API Test & Configuration"),
		Endpoints: []endpointRow{
			{Name: "Health Check", URL: c.URL(client.PathHealth)},
			{Name: "Route Message", URL: c.URL(client.PathRoute)},
			{Name: "Agent Status", URL: c.URL(client.PathAgentStatus)},
			{Name: "Recent Routings", URL: c.URL(client.PathRecentRoutings)},
			{Name: "Chatwoot Webhook", URL: c.URL(client.PathWebhook)},
			{Name: "API Documentation", URL: c.URL(client.PathDocs)},
		},
		WebhookURL: c.URL(client.PathWebhook),
		DocsURL:    c.URL(client.PathDocs),
	}
}
