// Package dashboard serves the routing engine's operator UI: five
// server-rendered pages over data fetched from the engine per request,
// with demo fallbacks so the pages stay readable when the engine is
// down.
package dashboard

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/huenthong/smartrouting/internal/charts"
	"github.com/huenthong/smartrouting/internal/client"
	"github.com/huenthong/smartrouting/internal/config"
	"github.com/huenthong/smartrouting/internal/scenario"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server renders the dashboard pages. The engine base URL can be
// swapped at runtime from the API test page; everything else is fixed
// at startup.
type Server struct {
	cfg       *config.Config
	logger    zerolog.Logger
	renderer  charts.Renderer
	scenarios []scenario.Scenario
	validate  *validator.Validate
	tmpl      *template.Template
	httpc     *http.Client

	mu      sync.RWMutex
	baseURL string
}

// New creates a dashboard server.
func New(cfg *config.Config, renderer charts.Renderer, scenarios []scenario.Scenario, logger zerolog.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Server{
		cfg:       cfg,
		logger:    logger.With().Str("component", "dashboard").Logger(),
		renderer:  renderer,
		scenarios: scenarios,
		validate:  validator.New(),
		tmpl:      tmpl,
		httpc:     &http.Client{},
		baseURL:   strings.TrimRight(cfg.APIBaseURL, "/"),
	}, nil
}

// SetupRoutes registers all dashboard routes on the router
func (s *Server) SetupRoutes(r chi.Router) {
	r.Get("/", s.handleOverview)
	r.Get("/test", s.handleTestForm)
	r.Post("/test", s.handleTestSubmit)
	r.Get("/agents", s.handleAgents)
	r.Get("/analytics", s.handleAnalytics)
	r.Get("/apitest", s.handleAPITest)
	r.Post("/apitest/run", s.handleAPITestRun)
	r.Post("/apitest/url", s.handleAPITestURL)
	r.Get("/healthz", s.handleHealthz)
}

// client builds an engine client bound to the current base URL. Clients
// are immutable, so a URL swap never races an in-flight page render;
// the shared http.Client keeps connection reuse across rebuilds.
func (s *Server) client() *client.Client {
	s.mu.RLock()
	base := s.baseURL
	s.mu.RUnlock()

	return client.New(client.Config{
		BaseURL:    base,
		HTTPClient: s.httpc,
		Timeouts: client.Timeouts{
			Health:   s.cfg.HealthTimeout,
			Route:    s.cfg.RouteTimeout,
			Agents:   s.cfg.AgentsTimeout,
			Activity: s.cfg.FeedTimeout,
		},
	})
}

// setBaseURL swaps the engine base URL used by subsequent requests.
func (s *Server) setBaseURL(raw string) error {
	if err := s.validate.Var(raw, "required,http_url"); err != nil {
		return fmt.Errorf("invalid base URL %q: %w", raw, err)
	}

	trimmed := strings.TrimRight(raw, "/")
	s.mu.Lock()
	s.baseURL = trimmed
	s.mu.Unlock()

	s.logger.Info().Str("base_url", trimmed).Msg("routing engine URL changed")
	return nil
}

// render executes a page template. Output goes through a buffer so a
// template failure can still produce a clean 500 instead of a torn page.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error().Err(err).Str("template", name).Msg("template render failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// newPage assembles the fields shared by every page: nav state, the
// current base URL and a fresh engine health probe for the status pill.
func (s *Server) newPage(ctx context.Context, c *client.Client, active, heading string) page {
	return page{
		Title:   "Smart Routing Engine Dashboard",
		Heading: heading,
		Active:  active,
		BaseURL: c.BaseURL(),
		Health:  healthPill(c.CheckHealth(ctx)),
		Assets:  s.renderer.Assets(),
	}
}

// handleHealthz reports the dashboard's own liveness, distinct from the
// engine health shown in the header pill.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","service":"routing-dashboard"}`)
}
