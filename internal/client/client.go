// Package client wraps outbound HTTP calls to the smart routing engine.
// Every operation applies its own bounded timeout, captures failures into
// a typed APIError and never retries.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/huenthong/smartrouting/internal/routing"
)

// Endpoint paths on the routing engine. The webhook and docs paths are
// listed on the API Test page but never called from here.
const (
	PathHealth         = "/health"
	PathRoute          = "/api/v1/route"
	PathAgentStatus    = "/api/v1/agents/status"
	PathRecentRoutings = "/api/v1/analytics/recent-routings"
	PathWebhook        = "/api/v1/webhook/chatwoot"
	PathDocs           = "/docs"
)

// Timeouts bounds each operation class.
type Timeouts struct {
	Health   time.Duration
	Route    time.Duration
	Agents   time.Duration
	Activity time.Duration
}

// DefaultTimeouts returns the per-operation timeouts: short reads, a
// longer window for the routing submission which runs an LLM upstream.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Health:   5 * time.Second,
		Route:    15 * time.Second,
		Agents:   10 * time.Second,
		Activity: 5 * time.Second,
	}
}

// Config configures a routing engine client.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client // optional; shared so rebinds reuse connections
	Timeouts   Timeouts     // zero fields take the defaults
}

// Client is an HTTP client for the routing engine API. It is immutable
// after construction; the dashboard builds a fresh one per render pass
// from whatever base URL is currently configured.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeouts   Timeouts
}

// New creates a routing engine client.
func New(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}

	t := cfg.Timeouts
	def := DefaultTimeouts()
	if t.Health == 0 {
		t.Health = def.Health
	}
	if t.Route == 0 {
		t.Route = def.Route
	}
	if t.Agents == 0 {
		t.Agents = def.Agents
	}
	if t.Activity == 0 {
		t.Activity = def.Activity
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: hc,
		timeouts:   t,
	}
}

// BaseURL returns the base URL this client is bound to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL joins an endpoint path onto the base URL, for display on the API
// Test page.
func (c *Client) URL(path string) string {
	return c.baseURL + path
}

// HealthStatus is the tri-state result of a health check.
type HealthStatus string

const (
	HealthOnline  HealthStatus = "online"  // engine answered 200
	HealthError   HealthStatus = "error"   // engine answered non-200
	HealthOffline HealthStatus = "offline" // engine unreachable
)

// CheckHealth reports whether the engine answers its health endpoint.
// Failures collapse into the status; no error escapes to the caller.
func (c *Client) CheckHealth(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Health)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(PathHealth), nil)
	if err != nil {
		return HealthOffline
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return HealthOffline
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return HealthError
	}
	return HealthOnline
}

// SubmitMessage routes a test message through the engine.
func (c *Client) SubmitMessage(ctx context.Context, req routing.RoutingRequest) (routing.RoutingResult, error) {
	var result routing.RoutingResult

	payload, err := json.Marshal(req)
	if err != nil {
		return result, fmt.Errorf("failed to marshal routing request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Route)
	defer cancel()

	body, apiErr := c.do(ctx, http.MethodPost, PathRoute, nil, payload)
	if apiErr != nil {
		return result, apiErr
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return result, malformed(PathRoute, body, err)
	}
	return result, nil
}

// FetchAgentStatus retrieves the live agent roster grouped by team.
func (c *Client) FetchAgentStatus(ctx context.Context) (routing.AgentRoster, error) {
	var roster routing.AgentRoster

	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Agents)
	defer cancel()

	body, apiErr := c.do(ctx, http.MethodGet, PathAgentStatus, nil, nil)
	if apiErr != nil {
		return roster, apiErr
	}

	var resp struct {
		Agents routing.AgentRoster `json:"agents"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return roster, malformed(PathAgentStatus, body, err)
	}
	return resp.Agents, nil
}

// FetchRecentRoutings retrieves up to limit recent routing decisions.
func (c *Client) FetchRecentRoutings(ctx context.Context, limit int) ([]routing.ActivityEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Activity)
	defer cancel()

	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	body, apiErr := c.do(ctx, http.MethodGet, PathRecentRoutings, query, nil)
	if apiErr != nil {
		return nil, apiErr
	}

	var resp struct {
		Routings []routing.ActivityEntry `json:"routings"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, malformed(PathRecentRoutings, body, err)
	}
	return resp.Routings, nil
}

// EndpointCheck is the outcome of one endpoint self-test.
type EndpointCheck struct {
	Name   string
	Path   string
	Status int
	Err    error
}

// OK reports whether the endpoint answered 200.
func (ec EndpointCheck) OK() bool {
	return ec.Err == nil && ec.Status == http.StatusOK
}

// TestEndpoints probes the engine's read endpoints one after another and
// reports each outcome. Used by the API Test page.
func (c *Client) TestEndpoints(ctx context.Context) []EndpointCheck {
	checks := []EndpointCheck{
		{Name: "Health", Path: PathHealth},
		{Name: "Agent Status", Path: PathAgentStatus},
	}

	for i := range checks {
		probeCtx, cancel := context.WithTimeout(ctx, c.timeouts.Health)
		status, err := c.probe(probeCtx, checks[i].Path)
		cancel()

		checks[i].Status = status
		checks[i].Err = err
	}
	return checks
}

func (c *Client) probe(ctx context.Context, path string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(path), nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, connectionError(path, "", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

// do performs one request and returns the response body on HTTP 200, or
// an *APIError describing the failure.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload []byte) ([]byte, *APIError) {
	target := c.URL(path)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	requestID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, &APIError{Kind: ErrConnection, Conn: ConnOther, Endpoint: path, RequestID: requestID, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, connectionError(path, requestID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, connectionError(path, requestID, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			Kind:      ErrHTTP,
			Status:    resp.StatusCode,
			Body:      snippet(body),
			Endpoint:  path,
			RequestID: requestID,
		}
	}

	return body, nil
}

func connectionError(path, requestID string, err error) *APIError {
	return &APIError{
		Kind:      ErrConnection,
		Conn:      classifyConn(err),
		Endpoint:  path,
		RequestID: requestID,
		Err:       err,
	}
}

func malformed(path string, body []byte, err error) *APIError {
	return &APIError{
		Kind:     ErrMalformed,
		Body:     snippet(body),
		Endpoint: path,
		Err:      err,
	}
}

// classifyConn buckets a transport failure for display.
func classifyConn(err error) ConnKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return ConnTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ConnTimeout
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ConnDNS
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return ConnRefused
	}
	return ConnOther
}

const maxErrBody = 300

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrBody {
		return s[:maxErrBody] + "…"
	}
	return s
}
