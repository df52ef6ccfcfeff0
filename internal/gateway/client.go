package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fuzumoe/url-insight-dashboard/internal/config"
	"github.com/fuzumoe/url-insight-dashboard/internal/metrics"
	"github.com/fuzumoe/url-insight-dashboard/internal/models"
	"github.com/fuzumoe/url-insight-dashboard/internal/tracing"
)

// Client is the HTTP implementation of JobGateway. The session token is
// injected at construction and attached to every request; the client
// never reads it from ambient state.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *slog.Logger
	metrics *metrics.DashboardMetrics
}

// Option configures the Client
type Option func(*Client)

// WithLogger sets the logger
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithMetrics sets the metrics collector
func WithMetrics(m *metrics.DashboardMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a gateway client for the configured service.
func NewClient(cfg config.GatewayConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	c := &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		http: &http.Client{
			Timeout:   timeout,
			Transport: tracing.HTTPClientMiddleware()(http.DefaultTransport),
		},
		log: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type createRequest struct {
	URL string `json:"url"`
}

type createResponse struct {
	ID string `json:"id"`
}

// Create implements JobGateway.
func (c *Client) Create(ctx context.Context, rawURL string) (string, error) {
	var resp createResponse
	if err := c.do(ctx, "create", http.MethodPost, "/api/urls", createRequest{URL: rawURL}, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// Get implements JobGateway.
func (c *Client) Get(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	if err := c.do(ctx, "get", http.MethodGet, "/api/urls/"+url.PathEscape(id), nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// List implements JobGateway.
func (c *Client) List(ctx context.Context, q models.ListQuery) (*models.JobPage, error) {
	var page models.JobPage
	if err := c.do(ctx, "list", http.MethodGet, "/api/urls?"+listParams(q).Encode(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// StartAnalysis implements JobGateway.
func (c *Client) StartAnalysis(ctx context.Context, id string) error {
	return c.do(ctx, "start", http.MethodPut, "/api/urls/"+url.PathEscape(id)+"/start", nil, nil)
}

// StopAnalysis implements JobGateway.
func (c *Client) StopAnalysis(ctx context.Context, id string) error {
	return c.do(ctx, "stop", http.MethodPut, "/api/urls/"+url.PathEscape(id)+"/stop", nil, nil)
}

// Delete implements JobGateway.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, "delete", http.MethodDelete, "/api/urls/"+url.PathEscape(id), nil, nil)
}

// Results implements JobGateway.
func (c *Client) Results(ctx context.Context, id string) (*models.AnalysisDetail, error) {
	var detail models.AnalysisDetail
	if err := c.do(ctx, "results", http.MethodGet, "/api/urls/"+url.PathEscape(id)+"/results", nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// listParams translates a ListQuery into the service's query string.
// Absent predicates produce no parameter at all.
func listParams(q models.ListQuery) url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("page_size", strconv.Itoa(q.PageSize))

	f := q.Filters
	if f.Status != nil {
		params.Set("status", string(*f.Status))
	}
	if f.HasLoginForm != nil {
		params.Set("has_login_form", strconv.FormatBool(*f.HasLoginForm))
	}
	if f.HasBrokenLinks != nil {
		params.Set("has_broken_links", strconv.FormatBool(*f.HasBrokenLinks))
	}
	if f.LatestOnly != nil {
		params.Set("latest_only", strconv.FormatBool(*f.LatestOnly))
	}
	if f.Search != "" {
		params.Set("search", f.Search)
	}

	return params
}

// do performs one request against the service and decodes the response
// into out when out is non-nil. op is the low-cardinality operation
// name used as the metric label.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.RecordGatewayOperation(op, false, time.Since(start))
		c.log.Debug("Gateway request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err))
		return err
	}
	defer resp.Body.Close()

	c.metrics.RecordGatewayOperation(op, resp.StatusCode < 400, time.Since(start))
	c.log.Debug("Gateway request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// errorResponse is the error body shape the service uses.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// decodeError extracts the service's message from a failed response,
// falling back to the raw body or status when it is not JSON.
func decodeError(resp *http.Response) error {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode}
	}

	var body errorResponse
	if err := json.Unmarshal(data, &body); err == nil {
		msg := body.Error
		if msg == "" {
			msg = body.Message
		}
		if msg != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: msg}
		}
	}

	msg := string(bytes.TrimSpace(data))
	if msg == "" {
		return &APIError{StatusCode: resp.StatusCode}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

var _ JobGateway = (*Client)(nil)
