// Package resultsapi is the HTTP client for the career-skills Results API.
// It performs no retries; callers surface failures and let the user retry.
package resultsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arjun222-afk/careerprep/internal/schema"
	"github.com/arjun222-afk/careerprep/internal/store"
)

const maxBodyBytes = 4 << 20

// Client talks to the Results API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	events    store.EventRepo
	logger    *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithEventRepo records every call in the request log.
func WithEventRepo(repo store.EventRepo) Option {
	return func(c *Client) { c.events = repo }
}

// WithLogger sets the logger used for call diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client from cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	u, _ := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))

	c := &Client{
		baseURL:   u,
		http:      &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// call describes one request.
type call struct {
	method string
	path   string
	query  url.Values
	body   any
	schema *schema.Schema
}

// do sends the request, checks the status, validates against the schema and
// decodes into out. out may be nil.
func (c *Client) do(ctx context.Context, cl call, out any) (err error) {
	requestID := uuid.NewString()
	start := time.Now()
	status := 0

	defer func() {
		c.record(ctx, cl, requestID, status, time.Since(start), err)
	}()

	u := c.baseURL.JoinPath(cl.path)
	if len(cl.query) > 0 {
		u.RawQuery = cl.query.Encode()
	}

	var body io.Reader
	if cl.body != nil {
		b, mErr := json.Marshal(cl.body)
		if mErr != nil {
			return fmt.Errorf("%s: marshal request: %w", cl.path, mErr)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u.String(), body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", cl.path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Endpoint: cl.path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	status = resp.StatusCode

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &TransportError{Endpoint: cl.path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Endpoint: cl.path, StatusCode: resp.StatusCode, Body: snippet(raw)}
	}

	if err := cl.schema.Validate(raw); err != nil {
		return &SchemaError{Endpoint: cl.path, Schema: cl.schema.Name, Err: err}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Endpoint: cl.path, Err: err}
	}
	return nil
}

func (c *Client) record(ctx context.Context, cl call, requestID string, status int, latency time.Duration, err error) {
	attrs := []any{
		"method", cl.method,
		"endpoint", cl.path,
		"status", status,
		"latency_ms", latency.Milliseconds(),
		"request_id", requestID,
	}
	if err != nil {
		c.logger.Warn("results api call failed", append(attrs, "err", err)...)
	} else {
		c.logger.Debug("results api call", attrs...)
	}

	if c.events == nil {
		return
	}
	data := store.APIRequestEventData{
		RequestID:  requestID,
		Method:     cl.method,
		Endpoint:   cl.path,
		StatusCode: status,
		LatencyMs:  latency.Milliseconds(),
		Success:    err == nil,
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}
	// Recording must never fail the call, and a cancelled call still gets logged.
	if logErr := c.events.AppendAPIRequest(context.WithoutCancel(ctx), data); logErr != nil {
		c.logger.Warn("failed to record API request event", "err", logErr)
	}
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}

// rejected converts a success=false envelope into an error.
func rejected(endpoint string, success bool, msg string) error {
	if success {
		return nil
	}
	return &RejectedError{Endpoint: endpoint, Message: msg}
}

// IsRejected reports whether err is a success=false reply and returns its message.
func IsRejected(err error) (string, bool) {
	var re *RejectedError
	if errors.As(err, &re) {
		return re.Message, true
	}
	return "", false
}
