// Package api is the HTTP client every backend call goes through.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/proconsult/onboard/internal/config"
	"github.com/proconsult/onboard/internal/log"
	"github.com/proconsult/onboard/internal/tracing"
)

// Header names set on every request.
const (
	HeaderRequestID = "X-Request-ID"
	HeaderUserAgent = "User-Agent"
)

// TokenSource supplies the bearer token.
type TokenSource interface {
	// Token returns the stored token or "" without acquiring one.
	Token() string
	// EnsureToken returns a token, acquiring one if none is stored.
	EnsureToken(ctx context.Context) (string, error)
}

// Request describes one API call.
type Request struct {
	Method string
	Path   string
	// Body is JSON-encoded when non-nil.
	Body any
	// SkipAuth omits the Authorization header.
	SkipAuth bool
	// BaseURL overrides the identity service URL.
	BaseURL string
}

// Options configures a Client.
type Options struct {
	Services   config.ServiceURLs
	Timeout    time.Duration
	Version    string
	HTTPClient *http.Client
	Tracer     trace.Tracer
}

// Client sends JSON requests to the identity and IFRS 16 services.
type Client struct {
	services  config.ServiceURLs
	timeout   time.Duration
	userAgent string
	http      *http.Client
	tracer    trace.Tracer

	mu     sync.RWMutex
	tokens TokenSource
}

// NewClient creates a Client. Zero options fall back to defaults.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	version := opts.Version
	if version == "" {
		version = "dev"
	}
	return &Client{
		services:  opts.Services,
		timeout:   timeout,
		userAgent: "onboard/" + version,
		http:      hc,
		tracer:    opts.Tracer,
	}
}

// SetTokenSource installs the token source used for Authorization headers.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = ts
}

func (c *Client) tokenSource() TokenSource {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tokens
}

// IdentityURL returns the identity service base URL.
func (c *Client) IdentityURL() string { return c.services.Identity }

// IFRS16URL returns the lease service base URL.
func (c *Client) IFRS16URL() string { return c.services.IFRS16 }

// Request performs r and returns the raw JSON response body. An empty 2xx
// body is returned as JSON null. Failures are always *Error.
func (c *Client) Request(ctx context.Context, r Request) (json.RawMessage, error) {
	base := r.BaseURL
	if base == "" {
		base = c.services.Identity
	}
	url := strings.TrimRight(base, "/") + r.Path
	requestID := uuid.NewString()

	ctx, span := tracing.StartRequest(ctx, c.tracer, r.Method, r.Path, requestID)
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	status, body, err := c.do(ctx, r, url, requestID)
	tracing.EndRequest(span, status, err)
	if err != nil {
		log.ErrorErr(log.CatAPI, "Request failed", err,
			"method", r.Method, "path", r.Path, "request_id", requestID)
		return nil, err
	}
	log.Debug(log.CatAPI, "Request completed",
		"method", r.Method, "path", r.Path, "status", status, "request_id", requestID)
	return body, nil
}

func (c *Client) do(ctx context.Context, r Request, url, requestID string) (int, json.RawMessage, error) {
	var reader io.Reader
	if r.Body != nil {
		payload, err := json.Marshal(r.Body)
		if err != nil {
			return 0, nil, &Error{Message: MsgEncoding, Details: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, url, reader)
	if err != nil {
		return 0, nil, &Error{Message: MsgNetwork, Details: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)
	req.Header.Set(HeaderUserAgent, c.userAgent)
	if !r.SkipAuth {
		if ts := c.tokenSource(); ts != nil {
			if tok := ts.Token(); tok != "" {
				req.Header.Set("Authorization", "Bearer "+tok)
			}
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, transportError(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, transportError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, nil, httpError(resp.StatusCode, decodeDetails(raw))
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return resp.StatusCode, json.RawMessage("null"), nil
	}
	return resp.StatusCode, json.RawMessage(raw), nil
}

func transportError(ctx context.Context, err error) *Error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{Message: MsgTimeout, Details: context.DeadlineExceeded}
	}
	return &Error{Message: MsgNetwork, Details: err}
}

// decodeDetails returns the JSON-decoded body, the raw text when it is not
// JSON, or nil when empty.
func decodeDetails(raw []byte) any {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

// AuthenticatedRequest ensures a token is available and then performs r.
func (c *Client) AuthenticatedRequest(ctx context.Context, r Request) (json.RawMessage, error) {
	ts := c.tokenSource()
	if ts == nil {
		return nil, errors.New("api: no token source configured")
	}
	if _, err := ts.EnsureToken(ctx); err != nil {
		return nil, err
	}
	return c.Request(ctx, r)
}

// Doer is satisfied by *Client.
type Doer interface {
	Request(ctx context.Context, r Request) (json.RawMessage, error)
	AuthenticatedRequest(ctx context.Context, r Request) (json.RawMessage, error)
	IFRS16URL() string
}

// Decode unmarshals raw into T.
func Decode[T any](raw json.RawMessage) (T, error) {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decoding response: %w", err)
	}
	return out, nil
}

// Do performs an authenticated request and decodes the response into T.
func Do[T any](ctx context.Context, d Doer, r Request) (T, error) {
	raw, err := d.AuthenticatedRequest(ctx, r)
	if err != nil {
		var zero T
		return zero, err
	}
	return Decode[T](raw)
}
