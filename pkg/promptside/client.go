package promptside

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Config carries the credential for one API client. Immutable after
// construction; it determines the token endpoint and base API URL.
type Config struct {
	ClientID     string
	ClientSecret string

	// Scope is the space-delimited OAuth2 scope requested with each token.
	Scope string

	// Tenant is the optional tenant short name, used as a subdomain prefix
	// on the API base URL.
	Tenant string

	// Env selects production or test. Defaults to production.
	Env Env
}

// Client is an authenticating HTTP client for the Promptside REST APIs. It
// owns token acquisition (see Authenticate), injects the bearer token on
// outgoing requests, retries exactly once after a token-expiry 401, and
// normalises error responses into the typed error taxonomy.
//
// The held bearer token is the only mutable shared state. Concurrent calls
// observing an expired token each trigger their own re-authentication; the
// extra token request is accepted rather than coalesced, and the last writer
// wins.
type Client struct {
	// BaseURL, TokenURL and WebhookPublicKey default from the configured
	// environment and may be overridden, e.g. to point tests at a local
	// server.
	BaseURL          string
	TokenURL         string
	WebhookPublicKey []byte

	HTTPClient *http.Client

	// OnAuthFailure, when set, is invoked with the classified failure
	// before Authenticate propagates it. It lets the host process decide
	// whether to crash, alert or retry at a higher level.
	OnAuthFailure func(*AuthError)

	env          Env
	scope        string
	clientID     string
	clientSecret string
	logger       *slog.Logger

	mu          sync.RWMutex
	bearerToken string
}

// New builds a Client for the configured environment.
func New(cfg Config) *Client {
	env := cfg.Env
	if env == "" {
		env = EnvProduction
	}

	return &Client{
		BaseURL:          env.baseURL(cfg.Tenant),
		TokenURL:         env.tokenURL(),
		WebhookPublicKey: env.webhookPublicKey(),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		env:          env,
		scope:        cfg.Scope,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		logger:       slog.New(slog.DiscardHandler),
	}
}

// SetLogger attaches a logger for debug-level request tracing.
func (c *Client) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// Env returns the environment the client was built for.
func (c *Client) Env() Env { return c.env }

// BearerToken returns the currently held token, or "" before the first
// successful Authenticate.
func (c *Client) BearerToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bearerToken
}

// SetBearerToken replaces the held token, e.g. with one obtained elsewhere.
func (c *Client) SetBearerToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bearerToken = token
}

// Authenticated reports whether a bearer token is currently held.
func (c *Client) Authenticated() bool {
	return c.BearerToken() != ""
}

// Request describes one API call. The zero Method means GET.
type Request struct {
	Method string

	// URL is resolved against BaseURL unless it is already absolute, so
	// link hrefs returned by the API can be passed through unchanged.
	URL string

	Body   []byte
	Header http.Header
}

// Response is a fully-read API response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Do executes the request, re-authenticating and retrying once if an
// authenticated call hits a 401 bearing a WWW-Authenticate challenge. The
// retried outcome is final; there is no further retry loop.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	token := c.BearerToken()
	authenticated := token != ""

	c.logger.Debug("sending request", "method", c.methodOf(req), "url", req.URL)

	resp, err := c.send(ctx, req, token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusBadRequest {
		return resp, nil
	}

	if authenticated &&
		resp.StatusCode == http.StatusUnauthorized &&
		resp.Header.Get("WWW-Authenticate") != "" {
		// Token has expired: refresh it, then replay the request once.
		fresh, err := c.Authenticate(ctx)
		if err != nil {
			return nil, err
		}

		retried, err := c.send(ctx, req, fresh)
		if err != nil {
			return nil, err
		}
		if retried.StatusCode >= http.StatusBadRequest {
			return nil, c.normalizeError(req, retried)
		}
		return retried, nil
	}

	return nil, c.normalizeError(req, resp)
}

// GetJSON fetches an href and returns the response body. This is the
// halx.Client capability entities use to resolve linked relations.
func (c *Client) GetJSON(ctx context.Context, href string) ([]byte, error) {
	resp, err := c.Do(ctx, Request{Method: http.MethodGet, URL: href})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (c *Client) methodOf(req Request) string {
	if req.Method == "" {
		return http.MethodGet
	}
	return req.Method
}

// resolveURL makes the request URL absolute against BaseURL.
func (c *Client) resolveURL(u string) string {
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return strings.TrimSuffix(c.BaseURL, "/") + u
}

func (c *Client) send(ctx context.Context, req Request, token string) (*Response, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	method := c.methodOf(req)
	target := c.resolveURL(req.URL)

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("promptside: build request: %w", err)
	}

	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	httpResp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       respBody,
	}, nil
}

// normalizeError turns an HTTP error response into a typed error. Problem
// document bodies become a ProblemError carrying the parsed structure and a
// human-readable message; everything else becomes a plain APIError.
func (c *Client) normalizeError(req Request, resp *Response) error {
	c.logger.Debug("request returned an error",
		"url", req.URL,
		"status", resp.StatusCode,
	)

	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err == nil && mediaType == ProblemContentType {
		if problem, err := ParseProblem(resp.Body); err == nil {
			return &ProblemError{StatusCode: resp.StatusCode, Problem: problem}
		}
	}

	return &APIError{StatusCode: resp.StatusCode, Body: resp.Body}
}
