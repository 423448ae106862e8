// Package http provides the HTTP transport used to talk to the Canvas REST API.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/edukit-io/canvas-client/internal/constants"
	"github.com/edukit-io/canvas-client/pkg/canvas"
	"github.com/hashicorp/go-retryablehttp"
)

// TokenManager provides access tokens for API authentication.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
}

// Request represents an HTTP request to the Canvas API.
type Request struct {
	Method   string
	Path     string
	Query    url.Values
	Body     interface{}
	Form     []canvas.FormField
	Headers  map[string]string
	SkipAuth bool
}

// Response represents an HTTP response from the Canvas API.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Links      canvas.PageLinks
}

// Client is an HTTP client for the Canvas API with retry support.
type Client struct {
	baseURL      string
	tokenManager TokenManager
	httpClient   *retryablehttp.Client
	logger       canvas.Logger
	debug        bool
	userAgent    string
	interceptors *canvas.InterceptorChain
	cache        *canvas.CacheManager
	cacheTTL     time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger canvas.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig configures the retry behavior.
func WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = maxRetries
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithInterceptors installs a chain that runs around every request. Request
// interceptors see the outgoing headers after authentication; response
// interceptors see the decoded status, headers, body and API error.
func WithInterceptors(chain *canvas.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// WithCache serves eligible GET responses from the given manager instead of
// the network. A non-positive ttl falls back to the default cache TTL.
func WithCache(manager *canvas.CacheManager, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = manager

		if ttl <= 0 {
			ttl = constants.DefaultCacheTTL
		}

		c.cacheTTL = ttl
	}
}

// NewClient creates a new Canvas API HTTP client.
func NewClient(baseURL string, tokenManager TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.Logger = nil

	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		tokenManager: tokenManager,
		httpClient:   retryClient,
		userAgent:    "canvas-client/1.0",
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes an HTTP request against the Canvas API.
//
//nolint:funlen // Request assembly, execution and decoding are one sequence
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	cacheable := c.cache != nil && req.Method == http.MethodGet && !req.SkipAuth

	var cacheKey string

	if cacheable {
		cacheKey = c.cacheKey(req)
		if cached := c.cachedResponseFor(ctx, cacheKey); cached != nil {
			return cached, nil
		}
	}

	// Pagination follows absolute Link-header URLs
	fullURL := c.baseURL + req.Path
	if strings.HasPrefix(req.Path, "http://") || strings.HasPrefix(req.Path, "https://") {
		fullURL = req.Path
	}

	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)

	switch {
	case len(req.Form) > 0:
		values := url.Values{}
		for _, field := range req.Form {
			values.Add(field.Name, field.Contents)
		}

		body = strings.NewReader(values.Encode())
		contentType = "application/x-www-form-urlencoded"
	case req.Body != nil:
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	if !req.SkipAuth && c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting token: %w", err)
		}

		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	// Interceptors share the live header map, so additions reach the wire.
	var chainReq *canvas.Request

	if c.interceptors != nil {
		chainReq = &canvas.Request{
			Method:  req.Method,
			Path:    req.Path,
			Headers: httpReq.Header,
		}

		if err := c.interceptors.ExecuteRequestInterceptors(ctx, chainReq); err != nil {
			return nil, err
		}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
		Links:      ParseLinkHeader(httpResp.Header.Get("Link")),
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": httpResp.StatusCode,
			"bytes":  len(respBody),
		})
	}

	var apiErr error
	if httpResp.StatusCode >= 400 {
		apiErr = canvas.ParseAPIError(httpResp.StatusCode, respBody)
	}

	if c.interceptors != nil {
		chainResp := &canvas.Response{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			Body:       resp.Body,
			Error:      apiErr,
		}

		if err := c.interceptors.ExecuteResponseInterceptors(ctx, chainReq, chainResp); err != nil {
			return resp, err
		}
	}

	if apiErr != nil {
		return resp, apiErr
	}

	if cacheable && c.cache.ShouldCache(req.Method, req.Path, resp.StatusCode) {
		c.storeCachedResponse(ctx, cacheKey, resp)
	}

	return resp, nil
}

// cachedResponse is the stored form of a cacheable response. Pagination
// links are kept so replayed list pages still chain to the next page.
type cachedResponse struct {
	StatusCode int              `json:"status_code"`
	Body       []byte           `json:"body"`
	Links      canvas.PageLinks `json:"links"`
}

func (c *Client) cacheKey(req *Request) string {
	params := make(map[string]string, len(req.Query))
	for key := range req.Query {
		params[key] = req.Query.Get(key)
	}

	return c.cache.GetCacheKey(req.Method, req.Path, params)
}

func (c *Client) cachedResponseFor(ctx context.Context, key string) *Response {
	data, err := c.cache.Get(ctx, key)
	if err != nil {
		return nil
	}

	var stored cachedResponse
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil
	}

	return &Response{
		StatusCode: stored.StatusCode,
		Body:       stored.Body,
		Links:      stored.Links,
	}
}

func (c *Client) storeCachedResponse(ctx context.Context, key string, resp *Response) {
	data, err := json.Marshal(cachedResponse{
		StatusCode: resp.StatusCode,
		Body:       resp.Body,
		Links:      resp.Links,
	})
	if err != nil {
		return
	}

	if err := c.cache.Set(ctx, key, data, c.cacheTTL); err != nil && c.logger != nil {
		c.logger.Warn("failed to store cached response", map[string]interface{}{"error": err.Error()})
	}
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// PostForm performs a POST request with form-encoded fields.
func (c *Client) PostForm(ctx context.Context, path string, form []canvas.FormField) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Form: form})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// PutForm performs a PUT request with form-encoded fields.
func (c *Client) PutForm(ctx context.Context, path string, form []canvas.FormField) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Form: form})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// ParseLinkHeader parses an RFC 5988 Link header into pagination cursors.
// Canvas sends one entry per relation, for example:
//
//	<https://canvas.test/api/v1/courses?page=2>; rel="next"
func ParseLinkHeader(header string) canvas.PageLinks {
	var links canvas.PageLinks

	if header == "" {
		return links
	}

	for _, part := range strings.Split(header, ",") {
		segments := strings.Split(strings.TrimSpace(part), ";")
		if len(segments) < 2 {
			continue
		}

		target := strings.Trim(strings.TrimSpace(segments[0]), "<>")

		var rel string

		for _, segment := range segments[1:] {
			segment = strings.TrimSpace(segment)
			if value, ok := strings.CutPrefix(segment, "rel="); ok {
				rel = strings.Trim(value, `"`)

				break
			}
		}

		switch rel {
		case "current":
			links.Current = target
		case "next":
			links.Next = target
		case "prev":
			links.Prev = target
		case "first":
			links.First = target
		case "last":
			links.Last = target
		}
	}

	return links
}
