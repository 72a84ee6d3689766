package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fivetwenty-io/lemon-client/internal/constants"
	"github.com/fivetwenty-io/lemon-client/pkg/lemon"
	"github.com/hashicorp/go-retryablehttp"
)

// Client performs authenticated single-shot calls against one API root.
// It is immutable after construction and safe for concurrent use.
type Client struct {
	baseURL      *url.URL
	apiKey       string
	httpClient   *retryablehttp.Client
	logger       lemon.Logger
	debug        bool
	userAgent    string
	timeout      time.Duration
	transport    http.RoundTripper
	interceptors *lemon.InterceptorChain
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger lemon.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithHTTPTimeout bounds a single round trip.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithTransport replaces the round tripper underneath the client.
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

// WithInterceptors installs a request/response interceptor chain.
func WithInterceptors(chain *lemon.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// Request describes one API call. Path is resolved against the base URL.
// Route is Path with identifiers replaced by placeholders, e.g. orders/{id};
// it defaults to Path.
type Request struct {
	Method  string
	Path    string
	Route   string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response is a completed call with its body fully read.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// NewClient creates a client for baseURL that authenticates with apiKey.
// The go-retryablehttp client underneath is configured never to retry: every
// call is exactly one round trip.
func NewClient(baseURL *url.URL, apiKey string, opts ...Option) *Client {
	base := *baseURL

	client := &Client{
		baseURL:   &base,
		apiKey:    apiKey,
		userAgent: constants.DefaultUserAgent,
		timeout:   constants.DefaultHTTPTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	retryClient.CheckRetry = neverRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient.Timeout = client.timeout

	if client.transport != nil {
		retryClient.HTTPClient.Transport = client.transport
	}

	if client.debug && client.logger != nil {
		retryClient.RequestLogHook = client.logRequest
		retryClient.ResponseLogHook = client.logResponse
	}

	client.httpClient = retryClient

	return client
}

// BaseURL returns a copy of the API root.
func (c *Client) BaseURL() *url.URL {
	base := *c.baseURL

	return &base
}

// Do executes req. A non-200 status is returned as *lemon.APIError when the
// body is a structured error payload and as *lemon.TransportError otherwise;
// in both cases the Response is returned alongside the error.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	target := c.resolve(req.Path, req.Query)

	var body []byte

	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		body = encoded
	}

	route := req.Route
	if route == "" {
		route = req.Path
	}

	intercepted := &lemon.HTTPRequest{
		Method:  req.Method,
		Path:    req.Path,
		Route:   route,
		URL:     target,
		Headers: c.headers(req, body != nil),
		Body:    body,
	}

	err := c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
	if err != nil {
		return nil, &lemon.TransportError{Method: req.Method, URL: target, Err: err}
	}

	// An untyped nil keeps retryablehttp from attaching an empty body.
	var rawBody interface{}
	if len(intercepted.Body) > 0 {
		rawBody = intercepted.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, target, rawBody)
	if err != nil {
		return nil, &lemon.TransportError{Method: req.Method, URL: target, Err: err}
	}

	for key, values := range intercepted.Headers {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// A response can accompany the error when the context ends after
		// the headers arrived.
		if resp != nil {
			_ = resp.Body.Close()
		}

		transportErr := &lemon.TransportError{Method: req.Method, URL: target, Err: err}
		_ = c.afterResponse(ctx, intercepted, &lemon.HTTPResponse{Error: transportErr})

		return nil, transportErr
	}

	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		transportErr := &lemon.TransportError{Method: req.Method, URL: target, StatusCode: resp.StatusCode, Err: err}
		_ = c.afterResponse(ctx, intercepted, &lemon.HTTPResponse{StatusCode: resp.StatusCode, Error: transportErr})

		return nil, transportErr
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	}

	var callErr error
	if resp.StatusCode != constants.HTTPStatusOK {
		callErr = classify(req.Method, target, resp.StatusCode, respBody)
	}

	interceptErr := c.afterResponse(ctx, intercepted, &lemon.HTTPResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
		Error:      callErr,
	})
	if callErr == nil && interceptErr != nil {
		callErr = &lemon.TransportError{Method: req.Method, URL: target, StatusCode: resp.StatusCode, Err: interceptErr}
	}

	return response, callErr
}

// Get performs a GET request. Empty query values add no "?" to the URL.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
}

// Delete performs a DELETE request without a body. route is the path
// template reported to interceptors; empty means path.
func (c *Client) Delete(ctx context.Context, path, route string) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodDelete,
		Path:   path,
		Route:  route,
	})
}

func (c *Client) resolve(path string, query url.Values) string {
	target := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	return target.String()
}

func (c *Client) headers(req *Request, hasBody bool) http.Header {
	headers := make(http.Header)
	headers.Set(constants.HeaderAuthorization, constants.BearerPrefix+c.apiKey)
	headers.Set(constants.HeaderAccept, constants.ContentTypeJSON)
	headers.Set(constants.HeaderUserAgent, c.userAgent)

	if hasBody {
		headers.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	}

	for key, value := range req.Headers {
		headers.Set(key, value)
	}

	return headers
}

func (c *Client) afterResponse(ctx context.Context, req *lemon.HTTPRequest, resp *lemon.HTTPResponse) error {
	err := c.interceptors.ExecuteResponseInterceptors(ctx, req, resp)
	if err != nil && c.logger != nil {
		c.logger.Warn("Response interceptor failed", map[string]interface{}{
			"method": req.Method,
			"url":    req.URL,
			"error":  err.Error(),
		})
	}

	return err
}

func (c *Client) logRequest(_ retryablehttp.Logger, req *http.Request, attempt int) {
	c.logger.Debug("HTTP Request", map[string]interface{}{
		"method":  req.Method,
		"url":     req.URL.String(),
		"attempt": attempt,
	})
}

func (c *Client) logResponse(_ retryablehttp.Logger, resp *http.Response) {
	c.logger.Debug("HTTP Response", map[string]interface{}{
		"status_code": resp.StatusCode,
		"url":         resp.Request.URL.String(),
	})
}

// classify turns a non-200 response into an error. A JSON body carrying an
// error_code is an API error; anything else only tells us the status.
func classify(method, target string, statusCode int, body []byte) error {
	apiErr, err := lemon.ParseErrorPayload(body, statusCode)
	if err == nil {
		return apiErr
	}

	preview := body
	if len(preview) > constants.MaxErrorBodyPreview {
		preview = preview[:constants.MaxErrorBodyPreview]
	}

	return &lemon.TransportError{
		Method:     method,
		URL:        target,
		StatusCode: statusCode,
		Body:       string(bytes.TrimSpace(preview)),
	}
}

// neverRetry reports every outcome as final and surfaces context errors.
func neverRetry(ctx context.Context, _ *http.Response, _ error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	return false, nil
}
