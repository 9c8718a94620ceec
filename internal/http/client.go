// Package http executes SODA requests over go-retryablehttp.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/soda/internal/auth"
	"github.com/fivetwenty-io/soda/internal/constants"
	"github.com/fivetwenty-io/soda/pkg/soda"
	"github.com/hashicorp/go-retryablehttp"
)

// Request is a single API call.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	// Body is JSON encoded and sent with Content-Type application/json.
	Body interface{}
	// RawBody is sent as is. The Content-Type comes from Headers.
	RawBody io.Reader
}

// Client executes requests against one base URL with fixed credentials.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	auth         *auth.Authenticator
	userAgent    string
	logger       soda.Logger
	debug        bool
	interceptors *soda.InterceptorChain
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger soda.Logger) Option {
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

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout bounds every request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithTransport replaces the HTTP transport.
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		if transport != nil {
			c.httpClient.HTTPClient.Transport = transport
		}
	}
}

// WithInterceptors sets the interceptor chain.
func WithInterceptors(chain *soda.InterceptorChain) Option {
	return func(c *Client) {
		if chain != nil {
			c.interceptors = chain
		}
	}
}

// NewClient creates a client for baseURL, e.g. "https://data.example.org". A nil
// authenticator sends anonymous requests.
func NewClient(baseURL string, authenticator *auth.Authenticator, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.CheckRetry = noRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	if authenticator == nil {
		authenticator, _ = auth.New(auth.Credentials{})
	}

	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   retryClient,
		auth:         authenticator,
		userAgent:    constants.DefaultUserAgent,
		logger:       soda.NoopLogger{},
		interceptors: soda.NewInterceptorChain(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.debug {
		retryClient.Logger = &leveledLogger{logger: client.logger}
	}

	return client
}

// noRetry sends every request exactly once. Only a cancelled context is reported.
func noRetry(ctx context.Context, _ *http.Response, _ error) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	return false, nil
}

// Do executes req and reads the whole body. A status in the client or server error
// band returns the response together with an *soda.HTTPError.
func (c *Client) Do(ctx context.Context, req *Request) (*soda.Response, error) {
	httpResp, intercepted, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return c.finish(ctx, intercepted, httpResp, body)
}

// Download executes a GET and streams the body into dst in fixed size chunks. The
// returned response carries no body.
func (c *Client) Download(ctx context.Context, path string, query url.Values, dst io.Writer) (*soda.Response, error) {
	req := &Request{Method: http.MethodGet, Path: path, Query: query}

	httpResp, intercepted, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = httpResp.Body.Close() }()

	if !isSuccess(httpResp.StatusCode) {
		body, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return nil, fmt.Errorf("reading response body: %w", err)
		}

		resp, err := c.finish(ctx, intercepted, httpResp, body)
		if err != nil {
			return resp, err
		}

		if _, err := dst.Write(body); err != nil {
			return nil, fmt.Errorf("writing download: %w", err)
		}

		resp.Body = nil

		return resp, nil
	}

	buf := make([]byte, constants.DownloadChunkSize)

	for {
		n, readErr := httpResp.Body.Read(buf)
		if n > 0 {
			if _, err := dst.Write(buf[:n]); err != nil {
				return nil, fmt.Errorf("writing download: %w", err)
			}
		}

		if readErr == io.EOF {
			break
		}

		if readErr != nil {
			return nil, fmt.Errorf("reading download: %w", readErr)
		}
	}

	return c.finish(ctx, intercepted, httpResp, nil)
}

// send issues req and returns the response with the request seen by the request
// interceptors, which the response interceptors receive in turn.
func (c *Client) send(ctx context.Context, req *Request) (*http.Response, *soda.Request, error) {
	switch req.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return nil, nil, fmt.Errorf("%w: %s", soda.ErrUnsupportedMethod, req.Method)
	}

	var (
		rawBody     interface{}
		bodyBytes   []byte
		contentType string
	)

	switch {
	case req.Body != nil:
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, nil, fmt.Errorf("encoding request body: %w", err)
		}

		bodyBytes = encoded
		rawBody = encoded
		contentType = soda.MediaTypeJSON
	case req.RawBody != nil:
		rawBody = req.RawBody
	}

	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, rawBody)
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}

	if contentType != "" {
		httpReq.Header.Set(constants.HeaderContentType, contentType)
	}

	if c.userAgent != "" {
		httpReq.Header.Set(constants.HeaderUserAgent, c.userAgent)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	c.auth.Apply(httpReq.Header)

	intercepted := &soda.Request{
		Method:  req.Method,
		Path:    req.Path,
		Query:   req.Query,
		Headers: httpReq.Header,
		Body:    bodyBytes,
	}

	if err := c.interceptors.ExecuteRequestInterceptors(ctx, intercepted); err != nil {
		return nil, nil, err
	}

	if c.debug {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
			"auth":   c.auth.Mode().String(),
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, nil, fmt.Errorf("executing %s %s: %w", req.Method, req.Path, err)
	}

	return httpResp, intercepted, nil
}

func (c *Client) finish(ctx context.Context, req *soda.Request, httpResp *http.Response, body []byte) (*soda.Response, error) {
	resp := &soda.Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if c.debug {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"path":        req.Path,
			"status_code": resp.StatusCode,
			"bytes":       len(body),
		})
	}

	if err := c.interceptors.ExecuteResponseInterceptors(ctx, req, resp); err != nil {
		return resp, err
	}

	if isSuccess(resp.StatusCode) {
		return resp, nil
	}

	if err := soda.CheckStatus(resp.StatusCode, reason(httpResp), body); err != nil {
		return resp, err
	}

	return resp, nil
}

// isSuccess reports the statuses accepted without consulting the error policy.
func isSuccess(code int) bool {
	return code == http.StatusOK || code == http.StatusAccepted
}

// reason returns the reason phrase of a response status line.
func reason(resp *http.Response) string {
	phrase := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if phrase == "" {
		return http.StatusText(resp.StatusCode)
	}

	return phrase
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*soda.Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*soda.Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*soda.Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPut,
		Path:   path,
		Body:   body,
	})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*soda.Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodDelete,
		Path:   path,
	})
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.httpClient.HTTPClient.CloseIdleConnections()

	return nil
}

// leveledLogger adapts soda.Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger soda.Logger
}

var _ retryablehttp.LeveledLogger = (*leveledLogger)(nil)

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, pairs(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, pairs(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, pairs(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, pairs(keysAndValues))
}

func pairs(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	return fields
}
