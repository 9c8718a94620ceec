// Package client implements soda.Client on top of the internal transport.
package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fivetwenty-io/soda/internal/auth"
	"github.com/fivetwenty-io/soda/internal/constants"
	internalhttp "github.com/fivetwenty-io/soda/internal/http"
	"github.com/fivetwenty-io/soda/pkg/soda"
)

// Client implements the soda.Client interface.
type Client struct {
	httpClient *internalhttp.Client
	auth       *auth.Authenticator
	domain     string
	baseURL    string
	pageSize   int
	logger     soda.Logger
}

var _ soda.Client = (*Client)(nil)

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *soda.Config, logger soda.Logger) []internalhttp.Option {
	httpOpts := []internalhttp.Option{
		internalhttp.WithLogger(logger),
	}

	if config.Debug {
		httpOpts = append(httpOpts, internalhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, internalhttp.WithUserAgent(config.UserAgent))
	}

	timeout := constants.DefaultHTTPTimeout
	if config.Timeout > 0 {
		timeout = config.Timeout
	}

	httpOpts = append(httpOpts, internalhttp.WithTimeout(timeout))

	if config.Transport != nil {
		httpOpts = append(httpOpts, internalhttp.WithTransport(config.Transport))
	}

	if len(config.RequestInterceptors) > 0 || len(config.ResponseInterceptors) > 0 {
		chain := soda.NewInterceptorChain()
		for _, interceptor := range config.RequestInterceptors {
			chain.AddRequestInterceptor(interceptor)
		}

		for _, interceptor := range config.ResponseInterceptors {
			chain.AddResponseInterceptor(interceptor)
		}

		httpOpts = append(httpOpts, internalhttp.WithInterceptors(chain))
	}

	return httpOpts
}

// New creates a new SODA client.
func New(config *soda.Config) (*Client, error) {
	if config == nil {
		return nil, soda.ErrConfigRequired
	}

	if config.Domain == "" {
		return nil, soda.ErrDomainRequired
	}

	if config.Timeout < 0 {
		return nil, fmt.Errorf("%w: got %s", soda.ErrInvalidTimeout, config.Timeout)
	}

	authenticator, err := auth.New(auth.Credentials{
		AppToken:    config.AppToken,
		Username:    config.Username,
		Password:    config.Password,
		AccessToken: config.AccessToken,
	})
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = soda.NewSlogLogger(nil)
	}

	prefix := config.URIPrefix
	if prefix == "" {
		prefix = constants.DefaultURIPrefix
	}

	pageSize := config.PageSize
	if pageSize == 0 {
		pageSize = constants.DefaultPageSize
	}

	baseURL := prefix + config.Domain

	client := &Client{
		httpClient: internalhttp.NewClient(baseURL, authenticator, createHTTPClientOptions(config, logger)...),
		auth:       authenticator,
		domain:     config.Domain,
		baseURL:    baseURL,
		pageSize:   pageSize,
		logger:     logger,
	}

	if !authenticator.HasAppToken() {
		logger.Warn("Requests made without an app_token will be subject to strict throttling limits.", map[string]interface{}{
			"domain": config.Domain,
		})
	}

	return client, nil
}

// Domain returns the configured domain.
func (c *Client) Domain() string {
	return c.domain
}

// AuthMode returns the authentication mode in effect.
func (c *Client) AuthMode() auth.Mode {
	return c.auth.Mode()
}

// Close implements soda.Client.Close.
func (c *Client) Close() error {
	if err := c.httpClient.Close(); err != nil {
		return fmt.Errorf("closing client: %w", err)
	}

	return nil
}

// do executes req and decodes the response.
func (c *Client) do(ctx context.Context, req *internalhttp.Request) (*soda.Result, error) {
	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	return soda.DecodeResponse(resp)
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*soda.Result, error) {
	return c.do(ctx, &internalhttp.Request{Method: http.MethodGet, Path: path, Query: query})
}
