// Package client holds typed bindings for the console GraphQL API.
//
// Every operation follows the same shape: caller options are merged over the
// client defaults, a fixed document is sent with the caller's variables
// through the Executor, and a result tracking called/loading/error/data is
// returned.
//
// Queries also come in a lazy form: XLazy builds the result without sending
// anything and Execute runs the query on demand, reusing that result.
package client

import (
	"context"
	"net/http"
	"time"

	"github.com/shurcooL/graphql"
)

const defaultHTTPTimeout = 30 * time.Second

// Executor runs GraphQL operations described by tagged structs.
type Executor interface {
	Query(ctx context.Context, q interface{}, variables map[string]interface{}) error
	Mutate(ctx context.Context, m interface{}, variables map[string]interface{}) error
}

var _ Executor = (*graphql.Client)(nil)

type Client struct {
	exec     Executor
	defaults Options
}

type clientConfig struct {
	httpClient *http.Client
	headers    http.Header
	defaults   []Option
}

type ClientOption func(*clientConfig)

// WithHTTPClient sets the client used to reach the API.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *clientConfig) {
		c.httpClient = httpClient
	}
}

// WithHeader adds a header sent with every request, e.g. Authorization.
func WithHeader(key, value string) ClientOption {
	return func(c *clientConfig) {
		c.headers.Add(key, value)
	}
}

// WithDefaultOptions sets options applied to every operation before the
// options of the call itself.
func WithDefaultOptions(opts ...Option) ClientOption {
	return func(c *clientConfig) {
		c.defaults = append(c.defaults, opts...)
	}
}

// New returns a client for the GraphQL endpoint at url.
func New(url string, opts ...ClientOption) *Client {
	cfg := &clientConfig{headers: http.Header{}}
	for _, opt := range opts {
		opt(cfg)
	}
	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if len(cfg.headers) > 0 {
		withHeaders := *httpClient
		withHeaders.Transport = &headerTransport{
			base:    httpClient.Transport,
			headers: cfg.headers,
		}
		httpClient = &withHeaders
	}
	return NewWithExecutor(graphql.NewClient(url, httpClient), cfg.defaults...)
}

// NewWithExecutor returns a client running operations through exec.
func NewWithExecutor(exec Executor, defaults ...Option) *Client {
	c := &Client{exec: exec}
	for _, opt := range defaults {
		opt(&c.defaults)
	}
	return c
}

type headerTransport struct {
	base    http.RoundTripper
	headers http.Header
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for key, values := range t.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}
