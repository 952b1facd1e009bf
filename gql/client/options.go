package client

import "time"

// Options control a single operation. The zero value runs the operation once
// with no deadline beyond the context.
type Options struct {
	// Skip prevents a query from running until Refetch is called.
	Skip bool
	// Timeout bounds every fetch of the operation.
	Timeout time.Duration
	// PollInterval refetches the operation until the context passed to the
	// call is done or StopPolling is called.
	PollInterval time.Duration
	// OnCompleted receives the data of every successful fetch.
	OnCompleted func(data interface{})
	// OnError receives the error of every failed fetch.
	OnError func(err error)
}

type Option func(*Options)

func WithSkip(skip bool) Option {
	return func(o *Options) {
		o.Skip = skip
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.Timeout = timeout
	}
}

func WithPollInterval(interval time.Duration) Option {
	return func(o *Options) {
		o.PollInterval = interval
	}
}

func WithOnCompleted(fn func(data interface{})) Option {
	return func(o *Options) {
		o.OnCompleted = fn
	}
}

func WithOnError(fn func(err error)) Option {
	return func(o *Options) {
		o.OnError = fn
	}
}

// options merges opts over the client defaults.
func (c *Client) options(opts []Option) Options {
	merged := c.defaults
	for _, opt := range opts {
		opt(&merged)
	}
	return merged
}
