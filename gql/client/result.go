package client

import (
	"context"
	"sync"
	"time"

	"github.com/kfsoftware/hlf-console/log"
	"github.com/pkg/errors"
)

// ErrNotCalled is returned by Refetch on a result that was never given
// variables, such as a lazy query before its first Execute.
var ErrNotCalled = errors.New("operation has not been called")

type fetchFunc func(ctx context.Context) (interface{}, error)

// Result tracks the state of one operation across fetches. It is safe for
// concurrent use; polling refetches run in their own goroutine.
type Result struct {
	name string
	opts Options

	mu       sync.RWMutex
	fetch    fetchFunc
	called   bool
	inflight int
	data     interface{}
	err      error
	stopPoll context.CancelFunc
}

func newResult(name string, opts Options) *Result {
	return &Result{name: name, opts: opts}
}

// Name is the operation name of the document behind this result.
func (r *Result) Name() string {
	return r.name
}

// Called reports whether a fetch has been started.
func (r *Result) Called() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.called
}

// Loading reports whether a fetch is in flight.
func (r *Result) Loading() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.inflight > 0
}

// Err returns the error of the last completed fetch.
func (r *Result) Err() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.err
}

func (r *Result) value() interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data
}

func (r *Result) setFetch(fetch fetchFunc) {
	r.mu.Lock()
	r.fetch = fetch
	r.mu.Unlock()
}

// Refetch runs the operation again with its last variables.
func (r *Result) Refetch(ctx context.Context) error {
	r.mu.RLock()
	fetch := r.fetch
	r.mu.RUnlock()
	if fetch == nil {
		return ErrNotCalled
	}
	return r.run(ctx, fetch)
}

func (r *Result) run(ctx context.Context, fetch fetchFunc) error {
	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}
	r.mu.Lock()
	r.called = true
	r.inflight++
	r.mu.Unlock()

	data, err := fetch(ctx)

	r.mu.Lock()
	r.inflight--
	r.err = err
	if err != nil {
		r.data = nil
	} else {
		r.data = data
	}
	r.mu.Unlock()

	if err != nil {
		if r.opts.OnError != nil {
			r.opts.OnError(err)
		}
		return err
	}
	if r.opts.OnCompleted != nil {
		r.opts.OnCompleted(data)
	}
	return nil
}

// StartPolling refetches every interval until ctx is done or StopPolling is
// called. A running poll is replaced.
func (r *Result) StartPolling(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	r.StopPolling()
	ctx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	r.stopPoll = cancel
	r.mu.Unlock()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := r.Refetch(ctx); err != nil && ctx.Err() == nil {
					log.Debugf("poll of %s failed: %v", r.name, err)
				}
			}
		}
	}()
}

// StopPolling stops a poll started by StartPolling or the PollInterval option.
func (r *Result) StopPolling() {
	r.mu.Lock()
	cancel := r.stopPoll
	r.stopPoll = nil
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// start runs fetch right away unless the options skip it.
func (r *Result) start(ctx context.Context, fetch fetchFunc) error {
	r.setFetch(fetch)
	if r.opts.Skip {
		return nil
	}
	return r.execute(ctx, fetch)
}

// execute runs fetch and starts polling when configured.
func (r *Result) execute(ctx context.Context, fetch fetchFunc) error {
	r.setFetch(fetch)
	err := r.run(ctx, fetch)
	if r.opts.PollInterval > 0 {
		r.StartPolling(ctx, r.opts.PollInterval)
	}
	return err
}

func (c *Client) queryFetch(name string, newData func() interface{}, variables map[string]interface{}) fetchFunc {
	return func(ctx context.Context) (interface{}, error) {
		data := newData()
		log.Debugf("query %s variables=%v", name, variables)
		if err := c.exec.Query(ctx, data, variables); err != nil {
			return nil, errors.Wrapf(err, "query %s", name)
		}
		return data, nil
	}
}

func (c *Client) mutationFetch(name string, newData func() interface{}, variables map[string]interface{}) fetchFunc {
	return func(ctx context.Context) (interface{}, error) {
		data := newData()
		log.Debugf("mutation %s", name)
		if err := c.exec.Mutate(ctx, data, variables); err != nil {
			return nil, errors.Wrapf(err, "mutation %s", name)
		}
		return data, nil
	}
}
