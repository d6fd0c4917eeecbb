package client

import (
	"context"
	"sync"
)

// State is the controller's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// Controller drives a single in-flight analysis request and holds its
// outcome: idle -> loading -> success or error, back to idle on Reset. Only
// one analysis is meant to be in flight at a time; starting another while
// loading is not rejected here and the last one to finish wins, so callers
// should guard against it. There is no cancellation: once sent, a request
// runs to completion, and after Close its result is discarded without a
// state update.
type Controller struct {
	client *Client

	mu     sync.Mutex
	state  State
	result *AnalyzeResponse
	err    error
	closed bool
}

// NewController builds a Controller on top of the API client.
func NewController(c *Client) *Controller {
	return &Controller{client: c}
}

// Analyze starts an analysis request in the background and transitions the
// controller to loading. On success it also fires a best-effort save whose
// failure never alters the success state. The returned channel closes when
// the attempt has settled, for callers that want to wait.
func (ctl *Controller) Analyze(ctx context.Context, req AnalyzeRequest) <-chan struct{} {
	done := make(chan struct{})

	ctl.mu.Lock()
	ctl.state = StateLoading
	ctl.result = nil
	ctl.err = nil
	ctl.mu.Unlock()

	go func() {
		defer close(done)
		resp, err := ctl.client.Analyze(ctx, req)

		if err == nil {
			// Best effort: the displayed result does not depend on the save.
			_ = ctl.client.Save(ctx, resp.Data.Raw)
		}

		ctl.mu.Lock()
		defer ctl.mu.Unlock()
		if ctl.closed {
			return
		}
		if err != nil {
			ctl.state = StateError
			ctl.err = err
			return
		}
		ctl.state = StateSuccess
		ctl.result = &resp
	}()

	return done
}

// State returns the current state.
func (ctl *Controller) State() State {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	return ctl.state
}

// Result returns the last successful response, or nil.
func (ctl *Controller) Result() *AnalyzeResponse {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	return ctl.result
}

// Err returns the last failure, or nil.
func (ctl *Controller) Err() error {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	return ctl.err
}

// Reset clears the slot back to idle. An in-flight request is not cancelled;
// its eventual outcome overwrites the reset state.
func (ctl *Controller) Reset() {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	ctl.state = StateIdle
	ctl.result = nil
	ctl.err = nil
}

// Close tears the controller down. Any in-flight request still completes but
// its outcome is discarded.
func (ctl *Controller) Close() {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	ctl.closed = true
	ctl.state = StateIdle
	ctl.result = nil
	ctl.err = nil
}
