package host

import (
	"context"
	"fmt"
	"sync"
)

// EventKind distinguishes Channel events.
type EventKind int

const (
	// EventLine carries a narration line.
	EventLine EventKind = iota
	// EventPrompt carries a request that must be answered with Respond.
	EventPrompt
)

// Event is delivered to the host loop.
type Event struct {
	Kind    EventKind
	Line    string
	Request Request
}

// Channel connects the combat core to an event-driven host loop. The core
// calls Emit and Prompt; the host drains Events and answers prompts with
// Respond. A Channel is either idle or awaiting input for exactly one request.
type Channel struct {
	events    chan Event
	responses chan Response
	done      chan struct{}
	closeOnce sync.Once

	mu      sync.Mutex
	pending *Request
}

// NewChannel returns a Channel whose event queue holds buffer events.
func NewChannel(buffer int) *Channel {
	return &Channel{
		events:    make(chan Event, buffer),
		responses: make(chan Response, 1),
		done:      make(chan struct{}),
	}
}

// Events returns the stream the host loop consumes.
func (c *Channel) Events() <-chan Event { return c.events }

// Emit queues a narration line.
func (c *Channel) Emit(ctx context.Context, line string) error {
	return c.send(ctx, Event{Kind: EventLine, Line: line})
}

// Prompt publishes req and blocks until Respond is called, ctx is done, or the
// Channel is closed.
func (c *Channel) Prompt(ctx context.Context, req Request) (Response, error) {
	c.mu.Lock()
	if c.pending != nil {
		c.mu.Unlock()
		return Response{}, fmt.Errorf("host: prompt %q already pending", c.pending.Question)
	}
	select {
	case <-c.responses:
	default:
	}
	c.pending = &req
	c.mu.Unlock()

	if err := c.send(ctx, Event{Kind: EventPrompt, Request: req}); err != nil {
		c.clearPending()
		return Response{}, err
	}
	select {
	case resp := <-c.responses:
		return resp, nil
	case <-ctx.Done():
		c.clearPending()
		return Response{}, ctx.Err()
	case <-c.done:
		c.clearPending()
		return Response{}, ErrClosed
	}
}

// Pending returns the request currently awaiting input, if any.
func (c *Channel) Pending() (Request, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return Request{}, false
	}
	return *c.pending, true
}

// Respond answers the pending request and resumes the suspended Prompt.
//
// Postcondition: Returns ErrNoPendingPrompt when idle, or a validation error
// when resp is out of range; in both cases the Channel state is unchanged.
func (c *Channel) Respond(resp Response) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return ErrNoPendingPrompt
	}
	if err := c.pending.Validate(resp); err != nil {
		return err
	}
	c.pending = nil
	c.responses <- resp
	return nil
}

// Close stops the Channel; suspended and future calls return ErrClosed.
func (c *Channel) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *Channel) clearPending() {
	c.mu.Lock()
	c.pending = nil
	c.mu.Unlock()
}

func (c *Channel) send(ctx context.Context, ev Event) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	select {
	case c.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return ErrClosed
	}
}
