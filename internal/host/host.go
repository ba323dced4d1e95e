// Package host defines the boundary between the combat core and whatever
// renders text and collects input: a narration Sink and a Prompter that
// answers choice and number requests.
package host

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNoPendingPrompt is returned by Respond when nothing is awaiting input.
	ErrNoPendingPrompt = errors.New("host: no prompt is awaiting input")
	// ErrClosed is returned once a Channel has been closed.
	ErrClosed = errors.New("host: closed")
)

// Sink receives narration lines carrying inline markup.
type Sink interface {
	Emit(ctx context.Context, line string) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, line string) error

// Emit calls f.
func (f SinkFunc) Emit(ctx context.Context, line string) error { return f(ctx, line) }

// RequestKind distinguishes prompt requests.
type RequestKind int

const (
	// KindChoice asks the user to pick one of Options.
	KindChoice RequestKind = iota
	// KindRange asks for an integer in [Lo, Hi].
	KindRange
)

// Request is a prompt awaiting a Response.
type Request struct {
	Kind     RequestKind
	Question string
	Options  []string
	Lo, Hi   int
}

// Bounds returns the inclusive range of numbers a user may type. Choices are
// numbered from 1.
func (r Request) Bounds() (lo, hi int) {
	if r.Kind == KindChoice {
		return 1, len(r.Options)
	}
	return r.Lo, r.Hi
}

// Response answers a Request. For KindChoice, Value is the zero-based option
// index; for KindRange it is the number itself.
type Response struct {
	Value int
}

// Validate reports whether resp is an acceptable answer to r.
func (r Request) Validate(resp Response) error {
	lo, hi := r.Bounds()
	v := resp.Value
	if r.Kind == KindChoice {
		v++
	}
	if v < lo || v > hi {
		return fmt.Errorf("host: response %d outside %d-%d", v, lo, hi)
	}
	return nil
}

// Prompter resolves prompt requests, suspending the caller until answered.
type Prompter interface {
	Prompt(ctx context.Context, req Request) (Response, error)
}

// BackLabel is the label of the option appended by Choose when includeBack is set.
const BackLabel = "<gray>Back</gray>"

// Option is a labelled choice carrying a value.
type Option[T any] struct {
	Label string
	Value T
}

// Choose asks question with the given options. When includeBack is true a Back
// option is appended; choosing it returns ok == false.
//
// Precondition: len(options) > 0 or includeBack.
func Choose[T any](ctx context.Context, p Prompter, question string, options []Option[T], includeBack bool) (value T, ok bool, err error) {
	labels := make([]string, 0, len(options)+1)
	for _, o := range options {
		labels = append(labels, o.Label)
	}
	if includeBack {
		labels = append(labels, BackLabel)
	}
	req := Request{Kind: KindChoice, Question: question, Options: labels}
	resp, err := p.Prompt(ctx, req)
	if err != nil {
		return value, false, err
	}
	if err := req.Validate(resp); err != nil {
		return value, false, err
	}
	if resp.Value == len(options) {
		return value, false, nil
	}
	return options[resp.Value].Value, true, nil
}

// Range asks for an integer in [lo, hi].
func Range(ctx context.Context, p Prompter, question string, lo, hi int) (int, error) {
	req := Request{Kind: KindRange, Question: question, Lo: lo, Hi: hi}
	resp, err := p.Prompt(ctx, req)
	if err != nil {
		return 0, err
	}
	if err := req.Validate(resp); err != nil {
		return 0, err
	}
	return resp.Value, nil
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Paced returns a Sink that waits delay after every line, giving the reader
// time to follow the narration.
func Paced(sink Sink, delay time.Duration) Sink {
	return SinkFunc(func(ctx context.Context, line string) error {
		if err := sink.Emit(ctx, line); err != nil {
			return err
		}
		return Sleep(ctx, delay)
	})
}
