package host

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/cory-johannsen/skirmish/internal/markup"
)

// Recorder is a Sink that keeps every line, for tests and transcripts.
type Recorder struct {
	mu    sync.Mutex
	lines []string
}

// Emit records line.
func (r *Recorder) Emit(ctx context.Context, line string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
	return nil
}

// Lines returns the recorded lines with markup intact.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

// Plain returns the recorded lines with markup stripped.
func (r *Recorder) Plain() []string {
	lines := r.Lines()
	for i, l := range lines {
		lines[i] = markup.Strip(l)
	}
	return lines
}

// Reset forgets all recorded lines.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.lines = nil
	r.mu.Unlock()
}

// Script is a Prompter that answers from a fixed list, the way a user would
// type: a number ("2") picks that option (or is the number for a range
// request), any other answer picks the first option whose plain label starts
// with it, case-insensitively.
type Script struct {
	mu       sync.Mutex
	answers  []string
	requests []Request
}

// NewScript returns a Script replaying answers in order.
func NewScript(answers ...string) *Script {
	return &Script{answers: answers}
}

// Prompt consumes the next answer.
func (s *Script) Prompt(ctx context.Context, req Request) (Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if len(s.answers) == 0 {
		return Response{}, fmt.Errorf("host: script exhausted at %q", req.Question)
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]

	if n, err := strconv.Atoi(answer); err == nil {
		if req.Kind == KindChoice {
			return Response{Value: n - 1}, nil
		}
		return Response{Value: n}, nil
	}
	want := strings.ToLower(answer)
	for i, opt := range req.Options {
		if strings.HasPrefix(strings.ToLower(markup.Strip(opt)), want) {
			return Response{Value: i}, nil
		}
	}
	return Response{}, fmt.Errorf("host: no option matching %q in %q", answer, req.Question)
}

// Requests returns every request seen so far.
func (s *Script) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Remaining returns the number of unused answers.
func (s *Script) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers)
}
