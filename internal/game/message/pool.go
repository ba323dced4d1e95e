// Package message provides a repetition-avoiding sampler over message templates.
package message

import (
	"errors"
	"sync"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// ErrEmptyPool is returned when a Pool is built from zero templates.
var ErrEmptyPool = errors.New("message: pool needs at least one template")

// Pool draws templates from a shuffled bag that is refilled only when empty.
//
// Invariant: every template is drawn exactly once per pass through the bag, and
// no template is drawn twice in a row unless the pool has a single template.
type Pool struct {
	mu     sync.Mutex
	source []string
	bag    []string
	last   string
	drawn  bool
	src    dice.Source
}

// NewPool creates a Pool over templates, shuffled with src.
//
// Precondition: src must be non-nil.
// Postcondition: Returns ErrEmptyPool when templates is empty.
func NewPool(templates []string, src dice.Source) (*Pool, error) {
	if len(templates) == 0 {
		return nil, ErrEmptyPool
	}
	return &Pool{source: append([]string(nil), templates...), src: src}, nil
}

// MustPool is NewPool for literal template sets; it panics on error.
func MustPool(src dice.Source, templates ...string) *Pool {
	p, err := NewPool(templates, src)
	if err != nil {
		panic(err)
	}
	return p
}

// Templates returns a copy of the source templates.
func (p *Pool) Templates() []string {
	return append([]string(nil), p.source...)
}

// Len returns the number of source templates.
func (p *Pool) Len() int { return len(p.source) }

// Sample draws the next template.
func (p *Pool) Sample() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.bag) == 0 {
		p.refill()
	}
	n := len(p.bag)
	out := p.bag[n-1]
	p.bag = p.bag[:n-1]
	p.last, p.drawn = out, true
	return out
}

// refill reshuffles the bag. The element drawn next sits at the end; if it
// repeats the previous draw it is swapped with a random earlier element.
func (p *Pool) refill() {
	p.bag = append(p.bag[:0], p.source...)
	dice.Shuffle(p.src, p.bag)
	n := len(p.bag)
	if !p.drawn || n < 2 || p.bag[n-1] != p.last {
		return
	}
	candidates := make([]int, 0, n-1)
	for i := 0; i < n-1; i++ {
		if p.bag[i] != p.last {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return
	}
	j := dice.Pick(p.src, candidates)
	p.bag[n-1], p.bag[j] = p.bag[j], p.bag[n-1]
}
