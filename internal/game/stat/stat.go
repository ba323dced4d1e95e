// Package stat provides bounded combatant resources such as health and stamina.
package stat

import "fmt"

// Key names a combatant resource.
type Key string

const (
	Health  Key = "health"
	Stamina Key = "stamina"
)

// Keys lists every known resource key.
var Keys = []Key{Health, Stamina}

// Valid reports whether k is a known resource key.
func (k Key) Valid() bool {
	return k == Health || k == Stamina
}

// Title returns the display name of the resource, e.g. "Health".
func (k Key) Title() string {
	switch k {
	case Health:
		return "Health"
	case Stamina:
		return "Stamina"
	default:
		return string(k)
	}
}

// Ranged is a named integer quantity held in [0, Max].
//
// Invariant: 0 <= Value() <= Max.
type Ranged struct {
	Name  string
	Max   int
	value int
}

// NewRanged returns a Ranged filled to max.
//
// Precondition: max > 0; panics otherwise.
func NewRanged(name string, max int) *Ranged {
	if max <= 0 {
		panic(fmt.Sprintf("stat: %s max must be > 0, got %d", name, max))
	}
	return &Ranged{Name: name, Max: max, value: max}
}

// NewRangedAt returns a Ranged holding value clamped into [0, max].
//
// Precondition: max > 0; panics otherwise.
func NewRangedAt(name string, max, value int) *Ranged {
	r := NewRanged(name, max)
	r.value = clamp(value, 0, max)
	return r
}

// Value returns the current value.
func (r *Ranged) Value() int { return r.value }

// Alter adds delta and clamps the result into [0, Max].
//
// Postcondition: 0 <= Value() <= Max; returns the new value.
func (r *Ranged) Alter(delta int) int {
	r.value = clamp(r.value+delta, 0, r.Max)
	return r.value
}

// Empty reports whether the value has reached zero.
func (r *Ranged) Empty() bool { return r.value <= 0 }

func (r *Ranged) String() string {
	return fmt.Sprintf("<%d / %d>", r.value, r.Max)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
