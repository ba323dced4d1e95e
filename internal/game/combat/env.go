package combat

import (
	"time"

	"github.com/cory-johannsen/skirmish/internal/game/action"
	"github.com/cory-johannsen/skirmish/internal/host"
)

// Env is the request-scoped context threaded through planning and execution.
type Env struct {
	action.Env
	Prompter host.Prompter
	// MoveDelay is the pause after each executed move.
	MoveDelay time.Duration
}
