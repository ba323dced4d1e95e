package scripting

import (
	"context"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// HookName is the global Lua function a preference script must define:
//
//	function choose(actions, target, self) ... end
//
// actions is an array of action ids; target and self are tables with name,
// health, max_health, stamina, max_stamina and speed. It returns the preferred
// action id, or nil for no preference.
const HookName = "choose"

// Chooser is a combat.Preference backed by a Lua script. Each Chooser owns
// one VM; calls are serialised.
type Chooser struct {
	mu     sync.Mutex
	name   string
	L      *lua.LState
	limit  int
	logger *zap.Logger
}

// NewChooser loads source into a fresh sandbox.
//
// Precondition: src must be non-nil; logger may be nil.
// Postcondition: returns an error if source fails to run or does not define choose.
func NewChooser(ctx context.Context, name, source string, src dice.Source, instLimit int, logger *zap.Logger) (*Chooser, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	L := NewSandboxedState()
	registerDice(L, src)
	if err := run(ctx, L, instLimit, func() error { return L.DoString(source) }); err != nil {
		L.Close()
		return nil, fmt.Errorf("scripting: loading %q: %w", name, err)
	}
	if L.GetGlobal(HookName).Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("scripting: %q does not define function %s", name, HookName)
	}
	return &Chooser{name: name, L: L, limit: instLimit, logger: logger}, nil
}

// Choose implements combat.Preference.
func (c *Chooser) Choose(ctx context.Context, actions []string, self, target combat.Snapshot) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	L := c.L
	list := L.NewTable()
	for _, id := range actions {
		list.Append(lua.LString(id))
	}
	var ret lua.LValue = lua.LNil
	err := run(ctx, L, c.limit, func() error {
		if err := L.CallByParam(lua.P{
			Fn:      L.GetGlobal(HookName),
			NRet:    1,
			Protect: true,
		}, list, snapshotTable(L, target), snapshotTable(L, self)); err != nil {
			return err
		}
		ret = L.Get(-1)
		L.Pop(1)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("scripting: %s: %w", c.name, err)
	}
	switch v := ret.(type) {
	case lua.LString:
		c.logger.Debug("script preference", zap.String("script", c.name), zap.String("action", string(v)))
		return string(v), nil
	case *lua.LNilType:
		return "", nil
	default:
		return "", fmt.Errorf("scripting: %s: %s returned %s, want string or nil", c.name, HookName, ret.Type())
	}
}

// Close releases the VM.
func (c *Chooser) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.L.Close()
}

func snapshotTable(L *lua.LState, s combat.Snapshot) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "name", lua.LString(s.Name))
	L.SetField(t, "health", lua.LNumber(s.Health))
	L.SetField(t, "max_health", lua.LNumber(s.MaxHealth))
	L.SetField(t, "stamina", lua.LNumber(s.Stamina))
	L.SetField(t, "max_stamina", lua.LNumber(s.MaxStamina))
	L.SetField(t, "speed", lua.LNumber(s.Speed))
	return t
}
