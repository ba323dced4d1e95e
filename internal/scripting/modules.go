package scripting

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// registerDice installs the dice global: dice.roll(expr) rolls a dice
// expression such as "2d6+1"; dice.chance(p) is true with probability p.
//
// Precondition: src must be non-nil.
func registerDice(L *lua.LState, src dice.Source) {
	mod := L.NewTable()
	L.SetField(mod, "roll", L.NewFunction(func(L *lua.LState) int {
		expr, err := dice.Parse(L.CheckString(1))
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		L.Push(lua.LNumber(expr.Roll(src)))
		return 1
	}))
	L.SetField(mod, "chance", L.NewFunction(func(L *lua.LState) int {
		p := float64(L.CheckNumber(1))
		L.Push(lua.LBool(src.Float64() < p))
		return 1
	}))
	L.SetGlobal("dice", mod)
}
