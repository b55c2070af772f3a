package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers the engine.* Lua table into L:
//
//	engine.log(msg)                          -- structured log line
//	engine.roll(expr) -> int                 -- dice expression total
//	engine.change_money(amount, reason)
//	engine.change_opinion(delta)
//	engine.raise_aggressiveness(village, delta)
//	engine.notify(text)                      -- queue a notification
//
// Callbacks left nil on the Manager make the corresponding function a
// no-op, so scenario scripts degrade gracefully in tests.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()

	L.SetField(engine, "log", L.NewFunction(func(L *lua.LState) int {
		m.logger.Info("scripting: script log", zap.String("msg", L.CheckString(1)))
		return 0
	}))

	L.SetField(engine, "roll", L.NewFunction(func(L *lua.LState) int {
		expr := L.CheckString(1)
		result, err := m.roller.RollExpr(expr)
		if err != nil {
			L.RaiseError("bad dice expression %q: %v", expr, err)
			return 0
		}
		L.Push(lua.LNumber(result.Total()))
		return 1
	}))

	L.SetField(engine, "change_money", L.NewFunction(func(L *lua.LState) int {
		amount := L.CheckInt(1)
		reason := L.CheckString(2)
		if m.ChangeMoney != nil {
			m.ChangeMoney(amount, reason)
		}
		return 0
	}))

	L.SetField(engine, "change_opinion", L.NewFunction(func(L *lua.LState) int {
		delta := L.CheckInt(1)
		if m.ChangeOpinion != nil {
			m.ChangeOpinion(delta)
		}
		return 0
	}))

	L.SetField(engine, "raise_aggressiveness", L.NewFunction(func(L *lua.LState) int {
		village := L.CheckString(1)
		delta := L.CheckInt(2)
		if m.RaiseAggressiveness != nil {
			m.RaiseAggressiveness(village, delta)
		}
		return 0
	}))

	L.SetField(engine, "notify", L.NewFunction(func(L *lua.LState) int {
		text := L.CheckString(1)
		if m.Notify != nil {
			m.Notify(text)
		}
		return 0
	}))

	L.SetGlobal("engine", engine)
}
