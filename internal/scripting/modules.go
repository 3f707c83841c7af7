package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// RegisterModules defines the engine global in L:
//
//	engine.log.debug(msg) / engine.log.info(msg) / engine.log.warn(msg)
//	engine.dice.draw(low, high) -> integer in [low, high)
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState, scope string) {
	engine := L.NewTable()
	L.SetField(engine, "log", m.logModule(L, scope))
	L.SetField(engine, "dice", m.diceModule(L))
	L.SetGlobal("engine", engine)
}

func (m *Manager) logModule(L *lua.LState, scope string) *lua.LTable {
	logger := m.logger.With(zap.String("scope", scope), zap.String("source", "lua"))
	mod := L.NewTable()
	for name, fn := range map[string]func(string, ...zap.Field){
		"debug": logger.Debug,
		"info":  logger.Info,
		"warn":  logger.Warn,
	} {
		L.SetField(mod, name, L.NewFunction(func(L *lua.LState) int {
			fn(L.CheckString(1))
			return 0
		}))
	}
	return mod
}

func (m *Manager) diceModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "draw", L.NewFunction(func(L *lua.LState) int {
		r, err := dice.NewRange(L.CheckInt(1), L.CheckInt(2))
		if err != nil {
			L.ArgError(2, err.Error())
			return 0
		}
		L.Push(lua.LNumber(m.roller.Draw(r)))
		return 1
	}))
	return mod
}
