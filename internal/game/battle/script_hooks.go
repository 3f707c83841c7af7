package battle

import (
	lua "github.com/yuin/gopher-lua"
)

// Hook names looked up in battle scripts.
const (
	HookOnOutcome   = "on_outcome"
	HookOnBattleEnd = "on_battle_end"
)

// ScriptCaller is the interface required by ScriptObserver to reach Lua hooks.
type ScriptCaller interface {
	// CallHook calls a named Lua function in the given scope's VM.
	// Returns (LNil, nil) if the function is not defined.
	CallHook(scope, hook string, args ...lua.LValue) (lua.LValue, error)
}

// ScriptObserver forwards battle events to Lua hooks:
//
//	on_outcome(actor, action, target, amount, status) -> optional flavor string
//	on_battle_end(result, round)
//
// target is nil when the action had no target. Hooks receive names and
// numbers only, so scripts cannot change the battle.
type ScriptObserver struct {
	caller ScriptCaller
	scope  string
}

// NewScriptObserver creates a ScriptObserver dispatching into scope.
//
// Precondition: caller must not be nil.
func NewScriptObserver(caller ScriptCaller, scope string) *ScriptObserver {
	if caller == nil {
		panic("battle.NewScriptObserver: caller must not be nil")
	}
	return &ScriptObserver{caller: caller, scope: scope}
}

// OnOutcome implements Observer.
func (s *ScriptObserver) OnOutcome(o Outcome) string {
	var target lua.LValue = lua.LNil
	if o.HasTarget() {
		target = lua.LString(o.Target.Name)
	}
	ret, err := s.caller.CallHook(s.scope, HookOnOutcome,
		lua.LString(o.Actor.Name),
		lua.LString(o.Kind.String()),
		target,
		lua.LNumber(o.Amount),
		lua.LString(o.Status.String()),
	)
	if err != nil {
		return ""
	}
	if str, ok := ret.(lua.LString); ok {
		return string(str)
	}
	return ""
}

// OnEnd implements Observer.
func (s *ScriptObserver) OnEnd(result Phase, round int) {
	s.caller.CallHook(s.scope, HookOnBattleEnd, lua.LString(result.String()), lua.LNumber(round)) //nolint:errcheck
}
