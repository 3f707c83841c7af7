package battle

// Observer is told about every resolved action and about the end of the battle.
// Observers must not mutate the characters they are shown.
type Observer interface {
	// OnOutcome is called once per resolved action. A non-empty return value
	// is attached to the Outcome as Flavor.
	OnOutcome(o Outcome) string
	// OnEnd is called once when the battle reaches PhaseVictory or PhaseDefeat.
	OnEnd(result Phase, round int)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are no-ops.
type ObserverFuncs struct {
	Outcome func(o Outcome) string
	End     func(result Phase, round int)
}

// OnOutcome implements Observer.
func (f ObserverFuncs) OnOutcome(o Outcome) string {
	if f.Outcome == nil {
		return ""
	}
	return f.Outcome(o)
}

// OnEnd implements Observer.
func (f ObserverFuncs) OnEnd(result Phase, round int) {
	if f.End != nil {
		f.End(result, round)
	}
}
