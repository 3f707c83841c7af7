package battle

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/character"
)

// CurrentActor returns the ally whose action Act will resolve next.
//
// Postcondition: ok is true iff the phase is PhaseAlly; the returned ally is living.
func (b *Battle) CurrentActor() (*character.Character, int, bool) {
	b.syncCursor()
	if b.phase != PhaseAlly {
		return nil, NoTarget, false
	}
	return b.allies[b.cursor], b.cursor, true
}

// syncCursor moves past a current ally that was defeated outside Act, which
// can end the ally phase.
func (b *Battle) syncCursor() {
	if b.phase == PhaseAlly && b.allies[b.cursor].IsDefeated() {
		b.advanceCursor(b.cursor)
	}
}

// Act resolves a for the current ally and moves to the next living ally, or
// to PhaseCheckVictory after the last one.
//
// A *SelectionError leaves the battle unchanged and the same ally still to act.
// An Outcome with StatusInsufficientResource consumes the turn.
func (b *Battle) Act(a Action) (Outcome, error) {
	b.syncCursor()
	if b.phase != PhaseAlly {
		return Outcome{}, phaseError("Act", b.phase)
	}
	out, err := b.ResolveAction(b.allies[b.cursor], a.Kind, a.Selection)
	if err != nil {
		return Outcome{}, err
	}
	b.advanceCursor(b.cursor + 1)
	return out, nil
}

// Advance runs the current non-decision phase and moves to the next one.
// Only PhaseOpponent produces outcomes.
//
// Postcondition: returns ErrInvalidPhase during PhaseAlly or after the battle is over.
func (b *Battle) Advance() ([]Outcome, error) {
	switch b.phase {
	case PhaseCheckVictory:
		if !b.checkRosters() {
			b.setPhase(PhaseOpponent)
		}
		return nil, nil
	case PhaseOpponent:
		var outs []Outcome
		for i, opp := range b.opponents {
			if opp.IsDefeated() {
				continue
			}
			if out, ok := b.resolveOpponentAttack(i); ok {
				outs = append(outs, out)
			}
		}
		b.setPhase(PhaseCheckDefeat)
		return outs, nil
	case PhaseCheckDefeat:
		if !b.checkRosters() {
			b.round++
			b.enterAllyPhase()
		}
		return nil, nil
	default:
		return nil, phaseError("Advance", b.phase)
	}
}

// checkRosters ends the battle when a roster is broken, opponents first, and
// reports whether it did.
func (b *Battle) checkRosters() bool {
	switch {
	case b.CheckTermination(SideOpponents) == RosterBroken:
		b.finish(PhaseVictory)
		return true
	case b.CheckTermination(SideAllies) == RosterBroken:
		b.finish(PhaseDefeat)
		return true
	}
	return false
}

// enterAllyPhase points the cursor at the first living ally, skipping the
// phase entirely when no ally can act.
func (b *Battle) enterAllyPhase() {
	b.setPhase(PhaseAlly)
	b.advanceCursor(0)
	if b.phase == PhaseAlly {
		b.logger.Info("round started", zap.Int("round", b.round))
	}
}

// advanceCursor moves to the first living ally at or after from. Defeated
// allies are skipped without using a turn. The ally phase also ends once no
// opponent is left standing.
func (b *Battle) advanceCursor(from int) {
	if len(b.opponents.Living()) == 0 {
		from = len(b.allies)
	}
	for i := from; i < len(b.allies); i++ {
		if !b.allies[i].IsDefeated() {
			b.cursor = i
			return
		}
	}
	b.cursor = 0
	b.setPhase(PhaseCheckVictory)
}

func (b *Battle) setPhase(p Phase) {
	if b.phase == p {
		return
	}
	b.logger.Debug("phase changed",
		zap.Stringer("from", b.phase),
		zap.Stringer("to", p),
		zap.Int("round", b.round),
	)
	b.phase = p
}

func (b *Battle) finish(result Phase) {
	b.setPhase(result)
	b.logger.Info("battle ended",
		zap.Stringer("result", result),
		zap.Int("round", b.round),
		zap.Int("allies_defeated", b.allies.Defeated()),
		zap.Int("opponents_defeated", b.opponents.Defeated()),
	)
	for _, o := range b.observers {
		o.OnEnd(result, b.round)
	}
}
