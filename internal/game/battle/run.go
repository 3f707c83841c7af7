package battle

import (
	"context"
	"errors"
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/character"
)

//go:generate mockgen -destination=mock/mock_decider.go -package=battlemock github.com/cory-johannsen/skirmish/internal/game/battle Decider

// Turn is what a Decider is shown when an ally must act.
type Turn struct {
	Battle *Battle
	Actor  *character.Character
	Index  int
	Round  int
	// Retry holds the rejection of the previous decision for this same turn,
	// nil on the first request.
	Retry error
}

// Decider supplies one Action per ally turn, typically by asking a player.
type Decider interface {
	Decide(ctx context.Context, turn Turn) (Action, error)
}

// DeciderFunc adapts a function to Decider.
type DeciderFunc func(ctx context.Context, turn Turn) (Action, error)

// Decide implements Decider.
func (f DeciderFunc) Decide(ctx context.Context, turn Turn) (Action, error) { return f(ctx, turn) }

// Run steps the battle to a terminal phase, asking d for every ally decision.
// A decision rejected with ErrInvalidSelection is asked for again with
// Turn.Retry set, unless it rejects the actor itself.
//
// Postcondition: returns the terminal phase, or the current phase with the
// error that stopped the run (ctx cancellation or a Decider failure).
func (b *Battle) Run(ctx context.Context, d Decider) (Phase, error) {
	for !b.phase.IsTerminal() {
		if err := ctx.Err(); err != nil {
			return b.phase, err
		}
		if b.phase != PhaseAlly {
			if _, err := b.Advance(); err != nil {
				return b.phase, err
			}
			continue
		}
		if err := b.takeTurn(ctx, d); err != nil {
			return b.phase, err
		}
	}
	return b.phase, nil
}

func (b *Battle) takeTurn(ctx context.Context, d Decider) error {
	actor, idx, ok := b.CurrentActor()
	if !ok {
		return nil
	}
	turn := Turn{Battle: b, Actor: actor, Index: idx, Round: b.round}
	for {
		a, err := d.Decide(ctx, turn)
		if err != nil {
			return fmt.Errorf("deciding for %s: %w", actor.Name, err)
		}
		// the ally may have been defeated while the decision was made
		if cur, _, ok := b.CurrentActor(); !ok || cur != actor {
			return nil
		}
		if _, err = b.Act(a); err == nil {
			return nil
		}
		var sel *SelectionError
		if !errors.As(err, &sel) || sel.Field == "actor" {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		turn.Retry = err
	}
}
