package battle

import (
	"context"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// RandomDecider picks uniformly at random: an available action, then a spell
// or item slot, then a living opponent. It never makes an invalid selection
// but may pick an unaffordable spell or an empty slot, which costs the turn.
type RandomDecider struct {
	src dice.Source
}

// NewRandomDecider creates a RandomDecider drawing from src.
//
// Precondition: src must not be nil.
func NewRandomDecider(src dice.Source) *RandomDecider {
	if src == nil {
		panic("battle.NewRandomDecider: src must not be nil")
	}
	return &RandomDecider{src: src}
}

// Decide implements Decider.
func (r *RandomDecider) Decide(_ context.Context, turn Turn) (Action, error) {
	b := turn.Battle
	targets := b.ListLivingTargets(SideOpponents)
	target := targets[r.src.Intn(len(targets))].Index

	kinds := b.ListAvailableActions(turn.Actor)
	switch kinds[r.src.Intn(len(kinds))] {
	case ActionMagic:
		return Cast(r.src.Intn(len(turn.Actor.Spells())), target), nil
	case ActionItem:
		return Use(r.src.Intn(len(turn.Actor.Items())), target), nil
	default:
		return Attack(target), nil
	}
}
