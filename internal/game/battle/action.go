package battle

import (
	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/inventory"
	"github.com/cory-johannsen/skirmish/internal/game/magic"
)

// ActionKind identifies what an actor does with its turn.
// The zero value (ActionUnknown) is intentionally invalid.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionAttack
	ActionMagic
	ActionItem
)

// String returns the human-readable name of the ActionKind.
func (a ActionKind) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionMagic:
		return "magic"
	case ActionItem:
		return "item"
	default:
		return "unknown"
	}
}

// Selection carries the indices an action needs. Target is a stable roster
// index on the opposing side, as reported by ListLivingTargets. Spell and Item
// index into the actor's spell list and item slots. Fields an action does not
// use are ignored.
type Selection struct {
	Target int
	Spell  int
	Item   int
}

// Action is one decision for the current actor.
type Action struct {
	Kind ActionKind
	Selection
}

// Attack builds an attack on the opponent at target.
func Attack(target int) Action {
	return Action{Kind: ActionAttack, Selection: Selection{Target: target}}
}

// Cast builds a spell cast of spell at target.
func Cast(spell, target int) Action {
	return Action{Kind: ActionMagic, Selection: Selection{Spell: spell, Target: target}}
}

// Use builds an item use of slot item. target matters only for attack items.
func Use(item, target int) Action {
	return Action{Kind: ActionItem, Selection: Selection{Item: item, Target: target}}
}

// Status tells whether an action took effect.
type Status int

const (
	// StatusApplied means the action took effect.
	StatusApplied Status = iota
	// StatusInsufficientResource means the actor lacked mana or the item slot was
	// empty. Nothing changed but the turn was consumed.
	StatusInsufficientResource
)

// String returns the human-readable name of the Status.
func (s Status) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusInsufficientResource:
		return "insufficient_resource"
	default:
		return "unknown"
	}
}

// NoTarget is the TargetIndex of an Outcome whose action hit nobody.
const NoTarget = -1

// Outcome records what one resolved action did.
type Outcome struct {
	Round      int
	Actor      *character.Character
	ActorSide  Side
	ActorIndex int
	Kind       ActionKind
	Status     Status

	// Spell is set for magic actions, Item for item actions.
	Spell *magic.Spell
	Item  *inventory.ItemDef

	// Target is nil when the action had no target.
	Target      *character.Character
	TargetSide  Side
	TargetIndex int

	// Amount is the damage dealt, or the nominal heal for heal items.
	Amount int

	ActorHealth    int
	ActorMana      int
	TargetHealth   int
	TargetDefeated bool

	Narrative string
	// Flavor is extra text returned by script hooks; usually empty.
	Flavor string
}

// HasTarget reports whether the action was aimed at a character.
func (o Outcome) HasTarget() bool { return o.Target != nil }
