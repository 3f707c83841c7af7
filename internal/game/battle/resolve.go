package battle

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/inventory"
)

// ResolveAction applies one action by actor. It does not move the turn
// cursor; Act does that for drivers that let the Battle keep turn order.
//
// Every index in sel is validated before anything changes. A bad actor,
// action, spell, item or target yields a *SelectionError and no change.
// Lacking mana or an empty item slot is not an error: the Outcome has
// StatusInsufficientResource and nothing changes.
//
// Precondition: the battle is not over.
// Postcondition: on success the Outcome describes every change made.
func (b *Battle) ResolveAction(actor *character.Character, kind ActionKind, sel Selection) (Outcome, error) {
	if b.phase.IsTerminal() {
		return Outcome{}, phaseError("ResolveAction", b.phase)
	}
	side, idx, ok := b.sideOf(actor)
	if !ok {
		return Outcome{}, invalid("actor", NoTarget, "not a member of this battle")
	}
	if actor.IsDefeated() {
		return Outcome{}, invalid("actor", idx, "%s is defeated", actor.Name)
	}

	out := Outcome{
		Round:       b.round,
		Actor:       actor,
		ActorSide:   side,
		ActorIndex:  idx,
		Kind:        kind,
		TargetSide:  side.Foe(),
		TargetIndex: NoTarget,
	}

	var err error
	switch kind {
	case ActionAttack:
		err = b.resolveAttack(&out, sel)
	case ActionMagic:
		if !actor.HasSpells() {
			return Outcome{}, invalid("action", int(kind), "%s knows no spells", actor.Name)
		}
		err = b.resolveMagic(&out, sel)
	case ActionItem:
		if !actor.HasItems() {
			return Outcome{}, invalid("action", int(kind), "%s carries no items", actor.Name)
		}
		err = b.resolveItem(&out, sel)
	default:
		return Outcome{}, invalid("action", int(kind), "unknown action %s", kind)
	}
	if err != nil {
		return Outcome{}, err
	}

	b.record(&out)
	return out, nil
}

// foeTarget validates that index names a living member of the actor's foes.
func (b *Battle) foeTarget(out *Outcome, index int) (*character.Character, error) {
	foes := b.roster(out.TargetSide)
	if index < 0 || index >= len(foes) {
		return nil, invalid("target", index, "out of range [0, %d)", len(foes))
	}
	t := foes[index]
	if t.IsDefeated() {
		return nil, invalid("target", index, "%s is defeated", t.Name)
	}
	return t, nil
}

func (b *Battle) resolveAttack(out *Outcome, sel Selection) error {
	target, err := b.foeTarget(out, sel.Target)
	if err != nil {
		return err
	}
	dmg := out.Actor.GenerateAttackDamage(b.src)
	target.TakeDamage(dmg)
	b.setTarget(out, target, sel.Target)
	out.Amount = dmg
	out.Narrative = fmt.Sprintf("%s attacked %s for %d points of damage.", out.Actor.Name, target.Name, dmg)
	return nil
}

func (b *Battle) resolveMagic(out *Outcome, sel Selection) error {
	actor := out.Actor
	spell, ok := actor.Spell(sel.Spell)
	if !ok {
		return invalid("spell", sel.Spell, "out of range [0, %d)", len(actor.Spells()))
	}
	target, err := b.foeTarget(out, sel.Target)
	if err != nil {
		return err
	}
	out.Spell = spell

	if !actor.CanAfford(spell.Cost) {
		out.Status = StatusInsufficientResource
		out.Narrative = fmt.Sprintf("%s lacks the mana for %s (needs %d, has %d).", actor.Name, spell.Name, spell.Cost, actor.Mana())
		return nil
	}

	actor.SpendMana(spell.Cost)
	dmg := spell.GenerateDamage(b.src)
	target.TakeDamage(dmg)
	b.setTarget(out, target, sel.Target)
	out.Amount = dmg
	out.Narrative = fmt.Sprintf("%s deals %d points of damage to %s.", spell.Name, dmg, target.Name)
	return nil
}

func (b *Battle) resolveItem(out *Outcome, sel Selection) error {
	actor := out.Actor
	slot, ok := actor.ItemSlot(sel.Item)
	if !ok {
		return invalid("item", sel.Item, "out of range [0, %d)", len(actor.Items()))
	}
	item := slot.Item
	var target *character.Character
	if item.Category.TargetsOpponent() {
		t, err := b.foeTarget(out, sel.Target)
		if err != nil {
			return err
		}
		target = t
	}
	out.Item = item

	if !slot.Consume() {
		out.Status = StatusInsufficientResource
		out.Narrative = fmt.Sprintf("%s has no %s left.", actor.Name, item.Name)
		return nil
	}

	switch item.Category {
	case inventory.CategoryHeal:
		actor.Heal(item.Power)
		out.Amount = item.Power
		out.Narrative = fmt.Sprintf("%s heals %s for %d HP.", item.Name, actor.Name, item.Power)
	case inventory.CategoryFullRestore:
		actor.RestoreFull()
		out.Narrative = fmt.Sprintf("%s fully restores %s's HP/MP.", item.Name, actor.Name)
	case inventory.CategoryAttack:
		target.TakeDamage(item.Power)
		b.setTarget(out, target, sel.Target)
		out.Amount = item.Power
		out.Narrative = fmt.Sprintf("%s deals %d points of damage to %s.", item.Name, item.Power, target.Name)
	}
	return nil
}

// resolveOpponentAttack makes the living opponent at idx strike a random ally.
// Returns false when no ally could be picked.
func (b *Battle) resolveOpponentAttack(idx int) (Outcome, bool) {
	actor := b.opponents[idx]

	var targetIdx int
	if b.skipDefeated {
		living := b.allies.Living()
		if len(living) == 0 {
			return Outcome{}, false
		}
		targetIdx = living[b.src.Intn(len(living))].Index
	} else {
		targetIdx = b.src.Intn(len(b.allies))
	}
	target := b.allies[targetIdx]

	dmg := actor.GenerateAttackDamage(b.src)
	target.TakeDamage(dmg)

	out := Outcome{
		Round:      b.round,
		Actor:      actor,
		ActorSide:  SideOpponents,
		ActorIndex: idx,
		Kind:       ActionAttack,
		TargetSide: SideAllies,
		Amount:     dmg,
		Narrative:  fmt.Sprintf("%s attacks %s for %d points of damage.", actor.Name, target.Name, dmg),
	}
	b.setTarget(&out, target, targetIdx)
	b.record(&out)
	return out, true
}

func (b *Battle) setTarget(out *Outcome, target *character.Character, index int) {
	out.Target = target
	out.TargetIndex = index
	out.TargetHealth = target.Health()
	out.TargetDefeated = target.IsDefeated()
}

// record fills in the actor's resulting pools, logs the outcome and lets
// observers attach flavor text.
func (b *Battle) record(out *Outcome) {
	out.ActorHealth = out.Actor.Health()
	out.ActorMana = out.Actor.Mana()

	fields := []zap.Field{
		zap.Int("round", out.Round),
		zap.String("actor", out.Actor.Name),
		zap.Stringer("side", out.ActorSide),
		zap.Stringer("action", out.Kind),
		zap.Stringer("status", out.Status),
		zap.Int("amount", out.Amount),
	}
	if out.HasTarget() {
		fields = append(fields,
			zap.String("target", out.Target.Name),
			zap.Int("target_health", out.TargetHealth),
		)
	}
	b.logger.Debug("action resolved", fields...)

	for _, o := range b.observers {
		if flavor := o.OnOutcome(*out); flavor != "" {
			out.Flavor = flavor
		}
	}
}
