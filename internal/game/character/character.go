// Package character defines the combat participant: health and mana pools, an
// attack range, and the spells and items the character owns.
package character

import (
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/inventory"
	"github.com/cory-johannsen/skirmish/internal/game/magic"
)

// AttackSpread is the fixed half-width of a character's attack range around its base attack.
const AttackSpread = 10

// Character is one member of a roster.
//
// Invariant: 0 <= health <= maxHealth and 0 <= mana <= maxMana, except that
// SpendMana trusts its caller to have checked the cost.
// A Character with health == 0 is defeated; it stays in its roster.
type Character struct {
	// ID identifies the character in logs; it carries no game meaning.
	ID string
	// Name is for display only.
	Name string

	maxHealth int
	health    int
	maxMana   int
	mana      int
	attack    dice.Range

	spells []*magic.Spell
	items  []*inventory.ItemSlot
}

// GenerateAttackDamage draws a value uniformly from [attackLow, attackHigh).
// It does not change the character.
//
// Precondition: src must be non-nil.
func (c *Character) GenerateAttackDamage(src dice.Source) int {
	return dice.Draw(c.attack, src)
}

// TakeDamage subtracts amount from health, flooring at zero, and returns the new health.
// Overkill is allowed. A negative amount is treated as zero.
//
// Postcondition: health == max(0, previous - max(amount, 0)).
func (c *Character) TakeDamage(amount int) int {
	if amount < 0 {
		amount = 0
	}
	c.health -= amount
	if c.health < 0 {
		c.health = 0
	}
	return c.health
}

// Heal adds amount to health, capping at maxHealth. A negative amount is treated as zero.
//
// Postcondition: health == min(maxHealth, previous + max(amount, 0)).
func (c *Character) Heal(amount int) {
	if amount < 0 {
		amount = 0
	}
	c.health += amount
	if c.health > c.maxHealth {
		c.health = c.maxHealth
	}
}

// RestoreFull sets health and mana back to their maxima.
func (c *Character) RestoreFull() {
	c.health = c.maxHealth
	c.mana = c.maxMana
}

// SpendMana subtracts cost from mana without clamping.
//
// Precondition: cost <= Mana(). The battle engine checks this before calling.
func (c *Character) SpendMana(cost int) {
	c.mana -= cost
}

// CanAfford reports whether the character has at least cost mana.
func (c *Character) CanAfford(cost int) bool { return cost <= c.mana }

// IsDefeated reports whether health has reached zero.
func (c *Character) IsDefeated() bool { return c.health == 0 }

// Health returns current health.
func (c *Character) Health() int { return c.health }

// MaxHealth returns maximum health.
func (c *Character) MaxHealth() int { return c.maxHealth }

// Mana returns current mana.
func (c *Character) Mana() int { return c.mana }

// MaxMana returns maximum mana.
func (c *Character) MaxMana() int { return c.maxMana }

// AttackRange returns the half-open range attack damage is drawn from.
func (c *Character) AttackRange() dice.Range { return c.attack }

// Spells returns the character's spells in order. The slice is a copy; the
// spells are shared definitions.
func (c *Character) Spells() []*magic.Spell {
	out := make([]*magic.Spell, len(c.spells))
	copy(out, c.spells)
	return out
}

// Spell returns the spell at index i and whether i is in range.
func (c *Character) Spell(i int) (*magic.Spell, bool) {
	if i < 0 || i >= len(c.spells) {
		return nil, false
	}
	return c.spells[i], true
}

// Items returns a snapshot of the character's item slots in order.
func (c *Character) Items() []inventory.ItemSlot {
	out := make([]inventory.ItemSlot, len(c.items))
	for i, s := range c.items {
		out[i] = *s
	}
	return out
}

// ItemSlot returns the live slot at index i and whether i is in range.
func (c *Character) ItemSlot(i int) (*inventory.ItemSlot, bool) {
	if i < 0 || i >= len(c.items) {
		return nil, false
	}
	return c.items[i], true
}

// HasSpells reports whether the character owns any spell.
func (c *Character) HasSpells() bool { return len(c.spells) > 0 }

// HasItems reports whether the character owns any item slot, empty or not.
func (c *Character) HasItems() bool { return len(c.items) > 0 }
