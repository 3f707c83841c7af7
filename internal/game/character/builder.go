package character

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/inventory"
	"github.com/cory-johannsen/skirmish/internal/game/magic"
)

// Stats are the fixed numbers a character is created with.
type Stats struct {
	Name   string
	Health int
	Mana   int
	// Attack is the base attack; damage is drawn from [Attack-10, Attack+10).
	Attack int
}

// Validate checks Stats invariants and reports every violation at once.
func (s Stats) Validate() error {
	var errs []error
	if s.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if s.Health < 1 {
		errs = append(errs, fmt.Errorf("health must be >= 1, got %d", s.Health))
	}
	if s.Mana < 0 {
		errs = append(errs, fmt.Errorf("mana must be >= 0, got %d", s.Mana))
	}
	if s.Attack < AttackSpread {
		errs = append(errs, fmt.Errorf("attack must be >= %d, got %d", AttackSpread, s.Attack))
	}
	if len(errs) > 0 {
		return fmt.Errorf("character %q: %w", s.Name, errors.Join(errs...))
	}
	return nil
}

// Build creates a Character at full health and mana.
//
// Spells are shared by pointer. Item slots are cloned so the new character's
// quantities are its own.
//
// Precondition: spells and the items' definitions must be non-nil.
// Postcondition: Returns a Character with a fresh ID, or an error when stats are invalid.
func Build(s Stats, spells []*magic.Spell, items []*inventory.ItemSlot) (*Character, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	for i, sp := range spells {
		if sp == nil {
			return nil, fmt.Errorf("character %q: spell %d is nil", s.Name, i)
		}
	}
	for i, it := range items {
		if it == nil || it.Item == nil {
			return nil, fmt.Errorf("character %q: item slot %d has no definition", s.Name, i)
		}
	}
	ownSpells := make([]*magic.Spell, len(spells))
	copy(ownSpells, spells)
	return &Character{
		ID:        uuid.NewString(),
		Name:      s.Name,
		maxHealth: s.Health,
		health:    s.Health,
		maxMana:   s.Mana,
		mana:      s.Mana,
		attack:    dice.Spread(s.Attack, AttackSpread),
		spells:    ownSpells,
		items:     inventory.CloneSlots(items),
	}, nil
}

// MustBuild is Build that panics on error, for fixtures and tests.
func MustBuild(s Stats, spells []*magic.Spell, items []*inventory.ItemSlot) *Character {
	c, err := Build(s, spells, items)
	if err != nil {
		panic("character: MustBuild: " + err.Error())
	}
	return c
}
