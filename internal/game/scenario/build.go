package scenario

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/inventory"
	"github.com/cory-johannsen/skirmish/internal/game/magic"
)

// Rosters are the characters a scenario produces, in file order.
type Rosters struct {
	Allies    []*character.Character
	Opponents []*character.Character
}

// Build resolves every spell and item reference and creates the characters.
// Inline definitions are looked up first, then spells and items; either
// registry may be nil. Each character gets its own item quantities while
// spell and item definitions are shared.
//
// Precondition: s has passed Validate.
// Postcondition: Returns both rosters, or an error naming every unresolved reference.
func (s *Scenario) Build(spells *magic.Registry, items *inventory.Registry) (Rosters, error) {
	spellReg, itemReg, err := s.registries(spells, items)
	if err != nil {
		return Rosters{}, err
	}

	var errs []error
	build := func(side string, members []Member) []*character.Character {
		out := make([]*character.Character, 0, len(members))
		for i, m := range members {
			c, err := buildMember(m, spellReg, itemReg)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s[%d]: %w", side, i, err))
				continue
			}
			out = append(out, c)
		}
		return out
	}
	r := Rosters{
		Allies:    build("allies", s.Allies),
		Opponents: build("opponents", s.Opponents),
	}
	if len(errs) > 0 {
		return Rosters{}, fmt.Errorf("scenario %q: %w", s.ID, errors.Join(errs...))
	}
	return r, nil
}

// registries layers the inline definitions over the external ones.
func (s *Scenario) registries(spells *magic.Registry, items *inventory.Registry) (*magic.Registry, *inventory.Registry, error) {
	spellReg := magic.NewRegistry()
	for _, sp := range s.Spells {
		if err := spellReg.Register(sp); err != nil {
			return nil, nil, fmt.Errorf("scenario %q: %w", s.ID, err)
		}
	}
	if spells != nil {
		for _, sp := range spells.All() {
			if _, ok := spellReg.Spell(sp.ID); ok {
				continue
			}
			if err := spellReg.Register(sp); err != nil {
				return nil, nil, fmt.Errorf("scenario %q: %w", s.ID, err)
			}
		}
	}

	itemReg := inventory.NewRegistry()
	for _, it := range s.Items {
		if err := itemReg.RegisterItem(it); err != nil {
			return nil, nil, fmt.Errorf("scenario %q: %w", s.ID, err)
		}
	}
	if items != nil {
		for _, it := range items.AllItems() {
			if _, ok := itemReg.Item(it.ID); ok {
				continue
			}
			if err := itemReg.RegisterItem(it); err != nil {
				return nil, nil, fmt.Errorf("scenario %q: %w", s.ID, err)
			}
		}
	}
	return spellReg, itemReg, nil
}

func buildMember(m Member, spells *magic.Registry, items *inventory.Registry) (*character.Character, error) {
	var errs []error
	ownSpells := make([]*magic.Spell, 0, len(m.Spells))
	for _, id := range m.Spells {
		sp, ok := spells.Spell(id)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown spell %q", id))
			continue
		}
		ownSpells = append(ownSpells, sp)
	}
	slots := make([]*inventory.ItemSlot, 0, len(m.Items))
	for _, ref := range m.Items {
		def, ok := items.Item(ref.ID)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown item %q", ref.ID))
			continue
		}
		slots = append(slots, inventory.NewSlot(def, ref.Quantity))
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%s: %w", m.Name, errors.Join(errs...))
	}
	return character.Build(m.Stats(), ownSpells, slots)
}
