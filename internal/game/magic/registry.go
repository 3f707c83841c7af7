package magic

import (
	"fmt"
	"sort"
)

// Registry holds spell definitions indexed by ID.
type Registry struct {
	spells map[string]*Spell
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{spells: make(map[string]*Spell)}
}

// Register adds s to the registry.
//
// Precondition: s must not be nil.
// Postcondition: Spell(s.ID) returns s; returns error if s.ID is already registered.
func (r *Registry) Register(s *Spell) error {
	if _, exists := r.spells[s.ID]; exists {
		return fmt.Errorf("magic: Registry.Register: spell ID %q already registered", s.ID)
	}
	r.spells[s.ID] = s
	return nil
}

// Spell returns the spell for id and whether it was found.
func (r *Registry) Spell(id string) (*Spell, bool) {
	s, ok := r.spells[id]
	return s, ok
}

// All returns every registered spell sorted by ID.
func (r *Registry) All() []*Spell {
	out := make([]*Spell, 0, len(r.spells))
	for _, s := range r.spells {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of registered spells.
func (r *Registry) Len() int { return len(r.spells) }
