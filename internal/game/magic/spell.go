// Package magic defines spells: immutable, shareable definitions with a mana
// cost and a randomized damage range.
package magic

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// DamageSpread is the half-width of every spell's damage range around its base damage.
const DamageSpread = 15

// Spell is an immutable spell definition. One *Spell is shared by every
// character that can cast it.
type Spell struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Cost       int    `yaml:"cost"`
	BaseDamage int    `yaml:"base_damage"`
}

// DamageRange returns [BaseDamage-15, BaseDamage+15).
func (s *Spell) DamageRange() dice.Range {
	return dice.Spread(s.BaseDamage, DamageSpread)
}

// GenerateDamage draws a damage value uniformly from DamageRange.
//
// Precondition: src must be non-nil.
// Postcondition: s.DamageRange().Contains(result) is true.
func (s *Spell) GenerateDamage(src dice.Source) int {
	return dice.Draw(s.DamageRange(), src)
}

// Validate checks that the Spell satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (s *Spell) Validate() error {
	var errs []error
	if s.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if s.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if s.Cost < 0 {
		errs = append(errs, fmt.Errorf("cost must be >= 0, got %d", s.Cost))
	}
	if s.BaseDamage < DamageSpread {
		errs = append(errs, fmt.Errorf("base_damage must be >= %d, got %d", DamageSpread, s.BaseDamage))
	}
	if len(errs) > 0 {
		return fmt.Errorf("spell %q validation failed: %v", s.ID, errs)
	}
	return nil
}

// LoadSpellFromBytes parses and validates a single spell from YAML.
func LoadSpellFromBytes(data []byte) (*Spell, error) {
	var s Spell
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing spell YAML: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadSpells reads all *.yaml and *.yml files from dir, one spell per file.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid spells or the first encountered error.
func LoadSpells(dir string) ([]*Spell, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadSpells: cannot read directory %q: %w", dir, err)
	}

	var spells []*Spell
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadSpells: cannot read file %q: %w", path, err)
		}
		s, err := LoadSpellFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("LoadSpells: %q: %w", path, err)
		}
		spells = append(spells, s)
	}
	return spells, nil
}
