// Package scenario describes a battle setup in YAML: the spell and item
// definitions in play and the two rosters built from them.
package scenario

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/inventory"
	"github.com/cory-johannsen/skirmish/internal/game/magic"
)

//go:embed default.yaml
var defaultYAML []byte

// ItemRef grants a character quantity units of the item with ID.
type ItemRef struct {
	ID       string `yaml:"id"`
	Quantity int    `yaml:"quantity"`
}

// Member is one roster entry. Spells and items are referenced by ID.
type Member struct {
	Name   string    `yaml:"name"`
	HP     int       `yaml:"hp"`
	MP     int       `yaml:"mp"`
	Attack int       `yaml:"attack"`
	Spells []string  `yaml:"spells"`
	Items  []ItemRef `yaml:"items"`
}

// Stats converts the member's numbers to character.Stats.
func (m Member) Stats() character.Stats {
	return character.Stats{Name: m.Name, Health: m.HP, Mana: m.MP, Attack: m.Attack}
}

// Scenario is a complete battle setup.
type Scenario struct {
	// ID names the scenario; it is also the scripting scope for its hooks.
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	// DefeatQuorum overrides the configured quorum when non-zero.
	DefeatQuorum int `yaml:"defeat_quorum"`

	Spells []*magic.Spell       `yaml:"spells"`
	Items  []*inventory.ItemDef `yaml:"items"`

	Allies    []Member `yaml:"allies"`
	Opponents []Member `yaml:"opponents"`
}

// Validate checks everything that can be checked without resolving references.
//
// Postcondition: returns nil iff the scenario is well formed, or an error listing every violation.
func (s *Scenario) Validate() error {
	var errs []error
	if s.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if s.DefeatQuorum < 0 {
		errs = append(errs, fmt.Errorf("defeat_quorum must be >= 0, got %d", s.DefeatQuorum))
	}

	spellIDs := make(map[string]bool, len(s.Spells))
	for i, sp := range s.Spells {
		if sp == nil {
			errs = append(errs, fmt.Errorf("spell %d is empty", i))
			continue
		}
		if err := sp.Validate(); err != nil {
			errs = append(errs, err)
		}
		if spellIDs[sp.ID] {
			errs = append(errs, fmt.Errorf("spell %q defined twice", sp.ID))
		}
		spellIDs[sp.ID] = true
	}
	itemIDs := make(map[string]bool, len(s.Items))
	for i, it := range s.Items {
		if it == nil {
			errs = append(errs, fmt.Errorf("item %d is empty", i))
			continue
		}
		if err := it.Validate(); err != nil {
			errs = append(errs, err)
		}
		if itemIDs[it.ID] {
			errs = append(errs, fmt.Errorf("item %q defined twice", it.ID))
		}
		itemIDs[it.ID] = true
	}

	errs = append(errs, validateMembers("allies", s.Allies)...)
	errs = append(errs, validateMembers("opponents", s.Opponents)...)
	if n := min(len(s.Allies), len(s.Opponents)); n > 0 && s.DefeatQuorum > n {
		errs = append(errs, fmt.Errorf("defeat_quorum %d exceeds the smaller roster size %d", s.DefeatQuorum, n))
	}

	if len(errs) > 0 {
		return fmt.Errorf("scenario %q validation failed: %w", s.ID, errors.Join(errs...))
	}
	return nil
}

func validateMembers(side string, members []Member) []error {
	if len(members) == 0 {
		return []error{fmt.Errorf("%s must not be empty", side)}
	}
	var errs []error
	for i, m := range members {
		if err := m.Stats().Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s[%d]: %w", side, i, err))
		}
		for _, ref := range m.Items {
			if ref.Quantity < 0 {
				errs = append(errs, fmt.Errorf("%s[%d]: item %q quantity must be >= 0, got %d", side, i, ref.ID, ref.Quantity))
			}
		}
	}
	return errs
}

// Quorum returns the scenario's defeat quorum, or fallback when it sets none.
func (s *Scenario) Quorum(fallback int) int {
	if s.DefeatQuorum > 0 {
		return s.DefeatQuorum
	}
	return fallback
}

// LoadFromBytes parses and validates a scenario from YAML.
func LoadFromBytes(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and validates the scenario file at path.
//
// Precondition: path names a readable YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario.Load: cannot read file %q: %w", path, err)
	}
	s, err := LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("scenario.Load: %q: %w", path, err)
	}
	return s, nil
}

// Default returns a fresh copy of the built-in scenario: three heroes with
// four spells and three kinds of items against three enemies.
func Default() *Scenario {
	s, err := LoadFromBytes(defaultYAML)
	if err != nil {
		panic("scenario: built-in scenario is invalid: " + err.Error())
	}
	return s
}
