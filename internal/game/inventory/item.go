// Package inventory defines consumable items and the per-character slots that
// track how many of each item a character still carries.
package inventory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category selects how an item's Power is applied when it is used.
type Category string

// Category constants for ItemDef.Category.
const (
	CategoryHeal        Category = "heal"
	CategoryFullRestore Category = "full_restore"
	CategoryAttack      Category = "attack"
)

// categoryAliases maps accepted spellings to a Category. The potion/elixer
// names are the item types used by older content files.
var categoryAliases = map[string]Category{
	"heal":         CategoryHeal,
	"potion":       CategoryHeal,
	"full_restore": CategoryFullRestore,
	"fullrestore":  CategoryFullRestore,
	"elixer":       CategoryFullRestore,
	"elixir":       CategoryFullRestore,
	"attack":       CategoryAttack,
}

// ParseCategory resolves s (case-insensitive, aliases allowed) to a Category.
func ParseCategory(s string) (Category, error) {
	c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown item category %q", s)
	}
	return c, nil
}

// UnmarshalYAML accepts any spelling known to ParseCategory.
func (c *Category) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseCategory(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// TargetsOpponent reports whether using an item of this category needs an opponent target.
func (c Category) TargetsOpponent() bool {
	return c == CategoryAttack
}

// ItemDef is an immutable item definition shared by every owner.
//
// Power is the heal amount for CategoryHeal and the damage for CategoryAttack;
// CategoryFullRestore ignores it.
type ItemDef struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Category    Category `yaml:"category"`
	Description string   `yaml:"description"`
	Power       int      `yaml:"power"`
}

// Validate checks that the ItemDef satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (d *ItemDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	switch d.Category {
	case CategoryHeal, CategoryAttack:
		if d.Power <= 0 {
			errs = append(errs, fmt.Errorf("power must be > 0 for category %s, got %d", d.Category, d.Power))
		}
	case CategoryFullRestore:
	default:
		errs = append(errs, fmt.Errorf("category must be one of heal, full_restore, attack; got %q", d.Category))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item %q validation failed: %v", d.ID, errs)
	}
	return nil
}

// LoadItemFromBytes parses and validates a single item definition from YAML.
func LoadItemFromBytes(data []byte) (*ItemDef, error) {
	var d ItemDef
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing item YAML: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadItems reads all *.yaml and *.yml files from dir, parses each as an
// ItemDef, validates it, and returns the collected slice.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid ItemDefs or the first encountered error.
func LoadItems(dir string) ([]*ItemDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadItems: cannot read directory %q: %w", dir, err)
	}

	var items []*ItemDef
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadItems: cannot read file %q: %w", path, err)
		}
		d, err := LoadItemFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("LoadItems: invalid item in %q: %w", path, err)
		}
		items = append(items, d)
	}
	return items, nil
}
