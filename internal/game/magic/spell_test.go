package magic_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/magic"
)

func TestSpell_GenerateDamage_InRange(t *testing.T) {
	fire := &magic.Spell{ID: "fire", Name: "Fire", Cost: 25, BaseDamage: 600}
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		d := fire.GenerateDamage(src)
		require.GreaterOrEqual(t, d, 585)
		require.Less(t, d, 615)
	}
}

func TestProperty_Spell_GenerateDamage_InRange(t *testing.T) {
	src := dice.NewSeededSource(7)
	rapid.Check(t, func(rt *rapid.T) {
		base := rapid.IntRange(magic.DamageSpread, 5000).Draw(rt, "base")
		s := &magic.Spell{ID: "s", Name: "S", BaseDamage: base}
		d := s.GenerateDamage(src)
		assert.GreaterOrEqual(rt, d, base-15)
		assert.Less(rt, d, base+15)
	})
}

func TestSpell_Validate(t *testing.T) {
	assert.NoError(t, (&magic.Spell{ID: "fire", Name: "Fire", Cost: 25, BaseDamage: 600}).Validate())
	assert.Error(t, (&magic.Spell{Name: "Fire", Cost: 25, BaseDamage: 600}).Validate())
	assert.Error(t, (&magic.Spell{ID: "fire", Cost: 25, BaseDamage: 600}).Validate())
	assert.Error(t, (&magic.Spell{ID: "fire", Name: "Fire", Cost: -1, BaseDamage: 600}).Validate())
	assert.Error(t, (&magic.Spell{ID: "fire", Name: "Fire", Cost: 1, BaseDamage: 14}).Validate())
}

func TestLoadSpellFromBytes(t *testing.T) {
	s, err := magic.LoadSpellFromBytes([]byte(`
id: meteor
name: Meteor
cost: 40
base_damage: 1200
`))
	require.NoError(t, err)
	assert.Equal(t, "Meteor", s.Name)
	assert.Equal(t, 40, s.Cost)
	assert.Equal(t, dice.Range{Low: 1185, High: 1215}, s.DamageRange())
}

func TestLoadSpells_Dir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fire.yaml"), []byte("id: fire\nname: Fire\ncost: 25\nbase_damage: 600\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	spells, err := magic.LoadSpells(dir)
	require.NoError(t, err)
	require.Len(t, spells, 1)
	assert.Equal(t, "fire", spells[0].ID)
}

func TestLoadSpells_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("id: bad\nname: Bad\ncost: -3\nbase_damage: 600\n"), 0644))
	_, err := magic.LoadSpells(dir)
	assert.Error(t, err)
}

func TestLoadSpells_MissingDir(t *testing.T) {
	_, err := magic.LoadSpells("/nonexistent/spells")
	assert.Error(t, err)
}

func TestRegistry_DuplicateRejected(t *testing.T) {
	reg := magic.NewRegistry()
	fire := &magic.Spell{ID: "fire", Name: "Fire", Cost: 25, BaseDamage: 600}
	require.NoError(t, reg.Register(fire))
	assert.Error(t, reg.Register(&magic.Spell{ID: "fire", Name: "Other", BaseDamage: 100}))

	got, ok := reg.Spell("fire")
	require.True(t, ok)
	assert.Same(t, fire, got)
	_, ok = reg.Spell("ice")
	assert.False(t, ok)
}

func TestRegistry_AllSorted(t *testing.T) {
	reg := magic.NewRegistry()
	for _, id := range []string{"thunder", "blizzard", "fire"} {
		require.NoError(t, reg.Register(&magic.Spell{ID: id, Name: id, BaseDamage: 600}))
	}
	all := reg.All()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"blizzard", "fire", "thunder"}, []string{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, 3, reg.Len())
}
