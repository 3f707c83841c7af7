package character_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

type fixedSrc struct{ val int }

type helperT interface {
	require.TestingT
	Helper()
}

func (f fixedSrc) Intn(_ int) int { return f.val }

func newFighter(t helperT, hp, mp, atk int) *character.Character {
	t.Helper()
	c, err := character.Build(character.Stats{Name: "Fighter", Health: hp, Mana: mp, Attack: atk}, nil, nil)
	require.NoError(t, err)
	return c
}

func TestTakeDamage_ClampsAtZero(t *testing.T) {
	c := newFighter(t, 100, 0, 20)
	assert.Equal(t, 40, c.TakeDamage(60))
	assert.Equal(t, 0, c.TakeDamage(500))
	assert.True(t, c.IsDefeated())
	assert.Equal(t, 0, c.TakeDamage(1))
}

func TestTakeDamage_NegativeIsNoop(t *testing.T) {
	c := newFighter(t, 100, 0, 20)
	assert.Equal(t, 100, c.TakeDamage(-30))
}

func TestHeal_CapsAtMax(t *testing.T) {
	c := newFighter(t, 100, 0, 20)
	c.TakeDamage(30)
	c.Heal(10)
	assert.Equal(t, 80, c.Health())
	c.Heal(50)
	assert.Equal(t, 100, c.Health())
	c.Heal(-5)
	assert.Equal(t, 100, c.Health())
}

func TestRestoreFull(t *testing.T) {
	c := newFighter(t, 100, 50, 20)
	c.TakeDamage(99)
	c.SpendMana(40)
	c.RestoreFull()
	assert.Equal(t, 100, c.Health())
	assert.Equal(t, 50, c.Mana())
}

func TestSpendMana_AndCanAfford(t *testing.T) {
	c := newFighter(t, 100, 30, 20)
	assert.True(t, c.CanAfford(25))
	c.SpendMana(25)
	assert.Equal(t, 5, c.Mana())
	assert.False(t, c.CanAfford(25))
	assert.True(t, c.CanAfford(5))
}

func TestGenerateAttackDamage_FixedSource(t *testing.T) {
	c := newFighter(t, 100, 0, 300)
	assert.Equal(t, 290, c.GenerateAttackDamage(fixedSrc{val: 0}))
	assert.Equal(t, 309, c.GenerateAttackDamage(fixedSrc{val: 19}))
	assert.Equal(t, 100, c.Health(), "generating damage has no side effect")
}

func TestGenerateAttackDamage_Uniform(t *testing.T) {
	c := newFighter(t, 100, 0, 300)
	src := dice.NewSeededSource(2024)
	const samples = 200_000
	counts := make(map[int]int)
	for i := 0; i < samples; i++ {
		d := c.GenerateAttackDamage(src)
		require.True(t, c.AttackRange().Contains(d), "damage %d outside range", d)
		counts[d]++
	}
	require.Len(t, counts, 20, "every value in [290, 310) is reachable")

	expected := float64(samples) / 20
	for v, n := range counts {
		assert.InDelta(t, expected, float64(n), expected*0.05, "value %d drawn %d times", v, n)
	}

	var chi2 float64
	for _, n := range counts {
		d := float64(n) - expected
		chi2 += d * d / expected
	}
	// 19 degrees of freedom; 43.8 is the 0.001 critical value.
	assert.Less(t, chi2, 43.8)
	assert.False(t, math.IsNaN(chi2))
}

func TestProperty_TakeDamage(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxHP := rapid.IntRange(1, 10_000).Draw(rt, "maxHP")
		pre := rapid.IntRange(0, maxHP).Draw(rt, "preDamage")
		d := rapid.IntRange(0, 20_000).Draw(rt, "damage")

		c := newFighter(rt, maxHP, 0, 20)
		c.TakeDamage(pre)
		prev := c.Health()
		got := c.TakeDamage(d)

		assert.Equal(rt, max(0, prev-d), got)
		assert.Equal(rt, got, c.Health())
		assert.GreaterOrEqual(rt, c.Health(), 0)
		assert.LessOrEqual(rt, c.Health(), c.MaxHealth())
		assert.Equal(rt, c.Health() == 0, c.IsDefeated())
	})
}

func TestProperty_Heal(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxHP := rapid.IntRange(1, 10_000).Draw(rt, "maxHP")
		dmg := rapid.IntRange(0, maxHP).Draw(rt, "damage")
		h := rapid.IntRange(0, 20_000).Draw(rt, "heal")

		c := newFighter(rt, maxHP, 0, 20)
		c.TakeDamage(dmg)
		prev := c.Health()
		c.Heal(h)

		assert.Equal(rt, min(maxHP, prev+h), c.Health())
	})
}

func TestProperty_GenerateAttackDamage_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	rapid.Check(t, func(rt *rapid.T) {
		atk := rapid.IntRange(character.AttackSpread, 5000).Draw(rt, "attack")
		c := newFighter(rt, 10, 0, atk)
		d := c.GenerateAttackDamage(src)
		assert.GreaterOrEqual(rt, d, atk-10)
		assert.Less(rt, d, atk+10)
	})
}
