package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

type fixedSrc struct{ val int }

func (f fixedSrc) Intn(_ int) int { return f.val }

func TestNewRange_RejectsEmpty(t *testing.T) {
	_, err := dice.NewRange(5, 5)
	assert.Error(t, err)
	_, err = dice.NewRange(6, 5)
	assert.Error(t, err)

	r, err := dice.NewRange(290, 310)
	require.NoError(t, err)
	assert.Equal(t, 20, r.Width())
	assert.Equal(t, "[290, 310)", r.String())
}

func TestSpread(t *testing.T) {
	r := dice.Spread(600, 15)
	assert.Equal(t, dice.Range{Low: 585, High: 615}, r)
	assert.True(t, r.Contains(585))
	assert.False(t, r.Contains(615))
}

func TestDraw_UsesSourceOffset(t *testing.T) {
	r := dice.Range{Low: 290, High: 310}
	assert.Equal(t, 290, dice.Draw(r, fixedSrc{val: 0}))
	assert.Equal(t, 309, dice.Draw(r, fixedSrc{val: 19}))
}

func TestDraw_PanicsOnEmptyRange(t *testing.T) {
	assert.Panics(t, func() { dice.Draw(dice.Range{Low: 3, High: 3}, fixedSrc{}) })
}

func TestProperty_Draw_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	rapid.Check(t, func(rt *rapid.T) {
		low := rapid.IntRange(-1000, 1000).Draw(rt, "low")
		width := rapid.IntRange(1, 500).Draw(rt, "width")
		r := dice.Range{Low: low, High: low + width}
		v := dice.Draw(r, src)
		assert.True(rt, r.Contains(v), "value %d outside %s", v, r)
	})
}

// TestCryptoSource_Intn_InRange verifies every value returned by Intn(6) is in [0, 6).
func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
}

func TestSeededSource_Reproducible(t *testing.T) {
	a := dice.NewSeededSource(42)
	b := dice.NewSeededSource(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Intn(1000), b.Intn(1000), "draw %d diverged", i)
	}
}

func TestSeededSource_Intn_PanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { dice.NewSeededSource(1).Intn(0) })
}

func TestRoller_LogsDraws(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	roller := dice.NewLoggedRoller(fixedSrc{val: 4}, zap.New(core))

	assert.Equal(t, 4, roller.Intn(10))
	assert.Equal(t, 14, roller.Draw(dice.Range{Low: 10, High: 20}))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "dice draw", entries[0].Message)
	assert.Equal(t, "dice range draw", entries[1].Message)
	assert.Equal(t, int64(14), entries[1].ContextMap()["value"])
}
