package battle_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/battle"
	battlemock "github.com/cory-johannsen/skirmish/internal/game/battle/mock"
	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/scripting"
)

func fragileOpponents() []*character.Character {
	out := make([]*character.Character, 3)
	for i, name := range []string{"Enemy_1", "Enemy_2", "Enemy_3"} {
		out[i] = character.MustBuild(character.Stats{Name: name, Health: 1, Mana: 0, Attack: 10}, nil, nil)
	}
	return out
}

func TestRun_RepromptsOnInvalidSelection(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := battlemock.NewMockDecider(ctrl)
	allies, _ := parties()
	b := newBattleWith(t, allies, fragileOpponents(), fixedSrc{})

	gomock.InOrder(
		d.EXPECT().Decide(gomock.Any(), gomock.Any()).Return(battle.Attack(9), nil),
		d.EXPECT().Decide(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, turn battle.Turn) (battle.Action, error) {
				assert.ErrorIs(t, turn.Retry, battle.ErrInvalidSelection)
				assert.Equal(t, 0, turn.Index)
				assert.Equal(t, 1, turn.Round)
				return battle.Attack(0), nil
			}),
		d.EXPECT().Decide(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, turn battle.Turn) (battle.Action, error) {
				assert.NoError(t, turn.Retry)
				assert.Equal(t, "AmirAli", turn.Actor.Name)
				return battle.Attack(1), nil
			}),
		d.EXPECT().Decide(gomock.Any(), gomock.Any()).Return(battle.Attack(2), nil),
	)

	result, err := b.Run(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, battle.PhaseVictory, result)
}

func TestRun_DeciderErrorStops(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := battlemock.NewMockDecider(ctrl)
	boom := errors.New("stdin closed")
	d.EXPECT().Decide(gomock.Any(), gomock.Any()).Return(battle.Action{}, boom)

	b := newBattle(t, fixedSrc{})
	phase, err := b.Run(context.Background(), d)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, battle.PhaseAlly, phase)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := newBattle(t, fixedSrc{})
	phase, err := b.Run(ctx, battle.DeciderFunc(func(context.Context, battle.Turn) (battle.Action, error) {
		t.Fatal("decider must not be called after cancellation")
		return battle.Action{}, nil
	}))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, battle.PhaseAlly, phase)
}

func TestProperty_Run_AlwaysTerminatesWithInvariants(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		skip := rapid.Bool().Draw(rt, "skip")
		src := dice.NewSeededSource(seed)
		allies, opps := parties()
		b, err := battle.New(allies, opps, battle.Options{
			Source:              src,
			SkipDefeatedTargets: skip,
			Observers: []battle.Observer{battle.ObserverFuncs{Outcome: func(o battle.Outcome) string {
				for _, c := range append(append([]*character.Character{}, allies...), opps...) {
					if c.Health() < 0 || c.Health() > c.MaxHealth() || c.Mana() < 0 || c.Mana() > c.MaxMana() {
						rt.Fatalf("%s out of bounds: hp %d/%d mp %d/%d", c.Name, c.Health(), c.MaxHealth(), c.Mana(), c.MaxMana())
					}
				}
				return ""
			}}},
		})
		require.NoError(rt, err)

		result, err := b.Run(context.Background(), battle.NewRandomDecider(src))
		require.NoError(rt, err)
		require.True(rt, result.IsTerminal())
		if result == battle.PhaseVictory {
			assert.Equal(rt, battle.RosterBroken, b.CheckTermination(battle.SideOpponents))
		} else {
			assert.Equal(rt, battle.RosterBroken, b.CheckTermination(battle.SideAllies))
			assert.Equal(rt, battle.Ongoing, b.CheckTermination(battle.SideOpponents))
		}
	})
}

func TestRandomDecider_OnlyValidSelections(t *testing.T) {
	b := newBattle(t, dice.NewSeededSource(99))
	b.Roster(battle.SideOpponents)[0].TakeDamage(5000)
	d := battle.NewRandomDecider(dice.NewSeededSource(7))
	for i := 0; i < 200; i++ {
		actor, idx, ok := b.CurrentActor()
		require.True(t, ok)
		a, err := d.Decide(context.Background(), battle.Turn{Battle: b, Actor: actor, Index: idx, Round: b.Round()})
		require.NoError(t, err)
		assert.NotEqual(t, 0, a.Target, "defeated opponent chosen")
		_, err = b.ResolveAction(actor, a.Kind, a.Selection)
		require.NoError(t, err)
		// keep the opponents standing so every draw sees the same roster
		for _, o := range b.Roster(battle.SideOpponents)[1:] {
			o.Heal(o.MaxHealth())
		}
	}
}

func newScriptManager(t *testing.T, luaSrc string) *scripting.Manager {
	t.Helper()
	logger := zap.NewNop()
	mgr := scripting.NewManager(dice.NewLoggedRoller(dice.NewCryptoSource(), logger), logger)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hooks.lua"), []byte(luaSrc), 0644))
	require.NoError(t, mgr.Load("arena", dir, 0))
	t.Cleanup(mgr.Close)
	return mgr
}

func TestScriptObserver_AttachesFlavor(t *testing.T) {
	mgr := newScriptManager(t, `
		function on_outcome(actor, action, target, amount, status)
			if target == nil then
				return actor .. " " .. action .. " " .. status
			end
			return actor .. " " .. action .. " " .. target .. " " .. amount
		end
	`)
	b := newBattle(t, fixedSrc{}, func(o *battle.Options) {
		o.Observers = []battle.Observer{battle.NewScriptObserver(mgr, "arena")}
	})

	out, err := b.Act(battle.Attack(1))
	require.NoError(t, err)
	assert.Equal(t, "Homayun attack Enemy_2 290", out.Flavor)

	out, err = b.Act(battle.Use(0, battle.NoTarget))
	require.NoError(t, err)
	assert.Equal(t, "AmirAli item applied", out.Flavor)
}

func TestScriptObserver_BattleEndHook(t *testing.T) {
	mgr := newScriptManager(t, `
		ended = nil
		function on_battle_end(result, round)
			ended = result .. "@" .. round
		end
		function last_result() return ended end
	`)
	allies, _ := parties()
	b := newBattleWith(t, allies, fragileOpponents(), fixedSrc{}, func(o *battle.Options) {
		o.Observers = []battle.Observer{battle.NewScriptObserver(mgr, "arena")}
	})
	for i := 0; i < 3; i++ {
		require.NoError(t, act(b, battle.Attack(i)))
	}
	_, err := b.Advance()
	require.NoError(t, err)
	require.Equal(t, battle.PhaseVictory, b.Phase())

	ret, err := mgr.CallHook("arena", "last_result")
	require.NoError(t, err)
	assert.Equal(t, "victory@1", ret.String())
}

func TestScriptObserver_NoHooksNoFlavor(t *testing.T) {
	mgr := newScriptManager(t, `-- nothing`)
	b := newBattle(t, fixedSrc{}, func(o *battle.Options) {
		o.Observers = []battle.Observer{battle.NewScriptObserver(mgr, "arena")}
	})
	out, err := b.Act(battle.Attack(0))
	require.NoError(t, err)
	assert.Empty(t, out.Flavor)
}

func TestRun_FinishesWhenCurrentAllyDefeatedMidPhase(t *testing.T) {
	b := newBattle(t, fixedSrc{val: 0})
	defeatAlly(t, b, 0)

	calls := 0
	d := battle.DeciderFunc(func(_ context.Context, turn battle.Turn) (battle.Action, error) {
		calls++
		if calls > 1000 {
			return battle.Action{}, errors.New("too many decisions")
		}
		assert.False(t, turn.Actor.IsDefeated())
		return battle.Attack(turn.Battle.ListLivingTargets(battle.SideOpponents)[0].Index), nil
	})
	result, err := b.Run(context.Background(), d)
	require.NoError(t, err)
	assert.True(t, result.IsTerminal())
}

func TestRun_AllyDefeatedWhileDecidingLosesTurn(t *testing.T) {
	b := newBattle(t, fixedSrc{val: 0})

	var asked []string
	d := battle.DeciderFunc(func(_ context.Context, turn battle.Turn) (battle.Action, error) {
		asked = append(asked, turn.Actor.Name)
		if len(asked) == 1 {
			defeatAlly(t, turn.Battle, turn.Index)
		}
		if len(asked) > 1000 {
			return battle.Action{}, errors.New("too many decisions")
		}
		return battle.Attack(turn.Battle.ListLivingTargets(battle.SideOpponents)[0].Index), nil
	})
	_, err := b.Run(context.Background(), d)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(asked), 2)
	assert.Equal(t, []string{"Homayun", "AmirAli"}, asked[:2])
}
