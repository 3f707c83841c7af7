package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/game/battle"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/inventory"
	"github.com/cory-johannsen/skirmish/internal/game/magic"
	"github.com/cory-johannsen/skirmish/internal/game/scenario"
	"github.com/cory-johannsen/skirmish/internal/scripting"
)

// app holds everything a command needs to start battles.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	roller   *dice.Roller
	scenario *scenario.Scenario
	spells   *magic.Registry
	items    *inventory.Registry
	scripts  *scripting.Manager
}

// newApp loads content and scripts described by cfg.
//
// Precondition: cfg has passed Validate; logger must be non-nil.
// Postcondition: Returns an app ready for newBattle, or the first loading error.
func newApp(cfg config.Config, logger *zap.Logger) (*app, error) {
	var src dice.Source
	if cfg.Battle.Seed != 0 {
		src = dice.NewSeededSource(cfg.Battle.Seed)
	} else {
		src = dice.NewCryptoSource()
	}
	a := &app{
		cfg:    cfg,
		logger: logger,
		roller: dice.NewLoggedRoller(src, logger),
		spells: magic.NewRegistry(),
		items:  inventory.NewRegistry(),
	}

	if cfg.Content.Scenario != "" {
		s, err := scenario.Load(cfg.Content.Scenario)
		if err != nil {
			return nil, err
		}
		a.scenario = s
	} else {
		a.scenario = scenario.Default()
	}

	if dir := cfg.Content.SpellsDir; dir != "" {
		spells, err := magic.LoadSpells(dir)
		if err != nil {
			return nil, err
		}
		for _, s := range spells {
			if err := a.spells.Register(s); err != nil {
				return nil, err
			}
		}
	}
	if dir := cfg.Content.ItemsDir; dir != "" {
		items, err := inventory.LoadItems(dir)
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			if err := a.items.RegisterItem(it); err != nil {
				return nil, err
			}
		}
	}

	if dir := cfg.Scripting.HookDir; dir != "" {
		a.scripts = scripting.NewManager(a.roller, logger)
		if err := a.scripts.Load(a.scenario.ID, dir, cfg.Scripting.InstructionLimit); err != nil {
			return nil, err
		}
	}

	logger.Info("content loaded",
		zap.String("scenario", a.scenario.ID),
		zap.Int("allies", len(a.scenario.Allies)),
		zap.Int("opponents", len(a.scenario.Opponents)),
		zap.Int("extra_spells", a.spells.Len()),
		zap.Int("extra_items", len(a.items.AllItems())),
		zap.Bool("scripting", a.scripts != nil),
		zap.Uint64("seed", cfg.Battle.Seed),
	)
	return a, nil
}

// newBattle builds fresh rosters from the scenario and starts a battle.
// Script hooks observe before the given observers, so their flavor text is
// already attached when the others see an outcome.
func (a *app) newBattle(observers ...battle.Observer) (*battle.Battle, error) {
	r, err := a.scenario.Build(a.spells, a.items)
	if err != nil {
		return nil, err
	}
	var obs []battle.Observer
	if a.scripts != nil {
		obs = append(obs, battle.NewScriptObserver(a.scripts, a.scenario.ID))
	}
	obs = append(obs, observers...)

	b, err := battle.New(r.Allies, r.Opponents, battle.Options{
		DefeatQuorum:        a.scenario.Quorum(a.cfg.Battle.DefeatQuorum),
		SkipDefeatedTargets: a.cfg.Battle.SkipDefeatedTargets,
		Source:              a.roller,
		Logger:              a.logger.With(zap.String("scenario", a.scenario.ID)),
		Observers:           obs,
	})
	if err != nil {
		return nil, fmt.Errorf("starting battle: %w", err)
	}
	return b, nil
}

func (a *app) close() {
	if a.scripts != nil {
		a.scripts.Close()
	}
}
