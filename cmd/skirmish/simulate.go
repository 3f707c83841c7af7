package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/battle"
	"github.com/cory-johannsen/skirmish/internal/observability"
)

var simulateBattles int

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run many battles with random ally decisions and report the results",
	RunE: func(cmd *cobra.Command, args []string) error {
		if simulateBattles < 1 {
			return fmt.Errorf("--battles must be >= 1, got %d", simulateBattles)
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := observability.NewLogger(cfg.Logging)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		defer logger.Sync() //nolint:errcheck

		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.close()

		s, err := simulate(cmd.Context(), a, simulateBattles)
		if err != nil {
			return err
		}
		s.print(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	simulateCmd.Flags().IntVarP(&simulateBattles, "battles", "n", 100, "number of battles to run")
}

// summary tallies simulated battles.
type summary struct {
	Battles   int
	Victories int
	Defeats   int
	Rounds    int
	Longest   int
}

func (s summary) print(w io.Writer) {
	fmt.Fprintf(w, "battles:    %d\n", s.Battles)
	fmt.Fprintf(w, "victories:  %d (%.1f%%)\n", s.Victories, 100*float64(s.Victories)/float64(s.Battles))
	fmt.Fprintf(w, "defeats:    %d (%.1f%%)\n", s.Defeats, 100*float64(s.Defeats)/float64(s.Battles))
	fmt.Fprintf(w, "avg rounds: %.2f\n", float64(s.Rounds)/float64(s.Battles))
	fmt.Fprintf(w, "longest:    %d\n", s.Longest)
}

// simulate runs n battles, each with fresh rosters, letting a RandomDecider
// sharing the app's dice make every ally decision.
func simulate(ctx context.Context, a *app, n int) (summary, error) {
	d := battle.NewRandomDecider(a.roller)
	var s summary
	for i := 0; i < n; i++ {
		b, err := a.newBattle()
		if err != nil {
			return s, err
		}
		result, err := b.Run(ctx, d)
		if err != nil {
			return s, fmt.Errorf("battle %d: %w", i+1, err)
		}
		s.Battles++
		s.Rounds += b.Round()
		s.Longest = max(s.Longest, b.Round())
		if result == battle.PhaseVictory {
			s.Victories++
		} else {
			s.Defeats++
		}
	}
	a.logger.Info("simulation finished",
		zap.Int("battles", s.Battles),
		zap.Int("victories", s.Victories),
		zap.Int("defeats", s.Defeats),
	)
	return s, nil
}
