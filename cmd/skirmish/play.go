package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/frontend/console"
	"github.com/cory-johannsen/skirmish/internal/game/battle"
	"github.com/cory-johannsen/skirmish/internal/observability"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play one battle at the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return play(ctx, a, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// play runs one interactive battle. Running out of input abandons the battle
// without an error.
func play(ctx context.Context, a *app, in io.Reader, out io.Writer) error {
	b, err := a.newBattle(console.NewPrinter(out))
	if err != nil {
		return err
	}
	fmt.Fprintln(out, console.Colorize(console.BrightRed+console.Bold, "AN ENEMY ATTACKS!"))

	result, err := b.Run(ctx, console.NewPrompter(in, out))
	switch {
	case err == nil:
		a.logger.Info("battle finished", zap.Stringer("result", result), zap.Int("round", b.Round()))
		return nil
	case errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
		fmt.Fprintln(out, console.RenderResult(battle.PhaseAlly, b.Round()))
		a.logger.Info("battle abandoned", zap.Stringer("phase", result), zap.Int("round", b.Round()))
		return nil
	default:
		return err
	}
}
