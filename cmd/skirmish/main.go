// Package main provides the skirmish binary: play a turn-based battle at the
// terminal, or simulate many with random decisions.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cory-johannsen/skirmish/internal/config"
)

var (
	configPath string
	v          = config.NewViper()
)

var rootCmd = &cobra.Command{
	Use:   "skirmish",
	Short: "Turn-based party battles",
	Long: `skirmish runs a battle between a party of allies and a group of opponents.
The allies act first each round; the first side to lose its defeat quorum loses.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "path to configuration file; empty uses defaults and SKIRMISH_* environment")
	pf.String("scenario", "", "scenario YAML file; empty uses the built-in scenario")
	pf.String("spells-dir", "", "directory of extra spell definitions")
	pf.String("items-dir", "", "directory of extra item definitions")
	pf.String("scripts", "", "directory of Lua hook scripts; empty disables scripting")
	pf.Uint64("seed", 0, "random seed; 0 draws from crypto/rand")
	pf.Int("quorum", 0, "defeated members that break a roster; 0 keeps the configured value")
	pf.Bool("skip-defeated", false, "opponents only target living allies")
	pf.String("log-level", "", "log level: debug, info, warn, error")

	mustBind(v, "content.scenario", "scenario")
	mustBind(v, "content.spells_dir", "spells-dir")
	mustBind(v, "content.items_dir", "items-dir")
	mustBind(v, "scripting.hook_dir", "scripts")
	mustBind(v, "battle.seed", "seed")
	mustBind(v, "battle.skip_defeated_targets", "skip-defeated")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
}

func mustBind(v *viper.Viper, key, flag string) {
	if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("binding flag %q: %v", flag, err))
	}
}

// loadConfig merges the config file, environment and flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return config.Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	// zero means "not given" for these, so they only override when set
	flags := cmd.Flags()
	if flags.Changed("quorum") {
		q, _ := flags.GetInt("quorum")
		v.Set("battle.defeat_quorum", q)
	}
	if flags.Changed("log-level") {
		level, _ := flags.GetString("log-level")
		v.Set("logging.level", level)
	}
	return config.LoadFromViper(v)
}
