// kosei is a correction engine for Japanese manuscripts. It runs a
// configurable rule set over text, optionally confirms findings with a
// language model, and reports issues with suggested fixes.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Iktahana/illusions-sub003/internal/config"
	"github.com/Iktahana/illusions-sub003/internal/lint"
	"github.com/Iktahana/illusions-sub003/internal/preset"
	"github.com/Iktahana/illusions-sub003/internal/rules"
)

var (
	configPath   string
	flagPreset   string
	flagVertical bool
	flagVerbose  bool

	hostCfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "kosei",
	Short: "Japanese manuscript correction engine",
	Long: `kosei checks Japanese manuscripts against a configurable rule set:
numeral style, punctuation, character width, spacing, stylistic
consistency, and expression problems. Findings carry suggested fixes
and references into published style guidelines.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if flagVerbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: level})))

		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		var err error
		hostCfg, err = config.Load(path)
		if err != nil {
			return err
		}

		if flagPreset != "" {
			hostCfg.Preset = flagPreset
		}
		if cmd.Flags().Changed("vertical") {
			hostCfg.Vertical = flagVertical
		}
		if _, ok := preset.Lookup(hostCfg.Preset); !ok {
			return fmt.Errorf("unknown preset %q", hostCfg.Preset)
		}
		return nil
	},
}

// newRunner builds a runner configured for the selected preset, the
// writing direction, and any per-rule overrides from the config file.
func newRunner() (*lint.Runner, preset.Mode) {
	runner := lint.NewRunner(slog.Default())
	rules.RegisterAll(runner)

	mode, _ := preset.Lookup(hostCfg.Preset)
	preset.Apply(runner, mode)

	if hostCfg.Vertical {
		vertical := map[string]any{"direction": rules.DirectionVertical}
		preset.ApplyOverrides(runner, map[string]preset.Override{
			"kanji-numeral":   {Options: vertical},
			"digit-grouping":  {Options: vertical},
			"fullwidth-alnum": {Options: vertical},
		})
	}
	preset.ApplyOverrides(runner, hostCfg.Overrides())
	return runner, mode
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default ~/"+config.DefaultFileName+")")
	rootCmd.PersistentFlags().StringVarP(&flagPreset, "preset", "p", "",
		"correction preset (standard, novel, web, business, academic)")
	rootCmd.PersistentFlags().BoolVar(&flagVertical, "vertical", false,
		"treat the manuscript as vertical writing")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
