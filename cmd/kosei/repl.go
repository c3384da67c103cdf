package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Iktahana/illusions-sub003/internal/history"
	"github.com/Iktahana/illusions-sub003/internal/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive correction shell",
	Long: `Start an interactive shell. Input lines are linted as manuscript
paragraphs; commands switch presets, list rules, and show run history.

Type 'help' in the shell for available commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, mode := newRunner()

		var hist *history.Store
		if hostCfg.HistoryPath != "" {
			h, err := history.Open(hostCfg.HistoryPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: history disabled: %v\n", err)
			} else {
				hist = h
				defer h.Close()
			}
		}

		r, err := repl.New(&repl.Config{
			Runner:  runner,
			Mode:    mode,
			History: hist,
		})
		if err != nil {
			return fmt.Errorf("failed to create shell: %w", err)
		}
		return r.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
