package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Iktahana/illusions-sub003/internal/history"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent correction runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		if hostCfg.HistoryPath == "" {
			return fmt.Errorf("history is disabled (set history_path in the config file)")
		}
		store, err := history.Open(hostCfg.HistoryPath)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.Recent(cmd.Context(), flagHistoryLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}

		gray := color.New(color.FgHiBlack).SprintFunc()
		for _, run := range runs {
			validated := ""
			if run.Validated {
				validated = gray(fmt.Sprintf(" validated, %d discarded", run.Discarded))
			}
			fmt.Printf("%s %-10s %-20s %4d paragraphs %3d issues (%dE/%dW/%dI) %v%s\n",
				run.StartedAt.Local().Format("2006-01-02 15:04"),
				run.Preset, run.Source, run.Paragraphs, run.Issues,
				run.Errors, run.Warnings, run.Infos,
				run.Duration.Round(1e6), validated)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20,
		"number of runs to show")
	rootCmd.AddCommand(historyCmd)
}
