package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Iktahana/illusions-sub003/internal/guideline"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List rules and their status under the selected preset",
	Run: func(cmd *cobra.Command, args []string) {
		runner, mode := newRunner()

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()

		fmt.Printf("\n%s (preset: %s)\n\n", cyan("Rules"), mode.Name)
		for _, rule := range runner.Rules() {
			cfg, _ := runner.GetConfig(rule.ID())
			status := gray("off")
			if cfg.Enabled {
				status = green("on ")
			}
			ref := ""
			if id := guideline.ForRule(rule.ID()); id != "" {
				ref = gray("[" + id + "]")
			}
			fmt.Printf("  %s L%d %-8s %-26s %s %s\n",
				status, rule.Level(), cfg.Severity, rule.ID(), rule.Name(), ref)
		}
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
