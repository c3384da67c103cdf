package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Iktahana/illusions-sub003/internal/preset"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List correction presets",
	Run: func(cmd *cobra.Command, args []string) {
		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()

		fmt.Printf("\n%s\n\n", cyan("Presets"))
		for _, m := range preset.Modes() {
			marker := " "
			if m.ID == hostCfg.Preset {
				marker = green("*")
			}
			fmt.Printf("  %s %-10s %s\n", marker, m.ID, m.Name)
			fmt.Printf("    %s\n", gray("guidelines: "+fmt.Sprint(m.Guidelines)))
			if len(m.Overrides) > 0 {
				ids := make([]string, 0, len(m.Overrides))
				for id := range m.Overrides {
					ids = append(ids, id)
				}
				sort.Strings(ids)
				fmt.Printf("    %s\n", gray(fmt.Sprintf("adjusts %d rules: %v", len(ids), ids)))
			}
		}
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
