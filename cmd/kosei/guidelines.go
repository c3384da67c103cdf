package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Iktahana/illusions-sub003/internal/guideline"
)

var guidelinesCmd = &cobra.Command{
	Use:   "guidelines",
	Short: "List the style guideline catalog",
	Run: func(cmd *cobra.Command, args []string) {
		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		fmt.Printf("\n%s\n\n", cyan("Guidelines"))
		for _, g := range guideline.Catalog {
			year := ""
			if g.Year != nil {
				year = fmt.Sprintf(" (%d)", *g.Year)
			}
			fmt.Printf("  %-16s %s%s\n", g.ID, g.Name, year)
			fmt.Printf("    %s\n", gray(g.Publisher+" — "+g.Description))
		}
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(guidelinesCmd)
}
