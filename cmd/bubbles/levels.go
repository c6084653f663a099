package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagValidate bool

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List adventure levels",
	Long: `Lists the adventure levels: the built-in ones plus any found in
--levels or the adventure levels_dir config.

With --validate every level is checked against the configured board
size and the command fails when a level cannot be played.

Examples:
  bubbles levels
  bubbles levels --levels ./my-levels --validate`,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().BoolVar(&flagValidate, "validate", false, "Check levels against the board size")
}

func runLevels(_ *cobra.Command, _ []string) error {
	a, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	defer a.close()

	fmt.Printf("  %-14s  %-10s  %-20s  %5s  %s\n", "ID", "Zone", "Name", "Shots", "Goal")
	fmt.Printf("  %-14s  %-10s  %-20s  %5s  %s\n", "--", "----", "----", "-----", "----")
	for _, l := range a.catalog.Levels() {
		fmt.Printf("  %-14s  %-10s  %-20s  %5d  %s\n", l.ID, l.Zone, l.Name, l.Shots, l.Objective.String())
	}
	fmt.Printf("\n%d levels\n", a.catalog.Len())

	if !flagValidate {
		return nil
	}
	problems := a.catalog.Validate(a.game.Board.Cols, a.game.Board.Rows)
	if len(problems) == 0 {
		fmt.Println("All levels are valid.")
		return nil
	}
	fmt.Println()
	for _, p := range problems {
		fmt.Println("  " + p.String())
	}
	return fmt.Errorf("%d level problems", len(problems))
}
