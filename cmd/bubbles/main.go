// bubbles is a bubble shooter for the terminal.
//
// Usage:
//
//	bubbles                  - Start the interactive menu
//	bubbles list             - List game modes
//	bubbles play <mode>      - Play a mode directly
//	bubbles levels           - List and validate adventure levels
//	bubbles scores [mode]    - Show high scores and progress
//	bubbles serve            - Start the SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Frame rate (default from config: 30)
//	--seed <value>      - RNG seed for reproducible runs
//	--db <path>         - Progress database (default: ~/.bubbles/bubbles.db)
//	--config <path>     - Game config YAML
//	--levels <dir>      - Extra adventure level directory
//	--log-level <lvl>   - debug, info, warn or error
//	--mute              - Disable sound
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register the game modes.
	_ "github.com/vovakirdan/tui-bubbles/internal/games/bubbles"
)

var (
	flagFPS       int
	flagSeed      uint64
	flagDBPath    string
	flagConfig    string
	flagLevelsDir string
	flagLogLevel  string
	flagMute      bool
	flagVolume    float64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bubbles",
	Short: "Bubbles - a bubble shooter in your terminal",
	Long: `Bubbles is a match-three bubble shooter for the terminal.

Aim the cannon, fire colored bubbles and pop groups of three or more.
Bubbles cut off from the ceiling fall and score extra points.

Modes:
  classic     - Endless; a new row drops after a run of misses
  timeattack  - Endless; rows drop whenever the countdown runs out
  adventure   - Hand-made levels with goals and a limited number of shots

Examples:
  bubbles
  bubbles play classic
  bubbles play adventure --level meadow_01
  bubbles serve --ssh :2222 --feed :8080
  bubbles scores timeattack`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMenu,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.IntVar(&flagFPS, "fps", 0, "Frame rate (0 = config value)")
	flags.Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	flags.StringVar(&flagDBPath, "db", "", "Path to the progress database (default ~/.bubbles/bubbles.db)")
	flags.StringVar(&flagConfig, "config", "", "Path to a custom config YAML")
	flags.StringVar(&flagLevelsDir, "levels", "", "Extra adventure level directory")
	flags.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.BoolVar(&flagMute, "mute", false, "Disable sound")
	flags.Float64Var(&flagVolume, "volume", 0, "Sound volume in powers of two (-1 halves it)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
