package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bubbles/internal/config"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
	"github.com/vovakirdan/tui-bubbles/internal/platform/tui"
	"github.com/vovakirdan/tui-bubbles/internal/registry"
)

var (
	flagLevel      string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode directly",
	Long: `Start a run of the given mode without the menu.

Controls:
  Left/Right, A/D   - Aim
  Mouse             - Aim, click to fire
  Space/Up          - Fire
  Tab/Down          - Swap the loaded and next bubble
  P                 - Pause
  R                 - Restart
  Enter/N           - Next level after a win, retry after a loss
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  bubbles play classic
  bubbles play timeattack --difficulty hard
  bubbles play adventure --level reef_02
  bubbles play classic --seed 42`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Adventure level id (default: first level)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, args []string) error {
	mode, err := core.ParseMode(args[0])
	if err != nil {
		return fmt.Errorf("%w; run 'bubbles list' to see available modes", err)
	}
	modeID := mode.String()
	info, ok := registry.Info(modeID)
	if !ok {
		return fmt.Errorf("mode %q is not available", modeID)
	}

	a, err := setup(nil)
	if err != nil {
		return err
	}
	defer a.close()

	if err := applyDifficulty(&a.game, flagDifficulty); err != nil {
		return err
	}

	levelID := flagLevel
	if info.NeedsLevel && levelID == "" {
		ids := a.catalog.IDs()
		if len(ids) == 0 {
			return errors.New("no adventure levels found")
		}
		levelID = ids[0]
	}
	if !info.NeedsLevel && levelID != "" {
		return fmt.Errorf("mode %s does not use levels", modeID)
	}

	a.openStore()

	ctx, cancel := signalContext()
	defer cancel()

	launcher := a.launcher(true)
	session, err := launcher.Start(ctx, modeID, levelID)
	if err != nil {
		return err
	}

	rc := a.runtimeConfig()
	_, err = tui.Run(ctx, session, tui.PlayOptions{
		NextLevel: launcher.NextLevel(),
		Width:     rc.ScreenW,
		Height:    rc.ScreenH,
	})
	return err
}

func applyDifficulty(cfg *config.BubblesConfig, preset string) error {
	switch p := config.DifficultyPreset(preset); p {
	case "", config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed:
		config.ApplyPreset(cfg, p)
		return nil
	default:
		return fmt.Errorf("unknown difficulty %q (easy, normal, hard, fixed)", preset)
	}
}
