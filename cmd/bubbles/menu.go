package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bubbles/internal/platform/tui"
)

// runMenu starts the interactive menu: pick a mode or level, play, return
// to the menu, repeat.
func runMenu(_ *cobra.Command, _ []string) error {
	a, err := setup(nil)
	if err != nil {
		return err
	}
	defer a.close()
	a.openStore()

	ctx, cancel := signalContext()
	defer cancel()

	return tui.RunSession(ctx, a.launcher(true), a.runtimeConfig())
}
