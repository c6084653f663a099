// Package tui provides the Bubble Tea integration for the bubble shooter.
// It handles the terminal UI loop, input mapping, and session orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/engine"
)

// FrameMsg carries one frame published by the engine session.
type FrameMsg engine.Frame

// SessionEndedMsg is sent when the session closed the subscription.
type SessionEndedMsg struct{}

// ClearStatusMsg expires the status line message with the given id.
type ClearStatusMsg struct{ ID int }

// statusTTL is how long a status line message stays visible.
const statusTTL = 2 * time.Second

// waitFrame returns a command that blocks until the next frame.
func waitFrame(sub *engine.Subscription) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-sub.C()
		if !ok {
			return SessionEndedMsg{}
		}
		return FrameMsg(f)
	}
}

// clearStatusCmd returns a command that expires a status message.
func clearStatusCmd(id int) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}
