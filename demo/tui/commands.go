package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const actionTimeout = 60 * time.Second

// runAction executes one orchestrator call off the update loop and reports
// back with actionDoneMsg. The snapshot carries the resulting state, so the
// message only needs the error.
func runAction(fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		return actionDoneMsg{err: fn(ctx)}
	}
}

// tickCmd refreshes the snapshot while the background render poll runs.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg{Time: t}
	})
}
