// Package tui runs the shooter in a terminal with Bubble Tea: the play loop,
// key bindings, the stage picker, the scoreboard and the SSH front end.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives one fixed simulation step.
type TickMsg time.Time

// tickCmd schedules the next step; rate is in steps per second.
func tickCmd(rate int) tea.Cmd {
	if rate <= 0 {
		rate = 60
	}
	return tea.Tick(time.Second/time.Duration(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
