package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/numbers21py/miniarcades/internal/core"
)

// TickMsg is sent on every simulation tick.
type TickMsg time.Time

// tickCmd returns a command that fires a TickMsg at the given tick rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = core.DefaultTickRate
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
