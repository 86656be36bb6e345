package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Init loads the channel list and starts listening for player events.
func (b *statefulBubble) Init() tea.Cmd {
	b.busy = true
	return tea.Batch(b.spinnerC.Tick, b.loadChannels(), b.waitForPlayerEvent())
}
