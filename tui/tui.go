// Package tui provides the primary terminal user interface implementation.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leanback-cli/leanback/backend"
	"github.com/leanback-cli/leanback/player"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Channel is an id or name to start on instead of the remembered one.
	Channel string
	Client  *backend.Client
	Factory player.Factory
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(options *Options) error {
	bubble := newBubble(options)
	defer bubble.shutdown()

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
