// Package ui provides internal state management and rendering utilities for ephemeral terminal notifications.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leanback-cli/leanback/style"
)

// NotificationDuration is how long a notification stays on screen.
const NotificationDuration = 3 * time.Second

// Model encapsulates the state for displaying non-blocking terminal alerts.
type Model struct {
	notification string
	notifiedAt   time.Time
}

// NotificationMsg asks the model to show text.
type NotificationMsg string

// ClearNotificationMsg resets the notification once it has been shown long enough.
type ClearNotificationMsg struct {
	at time.Time
}

// Notify returns a tea.Cmd that shows text.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg(text)
	}
}

func clearAfter(at time.Time) tea.Cmd {
	return tea.Tick(NotificationDuration, func(time.Time) tea.Msg {
		return ClearNotificationMsg{at: at}
	})
}

// Text returns the current notification.
func (m *Model) Text() string {
	return m.notification
}

// Update processes incoming messages to modify the notification state.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotificationMsg:
		m.notification = string(msg)
		m.notifiedAt = time.Now()
		return clearAfter(m.notifiedAt)
	case ClearNotificationMsg:
		// a newer notification restarted the timer
		if msg.at.Equal(m.notifiedAt) {
			m.notification = ""
		}
	}
	return nil
}

// View appends the current notification to the last line of mainContent.
func (m *Model) View(mainContent string) string {
	if m.notification == "" {
		return mainContent
	}

	lines := strings.Split(mainContent, "\n")
	lines[len(lines)-1] += "  " + style.Fg(style.FaintColor)(m.notification)
	return strings.Join(lines, "\n")
}
