package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/leanback-cli/leanback/input"
	"github.com/leanback-cli/leanback/session"
)

// formKeymap holds the keys of screens with a focused text input. The router stays out of those
// screens, so they match their own keys.
type formKeymap struct {
	submit, cancel, nextField, toggle,
	confirm, deny key.Binding
}

func newFormKeymap() *formKeymap {
	return &formKeymap{
		submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		nextField: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "next field"),
		),
		toggle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "toggle"),
		),
		confirm: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "yes"),
		),
		deny: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "no"),
		),
	}
}

// helpKeys adapts a flat binding list to help.KeyMap.
type helpKeys []key.Binding

func (h helpKeys) ShortHelp() []key.Binding {
	return h
}

func (h helpKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{h}
}

// help returns the bindings to show for the current state.
func (b *statefulBubble) help() helpKeys {
	switch b.state {
	case loadingState:
		return helpKeys{b.keymap.ForceQuit}
	case watchState:
		bindings := b.router.Bindings(session.ModeWatching)
		if b.ctrl.State().Phase() != session.PhaseError {
			bindings = removeBinding(bindings, b.keymap.Retry)
		}
		return bindings
	case channelFormState:
		return helpKeys{b.forms.submit, input.WithDescription(b.forms.toggle, "play order"), b.forms.cancel}
	case sourceFormState:
		return helpKeys{b.forms.submit, b.forms.nextField, input.WithDescription(b.forms.toggle, "channel/playlist"), b.forms.cancel}
	case confirmState:
		return helpKeys{b.forms.confirm, b.forms.deny}
	case errorState:
		return helpKeys{input.WithDescription(b.keymap.Back, "dismiss"), b.keymap.ForceQuit}
	default:
		return nil
	}
}

func removeBinding(bindings []key.Binding, target key.Binding) []key.Binding {
	out := make([]key.Binding, 0, len(bindings))
	for _, b := range bindings {
		if b.Help() != target.Help() {
			out = append(out, b)
		}
	}
	return out
}
