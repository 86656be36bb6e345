package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/leanback-cli/leanback/backend"
	"github.com/leanback-cli/leanback/icon"
	"github.com/leanback-cli/leanback/style"
	"github.com/leanback-cli/leanback/util"
)

// listItem implements list.Item for channels and sources.
type listItem struct {
	internal any
	marked   bool
}

func (t *listItem) getMark() string {
	switch t.internal.(type) {
	case *backend.Channel:
		return lipgloss.NewStyle().Bold(true).Foreground(style.AccentColor).Render(icon.Get(icon.Play))
	default:
		return icon.Get(icon.Mark)
	}
}

func (t *listItem) Title() (title string) {
	switch e := t.internal.(type) {
	case *backend.Channel:
		title = e.Name
	case *backend.Source:
		title = e.Label()
	default:
		title = t.FilterValue()
	}

	if title != "" && t.marked {
		title = fmt.Sprintf("%s %s", title, t.getMark())
	}
	return
}

func (t *listItem) Description() string {
	switch e := t.internal.(type) {
	case *backend.Channel:
		parts := []string{orderTag(e.PlayOrder)}
		if !e.CreatedAt.IsZero() {
			parts = append(parts, style.Fg(style.FaintColor)("created "+util.Ago(e.CreatedAt.Time)))
		}
		return strings.Join(parts, " • ")
	case *backend.Source:
		kind := icon.Get(icon.Source)
		if e.Kind == backend.KindPlaylist {
			kind = icon.Get(icon.Playlist)
		}
		parts := []string{kind + " " + string(e.Kind)}
		if e.Name != "" {
			parts = append(parts, style.Fg(style.FaintColor)(e.YoutubeID))
		}
		return strings.Join(parts, " • ")
	default:
		return ""
	}
}

func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case *backend.Channel:
		return e.Name
	case *backend.Source:
		return e.Label()
	default:
		return ""
	}
}

func orderTag(order backend.PlayOrder) string {
	switch order {
	case backend.OrderNewest:
		return style.Tag(style.Base, style.Sky)(order.Label())
	case backend.OrderOldest:
		return style.Tag(style.Base, style.Teal)(order.Label())
	default:
		return style.Tag(style.Base, style.Peach)(order.Label())
	}
}

func channelItems(channels []backend.Channel, currentID backend.ID) []list.Item {
	items := make([]list.Item, len(channels))
	for i := range channels {
		items[i] = &listItem{
			internal: &channels[i],
			marked:   currentID != "" && channels[i].ID == currentID,
		}
	}
	return items
}

func sourceItems(sources []backend.Source) []list.Item {
	items := make([]list.Item, len(sources))
	for i := range sources {
		items[i] = &listItem{internal: &sources[i]}
	}
	return items
}
