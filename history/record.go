package history

import (
	"fmt"
	"time"

	"github.com/leanback-cli/leanback/backend"
)

// SavedChannel is the channel that was selected last.
type SavedChannel struct {
	ID         backend.ID `json:"id"`
	Name       string     `json:"name"`
	SelectedAt time.Time  `json:"selected_at"`
}

// Channel rebuilds the backend value. Play order is not persisted.
func (s *SavedChannel) Channel() backend.Channel {
	return backend.Channel{ID: s.ID, Name: s.Name}
}

// PlayedVideo is one entry of the recently played list.
type PlayedVideo struct {
	ChannelID   backend.ID `json:"channel_id"`
	ChannelName string     `json:"channel_name"`
	EntryID     backend.ID `json:"entry_id"`
	VideoID     string     `json:"video_id"`
	Title       string     `json:"title"`
	PlayedAt    time.Time  `json:"played_at"`
}

func (p *PlayedVideo) String() string {
	return fmt.Sprintf("%s : %s", p.ChannelName, p.Title)
}

// Record is everything persisted between runs.
type Record struct {
	LastChannel *SavedChannel  `json:"last_channel,omitempty"`
	Played      []*PlayedVideo `json:"played"`
}
