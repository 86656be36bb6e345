// Package backend is a typed client for the channel backend: the HTTP service that owns
// channels, their YouTube sources and the per-channel video queues.
package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/invopop/jsonschema"
)

// ID is an opaque identifier. The service emits integers; the client never does arithmetic on them.
type ID string

// UnmarshalJSON accepts both JSON numbers and strings.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON emits numeric ids as numbers so the service's integer validation accepts them.
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ID) String() string {
	return string(id)
}

// Timestamp decodes the service's datetimes, which may come without a zone offset. Those are taken as UTC.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil || s == "" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("timestamp: cannot parse %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

// JSONSchema describes Timestamp as a date-time string.
func (Timestamp) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Format: "date-time"}
}

// PlayOrder selects how a channel's aggregated videos are ordered in its queue.
type PlayOrder string

const (
	OrderRandom PlayOrder = "random"
	OrderNewest PlayOrder = "chronological_newest"
	OrderOldest PlayOrder = "chronological_oldest"
)

// PlayOrders lists every order in the sequence the UI cycles through.
var PlayOrders = []PlayOrder{OrderRandom, OrderNewest, OrderOldest}

// ParsePlayOrder accepts the wire value or the short names random, newest and oldest.
func ParsePlayOrder(s string) (PlayOrder, error) {
	switch s {
	case "random", "":
		return OrderRandom, nil
	case "newest", string(OrderNewest):
		return OrderNewest, nil
	case "oldest", string(OrderOldest):
		return OrderOldest, nil
	default:
		return "", fmt.Errorf("unknown play order %q (want random, newest or oldest)", s)
	}
}

// Next returns the order after o, wrapping around.
func (o PlayOrder) Next() PlayOrder {
	for i, order := range PlayOrders {
		if order == o {
			return PlayOrders[(i+1)%len(PlayOrders)]
		}
	}
	return OrderRandom
}

// Label is the human readable name of the order.
func (o PlayOrder) Label() string {
	switch o {
	case OrderNewest:
		return "Newest first"
	case OrderOldest:
		return "Oldest first"
	default:
		return "Shuffle"
	}
}

// UnmarshalJSON maps unknown or missing orders to random, which is what the service falls back to.
func (o *PlayOrder) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePlayOrder(s)
	if err != nil {
		parsed = OrderRandom
	}
	*o = parsed
	return nil
}

// Channel is a user-defined named playlist aggregating one or more sources.
type Channel struct {
	ID        ID        `json:"id" jsonschema_description:"Opaque channel identifier"`
	Name      string    `json:"name" jsonschema_description:"Display name"`
	PlayOrder PlayOrder `json:"play_order,omitempty" jsonschema:"enum=random,enum=chronological_newest,enum=chronological_oldest"`
	CreatedAt Timestamp `json:"created_at,omitempty"`
}

// ChannelInput is the body of channel create and update calls.
type ChannelInput struct {
	Name      string    `json:"name"`
	PlayOrder PlayOrder `json:"play_order,omitempty"`
}

// SourceKind tells the service how to interpret a YouTube reference.
type SourceKind string

const (
	KindChannel  SourceKind = "channel"
	KindPlaylist SourceKind = "playlist"
)

// Source is a YouTube channel or playlist feeding videos into exactly one channel.
type Source struct {
	ID        ID         `json:"id"`
	ChannelID ID         `json:"channel_id"`
	YoutubeID string     `json:"youtube_id" jsonschema_description:"Channel id, handle, URL or playlist id"`
	Kind      SourceKind `json:"source_type" jsonschema:"enum=channel,enum=playlist"`
	Name      string     `json:"name,omitempty"`
	CreatedAt Timestamp  `json:"created_at,omitempty"`
}

// Label is the name when set, else the YouTube reference.
func (s Source) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.YoutubeID
}

// SourceInput is the body of a source create call.
type SourceInput struct {
	ChannelID ID         `json:"channel_id"`
	YoutubeID string     `json:"youtube_id"`
	Kind      SourceKind `json:"source_type"`
	Name      string     `json:"name,omitempty"`
}

// Video is the descriptor returned by the play and skip endpoints. ID is the queue entry,
// VideoID the YouTube id.
type Video struct {
	ID           ID         `json:"id"`
	VideoID      string     `json:"video_id"`
	VideoURL     string     `json:"video_url,omitempty"`
	Title        string     `json:"title"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
	ChannelName  string     `json:"channel_name,omitempty"`
	Position     int        `json:"position"`
	PublishedAt  *Timestamp `json:"published_at,omitempty"`
}

// QueueStatus summarises a channel's queue.
type QueueStatus struct {
	Total     int `json:"total"`
	Played    int `json:"played"`
	Remaining int `json:"remaining"`
}

// RebuildResult is returned after a single channel queue rebuild.
type RebuildResult struct {
	ChannelID   ID     `json:"channel_id"`
	VideosAdded int    `json:"videos_added"`
	Message     string `json:"message"`
}

// RebuildAllResult is returned after rebuilding every queue.
type RebuildAllResult struct {
	Message string         `json:"message"`
	Results map[string]int `json:"results"`
}

type skipRequest struct {
	CurrentVideoID ID `json:"current_video_id"`
}
