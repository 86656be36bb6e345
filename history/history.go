// Package history remembers the last selected channel and the recently played videos on disk.
package history

import (
	"sync"
	"time"

	"github.com/leanback-cli/leanback/backend"
	"github.com/leanback-cli/leanback/filesystem"
	"github.com/leanback-cli/leanback/key"
	"github.com/leanback-cli/leanback/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

var (
	mu     sync.Mutex
	cacher = sync.OnceValue(func() *gache.Cache[*Record] {
		return gache.New[*Record](
			&gache.Options{
				Path:       where.History(),
				FileSystem: &filesystem.GacheFs{},
			},
		)
	})
)

// Get returns the persisted record, or an empty one.
func Get() (*Record, error) {
	mu.Lock()
	defer mu.Unlock()
	return get()
}

func get() (*Record, error) {
	cached, expired, err := cacher().Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return &Record{}, nil
	}
	return cached, nil
}

func update(fn func(r *Record)) error {
	mu.Lock()
	defer mu.Unlock()

	record, err := get()
	if err != nil {
		return err
	}
	fn(record)
	return cacher().Set(record)
}

// LastChannel returns the channel selected last, if any.
func LastChannel() mo.Option[SavedChannel] {
	record, err := Get()
	if err != nil || record.LastChannel == nil {
		return mo.None[SavedChannel]()
	}
	return mo.Some(*record.LastChannel)
}

// SaveChannel remembers channel as the one to resume.
func SaveChannel(channel backend.Channel) error {
	return update(func(r *Record) {
		r.LastChannel = &SavedChannel{
			ID:         channel.ID,
			Name:       channel.Name,
			SelectedAt: time.Now(),
		}
	})
}

// SavePlayed prepends video to the recently played list. Showing the same queue entry twice in a
// row is recorded once. The list is capped at session.history_limit.
func SavePlayed(channel backend.Channel, video backend.Video) error {
	limit := viper.GetInt(key.SessionHistoryLimit)

	return update(func(r *Record) {
		if len(r.Played) > 0 && r.Played[0].EntryID == video.ID && r.Played[0].ChannelID == channel.ID {
			r.Played[0].PlayedAt = time.Now()
			return
		}

		r.Played = append([]*PlayedVideo{{
			ChannelID:   channel.ID,
			ChannelName: channel.Name,
			EntryID:     video.ID,
			VideoID:     video.VideoID,
			Title:       video.Title,
			PlayedAt:    time.Now(),
		}}, r.Played...)

		if limit >= 0 && len(r.Played) > limit {
			r.Played = r.Played[:limit]
		}
	})
}

// ForgetChannel drops everything recorded about a deleted channel.
func ForgetChannel(id backend.ID) error {
	return update(func(r *Record) {
		if r.LastChannel != nil && r.LastChannel.ID == id {
			r.LastChannel = nil
		}

		r.Played = lo.Reject(r.Played, func(played *PlayedVideo, _ int) bool {
			return played.ChannelID == id
		})
	})
}

// Clear removes every record.
func Clear() error {
	return update(func(r *Record) {
		*r = Record{}
	})
}
