package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leanback-cli/leanback/backend"
	"github.com/leanback-cli/leanback/history"
	"github.com/leanback-cli/leanback/log"
	"github.com/leanback-cli/leanback/session"
	"github.com/leanback-cli/leanback/util"
	"github.com/samber/mo"
)

type channelsLoadedMsg struct {
	channels []backend.Channel
	err      error
}

type sourcesLoadedMsg struct {
	channelID backend.ID
	sources   []backend.Source
	err       error
}

type resultMsg session.Result

type playerEventKind int

const (
	playerReady playerEventKind = iota
	playerEnded
)

type playerEventMsg struct {
	kind    playerEventKind
	videoID string
}

type playerLoadedMsg struct {
	videoID string
	err     error
}

// mutationMsg reports a finished management call. apply updates local state on success.
type mutationMsg struct {
	notice string
	apply  func(b *statefulBubble) tea.Cmd
	err    error
}

func (b *statefulBubble) loadChannels() tea.Cmd {
	return func() tea.Msg {
		channels, err := b.client.Channels(b.ctx)
		return channelsLoadedMsg{channels: channels, err: err}
	}
}

func (b *statefulBubble) loadSources(channelID backend.ID) tea.Cmd {
	return func() tea.Msg {
		sources, err := b.client.Sources(b.ctx, mo.Some(channelID))
		return sourcesLoadedMsg{channelID: channelID, sources: sources, err: err}
	}
}

// execute performs req off the update loop and reports the outcome as a resultMsg.
func (b *statefulBubble) execute(req *session.Request) tea.Cmd {
	if req == nil {
		return nil
	}

	r := *req
	return tea.Batch(b.spinnerC.Tick, func() tea.Msg {
		return resultMsg(b.ctrl.Execute(b.ctx, r))
	})
}

// loadVideo hands the current video to the player. Player calls run one at a time and a load
// overtaken by a later player call is dropped.
func (b *statefulBubble) loadVideo(video *backend.Video) tea.Cmd {
	if video == nil {
		return nil
	}

	videoID, title := video.VideoID, video.Title
	ticket := b.playerTickets.Add(1)
	return func() tea.Msg {
		b.playerMu.Lock()
		defer b.playerMu.Unlock()

		if b.playerTickets.Load() != ticket {
			log.Debugf("dropping superseded load of %s", videoID)
			return nil
		}
		return playerLoadedMsg{videoID: videoID, err: b.player.Load(videoID, title)}
	}
}

// closePlayer destroys the player instance and drops loads issued before it.
func (b *statefulBubble) closePlayer() tea.Cmd {
	b.playerTickets.Add(1)
	return func() tea.Msg {
		b.playerMu.Lock()
		defer b.playerMu.Unlock()

		b.player.Close()
		return nil
	}
}

// forwardPlayerEvent returns an adapter callback that hands events to the update loop.
func (b *statefulBubble) forwardPlayerEvent(kind playerEventKind) func(string) {
	return func(videoID string) {
		select {
		case b.playerEvents <- playerEventMsg{kind: kind, videoID: videoID}:
		case <-b.ctx.Done():
		}
	}
}

func (b *statefulBubble) waitForPlayerEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case event := <-b.playerEvents:
			return event
		case <-b.ctx.Done():
			return nil
		}
	}
}

func (b *statefulBubble) rememberChannel(ch backend.Channel) tea.Cmd {
	return func() tea.Msg {
		if err := history.SaveChannel(ch); err != nil {
			log.Warnf("save last channel: %v", err)
		}
		return nil
	}
}

func (b *statefulBubble) rememberPlayed(ch backend.Channel, video backend.Video) tea.Cmd {
	return func() tea.Msg {
		if err := history.SavePlayed(ch, video); err != nil {
			log.Warnf("save played video: %v", err)
		}
		return nil
	}
}

func (b *statefulBubble) createChannel(in backend.ChannelInput) tea.Cmd {
	return func() tea.Msg {
		created, err := b.client.CreateChannel(b.ctx, in)
		if err != nil {
			return mutationMsg{err: err}
		}

		return mutationMsg{
			notice: fmt.Sprintf("Created %s", created.Name),
			apply: func(b *statefulBubble) tea.Cmd {
				b.channels = append(b.channels, *created)
				return b.refreshChannelLists(created.ID)
			},
		}
	}
}

func (b *statefulBubble) cycleOrder(ch backend.Channel) tea.Cmd {
	return func() tea.Msg {
		updated, err := b.client.UpdateChannel(b.ctx, ch.ID, backend.ChannelInput{
			Name:      ch.Name,
			PlayOrder: ch.PlayOrder.Next(),
		})
		if err != nil {
			return mutationMsg{err: err}
		}

		return mutationMsg{
			notice: fmt.Sprintf("%s: %s", updated.Name, updated.PlayOrder.Label()),
			apply: func(b *statefulBubble) tea.Cmd {
				b.replaceChannel(*updated)
				return b.refreshChannelLists(updated.ID)
			},
		}
	}
}

func (b *statefulBubble) deleteChannel(ch backend.Channel) tea.Cmd {
	return func() tea.Msg {
		if err := b.client.DeleteChannel(b.ctx, ch.ID); err != nil {
			return mutationMsg{err: err}
		}
		if err := history.ForgetChannel(ch.ID); err != nil {
			log.Warnf("forget channel %s: %v", ch.ID, err)
		}

		return mutationMsg{
			notice: fmt.Sprintf("Deleted %s", ch.Name),
			apply: func(b *statefulBubble) tea.Cmd {
				return tea.Batch(b.removeChannel(ch.ID), b.refreshChannelLists(""))
			},
		}
	}
}

func (b *statefulBubble) rebuild(ch backend.Channel) tea.Cmd {
	return func() tea.Msg {
		result, err := b.client.Rebuild(b.ctx, ch.ID)
		if err != nil {
			return mutationMsg{err: err}
		}
		return mutationMsg{notice: fmt.Sprintf("%s: %s queued", ch.Name, util.Quantify(result.VideosAdded, "video", "videos"))}
	}
}

func (b *statefulBubble) rebuildAll() tea.Cmd {
	return func() tea.Msg {
		result, err := b.client.RebuildAll(b.ctx)
		if err != nil {
			return mutationMsg{err: err}
		}

		total := 0
		for _, added := range result.Results {
			total += added
		}
		return mutationMsg{notice: fmt.Sprintf("Rebuilt %s, %s queued",
			util.Quantify(len(result.Results), "channel", "channels"),
			util.Quantify(total, "video", "videos"))}
	}
}

func (b *statefulBubble) createSource(in backend.SourceInput) tea.Cmd {
	return func() tea.Msg {
		created, err := b.client.CreateSource(b.ctx, in)
		if err != nil {
			return mutationMsg{err: err}
		}

		return mutationMsg{
			notice: fmt.Sprintf("Added %s", created.Label()),
			apply: func(b *statefulBubble) tea.Cmd {
				items := append(b.sourcesC.Items(), &listItem{internal: created})
				cmd := b.sourcesC.SetItems(items)
				b.sourcesC.Select(len(items) - 1)
				return cmd
			},
		}
	}
}

func (b *statefulBubble) deleteSource(src backend.Source) tea.Cmd {
	return func() tea.Msg {
		if err := b.client.DeleteSource(b.ctx, src.ID); err != nil {
			return mutationMsg{err: err}
		}

		return mutationMsg{
			notice: fmt.Sprintf("Removed %s", src.Label()),
			apply: func(b *statefulBubble) tea.Cmd {
				for i, item := range b.sourcesC.Items() {
					if s, ok := item.(*listItem).internal.(*backend.Source); ok && s.ID == src.ID {
						b.sourcesC.RemoveItem(i)
						break
					}
				}
				return nil
			},
		}
	}
}
