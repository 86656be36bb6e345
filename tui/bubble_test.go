package tui

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leanback-cli/leanback/backend"
	"github.com/leanback-cli/leanback/filesystem"
	"github.com/leanback-cli/leanback/history"
	"github.com/leanback-cli/leanback/key"
	"github.com/leanback-cli/leanback/player"
	"github.com/leanback-cli/leanback/session"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

type fakeInstance struct {
	events chan player.Event
}

func (f *fakeInstance) Play() error                 { return nil }
func (f *fakeInstance) Pause() error                { return nil }
func (f *fakeInstance) SetFullscreen(bool) error    { return nil }
func (f *fakeInstance) Events() <-chan player.Event { return f.events }
func (f *fakeInstance) Destroy() error {
	close(f.events)
	return nil
}

type fakeFactory struct {
	mu      sync.Mutex
	created []string
	fail    error
}

func (f *fakeFactory) Create(spec player.Spec) (player.Instance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	f.created = append(f.created, spec.VideoID)
	return &fakeInstance{events: make(chan player.Event)}, nil
}

// channelBackend serves two channels. Channel 1 plays Song A then Song B; channel 2 plays Talk.
func channelBackend(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	mux.HandleFunc("GET /api/channels/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "name": "Music", "play_order": "random"},
			{"id": 2, "name": "Talks", "play_order": "chronological_newest"},
		})
	})
	mux.HandleFunc("GET /api/player/play/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "2" {
			writeJSON(w, http.StatusOK, map[string]any{"id": 20, "video_id": "talk", "title": "Talk", "position": 0})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": 10, "video_id": "song-a", "title": "Song A", "position": 0})
	})
	mux.HandleFunc("POST /api/player/skip/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": 11, "video_id": "song-b", "title": "Song B", "position": 1})
	})
	mux.HandleFunc("DELETE /api/channels/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /api/channels/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "Channel with this name already exists"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(b *statefulBubble, msg tea.KeyMsg) tea.Cmd {
	_, cmd := b.Update(msg)
	return cmd
}

// run executes cmd and every command batched under it, discarding their messages.
func run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if batch, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range batch {
			run(c)
		}
	}
}

// settle executes the pending request the way the program loop would.
func settle(b *statefulBubble) {
	st := b.ctrl.State()
	if !st.Loading {
		return
	}
	req := session.Request{Generation: st.Generation, ChannelID: st.Channel.ID, Kind: session.KindNext}
	if st.Video != nil {
		req.Kind = session.KindSkip
		req.CurrentVideoID = st.Video.ID
	}
	b.Update(resultMsg(b.ctrl.Execute(b.ctx, req)))
	if video := b.ctrl.State().Video; video != nil {
		b.Update(b.loadVideo(video)())
	}
}

func TestBubble(t *testing.T) {
	Convey("Given the player screen over a channel backend", t, func() {
		srv := channelBackend(t)
		factory := &fakeFactory{}
		viper.Set(key.SessionResume, true)
		viper.Set(key.TUIShowHelp, true)
		So(history.Clear(), ShouldBeNil)

		b := newBubble(&Options{Client: backend.New(srv.URL + "/api"), Factory: factory})
		defer b.shutdown()
		So(b.state, ShouldEqual, loadingState)

		Convey("Without a remembered channel the menu opens on the first channel", func() {
			b.Update(b.loadChannels()())
			So(b.state, ShouldEqual, menuState)
			So(b.ctrl.State().Mode, ShouldEqual, session.ModeMenu)
			So(b.selector.Index, ShouldEqual, 0)

			Convey("Arrows wrap and enter starts watching", func() {
				press(b, tea.KeyMsg{Type: tea.KeyUp})
				So(b.selector.Index, ShouldEqual, 1)
				So(b.menuC.Index(), ShouldEqual, 1)

				press(b, tea.KeyMsg{Type: tea.KeyEnter})
				So(b.state, ShouldEqual, watchState)
				st := b.ctrl.State()
				So(st.Mode, ShouldEqual, session.ModeWatching)
				So(st.Channel.Name, ShouldEqual, "Talks")
				So(st.Loading, ShouldBeTrue)

				settle(b)
				So(b.ctrl.State().Video.Title, ShouldEqual, "Talk")
				So(factory.created, ShouldResemble, []string{"talk"})
			})

			Convey("Typing jumps to a channel by name", func() {
				press(b, runes("t"))
				So(b.selector.Index, ShouldEqual, 1)
			})

			Convey("Esc closes the menu", func() {
				press(b, tea.KeyMsg{Type: tea.KeyEsc})
				So(b.state, ShouldEqual, watchState)
				So(b.ctrl.State().Mode, ShouldEqual, session.ModeWatching)
			})
		})

		Convey("A remembered channel is resumed", func() {
			So(history.SaveChannel(backend.Channel{ID: "1", Name: "Music"}), ShouldBeNil)
			b.Update(b.loadChannels()())
			So(b.state, ShouldEqual, watchState)
			So(b.ctrl.State().Channel.ID, ShouldEqual, backend.ID("1"))

			settle(b)
			So(b.ctrl.State().Video.Title, ShouldEqual, "Song A")
			So(b.View(), ShouldContainSubstring, "Song A")

			Convey("Skip is guarded while loading", func() {
				So(press(b, tea.KeyMsg{Type: tea.KeyRight}), ShouldNotBeNil)
				So(b.ctrl.State().Loading, ShouldBeTrue)
				generation := b.ctrl.State().Generation
				press(b, tea.KeyMsg{Type: tea.KeyRight})
				So(b.ctrl.State().Generation, ShouldEqual, generation)

				settle(b)
				So(b.ctrl.State().Video.Title, ShouldEqual, "Song B")
				So(factory.created, ShouldResemble, []string{"song-a", "song-b"})
			})

			Convey("Ended events advance only for the current video", func() {
				b.Update(playerEventMsg{kind: playerEnded, videoID: "other"})
				So(b.ctrl.State().Loading, ShouldBeFalse)

				b.Update(playerEventMsg{kind: playerEnded, videoID: "song-a"})
				So(b.ctrl.State().Loading, ShouldBeTrue)
			})

			Convey("Ready events are recorded in history", func() {
				_, cmd := b.Update(playerEventMsg{kind: playerReady, videoID: "song-a"})
				So(cmd, ShouldNotBeNil)
				b.rememberPlayed(*b.ctrl.State().Channel, *b.ctrl.State().Video)()
				record, err := history.Get()
				So(err, ShouldBeNil)
				So(record.Played[0].Title, ShouldEqual, "Song A")
			})

			Convey("Left opens the menu on the current channel", func() {
				press(b, tea.KeyMsg{Type: tea.KeyLeft})
				So(b.state, ShouldEqual, menuState)
				So(b.selector.Index, ShouldEqual, 0)

				Convey("Picking the channel already playing changes nothing", func() {
					generation := b.ctrl.State().Generation
					press(b, tea.KeyMsg{Type: tea.KeyEnter})
					So(b.ctrl.State().Generation, ShouldEqual, generation)
					So(b.ctrl.State().Video.Title, ShouldEqual, "Song A")
				})
			})

			Convey("Retry only shows up after a failure", func() {
				So(b.help(), ShouldNotContain, b.keymap.Retry)
			})
		})

		Convey("A load overtaken by a later one is dropped", func() {
			first := b.loadVideo(&backend.Video{VideoID: "song-a", Title: "Song A"})
			second := b.loadVideo(&backend.Video{VideoID: "song-b", Title: "Song B"})

			So(second(), ShouldResemble, playerLoadedMsg{videoID: "song-b"})
			So(first(), ShouldBeNil)
			So(factory.created, ShouldResemble, []string{"song-b"})
			So(b.player.VideoID(), ShouldEqual, "song-b")

			Convey("Closing drops loads issued before it", func() {
				stale := b.loadVideo(&backend.Video{VideoID: "song-a", Title: "Song A"})
				b.closePlayer()()
				So(stale(), ShouldBeNil)
				So(b.player.VideoID(), ShouldEqual, "")
				So(factory.created, ShouldResemble, []string{"song-b"})
			})
		})

		Convey("A player that cannot start is reported and the video kept", func() {
			factory.fail = player.ErrPlayerNotFound
			So(history.SaveChannel(backend.Channel{ID: "1", Name: "Music"}), ShouldBeNil)
			b.Update(b.loadChannels()())
			settle(b)

			So(errors.Is(b.playerErr, player.ErrPlayerNotFound), ShouldBeTrue)
			So(b.ctrl.State().Phase(), ShouldEqual, session.PhasePlaying)
			So(b.View(), ShouldContainSubstring, "r to retry")

			factory.fail = nil
			So(press(b, runes("r")), ShouldNotBeNil)
			So(b.playerErr, ShouldBeNil)
			b.Update(b.loadVideo(b.ctrl.State().Video)())
			So(factory.created, ShouldResemble, []string{"song-a"})
		})

		Convey("Management mode", func() {
			b.Update(b.loadChannels()())
			press(b, tea.KeyMsg{Type: tea.KeyEsc})
			press(b, runes("m"))
			So(b.state, ShouldEqual, channelsState)
			So(b.ctrl.State().Mode, ShouldEqual, session.ModeManagement)
			b.Update(b.loadChannels()())

			Convey("Left does not open the menu", func() {
				press(b, tea.KeyMsg{Type: tea.KeyLeft})
				So(b.state, ShouldEqual, channelsState)
			})

			Convey("The new channel form owns the keyboard", func() {
				press(b, runes("n"))
				So(b.state, ShouldEqual, channelFormState)
				So(b.router.TextFocus(), ShouldBeTrue)

				press(b, runes("q"))
				press(b, runes("m"))
				So(b.state, ShouldEqual, channelFormState)
				So(b.nameInputC.Value(), ShouldEqual, "qm")

				press(b, tea.KeyMsg{Type: tea.KeyCtrlT})
				So(b.formOrder, ShouldEqual, backend.OrderNewest)

				Convey("A rejected create shows the backend's reason", func() {
					cmd := press(b, tea.KeyMsg{Type: tea.KeyEnter})
					So(cmd, ShouldNotBeNil)
					So(b.state, ShouldEqual, channelsState)
					So(b.router.TextFocus(), ShouldBeFalse)

					b.Update(b.createChannel(backend.ChannelInput{Name: "qm"})())
					So(b.state, ShouldEqual, errorState)
					So(b.View(), ShouldContainSubstring, "Channel with this name already exists")

					press(b, tea.KeyMsg{Type: tea.KeyEsc})
					So(b.state, ShouldEqual, channelsState)
				})

				Convey("Esc cancels", func() {
					press(b, tea.KeyMsg{Type: tea.KeyEsc})
					So(b.state, ShouldEqual, channelsState)
				})
			})

			Convey("Delete asks first", func() {
				press(b, runes("d"))
				So(b.state, ShouldEqual, confirmState)
				So(b.View(), ShouldContainSubstring, "Music")

				press(b, runes("n"))
				So(b.state, ShouldEqual, channelsState)
				So(b.pending, ShouldBeNil)
			})

			Convey("Deleting the channel being watched stops the session and the player", func() {
				b.ctrl.LeaveManagement()
				_, _ = b.ctrl.SelectChannel(&b.channels[0])
				settle(b)
				So(b.player.VideoID(), ShouldEqual, "song-a")
				b.ctrl.EnterManagement()

				_, cmd := b.Update(b.deleteChannel(b.channels[0])())
				run(cmd)
				So(b.channels, ShouldHaveLength, 1)
				So(b.ctrl.State().Phase(), ShouldEqual, session.PhaseIdle)
				So(b.player.VideoID(), ShouldEqual, "")
			})

			Convey("Deleting another channel leaves the player alone", func() {
				b.ctrl.LeaveManagement()
				_, _ = b.ctrl.SelectChannel(&b.channels[0])
				settle(b)
				b.ctrl.EnterManagement()

				_, cmd := b.Update(b.deleteChannel(b.channels[1])())
				run(cmd)
				So(b.channels, ShouldHaveLength, 1)
				So(b.ctrl.State().Phase(), ShouldEqual, session.PhasePlaying)
				So(b.player.VideoID(), ShouldEqual, "song-a")
			})

			Convey("Esc returns to the player", func() {
				press(b, tea.KeyMsg{Type: tea.KeyEsc})
				So(b.state, ShouldEqual, watchState)
				So(b.ctrl.State().Mode, ShouldEqual, session.ModeWatching)
			})
		})
	})
}
