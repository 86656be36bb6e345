package session

import (
	"errors"
	"testing"

	"github.com/leanback-cli/leanback/backend"
	. "github.com/smartystreets/goconvey/convey"
)

var (
	music = &backend.Channel{ID: "c1", Name: "Music"}
	talks = &backend.Channel{ID: "c2", Name: "Talks"}
	songA = &backend.Video{ID: "v1", VideoID: "yt1", Title: "Song A"}
	songB = &backend.Video{ID: "v2", VideoID: "yt2", Title: "Song B"}
)

// playing returns a session showing songA on music.
func playing() Session {
	s, req, _ := Session{}.SelectChannel(music)
	s, _ = s.Resolve(Result{Request: *req, Video: songA})
	return s
}

func TestSelectChannel(t *testing.T) {
	Convey("Given an idle session", t, func() {
		s := Session{}
		So(s.Phase(), ShouldEqual, PhaseIdle)

		Convey("Selecting a channel without an id fails", func() {
			_, req, err := s.SelectChannel(&backend.Channel{Name: "nameless"})
			So(err, ShouldEqual, ErrInvalidChannel)
			So(req, ShouldBeNil)

			_, _, err = s.SelectChannel(nil)
			So(err, ShouldEqual, ErrInvalidChannel)
		})

		Convey("Selecting a channel emits one plain fetch", func() {
			next, req, err := s.SelectChannel(music)
			So(err, ShouldBeNil)
			So(next.Phase(), ShouldEqual, PhaseLoading)
			So(req.Kind, ShouldEqual, KindNext)
			So(req.ChannelID, ShouldEqual, backend.ID("c1"))
			So(req.Generation, ShouldEqual, next.Generation)
			So(req.Reason, ShouldEqual, ReasonSelect)

			Convey("And the receiver is left untouched", func() {
				So(s.Channel, ShouldBeNil)
				So(s.Loading, ShouldBeFalse)
			})

			Convey("And the result makes it play", func() {
				next, follow := next.Resolve(Result{Request: *req, Video: songA})
				So(follow, ShouldBeNil)
				So(next.Phase(), ShouldEqual, PhasePlaying)
				So(next.Video.Title, ShouldEqual, "Song A")
			})
		})
	})

	Convey("Given a playing session", t, func() {
		s := playing()

		Convey("Switching channel clears the video before anything resolves", func() {
			next, req, err := s.SelectChannel(talks)
			So(err, ShouldBeNil)
			So(next.Video, ShouldBeNil)
			So(next.Channel.ID, ShouldEqual, backend.ID("c2"))
			So(req.Generation, ShouldBeGreaterThan, s.Generation)
		})

		Convey("Switching channel clears a previous error", func() {
			s.Err = errors.New("boom")
			next, _, _ := s.SelectChannel(talks)
			So(next.Err, ShouldBeNil)
		})

		Convey("A result for the old channel is discarded", func() {
			_, oldReq := s.Advance(true, ReasonSkip)
			next, _, _ := s.SelectChannel(talks)

			next, follow := next.Resolve(Result{Request: *oldReq, Video: songB})
			So(follow, ShouldBeNil)
			So(next.Video, ShouldBeNil)
			So(next.Phase(), ShouldEqual, PhaseLoading)
		})
	})
}

func TestAdvance(t *testing.T) {
	Convey("Given a playing session", t, func() {
		s := playing()

		Convey("Skipping marks the current video as played", func() {
			next, req := s.Advance(true, ReasonSkip)
			So(req, ShouldNotBeNil)
			So(req.Kind, ShouldEqual, KindSkip)
			So(req.CurrentVideoID, ShouldEqual, backend.ID("v1"))
			So(next.Phase(), ShouldEqual, PhaseLoading)

			Convey("And the video stays visible while loading", func() {
				So(next.Video, ShouldEqual, songA)
			})

			Convey("And further triggers are dropped while loading", func() {
				requests := 0
				for range 10 {
					var r *Request
					next, r = next.Advance(true, ReasonSkip)
					if r != nil {
						requests++
					}
				}
				_, r := next.Advance(true, ReasonEnded)
				So(r, ShouldBeNil)
				So(requests, ShouldEqual, 0)
			})
		})

		Convey("Advancing without marking fetches the head of the queue", func() {
			_, req := s.Advance(false, ReasonRetry)
			So(req.Kind, ShouldEqual, KindNext)
			So(req.CurrentVideoID, ShouldBeEmpty)
		})

		Convey("Skip failure falls back to a single plain fetch", func() {
			s, req := s.Advance(true, ReasonEnded)
			s, fallback := s.Resolve(Result{Request: *req, Err: &backend.Error{StatusCode: 500, Detail: "queue empty"}})

			So(fallback, ShouldNotBeNil)
			So(fallback.Kind, ShouldEqual, KindNext)
			So(fallback.Fallback, ShouldBeTrue)
			So(fallback.Generation, ShouldEqual, req.Generation)
			So(fallback.Reason, ShouldEqual, ReasonEnded)
			So(s.Phase(), ShouldEqual, PhaseLoading)
			So(s.Err, ShouldBeNil)

			Convey("When the fallback succeeds the new video plays without an error", func() {
				s, follow := s.Resolve(Result{Request: *fallback, Video: songB})
				So(follow, ShouldBeNil)
				So(s.Phase(), ShouldEqual, PhasePlaying)
				So(s.Video.Title, ShouldEqual, "Song B")
				So(s.Err, ShouldBeNil)
			})

			Convey("When the fallback fails too the error is shown and the video kept", func() {
				s, follow := s.Resolve(Result{Request: *fallback, Err: errors.New("connection refused")})
				So(follow, ShouldBeNil)
				So(s.Phase(), ShouldEqual, PhaseError)
				So(s.Video, ShouldEqual, songA)
				So(s.ErrMessage(), ShouldEqual, "connection refused")

				Convey("And retry issues a plain fetch", func() {
					s, req := s.Retry()
					So(req, ShouldNotBeNil)
					So(req.Kind, ShouldEqual, KindNext)
					So(req.Reason, ShouldEqual, ReasonRetry)
					So(s.Phase(), ShouldEqual, PhaseLoading)
				})
			})
		})

		Convey("A failed plain fetch does not fall back", func() {
			s, req := s.Advance(false, ReasonRetry)
			s, follow := s.Resolve(Result{Request: *req, Err: &backend.Error{StatusCode: 404, Detail: "No videos in queue"}})
			So(follow, ShouldBeNil)
			So(s.Phase(), ShouldEqual, PhaseError)
			So(s.ErrMessage(), ShouldEqual, "No videos in queue")
		})

		Convey("A result that arrives when nothing is loading is ignored", func() {
			stray := Request{Generation: s.Generation, ChannelID: "c1"}
			next, follow := s.Resolve(Result{Request: stray, Video: songB})
			So(follow, ShouldBeNil)
			So(next.Video, ShouldEqual, songA)
		})
	})

	Convey("Given an idle session", t, func() {
		Convey("Advance does nothing", func() {
			s, req := Session{}.Advance(true, ReasonSkip)
			So(req, ShouldBeNil)
			So(s.Loading, ShouldBeFalse)
		})
	})
}

func TestClearChannel(t *testing.T) {
	Convey("Clearing the channel returns to idle and makes in-flight requests stale", t, func() {
		s := playing()
		s, req := s.Advance(true, ReasonSkip)
		s = s.ClearChannel()

		So(s.Phase(), ShouldEqual, PhaseIdle)
		So(s.Video, ShouldBeNil)

		s, follow := s.Resolve(Result{Request: *req, Video: songB})
		So(follow, ShouldBeNil)
		So(s.Video, ShouldBeNil)
	})
}

func TestModes(t *testing.T) {
	Convey("Given a watching session", t, func() {
		s := Session{}

		Convey("The menu opens and closes", func() {
			s = s.OpenMenu()
			So(s.Mode, ShouldEqual, ModeMenu)
			s = s.CloseMenu()
			So(s.Mode, ShouldEqual, ModeWatching)
		})

		Convey("The menu cannot open during management", func() {
			s = s.EnterManagement()
			s = s.OpenMenu()
			So(s.Mode, ShouldEqual, ModeManagement)
			s = s.LeaveManagement()
			So(s.Mode, ShouldEqual, ModeWatching)
		})

		Convey("Entering management closes the menu", func() {
			s = s.OpenMenu().EnterManagement()
			So(s.Mode, ShouldEqual, ModeManagement)
			So(s.CloseMenu().Mode, ShouldEqual, ModeManagement)
		})
	})

	Convey("Phases and modes have names", t, func() {
		So(PhaseError.String(), ShouldEqual, "error")
		So(ModeManagement.String(), ShouldEqual, "management")
		So(KindSkip.String(), ShouldEqual, "skip")
	})
}
