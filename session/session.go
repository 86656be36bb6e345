// Package session holds the playback session state machine: which channel is selected,
// which video is showing and when the next one is fetched.
package session

import (
	"errors"
	"fmt"

	"github.com/leanback-cli/leanback/backend"
)

// ErrInvalidChannel is returned when selecting a channel without an id.
var ErrInvalidChannel = errors.New("channel has no id")

// Phase is derived from the session fields; it is never stored.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhasePlaying
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhasePlaying:
		return "playing"
	case PhaseError:
		return "error"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Mode says which surface owns the keyboard.
type Mode int

const (
	ModeWatching Mode = iota
	ModeMenu
	ModeManagement
)

func (m Mode) String() string {
	switch m {
	case ModeWatching:
		return "watching"
	case ModeMenu:
		return "menu"
	case ModeManagement:
		return "management"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Session is the authoritative view of what should be playing. Transitions return a new value
// and never mutate the receiver.
type Session struct {
	Channel *backend.Channel
	Video   *backend.Video
	Loading bool
	Err     error
	Mode    Mode

	// Generation is bumped on every channel change. Results carrying an older generation are stale.
	Generation uint64
}

// Phase reports where the session is in its lifecycle.
func (s Session) Phase() Phase {
	switch {
	case s.Channel == nil:
		return PhaseIdle
	case s.Loading:
		return PhaseLoading
	case s.Err != nil:
		return PhaseError
	case s.Video != nil:
		return PhasePlaying
	default:
		return PhaseIdle
	}
}

// ErrMessage is the text shown in the error overlay.
func (s Session) ErrMessage() string {
	return backend.Message(s.Err)
}

// SelectChannel switches to ch and asks for its first video. The previous video is cleared
// at once so it is never shown under the new channel.
func (s Session) SelectChannel(ch *backend.Channel) (Session, *Request, error) {
	if ch == nil || ch.ID == "" {
		return s, nil, ErrInvalidChannel
	}

	selected := *ch
	s.Channel = &selected
	s.Video = nil
	s.Err = nil
	s.Loading = true
	s.Generation++

	return s, &Request{
		Generation: s.Generation,
		ChannelID:  selected.ID,
		Kind:       KindNext,
		Reason:     ReasonSelect,
	}, nil
}

// Advance moves to the next video. With markPlayed and a current video the backend is told the
// video was consumed; otherwise the head of the queue is fetched as is. Triggers arriving while a
// request is in flight are dropped.
func (s Session) Advance(markPlayed bool, reason Reason) (Session, *Request) {
	if s.Loading || s.Channel == nil {
		return s, nil
	}

	req := &Request{
		Generation: s.Generation,
		ChannelID:  s.Channel.ID,
		Kind:       KindNext,
		Reason:     reason,
	}
	if markPlayed && s.Video != nil {
		req.Kind = KindSkip
		req.CurrentVideoID = s.Video.ID
	}

	s.Loading = true
	return s, req
}

// Retry re-runs the plain fetch after an error.
func (s Session) Retry() (Session, *Request) {
	return s.Advance(false, ReasonRetry)
}

// Resolve applies the outcome of a request. A failed skip is followed by a single plain fetch;
// any other failure leaves the current video in place and records the error.
func (s Session) Resolve(r Result) (Session, *Request) {
	if r.Request.Generation != s.Generation || !s.Loading {
		return s, nil
	}

	if r.Err == nil {
		s.Video = r.Video
		s.Err = nil
		s.Loading = false
		return s, nil
	}

	if r.Request.Kind == KindSkip && !r.Request.Fallback {
		return s, &Request{
			Generation: s.Generation,
			ChannelID:  r.Request.ChannelID,
			Kind:       KindNext,
			Fallback:   true,
			Reason:     r.Request.Reason,
		}
	}

	s.Err = r.Err
	s.Loading = false
	return s, nil
}

// ClearChannel returns to idle. Requests still in flight become stale.
func (s Session) ClearChannel() Session {
	s.Channel = nil
	s.Video = nil
	s.Err = nil
	s.Loading = false
	s.Generation++
	return s
}

// OpenMenu shows the channel selector. It is refused while managing channels.
func (s Session) OpenMenu() Session {
	if s.Mode == ModeWatching {
		s.Mode = ModeMenu
	}
	return s
}

func (s Session) CloseMenu() Session {
	if s.Mode == ModeMenu {
		s.Mode = ModeWatching
	}
	return s
}

func (s Session) EnterManagement() Session {
	s.Mode = ModeManagement
	return s
}

func (s Session) LeaveManagement() Session {
	if s.Mode == ModeManagement {
		s.Mode = ModeWatching
	}
	return s
}
