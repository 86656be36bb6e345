package session

import (
	"github.com/leanback-cli/leanback/backend"
)

// Kind selects the backend call a Request maps to.
type Kind int

const (
	// KindNext fetches the head of the queue without consuming it.
	KindNext Kind = iota
	// KindSkip marks the current video as played and fetches the next one.
	KindSkip
)

func (k Kind) String() string {
	if k == KindSkip {
		return "skip"
	}
	return "next"
}

// Reason records what triggered a request. It only feeds logs.
type Reason string

const (
	ReasonSelect Reason = "select"
	ReasonSkip   Reason = "skip"
	ReasonEnded  Reason = "ended"
	ReasonRetry  Reason = "retry"
	ReasonResume Reason = "resume"
)

// Request is a backend call emitted by a transition.
type Request struct {
	Generation     uint64
	ChannelID      backend.ID
	Kind           Kind
	CurrentVideoID backend.ID
	// Fallback is set on the plain fetch issued after a failed skip.
	Fallback bool
	Reason   Reason
}

// Result is what came back for a Request.
type Result struct {
	Request Request
	Video   *backend.Video
	Err     error
}
