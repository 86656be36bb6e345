// Package player drives the video surface: one external player process per video, controlled
// through a small synchronous interface and reporting back through events.
package player

import "fmt"

// EventKind enumerates what an instance can report.
type EventKind int

const (
	// EventReady is sent once the video is loaded and can be controlled.
	EventReady EventKind = iota
	// EventState reports a play/pause change.
	EventState
	// EventEnded is sent when the video played to the end.
	EventEnded
	// EventError is sent when the video cannot be played.
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventReady:
		return "ready"
	case EventState:
		return "state"
	case EventEnded:
		return "ended"
	case EventError:
		return "error"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is emitted by an Instance.
type Event struct {
	Kind    EventKind
	Playing bool
	Err     error
}

// Instance is a live video surface. Its event channel is closed when the surface goes away.
type Instance interface {
	Play() error
	Pause() error
	SetFullscreen(on bool) error
	Destroy() error
	Events() <-chan Event
}

// Spec describes the instance to create.
type Spec struct {
	// ContainerID is unique per instance.
	ContainerID string
	VideoID     string
	Title       string
	Fullscreen  bool
}

// Factory creates instances.
type Factory interface {
	Create(spec Spec) (Instance, error)
}
