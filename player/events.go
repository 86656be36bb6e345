package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/leanback-cli/leanback/log"
)

const pauseObserverID = 1

// eventListener holds a persistent IPC connection and turns mpv broadcasts into Events.
// Property observers belong to the connection that registered them, so they are sent here.
type eventListener struct {
	conn   net.Conn
	events chan Event
	stop   chan struct{}
	once   sync.Once
}

func listen(socketPath string) (*eventListener, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("event listener connect: %w", err)
	}

	observe := ipcCommand{Command: []any{"observe_property", pauseObserverID, "pause"}}
	if err := writeCommand(conn, observe); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("observe pause: %w", err)
	}

	el := &eventListener{
		conn:   conn,
		events: make(chan Event, 16),
		stop:   make(chan struct{}),
	}
	go el.readLoop()

	log.Debugf("mpv event listener started on %s", socketPath)
	return el, nil
}

// Close stops the read loop. The events channel is closed by the loop itself.
func (el *eventListener) Close() {
	el.once.Do(func() {
		close(el.stop)
		_ = el.conn.Close()
	})
}

func (el *eventListener) readLoop() {
	defer close(el.events)

	scanner := bufio.NewScanner(el.conn)
	for scanner.Scan() {
		var msg ipcMessage
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			continue
		}

		event, ok := translate(msg)
		if !ok {
			continue
		}

		select {
		case el.events <- event:
		case <-el.stop:
			return
		}
	}

	select {
	case <-el.stop:
	default:
		if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
			log.Warnf("mpv event listener: %v", err)
		}
	}
}

// translate maps an mpv broadcast to an Event.
func translate(msg ipcMessage) (Event, bool) {
	switch msg.Event {
	case "file-loaded":
		return Event{Kind: EventReady}, true
	case "property-change":
		if msg.ID != pauseObserverID {
			return Event{}, false
		}
		paused, ok := msg.Data.(bool)
		if !ok {
			return Event{}, false
		}
		return Event{Kind: EventState, Playing: !paused}, true
	case "end-file":
		switch msg.Reason {
		case "eof":
			return Event{Kind: EventEnded}, true
		case "error":
			reason := msg.FileError
			if reason == "" {
				reason = "unknown error"
			}
			return Event{Kind: EventError, Err: errors.New(reason)}, true
		}
	}
	return Event{}, false
}
