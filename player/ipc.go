package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync/atomic"
	"time"
)

// ipcCommand is one newline-delimited JSON request on mpv's IPC socket.
type ipcCommand struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id,omitempty"`
}

// ipcMessage is anything mpv writes back: replies carry request_id, broadcasts carry event.
type ipcMessage struct {
	Event     string `json:"event,omitempty"`
	RequestID int64  `json:"request_id,omitempty"`
	Error     string `json:"error,omitempty"`
	Data      any    `json:"data,omitempty"`

	// property-change
	ID   int    `json:"id,omitempty"`
	Name string `json:"name,omitempty"`

	// end-file
	Reason    string `json:"reason,omitempty"`
	FileError string `json:"file_error,omitempty"`
}

const (
	maxRetries   = 3
	retryDelay   = 100 * time.Millisecond
	replyTimeout = time.Second
)

var requestIDs atomic.Int64

// sendCommand runs one IPC command, retrying transient connection failures.
func sendCommand(socketPath string, command ...any) (any, error) {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay)
		}

		result, err := doSendCommand(socketPath, command)
		if err == nil {
			return result, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("ipc command %v failed after %d attempts: %w", command[0], maxRetries, lastErr)
}

// doSendCommand performs a single attempt over a fresh connection. mpv broadcasts events to every
// client, so lines are skipped until the reply with our request id arrives.
func doSendCommand(socketPath string, command []any) (any, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	id := requestIDs.Add(1)
	if err := writeCommand(conn, ipcCommand{Command: command, RequestID: id}); err != nil {
		return nil, err
	}

	if err := conn.SetReadDeadline(time.Now().Add(replyTimeout)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var msg ipcMessage
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			continue
		}
		if msg.Event != "" || msg.RequestID != id {
			continue
		}
		if msg.Error != "" && msg.Error != "success" {
			return nil, fmt.Errorf("mpv: %s", msg.Error)
		}
		return msg.Data, nil
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return nil, fmt.Errorf("read: connection closed before reply")
}

func writeCommand(conn net.Conn, command ipcCommand) error {
	payload, err := json.Marshal(command)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	if _, err := conn.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
