package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is a non-2xx answer from the service.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	// Detail is the service's own explanation, empty when the body carried none.
	Detail string
}

func (e *Error) Error() string {
	return e.Message()
}

// Message is the text shown to a viewer: the service detail when present, else the status text.
func (e *Error) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	if text := http.StatusText(e.StatusCode); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// NetworkError wraps a transport failure: the request never got an HTTP answer.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNetwork reports whether err came from the transport rather than the service.
func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// StatusCode extracts the HTTP status of a service error, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// Message renders any error returned by this package for display.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return fmt.Sprintf("cannot reach the channel backend: %v", netErr.Err)
	}

	return err.Error()
}

// parseDetail pulls the detail field out of an error body. FastAPI validation errors carry a list
// of objects instead of a string; their msg fields are joined.
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(envelope.Detail, &text); err == nil {
		return text
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}
