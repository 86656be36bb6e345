// Package network provides the HTTP client shared by every backend call.
package network

import (
	"net/http"
	"time"
)

// Client is shared across the application. Per-request deadlines come from contexts,
// so the client-level timeout is only a backstop.
var Client = &http.Client{
	Timeout:   2 * time.Minute,
	Transport: newTransport(),
}

// newTransport tunes the default transport for a single, mostly local, backend host.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 10
	t.MaxIdleConnsPerHost = 10
	t.IdleConnTimeout = 90 * time.Second
	t.ResponseHeaderTimeout = time.Minute
	t.ExpectContinueTimeout = time.Second
	return t
}
