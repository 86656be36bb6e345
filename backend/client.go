package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/leanback-cli/leanback/constant"
	"github.com/leanback-cli/leanback/key"
	"github.com/leanback-cli/leanback/log"
	"github.com/leanback-cli/leanback/network"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Client talks to the channel backend. The zero value is not usable; build one with New or FromConfig.
type Client struct {
	mu      sync.RWMutex
	baseURL string
	http    *http.Client
	timeout time.Duration
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the shared network client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.http = c
	}
}

// WithTimeout bounds every request that does not already carry a shorter deadline.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.timeout = d
	}
}

// New builds a client rooted at baseURL, e.g. http://localhost:8000/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    network.Client,
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FromConfig builds a client from api.base_url and api.timeout.
func FromConfig() *Client {
	return New(
		viper.GetString(key.APIBaseURL),
		WithTimeout(time.Duration(viper.GetInt(key.APITimeout))*time.Second),
	)
}

// BaseURL returns the root every path is resolved against.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL retargets the client. Requests already in flight keep the old root.
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimRight(baseURL, "/")
}

// Channels lists every channel.
func (c *Client) Channels(ctx context.Context) ([]Channel, error) {
	var channels []Channel
	if err := c.do(ctx, http.MethodGet, "/channels/", nil, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}

// Channel fetches a single channel.
func (c *Client) Channel(ctx context.Context, id ID) (*Channel, error) {
	var channel Channel
	if err := c.do(ctx, http.MethodGet, "/channels/"+escape(id), nil, &channel); err != nil {
		return nil, err
	}
	return &channel, nil
}

// CreateChannel creates a channel.
func (c *Client) CreateChannel(ctx context.Context, in ChannelInput) (*Channel, error) {
	var channel Channel
	if err := c.do(ctx, http.MethodPost, "/channels/", in, &channel); err != nil {
		return nil, err
	}
	return &channel, nil
}

// UpdateChannel replaces a channel's name and play order. The service rebuilds the queue
// when the order changes.
func (c *Client) UpdateChannel(ctx context.Context, id ID, in ChannelInput) (*Channel, error) {
	var channel Channel
	if err := c.do(ctx, http.MethodPut, "/channels/"+escape(id), in, &channel); err != nil {
		return nil, err
	}
	return &channel, nil
}

// DeleteChannel removes a channel with its sources and queue.
func (c *Client) DeleteChannel(ctx context.Context, id ID) error {
	return c.do(ctx, http.MethodDelete, "/channels/"+escape(id), nil, nil)
}

// Sources lists sources, optionally only those of one channel.
func (c *Client) Sources(ctx context.Context, channelID mo.Option[ID]) ([]Source, error) {
	path := "/sources/"
	if id, ok := channelID.Get(); ok {
		path += "?" + url.Values{"channel_id": {id.String()}}.Encode()
	}

	var sources []Source
	if err := c.do(ctx, http.MethodGet, path, nil, &sources); err != nil {
		return nil, err
	}
	return sources, nil
}

// CreateSource attaches a YouTube channel or playlist to a channel.
func (c *Client) CreateSource(ctx context.Context, in SourceInput) (*Source, error) {
	var source Source
	if err := c.do(ctx, http.MethodPost, "/sources/", in, &source); err != nil {
		return nil, err
	}
	return &source, nil
}

// DeleteSource detaches a source.
func (c *Client) DeleteSource(ctx context.Context, id ID) error {
	return c.do(ctx, http.MethodDelete, "/sources/"+escape(id), nil, nil)
}

// Next returns the video at the head of the channel's queue without consuming it.
func (c *Client) Next(ctx context.Context, channelID ID) (*Video, error) {
	var video Video
	if err := c.do(ctx, http.MethodGet, "/player/play/"+escape(channelID), nil, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// Skip marks currentVideoID as played and returns the next video.
func (c *Client) Skip(ctx context.Context, channelID, currentVideoID ID) (*Video, error) {
	var video Video
	body := skipRequest{CurrentVideoID: currentVideoID}
	if err := c.do(ctx, http.MethodPost, "/player/skip/"+escape(channelID), body, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// Status reports how much of the channel's queue has been played.
func (c *Client) Status(ctx context.Context, channelID ID) (*QueueStatus, error) {
	var status QueueStatus
	if err := c.do(ctx, http.MethodGet, "/player/status/"+escape(channelID), nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Rebuild regenerates one channel's queue.
func (c *Client) Rebuild(ctx context.Context, channelID ID) (*RebuildResult, error) {
	var result RebuildResult
	if err := c.do(ctx, http.MethodPost, "/player/rebuild/"+escape(channelID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RebuildAll regenerates every queue.
func (c *Client) RebuildAll(ctx context.Context) (*RebuildAllResult, error) {
	var result RebuildAllResult
	if err := c.do(ctx, http.MethodPost, "/player/rebuild-all", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func escape(id ID) string {
	return url.PathEscape(id.String())
}

// do performs one request. A nil out discards the body; 204 always succeeds with nothing decoded.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL()+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", constant.UserAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.With(log.Fields{"method": method, "path": path}).Warnf("request failed: %v", err)
		return &NetworkError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	log.With(log.Fields{
		"method":  method,
		"path":    path,
		"status":  resp.StatusCode,
		"elapsed": time.Since(started).Round(time.Millisecond),
	}).Debug("backend request")

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Method: method, Path: path, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Detail:     parseDetail(data),
		}
	}

	if resp.StatusCode == http.StatusNoContent || out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
